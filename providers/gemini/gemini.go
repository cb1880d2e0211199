// Package gemini implements the Gemini provider over the Google
// generative AI SDK, using a response schema to force JSON output.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/providers"
)

const defaultModel = "gemini-1.5-flash"

// Provider implements providers.Provider for Gemini.
type Provider struct {
	client *genai.Client
	model  string
}

// New creates a Gemini provider. Close releases the underlying client.
func New(ctx context.Context, config providers.Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, adskip.ErrMissingConfig
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, adskip.NewProviderError("gemini", "client_init", err.Error()).WithCause(err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client: client,
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "gemini"
}

// Model returns the configured model identifier.
func (p *Provider) Model() string {
	return p.model
}

// Generate runs one schema-constrained generation and returns the JSON body.
func (p *Provider) Generate(ctx context.Context, req providers.Request) ([]byte, error) {
	model := p.client.GenerativeModel(p.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"startTime":  {Type: genai.TypeNumber},
			"endTime":    {Type: genai.TypeNumber},
			"advertiser": {Type: genai.TypeString},
		},
		Required: []string{"startTime", "endTime"},
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.User))
	if err != nil {
		return nil, wrapAPIError(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, adskip.ErrEmptyResponse
	}

	return []byte(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

// CheckConnectivity issues a minimal generation to confirm reachability.
func (p *Provider) CheckConnectivity(ctx context.Context) error {
	model := p.client.GenerativeModel(p.model)
	model.SetMaxOutputTokens(1)

	if _, err := model.GenerateContent(ctx, genai.Text("ping")); err != nil {
		return adskip.WrapNetworkError(wrapAPIError(err))
	}
	return nil
}

// Close releases the underlying client connection.
func (p *Provider) Close() error {
	return p.client.Close()
}

func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return adskip.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		pe := adskip.NewProviderError("gemini", "api_error", gerr.Message).
			WithStatusCode(gerr.Code)
		if gerr.Code == http.StatusTooManyRequests {
			return pe.WithCause(adskip.ErrRateLimited)
		}
		return pe.WithCause(err)
	}

	return adskip.NewProviderError("gemini", "api_error", err.Error()).WithCause(err)
}
