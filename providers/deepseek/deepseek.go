// Package deepseek implements the DeepSeek provider over its
// OpenAI-compatible chat completion API.
package deepseek

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/providers"
)

const (
	defaultBaseURL = "https://api.deepseek.com"
	defaultModel   = "deepseek-chat"
)

// Provider implements providers.Provider for DeepSeek.
type Provider struct {
	client openai.Client
	model  string
}

// New creates a DeepSeek provider.
func New(config providers.Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, adskip.ErrMissingConfig
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithBaseURL(baseURL),
	}
	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(config.Timeout))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "deepseek"
}

// Model returns the configured model identifier.
func (p *Provider) Model() string {
	return p.model
}

// Generate runs one chat completion in JSON mode and returns the extracted
// JSON object from the reply.
func (p *Provider) Generate(ctx context.Context, req providers.Request) ([]byte, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Model:       p.model,
		Temperature: openai.Float(0.2),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	})
	if err != nil {
		return nil, wrapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, adskip.ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, adskip.ErrEmptyResponse
	}
	return []byte(extractJSONObject(content)), nil
}

// CheckConnectivity issues a minimal completion to confirm the endpoint
// and credentials work. Callers should bound it with a short deadline.
func (p *Provider) CheckConnectivity(ctx context.Context) error {
	_, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("ping"),
		},
		Model:               p.model,
		MaxCompletionTokens: openai.Int(1),
	})
	if err != nil {
		return adskip.WrapNetworkError(wrapAPIError(err))
	}
	return nil
}

func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := contextError(err); ctxErr != nil {
		return ctxErr
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		pe := adskip.NewProviderError("deepseek", "api_error", apierr.Message).
			WithStatusCode(apierr.StatusCode)
		if apierr.StatusCode == http.StatusTooManyRequests {
			return pe.WithCause(adskip.ErrRateLimited)
		}
		return pe.WithCause(err)
	}

	return adskip.NewProviderError("deepseek", "api_error", err.Error()).WithCause(err)
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return adskip.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	return nil
}

// extractJSONObject pulls the first balanced-looking JSON object out of a
// reply, tolerating models that wrap the object in prose or code fences.
func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
