package deepseek

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/providers"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := New(providers.Config{}); !errors.Is(err, adskip.ErrMissingConfig) {
		t.Errorf("New() error = %v, want ErrMissingConfig", err)
	}
}

func TestNew_DefaultModel(t *testing.T) {
	p, err := New(providers.Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Model() != "deepseek-chat" {
		t.Errorf("Model() = %q, want deepseek-chat", p.Model())
	}
}

func TestWrapAPIError(t *testing.T) {
	rateLimited := wrapAPIError(&openai.Error{StatusCode: 429, Message: "rate limit reached"})
	if !errors.Is(rateLimited, adskip.ErrRateLimited) {
		t.Errorf("429 error = %v, want ErrRateLimited in chain", rateLimited)
	}
	if !adskip.IsRetryable(rateLimited) {
		t.Error("429 error not retryable")
	}

	serverErr := wrapAPIError(&openai.Error{StatusCode: 500, Message: "internal"})
	var pe *adskip.ProviderError
	if !errors.As(serverErr, &pe) || pe.StatusCode != 500 {
		t.Errorf("500 error = %v", serverErr)
	}
	if !adskip.IsRetryable(serverErr) {
		t.Error("500 error not retryable")
	}

	if err := wrapAPIError(context.DeadlineExceeded); !errors.Is(err, adskip.ErrTimeout) {
		t.Errorf("deadline error = %v, want ErrTimeout", err)
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"startTime":1}`, `{"startTime":1}`},
		{"code fence", "```json\n{\"startTime\":1}\n```", `{"startTime":1}`},
		{"prose wrapped", `分析结果：{"startTime":1}。`, `{"startTime":1}`},
		{"no object", "没有广告", "没有广告"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONObject(tt.in); got != tt.want {
				t.Errorf("extractJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
