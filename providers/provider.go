// Package providers defines the provider interface and common types for
// AI inference backends used in ad detection.
package providers

import (
	"context"
	"time"
)

// Request carries one inference request: a fixed system instruction and
// the per-video user prompt.
type Request struct {
	// System is the instruction establishing the task and output contract.
	System string

	// User is the video-specific prompt (metadata plus compressed text).
	User string

	// VideoID identifies the video, for logging only.
	VideoID string
}

// Provider defines the interface for AI inference backends.
type Provider interface {
	// Name returns the provider name (e.g., "deepseek", "gemini").
	Name() string

	// Generate runs one inference call and returns the raw response body.
	// The response is expected to contain a single JSON object; parsing
	// and validation happen downstream.
	Generate(ctx context.Context, req Request) ([]byte, error)

	// CheckConnectivity performs a cheap reachability probe against the
	// backend. It should be called with a shorter deadline than Generate.
	CheckConnectivity(ctx context.Context) error
}

// Config is the base configuration for providers.
type Config struct {
	APIKey  string
	BaseURL string        // Optional override of the vendor default
	Model   string        // Optional override of the provider's default model
	Timeout time.Duration // Per-call HTTP timeout
}
