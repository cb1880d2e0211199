package providers

import (
	"context"
	"time"

	"github.com/heibot/adskip/utils"
)

// ResilientConfig configures the resilient provider wrapper.
type ResilientConfig struct {
	// Retry configuration
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Logger for API calls
	Logger APILogger

	// EnableRetry controls whether retry is enabled.
	EnableRetry bool

	// EnableLogging controls whether logging is enabled.
	EnableLogging bool
}

// DefaultResilientConfig returns sensible defaults.
func DefaultResilientConfig() ResilientConfig {
	return ResilientConfig{
		MaxRetries:    3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      30 * time.Second,
		EnableRetry:   true,
		EnableLogging: true,
	}
}

// ResilientProvider wraps a provider with retry and logging capabilities.
type ResilientProvider struct {
	provider Provider
	config   ResilientConfig
	retryer  *utils.Retryer
	logger   APILogger
}

// NewResilientProvider creates a new resilient provider wrapper.
func NewResilientProvider(provider Provider, config ResilientConfig) *ResilientProvider {
	rp := &ResilientProvider{
		provider: provider,
		config:   config,
	}

	// Setup retryer
	if config.EnableRetry {
		rp.retryer = utils.NewRetryer(utils.RetryConfig{
			MaxRetries:   config.MaxRetries,
			InitialDelay: config.InitialDelay,
			MaxDelay:     config.MaxDelay,
			Multiplier:   2.0,
			Jitter:       0.1,
		})
	}

	// Setup logger
	if config.EnableLogging {
		if config.Logger != nil {
			rp.logger = config.Logger
		} else {
			rp.logger = GlobalLogger
		}
	} else {
		rp.logger = NopLogger{}
	}

	return rp
}

// Name returns the provider name.
func (rp *ResilientProvider) Name() string {
	return rp.provider.Name()
}

// Generate runs one inference call with retry and logging.
func (rp *ResilientProvider) Generate(ctx context.Context, req Request) ([]byte, error) {
	timer := StartLog(rp.logger, rp.provider.Name(), "generate").
		WithVideoID(req.VideoID).
		WithPromptSize(len(req.System) + len(req.User)).
		WithExtra("prompt_hash", utils.TruncateHash(utils.HashText(req.User), 12))
	if m, ok := rp.provider.(interface{ Model() string }); ok {
		timer = timer.WithModel(m.Model())
	}

	var raw []byte
	var retryCount int

	executeGenerate := func() error {
		var err error
		raw, err = rp.provider.Generate(ctx, req)
		if err != nil {
			retryCount++
			return err
		}
		return nil
	}

	if rp.retryer != nil {
		err := rp.retryer.Do(ctx, executeGenerate)
		if err != nil {
			timer.WithRetryCount(retryCount).Error(ctx, err, nil)
			return nil, err
		}
	} else {
		if err := executeGenerate(); err != nil {
			timer.Error(ctx, err, nil)
			return nil, err
		}
	}

	timer.WithRetryCount(retryCount).
		WithExtra("response_size", len(raw)).
		Success(ctx, nil)
	return raw, nil
}

// CheckConnectivity probes the backend with logging. Probes are not
// retried; a failed probe reports the backend as unreachable right away.
func (rp *ResilientProvider) CheckConnectivity(ctx context.Context) error {
	timer := StartLog(rp.logger, rp.provider.Name(), "connectivity")

	if err := rp.provider.CheckConnectivity(ctx); err != nil {
		timer.Error(ctx, err, nil)
		return err
	}

	timer.Success(ctx, nil)
	return nil
}

// Unwrap returns the underlying provider.
func (rp *ResilientProvider) Unwrap() Provider {
	return rp.provider
}

// WrapWithResilience wraps a provider with default resilience configuration.
func WrapWithResilience(provider Provider) *ResilientProvider {
	return NewResilientProvider(provider, DefaultResilientConfig())
}

// WrapWithRetry wraps a provider with retry only.
func WrapWithRetry(provider Provider, maxRetries int) *ResilientProvider {
	return NewResilientProvider(provider, ResilientConfig{
		MaxRetries:    maxRetries,
		InitialDelay:  1 * time.Second,
		MaxDelay:      30 * time.Second,
		EnableRetry:   true,
		EnableLogging: false,
	})
}

// WrapWithLogging wraps a provider with logging only.
func WrapWithLogging(provider Provider, logger APILogger) *ResilientProvider {
	return NewResilientProvider(provider, ResilientConfig{
		Logger:        logger,
		EnableRetry:   false,
		EnableLogging: true,
	})
}
