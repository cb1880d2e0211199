package client

import (
	"context"
	"log"
	"sync"
	"time"
)

// PrunerConfig configures the background cache pruner.
type PrunerConfig struct {
	// Interval is how often to sweep the cache.
	Interval time.Duration
}

// DefaultPrunerConfig returns the default pruner configuration.
func DefaultPrunerConfig() PrunerConfig {
	return PrunerConfig{
		Interval: 6 * time.Hour,
	}
}

// Pruner periodically removes cache entries older than the client's TTL.
type Pruner struct {
	client *Client
	config PrunerConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// logger can be customized
	logger Logger
}

// Logger interface for logging.
type Logger interface {
	Printf(format string, v ...any)
}

// defaultLogger wraps standard log.
type defaultLogger struct{}

func (defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// NewPruner creates a new cache pruner.
func NewPruner(client *Client, config PrunerConfig) *Pruner {
	if config.Interval == 0 {
		config.Interval = 6 * time.Hour
	}

	return &Pruner{
		client: client,
		config: config,
		logger: defaultLogger{},
	}
}

// SetLogger sets a custom logger.
func (p *Pruner) SetLogger(logger Logger) {
	p.logger = logger
}

// Start starts the background sweep loop.
func (p *Pruner) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Printf("[Pruner] Started, sweeping every %s", p.config.Interval)
}

// Stop stops the pruner and waits for the sweep loop to finish.
func (p *Pruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.logger.Printf("[Pruner] Stopped")
}

func (p *Pruner) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	// Initial sweep
	p.sweepOnce()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.sweepOnce()
		}
	}
}

// sweepOnce performs a single prune cycle.
func (p *Pruner) sweepOnce() {
	ctx := p.ctx
	if ctx == nil {
		// Not started yet; PruneNow may run before Start.
		ctx = context.Background()
	}

	removed, err := p.client.PruneCache(ctx)
	if err != nil {
		p.logger.Printf("[Pruner] Error pruning cache: %v", err)
		return
	}
	if removed > 0 {
		p.logger.Printf("[Pruner] Removed %d expired cache entries", removed)
	}
}

// PruneNow runs an immediate synchronous sweep. Safe to call before Start.
func (p *Pruner) PruneNow() {
	p.sweepOnce()
}
