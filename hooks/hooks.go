// Package hooks provides the hook interface for handling detection events.
package hooks

import (
	"context"
)

// Hooks defines the interface for handling detection events.
// Implement this interface to receive notifications as detections resolve.
type Hooks interface {
	// OnAdDetected is called when an ad segment is confirmed.
	OnAdDetected(ctx context.Context, e AdDetectedEvent) error

	// OnNoAdConfirmed is called when a detection confirms the absence of an ad.
	OnNoAdConfirmed(ctx context.Context, e NoAdConfirmedEvent) error

	// OnRuleLearned is called when the learned rule set is updated.
	OnRuleLearned(ctx context.Context, e RuleLearnedEvent) error

	// OnDetectionFailed is called when a detection fails.
	OnDetectionFailed(ctx context.Context, e DetectionFailedEvent) error
}

// NopHooks is a no-op implementation of Hooks.
type NopHooks struct{}

// OnAdDetected does nothing.
func (NopHooks) OnAdDetected(ctx context.Context, e AdDetectedEvent) error {
	return nil
}

// OnNoAdConfirmed does nothing.
func (NopHooks) OnNoAdConfirmed(ctx context.Context, e NoAdConfirmedEvent) error {
	return nil
}

// OnRuleLearned does nothing.
func (NopHooks) OnRuleLearned(ctx context.Context, e RuleLearnedEvent) error {
	return nil
}

// OnDetectionFailed does nothing.
func (NopHooks) OnDetectionFailed(ctx context.Context, e DetectionFailedEvent) error {
	return nil
}

// Ensure NopHooks implements Hooks.
var _ Hooks = NopHooks{}

// ChainHooks chains multiple Hooks implementations.
type ChainHooks []Hooks

// OnAdDetected calls all hooks in order.
func (ch ChainHooks) OnAdDetected(ctx context.Context, e AdDetectedEvent) error {
	for _, h := range ch {
		if err := h.OnAdDetected(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnNoAdConfirmed calls all hooks in order.
func (ch ChainHooks) OnNoAdConfirmed(ctx context.Context, e NoAdConfirmedEvent) error {
	for _, h := range ch {
		if err := h.OnNoAdConfirmed(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnRuleLearned calls all hooks in order.
func (ch ChainHooks) OnRuleLearned(ctx context.Context, e RuleLearnedEvent) error {
	for _, h := range ch {
		if err := h.OnRuleLearned(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// OnDetectionFailed calls all hooks in order.
func (ch ChainHooks) OnDetectionFailed(ctx context.Context, e DetectionFailedEvent) error {
	for _, h := range ch {
		if err := h.OnDetectionFailed(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// FuncHooks allows using functions as hooks.
type FuncHooks struct {
	OnAdDetectedFunc      func(ctx context.Context, e AdDetectedEvent) error
	OnNoAdConfirmedFunc   func(ctx context.Context, e NoAdConfirmedEvent) error
	OnRuleLearnedFunc     func(ctx context.Context, e RuleLearnedEvent) error
	OnDetectionFailedFunc func(ctx context.Context, e DetectionFailedEvent) error
}

// OnAdDetected calls the function if set.
func (fh FuncHooks) OnAdDetected(ctx context.Context, e AdDetectedEvent) error {
	if fh.OnAdDetectedFunc != nil {
		return fh.OnAdDetectedFunc(ctx, e)
	}
	return nil
}

// OnNoAdConfirmed calls the function if set.
func (fh FuncHooks) OnNoAdConfirmed(ctx context.Context, e NoAdConfirmedEvent) error {
	if fh.OnNoAdConfirmedFunc != nil {
		return fh.OnNoAdConfirmedFunc(ctx, e)
	}
	return nil
}

// OnRuleLearned calls the function if set.
func (fh FuncHooks) OnRuleLearned(ctx context.Context, e RuleLearnedEvent) error {
	if fh.OnRuleLearnedFunc != nil {
		return fh.OnRuleLearnedFunc(ctx, e)
	}
	return nil
}

// OnDetectionFailed calls the function if set.
func (fh FuncHooks) OnDetectionFailed(ctx context.Context, e DetectionFailedEvent) error {
	if fh.OnDetectionFailedFunc != nil {
		return fh.OnDetectionFailedFunc(ctx, e)
	}
	return nil
}
