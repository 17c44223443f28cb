package provider

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/codetranslator/internal/translation"
)

// BreakerSettings tunes the circuit breaker around a provider
type BreakerSettings struct {
	MaxFailures uint32        // consecutive failures before opening
	OpenTimeout time.Duration // how long to stay open before probing again
}

// DefaultBreakerSettings returns conservative breaker settings
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxFailures: 5,
		OpenTimeout: 30 * time.Second,
	}
}

// BreakerProvider wraps a Provider with a circuit breaker. While open,
// Stream fails immediately with gobreaker.ErrOpenState. It never retries.
type BreakerProvider struct {
	Provider
	cb *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps p with a circuit breaker
func NewBreakerProvider(p Provider, settings BreakerSettings) *BreakerProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations and missing keys say nothing about upstream health
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrNotConfigured)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("provider %s: circuit breaker %s -> %s", name, from, to)
		},
	})

	return &BreakerProvider{Provider: p, cb: cb}
}

// Stream opens the wrapped provider's stream through the breaker
func (b *BreakerProvider) Stream(ctx context.Context, prompt string) (translation.Stream, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.Provider.Stream(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}
	return out.(translation.Stream), nil
}

// State returns the current breaker state
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}
