// Package resilience decorates calls to a downstream service with a fixed
// timeout and circuit-breaker gating. Single-result calls fail closed: a
// timeout, an open breaker, or a transport error surfaces as
// domain.ErrProductServiceUnavailable wrapping the cause. Streaming calls
// fail open: any failure degrades to an empty result so listing paths never
// distinguish "no items" from "source down".
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// DefaultTimeout bounds every wrapped downstream call.
const DefaultTimeout = 2 * time.Second

// Settings tunes a Wrapper. Zero values fall back to defaults.
type Settings struct {
	// Name identifies the downstream service; it tags errors and log lines.
	Name string
	// Timeout bounds each call. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRequests is the number of probe calls allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic period for clearing counts while closed.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// FailureThreshold is the consecutive-failure count that trips the
	// breaker. Defaults to 5.
	FailureThreshold uint32
}

// Wrapper guards calls to one downstream service. A single instance is shared
// process-wide per downstream; the embedded breaker is safe for concurrent
// use.
type Wrapper struct {
	name    string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// New builds a Wrapper around a named circuit breaker. State transitions are
// logged at warn level.
func New(s Settings, log zerolog.Logger) *Wrapper {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Wrapper{name: s.Name, timeout: timeout, breaker: breaker, log: log}
}

// Name returns the downstream service name the wrapper guards.
func (w *Wrapper) Name() string { return w.name }

// Do runs fn under the wrapper's timeout and breaker. A nil fn is a no-op
// returning the zero value. Any failure is mapped to
// domain.ErrProductServiceUnavailable with the breaker name and cause
// attached.
func Do[T any](ctx context.Context, w *Wrapper, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if fn == nil {
		return zero, nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	result, err := w.breaker.Execute(func() (any, error) {
		v, callErr := fn(ctx)
		if callErr != nil {
			return nil, callErr
		}
		// Breaker counts a late completion as a failure too.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return v, nil
	})
	if err != nil {
		w.log.Warn().Err(err).Str("breaker", w.name).Msg("downstream call failed")
		return zero, fmt.Errorf("%w: breaker %q: %v", domain.ErrProductServiceUnavailable, w.name, err)
	}

	v, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return v, nil
}

// DoStream runs fn under the same timeout and breaker gating as Do, but fails
// open: on any failure the stream is replaced with an empty one and no error
// is returned. Callers must treat "no items" and "source failed" identically.
func DoStream[T any](ctx context.Context, w *Wrapper, fn func(ctx context.Context) ([]T, error)) []T {
	if fn == nil {
		return nil
	}

	items, err := Do(ctx, w, fn)
	if err != nil {
		w.log.Warn().Err(err).Str("breaker", w.name).Msg("stream degraded to empty")
		return nil
	}
	return items
}
