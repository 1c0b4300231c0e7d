package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankcore/customer-service/internal/core/domain"
)

var nopLogger = zerolog.Nop()

func TestDo_Success(t *testing.T) {
	w := New(Settings{Name: "downstream"}, nopLogger)

	got, err := Do(context.Background(), w, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("expected %q, got %q", "ok", got)
	}
}

func TestDo_FailureMapsToUnavailable(t *testing.T) {
	w := New(Settings{Name: "downstream"}, nopLogger)

	_, err := Do(context.Background(), w, func(ctx context.Context) (string, error) {
		return "", errors.New("connection refused")
	})
	if !errors.Is(err, domain.ErrProductServiceUnavailable) {
		t.Fatalf("expected ErrProductServiceUnavailable, got %v", err)
	}
	if err.Error() == domain.ErrProductServiceUnavailable.Error() {
		t.Error("error must carry the breaker name and the cause")
	}
}

func TestDo_TimeoutMapsToUnavailable(t *testing.T) {
	w := New(Settings{Name: "downstream", Timeout: 20 * time.Millisecond}, nopLogger)

	_, err := Do(context.Background(), w, func(ctx context.Context) (string, error) {
		select {
		case <-time.After(time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	if !errors.Is(err, domain.ErrProductServiceUnavailable) {
		t.Fatalf("expected ErrProductServiceUnavailable on timeout, got %v", err)
	}
}

func TestDo_LateCompletionCountsAsFailure(t *testing.T) {
	w := New(Settings{Name: "downstream", Timeout: 10 * time.Millisecond}, nopLogger)

	// The call ignores the context and completes after the deadline.
	_, err := Do(context.Background(), w, func(ctx context.Context) (string, error) {
		time.Sleep(30 * time.Millisecond)
		return "late", nil
	})
	if !errors.Is(err, domain.ErrProductServiceUnavailable) {
		t.Fatalf("expected ErrProductServiceUnavailable for late completion, got %v", err)
	}
}

func TestDo_OpenBreakerNeverReachesFn(t *testing.T) {
	w := New(Settings{Name: "downstream", FailureThreshold: 2, OpenTimeout: time.Minute}, nopLogger)

	boom := errors.New("boom")
	for i := 0; i < 2; i++ {
		_, _ = Do(context.Background(), w, func(ctx context.Context) (int, error) {
			return 0, boom
		})
	}

	called := false
	_, err := Do(context.Background(), w, func(ctx context.Context) (int, error) {
		called = true
		return 1, nil
	})
	if !errors.Is(err, domain.ErrProductServiceUnavailable) {
		t.Fatalf("expected ErrProductServiceUnavailable through open breaker, got %v", err)
	}
	if called {
		t.Error("fn must not run while the breaker is open")
	}
}

func TestDo_NilFnIsNoOp(t *testing.T) {
	w := New(Settings{Name: "downstream"}, nopLogger)

	got, err := Do[int](context.Background(), w, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected zero value, got %d", got)
	}
}

func TestDo_SuccessResetsConsecutiveFailures(t *testing.T) {
	w := New(Settings{Name: "downstream", FailureThreshold: 3}, nopLogger)

	boom := errors.New("boom")
	for i := 0; i < 2; i++ {
		_, _ = Do(context.Background(), w, func(ctx context.Context) (int, error) {
			return 0, boom
		})
	}
	if _, err := Do(context.Background(), w, func(ctx context.Context) (int, error) {
		return 7, nil
	}); err != nil {
		t.Fatalf("success after failures must pass: %v", err)
	}

	// Two more failures: the counter restarted, so the breaker stays closed.
	for i := 0; i < 2; i++ {
		_, _ = Do(context.Background(), w, func(ctx context.Context) (int, error) {
			return 0, boom
		})
	}
	called := false
	_, _ = Do(context.Background(), w, func(ctx context.Context) (int, error) {
		called = true
		return 1, nil
	})
	if !called {
		t.Error("breaker tripped although consecutive failures were reset")
	}
}

func TestDoStream_FailureDegradesToEmpty(t *testing.T) {
	w := New(Settings{Name: "downstream"}, nopLogger)

	items := DoStream(context.Background(), w, func(ctx context.Context) ([]string, error) {
		return nil, errors.New("connection reset")
	})
	if len(items) != 0 {
		t.Errorf("expected empty stream, got %v", items)
	}
}

func TestDoStream_TimeoutDegradesToEmpty(t *testing.T) {
	w := New(Settings{Name: "downstream", Timeout: 10 * time.Millisecond}, nopLogger)

	items := DoStream(context.Background(), w, func(ctx context.Context) ([]int, error) {
		select {
		case <-time.After(time.Second):
			return []int{1, 2, 3}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	if len(items) != 0 {
		t.Errorf("expected empty stream on timeout, got %v", items)
	}
}

func TestDoStream_Success(t *testing.T) {
	w := New(Settings{Name: "downstream"}, nopLogger)

	items := DoStream(context.Background(), w, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}
