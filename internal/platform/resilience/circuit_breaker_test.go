package resilience

import (
	"errors"
	"testing"
	"time"
)

var (
	errTransient = errors.New("transient")
	errCaller    = errors.New("caller mistake")
)

func failing(err error) func() (any, error) {
	return func() (any, error) { return nil, err }
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker(CircuitBreakerConfig{
		Name:             "test",
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, func(err error) bool { return errors.Is(err, errTransient) })

	if _, err := b.Execute(failing(errTransient)); !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if state := b.State(); state != "closed" {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	if _, err := b.Execute(failing(errTransient)); !errors.Is(err, errTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	if state := b.State(); state != "open" {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	_, err := b.Execute(func() (any, error) {
		called = true
		return "ok", nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("open breaker must not run the call")
	}
}

func TestBreaker_IgnoresNonFailureErrors(t *testing.T) {
	b := NewBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
	}, func(err error) bool { return errors.Is(err, errTransient) })

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(failing(errCaller)); !errors.Is(err, errCaller) {
			t.Fatalf("expected caller error, got %v", err)
		}
	}
	if state := b.State(); state != "closed" {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestBreaker_Disabled(t *testing.T) {
	b := NewBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1}, nil)
	for i := 0; i < 3; i++ {
		_, _ = b.Execute(failing(errTransient))
	}
	out, err := b.Execute(func() (any, error) { return "ok", nil })
	if err != nil || out != "ok" {
		t.Fatalf("disabled breaker should pass through, got out=%v err=%v", out, err)
	}
	if b.State() != "disabled" {
		t.Fatalf("unexpected state: %s", b.State())
	}
}
