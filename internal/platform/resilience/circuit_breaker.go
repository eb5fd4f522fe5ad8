package resilience

import (
	"errors"

	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker guards calls to one remote dependency. Calls whose error does not
// satisfy the failure predicate count as successes, so caller mistakes such
// as a 404 never trip the circuit.
type Breaker struct {
	cb      *gobreaker.CircuitBreaker
	enabled bool
}

func NewBreaker(cfg CircuitBreakerConfig, isFailure func(error) bool) *Breaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if isFailure == nil {
		isFailure = func(err error) bool { return err != nil }
	}

	threshold := uint32(cfg.FailureThreshold)
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isFailure(err)
		},
	}

	return &Breaker{
		cb:      gobreaker.NewCircuitBreaker(settings),
		enabled: cfg.Enabled,
	}
}

// Execute runs fn through the breaker. A rejected call returns ErrCircuitOpen.
func (b *Breaker) Execute(fn func() (any, error)) (any, error) {
	if b == nil || !b.enabled {
		return fn()
	}

	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return out, err
}

func (b *Breaker) State() string {
	if b == nil || !b.enabled {
		return "disabled"
	}
	return b.cb.State().String()
}
