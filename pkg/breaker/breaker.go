package breaker

import (
	"time"

	"github.com/sony/gobreaker"
)

// Breaker wraps a circuit breaker for calls to flaky external services.
// Trips after a run of consecutive failures and half-opens after timeout.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker that trips after maxFailures consecutive failures
// and stays open for timeout before probing again.
func New(name string, maxFailures uint32, timeout time.Duration) *Breaker {
	st := gobreaker.Settings{Name: name}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= maxFailures
	}
	st.Interval = 0
	st.Timeout = timeout

	return &Breaker{cb: gobreaker.NewCircuitBreaker(st)}
}

// Execute runs fn through the breaker.
func (b *Breaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return b.cb.Execute(fn)
}

// State returns the current breaker state name (closed, half-open, open).
func (b *Breaker) State() string {
	return b.cb.State().String()
}
