package contracts

import "time"

// RunError records a per-symbol failure that was caught and excluded.
// Failures never abort the batch; they accumulate here.
type RunError struct {
	Symbol  string `json:"symbol"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// PlacedOrder records a submitted order together with the broker's answer.
// Orders are logged as they are placed, not batched at the end, so an
// aborted run still accounts for everything already submitted.
type PlacedOrder struct {
	Symbol  string       `json:"symbol"`
	Qty     int          `json:"qty"`
	Side    OrderSide    `json:"side"`
	Result  *OrderResult `json:"result,omitempty"`
	Err     string       `json:"error,omitempty"`
	Attempt time.Time    `json:"attempt"`
}

// RunSummary is the structured result every strategy run returns.
// A run always completes with a summary; it never aborts silently.
type RunSummary struct {
	Strategy  string        `json:"strategy"`
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	Regime Regime `json:"regime,omitempty"`

	// Per-stage counts
	Attempted int `json:"attempted"`
	Qualified int `json:"qualified"`
	Ranked    int `json:"ranked"`
	Gated     int `json:"gated"`
	Sized     int `json:"sized"`
	Submitted int `json:"submitted"`

	// EmptiedAt names the stage whose output was empty when the run
	// terminated with zero orders. Empty string when orders were placed.
	EmptiedAt Stage `json:"emptied_at,omitempty"`

	Orders []PlacedOrder `json:"orders,omitempty"`
	Errors []RunError    `json:"errors,omitempty"`

	// Exclusions maps filter name to the number of candidates it rejected.
	Exclusions map[string]int `json:"exclusions,omitempty"`
}

// AddError appends a per-symbol failure to the summary.
func (s *RunSummary) AddError(symbol string, stage Stage, err error) {
	s.Errors = append(s.Errors, RunError{
		Symbol:  symbol,
		Stage:   stage,
		Message: err.Error(),
	})
}

// ZeroOrders reports whether the run produced no submitted orders.
func (s *RunSummary) ZeroOrders() bool {
	return s.Submitted == 0
}
