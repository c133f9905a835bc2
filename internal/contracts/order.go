package contracts

import "time"

// OrderSide represents buy or sell
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderType represents the order type sent to the brokerage
type OrderType string

const (
	OrderTypeMarket       OrderType = "market"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

// TimeInForce represents how long an order stays active
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "gtc" // good 'til cancelled
	TimeInForceDay TimeInForce = "day"
)

// OrderRequest is a single order submitted to the brokerage.
type OrderRequest struct {
	Symbol       string      `json:"symbol"`
	Qty          int         `json:"qty"`
	Side         OrderSide   `json:"side"`
	Type         OrderType   `json:"type"`
	TimeInForce  TimeInForce `json:"time_in_force"`
	TrailPercent float64     `json:"trail_percent,omitempty"` // trailing_stop only
}

// OrderResult is the brokerage's response to a submitted order.
type OrderResult struct {
	OrderID     string    `json:"order_id"`
	Symbol      string    `json:"symbol"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Account is the brokerage account snapshot used for position sizing.
type Account struct {
	Equity         float64 `json:"equity"`
	PortfolioValue float64 `json:"portfolio_value"`
	Cash           float64 `json:"cash"`
}

// EquityValue returns the first usable equity figure, falling back from
// equity to portfolio value to cash. Returns 0 when none is usable.
func (a *Account) EquityValue() float64 {
	for _, v := range []float64{a.Equity, a.PortfolioValue, a.Cash} {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Position is an open brokerage position.
type Position struct {
	Symbol       string  `json:"symbol"`
	Qty          int     `json:"qty"`
	AvgEntry     float64 `json:"avg_entry_price"`
	CurrentPrice float64 `json:"current_price"`
}

// PercentGain returns the unrealized gain in percent relative to entry.
func (p *Position) PercentGain() float64 {
	if p.AvgEntry == 0 {
		return 0
	}
	return (p.CurrentPrice - p.AvgEntry) / p.AvgEntry * 100
}

// BrokerOrder is an order record read back from the brokerage.
type BrokerOrder struct {
	OrderID        string    `json:"order_id"`
	Symbol         string    `json:"symbol"`
	Side           OrderSide `json:"side"`
	Qty            int       `json:"qty"`
	FilledAt       time.Time `json:"filled_at"`
	FilledAvgPrice float64   `json:"filled_avg_price"`
}
