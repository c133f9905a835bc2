package contracts

import (
	"context"
	"time"
)

// MarketData provides quotes, metrics, earnings calendars and company news.
// Every call may fail; callers catch failures per symbol.
type MarketData interface {
	// GetQuote retrieves the current quote for a symbol
	GetQuote(ctx context.Context, symbol string) (*Quote, error)

	// GetMetrics retrieves liquidity and fundamental metrics for a symbol
	GetMetrics(ctx context.Context, symbol string) (*Metrics, error)

	// GetEarningsCalendar retrieves earnings events released on a date
	GetEarningsCalendar(ctx context.Context, date time.Time) ([]EarningsEvent, error)

	// GetCompanyNews retrieves news items for a symbol within a window
	GetCompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]NewsItem, error)
}

// SeriesProvider provides macro time-series observations.
type SeriesProvider interface {
	// GetObservations returns the ordered observations for a series
	// between from and to, oldest first. Placeholder data points are
	// returned with Missing set rather than dropped.
	GetObservations(ctx context.Context, seriesID string, from, to time.Time) ([]SeriesObservation, error)
}

// Broker defines the brokerage operations the pipeline depends on.
// Reads and order submission are separate, non-transactional calls.
type Broker interface {
	// GetAccount retrieves the account snapshot (equity)
	GetAccount(ctx context.Context) (*Account, error)

	// GetPositions retrieves open positions
	GetPositions(ctx context.Context) ([]Position, error)

	// GetOrders retrieves orders filtered by status (e.g. "filled")
	GetOrders(ctx context.Context, status string) ([]BrokerOrder, error)

	// SubmitOrder submits an order
	SubmitOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}

// SentimentClassifier scores a headline. Treated as unreliable: callers
// fall back to a neutral verdict when it fails.
type SentimentClassifier interface {
	Classify(ctx context.Context, symbol, headline string) (*SentimentVerdict, error)
}

// SentimentRecorder appends classifier verdicts to the external log.
// Pure side-channel; the pipeline never reads it back.
type SentimentRecorder interface {
	Record(ctx context.Context, verdicts []SentimentVerdict) error
}
