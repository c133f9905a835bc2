package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/stonjarli/backend/internal/contracts"
)

// mockMarket serves canned market data keyed by symbol.
type mockMarket struct {
	quotes    map[string]*contracts.Quote
	metrics   map[string]*contracts.Metrics
	calendar  map[string][]contracts.EarningsEvent // keyed by yyyy-mm-dd
	news      map[string][]contracts.NewsItem
	quoteErrs map[string]error
}

func newMockMarket() *mockMarket {
	return &mockMarket{
		quotes:    make(map[string]*contracts.Quote),
		metrics:   make(map[string]*contracts.Metrics),
		calendar:  make(map[string][]contracts.EarningsEvent),
		news:      make(map[string][]contracts.NewsItem),
		quoteErrs: make(map[string]error),
	}
}

// addSymbol registers a symbol with a quote derived from price and pct
// move, plus moderate-growth fundamentals that pass the Q2/Q3 gate.
func (m *mockMarket) addSymbol(symbol string, price, pct float64) {
	prev := price / (1 + pct)
	m.quotes[symbol] = &contracts.Quote{
		Symbol:         symbol,
		Current:        price,
		PreviousClose:  prev,
		IntradayVolume: 2_000_000,
	}
	rg, pe := 0.15, 20.0
	m.metrics[symbol] = &contracts.Metrics{
		Symbol:        symbol,
		ADV10:         3_000_000,
		RevenueGrowth: &rg,
		PERatio:       &pe,
	}
}

func (m *mockMarket) GetQuote(ctx context.Context, symbol string) (*contracts.Quote, error) {
	if err := m.quoteErrs[symbol]; err != nil {
		return nil, err
	}
	q, ok := m.quotes[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}
	return q, nil
}

func (m *mockMarket) GetMetrics(ctx context.Context, symbol string) (*contracts.Metrics, error) {
	mt, ok := m.metrics[symbol]
	if !ok {
		return nil, fmt.Errorf("no metrics for %s", symbol)
	}
	return mt, nil
}

func (m *mockMarket) GetEarningsCalendar(ctx context.Context, date time.Time) ([]contracts.EarningsEvent, error) {
	return m.calendar[date.Format("2006-01-02")], nil
}

func (m *mockMarket) GetCompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]contracts.NewsItem, error) {
	return m.news[symbol], nil
}

// mockBroker records submitted orders and serves canned account state.
type mockBroker struct {
	account    *contracts.Account
	accountErr error
	positions  []contracts.Position
	orders     map[string][]contracts.BrokerOrder // keyed by status filter
	submitErrs map[string]error
	submitted  []contracts.OrderRequest
}

func newMockBroker(equity float64) *mockBroker {
	return &mockBroker{
		account:    &contracts.Account{Equity: equity},
		orders:     make(map[string][]contracts.BrokerOrder),
		submitErrs: make(map[string]error),
	}
}

func (b *mockBroker) GetAccount(ctx context.Context) (*contracts.Account, error) {
	if b.accountErr != nil {
		return nil, b.accountErr
	}
	return b.account, nil
}

func (b *mockBroker) GetPositions(ctx context.Context) ([]contracts.Position, error) {
	return b.positions, nil
}

func (b *mockBroker) GetOrders(ctx context.Context, status string) ([]contracts.BrokerOrder, error) {
	return b.orders[status], nil
}

func (b *mockBroker) SubmitOrder(ctx context.Context, req contracts.OrderRequest) (*contracts.OrderResult, error) {
	if err := b.submitErrs[req.Symbol]; err != nil {
		return nil, err
	}
	b.submitted = append(b.submitted, req)
	return &contracts.OrderResult{
		OrderID:     fmt.Sprintf("order-%d", len(b.submitted)),
		Symbol:      req.Symbol,
		Status:      "accepted",
		SubmittedAt: time.Now(),
	}, nil
}

// mockSeries feeds the regime classifier a fixed trend pair.
type mockSeries struct {
	rateRising bool
	bsRising   bool
}

func (s *mockSeries) GetObservations(ctx context.Context, seriesID string, from, to time.Time) ([]contracts.SeriesObservation, error) {
	rising := s.bsRising
	if seriesID == "DFF" {
		rising = s.rateRising
	}
	past, latest := 10.0, 5.0
	if rising {
		past, latest = 5.0, 10.0
	}
	return []contracts.SeriesObservation{
		{Date: from, Value: past},
		{Date: to, Value: latest},
	}, nil
}

// mockSentiment labels headlines from a fixed map, neutral by default.
type mockSentiment struct {
	labels map[string]contracts.SentimentLabel
	calls  []string
}

func (m *mockSentiment) Classify(ctx context.Context, symbol, headline string) (*contracts.SentimentVerdict, error) {
	m.calls = append(m.calls, symbol)
	label, ok := m.labels[symbol]
	if !ok {
		label = contracts.SentimentNeutral
	}
	return &contracts.SentimentVerdict{
		Symbol:   symbol,
		Headline: headline,
		Label:    label,
		ScoredAt: time.Now(),
	}, nil
}

// mockRecorder captures recorded verdicts.
type mockRecorder struct {
	recorded []contracts.SentimentVerdict
}

func (m *mockRecorder) Record(ctx context.Context, verdicts []contracts.SentimentVerdict) error {
	m.recorded = append(m.recorded, verdicts...)
	return nil
}
