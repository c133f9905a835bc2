package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/config"
	"github.com/stonjarli/backend/pkg/httputil"
	"github.com/stonjarli/backend/pkg/logger"
)

// Client handles communication with the Finnhub API.
// All Finnhub calls go through this client.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.FinnhubConfig
}

// NewClient creates a new Finnhub API client
func NewClient(cfg config.FinnhubConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// get builds the URL with the token and query params and decodes into dest.
func (c *Client) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	params.Set("token", c.cfg.APIKey)
	fullURL := fmt.Sprintf("%s%s?%s", c.cfg.BaseURL, path, params.Encode())
	return c.httpClient.GetJSON(ctx, fullURL, dest)
}

// quoteResponse mirrors Finnhub's /quote payload
type quoteResponse struct {
	Current       float64 `json:"c"`
	PreviousClose float64 `json:"pc"`
	Volume        float64 `json:"v"`
}

// GetQuote retrieves the current quote for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (*contracts.Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	var resp quoteResponse
	if err := c.get(ctx, "/quote", params, &resp); err != nil {
		return nil, fmt.Errorf("quote request for %s: %w", symbol, err)
	}

	quote := &contracts.Quote{
		Symbol:         symbol,
		Current:        resp.Current,
		PreviousClose:  resp.PreviousClose,
		IntradayVolume: resp.Volume,
	}

	if !quote.Valid() {
		return nil, fmt.Errorf("incomplete quote data for %s", symbol)
	}

	return quote, nil
}

// metricResponse mirrors the subset of /stock/metric we consume.
// Finnhub reports growth figures in percent.
type metricResponse struct {
	Metric struct {
		ADV10           *float64 `json:"10DayAverageTradingVolume"`
		ADV10Alt        *float64 `json:"10DayAvgVolume"`
		RevenueGrowth   *float64 `json:"revenueGrowthTTMYoy"`
		PERatio         *float64 `json:"peTTM"`
		PERatioBasic    *float64 `json:"peBasicExclExtraTTM"`
		DebtToEquity    *float64 `json:"totalDebt/totalEquityQuarterly"`
		DebtToEquityAnn *float64 `json:"totalDebt/totalEquityAnnual"`
	} `json:"metric"`
}

// GetMetrics retrieves liquidity and fundamental metrics for a symbol.
// Missing fields come back nil so downstream fallbacks apply.
func (c *Client) GetMetrics(ctx context.Context, symbol string) (*contracts.Metrics, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("metric", "all")

	var resp metricResponse
	if err := c.get(ctx, "/stock/metric", params, &resp); err != nil {
		return nil, fmt.Errorf("metric request for %s: %w", symbol, err)
	}

	m := &contracts.Metrics{Symbol: symbol}

	// ADV10 is reported in millions of shares
	adv := resp.Metric.ADV10
	if adv == nil {
		adv = resp.Metric.ADV10Alt
	}
	if adv != nil {
		m.ADV10 = *adv * 1_000_000
	}

	// Revenue growth arrives in percent; downstream expects a ratio
	if resp.Metric.RevenueGrowth != nil {
		ratio := *resp.Metric.RevenueGrowth / 100
		m.RevenueGrowth = &ratio
	}

	pe := resp.Metric.PERatio
	if pe == nil {
		pe = resp.Metric.PERatioBasic
	}
	m.PERatio = pe

	de := resp.Metric.DebtToEquity
	if de == nil {
		de = resp.Metric.DebtToEquityAnn
	}
	m.DebtRatio = de

	return m, nil
}

// earningsCalendarResponse mirrors /calendar/earnings
type earningsCalendarResponse struct {
	EarningsCalendar []struct {
		Symbol          string   `json:"symbol"`
		Date            string   `json:"date"`
		Hour            string   `json:"hour"` // "bmo" or "amc"
		EPSActual       *float64 `json:"epsActual"`
		EPSEstimate     *float64 `json:"epsEstimate"`
		RevenueActual   *float64 `json:"revenueActual"`
		RevenueEstimate *float64 `json:"revenueEstimate"`
	} `json:"earningsCalendar"`
}

// GetEarningsCalendar retrieves earnings events released on a date.
// Entries with missing EPS figures are returned with zeros; the surprise
// filter rejects them downstream.
func (c *Client) GetEarningsCalendar(ctx context.Context, date time.Time) ([]contracts.EarningsEvent, error) {
	day := date.Format("2006-01-02")

	params := url.Values{}
	params.Set("from", day)
	params.Set("to", day)

	var resp earningsCalendarResponse
	if err := c.get(ctx, "/calendar/earnings", params, &resp); err != nil {
		return nil, fmt.Errorf("earnings calendar request for %s: %w", day, err)
	}

	events := make([]contracts.EarningsEvent, 0, len(resp.EarningsCalendar))
	for _, e := range resp.EarningsCalendar {
		releaseDate, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			releaseDate = date
		}

		event := contracts.EarningsEvent{
			Symbol:        e.Symbol,
			ReleaseDate:   releaseDate,
			ReleaseTiming: contracts.ReleaseBeforeOpen,
		}
		if e.Hour == "amc" {
			event.ReleaseTiming = contracts.ReleaseAfterClose
		}
		if e.EPSActual != nil {
			event.EPSActual = *e.EPSActual
		}
		if e.EPSEstimate != nil {
			event.EPSEstimate = *e.EPSEstimate
		}
		if e.RevenueActual != nil {
			event.RevenueActual = *e.RevenueActual
		}
		if e.RevenueEstimate != nil {
			event.RevenueEstimate = *e.RevenueEstimate
		}

		events = append(events, event)
	}

	return events, nil
}

// newsItem mirrors /company-news entries
type newsItem struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Datetime int64  `json:"datetime"` // unix seconds
}

// GetCompanyNews retrieves news for a symbol within a date window.
func (c *Client) GetCompanyNews(ctx context.Context, symbol string, from, to time.Time) ([]contracts.NewsItem, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))

	var resp []newsItem
	if err := c.get(ctx, "/company-news", params, &resp); err != nil {
		return nil, fmt.Errorf("company news request for %s: %w", symbol, err)
	}

	items := make([]contracts.NewsItem, 0, len(resp))
	for _, n := range resp {
		if n.Headline == "" && n.Summary == "" {
			continue
		}
		items = append(items, contracts.NewsItem{
			Symbol:      symbol,
			Headline:    n.Headline,
			Summary:     n.Summary,
			PublishedAt: time.Unix(n.Datetime, 0).UTC(),
		})
	}

	return items, nil
}
