package alpaca

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/config"
	"github.com/stonjarli/backend/pkg/httputil"
	"github.com/stonjarli/backend/pkg/logger"
)

// Client handles communication with the Alpaca brokerage API.
// All brokerage calls go through this client. Account reads and order
// submission are separate calls with no atomicity between them.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.AlpacaConfig
}

// NewClient creates a new Alpaca API client
func NewClient(cfg config.AlpacaConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	httpClient.WithHeaders(map[string]string{
		"APCA-API-KEY-ID":     cfg.APIKey,
		"APCA-API-SECRET-KEY": cfg.APISecret,
	})

	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// accountResponse mirrors /v2/account. Alpaca sends numbers as strings.
type accountResponse struct {
	Equity         string `json:"equity"`
	PortfolioValue string `json:"portfolio_value"`
	Cash           string `json:"cash"`
}

// GetAccount retrieves the account snapshot.
func (c *Client) GetAccount(ctx context.Context) (*contracts.Account, error) {
	var resp accountResponse
	if err := c.httpClient.GetJSON(ctx, c.cfg.BaseURL+"/v2/account", &resp); err != nil {
		return nil, fmt.Errorf("account request: %w", err)
	}

	return &contracts.Account{
		Equity:         parseFloatSafe(resp.Equity),
		PortfolioValue: parseFloatSafe(resp.PortfolioValue),
		Cash:           parseFloatSafe(resp.Cash),
	}, nil
}

// positionResponse mirrors /v2/positions entries
type positionResponse struct {
	Symbol        string `json:"symbol"`
	Qty           string `json:"qty"`
	AvgEntryPrice string `json:"avg_entry_price"`
	CurrentPrice  string `json:"current_price"`
}

// GetPositions retrieves open positions.
func (c *Client) GetPositions(ctx context.Context) ([]contracts.Position, error) {
	var resp []positionResponse
	if err := c.httpClient.GetJSON(ctx, c.cfg.BaseURL+"/v2/positions", &resp); err != nil {
		return nil, fmt.Errorf("positions request: %w", err)
	}

	positions := make([]contracts.Position, 0, len(resp))
	for _, p := range resp {
		positions = append(positions, contracts.Position{
			Symbol:       p.Symbol,
			Qty:          int(parseFloatSafe(p.Qty)),
			AvgEntry:     parseFloatSafe(p.AvgEntryPrice),
			CurrentPrice: parseFloatSafe(p.CurrentPrice),
		})
	}

	return positions, nil
}

// orderResponse mirrors /v2/orders entries
type orderResponse struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Side           string  `json:"side"`
	Qty            string  `json:"qty"`
	Status         string  `json:"status"`
	FilledAt       *string `json:"filled_at"`
	FilledAvgPrice *string `json:"filled_avg_price"`
	SubmittedAt    *string `json:"submitted_at"`
}

// GetOrders retrieves orders filtered by status (open, closed, all).
func (c *Client) GetOrders(ctx context.Context, status string) ([]contracts.BrokerOrder, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	params.Set("limit", "500")

	var resp []orderResponse
	fullURL := fmt.Sprintf("%s/v2/orders?%s", c.cfg.BaseURL, params.Encode())
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("orders request: %w", err)
	}

	orders := make([]contracts.BrokerOrder, 0, len(resp))
	for _, o := range resp {
		order := contracts.BrokerOrder{
			OrderID: o.ID,
			Symbol:  o.Symbol,
			Side:    contracts.OrderSide(o.Side),
			Qty:     int(parseFloatSafe(o.Qty)),
		}
		if o.FilledAt != nil {
			if t, err := time.Parse(time.RFC3339, *o.FilledAt); err == nil {
				order.FilledAt = t
			}
		}
		if o.FilledAvgPrice != nil {
			order.FilledAvgPrice = parseFloatSafe(*o.FilledAvgPrice)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// submitOrderRequest mirrors the /v2/orders POST body
type submitOrderRequest struct {
	Symbol       string `json:"symbol"`
	Qty          int    `json:"qty"`
	Side         string `json:"side"`
	Type         string `json:"type"`
	TimeInForce  string `json:"time_in_force"`
	TrailPercent string `json:"trail_percent,omitempty"`
}

// SubmitOrder submits an order to the brokerage.
func (c *Client) SubmitOrder(ctx context.Context, req contracts.OrderRequest) (*contracts.OrderResult, error) {
	body := submitOrderRequest{
		Symbol:      req.Symbol,
		Qty:         req.Qty,
		Side:        string(req.Side),
		Type:        string(req.Type),
		TimeInForce: string(req.TimeInForce),
	}
	if req.Type == contracts.OrderTypeTrailingStop && req.TrailPercent > 0 {
		body.TrailPercent = strconv.FormatFloat(req.TrailPercent, 'f', -1, 64)
	}

	resp, err := c.httpClient.PostJSON(ctx, c.cfg.BaseURL+"/v2/orders", body)
	if err != nil {
		return nil, fmt.Errorf("order submission for %s: %w", req.Symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("order rejected for %s with status %d: %s", req.Symbol, resp.StatusCode, string(respBody))
	}

	var result orderResponse
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("decode order response for %s: %w", req.Symbol, err)
	}

	submitted := time.Now()
	if result.SubmittedAt != nil {
		if t, err := time.Parse(time.RFC3339, *result.SubmittedAt); err == nil {
			submitted = t
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   req.Symbol,
		"qty":      req.Qty,
		"side":     req.Side,
		"order_id": result.ID,
	}).Info("Order submitted")

	return &contracts.OrderResult{
		OrderID:     result.ID,
		Symbol:      result.Symbol,
		Status:      result.Status,
		SubmittedAt: submitted,
	}, nil
}

// decodeJSON decodes a JSON body into dest
func decodeJSON(r io.Reader, dest interface{}) error {
	return json.NewDecoder(r).Decode(dest)
}

// parseFloatSafe converts Alpaca's numeric strings, returning 0 on junk.
func parseFloatSafe(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
