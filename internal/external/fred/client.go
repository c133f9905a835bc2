package fred

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/stonjarli/backend/internal/contracts"
	"github.com/stonjarli/backend/pkg/config"
	"github.com/stonjarli/backend/pkg/httputil"
	"github.com/stonjarli/backend/pkg/logger"
)

// Client handles communication with the FRED API.
// FRED reports "." for dates with no data; those come back as Missing
// observations so the regime classifier can skip them.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.FREDConfig
}

// NewClient creates a new FRED API client
func NewClient(cfg config.FREDConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// observationsResponse mirrors /series/observations
type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"` // "." marks no data
	} `json:"observations"`
}

// GetObservations returns the series observations between from and to,
// oldest first, as FRED delivers them.
func (c *Client) GetObservations(ctx context.Context, seriesID string, from, to time.Time) ([]contracts.SeriesObservation, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("file_type", "json")
	params.Set("observation_start", from.Format("2006-01-02"))
	params.Set("observation_end", to.Format("2006-01-02"))

	fullURL := fmt.Sprintf("%s/series/observations?%s", c.cfg.BaseURL, params.Encode())

	var resp observationsResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("observations request for %s: %w", seriesID, err)
	}

	obs := make([]contracts.SeriesObservation, 0, len(resp.Observations))
	for _, o := range resp.Observations {
		date, err := time.Parse("2006-01-02", o.Date)
		if err != nil {
			continue
		}

		if o.Value == "." {
			obs = append(obs, contracts.SeriesObservation{Date: date, Missing: true})
			continue
		}

		value, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			obs = append(obs, contracts.SeriesObservation{Date: date, Missing: true})
			continue
		}

		obs = append(obs, contracts.SeriesObservation{Date: date, Value: value})
	}

	return obs, nil
}
