// Package feed fetches daily close prices from an external quote API. It is
// the only component that touches the network; the analytics core consumes
// its output as plain price records.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/series"
)

// Client produces daily close prices for a symbol, most recent last.
type Client interface {
	DailyCloses(ctx context.Context, symbol string, days int) ([]series.PricePoint, error)
}

// RestClient is a rate-limited HTTP client for the quote API.
// It implements the Client interface.
type RestClient struct {
	client  *resty.Client
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
}

var _ Client = (*RestClient)(nil)

// NewRestClient creates a quote API client from the feed configuration.
func NewRestClient(cfg *config.Feed, logger *zap.Logger) *RestClient {
	client := resty.New().SetBaseURL(cfg.BaseURL)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &RestClient{
		client:  client,
		apiKey:  cfg.ApiKey,
		logger:  logger.Named("feed"),
		limiter: limiter,
	}
}

type dailyCandle struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

type dailyResponse struct {
	Symbol  string        `json:"symbol"`
	Candles []dailyCandle `json:"candles"`
}

// DailyCloses fetches up to days of daily closes for the symbol.
func (c *RestClient) DailyCloses(ctx context.Context, symbol string, days int) ([]series.PricePoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey).
		SetQueryParam("symbol", symbol).
		SetQueryParam("days", fmt.Sprintf("%d", days)).
		SetResult(&dailyResponse{})

	resp, err := c.doRequest(ctx, req, "/v1/daily")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily closes for %s: %w", symbol, err)
	}

	result := resp.Result().(*dailyResponse)
	points := make([]series.PricePoint, 0, len(result.Candles))
	for _, candle := range result.Candles {
		date, err := time.Parse("2006-01-02", candle.Date)
		if err != nil {
			c.logger.Warn("Skipping candle with malformed date",
				zap.String("symbol", symbol), zap.String("date", candle.Date))
			continue
		}
		points = append(points, series.PricePoint{Date: date, Close: candle.Close})
	}
	return points, nil
}

// doRequest executes the request with rate limiting and retries on transient
// upstream failures.
func (c *RestClient) doRequest(ctx context.Context, req *resty.Request, url string) (*resty.Response, error) {
	const maxRetries = 3

	var resp *resty.Response
	var err error
	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		resp, err = req.Get(url)
		if err != nil {
			return nil, err
		}
		if resp.IsSuccess() {
			return resp, nil
		}

		status := resp.StatusCode()
		if status != http.StatusTooManyRequests && status < http.StatusInternalServerError {
			return nil, fmt.Errorf("quote API returned status %d: %s", status, resp.String())
		}

		c.logger.Warn("Transient quote API failure, retrying",
			zap.Int("status", status),
			zap.Int("attempt", i+1))
	}
	return nil, fmt.Errorf("quote API still failing after %d attempts: status %d", maxRetries, resp.StatusCode())
}
