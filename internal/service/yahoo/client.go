// Package yahoo reads daily price history from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SwingBasket/internal/domain/models"
	xhttp "SwingBasket/pkg/http"
	applogger "SwingBasket/pkg/logger"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Config holds the provider settings.
type Config struct {
	BaseURL   string
	Range     string
	Interval  string
	Timeout   time.Duration
	UserAgent string
	RPS       float64
	Burst     int

	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32
}

// Client implements repository.HistoryProvider.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     *applogger.Logger
}

// NewClient builds a chart API client guarded by a rate limiter and a circuit breaker.
func NewClient(cfg Config, log *applogger.Logger) *Client {
	if cfg.Range == "" {
		cfg.Range = "1mo"
	}
	if cfg.Interval == "" {
		cfg.Interval = "1d"
	}
	if cfg.BreakerFailureThreshold == 0 {
		cfg.BreakerFailureThreshold = 5
	}
	if log == nil {
		log = applogger.Nop()
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout), xhttp.WithUserAgent(cfg.UserAgent)),
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}

	threshold := cfg.BreakerFailureThreshold
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "yahoo-chart",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Unknown tickers are a valid answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, models.ErrTickerNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				applogger.String("breaker", name),
				applogger.String("from", from.String()),
				applogger.String("to", to.String()),
			)
		},
	})

	return c
}

// History returns the daily bars for symbol, oldest first.
func (c *Client) History(ctx context.Context, symbol string) (models.PriceHistory, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.PriceHistory{}, fmt.Errorf("rate limit wait: %w", err)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, symbol)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return models.PriceHistory{}, fmt.Errorf("quote provider unavailable: %w", err)
		}
		return models.PriceHistory{}, err
	}
	return res.(models.PriceHistory), nil
}

func (c *Client) fetch(ctx context.Context, symbol string) (models.PriceHistory, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    strings.TrimRight(c.cfg.BaseURL, "/") + "/v8/finance/chart/" + url.PathEscape(symbol),
		QueryParams: map[string][]string{
			"range":    {c.cfg.Range},
			"interval": {c.cfg.Interval},
		},
		Headers: map[string]string{"Accept": "application/json"},
	}, &resp)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return models.PriceHistory{}, fmt.Errorf("%s: %w", symbol, models.ErrTickerNotFound)
		}
		return models.PriceHistory{}, fmt.Errorf("fetch chart %s: %w", symbol, err)
	}

	if resp.Chart.Error != nil {
		if strings.EqualFold(resp.Chart.Error.Code, "Not Found") {
			return models.PriceHistory{}, fmt.Errorf("%s: %w", symbol, models.ErrTickerNotFound)
		}
		return models.PriceHistory{}, fmt.Errorf("chart %s: %s: %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return models.PriceHistory{}, fmt.Errorf("%s: %w", symbol, models.ErrTickerNotFound)
	}

	h := resp.Chart.Result[0].toHistory(symbol)
	if len(h.Bars) == 0 {
		return models.PriceHistory{}, fmt.Errorf("%s: empty history: %w", symbol, models.ErrTickerNotFound)
	}

	c.log.Debug("chart fetched",
		applogger.String("symbol", symbol),
		applogger.Int("bars", len(h.Bars)),
	)
	return h, nil
}
