package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"SwingBasket/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petrChart = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "PETR4.SA", "longName": "Petróleo Brasileiro S.A. - Petrobras", "shortName": "PETROBRAS PN"},
      "timestamp": [1704196800, 1704283200, 1704369600],
      "indicators": {"quote": [{
        "open":   [37.1, 37.5, null],
        "high":   [37.9, 38.0, null],
        "low":    [36.8, 37.2, null],
        "close":  [37.5, 37.8, null],
        "volume": [50000000, 42000000, null]
      }]}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:                 srv.URL,
		Timeout:                 2 * time.Second,
		BreakerFailureThreshold: 2,
		BreakerTimeout:          time.Minute,
	}, nil)
}

func TestClient_History(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(petrChart))
	})

	h, err := c.History(context.Background(), "PETR4.SA")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/PETR4.SA", gotPath)
	assert.Equal(t, "1mo", gotRange)
	assert.Equal(t, "1d", gotInterval)

	assert.Equal(t, "PETR4.SA", h.Symbol)
	assert.Equal(t, "Petróleo Brasileiro S.A. - Petrobras", h.CompanyName)
	require.Len(t, h.Bars, 2)
	assert.Equal(t, 37.8, h.Bars[1].Close)
	assert.Equal(t, 42_000_000.0, h.Bars[1].Volume)
	assert.True(t, h.Bars[0].Time.Before(h.Bars[1].Time))
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	})

	_, err := c.History(context.Background(), "XXXX3.SA")
	assert.ErrorIs(t, err, models.ErrTickerNotFound)
}

func TestClient_EmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	})

	_, err := c.History(context.Background(), "XXXX3.SA")
	assert.ErrorIs(t, err, models.ErrTickerNotFound)
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 5; i++ {
		_, err := c.History(context.Background(), "XXXX3.SA")
		require.ErrorIs(t, err, models.ErrTickerNotFound)
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestClient_ServerErrorsOpenBreaker(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 4; i++ {
		_, err := c.History(context.Background(), "PETR4.SA")
		require.Error(t, err)
		assert.NotErrorIs(t, err, models.ErrTickerNotFound)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
