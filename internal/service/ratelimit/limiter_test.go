package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowBurstPerKey(t *testing.T) {
	l := New(0.001, 2, time.Minute)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	assert.True(t, l.Allow("10.0.0.2"))
	assert.Equal(t, 2, l.Len())
}

func TestLimiter_EvictsIdleKeys(t *testing.T) {
	l := New(1, 1, time.Minute)
	base := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.Allow("a")

	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	l.Allow("b")

	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Middleware(t *testing.T) {
	e := echo.New()
	l := New(0.001, 1, time.Minute)
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, l.Middleware())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
