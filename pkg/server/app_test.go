package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SwingBasket/pkg/config"
	applogger "SwingBasket/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
}

type nopPublisher struct{}

func (nopPublisher) PublishMessage(context.Context, string, interface{}) error { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.BodyLimitMB = 1
	cfg.Kafka.LogTopic = "swingbasket.logs"
	return cfg
}

func TestApp_ServerRoutes(t *testing.T) {
	app := New(testConfig(t), nil, pingHandler{})

	rec := httptest.NewRecorder()
	app.Server().Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())

	rec = httptest.NewRecorder()
	app.Server().Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_RunContextStopsOnCancel(t *testing.T) {
	app := New(testConfig(t), applogger.Nop(), pingHandler{})
	app.SetLogPublisher(nopPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
