package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SwingBasket/pkg/config"
	xhttp "SwingBasket/pkg/http"
	applogger "SwingBasket/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg          *config.Config
	log          *applogger.Logger
	httpServer   *xhttp.Server
	httpHandler  xhttp.Handler
	logPublisher applogger.Publisher
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:         cfg,
		log:         l,
		httpHandler: handler,
	}
}

// SetLogPublisher ships aggregated error logs to the configured log topic.
func (a *App) SetLogPublisher(p applogger.Publisher) { a.logPublisher = p }

// Server builds the HTTP server on first use.
func (a *App) Server() *xhttp.Server {
	if a.httpServer == nil {
		s := a.cfg.Server
		a.httpServer = xhttp.NewServer(a.httpHandler,
			xhttp.WithHost(s.Host),
			xhttp.WithPort(s.Port),
			xhttp.WithTimeouts(s.ReadTimeout, s.WriteTimeout, s.ShutdownTimeout),
			xhttp.WithSlowThreshold(s.SlowThreshold),
			xhttp.WithBodyLimit(s.BodyLimitMB<<20),
			xhttp.WithCORS(true, s.CORSOrigins...),
			xhttp.WithLogger(a.log),
		)
	}
	return a.httpServer
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is cancelled, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if a.logPublisher != nil {
		a.log.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          a.cfg.Kafka.LogTopic,
			Publisher:      a.logPublisher,
		})
		a.log.Info("log collector enabled", applogger.String("topic", a.cfg.Kafka.LogTopic))
	}

	if err := a.Server().Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("swing basket api started",
		applogger.String("env", a.cfg.Environment),
		applogger.String("cache", a.cfg.Cache.Backend),
		applogger.String("output_dir", a.cfg.Output.Dir),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// flush pending aggregated logs before the producer is closed by the caller
	a.log.RemoveCollector()

	a.log.Info("shutdown complete")
	return nil
}
