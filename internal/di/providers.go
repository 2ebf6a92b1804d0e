package di

import (
	"context"
	"fmt"
	"time"

	"SwingBasket/internal/domain/repository"
	"SwingBasket/internal/handler/api"
	internalrepo "SwingBasket/internal/repository"
	"SwingBasket/internal/service/cache"
	apimetrics "SwingBasket/internal/service/metrics"
	"SwingBasket/internal/service/ratelimit"
	"SwingBasket/internal/service/yahoo"
	"SwingBasket/internal/usecase"
	"SwingBasket/pkg/config"
	pkgkafka "SwingBasket/pkg/kafka"
	applogger "SwingBasket/pkg/logger"
	"SwingBasket/pkg/metrics"
	"SwingBasket/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Nop{}
	}
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideHistoryProvider creates the Yahoo chart client.
func ProvideHistoryProvider(cfg *config.Config, l *applogger.Logger) repository.HistoryProvider {
	md := cfg.MarketData
	return yahoo.NewClient(yahoo.Config{
		BaseURL:                 md.BaseURL,
		Range:                   md.Range,
		Interval:                md.Interval,
		Timeout:                 md.Timeout,
		UserAgent:               md.UserAgent,
		RPS:                     md.RPS,
		Burst:                   md.Burst,
		BreakerMaxRequests:      md.Breaker.MaxRequests,
		BreakerInterval:         md.Breaker.Interval,
		BreakerTimeout:          md.Breaker.Timeout,
		BreakerFailureThreshold: md.Breaker.FailureThreshold,
	}, l)
}

// ProvideSnapshotCache creates the in-process or Redis snapshot cache.
func ProvideSnapshotCache(cfg *config.Config, l *applogger.Logger) (repository.SnapshotCache, func(), error) {
	if cfg.Cache.Backend != "redis" {
		return cache.NewMemoryCache(), func() {}, nil
	}

	r := cfg.Cache.Redis
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rc, err := cache.NewRedisCache(ctx,
		cache.WithRedisAddr(r.Addr),
		cache.WithRedisPassword(r.Password),
		cache.WithRedisDB(r.DB),
		cache.WithRedisPool(r.PoolSize, 2, 30*time.Second),
		cache.WithRedisPrefix(r.Prefix),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("redis cache: %w", err)
	}
	l.Info("snapshot cache: redis", applogger.String("addr", r.Addr))

	cleanup := func() {
		if err := rc.Close(); err != nil {
			l.Warn("redis close error", applogger.Error(err))
		}
	}
	return rc, cleanup, nil
}

// ProvideMarketData creates the market data gateway.
func ProvideMarketData(
	provider repository.HistoryProvider,
	c repository.SnapshotCache,
	m repository.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.MarketDataUseCase {
	return usecase.NewMarketDataUseCase(provider, c, m, l,
		usecase.WithExchangeSuffix(cfg.MarketData.Suffix),
		usecase.WithAverageWindow(cfg.MarketData.Window),
	)
}

// ProvideTradeValidator creates the trade rule evaluator.
func ProvideTradeValidator(market *usecase.MarketDataUseCase, m repository.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.TradeValidatorUseCase {
	return usecase.NewTradeValidatorUseCase(market, usecase.Rules{
		MinDailyLiquidity:  cfg.Rules.MinDailyLiquidity,
		MaxStopLossPercent: cfg.Rules.MaxStopLossPercent,
		MinRiskReward:      cfg.Rules.MinRiskReward,
		MaxVolumeFraction:  cfg.Rules.MaxVolumeFraction,
	}, m, l)
}

// ProvideAllocator creates the client eligibility filter and allocator.
func ProvideAllocator(cfg *config.Config, l *applogger.Logger) *usecase.AllocatorUseCase {
	return usecase.NewAllocatorUseCase(usecase.Eligibility{
		MinNetTotal:       cfg.Eligibility.MinNetTotal,
		MinAvailableRatio: cfg.Eligibility.MinAvailableRatio,
		AllocationRatio:   cfg.Eligibility.AllocationRatio,
	}, l)
}

// ProvideExcelWriter creates the basket file writer rooted at the output dir.
func ProvideExcelWriter(cfg *config.Config, l *applogger.Logger) (*internalrepo.ExcelWriter, error) {
	w, err := internalrepo.NewExcelWriter(cfg.Output.Dir, l)
	if err != nil {
		return nil, fmt.Errorf("excel writer: %w", err)
	}
	return w, nil
}

// ProvideKafkaProducer creates a Kafka producer. It returns nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Producer, func(), error) {
	if !cfg.Kafka.Enabled {
		return nil, func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.WriteTimeout),
		pkgkafka.WithBatchSize(1),
		pkgkafka.WithHashByKey(true),
		pkgkafka.WithAutoCreateTopics(cfg.Kafka.AutoCreate),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka producer ready",
		applogger.Strings("brokers", cfg.Kafka.Brokers),
		applogger.String("topic", cfg.Kafka.Topic),
	)

	cleanup := func() {
		if err := producer.Close(); err != nil {
			l.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	return producer, cleanup, nil
}

// ProvideBasketPublisher creates the basket event publisher.
func ProvideBasketPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.BasketPublisher {
	if producer == nil {
		return internalrepo.NoopBasketPublisher{}
	}
	return internalrepo.NewKafkaBasketPublisher(producer, cfg.Kafka.Topic)
}

// ProvideBasketUseCase creates the basket assembler.
func ProvideBasketUseCase(
	validator *usecase.TradeValidatorUseCase,
	allocator *usecase.AllocatorUseCase,
	writer repository.BasketWriter,
	publisher repository.BasketPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.BasketUseCase {
	return usecase.NewBasketUseCase(validator, allocator, writer, publisher, m, l)
}

// ProvideClientReader creates the client sheet reader.
func ProvideClientReader(l *applogger.Logger) *internalrepo.ClientFileReader {
	return internalrepo.NewClientFileReader(l)
}

// ProvideRateLimiter creates the per-address limiter. It returns nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	rl := cfg.Server.RateLimit
	if !rl.Enabled {
		return nil
	}
	return ratelimit.New(rl.RPS, rl.Burst, 10*time.Minute)
}

// ProvideHandler creates the basket HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	market *usecase.MarketDataUseCase,
	validator *usecase.TradeValidatorUseCase,
	baskets *usecase.BasketUseCase,
	clients *internalrepo.ClientFileReader,
	files repository.BasketWriter,
	limiter *ratelimit.Limiter,
) *api.BasketEchoHandler {
	if cfg.Metrics.Enabled {
		apimetrics.Register()
	}
	return api.NewBasketEchoHandler(l, market, validator, baskets, clients, files, limiter)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.BasketEchoHandler,
	producer *pkgkafka.Producer,
) *server.App {
	app := server.New(cfg, l, handler)
	if producer != nil && cfg.Kafka.LogTopic != "" {
		app.SetLogPublisher(producer)
	}
	return app
}
