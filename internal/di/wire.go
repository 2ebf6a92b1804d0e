//go:build wireinject
// +build wireinject

package di

import (
	"SwingBasket/internal/domain/repository"
	internalrepo "SwingBasket/internal/repository"
	"SwingBasket/internal/usecase"
	"SwingBasket/pkg/config"
	applogger "SwingBasket/pkg/logger"
	"SwingBasket/pkg/server"

	"github.com/google/wire"
)

var basketSet = wire.NewSet(
	// Metrics
	ProvideMetrics,

	// Infrastructure clients
	ProvideHistoryProvider,
	ProvideSnapshotCache,
	ProvideKafkaProducer,

	// Repositories
	ProvideExcelWriter,
	wire.Bind(new(repository.BasketWriter), new(*internalrepo.ExcelWriter)),
	ProvideBasketPublisher,

	// Use cases
	ProvideMarketData,
	ProvideTradeValidator,
	ProvideAllocator,
	ProvideBasketUseCase,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config, l *applogger.Logger) (*server.App, func(), error) {
	wire.Build(
		basketSet,
		ProvideClientReader,
		ProvideRateLimiter,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeBasket wires the basket flow without the HTTP layer.
func InitializeBasket(cfg *config.Config, l *applogger.Logger) (*usecase.BasketUseCase, func(), error) {
	wire.Build(basketSet)
	return nil, nil, nil
}
