package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"SwingBasket/internal/domain/models"
	domrepo "SwingBasket/internal/domain/repository"
	applogger "SwingBasket/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeEvaluator validates a trade against market data.
type TradeEvaluator interface {
	Validate(ctx context.Context, trade models.TradeSignal) (models.ValidationResult, error)
}

// BasketUseCase turns a validated trade and a client list into a brokerage basket.
type BasketUseCase struct {
	validator TradeEvaluator
	allocator *AllocatorUseCase
	writer    domrepo.BasketWriter
	publisher domrepo.BasketPublisher
	metrics   domrepo.Metrics
	log       *applogger.Logger
	now       func() time.Time
}

func NewBasketUseCase(
	validator TradeEvaluator,
	allocator *AllocatorUseCase,
	writer domrepo.BasketWriter,
	publisher domrepo.BasketPublisher,
	metrics domrepo.Metrics,
	log *applogger.Logger,
) *BasketUseCase {
	return &BasketUseCase{
		validator: validator,
		allocator: allocator,
		writer:    writer,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// Build sizes an order for every eligible client. Clients whose allocation
// rounds to zero shares are skipped.
func (uc *BasketUseCase) Build(trade models.TradeSignal, eligible []models.ClientAccount, validation models.ValidationResult) []models.ClientOrder {
	orders := make([]models.ClientOrder, 0, len(eligible))

	for _, c := range eligible {
		qty, invested := uc.allocator.Allocate(c, trade.EntryPrice, validation.MaxQuantity)
		if qty <= 0 {
			uc.log.Warn("zero quantity, skipping client",
				applogger.String("account", c.AccountNumber),
				applogger.String("ticker", trade.Ticker),
			)
			continue
		}

		o := models.NewLimitBuyOrder(c.AccountNumber, trade.Ticker, qty, trade.EntryPrice)
		o.ClientName = c.ClientName
		amount := invested
		o.InvestedAmount = &amount
		orders = append(orders, o)
	}

	uc.log.Info("basket built",
		applogger.String("ticker", trade.Ticker),
		applogger.Int("orders", len(orders)),
	)
	return orders
}

// Summarize aggregates the basket. Invested statistics only consider orders
// carrying an invested amount.
func Summarize(orders []models.ClientOrder) models.SummaryStats {
	var s models.SummaryStats
	if len(orders) == 0 {
		return s
	}

	s.TotalOrders = len(orders)
	total := decimal.Zero
	n := 0
	for _, o := range orders {
		s.TotalShares += o.Quantity
		if o.InvestedAmount == nil || *o.InvestedAmount == 0 {
			continue
		}
		amt := *o.InvestedAmount
		if n == 0 || amt < s.MinInvestment {
			s.MinInvestment = amt
		}
		if n == 0 || amt > s.MaxInvestment {
			s.MaxInvestment = amt
		}
		total = total.Add(decimal.NewFromFloat(amt))
		n++
	}
	if n == 0 {
		return s
	}

	s.TotalInvested = total.InexactFloat64()
	s.AverageInvestment = total.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
	return s
}

// Generate runs the whole basket flow: validate, filter, size, write, summarize
// and announce. A rejected trade returns a result with TradeValid false and no
// orders. The basket file is written only when there is at least one order.
func (uc *BasketUseCase) Generate(ctx context.Context, trade models.TradeSignal, clients []models.ClientAccount) (models.BasketResult, error) {
	validation, err := uc.validator.Validate(ctx, trade)
	if err != nil {
		return models.BasketResult{}, fmt.Errorf("validate trade: %w", err)
	}
	return uc.Assemble(ctx, trade, validation, clients)
}

// Assemble continues the basket flow from an existing validation. Clients are
// not looked at when the validation rejected the trade.
func (uc *BasketUseCase) Assemble(ctx context.Context, trade models.TradeSignal, validation models.ValidationResult, clients []models.ClientAccount) (models.BasketResult, error) {
	start := uc.now()
	defer func() { uc.metrics.RecordLatency("basket_generate", time.Since(start).Seconds()) }()

	result := models.BasketResult{
		ID:                  uuid.NewString(),
		TradeValid:          validation.Valid,
		TechnicalValidation: validation,
		Orders:              []models.ClientOrder{},
		Timestamp:           start,
	}
	if !validation.Valid {
		uc.log.Info("trade rejected, no basket", applogger.String("ticker", trade.Ticker))
		return result, nil
	}

	uc.log.Info("generating basket",
		applogger.String("ticker", trade.Ticker),
		applogger.Int("clients", len(clients)),
	)

	eligible, messages := uc.allocator.FilterEligible(clients)
	orders := uc.Build(trade, eligible, validation)
	summary := Summarize(orders)

	result.Orders = orders
	result.TotalClients = len(clients)
	result.TotalOrders = len(orders)
	result.TotalInvestedAmount = summary.TotalInvested
	result.Summary = summary
	result.EligibilityMessages = messages

	if len(orders) == 0 {
		uc.log.Warn("basket has no orders, skipping file", applogger.String("ticker", trade.Ticker))
		return result, nil
	}

	path, err := uc.writer.Write(orders, trade.Ticker)
	if err != nil {
		if errors.Is(err, models.ErrNoOrders) {
			return result, nil
		}
		uc.metrics.RecordError("basket_write")
		return models.BasketResult{}, fmt.Errorf("write basket: %w", err)
	}
	result.FileName = filepath.Base(path)
	uc.metrics.RecordBasket(trade.Ticker, len(orders), summary.TotalInvested)
	uc.log.Info("basket file generated",
		applogger.String("ticker", trade.Ticker),
		applogger.String("path", path),
	)

	uc.publish(ctx, trade, result)
	return result, nil
}

func (uc *BasketUseCase) publish(ctx context.Context, trade models.TradeSignal, result models.BasketResult) {
	evt := models.BasketEvent{
		BasketID:      result.ID,
		Ticker:        trade.Ticker,
		EntryPrice:    trade.EntryPrice,
		Orders:        result.TotalOrders,
		TotalShares:   result.Summary.TotalShares,
		TotalInvested: result.TotalInvestedAmount,
		FileName:      result.FileName,
		GeneratedAt:   result.Timestamp,
	}
	if err := uc.publisher.PublishBasket(ctx, evt); err != nil {
		uc.metrics.RecordError("basket_publish")
		uc.log.Error("publish basket event failed",
			applogger.String("basket_id", result.ID),
			applogger.String("ticker", trade.Ticker),
			applogger.Error(err),
		)
	}
}
