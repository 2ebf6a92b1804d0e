package usecase

import (
	"fmt"

	"SwingBasket/internal/domain/models"
	applogger "SwingBasket/pkg/logger"
	"SwingBasket/pkg/util"

	"github.com/shopspring/decimal"
)

// Eligibility holds the capital requirements for joining a basket.
type Eligibility struct {
	MinNetTotal       float64
	MinAvailableRatio float64
	AllocationRatio   float64
}

// DefaultEligibility returns the desk's capital requirements.
func DefaultEligibility() Eligibility {
	return Eligibility{
		MinNetTotal:       20_000,
		MinAvailableRatio: 0.5,
		AllocationRatio:   0.5,
	}
}

// AllocatorUseCase filters clients by capital and sizes their orders.
type AllocatorUseCase struct {
	rules Eligibility
	log   *applogger.Logger
}

func NewAllocatorUseCase(rules Eligibility, log *applogger.Logger) *AllocatorUseCase {
	return &AllocatorUseCase{rules: rules, log: log}
}

// FilterEligible keeps the clients meeting both capital checks and returns one
// message per client, in input order.
func (uc *AllocatorUseCase) FilterEligible(clients []models.ClientAccount) ([]models.ClientAccount, []string) {
	eligible := make([]models.ClientAccount, 0, len(clients))
	messages := make([]string, 0, len(clients))

	for _, c := range clients {
		if c.NetTotal < uc.rules.MinNetTotal {
			messages = append(messages, fmt.Sprintf("❌ %s (%s): Insufficient net total R$ %s (minimum: R$ %s)",
				c.ClientName, c.AccountNumber, util.FormatMoney(c.NetTotal), util.FormatMoney(uc.rules.MinNetTotal)))
			continue
		}

		required := c.NetTotal * uc.rules.MinAvailableRatio
		if c.NetAvailable < required {
			messages = append(messages, fmt.Sprintf("❌ %s (%s): Insufficient balance R$ %s (needs: R$ %s)",
				c.ClientName, c.AccountNumber, util.FormatMoney(c.NetAvailable), util.FormatMoney(required)))
			continue
		}

		eligible = append(eligible, c)
		messages = append(messages, fmt.Sprintf("✅ %s (%s): Eligible - R$ %s available",
			c.ClientName, c.AccountNumber, util.FormatMoney(required)))
	}

	uc.log.Info("eligible clients",
		applogger.Int("eligible", len(eligible)),
		applogger.Int("total", len(clients)),
	)
	return eligible, messages
}

// Allocate sizes one client's order: a share of net total, capped by maxQty,
// then clamped so the invested amount never exceeds net available.
// It returns (0, 0) when no whole share fits.
func (uc *AllocatorUseCase) Allocate(c models.ClientAccount, entryPrice float64, maxQty int64) (int64, float64) {
	if entryPrice <= 0 {
		return 0, 0
	}
	price := decimal.NewFromFloat(entryPrice)
	capital := decimal.NewFromFloat(c.NetTotal).Mul(decimal.NewFromFloat(uc.rules.AllocationRatio))

	qty := capital.Div(price).Floor().IntPart()
	if qty > maxQty {
		qty = maxQty
	}
	invested := price.Mul(decimal.NewFromInt(qty))

	available := decimal.NewFromFloat(c.NetAvailable)
	if invested.GreaterThan(available) {
		qty = available.Div(price).Floor().IntPart()
		invested = price.Mul(decimal.NewFromInt(qty))
	}

	if qty <= 0 {
		return 0, 0
	}

	amount := invested.InexactFloat64()
	uc.log.Debug("client allocation",
		applogger.String("account", c.AccountNumber),
		applogger.Int64("quantity", qty),
		applogger.Float64("invested", amount),
	)
	return qty, amount
}
