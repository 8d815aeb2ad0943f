package usecase

import (
	"context"
	"log/slog"

	"github.com/servana/servana-payment-service/internal/config"
	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

// SellerHistory is the single external lookup the escrow policy performs.
type SellerHistory interface {
	CountCompletedBySeller(ctx context.Context, sellerID string) (int64, error)
}

// EscrowPolicy decides whether funds for a payment are held in escrow
// before release. Any matched rule forces escrow.
type EscrowPolicy struct {
	amountThreshold  decimal.Decimal
	minDurationDays  int
	minSellerHistory int64
	history          SellerHistory
}

func NewEscrowPolicy(cfg config.Policy, history SellerHistory) *EscrowPolicy {
	return &EscrowPolicy{
		amountThreshold:  decimal.NewFromFloat(cfg.EscrowAmountThreshold),
		minDurationDays:  cfg.EscrowMinDurationDays,
		minSellerHistory: cfg.EscrowMinSellerHistory,
		history:          history,
	}
}

// ShouldUseEscrow evaluates the rules in order: amount threshold, service
// duration threshold, seller history. The history lookup is read-only.
// A failed lookup fails closed: the result is escrow-required together
// with the wrapped store error, never a silent false.
func (p *EscrowPolicy) ShouldUseEscrow(ctx context.Context, gross decimal.Decimal, serviceDurationDays int, sellerID string) (bool, error) {
	if !gross.IsPositive() {
		return false, domain.ErrInvalidAmount
	}
	if serviceDurationDays < 0 {
		return false, domain.ErrInvalidDuration
	}

	if gross.GreaterThanOrEqual(p.amountThreshold) {
		return true, nil
	}
	if serviceDurationDays >= p.minDurationDays {
		return true, nil
	}

	completed, err := p.history.CountCompletedBySeller(ctx, sellerID)
	if err != nil {
		slog.Error("seller history lookup failed, forcing escrow", "seller_id", sellerID, "error", err.Error())
		return true, domain.NewStoreError("count completed by seller", err)
	}
	if completed < p.minSellerHistory {
		return true, nil
	}

	return false, nil
}
