package usecase

import (
	"github.com/servana/servana-payment-service/internal/config"
	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

// SplitCalculator maps a gross transaction amount to platform commission,
// payment-processor fee and seller payout. Pure: no I/O, deterministic for
// a fixed rate configuration.
type SplitCalculator struct {
	commissionRate decimal.Decimal
	pspFeeRate     decimal.Decimal
	pspFeeFixed    decimal.Decimal
}

func NewSplitCalculator(cfg config.Policy) *SplitCalculator {
	return &SplitCalculator{
		commissionRate: decimal.NewFromFloat(cfg.CommissionRate),
		pspFeeRate:     decimal.NewFromFloat(cfg.PSPFeeRate),
		pspFeeFixed:    decimal.NewFromFloat(cfg.PSPFeeFixed),
	}
}

// Calculate rejects non-positive amounts with ErrInvalidAmount. Commission
// and PSP fee are rounded half-up to 2 places; the payout is the remainder,
// so the three legs always sum to the gross amount at the cent level.
func (c *SplitCalculator) Calculate(gross decimal.Decimal) (*domain.PaymentSplit, error) {
	if !gross.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	commission := gross.Mul(c.commissionRate).Round(2)
	pspFee := gross.Mul(c.pspFeeRate).Add(c.pspFeeFixed).Round(2)
	payout := gross.Sub(commission).Sub(pspFee)

	return &domain.PaymentSplit{
		PlatformCommission: commission,
		PSPFee:             pspFee,
		SellerPayout:       payout,
	}, nil
}
