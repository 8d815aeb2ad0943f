package models

import (
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type EscrowTransactionModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	PaymentID     string `gorm:"type:uuid;uniqueIndex:ux_escrow_payment"`
	OrderID       string
	BuyerID       string
	SellerID      string          `gorm:"index:idx_escrow_seller"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2)"`
	Currency      string
	Status        domain.EscrowStatus `gorm:"index:idx_escrow_status_release"`
	ReleaseAt     time.Time           `gorm:"index:idx_escrow_status_release"`
	DisputeReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
