package models

import (
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type PaymentTransactionModel struct {
	ID            string          `gorm:"primaryKey;type:uuid"`
	OrderID       string          `gorm:"index:idx_payment_order"`
	BuyerID       string          `gorm:"index:idx_payment_buyer"`
	SellerID      string          `gorm:"index:idx_payment_seller_status"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);index:idx_payment_amount"`
	Currency      string
	PaymentMethod string
	EscrowHeld    bool
	Status        domain.PaymentStatus `gorm:"index:idx_payment_seller_status"`
	Split         PaymentSplitModel    `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreatedAt     time.Time            `gorm:"index:idx_payment_created_at"`
	UpdatedAt     time.Time
}

// PaymentSplitModel is the split-detail row written alongside every
// transaction; one per payment.
type PaymentSplitModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	PaymentID          string `gorm:"type:uuid;uniqueIndex:ux_split_payment"`
	OrderID            string
	SellerID           string
	PlatformCommission decimal.Decimal `gorm:"type:numeric(18,2)"`
	PSPFee             decimal.Decimal `gorm:"type:numeric(18,2)"`
	SellerPayout       decimal.Decimal `gorm:"type:numeric(18,2)"`
	CreatedAt          time.Time
}
