package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Audit rows for the payment flow. Kept separate from the transactional
// tables so the audit trail survives whatever happens to the payment rows.

type PaymentCreatedEvent struct {
	ID            uint `gorm:"primaryKey"`
	RequestID     string
	PaymentID     string
	OrderID       string
	BuyerID       string
	SellerID      string
	Amount        float64
	Currency      string
	PaymentMethod string
	EscrowHeld    bool
	Timestamp     time.Time
}

type PaymentFailedEvent struct {
	ID            uint `gorm:"primaryKey"`
	RequestID     string
	OrderID       string
	BuyerID       string
	SellerID      string
	Reason        string
	Amount        float64
	Currency      string
	PaymentMethod string
	Timestamp     time.Time
}

type PaymentEventLogger interface {
	LogPaymentCreated(ctx context.Context, event PaymentCreatedEvent) error
	LogPaymentFailed(ctx context.Context, event PaymentFailedEvent) error
}

type PGPaymentEventLogger struct {
	db *gorm.DB
}

func NewPGPaymentEventLogger(db *gorm.DB) *PGPaymentEventLogger {
	return &PGPaymentEventLogger{db: db}
}

func (l *PGPaymentEventLogger) LogPaymentCreated(ctx context.Context, event PaymentCreatedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}

func (l *PGPaymentEventLogger) LogPaymentFailed(ctx context.Context, event PaymentFailedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
