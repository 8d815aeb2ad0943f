package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// CanTransitionTo reports whether the status change is allowed.
// Transitions are monotonic: PENDING -> COMPLETED | FAILED, nothing else.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s != PaymentStatusPending {
		return false
	}
	return next == PaymentStatusCompleted || next == PaymentStatusFailed
}

// PaymentSplit is derived from the gross amount, never stored on its own.
// Invariant: PlatformCommission + PSPFee + SellerPayout == gross amount
// at the cent level (the payout is computed as the remainder).
type PaymentSplit struct {
	PlatformCommission decimal.Decimal
	PSPFee             decimal.Decimal
	SellerPayout       decimal.Decimal
}

type PaymentTransaction struct {
	ID            string
	OrderID       string
	BuyerID       string
	SellerID      string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	Split         PaymentSplit
	EscrowHeld    bool
	Status        PaymentStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PaymentFilters struct {
	Statuses  []PaymentStatus
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
	DateFrom  time.Time
	DateTo    time.Time
}
