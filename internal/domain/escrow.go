package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "PENDING"
	EscrowStatusReleased EscrowStatus = "RELEASED"
	EscrowStatusRefunded EscrowStatus = "REFUNDED"
)

// CanTransitionTo: RELEASED and REFUNDED are terminal, both reachable
// only from PENDING.
func (s EscrowStatus) CanTransitionTo(next EscrowStatus) bool {
	if s != EscrowStatusPending {
		return false
	}
	return next == EscrowStatusReleased || next == EscrowStatusRefunded
}

// EscrowTransaction holds the gross amount of an eligible payment until
// ReleaseAt, a refund, or an explicit release.
type EscrowTransaction struct {
	ID            string
	PaymentID     string
	OrderID       string
	BuyerID       string
	SellerID      string
	Amount        decimal.Decimal
	Currency      string
	Status        EscrowStatus
	ReleaseAt     time.Time
	DisputeReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
