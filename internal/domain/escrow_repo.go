package domain

import (
	"context"
	"time"
)

type EscrowRepository interface {
	Create(ctx context.Context, escrow *EscrowTransaction) error
	GetByID(ctx context.Context, escrowID string) (*EscrowTransaction, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*EscrowTransaction, error)

	// TransitionStatus claims the PENDING -> to transition and runs sideEffect
	// inside the same database transaction, rolling the status back when the
	// side effect fails. reason is stamped only when non-empty.
	TransitionStatus(ctx context.Context, escrowID string, from, to EscrowStatus, reason string, sideEffect func() error) error

	FindDueForRelease(ctx context.Context, now time.Time, limit int) ([]*EscrowTransaction, error)
}
