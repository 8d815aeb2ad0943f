package domain

import "context"

type PaymentRepository interface {
	// CreateWithSplit writes the transaction row, its split-detail row, the
	// escrow row when escrow is non-nil, and the idempotency key completion
	// in a single database transaction. keyID may be empty for callers that
	// manage the key themselves.
	CreateWithSplit(ctx context.Context, txn *PaymentTransaction, escrow *EscrowTransaction, keyID, response string) error

	GetByID(ctx context.Context, paymentID string) (*PaymentTransaction, error)
	GetByOrderID(ctx context.Context, orderID string) (*PaymentTransaction, error)

	// UpdateStatus performs a guarded transition; ErrStatusConflict when the
	// row is not in the expected `from` status. sideEffect runs inside the
	// same database transaction and rolls the transition back on failure.
	UpdateStatus(ctx context.Context, paymentID string, from, to PaymentStatus, sideEffect func() error) error

	ListBySeller(
		ctx context.Context,
		sellerID string,
		page, limit int64,
		sortBy, sortOrder string,
		filters PaymentFilters,
	) ([]*PaymentTransaction, int64, error)

	CountCompletedBySeller(ctx context.Context, sellerID string) (int64, error)
}
