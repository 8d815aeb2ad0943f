package domain

import "context"

type IdempotencyRepository interface {
	// Reserve inserts the record in PROCESSING state. The store's unique
	// (key, request_type) index arbitrates concurrent duplicates:
	// a losing insert returns ErrDuplicateKey.
	Reserve(ctx context.Context, rec *IdempotencyKey) error

	GetByKey(ctx context.Context, key, requestType string) (*IdempotencyKey, error)

	// Rearm moves a FAILED record back to PROCESSING so a legitimate retry
	// can execute again. ErrStatusConflict when the record is not FAILED.
	Rearm(ctx context.Context, recordID string) error

	MarkFailed(ctx context.Context, recordID string) error
}
