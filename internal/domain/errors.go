package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidDuration       = errors.New("invalid service duration")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrRetryLater            = errors.New("duplicate request in flight, retry later")
	ErrDuplicateKey          = errors.New("idempotency key already exists")
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrEscrowNotFound        = errors.New("escrow not found")
	ErrKeyNotFound           = errors.New("idempotency key not found")
	ErrStatusConflict        = errors.New("status transition conflict")
	ErrDisputeReasonRequired = errors.New("dispute reason required")
)

// StoreError wraps a failure of the underlying data store so callers can
// distinguish persistence problems from policy rejections.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
