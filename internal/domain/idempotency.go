package domain

import "time"

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "PROCESSING"
	IdempotencyCompleted  IdempotencyStatus = "COMPLETED"
	IdempotencyFailed     IdempotencyStatus = "FAILED"
)

// IdempotencyKey is the deduplication ledger for side-effecting requests.
// A row is created in PROCESSING state before any financial write; a request
// arriving while a COMPLETED row exists returns ResponsePayload verbatim.
// A FAILED row may be re-armed and executed again.
type IdempotencyKey struct {
	ID              string
	Key             string
	UserID          string
	RequestType     string
	Status          IdempotencyStatus
	RequestPayload  string
	ResponsePayload string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const RequestTypeCreatePayment = "create_payment"
