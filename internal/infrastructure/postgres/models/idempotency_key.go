package models

import (
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
)

// IdempotencyKeyModel is the deduplication ledger. The unique
// (key, request_type) index is what arbitrates concurrent duplicates:
// the second insert fails and the caller sees a retry-later error.
type IdempotencyKeyModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Key             string `gorm:"uniqueIndex:ux_idem_key_type,priority:1"`
	RequestType     string `gorm:"uniqueIndex:ux_idem_key_type,priority:2"`
	UserID          string `gorm:"index:idx_idem_user"`
	Status          domain.IdempotencyStatus
	RequestPayload  string `gorm:"type:jsonb"`
	ResponsePayload string `gorm:"type:jsonb"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
