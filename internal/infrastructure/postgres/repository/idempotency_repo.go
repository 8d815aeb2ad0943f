package repository

import (
	"context"
	"errors"
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultIdempotencyRepository struct {
	DB *gorm.DB
}

func NewDefaultIdempotencyRepository(db *gorm.DB) *DefaultIdempotencyRepository {
	return &DefaultIdempotencyRepository{DB: db}
}

// Reserve inserts the PROCESSING record. The ux_idem_key_type unique index
// makes the second concurrent insert fail; that failure surfaces as
// ErrDuplicateKey so the usecase can answer retry-later.
func (r *DefaultIdempotencyRepository) Reserve(ctx context.Context, rec *domain.IdempotencyKey) error {
	model := mappers.ToGORMIdempotencyKey(rec)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateKey
		}
		return domain.NewStoreError("reserve idempotency key", err)
	}
	return nil
}

func (r *DefaultIdempotencyRepository) GetByKey(ctx context.Context, key, requestType string) (*domain.IdempotencyKey, error) {
	var model models.IdempotencyKeyModel
	err := r.DB.WithContext(ctx).
		First(&model, "key = ? AND request_type = ?", key, requestType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, domain.NewStoreError("get idempotency key", err)
	}

	return mappers.ToDomainIdempotencyKey(&model), nil
}

func (r *DefaultIdempotencyRepository) Rearm(ctx context.Context, recordID string) error {
	res := r.DB.WithContext(ctx).Model(&models.IdempotencyKeyModel{}).
		Where("id = ? AND status = ?", recordID, domain.IdempotencyFailed).
		Updates(map[string]interface{}{
			"status":     domain.IdempotencyProcessing,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return domain.NewStoreError("rearm idempotency key", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}

func (r *DefaultIdempotencyRepository) MarkFailed(ctx context.Context, recordID string) error {
	res := r.DB.WithContext(ctx).Model(&models.IdempotencyKeyModel{}).
		Where("id = ? AND status = ?", recordID, domain.IdempotencyProcessing).
		Updates(map[string]interface{}{
			"status":     domain.IdempotencyFailed,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return domain.NewStoreError("mark idempotency key failed", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusConflict
	}
	return nil
}
