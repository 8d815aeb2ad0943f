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

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) Create(ctx context.Context, escrow *domain.EscrowTransaction) error {
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMEscrow(escrow)).Error; err != nil {
		return domain.NewStoreError("create escrow", err)
	}
	return nil
}

func (r *DefaultEscrowRepository) GetByID(ctx context.Context, escrowID string) (*domain.EscrowTransaction, error) {
	var escrow models.EscrowTransactionModel
	if err := r.DB.WithContext(ctx).First(&escrow, "id = ?", escrowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, domain.NewStoreError("get escrow by id", err)
	}

	return mappers.ToDomainEscrow(&escrow), nil
}

func (r *DefaultEscrowRepository) GetByPaymentID(ctx context.Context, paymentID string) (*domain.EscrowTransaction, error) {
	var escrow models.EscrowTransactionModel
	if err := r.DB.WithContext(ctx).First(&escrow, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, domain.NewStoreError("get escrow by payment id", err)
	}

	return mappers.ToDomainEscrow(&escrow), nil
}

// TransitionStatus claims the guarded status change and runs sideEffect in
// the same transaction, so a failed wallet call rolls the escrow back.
func (r *DefaultEscrowRepository) TransitionStatus(ctx context.Context, escrowID string, from, to domain.EscrowStatus, reason string, sideEffect func() error) error {
	if !from.CanTransitionTo(to) {
		return domain.ErrStatusConflict
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		}
		if reason != "" {
			updates["dispute_reason"] = reason
		}

		res := tx.Model(&models.EscrowTransactionModel{}).
			Where("id = ? AND status = ?", escrowID, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStatusConflict
		}
		if sideEffect != nil {
			return sideEffect()
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		return domain.NewStoreError("transition escrow status", err)
	}
	return nil
}

func (r *DefaultEscrowRepository) FindDueForRelease(ctx context.Context, now time.Time, limit int) ([]*domain.EscrowTransaction, error) {
	var escrowModels []models.EscrowTransactionModel
	err := r.DB.WithContext(ctx).
		Where("status = ? AND release_at <= ?", domain.EscrowStatusPending, now).
		Order("release_at ASC").
		Limit(limit).
		Find(&escrowModels).Error
	if err != nil {
		return nil, domain.NewStoreError("find due escrows", err)
	}

	escrows := make([]*domain.EscrowTransaction, 0, len(escrowModels))
	for i := range escrowModels {
		escrows = append(escrows, mappers.ToDomainEscrow(&escrowModels[i]))
	}

	return escrows, nil
}
