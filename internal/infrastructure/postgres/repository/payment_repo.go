package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

// CreateWithSplit commits the transaction row, the split-detail row, the
// optional escrow row and the idempotency key completion atomically. The
// key completion is guarded on PROCESSING so a re-armed or raced key can
// never be completed twice.
func (r *DefaultPaymentRepository) CreateWithSplit(ctx context.Context, txn *domain.PaymentTransaction, escrow *domain.EscrowTransaction, keyID, response string) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.ToGORMPayment(txn)).Error; err != nil {
			return err
		}
		if err := tx.Create(mappers.ToGORMSplit(txn)).Error; err != nil {
			return err
		}
		if escrow != nil {
			if err := tx.Create(mappers.ToGORMEscrow(escrow)).Error; err != nil {
				return err
			}
		}
		if keyID != "" {
			res := tx.Model(&models.IdempotencyKeyModel{}).
				Where("id = ? AND status = ?", keyID, domain.IdempotencyProcessing).
				Updates(map[string]interface{}{
					"status":           domain.IdempotencyCompleted,
					"response_payload": response,
					"updated_at":       time.Now(),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrStatusConflict
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		return domain.NewStoreError("create payment with split", err)
	}
	return nil
}

func (r *DefaultPaymentRepository) GetByID(ctx context.Context, paymentID string) (*domain.PaymentTransaction, error) {
	var payment models.PaymentTransactionModel
	if err := r.DB.WithContext(ctx).Preload("Split").First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, domain.NewStoreError("get payment by id", err)
	}

	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentTransaction, error) {
	var payment models.PaymentTransactionModel
	if err := r.DB.WithContext(ctx).Preload("Split").First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, domain.NewStoreError("get payment by order id", err)
	}

	return mappers.ToDomainPayment(&payment), nil
}

func (r *DefaultPaymentRepository) UpdateStatus(ctx context.Context, paymentID string, from, to domain.PaymentStatus, sideEffect func() error) error {
	if !from.CanTransitionTo(to) {
		return domain.ErrStatusConflict
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PaymentTransactionModel{}).
			Where("id = ? AND status = ?", paymentID, from).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			})
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
		return domain.NewStoreError("update payment status", err)
	}
	return nil
}

func (r *DefaultPaymentRepository) ListBySeller(
	ctx context.Context,
	sellerID string,
	page, limit int64,
	sortBy, sortOrder string,
	filters domain.PaymentFilters,
) ([]*domain.PaymentTransaction, int64, error) {
	var paymentModels []models.PaymentTransactionModel
	var total int64

	safeSortBy := "created_at"
	switch sortBy {
	case "amount":
		safeSortBy = "amount"
	case "updated_at":
		safeSortBy = "updated_at"
	case "created_at":
		safeSortBy = "created_at"
	}

	safeSortOrder := "DESC"
	if strings.ToUpper(sortOrder) == "ASC" {
		safeSortOrder = "ASC"
	}

	baseQuery := r.DB.WithContext(ctx).Model(&models.PaymentTransactionModel{}).
		Where("seller_id = ?", sellerID)

	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}
	if filters.MinAmount.IsPositive() {
		baseQuery = baseQuery.Where("amount >= ?", filters.MinAmount)
	}
	if filters.MaxAmount.IsPositive() {
		baseQuery = baseQuery.Where("amount <= ?", filters.MaxAmount)
	}
	if !filters.DateFrom.IsZero() {
		baseQuery = baseQuery.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		baseQuery = baseQuery.Where("created_at <= ?", filters.DateTo)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, domain.NewStoreError("count seller payments", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	err := baseQuery.
		Preload("Split").
		Order(safeSortBy + " " + safeSortOrder).
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&paymentModels).Error
	if err != nil {
		return nil, 0, domain.NewStoreError("list seller payments", err)
	}

	payments := make([]*domain.PaymentTransaction, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, mappers.ToDomainPayment(&paymentModels[i]))
	}

	return payments, total, nil
}

func (r *DefaultPaymentRepository) CountCompletedBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.PaymentTransactionModel{}).
		Where("seller_id = ? AND status = ?", sellerID, domain.PaymentStatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, domain.NewStoreError("count completed by seller", err)
	}

	return count, nil
}
