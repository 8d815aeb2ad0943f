package mappers

import (
	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainIdempotencyKey(model *models.IdempotencyKeyModel) *domain.IdempotencyKey {
	return &domain.IdempotencyKey{
		ID:              model.ID,
		Key:             model.Key,
		UserID:          model.UserID,
		RequestType:     model.RequestType,
		Status:          model.Status,
		RequestPayload:  model.RequestPayload,
		ResponsePayload: model.ResponsePayload,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func ToGORMIdempotencyKey(rec *domain.IdempotencyKey) *models.IdempotencyKeyModel {
	return &models.IdempotencyKeyModel{
		ID:              rec.ID,
		Key:             rec.Key,
		UserID:          rec.UserID,
		RequestType:     rec.RequestType,
		Status:          rec.Status,
		RequestPayload:  rec.RequestPayload,
		ResponsePayload: rec.ResponsePayload,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}
