package mappers

import (
	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainEscrow(model *models.EscrowTransactionModel) *domain.EscrowTransaction {
	return &domain.EscrowTransaction{
		ID:            model.ID,
		PaymentID:     model.PaymentID,
		OrderID:       model.OrderID,
		BuyerID:       model.BuyerID,
		SellerID:      model.SellerID,
		Amount:        model.Amount,
		Currency:      model.Currency,
		Status:        model.Status,
		ReleaseAt:     model.ReleaseAt,
		DisputeReason: model.DisputeReason,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMEscrow(escrow *domain.EscrowTransaction) *models.EscrowTransactionModel {
	return &models.EscrowTransactionModel{
		ID:            escrow.ID,
		PaymentID:     escrow.PaymentID,
		OrderID:       escrow.OrderID,
		BuyerID:       escrow.BuyerID,
		SellerID:      escrow.SellerID,
		Amount:        escrow.Amount,
		Currency:      escrow.Currency,
		Status:        escrow.Status,
		ReleaseAt:     escrow.ReleaseAt,
		DisputeReason: escrow.DisputeReason,
		CreatedAt:     escrow.CreatedAt,
		UpdatedAt:     escrow.UpdatedAt,
	}
}
