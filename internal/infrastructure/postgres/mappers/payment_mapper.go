package mappers

import (
	"github.com/google/uuid"
	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentTransactionModel) *domain.PaymentTransaction {
	return &domain.PaymentTransaction{
		ID:            model.ID,
		OrderID:       model.OrderID,
		BuyerID:       model.BuyerID,
		SellerID:      model.SellerID,
		Amount:        model.Amount,
		Currency:      model.Currency,
		PaymentMethod: model.PaymentMethod,
		Split: domain.PaymentSplit{
			PlatformCommission: model.Split.PlatformCommission,
			PSPFee:             model.Split.PSPFee,
			SellerPayout:       model.Split.SellerPayout,
		},
		EscrowHeld: model.EscrowHeld,
		Status:     model.Status,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToGORMPayment(txn *domain.PaymentTransaction) *models.PaymentTransactionModel {
	return &models.PaymentTransactionModel{
		ID:            txn.ID,
		OrderID:       txn.OrderID,
		BuyerID:       txn.BuyerID,
		SellerID:      txn.SellerID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		PaymentMethod: txn.PaymentMethod,
		EscrowHeld:    txn.EscrowHeld,
		Status:        txn.Status,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}
}

func ToGORMSplit(txn *domain.PaymentTransaction) *models.PaymentSplitModel {
	return &models.PaymentSplitModel{
		ID:                 uuid.NewString(),
		PaymentID:          txn.ID,
		OrderID:            txn.OrderID,
		SellerID:           txn.SellerID,
		PlatformCommission: txn.Split.PlatformCommission,
		PSPFee:             txn.Split.PSPFee,
		SellerPayout:       txn.Split.SellerPayout,
		CreatedAt:          txn.CreatedAt,
	}
}
