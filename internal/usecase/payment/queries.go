package usecase

import (
	"context"

	"github.com/servana/servana-payment-service/internal/domain"
	paymentdto "github.com/servana/servana-payment-service/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) GetPaymentByID(ctx context.Context, paymentID string) (*paymentdto.PaymentOutput, error) {
	payment, err := uc.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return paymentdto.ToPaymentOutput(payment), nil
}

func (uc *DefaultPaymentUsecase) GetPaymentByOrderID(ctx context.Context, orderID string) (*paymentdto.PaymentOutput, error) {
	payment, err := uc.PaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return paymentdto.ToPaymentOutput(payment), nil
}

func (uc *DefaultPaymentUsecase) GetSellerPayments(
	ctx context.Context,
	sellerID string,
	page, limit int64,
	sortBy, sortOrder string,
	filters domain.PaymentFilters,
) ([]*paymentdto.PaymentOutput, int64, error) {
	payments, total, err := uc.PaymentRepo.ListBySeller(ctx, sellerID, page, limit, sortBy, sortOrder, filters)
	if err != nil {
		return nil, 0, err
	}

	outputs := make([]*paymentdto.PaymentOutput, 0, len(payments))
	for _, payment := range payments {
		outputs = append(outputs, paymentdto.ToPaymentOutput(payment))
	}

	return outputs, total, nil
}
