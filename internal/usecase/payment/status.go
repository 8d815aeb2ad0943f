package usecase

import (
	"context"
	"log/slog"

	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
)

// CompletePayment moves PENDING -> COMPLETED. For a payment without an
// escrow hold the seller is credited inside the same transition, so a
// failed credit rolls the status back. Escrowed payments are completed by
// the escrow release flow instead.
func (uc *DefaultPaymentUsecase) CompletePayment(ctx context.Context, paymentID string) error {
	payment, err := uc.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	var creditSeller func() error
	if !payment.EscrowHeld {
		creditSeller = func() error {
			return uc.Wallet.CreditSeller(payment.SellerID, payment.ID, payment.Split.SellerPayout)
		}
	}

	if err := uc.PaymentRepo.UpdateStatus(ctx, paymentID, domain.PaymentStatusPending, domain.PaymentStatusCompleted, creditSeller); err != nil {
		return err
	}

	uc.Metrics.RecordPaymentCompleted(payment.SellerID, payment.Currency)
	uc.publishStatus(payment, domain.PaymentStatusCompleted)
	return nil
}

// FailPayment moves PENDING -> FAILED. No funds move: nothing was credited
// for a pending payment.
func (uc *DefaultPaymentUsecase) FailPayment(ctx context.Context, paymentID, reason string) error {
	payment, err := uc.PaymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := uc.PaymentRepo.UpdateStatus(ctx, paymentID, domain.PaymentStatusPending, domain.PaymentStatusFailed, nil); err != nil {
		return err
	}

	slog.Info("payment failed", "payment_id", paymentID, "reason", reason)
	uc.Metrics.RecordPaymentFailed(payment.SellerID, payment.Currency)
	uc.publishStatus(payment, domain.PaymentStatusFailed)
	return nil
}

func (uc *DefaultPaymentUsecase) publishStatus(payment *domain.PaymentTransaction, status domain.PaymentStatus) {
	go func(event publisher.PaymentEvent) {
		if err := uc.Publisher.PublishPayment(publisher.TopicPaymentEvents, event); err != nil {
			slog.Error("failed to publish payment event", "payment_id", event.PaymentID, "error", err.Error())
		}
	}(publisher.PaymentEvent{
		PaymentID:  payment.ID,
		OrderID:    payment.OrderID,
		BuyerID:    payment.BuyerID,
		SellerID:   payment.SellerID,
		Status:     string(status),
		Amount:     payment.Amount.StringFixed(2),
		Currency:   payment.Currency,
		EscrowHeld: payment.EscrowHeld,
	})
}
