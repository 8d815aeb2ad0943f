package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
)

// ReleaseEscrow forwards held funds to the seller. The status transition and
// the wallet credit run in one database transaction: a failed credit rolls
// the escrow back to PENDING. Only PENDING escrows can be released.
func (uc *DefaultEscrowUsecase) ReleaseEscrow(ctx context.Context, escrowID string) error {
	escrow, err := uc.EscrowRepo.GetByID(ctx, escrowID)
	if err != nil {
		return err
	}
	if escrow.Status != domain.EscrowStatusPending {
		return domain.ErrStatusConflict
	}

	payment, err := uc.PaymentRepo.GetByID(ctx, escrow.PaymentID)
	if err != nil {
		return err
	}

	err = uc.EscrowRepo.TransitionStatus(ctx, escrowID, domain.EscrowStatusPending, domain.EscrowStatusReleased, "", func() error {
		return uc.Wallet.CreditSeller(escrow.SellerID, escrow.PaymentID, payment.Split.SellerPayout)
	})
	if err != nil {
		return err
	}

	// The underlying payment completes with the release. A conflict here
	// means it already reached a terminal status; the release stands.
	if err := uc.PaymentRepo.UpdateStatus(ctx, escrow.PaymentID, domain.PaymentStatusPending, domain.PaymentStatusCompleted, nil); err != nil {
		if !errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		slog.Warn("payment already terminal on escrow release", "payment_id", escrow.PaymentID)
	}

	uc.Metrics.RecordEscrowReleased(escrow.SellerID, escrow.Currency)
	uc.Metrics.RecordPaymentCompleted(escrow.SellerID, escrow.Currency)
	uc.publishEscrow(escrow, domain.EscrowStatusReleased, "")
	return nil
}

// RefundEscrow returns held funds to the buyer, recording the dispute
// reason. Only PENDING escrows can be refunded.
func (uc *DefaultEscrowUsecase) RefundEscrow(ctx context.Context, escrowID, reason string) error {
	if reason == "" {
		return domain.ErrDisputeReasonRequired
	}

	escrow, err := uc.EscrowRepo.GetByID(ctx, escrowID)
	if err != nil {
		return err
	}
	if escrow.Status != domain.EscrowStatusPending {
		return domain.ErrStatusConflict
	}

	err = uc.EscrowRepo.TransitionStatus(ctx, escrowID, domain.EscrowStatusPending, domain.EscrowStatusRefunded, reason, func() error {
		return uc.Wallet.RefundBuyer(escrow.BuyerID, escrow.PaymentID, escrow.Amount)
	})
	if err != nil {
		return err
	}

	if err := uc.PaymentRepo.UpdateStatus(ctx, escrow.PaymentID, domain.PaymentStatusPending, domain.PaymentStatusFailed, nil); err != nil {
		if !errors.Is(err, domain.ErrStatusConflict) {
			return err
		}
		slog.Warn("payment already terminal on escrow refund", "payment_id", escrow.PaymentID)
	}

	uc.Metrics.RecordEscrowRefunded(escrow.SellerID, escrow.Currency)
	uc.Metrics.RecordPaymentFailed(escrow.SellerID, escrow.Currency)
	uc.publishEscrow(escrow, domain.EscrowStatusRefunded, reason)
	return nil
}

// ReleaseDueEscrows is the worker entry point: releases pending escrows
// whose release date has passed. One failure does not stop the batch.
func (uc *DefaultEscrowUsecase) ReleaseDueEscrows(ctx context.Context) (int, error) {
	due, err := uc.EscrowRepo.FindDueForRelease(ctx, time.Now(), 100)
	if err != nil {
		return 0, err
	}

	released := 0
	for _, escrow := range due {
		if err := uc.ReleaseEscrow(ctx, escrow.ID); err != nil {
			slog.Error("auto-release failed", "escrow_id", escrow.ID, "error", err.Error())
			continue
		}
		released++
	}

	return released, nil
}

func (uc *DefaultEscrowUsecase) publishEscrow(escrow *domain.EscrowTransaction, status domain.EscrowStatus, reason string) {
	go func(event publisher.EscrowEvent) {
		if err := uc.Publisher.PublishEscrow(publisher.TopicEscrowEvents, event); err != nil {
			slog.Error("failed to publish escrow event", "escrow_id", event.EscrowID, "error", err.Error())
		}
	}(publisher.EscrowEvent{
		EscrowID:  escrow.ID,
		PaymentID: escrow.PaymentID,
		SellerID:  escrow.SellerID,
		Status:    string(status),
		Amount:    escrow.Amount.StringFixed(2),
		Currency:  escrow.Currency,
		Reason:    reason,
	})
}
