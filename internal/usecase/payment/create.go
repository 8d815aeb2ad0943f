package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
	"github.com/servana/servana-payment-service/internal/infrastructure/logger"
	paymentdto "github.com/servana/servana-payment-service/internal/usecase/dto/payment"
)

// CreatePayment is the idempotent entry point for moving money on an order.
// The idempotency key row is reserved in PROCESSING state before any
// financial write; the financial rows and the key completion are committed
// in one database transaction, so a COMPLETED key always has its rows.
func (uc *DefaultPaymentUsecase) CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error) {
	started := time.Now()

	// Validation happens before any I/O.
	if input.BuyerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if !input.Amount.IsPositive() {
		uc.Metrics.RecordPaymentError("invalid_amount")
		return nil, domain.ErrInvalidAmount
	}
	if input.ServiceDurationDays < 0 {
		return nil, domain.ErrInvalidDuration
	}

	key := input.IdempotencyKey
	if key == "" {
		idGenerator, err := nanoid.Standard(21)
		if err != nil {
			return nil, err
		}
		key = idGenerator()
	}

	keyRecord, err := uc.claimKey(ctx, key, input)
	if err != nil {
		return nil, err
	}
	if keyRecord == nil {
		// A completed record exists: replay the stored response verbatim.
		return uc.replayCompleted(ctx, key)
	}

	output, err := uc.execute(ctx, keyRecord, input)
	if err != nil {
		if markErr := uc.IdempotencyRepo.MarkFailed(ctx, keyRecord.ID); markErr != nil {
			slog.Error("failed to mark idempotency key failed", "key", key, "error", markErr.Error())
		}
		uc.Metrics.RecordPaymentError("execute_failed")
		uc.Metrics.RecordProcessingDuration("failed", time.Since(started).Seconds())
		uc.logFailure(ctx, input, err)
		return nil, err
	}

	uc.Metrics.RecordProcessingDuration("created", time.Since(started).Seconds())
	return output, nil
}

// claimKey returns the PROCESSING record to execute under, nil when a
// completed record should be replayed, or an error. A record found in
// PROCESSING state is a concurrent duplicate and is rejected with
// ErrRetryLater rather than guessed at.
func (uc *DefaultPaymentUsecase) claimKey(ctx context.Context, key string, input *paymentdto.CreatePaymentInput) (*domain.IdempotencyKey, error) {
	existing, err := uc.IdempotencyRepo.GetByKey(ctx, key, domain.RequestTypeCreatePayment)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}

	if existing != nil {
		switch existing.Status {
		case domain.IdempotencyCompleted:
			return nil, nil
		case domain.IdempotencyProcessing:
			uc.Metrics.RecordIdempotencyConflict(domain.RequestTypeCreatePayment)
			return nil, domain.ErrRetryLater
		case domain.IdempotencyFailed:
			if err := uc.IdempotencyRepo.Rearm(ctx, existing.ID); err != nil {
				if errors.Is(err, domain.ErrStatusConflict) {
					// Someone else re-armed it first.
					return nil, domain.ErrRetryLater
				}
				return nil, err
			}
			existing.Status = domain.IdempotencyProcessing
			return existing, nil
		}
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	record := &domain.IdempotencyKey{
		ID:             uuid.NewString(),
		Key:            key,
		UserID:         input.BuyerID,
		RequestType:    domain.RequestTypeCreatePayment,
		Status:         domain.IdempotencyProcessing,
		RequestPayload: string(payload),
	}
	if err := uc.IdempotencyRepo.Reserve(ctx, record); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			// Lost the insert race to a concurrent duplicate.
			uc.Metrics.RecordIdempotencyConflict(domain.RequestTypeCreatePayment)
			return nil, domain.ErrRetryLater
		}
		return nil, err
	}

	return record, nil
}

func (uc *DefaultPaymentUsecase) replayCompleted(ctx context.Context, key string) (*paymentdto.PaymentOutput, error) {
	record, err := uc.IdempotencyRepo.GetByKey(ctx, key, domain.RequestTypeCreatePayment)
	if err != nil {
		return nil, err
	}

	var output paymentdto.PaymentOutput
	if err := json.Unmarshal([]byte(record.ResponsePayload), &output); err != nil {
		return nil, err
	}

	uc.Metrics.RecordIdempotentReplay(domain.RequestTypeCreatePayment)
	slog.Info("idempotent replay", "key", key, "payment_id", output.ID)
	return &output, nil
}

func (uc *DefaultPaymentUsecase) execute(ctx context.Context, keyRecord *domain.IdempotencyKey, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error) {
	splitResult, err := uc.Splitter.Calculate(input.Amount)
	if err != nil {
		return nil, err
	}

	escrowRequired, err := uc.EscrowPolicy.ShouldUseEscrow(ctx, input.Amount, input.ServiceDurationDays, input.SellerID)
	if err != nil {
		if !escrowRequired {
			// Validation failure, not a lookup failure.
			return nil, err
		}
		// Fail closed: keep going with escrow required.
		slog.Error("escrow eligibility lookup failed, holding funds", "seller_id", input.SellerID, "error", err.Error())
	}

	now := time.Now()
	txn := &domain.PaymentTransaction{
		ID:            uuid.NewString(),
		OrderID:       input.OrderID,
		BuyerID:       input.BuyerID,
		SellerID:      input.SellerID,
		Amount:        input.Amount,
		Currency:      input.Currency,
		PaymentMethod: input.PaymentMethod,
		Split:         *splitResult,
		EscrowHeld:    escrowRequired,
		Status:        domain.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	var escrow *domain.EscrowTransaction
	if escrowRequired {
		escrow = &domain.EscrowTransaction{
			ID:        uuid.NewString(),
			PaymentID: txn.ID,
			OrderID:   input.OrderID,
			BuyerID:   input.BuyerID,
			SellerID:  input.SellerID,
			Amount:    input.Amount,
			Currency:  input.Currency,
			Status:    domain.EscrowStatusPending,
			ReleaseAt: now.AddDate(0, 0, uc.EscrowHoldDays),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	output := paymentdto.ToPaymentOutput(txn)
	response, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}

	if err := uc.PaymentRepo.CreateWithSplit(ctx, txn, escrow, keyRecord.ID, string(response)); err != nil {
		return nil, err
	}

	uc.Metrics.RecordPaymentCreated(txn.SellerID, txn.Currency, txn.PaymentMethod, txn.Amount.InexactFloat64())
	uc.Metrics.RecordSplit(txn.Currency,
		splitResult.PlatformCommission.InexactFloat64(),
		splitResult.PSPFee.InexactFloat64(),
		splitResult.SellerPayout.InexactFloat64())
	if escrowRequired {
		uc.Metrics.RecordEscrowCreated(txn.SellerID, txn.Currency)
	}

	uc.logCreated(ctx, keyRecord.Key, txn)

	go func(event publisher.PaymentEvent) {
		if err := uc.Publisher.PublishPayment(publisher.TopicPaymentEvents, event); err != nil {
			slog.Error("failed to publish payment event", "payment_id", event.PaymentID, "error", err.Error())
		}
	}(publisher.PaymentEvent{
		PaymentID:  txn.ID,
		OrderID:    txn.OrderID,
		BuyerID:    txn.BuyerID,
		SellerID:   txn.SellerID,
		Status:     string(txn.Status),
		Amount:     txn.Amount.StringFixed(2),
		Currency:   txn.Currency,
		EscrowHeld: txn.EscrowHeld,
	})

	return output, nil
}

func (uc *DefaultPaymentUsecase) logCreated(ctx context.Context, requestID string, txn *domain.PaymentTransaction) {
	if uc.EventLog == nil {
		return
	}
	err := uc.EventLog.LogPaymentCreated(ctx, logger.PaymentCreatedEvent{
		RequestID:     requestID,
		PaymentID:     txn.ID,
		OrderID:       txn.OrderID,
		BuyerID:       txn.BuyerID,
		SellerID:      txn.SellerID,
		Amount:        txn.Amount.InexactFloat64(),
		Currency:      txn.Currency,
		PaymentMethod: txn.PaymentMethod,
		EscrowHeld:    txn.EscrowHeld,
		Timestamp:     time.Now(),
	})
	if err != nil {
		slog.Error("failed to write payment created event", "payment_id", txn.ID, "error", err.Error())
	}
}

func (uc *DefaultPaymentUsecase) logFailure(ctx context.Context, input *paymentdto.CreatePaymentInput, cause error) {
	if uc.EventLog == nil {
		return
	}
	err := uc.EventLog.LogPaymentFailed(ctx, logger.PaymentFailedEvent{
		RequestID:     input.IdempotencyKey,
		OrderID:       input.OrderID,
		BuyerID:       input.BuyerID,
		SellerID:      input.SellerID,
		Reason:        cause.Error(),
		Amount:        input.Amount.InexactFloat64(),
		Currency:      input.Currency,
		PaymentMethod: input.PaymentMethod,
		Timestamp:     time.Now(),
	})
	if err != nil {
		slog.Error("failed to write payment failed event", "order_id", input.OrderID, "error", err.Error())
	}
}
