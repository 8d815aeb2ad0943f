package usecase

import (
	"context"

	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
	"github.com/servana/servana-payment-service/internal/infrastructure/logger"
	"github.com/servana/servana-payment-service/internal/infrastructure/metrics"
	policy "github.com/servana/servana-payment-service/internal/usecase"
	paymentdto "github.com/servana/servana-payment-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, input *paymentdto.CreatePaymentInput) (*paymentdto.PaymentOutput, error)

	CompletePayment(ctx context.Context, paymentID string) error
	FailPayment(ctx context.Context, paymentID, reason string) error

	GetPaymentByID(ctx context.Context, paymentID string) (*paymentdto.PaymentOutput, error)
	GetPaymentByOrderID(ctx context.Context, orderID string) (*paymentdto.PaymentOutput, error)
	GetSellerPayments(
		ctx context.Context,
		sellerID string,
		page, limit int64,
		sortBy, sortOrder string,
		filters domain.PaymentFilters,
	) ([]*paymentdto.PaymentOutput, int64, error)
}

// DefaultPaymentUsecase writes escrow rows through PaymentRepo.CreateWithSplit
// so they land in the same database transaction as the payment itself.
type DefaultPaymentUsecase struct {
	PaymentRepo     domain.PaymentRepository
	IdempotencyRepo domain.IdempotencyRepository
	Splitter        *policy.SplitCalculator
	EscrowPolicy    *policy.EscrowPolicy
	Wallet          domain.WalletGateway
	Publisher       publisher.EventPublisher
	EventLog        logger.PaymentEventLogger
	Metrics         *metrics.PaymentMetrics
	EscrowHoldDays  int
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	idempotencyRepo domain.IdempotencyRepository,
	splitter *policy.SplitCalculator,
	escrowPolicy *policy.EscrowPolicy,
	wallet domain.WalletGateway,
	eventPublisher publisher.EventPublisher,
	eventLog logger.PaymentEventLogger,
	paymentMetrics *metrics.PaymentMetrics,
	escrowHoldDays int) *DefaultPaymentUsecase {

	return &DefaultPaymentUsecase{
		PaymentRepo:     paymentRepo,
		IdempotencyRepo: idempotencyRepo,
		Splitter:        splitter,
		EscrowPolicy:    escrowPolicy,
		Wallet:          wallet,
		Publisher:       eventPublisher,
		EventLog:        eventLog,
		Metrics:         paymentMetrics,
		EscrowHoldDays:  escrowHoldDays,
	}
}
