package usecase

import (
	"context"

	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
	"github.com/servana/servana-payment-service/internal/infrastructure/metrics"
	escrowdto "github.com/servana/servana-payment-service/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	ReleaseEscrow(ctx context.Context, escrowID string) error
	RefundEscrow(ctx context.Context, escrowID, reason string) error

	GetEscrowByID(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error)
	GetEscrowByPaymentID(ctx context.Context, paymentID string) (*escrowdto.EscrowOutput, error)

	// ReleaseDueEscrows releases every pending escrow past its release date
	// and reports how many were released.
	ReleaseDueEscrows(ctx context.Context) (int, error)
}

type DefaultEscrowUsecase struct {
	EscrowRepo  domain.EscrowRepository
	PaymentRepo domain.PaymentRepository
	Wallet      domain.WalletGateway
	Publisher   publisher.EventPublisher
	Metrics     *metrics.PaymentMetrics
}

func NewDefaultEscrowUsecase(
	escrowRepo domain.EscrowRepository,
	paymentRepo domain.PaymentRepository,
	wallet domain.WalletGateway,
	eventPublisher publisher.EventPublisher,
	paymentMetrics *metrics.PaymentMetrics) *DefaultEscrowUsecase {

	return &DefaultEscrowUsecase{
		EscrowRepo:  escrowRepo,
		PaymentRepo: paymentRepo,
		Wallet:      wallet,
		Publisher:   eventPublisher,
		Metrics:     paymentMetrics,
	}
}
