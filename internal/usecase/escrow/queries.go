package usecase

import (
	"context"

	escrowdto "github.com/servana/servana-payment-service/internal/usecase/dto/escrow"
)

func (uc *DefaultEscrowUsecase) GetEscrowByID(ctx context.Context, escrowID string) (*escrowdto.EscrowOutput, error) {
	escrow, err := uc.EscrowRepo.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	return escrowdto.ToEscrowOutput(escrow), nil
}

func (uc *DefaultEscrowUsecase) GetEscrowByPaymentID(ctx context.Context, paymentID string) (*escrowdto.EscrowOutput, error) {
	escrow, err := uc.EscrowRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return escrowdto.ToEscrowOutput(escrow), nil
}
