package background

import (
	"context"
	"log/slog"
	"time"

	escrowuc "github.com/servana/servana-payment-service/internal/usecase/escrow"
)

type BackgroundTasks struct {
	EscrowUsecase escrowuc.EscrowUsecase
	ReleaseEvery  time.Duration
}

func NewBackgroundTasks(escrowUC escrowuc.EscrowUsecase, releaseEvery time.Duration) *BackgroundTasks {
	if releaseEvery <= 0 {
		releaseEvery = time.Minute
	}
	return &BackgroundTasks{
		EscrowUsecase: escrowUC,
		ReleaseEvery:  releaseEvery,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startEscrowAutoRelease(ctx)
}

func (bt *BackgroundTasks) startEscrowAutoRelease(ctx context.Context) {
	ticker := time.NewTicker(bt.ReleaseEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			released, err := bt.EscrowUsecase.ReleaseDueEscrows(ctx)
			if err != nil {
				slog.Error("escrow auto-release pass failed", "error", err)
				continue
			}
			if released > 0 {
				slog.Info("escrow auto-release pass done", "released", released)
			}
		}
	}
}
