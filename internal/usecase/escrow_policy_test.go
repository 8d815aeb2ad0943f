package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSellerHistory struct {
	counts map[string]int64
	err    error
}

func (s *stubSellerHistory) CountCompletedBySeller(_ context.Context, sellerID string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[sellerID], nil
}

func TestShouldUseEscrow(t *testing.T) {
	history := &stubSellerHistory{counts: map[string]int64{
		"seasoned-seller": 120,
		"five-tx-seller":  5,
		"new-seller":      0,
	}}
	policy := NewEscrowPolicy(defaultPolicy(), history)
	ctx := context.Background()

	tests := []struct {
		name     string
		gross    string
		duration int
		sellerID string
		want     bool
	}{
		{"amount threshold", "600", 1, "seasoned-seller", true},
		{"amount exactly at threshold", "500", 1, "seasoned-seller", true},
		{"duration threshold", "100", 10, "seasoned-seller", true},
		{"duration exactly at threshold", "100", 7, "seasoned-seller", true},
		{"new seller always escrowed", "100", 1, "new-seller", true},
		{"established seller direct payout", "100", 1, "five-tx-seller", false},
		{"below all thresholds", "499.99", 6, "seasoned-seller", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.ShouldUseEscrow(ctx, decimal.RequireFromString(tt.gross), tt.duration, tt.sellerID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShouldUseEscrowInvalidInput(t *testing.T) {
	policy := NewEscrowPolicy(defaultPolicy(), &stubSellerHistory{})
	ctx := context.Background()

	_, err := policy.ShouldUseEscrow(ctx, decimal.Zero, 1, "s")
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = policy.ShouldUseEscrow(ctx, decimal.NewFromInt(100), -1, "s")
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestShouldUseEscrowFailsClosed(t *testing.T) {
	lookupErr := errors.New("connection refused")
	policy := NewEscrowPolicy(defaultPolicy(), &stubSellerHistory{err: lookupErr})

	got, err := policy.ShouldUseEscrow(context.Background(), decimal.NewFromInt(100), 1, "seasoned-seller")
	assert.True(t, got, "lookup failure must force escrow")
	require.Error(t, err)

	var storeErr *domain.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, lookupErr)
}
