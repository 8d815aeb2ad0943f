package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEscrowRepo struct {
	mu      sync.Mutex
	escrows map[string]*domain.EscrowTransaction

	findErr error
}

func newMemEscrowRepo() *memEscrowRepo {
	return &memEscrowRepo{escrows: make(map[string]*domain.EscrowTransaction)}
}

func (m *memEscrowRepo) Create(ctx context.Context, escrow *domain.EscrowTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *escrow
	m.escrows[escrow.ID] = &stored
	return nil
}

func (m *memEscrowRepo) GetByID(ctx context.Context, escrowID string) (*domain.EscrowTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	escrow, ok := m.escrows[escrowID]
	if !ok {
		return nil, domain.ErrEscrowNotFound
	}
	copied := *escrow
	return &copied, nil
}

func (m *memEscrowRepo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.EscrowTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, escrow := range m.escrows {
		if escrow.PaymentID == paymentID {
			copied := *escrow
			return &copied, nil
		}
	}
	return nil, domain.ErrEscrowNotFound
}

func (m *memEscrowRepo) TransitionStatus(ctx context.Context, escrowID string, from, to domain.EscrowStatus, reason string, sideEffect func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	escrow, ok := m.escrows[escrowID]
	if !ok {
		return domain.ErrEscrowNotFound
	}
	if escrow.Status != from {
		return domain.ErrStatusConflict
	}
	if sideEffect != nil {
		if err := sideEffect(); err != nil {
			return err
		}
	}
	escrow.Status = to
	if reason != "" {
		escrow.DisputeReason = reason
	}
	escrow.UpdatedAt = time.Now()
	return nil
}

func (m *memEscrowRepo) FindDueForRelease(ctx context.Context, now time.Time, limit int) ([]*domain.EscrowTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	var due []*domain.EscrowTransaction
	for _, escrow := range m.escrows {
		if escrow.Status == domain.EscrowStatusPending && !escrow.ReleaseAt.After(now) {
			copied := *escrow
			due = append(due, &copied)
			if len(due) == limit {
				break
			}
		}
	}
	return due, nil
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.PaymentTransaction
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{payments: make(map[string]*domain.PaymentTransaction)}
}

func (m *memPaymentRepo) CreateWithSplit(ctx context.Context, txn *domain.PaymentTransaction, escrow *domain.EscrowTransaction, keyID, response string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *txn
	m.payments[txn.ID] = &stored
	return nil
}

func (m *memPaymentRepo) GetByID(ctx context.Context, paymentID string) (*domain.PaymentTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copied := *txn
	return &copied, nil
}

func (m *memPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentTransaction, error) {
	return nil, domain.ErrPaymentNotFound
}

func (m *memPaymentRepo) UpdateStatus(ctx context.Context, paymentID string, from, to domain.PaymentStatus, sideEffect func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	txn, ok := m.payments[paymentID]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	if txn.Status != from {
		return domain.ErrStatusConflict
	}
	if sideEffect != nil {
		if err := sideEffect(); err != nil {
			return err
		}
	}
	txn.Status = to
	return nil
}

func (m *memPaymentRepo) ListBySeller(ctx context.Context, sellerID string, page, limit int64, sortBy, sortOrder string, filters domain.PaymentFilters) ([]*domain.PaymentTransaction, int64, error) {
	return nil, 0, nil
}

func (m *memPaymentRepo) CountCompletedBySeller(ctx context.Context, sellerID string) (int64, error) {
	return 0, nil
}

type memWallet struct {
	mu      sync.Mutex
	credits int
	refunds int

	creditErr error
	refundErr error
}

func (m *memWallet) CreditSeller(sellerID, paymentID string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creditErr != nil {
		return m.creditErr
	}
	m.credits++
	return nil
}

func (m *memWallet) RefundBuyer(buyerID, paymentID string, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refundErr != nil {
		return m.refundErr
	}
	m.refunds++
	return nil
}

func (m *memWallet) GetSellerBalance(sellerID string) (float64, error) {
	return 0, nil
}

type memPublisher struct {
	mu     sync.Mutex
	events []publisher.EscrowEvent
}

func (m *memPublisher) PublishPayment(topic string, event publisher.PaymentEvent) error {
	return nil
}

func (m *memPublisher) PublishEscrow(topic string, event publisher.EscrowEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

type escrowEnv struct {
	uc          *DefaultEscrowUsecase
	escrowRepo  *memEscrowRepo
	paymentRepo *memPaymentRepo
	wallet      *memWallet
}

func newEscrowEnv() *escrowEnv {
	escrowRepo := newMemEscrowRepo()
	paymentRepo := newMemPaymentRepo()
	wallet := &memWallet{}
	uc := NewDefaultEscrowUsecase(escrowRepo, paymentRepo, wallet, &memPublisher{}, nil)
	return &escrowEnv{uc: uc, escrowRepo: escrowRepo, paymentRepo: paymentRepo, wallet: wallet}
}

func seedHeldPayment(t *testing.T, env *escrowEnv, escrowID, paymentID string, releaseAt time.Time) {
	t.Helper()
	require.NoError(t, env.paymentRepo.CreateWithSplit(context.Background(), &domain.PaymentTransaction{
		ID:       paymentID,
		OrderID:  "order-" + paymentID,
		BuyerID:  "buyer-1",
		SellerID: "seller-1",
		Amount:   decimal.RequireFromString("600.00"),
		Currency: "USD",
		Split: domain.PaymentSplit{
			PlatformCommission: decimal.RequireFromString("54.00"),
			PSPFee:             decimal.RequireFromString("23.70"),
			SellerPayout:       decimal.RequireFromString("522.30"),
		},
		EscrowHeld: true,
		Status:     domain.PaymentStatusPending,
	}, nil, "", ""))
	require.NoError(t, env.escrowRepo.Create(context.Background(), &domain.EscrowTransaction{
		ID:        escrowID,
		PaymentID: paymentID,
		BuyerID:   "buyer-1",
		SellerID:  "seller-1",
		Amount:    decimal.RequireFromString("600.00"),
		Currency:  "USD",
		Status:    domain.EscrowStatusPending,
		ReleaseAt: releaseAt,
	}))
}

func TestReleaseEscrow(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now().Add(24*time.Hour))

	require.NoError(t, env.uc.ReleaseEscrow(context.Background(), "esc-1"))

	escrow, err := env.escrowRepo.GetByID(context.Background(), "esc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowStatusReleased, escrow.Status)

	payment, err := env.paymentRepo.GetByID(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)

	assert.Equal(t, 1, env.wallet.credits)
	assert.Zero(t, env.wallet.refunds)
}

func TestReleaseEscrow_OnlyFromPending(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now())

	require.NoError(t, env.uc.ReleaseEscrow(context.Background(), "esc-1"))

	err := env.uc.ReleaseEscrow(context.Background(), "esc-1")
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
	assert.Equal(t, 1, env.wallet.credits, "release must not pay twice")
}

func TestReleaseEscrow_WalletFailureRollsBack(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now())
	env.wallet.creditErr = errors.New("wallet unavailable")

	err := env.uc.ReleaseEscrow(context.Background(), "esc-1")
	require.Error(t, err)

	escrow, getErr := env.escrowRepo.GetByID(context.Background(), "esc-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.EscrowStatusPending, escrow.Status)

	payment, getErr := env.paymentRepo.GetByID(context.Background(), "pay-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
}

func TestReleaseEscrow_NotFound(t *testing.T) {
	env := newEscrowEnv()

	err := env.uc.ReleaseEscrow(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrEscrowNotFound)
}

func TestRefundEscrow(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now().Add(24*time.Hour))

	require.NoError(t, env.uc.RefundEscrow(context.Background(), "esc-1", "item never delivered"))

	escrow, err := env.escrowRepo.GetByID(context.Background(), "esc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowStatusRefunded, escrow.Status)
	assert.Equal(t, "item never delivered", escrow.DisputeReason)

	payment, err := env.paymentRepo.GetByID(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)

	assert.Equal(t, 1, env.wallet.refunds)
	assert.Zero(t, env.wallet.credits)
}

func TestRefundEscrow_ReasonRequired(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now())

	err := env.uc.RefundEscrow(context.Background(), "esc-1", "")
	assert.ErrorIs(t, err, domain.ErrDisputeReasonRequired)

	escrow, getErr := env.escrowRepo.GetByID(context.Background(), "esc-1")
	require.NoError(t, getErr)
	assert.Equal(t, domain.EscrowStatusPending, escrow.Status)
}

func TestRefundEscrow_AfterReleaseConflicts(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now())

	require.NoError(t, env.uc.ReleaseEscrow(context.Background(), "esc-1"))

	err := env.uc.RefundEscrow(context.Background(), "esc-1", "changed my mind")
	assert.ErrorIs(t, err, domain.ErrStatusConflict)
	assert.Zero(t, env.wallet.refunds)
}

func TestReleaseDueEscrows(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-due", "pay-1", time.Now().Add(-time.Hour))
	seedHeldPayment(t, env, "esc-future", "pay-2", time.Now().Add(24*time.Hour))

	released, err := env.uc.ReleaseDueEscrows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	due, err := env.escrowRepo.GetByID(context.Background(), "esc-due")
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowStatusReleased, due.Status)

	future, err := env.escrowRepo.GetByID(context.Background(), "esc-future")
	require.NoError(t, err)
	assert.Equal(t, domain.EscrowStatusPending, future.Status)
}

func TestReleaseDueEscrows_ContinuesPastFailures(t *testing.T) {
	env := newEscrowEnv()
	seedHeldPayment(t, env, "esc-1", "pay-1", time.Now().Add(-time.Hour))

	// An escrow pointing at a missing payment cannot release but must not
	// block the rest of the batch.
	require.NoError(t, env.escrowRepo.Create(context.Background(), &domain.EscrowTransaction{
		ID:        "esc-orphan",
		PaymentID: "pay-missing",
		SellerID:  "seller-2",
		Amount:    decimal.RequireFromString("700.00"),
		Currency:  "USD",
		Status:    domain.EscrowStatusPending,
		ReleaseAt: time.Now().Add(-time.Hour),
	}))

	released, err := env.uc.ReleaseDueEscrows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, released)
}

func TestReleaseDueEscrows_ScanFailure(t *testing.T) {
	env := newEscrowEnv()
	env.escrowRepo.findErr = errors.New("store down")

	released, err := env.uc.ReleaseDueEscrows(context.Background())
	assert.Error(t, err)
	assert.Zero(t, released)
}
