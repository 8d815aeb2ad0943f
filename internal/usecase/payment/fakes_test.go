package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	publisher "github.com/servana/servana-payment-service/internal/infrastructure/kafka"
	"github.com/shopspring/decimal"
)

// In-memory doubles for the store and outbound ports. The payment store
// completes the idempotency key inside CreateWithSplit the same way the
// real repository does, so the atomicity contract is observable in tests.

type fakeIdempotencyRepo struct {
	mu      sync.Mutex
	records map[string]*domain.IdempotencyKey // key+"/"+requestType
	byID    map[string]*domain.IdempotencyKey

	reserveErr error
}

func newFakeIdempotencyRepo() *fakeIdempotencyRepo {
	return &fakeIdempotencyRepo{
		records: make(map[string]*domain.IdempotencyKey),
		byID:    make(map[string]*domain.IdempotencyKey),
	}
}

func (f *fakeIdempotencyRepo) Reserve(ctx context.Context, rec *domain.IdempotencyKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reserveErr != nil {
		return f.reserveErr
	}
	k := rec.Key + "/" + rec.RequestType
	if _, ok := f.records[k]; ok {
		return domain.ErrDuplicateKey
	}
	stored := *rec
	stored.CreatedAt = time.Now()
	f.records[k] = &stored
	f.byID[stored.ID] = &stored
	return nil
}

func (f *fakeIdempotencyRepo) GetByKey(ctx context.Context, key, requestType string) (*domain.IdempotencyKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[key+"/"+requestType]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeIdempotencyRepo) Rearm(ctx context.Context, recordID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[recordID]
	if !ok {
		return domain.ErrKeyNotFound
	}
	if rec.Status != domain.IdempotencyFailed {
		return domain.ErrStatusConflict
	}
	rec.Status = domain.IdempotencyProcessing
	return nil
}

func (f *fakeIdempotencyRepo) MarkFailed(ctx context.Context, recordID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[recordID]
	if !ok {
		return domain.ErrKeyNotFound
	}
	if rec.Status != domain.IdempotencyProcessing {
		return domain.ErrStatusConflict
	}
	rec.Status = domain.IdempotencyFailed
	return nil
}

type fakePaymentRepo struct {
	mu         sync.Mutex
	payments   map[string]*domain.PaymentTransaction
	escrowRows []*domain.EscrowTransaction
	idem       *fakeIdempotencyRepo

	createErr error
}

func newFakePaymentRepo(idem *fakeIdempotencyRepo) *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[string]*domain.PaymentTransaction),
		idem:     idem,
	}
}

func (f *fakePaymentRepo) CreateWithSplit(ctx context.Context, txn *domain.PaymentTransaction, escrow *domain.EscrowTransaction, keyID, response string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	stored := *txn
	f.payments[txn.ID] = &stored
	if escrow != nil {
		escrowCopy := *escrow
		f.escrowRows = append(f.escrowRows, &escrowCopy)
	}
	if keyID != "" && f.idem != nil {
		f.idem.mu.Lock()
		if rec, ok := f.idem.byID[keyID]; ok && rec.Status == domain.IdempotencyProcessing {
			rec.Status = domain.IdempotencyCompleted
			rec.ResponsePayload = response
		}
		f.idem.mu.Unlock()
	}
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, paymentID string) (*domain.PaymentTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	txn, ok := f.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	copied := *txn
	return &copied, nil
}

func (f *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.payments {
		if txn.OrderID == orderID {
			copied := *txn
			return &copied, nil
		}
	}
	return nil, domain.ErrPaymentNotFound
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, paymentID string, from, to domain.PaymentStatus, sideEffect func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	txn, ok := f.payments[paymentID]
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
	txn.UpdatedAt = time.Now()
	return nil
}

func (f *fakePaymentRepo) ListBySeller(ctx context.Context, sellerID string, page, limit int64, sortBy, sortOrder string, filters domain.PaymentFilters) ([]*domain.PaymentTransaction, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.PaymentTransaction
	for _, txn := range f.payments {
		if txn.SellerID == sellerID {
			copied := *txn
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) CountCompletedBySeller(ctx context.Context, sellerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, txn := range f.payments {
		if txn.SellerID == sellerID && txn.Status == domain.PaymentStatusCompleted {
			n++
		}
	}
	return n, nil
}

type walletCall struct {
	userID    string
	paymentID string
	amount    decimal.Decimal
}

type fakeWallet struct {
	mu      sync.Mutex
	credits []walletCall
	refunds []walletCall

	creditErr error
	refundErr error
}

func (f *fakeWallet) CreditSeller(sellerID, paymentID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.creditErr != nil {
		return f.creditErr
	}
	f.credits = append(f.credits, walletCall{sellerID, paymentID, amount})
	return nil
}

func (f *fakeWallet) RefundBuyer(buyerID, paymentID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refundErr != nil {
		return f.refundErr
	}
	f.refunds = append(f.refunds, walletCall{buyerID, paymentID, amount})
	return nil
}

func (f *fakeWallet) GetSellerBalance(sellerID string) (float64, error) {
	return 0, nil
}

func (f *fakeWallet) creditCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.credits)
}

type fakePublisher struct {
	mu            sync.Mutex
	paymentEvents []publisher.PaymentEvent
	escrowEvents  []publisher.EscrowEvent
}

func (f *fakePublisher) PublishPayment(topic string, event publisher.PaymentEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentEvents = append(f.paymentEvents, event)
	return nil
}

func (f *fakePublisher) PublishEscrow(topic string, event publisher.EscrowEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.escrowEvents = append(f.escrowEvents, event)
	return nil
}
