package escrowdto

import (
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

type EscrowOutput struct {
	ID            string          `json:"id"`
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	BuyerID       string          `json:"buyer_id"`
	SellerID      string          `json:"seller_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	ReleaseAt     time.Time       `json:"release_at"`
	DisputeReason string          `json:"dispute_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func ToEscrowOutput(escrow *domain.EscrowTransaction) *EscrowOutput {
	return &EscrowOutput{
		ID:            escrow.ID,
		PaymentID:     escrow.PaymentID,
		OrderID:       escrow.OrderID,
		BuyerID:       escrow.BuyerID,
		SellerID:      escrow.SellerID,
		Amount:        escrow.Amount,
		Currency:      escrow.Currency,
		Status:        string(escrow.Status),
		ReleaseAt:     escrow.ReleaseAt,
		DisputeReason: escrow.DisputeReason,
		CreatedAt:     escrow.CreatedAt,
	}
}
