package paymentdto

import (
	"time"

	"github.com/servana/servana-payment-service/internal/domain"
	"github.com/shopspring/decimal"
)

// PaymentOutput is both the API response shape and the payload stored on a
// completed idempotency key, so a duplicate request replays it verbatim.
type PaymentOutput struct {
	ID                 string          `json:"id"`
	OrderID            string          `json:"order_id"`
	BuyerID            string          `json:"buyer_id"`
	SellerID           string          `json:"seller_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	PaymentMethod      string          `json:"payment_method"`
	PlatformCommission decimal.Decimal `json:"platform_commission"`
	PSPFee             decimal.Decimal `json:"psp_fee"`
	SellerPayout       decimal.Decimal `json:"seller_payout"`
	EscrowHeld         bool            `json:"escrow_held"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
}

func ToPaymentOutput(txn *domain.PaymentTransaction) *PaymentOutput {
	return &PaymentOutput{
		ID:                 txn.ID,
		OrderID:            txn.OrderID,
		BuyerID:            txn.BuyerID,
		SellerID:           txn.SellerID,
		Amount:             txn.Amount,
		Currency:           txn.Currency,
		PaymentMethod:      txn.PaymentMethod,
		PlatformCommission: txn.Split.PlatformCommission,
		PSPFee:             txn.Split.PSPFee,
		SellerPayout:       txn.Split.SellerPayout,
		EscrowHeld:         txn.EscrowHeld,
		Status:             string(txn.Status),
		CreatedAt:          txn.CreatedAt,
	}
}
