package request

import "github.com/shopspring/decimal"

type CreditSellerRequest struct {
	SellerID  string          `json:"seller_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type RefundBuyerRequest struct {
	BuyerID   string          `json:"buyer_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
}
