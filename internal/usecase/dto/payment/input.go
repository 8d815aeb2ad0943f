package paymentdto

import "github.com/shopspring/decimal"

// CreatePaymentInput is a request to move money for one order. BuyerID is
// the explicit caller identity: there is no ambient session state here.
type CreatePaymentInput struct {
	OrderID             string
	BuyerID             string
	SellerID            string
	Amount              decimal.Decimal
	Currency            string
	PaymentMethod       string
	ServiceDurationDays int

	// IdempotencyKey is caller-supplied; generated when empty.
	IdempotencyKey string
}
