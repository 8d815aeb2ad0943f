package domain

import "github.com/shopspring/decimal"

// WalletGateway is the boundary to the wallet service that actually moves
// funds. Injected so tests can substitute a fake.
type WalletGateway interface {
	CreditSeller(sellerID, paymentID string, amount decimal.Decimal) error
	RefundBuyer(buyerID, paymentID string, amount decimal.Decimal) error
	GetSellerBalance(sellerID string) (float64, error)
}
