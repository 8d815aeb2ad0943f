package publisher

const (
	TopicPaymentEvents = "payment-events"
	TopicEscrowEvents  = "escrow-events"
)

type PaymentEvent struct {
	PaymentID  string `json:"payment_id"`
	OrderID    string `json:"order_id"`
	BuyerID    string `json:"buyer_id"`
	SellerID   string `json:"seller_id"`
	Status     string `json:"status"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	EscrowHeld bool   `json:"escrow_held"`
}

type EscrowEvent struct {
	EscrowID  string `json:"escrow_id"`
	PaymentID string `json:"payment_id"`
	SellerID  string `json:"seller_id"`
	Status    string `json:"status"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Reason    string `json:"reason,omitempty"`
}

// EventPublisher is what the usecases depend on; the Kafka implementation
// lives below, tests substitute a fake.
type EventPublisher interface {
	PublishPayment(topic string, event PaymentEvent) error
	PublishEscrow(topic string, event EscrowEvent) error
}
