package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics holds every metric the payment service exposes.
type PaymentMetrics struct {
	PaymentsCreatedTotal       prometheus.CounterVec
	PaymentsCreatedAmountTotal prometheus.CounterVec
	PaymentsCompletedTotal     prometheus.CounterVec
	PaymentsFailedTotal        prometheus.CounterVec

	PlatformCommissionTotal prometheus.CounterVec
	PSPFeeTotal             prometheus.CounterVec
	SellerPayoutTotal       prometheus.CounterVec

	EscrowsCreatedTotal  prometheus.CounterVec
	EscrowsReleasedTotal prometheus.CounterVec
	EscrowsRefundedTotal prometheus.CounterVec

	IdempotentReplaysTotal   prometheus.CounterVec
	IdempotencyConflictTotal prometheus.CounterVec

	PaymentProcessingDuration prometheus.HistogramVec

	PaymentErrorsTotal prometheus.CounterVec
}

func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_total",
				Help: "Number of payment transactions created",
			},
			[]string{"seller_id", "currency", "payment_method"},
		),

		PaymentsCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_created_amount_total",
				Help: "Gross amount of created payment transactions",
			},
			[]string{"seller_id", "currency"},
		),

		PaymentsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_total",
				Help: "Number of payment transactions moved to COMPLETED",
			},
			[]string{"seller_id", "currency"},
		),

		PaymentsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_failed_total",
				Help: "Number of payment transactions moved to FAILED",
			},
			[]string{"seller_id", "currency"},
		),

		PlatformCommissionTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platform_commission_total",
				Help: "Accumulated platform commission",
			},
			[]string{"currency"},
		),

		PSPFeeTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "psp_fee_total",
				Help: "Accumulated payment-processor fees",
			},
			[]string{"currency"},
		),

		SellerPayoutTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seller_payout_total",
				Help: "Accumulated seller payouts",
			},
			[]string{"currency"},
		),

		EscrowsCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_created_total",
				Help: "Number of escrow holds created",
			},
			[]string{"seller_id", "currency"},
		),

		EscrowsReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_released_total",
				Help: "Number of escrow holds released to sellers",
			},
			[]string{"seller_id", "currency"},
		),

		EscrowsRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrows_refunded_total",
				Help: "Number of escrow holds refunded to buyers",
			},
			[]string{"seller_id", "currency"},
		),

		IdempotentReplaysTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idempotent_replays_total",
				Help: "Duplicate requests answered from a completed idempotency key",
			},
			[]string{"request_type"},
		),

		IdempotencyConflictTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "idempotency_conflict_total",
				Help: "Duplicate requests rejected while the original was in flight",
			},
			[]string{"request_type"},
		),

		PaymentProcessingDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_processing_duration_seconds",
				Help:    "Time spent creating a payment transaction",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"outcome"},
		),

		PaymentErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_errors_total",
				Help: "Errors while creating or processing payments",
			},
			[]string{"error_type"},
		),
	}
}

// Record methods tolerate a nil receiver so tests can run without metrics.

func (m *PaymentMetrics) RecordPaymentCreated(sellerID, currency, paymentMethod string, amount float64) {
	if m == nil {
		return
	}
	m.PaymentsCreatedTotal.WithLabelValues(sellerID, currency, paymentMethod).Inc()
	m.PaymentsCreatedAmountTotal.WithLabelValues(sellerID, currency).Add(amount)
}

func (m *PaymentMetrics) RecordSplit(currency string, commission, pspFee, payout float64) {
	if m == nil {
		return
	}
	m.PlatformCommissionTotal.WithLabelValues(currency).Add(commission)
	m.PSPFeeTotal.WithLabelValues(currency).Add(pspFee)
	m.SellerPayoutTotal.WithLabelValues(currency).Add(payout)
}

func (m *PaymentMetrics) RecordPaymentCompleted(sellerID, currency string) {
	if m == nil {
		return
	}
	m.PaymentsCompletedTotal.WithLabelValues(sellerID, currency).Inc()
}

func (m *PaymentMetrics) RecordPaymentFailed(sellerID, currency string) {
	if m == nil {
		return
	}
	m.PaymentsFailedTotal.WithLabelValues(sellerID, currency).Inc()
}

func (m *PaymentMetrics) RecordEscrowCreated(sellerID, currency string) {
	if m == nil {
		return
	}
	m.EscrowsCreatedTotal.WithLabelValues(sellerID, currency).Inc()
}

func (m *PaymentMetrics) RecordEscrowReleased(sellerID, currency string) {
	if m == nil {
		return
	}
	m.EscrowsReleasedTotal.WithLabelValues(sellerID, currency).Inc()
}

func (m *PaymentMetrics) RecordEscrowRefunded(sellerID, currency string) {
	if m == nil {
		return
	}
	m.EscrowsRefundedTotal.WithLabelValues(sellerID, currency).Inc()
}

func (m *PaymentMetrics) RecordIdempotentReplay(requestType string) {
	if m == nil {
		return
	}
	m.IdempotentReplaysTotal.WithLabelValues(requestType).Inc()
}

func (m *PaymentMetrics) RecordIdempotencyConflict(requestType string) {
	if m == nil {
		return
	}
	m.IdempotencyConflictTotal.WithLabelValues(requestType).Inc()
}

func (m *PaymentMetrics) RecordProcessingDuration(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.PaymentProcessingDuration.WithLabelValues(outcome).Observe(seconds)
}

func (m *PaymentMetrics) RecordPaymentError(errorType string) {
	if m == nil {
		return
	}
	m.PaymentErrorsTotal.WithLabelValues(errorType).Inc()
}
