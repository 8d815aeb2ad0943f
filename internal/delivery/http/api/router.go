package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(paymentHandler *PaymentHandler, escrowHandler *EscrowHandler, balanceHandler *BalanceHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authorized := r.Group("/api")
	authorized.Use(RequireUser())
	{
		authorized.POST("/payments", paymentHandler.CreatePayment)
		authorized.GET("/payments/:id", paymentHandler.GetPayment)
		authorized.POST("/payments/:id/complete", paymentHandler.CompletePayment)
		authorized.POST("/payments/:id/fail", paymentHandler.FailPayment)
		authorized.GET("/payments/:id/escrow", escrowHandler.GetEscrowForPayment)

		authorized.GET("/orders/:id/payment", paymentHandler.GetPaymentForOrder)
		authorized.GET("/sellers/:id/payments", paymentHandler.GetSellerPayments)
		authorized.GET("/sellers/:id/balance", balanceHandler.GetSellerBalance)

		authorized.GET("/escrows/:id", escrowHandler.GetEscrow)
		authorized.POST("/escrows/:id/release", escrowHandler.ReleaseEscrow)
		authorized.POST("/escrows/:id/refund", escrowHandler.RefundEscrow)
	}

	return r
}
