package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/servana/servana-payment-service/internal/domain"
	paymentdto "github.com/servana/servana-payment-service/internal/usecase/dto/payment"
	paymentuc "github.com/servana/servana-payment-service/internal/usecase/payment"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	uc paymentuc.PaymentUsecase
}

func NewPaymentHandler(uc paymentuc.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type createPaymentRequest struct {
	OrderID             string `json:"order_id" binding:"required"`
	SellerID            string `json:"seller_id" binding:"required"`
	Amount              string `json:"amount" binding:"required"`
	Currency            string `json:"currency" binding:"required"`
	PaymentMethod       string `json:"payment_method"`
	ServiceDurationDays int    `json:"service_duration_days"`
	IdempotencyKey      string `json:"idempotency_key"`
}

func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}

	// Header wins over body; both are optional, a missing key is generated.
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = req.IdempotencyKey
	}

	output, err := h.uc.CreatePayment(c.Request.Context(), &paymentdto.CreatePaymentInput{
		OrderID:             req.OrderID,
		BuyerID:             GetUserID(c),
		SellerID:            req.SellerID,
		Amount:              amount,
		Currency:            req.Currency,
		PaymentMethod:       req.PaymentMethod,
		ServiceDurationDays: req.ServiceDurationDays,
		IdempotencyKey:      key,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, output)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	output, err := h.uc.GetPaymentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *PaymentHandler) GetPaymentForOrder(c *gin.Context) {
	output, err := h.uc.GetPaymentByOrderID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *PaymentHandler) GetSellerPayments(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	var filters domain.PaymentFilters
	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			filters.Statuses = append(filters.Statuses, domain.PaymentStatus(strings.ToUpper(s)))
		}
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filters.DateFrom = t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filters.DateTo = t
		}
	}

	outputs, total, err := h.uc.GetSellerPayments(
		c.Request.Context(),
		c.Param("id"),
		page, limit,
		c.DefaultQuery("sort_by", "created_at"),
		c.DefaultQuery("sort_order", "desc"),
		filters,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": outputs,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *PaymentHandler) CompletePayment(c *gin.Context) {
	if err := h.uc.CompletePayment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

type failPaymentRequest struct {
	Reason string `json:"reason"`
}

func (h *PaymentHandler) FailPayment(c *gin.Context) {
	var req failPaymentRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.uc.FailPayment(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "failed"})
}
