package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	escrowuc "github.com/servana/servana-payment-service/internal/usecase/escrow"
)

type EscrowHandler struct {
	uc escrowuc.EscrowUsecase
}

func NewEscrowHandler(uc escrowuc.EscrowUsecase) *EscrowHandler {
	return &EscrowHandler{uc: uc}
}

func (h *EscrowHandler) GetEscrow(c *gin.Context) {
	output, err := h.uc.GetEscrowByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *EscrowHandler) GetEscrowForPayment(c *gin.Context) {
	output, err := h.uc.GetEscrowByPaymentID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, output)
}

func (h *EscrowHandler) ReleaseEscrow(c *gin.Context) {
	if err := h.uc.ReleaseEscrow(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "released"})
}

type refundEscrowRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *EscrowHandler) RefundEscrow(c *gin.Context) {
	var req refundEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dispute reason required"})
		return
	}

	if err := h.uc.RefundEscrow(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refunded"})
}
