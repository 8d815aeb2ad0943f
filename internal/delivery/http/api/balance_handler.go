package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servana/servana-payment-service/internal/domain"
)

// BalanceHandler proxies seller balance lookups to the wallet service.
type BalanceHandler struct {
	wallet domain.WalletGateway
}

func NewBalanceHandler(wallet domain.WalletGateway) *BalanceHandler {
	return &BalanceHandler{wallet: wallet}
}

func (h *BalanceHandler) GetSellerBalance(c *gin.Context) {
	balance, err := h.wallet.GetSellerBalance(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seller_id": c.Param("id"),
		"balance":   balance,
	})
}
