package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	walletRequest "github.com/servana/servana-payment-service/internal/delivery/http/dto/wallet/request"
	walletResponse "github.com/servana/servana-payment-service/internal/delivery/http/dto/wallet/response"
	"github.com/shopspring/decimal"
)

// HTTPWalletHandler talks to the wallet service that actually holds user
// balances. It implements domain.WalletGateway.
type HTTPWalletHandler struct {
	Address string
}

func NewHTTPWalletHandler(address string) (*HTTPWalletHandler, error) {
	return &HTTPWalletHandler{
		Address: address,
	}, nil
}

func (h *HTTPWalletHandler) CreditSeller(sellerID, paymentID string, amount decimal.Decimal) error {
	requestBodyBytes, err := json.Marshal(walletRequest.CreditSellerRequest{
		SellerID:  sellerID,
		PaymentID: paymentID,
		Amount:    amount,
	})
	if err != nil {
		return err
	}

	return h.post(fmt.Sprintf("%s/wallets/credit", h.Address), requestBodyBytes)
}

func (h *HTTPWalletHandler) RefundBuyer(buyerID, paymentID string, amount decimal.Decimal) error {
	requestBodyBytes, err := json.Marshal(walletRequest.RefundBuyerRequest{
		BuyerID:   buyerID,
		PaymentID: paymentID,
		Amount:    amount,
	})
	if err != nil {
		return err
	}

	return h.post(fmt.Sprintf("%s/wallets/refund", h.Address), requestBodyBytes)
}

func (h *HTTPWalletHandler) GetSellerBalance(sellerID string) (float64, error) {
	response, err := http.Get(fmt.Sprintf("%s/wallets/%s/balance", h.Address, sellerID))
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, err
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var balanceResponse walletResponse.BalanceResponse
		if err := json.Unmarshal(responseBodyBytes, &balanceResponse); err != nil {
			return 0, err
		}
		return balanceResponse.Balance, nil
	}
	var errorResponse walletResponse.ErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
		return 0, err
	}
	return 0, errors.New(errorResponse.Error)
}

func (h *HTTPWalletHandler) post(url string, body []byte) error {
	response, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errorResponse walletResponse.ErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errorResponse); err != nil {
		return err
	}
	return errors.New(errorResponse.Error)
}
