package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servana/servana-payment-service/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
// Validation -> 400, identity -> 401, missing -> 404, transition
// conflicts -> 409, in-flight duplicates -> 429, store failures -> 502.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrDisputeReasonRequired):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrEscrowNotFound),
		errors.Is(err, domain.ErrKeyNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStatusConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRetryLater):
		status = http.StatusTooManyRequests
	default:
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			status = http.StatusBadGateway
		}
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
