package restapi

import (
	"errors"
	"net/http"

	"holo_vault_analyzer/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to HTTP status codes. A failed contract write is
// always 502 whatever its cause; fallback is used for anything unrecognised.
func statusFor(err error, fallback int) int {
	var txErr *entity.TransactionError
	switch {
	case errors.As(err, &txErr):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrWalletNotConnected):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrPoolNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrUnknownTab), errors.Is(err, entity.ErrNotCiphertext):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrDetailClosed), errors.Is(err, entity.ErrRawDataUnavailable):
		return http.StatusConflict
	default:
		return fallback
	}
}

func respondError(c *gin.Context, err error, fallback int) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err, fallback), ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}
