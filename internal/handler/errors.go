package handler

import (
	"errors"
	"net/http"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Internal
// failures are reported generically.
func writeError(c *gin.Context, err error) {
	requestID := c.GetString("request_id")

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorResponse{Error: ve.Msg, Code: ve.Code})
	case errors.Is(err, domain.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "DUPLICATE_SLUG"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Product not found", Code: "NOT_FOUND"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Invalid credentials", Code: "INVALID_CREDENTIALS"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error(), Code: "UNAUTHORIZED"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:     "Internal server error",
			Code:      "INTERNAL_ERROR",
			RequestID: requestID,
		})
	}
}

func badJSON(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request format",
		"code":    domain.CodeInvalidField,
		"details": err.Error(),
	})
}
