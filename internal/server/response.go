package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tournament-reg/internal/errors"
	"tournament-reg/internal/registration"
)

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func unavailable(c *gin.Context, msg string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": msg})
}

// internalError echoes the underlying error text; it carries library
// messages only, never credentials.
func internalError(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "details": err.Error()})
}

// workflowError maps registration workflow errors to responses.
func workflowError(c *gin.Context, fallback string, err error) {
	var ve *registration.ValidationError
	switch {
	case errors.As(err, &ve):
		badRequest(c, ve.Reason)
	case errors.Is(err, apperrors.ErrInvalidSignature):
		badRequest(c, "Invalid payment signature")
	default:
		internalError(c, fallback, err)
	}
}

func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidSignature)
}
