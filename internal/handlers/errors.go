package handlers

import (
	"errors"
	"net/http"

	"agrotrust/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error envelope returned by every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps the error taxonomy onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not_found", Message: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_input", Message: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "conflict", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: err.Error()})
	}
}
