package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tablero/internal/services/auth"
	"tablero/internal/services/card"
	"tablero/internal/services/column"
	"tablero/internal/services/user"
)

// respondError maps service errors onto HTTP statuses. Anything unmapped is
// treated as an internal error and logged without leaking details.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrAdminRequired),
		errors.Is(err, card.ErrNotCardOwner),
		errors.Is(err, card.ErrAdminOnly):
		return http.StatusForbidden
	case errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, card.ErrColumnNotFound),
		errors.Is(err, column.ErrColumnNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, card.ErrInvalidStatus),
		errors.Is(err, card.ErrMissingColumn),
		errors.Is(err, column.ErrEmptyName),
		errors.Is(err, column.ErrNameTooLong),
		errors.Is(err, user.ErrEmptyUsername),
		errors.Is(err, user.ErrEmptyPassword),
		errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrCannotDeleteAdmin):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
