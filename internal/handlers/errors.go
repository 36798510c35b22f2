package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tukarkoin/tukar_koin_app/internal/apperrors"
	"github.com/tukarkoin/tukar_koin_app/internal/middleware"
)

// respondWithError maps the error taxonomy to HTTP status codes. Every typed
// failure reaches the caller with enough structured detail to render a
// specific message; only unclassified errors collapse to a generic 500.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var insufficientErr *apperrors.InsufficientStockError
	if errors.As(err, &insufficientErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        insufficientErr.Error(),
			"denomination": insufficientErr.Denomination,
			"available":    insufficientErr.Available,
			"requested":    insufficientErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoActiveAssignment):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrentUpdate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			logger.Error("storage failure", slog.String("error", appErr.Error()))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("unclassified failure", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
