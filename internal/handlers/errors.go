package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	"github.com/SscSPs/invoice_wizard/internal/dto"
	"github.com/SscSPs/invoice_wizard/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. fallback is the message used for
// unexpected failures, which are logged at error level.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var verrs apperrors.ValidationErrors
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &verrs):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Error: "Validation failed", Fields: verrs.Fields()})
	case errors.As(err, &appErr):
		logger.Warn("Request failed", slog.Int("code", appErr.Code), slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	case errors.Is(err, apperrors.ErrUnknownTemplate):
		logger.Warn("Unknown template requested", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrExportInProgress):
		logger.Warn("Export already running")
		c.JSON(http.StatusConflict, gin.H{"error": "An export is already in progress"})
	case errors.Is(err, apperrors.ErrNotConfigured):
		logger.Warn("Feature not configured", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrSubmissionFailed):
		logger.Error("Submission failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// bindJSON binds the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, req any, op string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
