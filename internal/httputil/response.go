// Package httputil writes the JSON error bodies shared by every API handler.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/tokenshare/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// unavailableRetryAfter is the Retry-After hint sent with 503 responses, in seconds.
const unavailableRetryAfter = "5"

type errorKind struct {
	sentinel error
	status   int
	code     string
	// message is sent verbatim; empty means the error text itself is safe to return.
	message string
}

// errorKinds is checked in order; the first matching sentinel wins.
var errorKinds = []errorKind{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{
		apperrors.ErrUnavailable,
		http.StatusServiceUnavailable,
		"service_unavailable",
		"The service is temporarily unavailable, please retry later",
	},
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// Causes are logged but never written to the client for server-side failures.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	handleError(c, err, "", logger)
}

// HandleErrorWithMessageGin behaves like HandleErrorGin but sends message instead of
// the default text for the error's kind. The cause is still logged.
func HandleErrorWithMessageGin(c *gin.Context, err error, message string, logger *slog.Logger) {
	handleError(c, err, message, logger)
}

func handleError(c *gin.Context, err error, message string, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode := http.StatusInternalServerError
	errorResponse := ErrorResponse{Error: "internal_error", Message: "An internal error occurred"}

	for _, kind := range errorKinds {
		if !apperrors.Is(err, kind.sentinel) {
			continue
		}
		statusCode = kind.status
		errorResponse = ErrorResponse{Error: kind.code, Message: kind.message}
		if kind.message == "" {
			errorResponse.Message = err.Error()
		}
		break
	}
	if message != "" {
		errorResponse.Message = message
	}

	if statusCode == http.StatusServiceUnavailable {
		c.Header("Retry-After", unavailableRetryAfter)
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c, level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: err.Error(),
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
