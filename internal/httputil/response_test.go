package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/tokenshare/internal/errors"
)

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		leaksMessage   bool
	}{
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "secret not found"), http.StatusNotFound, "not_found", false},
		{"conflict", apperrors.Wrap(apperrors.ErrConflict, "record already exists"), http.StatusConflict, "conflict", false},
		{"invalid input", apperrors.Wrap(apperrors.ErrInvalidInput, "malformed token"), http.StatusUnprocessableEntity, "invalid_input", true},
		{
			"unavailable",
			apperrors.Mark(apperrors.Wrap(apperrors.ErrUnavailable, "storage failure"), errors.New("dial tcp 10.0.0.1:5432")),
			http.StatusServiceUnavailable,
			"service_unavailable",
			false,
		},
		{"internal", apperrors.Wrap(apperrors.ErrInternal, "crypto failure"), http.StatusInternalServerError, "internal_error", false},
		{"unknown", fmt.Errorf("something odd"), http.StatusInternalServerError, "internal_error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleErrorGin(c, tt.err, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Error)
			if tt.leaksMessage {
				assert.Equal(t, tt.err.Error(), body.Message)
			} else {
				assert.NotContains(t, body.Message, tt.err.Error())
			}
		})
	}
}

func TestHandleErrorGin_NilError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleErrorGin(c, nil, nil)

	assert.Equal(t, 0, w.Body.Len())
}

func TestHandleBadRequestAndValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"unexpected EOF"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	HandleValidationErrorGin(c, errors.New("secret: cannot be blank."), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"validation_error","message":"secret: cannot be blank."}`, w.Body.String())
}

func TestHandleErrorGin_RetryAfterAndLogLevel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		retryAfter string
		level      string
	}{
		{"unavailable", apperrors.Wrap(apperrors.ErrUnavailable, "storage failure"), "5", `"level":"ERROR"`},
		{"not found", apperrors.Wrap(apperrors.ErrNotFound, "secret not found"), "", `"level":"WARN"`},
		{"internal", errors.New("boom"), "", `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/v1/secrets/reveal", nil)

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.retryAfter, w.Header().Get("Retry-After"))
			assert.Contains(t, logs.String(), tt.level)
		})
	}
}

func TestHandleErrorWithMessageGin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("message replaces the kind default", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		err := apperrors.Mark(apperrors.Wrap(apperrors.ErrInvalidInput, "malformed token"), errors.New("illegal base64 data at input byte 3"))
		HandleErrorWithMessageGin(c, err, "invalid or corrupted link", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"error":"invalid_input","message":"invalid or corrupted link"}`, w.Body.String())
	})

	t.Run("status still follows the kind", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorWithMessageGin(c, apperrors.Wrap(apperrors.ErrUnavailable, "storage failure"), "try again", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "5", w.Header().Get("Retry-After"))
		assert.JSONEq(t, `{"error":"service_unavailable","message":"try again"}`, w.Body.String())
	})
}
