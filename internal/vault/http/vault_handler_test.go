package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/tokenshare/internal/errors"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
	"github.com/allisson/tokenshare/internal/vault/http/dto"
	"github.com/allisson/tokenshare/internal/vault/usecase/mocks"
)

func setupTestHandler(t *testing.T, publicBaseURL string) (*VaultHandler, *mocks.MockVaultUseCase, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockVaultUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewVaultHandler(mockUseCase, publicBaseURL, 64, logger)

	router := gin.New()
	router.POST("/v1/secrets", handler.CreateSecretHandler)
	router.POST("/v1/secrets/reveal", handler.RevealSecretHandler)
	return handler, mockUseCase, router
}

func doJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestVaultHandler_CreateSecretHandler(t *testing.T) {
	t.Run("Success_WithShareURL", func(t *testing.T) {
		_, mockUseCase, router := setupTestHandler(t, "https://share.example.com")
		expiresAt := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		output := &vaultDomain.CreateSecretOutput{ID: uuid.New(), Token: "id::key", ExpiresAt: &expiresAt}

		mockUseCase.On("CreateSecret", mock.Anything, &vaultDomain.CreateSecretInput{
			Plaintext: []byte("hunter2"),
			TTL:       time.Hour,
		}).Return(output, nil).Once()

		w := doJSON(t, router, "/v1/secrets", dto.CreateSecretRequest{Secret: "hunter2", TTLSeconds: 3600})

		require.Equal(t, http.StatusCreated, w.Code)
		var response dto.CreateSecretResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "id::key", response.Token)
		assert.Equal(t, "https://share.example.com/get/id::key", response.ShareURL)
		require.NotNil(t, response.ExpiresAt)
		assert.True(t, expiresAt.Equal(*response.ExpiresAt))
	})

	t.Run("Success_WithoutShareURL", func(t *testing.T) {
		_, mockUseCase, router := setupTestHandler(t, "")
		mockUseCase.On("CreateSecret", mock.Anything, mock.Anything).
			Return(&vaultDomain.CreateSecretOutput{ID: uuid.New(), Token: "id::key"}, nil).
			Once()

		w := doJSON(t, router, "/v1/secrets", dto.CreateSecretRequest{Secret: "hunter2"})

		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "share_url")
		assert.Contains(t, w.Body.String(), `"expires_at":null`)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		_, _, router := setupTestHandler(t, "")

		w := doJSON(t, router, "/v1/secrets", `{"secret":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_Validation", func(t *testing.T) {
		_, _, router := setupTestHandler(t, "")

		for _, req := range []dto.CreateSecretRequest{
			{Secret: ""},
			{Secret: "   "},
			{Secret: "hunter2", TTLSeconds: -5},
			{Secret: string(bytes.Repeat([]byte("x"), 65))},
		} {
			w := doJSON(t, router, "/v1/secrets", req)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), "validation_error")
		}
	})

	t.Run("Error_StorageFailure", func(t *testing.T) {
		_, mockUseCase, router := setupTestHandler(t, "")
		mockUseCase.On("CreateSecret", mock.Anything, mock.Anything).
			Return(nil, apperrors.Mark(vaultDomain.ErrStorageFailure, errors.New("dial tcp: refused"))).
			Once()

		w := doJSON(t, router, "/v1/secrets", dto.CreateSecretRequest{Secret: "hunter2"})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "dial tcp")
		assert.NotContains(t, w.Body.String(), "token")
	})

	t.Run("Error_CryptoFailure", func(t *testing.T) {
		_, mockUseCase, router := setupTestHandler(t, "")
		mockUseCase.On("CreateSecret", mock.Anything, mock.Anything).
			Return(nil, vaultDomain.ErrCryptoFailure).
			Once()

		w := doJSON(t, router, "/v1/secrets", dto.CreateSecretRequest{Secret: "hunter2"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestVaultHandler_RevealSecretHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, mockUseCase, router := setupTestHandler(t, "")
		mockUseCase.On("RevealSecret", mock.Anything, "id::key").Return("hunter2", nil).Once()

		w := doJSON(t, router, "/v1/secrets/reveal", dto.RevealSecretRequest{Token: "id::key"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"secret":"hunter2"}`, w.Body.String())
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	})

	t.Run("Error_EmptyToken", func(t *testing.T) {
		_, _, router := setupTestHandler(t, "")

		w := doJSON(t, router, "/v1/secrets/reveal", dto.RevealSecretRequest{})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			"MalformedToken",
			apperrors.Mark(vaultDomain.ErrMalformedToken, errors.New("illegal base64 data at input byte 3")),
			http.StatusUnprocessableEntity,
			`{"error":"invalid_input","message":"invalid or corrupted link"}`,
		},
		{
			"NotFound",
			vaultDomain.ErrSecretNotFound,
			http.StatusNotFound,
			`{"error":"not_found","message":"secret not found"}`,
		},
		{
			"AuthenticationFailed",
			vaultDomain.ErrAuthenticationFailed,
			http.StatusNotFound,
			`{"error":"not_found","message":"secret not found"}`,
		},
		{
			"EncodingFailure",
			vaultDomain.ErrEncodingFailure,
			http.StatusUnprocessableEntity,
			`{"error":"invalid_input","message":"secret is not valid utf-8: invalid input"}`,
		},
		{
			"StorageFailure",
			apperrors.Mark(vaultDomain.ErrStorageFailure, errors.New("timeout")),
			http.StatusServiceUnavailable,
			`{"error":"service_unavailable","message":"The service is temporarily unavailable, please retry later"}`,
		},
	}
	for _, tt := range tests {
		t.Run("Error_"+tt.name, func(t *testing.T) {
			_, mockUseCase, router := setupTestHandler(t, "")
			mockUseCase.On("RevealSecret", mock.Anything, "id::key").Return("", tt.err).Once()

			w := doJSON(t, router, "/v1/secrets/reveal", dto.RevealSecretRequest{Token: "id::key"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}

	t.Run("AuthenticationFailureIsIndistinguishableFromNotFound", func(t *testing.T) {
		_, mockUseCase, router := setupTestHandler(t, "")
		mockUseCase.On("RevealSecret", mock.Anything, "a::key").Return("", vaultDomain.ErrSecretNotFound).Once()
		mockUseCase.On("RevealSecret", mock.Anything, "b::key").Return("", vaultDomain.ErrAuthenticationFailed).Once()

		notFound := doJSON(t, router, "/v1/secrets/reveal", dto.RevealSecretRequest{Token: "a::key"})
		authFailed := doJSON(t, router, "/v1/secrets/reveal", dto.RevealSecretRequest{Token: "b::key"})

		assert.Equal(t, notFound.Code, authFailed.Code)
		assert.Equal(t, notFound.Body.String(), authFailed.Body.String())
	})
}
