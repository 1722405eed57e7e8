// Package http provides HTTP handlers for creating and revealing shared secrets.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/tokenshare/internal/httputil"
	customValidation "github.com/allisson/tokenshare/internal/validation"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
	"github.com/allisson/tokenshare/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/tokenshare/internal/vault/usecase"
)

// VaultHandler handles HTTP requests for the vault.
type VaultHandler struct {
	vaultUseCase   vaultUseCase.VaultUseCase
	publicBaseURL  string
	maxSecretBytes int
	logger         *slog.Logger
}

// NewVaultHandler creates a new vault handler.
func NewVaultHandler(
	vaultUseCase vaultUseCase.VaultUseCase,
	publicBaseURL string,
	maxSecretBytes int,
	logger *slog.Logger,
) *VaultHandler {
	return &VaultHandler{
		vaultUseCase:   vaultUseCase,
		publicBaseURL:  publicBaseURL,
		maxSecretBytes: maxSecretBytes,
		logger:         logger,
	}
}

// CreateSecretHandler seals a secret and returns its capability token.
// POST /v1/secrets - Returns 201 Created with the token and optional share URL.
func (h *VaultHandler) CreateSecretHandler(c *gin.Context) {
	var req dto.CreateSecretRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.maxSecretBytes); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.vaultUseCase.CreateSecret(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("secret created",
		slog.String("secret_id", output.ID.String()),
		slog.Any("expires_at", output.ExpiresAt),
	)

	c.JSON(http.StatusCreated, dto.MapCreateSecretOutputToResponse(output, h.publicBaseURL))
}

// RevealSecretHandler opens the secret a token points at.
// POST /v1/secrets/reveal - Returns 200 OK with the plaintext.
//
// A token whose key does not open the record gets the same 404 as an unknown id, so
// callers cannot tell a guessed id from a guessed key.
func (h *VaultHandler) RevealSecretHandler(c *gin.Context) {
	var req dto.RevealSecretRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := h.vaultUseCase.RevealSecret(c.Request.Context(), req.Token)
	if err != nil {
		h.handleRevealError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.RevealSecretResponse{Secret: plaintext})
}

// User-facing messages for reveal failures. They never carry the cause.
const (
	msgMalformedToken = "invalid or corrupted link"
	msgSecretNotFound = "secret not found"
)

func (h *VaultHandler) handleRevealError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vaultDomain.ErrMalformedToken):
		httputil.HandleErrorWithMessageGin(c, err, msgMalformedToken, h.logger)
	case errors.Is(err, vaultDomain.ErrAuthenticationFailed):
		h.logger.Warn("secret failed authentication", slog.String("client_ip", c.ClientIP()))
		httputil.HandleErrorWithMessageGin(c, vaultDomain.ErrSecretNotFound, msgSecretNotFound, h.logger)
	case errors.Is(err, vaultDomain.ErrSecretNotFound):
		httputil.HandleErrorWithMessageGin(c, err, msgSecretNotFound, h.logger)
	default:
		httputil.HandleErrorGin(c, err, h.logger)
	}
}
