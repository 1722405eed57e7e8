package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
	vaultMocks "github.com/allisson/tokenshare/internal/vault/usecase/mocks"
)

func TestRunRevealSecret(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	token := "01890a5d-ac96-774b-bcce-b302099a8057::c2VjcmV0LWtleQ"

	t.Run("text-output", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("RevealSecret", ctx, token).Return("hunter2", nil)

		var out bytes.Buffer
		err := RunRevealSecret(ctx, mockUseCase, logger, &out, token, "text")

		require.NoError(t, err)
		require.Equal(t, "hunter2\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("RevealSecret", ctx, token).Return("hunter2", nil)

		var out bytes.Buffer
		err := RunRevealSecret(ctx, mockUseCase, logger, &out, token, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"secret": "hunter2"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("not-found", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("RevealSecret", ctx, token).Return("", vaultDomain.ErrSecretNotFound)

		err := RunRevealSecret(ctx, mockUseCase, logger, &bytes.Buffer{}, token, "text")

		require.ErrorIs(t, err, vaultDomain.ErrSecretNotFound)
	})

	t.Run("wrong-key-reported-as-not-found", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("RevealSecret", ctx, token).Return("", vaultDomain.ErrAuthenticationFailed)

		var out bytes.Buffer
		err := RunRevealSecret(ctx, mockUseCase, logger, &out, token, "text")

		require.ErrorIs(t, err, vaultDomain.ErrSecretNotFound)
		require.Empty(t, out.String())
	})

	t.Run("malformed-token", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		mockUseCase.On("RevealSecret", ctx, "garbage").Return("", vaultDomain.ErrMalformedToken)

		err := RunRevealSecret(ctx, mockUseCase, logger, &bytes.Buffer{}, "garbage", "text")

		require.ErrorIs(t, err, vaultDomain.ErrMalformedToken)
		require.Contains(t, err.Error(), "failed to reveal secret")
	})

	t.Run("invalid-format", func(t *testing.T) {
		mockUseCase := &vaultMocks.MockVaultUseCase{}
		err := RunRevealSecret(ctx, mockUseCase, logger, &bytes.Buffer{}, token, "xml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format: xml")
		mockUseCase.AssertNotCalled(t, "RevealSecret", ctx, token)
	})
}
