package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
	vaultUseCase "github.com/allisson/tokenshare/internal/vault/usecase"
)

// RunRevealSecret opens the secret behind token and writes its plaintext. A wrong key and
// an unknown id are reported identically.
func RunRevealSecret(
	ctx context.Context,
	useCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plaintext, err := useCase.RevealSecret(ctx, token)
	if err != nil {
		if errors.Is(err, vaultDomain.ErrAuthenticationFailed) {
			logger.Warn("secret failed authentication")
			return vaultDomain.ErrSecretNotFound
		}
		return fmt.Errorf("failed to reveal secret: %w", err)
	}

	if format == formatJSON {
		return writeJSON(writer, map[string]string{"secret": plaintext})
	}
	_, err = fmt.Fprintln(writer, plaintext)
	return err
}
