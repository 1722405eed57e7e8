package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/tokenshare/internal/crypto/domain"
	vaultDomain "github.com/allisson/tokenshare/internal/vault/domain"
	vaultUseCase "github.com/allisson/tokenshare/internal/vault/usecase"
)

// RunCreateSecret reads a secret from io.Reader, seals it and writes the capability token.
// A single trailing newline (as left by echo or a terminal) is stripped. maxBytes bounds
// how much input is read; larger input fails before any crypto work.
func RunCreateSecret(
	ctx context.Context,
	useCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	io IOTuple,
	maxBytes int,
	ttl time.Duration,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if ttl < 0 {
		return fmt.Errorf("ttl must not be negative, got: %s", ttl)
	}

	plaintext, err := readSecret(io.Reader, maxBytes)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plaintext)

	output, err := useCase.CreateSecret(ctx, &vaultDomain.CreateSecretInput{
		Plaintext: plaintext,
		TTL:       ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to create secret: %w", err)
	}

	if format == formatJSON {
		err = writeJSON(io.Writer, map[string]any{
			"id":         output.ID.String(),
			"token":      output.Token,
			"created_at": output.CreatedAt,
			"expires_at": output.ExpiresAt,
		})
	} else {
		err = outputCreateSecretText(io.Writer, output)
	}
	if err != nil {
		return err
	}

	logger.Info("secret created", slog.String("id", output.ID.String()))
	return nil
}

// readSecret reads the whole secret from r and drops one trailing line ending
// ("\n", "\r\n" or "\r"), so a secret that itself ends in a newline is revealed without it.
func readSecret(r io.Reader, maxBytes int) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no input to read the secret from")
	}

	var reader io.Reader = r
	if maxBytes > 0 {
		// room for a trailing CRLF
		reader = io.LimitReader(r, int64(maxBytes)+2)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))

	if len(data) == 0 {
		return nil, fmt.Errorf("secret must not be empty")
	}
	if maxBytes > 0 && len(data) > maxBytes {
		cryptoDomain.Zero(data)
		return nil, fmt.Errorf("secret exceeds %d bytes", maxBytes)
	}
	return data, nil
}

func outputCreateSecretText(w io.Writer, output *vaultDomain.CreateSecretOutput) error {
	expires := "never"
	if output.ExpiresAt != nil {
		expires = output.ExpiresAt.Format(time.RFC3339)
	}
	_, err := fmt.Fprintf(w, "Token: %s\nExpires: %s\n", output.Token, expires)
	return err
}
