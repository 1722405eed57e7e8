package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	vaultUseCase "github.com/allisson/tokenshare/internal/vault/usecase"
)

// RunPurgeExpiredSecrets deletes every expired secret, or only counts them in dry-run mode.
// Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunPurgeExpiredSecrets(
	ctx context.Context,
	useCase vaultUseCase.VaultUseCase,
	logger *slog.Logger,
	writer io.Writer,
	dryRun bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("purging expired secrets", slog.Bool("dry_run", dryRun))

	result, err := useCase.PurgeExpired(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("failed to purge expired secrets: %w", err)
	}

	if format == formatJSON {
		err = writeJSON(writer, map[string]any{
			"count":   result.Count,
			"before":  result.Before.Format(time.RFC3339),
			"dry_run": result.DryRun,
		})
	} else if result.DryRun {
		_, err = fmt.Fprintf(writer, "Dry-run mode: Would delete %d expired secret(s)\n", result.Count)
	} else {
		_, err = fmt.Fprintf(writer, "Successfully deleted %d expired secret(s)\n", result.Count)
	}
	if err != nil {
		return err
	}

	logger.Info("purge completed",
		slog.Int64("count", result.Count),
		slog.Bool("dry_run", result.DryRun),
	)
	return nil
}
