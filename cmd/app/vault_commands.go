package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tokenshare/cmd/app/commands"
	"github.com/allisson/tokenshare/internal/app"
	"github.com/allisson/tokenshare/internal/config"
)

// loadValidConfig loads the configuration for one-shot vault commands. The memory
// store is refused because nothing it holds outlives the process.
func loadValidConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.StoreDriver == config.StoreDriverMemory {
		return nil, fmt.Errorf("store driver %q cannot be used from the cli, use postgres or mysql", cfg.StoreDriver)
	}
	return cfg, nil
}

const createSecretDescription = "Reads the secret from stdin. One trailing line ending (\\n, \\r\\n or \\r) " +
	"is stripped, so a secret that ends in a newline is revealed without it."

func getVaultCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:        "create-secret",
			Usage:       "Seal a secret read from stdin and print its token",
			Description: createSecretDescription,
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:    "ttl",
					Aliases: []string{"t"},
					Usage:   "How long the secret stays revealable (0 uses VAULT_DEFAULT_TTL_SECONDS)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadValidConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateSecret(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cfg.VaultMaxSecretBytes,
					cmd.Duration("ttl"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "reveal-secret",
			Usage: "Reveal the secret behind a token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Required: true,
					Usage:    "Capability token returned by create-secret",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadValidConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunRevealSecret(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("token"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "purge-expired-secrets",
			Usage: "Delete secrets whose expiry has passed",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dry-run",
					Aliases: []string{"n"},
					Value:   false,
					Usage:   "Show how many secrets would be deleted without deleting",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadValidConfig()
				if err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				vaultUseCase, err := container.VaultUseCase()
				if err != nil {
					return err
				}

				return commands.RunPurgeExpiredSecrets(
					ctx,
					vaultUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Bool("dry-run"),
					cmd.String("format"),
				)
			},
		},
	}
}
