package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tokenshare/cmd/app/commands"
	"github.com/allisson/tokenshare/internal/app"
	"github.com/allisson/tokenshare/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the configured store driver",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if cfg.StoreDriver == config.StoreDriverMemory {
					return fmt.Errorf("store driver %q does not use migrations", cfg.StoreDriver)
				}

				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.StoreDriver, cfg.DBConnectionString)
			},
		},
	}
}
