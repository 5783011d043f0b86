package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/solaropoly/internal/api"
	"github.com/mcoot/solaropoly/internal/api/sse"
	"github.com/mcoot/solaropoly/internal/factory"
)

// hubSweepInterval is how often event hubs without spectators are closed
const hubSweepInterval = time.Minute

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			fc, err := cfg.FactoryConfig(logger)
			if err != nil {
				return err
			}
			app, err := factory.New(fc)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			hubs := sse.NewHubManager(logger)
			router := api.NewRouter(api.RouterConfig{
				Logger:         logger,
				GameController: app.GameController,
				Random:         app.Random,
				HubManager:     hubs,
			})

			serverConfig := api.DefaultServerConfig()
			serverConfig.Port = cfg.Port
			server := api.NewServer(router, serverConfig, logger)
			server.RegisterOnShutdown(hubs.CloseAll)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			go hubs.Sweep(ctx, hubSweepInterval)

			return server.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&cfg.Port, "port", cfg.Port, "Listen port (env: SOLAROPOLY_PORT)")
	cmd.Flags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis (env: SOLAROPOLY_STORAGE)")
	cmd.Flags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: REDIS_URL)")

	return cmd
}
