package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/Sternrassler/spotify-catalog-client/internal/server"
	"github.com/Sternrassler/spotify-catalog-client/pkg/logging"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Long: `Serve the catalog over HTTP.

Routes:
  GET /v1/artists/:id
  GET /v1/artists?ids=a,b,c
  GET /v1/artists/:id/albums?include_groups=&market=&limit=&offset=
  GET /v1/artists/:id/top-tracks?market=
  GET /v1/artists/:id/related-artists
  GET /health, /ready, /metrics`,
		Args: cobra.NoArgs,
		RunE: a.serve,
	}

	cmd.Flags().String("port", "", "Listen port (overrides PORT)")

	return cmd
}

func (a *app) serve(cmd *cobra.Command, args []string) error {
	defer a.flushTraces()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := a.cfg.Port
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	c, redisClient, closeFn, err := a.newClient(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	serverLogger := logging.NewLogger(logging.ComponentServer)
	h := server.NewCatalogHandler(otel.Tracer(logging.ComponentServer), serverLogger, c, readyCheck(redisClient),
		server.WithSharedTimeout(a.cfg.HTTPTimeout*time.Duration(a.cfg.MaxPages)))

	srv, err := server.New(server.NewConfig(port), h, serverLogger)
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}

// readyCheck pings Redis when a store is configured.
func readyCheck(redisClient *redis.Client) server.ReadyCheck {
	if redisClient == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}
}
