// Command catalog queries the Spotify artist catalog from the command line or
// serves it over HTTP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/spotify-catalog-client/internal/config"
	"github.com/Sternrassler/spotify-catalog-client/internal/server"
	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
	"github.com/Sternrassler/spotify-catalog-client/pkg/logging"
	"github.com/Sternrassler/spotify-catalog-client/pkg/tracing"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by all subcommands once the config is loaded.
type app struct {
	envFiles []string
	output   string
	cfg      *config.Config
	logger   zerolog.Logger
	shutdown tracing.ShutdownFunc
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Spotify artist catalog client",
		Long: `catalog looks up artists, albums, top tracks and related artists in the
Spotify Web API and prints the results as JSON.

Credentials are read from SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET, either
from the environment or from a .env file. Set REDIS_URL to share cached
results between runs.

` + config.Usage(),
		Version:           fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "Env files to load (default: .env)")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", outputJSON, "Output format (json, table)")

	rootCmd.AddCommand(
		a.newArtistCmd(),
		a.newArtistsCmd(),
		a.newAlbumsCmd(),
		a.newTopTracksCmd(),
		a.newRelatedArtistsCmd(),
		a.newServeCmd(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.envFiles...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logCfg := cfg.Logging()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Setup(logCfg)
	a.logger = logging.NewLogger(logging.ComponentCLI)

	if a.output != outputJSON && a.output != outputTable {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	shutdown, err := tracing.Setup(cmd.Context(), cfg.Tracing(cmd.Root().Name(), version))
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	a.shutdown = shutdown

	return nil
}

// flushTraces exports buffered spans before the process exits.
func (a *app) flushTraces() {
	if a.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to flush traces")
	}
}

// newClient builds a catalog client. The returned close func releases the
// Redis connection when one was opened.
func (a *app) newClient(ctx context.Context) (*client.Client, *redis.Client, func(), error) {
	opts, err := a.cfg.RedisOptions()
	if err != nil {
		return nil, nil, nil, err
	}

	var redisClient *redis.Client
	closeFn := func() {}
	if opts != nil {
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.logger.Info().Str("addr", opts.Addr).Msg("Connected to Redis")
		closeFn = func() { redisClient.Close() }
	}

	clientLogger := logging.NewLogger(logging.ComponentClient)
	cc := a.cfg.Client(redisClient)
	cc.Logger = &clientLogger

	c, err := client.New(ctx, cc)
	if err != nil {
		closeFn()
		return nil, nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return c, redisClient, closeFn, nil
}

// run executes one request and prints the result.
func (a *app) run(cmd *cobra.Command, req client.Request) error {
	defer a.flushTraces()
	ctx := cmd.Context()

	c, _, closeFn, err := a.newClient(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := c.Do(ctx, req)
	if err != nil {
		return err
	}

	if a.output == outputTable {
		return writeTable(cmd.OutOrStdout(), result)
	}

	body, ok := server.Payload(result)
	if !ok {
		a.logger.Info().Str("mode", req.Mode().String()).Msg("No content")
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
