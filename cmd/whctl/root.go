package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/wallhaven-client/internal/config"
	"github.com/Sternrassler/wallhaven-client/pkg/client"
	"github.com/Sternrassler/wallhaven-client/pkg/logging"
	"github.com/Sternrassler/wallhaven-client/pkg/presets"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	debug   bool

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "whctl",
		Short: "whctl - search and browse wallhaven from the command line",
		Long: `whctl is a command-line client for the wallhaven API.

Search with the same filters as the website, look up wallpapers, tags and
collections, save searches as presets, or run 'whctl serve' to expose
searches and metrics over HTTP.

Configuration is read from ~/.config/whctl/config.yaml and WALLHAVEN_*
environment variables (e.g. WALLHAVEN_API_KEY).`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file path (default ~/.config/whctl/config.yaml)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newSearchCmd(a),
		newWallpaperCmd(a),
		newTagCmd(a),
		newSettingsCmd(a),
		newCollectionsCmd(a),
		newCollectionCmd(a),
		newPresetCmd(a),
		newServeCmd(a),
	)

	return cmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	a.cfg = cfg

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if a.debug {
		logCfg.Level = logging.LevelDebug
	}

	_, closer, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	a.logCloser = closer
	a.logger = logging.NewLogger("whctl")

	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

// newClient creates the wallhaven client from the loaded configuration.
func (a *app) newClient() (*client.Client, error) {
	clientCfg := a.cfg.ClientConfig()
	clientCfg.Logger = &a.logger
	return client.New(clientCfg)
}

// newRedis connects to the configured Redis server.
func (a *app) newRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
}

// newPresetStore opens the preset store. The returned function closes the connection.
func (a *app) newPresetStore(ctx context.Context) (*presets.Store, func(), error) {
	rc := a.newRedis()
	if err := rc.Ping(ctx).Err(); err != nil {
		rc.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", a.cfg.Redis.Addr, err)
	}
	store := presets.NewStore(rc, a.cfg.Redis.Prefix)
	return store, func() { rc.Close() }, nil
}

// writeJSON prints v as indented JSON on the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
