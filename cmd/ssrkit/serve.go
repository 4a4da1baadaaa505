package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ssrkit"
	"github.com/dmitrymomot/ssrkit/middlewares"
	"github.com/dmitrymomot/ssrkit/pkg/config"
	"github.com/dmitrymomot/ssrkit/pkg/devreload"
	"github.com/dmitrymomot/ssrkit/pkg/logger"
	"github.com/dmitrymomot/ssrkit/web"
)

type serveFlags struct {
	configPath string
	addr       string
	dev        bool
}

func serveCmd() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Settings come from environment variables (APP_ENV, HTTP_ADDR, LOG_LEVEL, ...)
and an optional YAML file; values in the file win. Flags win over both.

Examples:
  ssrkit serve
  ssrkit serve --dev
  ssrkit serve --config ssrkit.yaml --addr :3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&flags.addr, "addr", "a", "", "Listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&flags.dev, "dev", false, "Development mode: unbuilt client sources and live reload")

	return cmd
}

func loadConfig(flags serveFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return cfg, err
	}
	if flags.addr != "" {
		cfg.Address = flags.addr
	}
	if flags.dev {
		cfg.Env = config.EnvDevelopment
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.FormatJSON,
		Sentry: cfg.Sentry,
	}
	if cfg.Dev() {
		opts.Format = logger.FormatConsole
	}
	return logger.Build(opts, middlewares.RequestIDExtractor())
}

func serve(ctx context.Context, cfg config.Config) error {
	log := newLogger(cfg)

	srv, err := newServer(cfg, log, nil, web.Static)
	if err != nil {
		return err
	}

	runOpts := []ssrkit.RunOption{
		ssrkit.WithContext(ctx),
		ssrkit.Logger(log),
		ssrkit.ShutdownTimeout(cfg.ShutdownTimeout),
		ssrkit.ShutdownHook(func(context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		}),
	}
	if srv.reload != nil {
		runOpts = append(runOpts,
			ssrkit.StartupHook(func(ctx context.Context) error {
				go watchSources(ctx, srv.reload, cfg.SourceDir, log)
				return nil
			}),
			ssrkit.ShutdownHook(func(context.Context) error {
				srv.reload.Close()
				return nil
			}),
		)
	}

	log.Info("starting ssrkit",
		slog.String("version", version),
		slog.String("env", cfg.Env),
		slog.String("address", cfg.Address),
	)
	return srv.app.Run(cfg.Address, runOpts...)
}

// watchSources pushes reload messages to connected browsers until ctx ends.
func watchSources(ctx context.Context, reload *devreload.Server, dir string, log *slog.Logger) {
	err := devreload.Watch(ctx, reload, devreload.WatcherConfig{
		Paths:  []string{dir},
		Logger: log,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("source watcher stopped", slog.String("dir", dir), slog.String("error", err.Error()))
	}
}
