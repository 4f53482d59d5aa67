package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/dreamer/internal/bootstrap"
	"github.com/at-ishikawa/dreamer/internal/config"
	"github.com/at-ishikawa/dreamer/internal/database"
	"github.com/at-ishikawa/dreamer/internal/dream"
	"github.com/at-ishikawa/dreamer/internal/meaning"
	"github.com/at-ishikawa/dreamer/internal/metrics"
	"github.com/at-ishikawa/dreamer/internal/server"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "dreamer-server",
		Short:         "Dream meaning HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	app := bootstrap.New().WithShutdownTimeout(cfg.Server.ShutdownTimeout)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error {
		return db.Close()
	})
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("database.Migrate() > %w", err)
	}

	m := metrics.New()
	resolver, err := bootstrap.NewResolver(cfg, meaning.WithRecorder(m))
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("bootstrap.NewResolver() > %w", err)
	}
	app.AddShutdownHook("resolver", func(context.Context) error {
		return resolver.Close()
	})
	slog.Default().Info("resolver is ready",
		"tiers", resolver.Tiers().String(),
		"remote", resolver.RemoteEnabled(),
		"translation", cfg.Translation.Enabled,
	)

	handler := server.NewHandler(resolver, dream.NewDBDreamRepository(db), dream.NewDBMeaningRepository(db))
	router := server.NewRouter(handler, m, cfg.Server.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
