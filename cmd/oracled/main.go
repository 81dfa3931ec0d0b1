package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oracledns/oracle/internal/api"
	"github.com/oracledns/oracle/internal/config"
	"github.com/oracledns/oracle/internal/logging"
	"github.com/oracledns/oracle/internal/store"
	"github.com/oracledns/oracle/internal/target"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		configPath = flag.String("config", "", "Path to JSON configuration file (or set ORACLE_CONFIG)")
		host       = flag.String("host", "", "Override API bind host")
		port       = flag.Int("port", 0, "Override API bind port")
		jsonLogs   = flag.Bool("json-logs", false, "Enable JSON structured logging")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	cfg, err := config.Load(config.ResolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.API.Host = *host
	}
	if *port != 0 {
		cfg.API.Port = *port
	}
	if *jsonLogs {
		cfg.Logging.Format = "json"
	}
	if *debug {
		cfg.Logging.Level = "DEBUG"
	}

	logger := logging.Setup(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		IncludePID:  cfg.Logging.IncludePID,
		ExtraFields: cfg.Logging.ExtraFields,
	})
	logger.Info("oracled starting",
		"targets", len(cfg.Targets),
		"api_host", cfg.API.Host,
		"api_port", cfg.API.Port,
		"storage", cfg.Storage.Backend,
	)

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "oracled exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Warn("store close failed", "err", err)
		}
	}()

	registry, err := target.NewRegistry(cfg.Targets, st, logger)
	if err != nil {
		return err
	}

	if err := registry.StartAll(ctx); err != nil {
		return fmt.Errorf("start coordinators: %w", err)
	}
	defer registry.StopAll()

	server := api.New(cfg, registry, logger)
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("management api listening", "addr", server.Addr())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api shutdown failed", "err", err)
	}

	logger.Info("oracled stopped")
	return nil
}
