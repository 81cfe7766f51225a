package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Dr-42/isogit/api"
	"github.com/Dr-42/isogit/core"
	"github.com/Dr-42/isogit/logging"
	"github.com/Dr-42/isogit/telemetry"
	"github.com/gin-gonic/gin"
)

func main() {
	log := logging.New()
	if err := run(os.Args, log); err != nil {
		log.Error("isogit stopped", "error", err)
		os.Exit(1)
	}
}

func run(args []string, log *slog.Logger) error {
	log.Info("service starting")

	// 1. Load configuration (created with defaults on first start)
	configManager := core.NewConfigManager(core.DefaultConfigPath(), log)
	cfg := configManager.Load()

	port, err := portFromArgs(args, cfg.Port, os.Stdout)
	if err != nil {
		return err
	}

	// 2. Observability
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(ctx, os.Getenv("OTEL_ENABLED") == "true")
	if err != nil {
		return fmt.Errorf("telemetry init failed: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// 3. Providers for the configured storage root
	providers, err := core.NewProviderManager(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize providers: %w", err)
	}
	log.Info("storage ready", "storage_path", cfg.StoragePath)

	// 4. Web service
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Dependencies{Providers: providers, Config: configManager, Log: log})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + strconv.Itoa(port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("service ready", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// portFromArgs accepts a single positional port. Any other argument count
// prints usage and keeps the configured port.
func portFromArgs(args []string, fallback int, usage io.Writer) (int, error) {
	if len(args) == 2 {
		return core.ParsePort(args[1])
	}
	prog := "isogit"
	if len(args) > 0 {
		prog = args[0]
	}
	fmt.Fprintf(usage, "Usage: %s <port>\n", prog)
	return fallback, nil
}
