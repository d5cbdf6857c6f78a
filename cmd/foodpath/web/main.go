package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodpath"
	"foodpath/auth"
	"foodpath/catalog"
	"foodpath/grocery"
	"foodpath/server"
	"foodpath/store"
)

type config struct {
	Server  foodpath.ServerConfig
	Store   foodpath.StoreConfig
	Backend foodpath.BackendConfig
	Pricing foodpath.PricingConfig
	Catalog foodpath.CatalogConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	foodpath.LoadEnv()

	var cfg config
	for _, c := range []any{&cfg.Server, &cfg.Store, &cfg.Backend, &cfg.Pricing, &cfg.Catalog} {
		if err := foodpath.Decode(c); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
	}

	state, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Error("SETUP: Failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	slog.Info("SETUP: Store initialized", "driver", cfg.Store.Driver)

	products, recipes, err := catalog.Open(ctx, state, cfg.Catalog)
	if err != nil {
		slog.Error("SETUP: Failed to load catalogs", "error", err)
		os.Exit(1)
	}
	slog.Info("SETUP: Catalogs loaded",
		"products_count", len(products.All()),
		"recipes_count", len(recipes.All()))

	telemetry, err := foodpath.InitTelemetry(ctx, cfg.Server.Telemetry, foodpath.TracerNameServer)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	activity, cleanup, err := newActivityLogger(cfg.Server.ActivityLog)
	if err != nil {
		slog.Error("SETUP: Failed to create activity logger", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	engine, err := server.New(server.Deps{
		Products:    products,
		Recipes:     recipes,
		State:       state,
		Pricing:     grocery.NewPricing(cfg.Pricing),
		Auth:        auth.NewClient(cfg.Backend, nil),
		Activity:    activity,
		Telemetry:   telemetry,
		CORSOrigins: cfg.Server.Origins(),
	})
	if err != nil {
		slog.Error("SETUP: Failed to create server", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("SERVER: Listening", "addr", cfg.Server.Addr, "backend", cfg.Backend.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("SERVER: Failed to serve", "error", err)
		}
	case <-ctx.Done():
		slog.Info("SERVER: Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("SERVER: Failed to shut down cleanly", "error", err)
		}
	}
}

// newActivityLogger picks the activity sink: stdout, none, or file.
func newActivityLogger(kind string) (foodpath.ActivityLogger, func(), error) {
	switch kind {
	case "", "stdout":
		return foodpath.NewStdoutActivityLogger(), func() {}, nil
	case "none":
		return foodpath.NewNoOpActivityLogger(), func() {}, nil
	case "file":
		if err := os.MkdirAll("logs", 0o755); err != nil {
			return nil, nil, err
		}
		path := foodpath.NewActivityLogFilePath("web")
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		logger := foodpath.NewFileActivityLogger(f)
		return logger, func() { flushAndClose(logger, f, path) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown activity log %q", kind)
	}
}

func flushAndClose(logger *foodpath.FileActivityLogger, f io.Closer, path string) {
	if err := logger.Flush(); err != nil {
		slog.Error("SETUP: Failed to flush activity log", "error", err)
	}
	if err := f.Close(); err != nil {
		slog.Error("SETUP: Failed to close activity log", "error", err)
		return
	}
	slog.Info("SETUP: Activity log written", "path", path)
}
