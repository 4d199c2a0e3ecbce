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

	"quiz/internal/api"
	"quiz/internal/attempt"
	"quiz/internal/backend"
	"quiz/internal/backend/duckdb"
	"quiz/internal/backend/memory"
	"quiz/internal/catalog"
)

// main launches quizd.
func main() {
	os.Exit(run())
}

// run executes quizd and returns an exit code.
func run() int {
	configPath := flag.String("config", "", "path to quizd config (defaults apply when empty)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	logger := newLogger(cfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg, logger)
}

// serve runs the API until ctx is cancelled or the listener fails.
func serve(ctx context.Context, cfg config, logger *slog.Logger) int {
	var err error
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			logger.Error("catalog load failed", slog.String("path", cfg.Catalog.Path), slog.Any("error", err))
			return 1
		}
	}

	store, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error("backend open failed", slog.String("backend", cfg.Server.Backend), slog.Any("error", err))
		return 1
	}
	defer closeBackend()

	svc, err := attempt.NewService(attempt.Config{
		Catalog: cat,
		Backend: store,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("service setup failed", slog.Any("error", err))
		return 1
	}

	handler := api.NewHandler(api.Config{
		Service:        svc,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	mux.Handle("/", handler)

	server := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("quizd listening",
		slog.String("addr", cfg.Server.ListenAddr),
		slog.String("backend", cfg.Server.Backend),
		slog.Int("questions", cat.Len()))

	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", slog.Any("error", err))
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", slog.Any("error", err))
	}
	return exitCode
}

// openBackend builds the configured attempt store and its close hook.
func openBackend(ctx context.Context, cfg config) (backend.Backend, func(), error) {
	switch cfg.Server.Backend {
	case backendDuckDB:
		db, err := duckdb.Open(ctx, cfg.DuckDB.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	default:
		return memory.New(nil), func() {}, nil
	}
}
