// Package testserver starts in-process quiz API servers for tests.
package testserver

import (
	"net/http/httptest"
	"testing"
	"time"

	"quiz/internal/api"
	"quiz/internal/attempt"
	"quiz/internal/backend"
	"quiz/internal/backend/memory"
	"quiz/internal/catalog"
)

// ServerConfig wires dependencies for Start.
type ServerConfig struct {
	Catalog        *catalog.Catalog
	Backend        backend.Backend
	Now            func() time.Time
	AllowedOrigins []string
}

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	Service *attempt.Service
	Close   func()
}

// Start launches an HTTP server for the quiz API and closes it on test cleanup.
func Start(t testing.TB, cfg ServerConfig) *ServerInstance {
	t.Helper()
	if cfg.Backend == nil {
		cfg.Backend = memory.New(nil)
	}
	svc, err := attempt.NewService(attempt.Config{
		Catalog: cfg.Catalog,
		Backend: cfg.Backend,
		Now:     cfg.Now,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	server := httptest.NewServer(api.NewHandler(api.Config{
		Service:        svc,
		AllowedOrigins: cfg.AllowedOrigins,
	}))
	t.Cleanup(server.Close)
	return &ServerInstance{
		BaseURL: server.URL,
		Service: svc,
		Close:   server.Close,
	}
}
