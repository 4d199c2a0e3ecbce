package main

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quiz/internal/testutil"
	"quiz/pkg/quiz/httpclient"
)

// freeAddr reserves a loopback port for the daemon under test.
func freeAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()
	return addr
}

func healthy(baseURL string) bool {
	resp, err := http.Get(baseURL + "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func TestServeAnswersUntilCancelled(t *testing.T) {
	for _, backendName := range []string{backendMemory, backendDuckDB} {
		t.Run(backendName, func(t *testing.T) {
			testutil.RunWithTimeout(t, 5*time.Second, func() {
				cfg, err := loadConfig("")
				if err != nil {
					t.Fatalf("load config: %v", err)
				}
				cfg.Server.ListenAddr = freeAddr(t)
				cfg.Server.Backend = backendName
				baseURL := "http://" + cfg.Server.ListenAddr

				ctx, cancel := context.WithCancel(context.Background())
				done := make(chan int, 1)
				go func() {
					done <- serve(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
				}()
				testutil.Eventually(t, 3*time.Second, func() bool { return healthy(baseURL) }, "quizd did not become healthy at %s", baseURL)

				client := httpclient.New(baseURL)
				questions, err := client.Questions(testutil.Context(t, time.Second))
				if err != nil || len(questions) != 10 {
					t.Fatalf("questions: %d (%v)", len(questions), err)
				}

				cancel()
				if code := <-done; code != 0 {
					t.Fatalf("expected exit 0, got %d", code)
				}
			})
		})
	}
}

func TestServeFailsOnBadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("version: 2\nquestions: []\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Catalog.Path = path
	if code := serve(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}
