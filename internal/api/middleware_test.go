package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz/internal/testutil"
)

func TestCORS_PreflightAllowedOrigin(t *testing.T) {
	testutil.RunWithTimeout(t, 2*time.Second, func() {
		srv := newTestServer(t, "http://localhost:3000")
		ctx := testutil.Context(t, time.Second)
		req, err := http.NewRequestWithContext(ctx, http.MethodOptions, srv.URL+"/api/attempt/save", nil)
		if err != nil {
			t.Fatalf("build request: %v", err)
		}
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do request: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
		if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Fatalf("unexpected allow origin %q", got)
		}
		if got := resp.Header.Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Fatalf("unexpected allow credentials %q", got)
		}
	})
}

func TestCORS_DisallowedOriginGetsNoHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := withCORS([]string{"http://localhost:3000"}, next)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/quiz", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected request to pass through, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin header, got %q", got)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})
	handler := withCORS([]string{"*"}, next)
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/quiz", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example" {
		t.Fatalf("expected origin echo, got %q", got)
	}
}

func TestCORS_DisabledWithoutOrigins(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := withCORS(nil, next)
	req := httptest.NewRequest(http.MethodOptions, "http://example.com/api/quiz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected passthrough without CORS config, got %d", rec.Code)
	}
}

func TestStatusRecorderCapturesStatus(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusAccepted)
	if rec.status != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.status)
	}
}
