package httpclient

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"quiz/internal/testutil"
	"quiz/internal/testutil/testserver"
	"quiz/pkg/quiz"
)

// TestNewWithTimeoutSetsTimeout ensures the HTTP client timeout is applied.
func TestNewWithTimeoutSetsTimeout(t *testing.T) {
	timeout := 1500 * time.Millisecond
	client := NewWithTimeout("http://example/", timeout)
	if client.client.Timeout != timeout {
		t.Fatalf("expected timeout %s, got %s", timeout, client.client.Timeout)
	}
	if client.baseURL != "http://example" {
		t.Fatalf("expected trailing slash to be trimmed, got %q", client.baseURL)
	}
}

func TestClientRoundTrip(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		server := testserver.Start(t, testserver.ServerConfig{})
		client := New(server.BaseURL)
		ctx := testutil.Context(t, 2*time.Second)

		questions, err := client.Questions(ctx)
		if err != nil {
			t.Fatalf("questions: %v", err)
		}
		if len(questions) != 10 {
			t.Fatalf("expected 10 questions, got %d", len(questions))
		}

		answers := []quiz.Answer{{QuestionID: 1, SelectedIndex: 3}}
		if err := client.Save(ctx, quiz.SaveRequest{AttemptID: "attempt-1", Answers: answers, RemainingSec: 50}); err != nil {
			t.Fatalf("save: %v", err)
		}
		state, err := client.Attempt(ctx, "attempt-1")
		if err != nil {
			t.Fatalf("attempt: %v", err)
		}
		if !reflect.DeepEqual(state.Answers, answers) || state.RemainingSec != 50 || state.IsFinished {
			t.Fatalf("unexpected state: %+v", state)
		}

		results, err := client.Finish(ctx, "attempt-1")
		if err != nil {
			t.Fatalf("finish: %v", err)
		}
		if results.CorrectCount != 1 || results.UnansweredCount != 9 || results.CorrectPercentage != 10 {
			t.Fatalf("unexpected results: %+v", results)
		}

		stats, err := client.Stats(ctx)
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		if stats != (quiz.Stats{Attempts: 1, Finished: 1}) {
			t.Fatalf("unexpected stats: %+v", stats)
		}
	})
}

func TestClientFinishMissingAttemptID(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		server := testserver.Start(t, testserver.ServerConfig{})
		client := New(server.BaseURL)
		_, err := client.Finish(testutil.Context(t, 2*time.Second), "")
		var httpErr *Error
		if !errors.As(err, &httpErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if httpErr.Status != http.StatusBadRequest || httpErr.Code != "attempt_id_required" {
			t.Fatalf("unexpected error: %+v", httpErr)
		}
		if httpErr.Error() != "http 400: attempt_id_required: attemptId is required" {
			t.Fatalf("unexpected message %q", httpErr.Error())
		}
	})
}

func TestClientNonJSONError(t *testing.T) {
	testutil.RunWithTimeout(t, 3*time.Second, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()
		_, err := New(srv.URL).Questions(testutil.Context(t, 2*time.Second))
		var httpErr *Error
		if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadGateway || httpErr.Code != "" {
			t.Fatalf("expected bare status error, got %v", err)
		}
		if httpErr.Error() != "http 502" {
			t.Fatalf("unexpected message %q", httpErr.Error())
		}
	})
}
