package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"quiz/pkg/quiz"
)

// HTTPQuestions sends a GET /api/quiz request.
func HTTPQuestions(t testing.TB, baseURL string) []quiz.Question {
	t.Helper()
	var resp []quiz.Question
	body := doRequest(t, http.MethodGet, baseURL+"/api/quiz", nil)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode questions response: %v", err)
	}
	return resp
}

// HTTPSave sends a POST /api/attempt/save request.
func HTTPSave(t testing.TB, baseURL string, req quiz.SaveRequest) quiz.SaveResponse {
	t.Helper()
	var resp quiz.SaveResponse
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal save request: %v", err)
	}
	body := doRequest(t, http.MethodPost, baseURL+"/api/attempt/save", data)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode save response: %v", err)
	}
	return resp
}

// HTTPAttempt sends a GET /api/attempt/{attemptId} request.
func HTTPAttempt(t testing.TB, baseURL, attemptID string) quiz.AttemptResponse {
	t.Helper()
	var resp quiz.AttemptResponse
	body := doRequest(t, http.MethodGet, baseURL+"/api/attempt/"+url.PathEscape(attemptID), nil)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode attempt response: %v", err)
	}
	return resp
}

// HTTPFinish sends a POST /api/attempt/finish request.
func HTTPFinish(t testing.TB, baseURL, attemptID string) quiz.FinishResponse {
	t.Helper()
	var resp quiz.FinishResponse
	data, err := json.Marshal(quiz.FinishRequest{AttemptID: attemptID})
	if err != nil {
		t.Fatalf("marshal finish request: %v", err)
	}
	body := doRequest(t, http.MethodPost, baseURL+"/api/attempt/finish", data)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode finish response: %v", err)
	}
	return resp
}

// HTTPDo executes a raw request and returns the response with its body, whatever the status.
func HTTPDo(t testing.TB, method, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, body
}

// doRequest executes an HTTP request with a JSON payload and returns the body.
func doRequest(t testing.TB, method, url string, payload []byte) []byte {
	t.Helper()
	resp, body := HTTPDo(t, method, url, payload)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.Fatalf("unexpected status %d for %s %s: %s", resp.StatusCode, method, url, string(body))
	}
	return body
}
