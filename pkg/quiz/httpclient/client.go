package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quiz/pkg/quiz"
)

// Client implements quiz.API against a remote quizd server.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ quiz.API = (*Client)(nil)

// New constructs a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: &http.Client{}}
}

// NewWithTimeout constructs a client for the given base URL with a request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Error is returned for non-2xx responses.
type Error struct {
	Status int
	Code   string
	Detail string
}

func (e *Error) Error() string {
	switch {
	case e.Code == "":
		return fmt.Sprintf("http %d", e.Status)
	case e.Detail == "":
		return fmt.Sprintf("http %d: %s", e.Status, e.Code)
	default:
		return fmt.Sprintf("http %d: %s: %s", e.Status, e.Code, e.Detail)
	}
}

// Questions fetches the catalog.
func (c *Client) Questions(ctx context.Context) ([]quiz.Question, error) {
	var res []quiz.Question
	if err := c.do(ctx, http.MethodGet, "/api/quiz", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Save stores attempt progress.
func (c *Client) Save(ctx context.Context, req quiz.SaveRequest) error {
	var res quiz.SaveResponse
	if err := c.do(ctx, http.MethodPost, "/api/attempt/save", req, &res); err != nil {
		return err
	}
	if res.Status != quiz.StatusSaved {
		return fmt.Errorf("unexpected save status %q", res.Status)
	}
	return nil
}

// Attempt fetches the stored state of an attempt.
func (c *Client) Attempt(ctx context.Context, attemptID string) (quiz.AttemptResponse, error) {
	var res quiz.AttemptResponse
	if err := c.do(ctx, http.MethodGet, "/api/attempt/"+url.PathEscape(attemptID), nil, &res); err != nil {
		return quiz.AttemptResponse{}, err
	}
	return res, nil
}

// Finish finishes an attempt and returns its results.
func (c *Client) Finish(ctx context.Context, attemptID string) (quiz.Results, error) {
	var res quiz.FinishResponse
	if err := c.do(ctx, http.MethodPost, "/api/attempt/finish", quiz.FinishRequest{AttemptID: attemptID}, &res); err != nil {
		return quiz.Results{}, err
	}
	return res.Results, nil
}

// Stats fetches attempt counters from the admin endpoint.
func (c *Client) Stats(ctx context.Context) (quiz.Stats, error) {
	var res quiz.Stats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &res); err != nil {
		return quiz.Stats{}, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeHTTPError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func decodeHTTPError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return &Error{Status: status, Code: resp.Error, Detail: resp.Detail}
	}
	return &Error{Status: status}
}
