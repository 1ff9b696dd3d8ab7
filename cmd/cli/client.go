package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// envelope mirrors the API response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
	Errors  *struct {
		Fields  []string `json:"fields,omitempty"`
		Message string   `json:"message"`
	} `json:"errors,omitempty"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// apiError is returned for non-2xx responses.
type apiError struct {
	StatusCode int
	Message    string
	Detail     string
	Fields     []string
}

func (e *apiError) Error() string {
	msg := fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	if e.Detail != "" && e.Detail != e.Message {
		msg += ": " + e.Detail
	}
	if len(e.Fields) > 0 {
		msg += " [" + strings.Join(e.Fields, ", ") + "]"
	}
	return msg
}

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client

	// idempotencyKey is sent with mutating requests when set.
	idempotencyKey string
}

func newAPIClient(opts *options) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		token:   opts.token,
		http:    &http.Client{Timeout: opts.timeout},
	}
}

// do sends a request and returns the decoded envelope. Request bodies are
// JSON encoded; query may be nil.
func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.idempotencyKey != "" && method != http.MethodGet {
		req.Header.Set("Idempotency-Key", c.idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &apiError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{StatusCode: resp.StatusCode, Message: env.Message}
		if env.Errors != nil {
			apiErr.Detail = env.Errors.Message
			apiErr.Fields = env.Errors.Fields
		}
		return &env, apiErr
	}

	return &env, nil
}
