// Package apiclient is a typed client for the FitnessGym REST API. Every
// call decodes the {success, message, data, count} envelope and turns an
// unsuccessful answer into an *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

const defaultBaseURL = "http://localhost:5000/api"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

type Config struct {
	// BaseURL is the API root including the /api prefix. Defaults to
	// http://localhost:5000/api.
	BaseURL string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// APIError is a response the server answered with success=false or a
// non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("apiclient: HTTP %d", e.Status)
	}
	return fmt.Sprintf("apiclient: HTTP %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsTransport reports whether err happened before any response was read:
// connection refused, DNS failure, a cancelled context and the like.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// TransportError wraps a failure to get any response from the server.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "apiclient: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

// do sends body as JSON (nil for none) and decodes the envelope's data
// into out (nil to discard). It returns the envelope message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return "", errors.Wrapf(err, "apiclient: encode %s %s", method, path)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", errors.Wrapf(err, "apiclient: build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return "", &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", errors.Wrapf(err, "apiclient: decode %s %s", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		c.logger.Debug("api call failed", "method", method, "path", path, "status", resp.StatusCode, "message", env.Message)
		return env.Message, &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, errors.Wrapf(err, "apiclient: decode data of %s %s", method, path)
		}
	}
	return env.Message, nil
}
