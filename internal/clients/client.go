// Package clients holds the HTTP clients for the downstream flight,
// hotel, car, and user/billing services. Every service wraps its
// payloads in the same {success, message, data} envelope; errors keep
// the service's own message so it can be shown to the user.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// envelope is the response wrapper shared by all downstream services
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// httpError carries the status code and the service's message so the
// typed clients can decide which error to surface
type httpError struct {
	StatusCode int
	Message    string
	Data       json.RawMessage
}

func (e *httpError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("service returned status %d", e.StatusCode)
}

type baseClient struct {
	baseURL string
	client  *http.Client
	logger  *logrus.Logger
}

func newBaseClient(baseURL string, timeout time.Duration, logger *logrus.Logger) baseClient {
	return baseClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do runs one JSON round-trip. A 2xx with success=true unmarshals
// data into out (when out is non-nil); anything else is an *httpError
// with the envelope's message.
func (c *baseClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &env); err != nil {
			c.logger.WithFields(logrus.Fields{
				"path":        path,
				"status_code": resp.StatusCode,
				"body":        string(respBody),
			}).Error("Failed to parse service response")
			return fmt.Errorf("failed to parse response from %s: %w", path, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return &httpError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Data:       env.Data,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to parse response data from %s: %w", path, err)
		}
	}
	return nil
}

// conflictStatus reports whether a downstream status means the
// requested inventory is no longer available
func conflictStatus(code int) bool {
	return code == http.StatusBadRequest || code == http.StatusConflict
}
