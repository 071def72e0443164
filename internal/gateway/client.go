// internal/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"github.com/your-org/pharmacy-storefront/internal/config"
)

// APIError is a backend response with a non-2xx status. Message carries
// the server-provided error text when the body had one, so business
// rejections ("Hết hàng", ...) surface verbatim to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether the error is a backend 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client is the HTTP client for the remote wholesale backend. Every
// call converts transport and HTTP failures into error values; nothing
// panics across this boundary. A circuit breaker short-circuits calls
// while the backend is failing hard, counting only transport errors and
// 5xx responses as failures.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *logrus.Logger
}

// NewClient creates a backend API client from config
func NewClient(cfg config.BackendConfig, logger *logrus.Logger) *Client {
	settings := gobreaker.Settings{
		Name:        "backend-api",
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMinFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			apiErr, ok := err.(*APIError)
			return ok && apiErr.StatusCode < http.StatusInternalServerError
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("backend circuit breaker state changed")
		},
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

// do performs one backend request and decodes the JSON response into
// out (when out is non-nil). token is the caller's bearer token, empty
// for public endpoints.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	respBody, err := c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("backend request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read backend response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    errorMessage(resp.StatusCode, resp.Status, data),
			}
		}
		return data, nil
	})
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Debug("backend call failed")
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

// errorMessage extracts the server-provided message from an error body.
// The backend emits {"message": "..."} (sometimes an array of
// validation messages); anything else falls back to the HTTP status.
func errorMessage(statusCode int, status string, body []byte) string {
	var envelope struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		var single string
		if json.Unmarshal(envelope.Message, &single) == nil && single != "" {
			return single
		}
		var many []string
		if json.Unmarshal(envelope.Message, &many) == nil && len(many) > 0 {
			return strings.Join(many, "; ")
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return fmt.Sprintf("HTTP %d: %s", statusCode, strings.TrimSpace(strings.TrimPrefix(status, fmt.Sprint(statusCode))))
}
