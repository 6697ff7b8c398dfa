// Package repositories provides access to the remote LMS REST API
package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// APIError is a non-2xx response from the remote API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote api returned status %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus returns the status code of the remote response
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// IsStatus reports whether err is an APIError with the given status code
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// errorBody is the error payload shape returned by the remote API
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// NewRestClient creates the shared HTTP client for the remote API.
// baseURL includes the API prefix, e.g. "https://lms.example.com/api".
func NewRestClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}

// APIClient issues requests to the remote API on behalf of one session.
//
// The bearer token is fixed at construction, so every repository built on the
// client authenticates as the same user.
type APIClient struct {
	rest   *resty.Client
	token  string
	logger *zap.Logger
}

// NewAPIClient creates a client that authenticates with token.
// An empty token creates an anonymous client (login and registration).
func NewAPIClient(rest *resty.Client, token string, logger *zap.Logger) *APIClient {
	return &APIClient{
		rest:   rest,
		token:  token,
		logger: logger,
	}
}

// request starts a new request bound to ctx carrying the bearer token
func (c *APIClient) request(ctx context.Context) *resty.Request {
	r := c.rest.R().SetContext(ctx).SetError(&errorBody{})
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	return r
}

// check turns a transport failure or a non-2xx response into an error
func (c *APIClient) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Error("remote api request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if !resp.IsError() && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" && !strings.HasPrefix(resp.Header().Get("Content-Type"), "application/json") {
		apiErr.Message = strings.TrimSpace(resp.String())
	}

	c.logger.Warn("remote api returned error",
		zap.String("op", op),
		zap.Int("status", apiErr.StatusCode),
		zap.String("message", apiErr.Message),
	)
	return fmt.Errorf("failed to %s: %w", op, apiErr)
}
