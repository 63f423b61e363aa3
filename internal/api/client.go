// Package api binds the CitéFix REST backend. It is a thin typed wrapper:
// one HTTP attempt per call, errors surfaced as *Error, responses coerced
// into domain types at this boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/citefix/citefix-cli/internal/domain"
	"github.com/citefix/citefix-cli/pkg/cache"
	"github.com/citefix/citefix-cli/pkg/config"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
type TokenSource func() string

// Client talks to the CitéFix backend.
type Client struct {
	baseURL  string
	http     *http.Client
	token    TokenSource
	log      zerolog.Logger
	cacheTTL time.Duration

	signalements *cache.Cache[[]domain.Signalement]
	users        *cache.Cache[[]domain.User]
}

// New creates a client for the configured backend. Outgoing requests are
// traced through the otelhttp transport and stamped with an X-Request-Id.
func New(cfg config.Config, token TokenSource, log zerolog.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.API.RequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		token:        token,
		log:          log,
		cacheTTL:     cfg.List.CacheTTL,
		signalements: cache.New[[]domain.Signalement](),
		users:        cache.New[[]domain.User](),
	}
}

// listEnvelope is the {data: [...]} wrapper collection endpoints use.
type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

// docEnvelope is the {data: {...}} wrapper single-document endpoints use.
type docEnvelope[T any] struct {
	Data *T `json:"data"`
}

// do performs one request and decodes the response body into out when the
// status is 2xx. Non-2xx responses become an *Error carrying the backend's
// own message when one was sent. There is no retry: a call either resolves
// or fails, once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doWithToken(ctx, method, path, c.token(), body, out)
}

// doWithToken is do with an explicit bearer token, for the one caller that
// must outlive the token source: the fire-and-forget logout.
func (c *Client) doWithToken(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("message", apiErr.Message).
			Msg("backend error")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
