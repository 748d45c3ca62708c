// Package apiclient talks to the storefront REST API. It implements the
// same collaborator contract as the demo backend, so the CLI and server
// can switch between them with one config value.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"retro-accessories/model"
)

// DefaultBaseURL is where the API server listens during development.
const DefaultBaseURL = "http://localhost:3001"

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New returns a client for baseURL. A zero timeout means no timeout beyond
// the caller's context.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends a JSON request and decodes a JSON response into out (when out is
// non-nil). Transport failures become model.ErrUnreachable; non-2xx
// responses become *Error.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Debug("api unreachable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return model.ErrUnreachable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw, isJSON)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if !isJSON {
		switch p := out.(type) {
		case *string:
			*p = string(raw)
			return nil
		case *any:
			*p = string(raw)
			return nil
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Health calls GET / and returns the decoded body, or the raw text when
// the server does not answer with JSON.
func (c *Client) Health(ctx context.Context) (any, error) {
	var out any
	if err := c.do(ctx, http.MethodGet, "/", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
