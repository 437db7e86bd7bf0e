package olhovivo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// decodeMode selects how a response body is handed back
type decodeMode int

const (
	decodeStructured decodeMode = iota
	decodeRaw
)

// request describes a single GET against the API. It is never modified once built,
// so a busy retry re-issues exactly the same call.
type request struct {
	path  string
	query url.Values
	mode  decodeMode
}

// url returns the absolute URL, without a query string when there are no params
func (r request) url(endpoint string) string {
	u := endpoint + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

// getJSON executes a structured request and decodes the final body into out
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.execute(ctx, request{path: path, query: query, mode: decodeStructured})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}

	return nil
}

// getRaw executes a request and returns the final body unparsed
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.execute(ctx, request{path: path, query: query, mode: decodeRaw})
}

// execute issues the request, re-issuing it while the API answers with a busy
// Message body, up to maxAttempts times.
func (c *Client) execute(ctx context.Context, r request) ([]byte, error) {
	if !c.authenticated {
		return nil, ErrNotAuthenticated
	}

	requestURL := r.url(c.endpoint)
	var lastMessage string

	for attempt := 1; attempt <= c.opts.maxAttempts; attempt++ {
		if attempt > 1 {
			wait := c.backoff(attempt - 1)
			c.logger.Warn().
				Str("path", r.path).
				Int("attempt", attempt).
				Str("message", lastMessage).
				Dur("wait", wait).
				Msg("Olho Vivo API busy, retrying")

			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			}
		}

		body, err := c.get(ctx, r.path, requestURL, nil)
		if err != nil {
			return nil, err
		}

		message, busy := busyMessage(body)
		if !busy {
			c.logger.Debug().
				Str("path", r.path).
				Int("attempt", attempt).
				Int("bytes", len(body)).
				Msg("Olho Vivo request completed")
			return body, nil
		}
		lastMessage = message
	}

	return nil, &RetryExhaustedError{
		Path:     r.path,
		Attempts: c.opts.maxAttempts,
		Message:  lastMessage,
	}
}

// get performs a single GET and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, path, requestURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.opts.userAgent != "" {
		req.Header.Set("User-Agent", c.opts.userAgent)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: c.endpoint + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: c.endpoint + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       string(bytes.TrimSpace(body)),
		}
	}

	return body, nil
}

// backoff returns the wait before retry n (1-based), doubling from retryDelay
func (c *Client) backoff(n int) time.Duration {
	if n > 10 {
		n = 10
	}
	wait := c.opts.retryDelay << (n - 1)
	if wait > c.opts.retryMaxDelay {
		wait = c.opts.retryMaxDelay
	}
	return wait
}

// busyMessage reports whether body is a JSON object carrying a Message field
func busyMessage(body []byte) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false
	}

	raw, ok := obj["Message"]
	if !ok {
		return "", false
	}

	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		message = string(raw)
	}
	return message, true
}
