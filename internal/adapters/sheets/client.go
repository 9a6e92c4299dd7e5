// Package sheets fetches published Google Sheets as CSV text.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps how much of a sheet export is read.
const MaxBodyBytes = 5 << 20

// DefaultTimeout bounds a single fetch when the caller does not configure one.
const DefaultTimeout = 15 * time.Second

// ErrFetchFailed is returned for network errors, non-2xx responses and oversized bodies.
var ErrFetchFailed = errors.New("sheet fetch failed")

// Client downloads CSV exports.
type Client struct {
	client *http.Client
}

// NewClient returns a Client whose requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{client: &http.Client{Timeout: timeout}}
}

// FetchCSV GETs url and returns the response body.
// PRE: url has already been normalized to a CSV export link
// POST: any failure wraps ErrFetchFailed; no partial body is returned
func (c *Client) FetchCSV(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "text/csv")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetchFailed, err)
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrFetchFailed, MaxBodyBytes)
	}
	return body, nil
}
