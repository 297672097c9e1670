// Package fetcher downloads and decodes homework review-status API responses.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-200 response from the API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Client fetches review statuses from the API endpoint.
type Client struct {
	client  HTTPClient
	url     string
	token   string
	timeout time.Duration
}

// New creates a Client with the given HTTP client, endpoint, and API token.
func New(client HTTPClient, url, token string) *Client {
	return &Client{
		client:  client,
		url:     url,
		token:   token,
		timeout: 30 * time.Second,
	}
}

// Fetch requests homework statuses updated since fromDate and returns the
// decoded JSON body. The shape of the result is checked by the caller.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}
