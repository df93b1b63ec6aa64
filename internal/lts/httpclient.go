// Package lts provides the HTTP client used to query release feeds.
package lts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent identifies requests made by ltscheck
const DefaultUserAgent = "ltscheck/1.0 (+https://github.com/obentoo/ltscheck)"

// ClientConfig holds configuration for the feed client.
type ClientConfig struct {
	// UserAgent is sent with every request (default: DefaultUserAgent)
	UserAgent string
	// Timeout bounds each request; zero leaves the transport defaults in charge
	Timeout time.Duration
}

// FeedClient wraps an HTTP client and applies default headers to every request.
// Failed requests are not retried.
type FeedClient struct {
	client *http.Client
	// defaultHeaders are headers applied to all requests
	defaultHeaders map[string]string
}

// NewFeedClient creates a client with the given configuration.
func NewFeedClient(config ClientConfig) *FeedClient {
	ua := config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &FeedClient{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		defaultHeaders: map[string]string{
			"User-Agent": ua,
			"Accept":     "application/json",
		},
	}
}

// SetHTTPClient sets a custom underlying HTTP client (useful for testing).
func (c *FeedClient) SetHTTPClient(client *http.Client) {
	c.client = client
}

// DefaultHeaders returns the headers applied to every request.
func (c *FeedClient) DefaultHeaders() map[string]string {
	return c.defaultHeaders
}

// Fetch performs a GET request and returns the response body.
// Transport failures and non-2xx statuses are reported as *FetchError.
func (c *FeedClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}
