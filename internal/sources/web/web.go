// Package web fetches datasets over HTTP from a static file origin.
package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"recycling/internal/sources"
)

type Client struct {
	baseURL  string
	names    sources.Locations
	http     *http.Client
	maxBytes int64
}

var _ sources.Source = (*Client)(nil)

// New returns a client fetching baseURL/<name>. A nil hc selects a pooled
// client from NewHTTPClient; a nil names map selects the defaults.
func New(baseURL string, names sources.Locations, hc *http.Client) *Client {
	if hc == nil {
		hc = NewHTTPClient(30 * time.Second)
	}
	if names == nil {
		names = sources.DefaultLocations()
	}
	return &Client{baseURL: baseURL, names: names, http: hc, maxBytes: sources.MaxDatasetBytes}
}

// NewHTTPClient creates a client with connection pooling and the given
// overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport, Timeout: timeout}
}

// Rows downloads the file backing ds. Any non-2xx status is an error.
func (c *Client) Rows(ctx context.Context, ds sources.Dataset) ([][]string, error) {
	name, err := c.names.Lookup(ds)
	if err != nil {
		return nil, err
	}
	u, err := url.JoinPath(c.baseURL, name)
	if err != nil {
		return nil, fmt.Errorf("build url for %s: %w", ds, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ds, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s returned %d", sources.ErrUnexpectedStatus, u, resp.StatusCode)
	}
	body, err := sources.ReadLimited(resp.Body, ds, c.maxBytes)
	if err != nil {
		return nil, err
	}
	return sources.SplitTable(string(body)), nil
}
