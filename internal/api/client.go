// Copyright (c) 2025 Roknuzzaman Rokon <roknuzzamanrokon113@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/apex/log"
)

// Client talks to the HITA backend. It owns the base URL, the bearer token
// and the transport; every call goes through Do and comes back as an
// Envelope. One attempt per call. No retries, no backoff.
type Client struct {
	base      *url.URL
	token     string
	http      *http.Client
	userAgent string
}

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the bearer token explicitly, bypassing the resolution chain.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient injects the transport. Tests use this to point the client at
// an httptest server without touching package state.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a Client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	c := &Client{
		base:      u,
		http:      &http.Client{},
		userAgent: "hitactl",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Do executes a single request and folds the response into an Envelope.
// Ordinary HTTP and validation failures land in the envelope's error branch;
// a non-nil error is returned only for transport-level conditions (dial
// failure, context cancellation, unreadable body).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Envelope, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debugf("%s %s", method, u.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return decodeEnvelope(resp.StatusCode, doc), nil
}

// get is the shorthand used by the query wrappers.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}
