// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxResponseSize caps how much of a response body is read, limiting the
// damage a misbehaving or malicious endpoint can do
const MaxResponseSize = 64 * 1024 * 1024

// wireRequest is an envelope shaped by one of the protocol codecs, ready
// for HTTP execution. Built fresh per call, never reused.
type wireRequest struct {
	// path is the URL path relative to the base URL
	path string

	// body is the JSON request body; empty means no body
	body string

	// header carries envelope-specific headers (authentication)
	header http.Header
}

// wireResponse is the raw result of an HTTP exchange before envelope
// decoding
type wireResponse struct {
	status  int
	body    string
	cookies []*http.Cookie
}

// exchange performs one HTTP POST against the orchestrator. It has no
// domain knowledge: envelope shaping happens in the codecs and envelope
// decoding in the dispatcher. Transport-level failures (connection refused,
// TLS failure, deadline expiry) surface as *ClientError; HTTP-level status
// codes are returned in the wireResponse for the codec to interpret.
func (c *Client) exchange(ctx context.Context, opName string, wr wireRequest) (wireResponse, error) {
	url := c.BaseURL + "/" + strings.TrimPrefix(wr.path, "/")

	var reqBody io.Reader
	if wr.body != "" {
		reqBody = strings.NewReader(wr.body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reqBody)
	if err != nil {
		return wireResponse{}, &ClientError{Operation: opName, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "go-vco")
	for key, values := range wr.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	c.logger.Debug(ctx, "HTTP request",
		"operation", opName,
		"url", url,
		"body", c.prepareJSONForLogging(wr.body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "HTTP request failed",
			"operation", opName,
			"url", url,
			"error", err.Error())
		return wireResponse{}, &ClientError{Operation: opName, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Response body close error is not actionable

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return wireResponse{}, &ClientError{Operation: opName, Err: err}
	}
	if len(raw) > MaxResponseSize {
		return wireResponse{}, &ClientError{Operation: opName, Err: fmt.Errorf("response exceeds %d bytes", MaxResponseSize)}
	}

	c.logger.Debug(ctx, "HTTP response",
		"operation", opName,
		"status", resp.StatusCode,
		"body", c.prepareJSONForLogging(string(raw)))

	return wireResponse{
		status:  resp.StatusCode,
		body:    string(raw),
		cookies: resp.Cookies(),
	}, nil
}
