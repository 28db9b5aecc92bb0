// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"net/http"
	"time"
)

// Username sets the operator account name for session login. Must be
// paired with Password.
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the operator account password for session login. Must be
// paired with Username.
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// APIToken configures token authentication instead of an operator login.
// The token is sent as "Authorization: Token <token>" on every request and
// never expires from the client's point of view.
func APIToken(token string) func(*Client) {
	return func(c *Client) {
		c.apiToken = token
	}
}

// ServerVersion declares the orchestrator version the client talks to.
// It decides the wire shape compatibility-tagged boolean fields encode as;
// leave it empty to use the integer shape older orchestrators expect.
func ServerVersion(version string) func(*Client) {
	return func(c *Client) {
		c.ServerVersion = version
	}
}

// Insecure disables TLS certificate verification. Use only with lab
// orchestrators carrying self-signed certificates.
func Insecure(insecure bool) func(*Client) {
	return func(c *Client) {
		c.Insecure = insecure
	}
}

// RequestTimeout sets the fallback per-operation timeout applied when
// neither the caller's context nor a per-request modifier carries one.
func RequestTimeout(x time.Duration) func(*Client) {
	return func(c *Client) {
		c.RequestTimeout = x
	}
}

// BackoffMinDelay configures the initial delay of the Backoff helper
func BackoffMinDelay(x time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMinDelay = x
	}
}

// BackoffMaxDelay configures the delay cap of the Backoff helper
func BackoffMaxDelay(x time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMaxDelay = x
	}
}

// BackoffDelayFactor configures the exponential growth factor of the
// Backoff helper
func BackoffDelayFactor(x float64) func(*Client) {
	return func(c *Client) {
		c.BackoffDelayFactor = x
	}
}

// WithLogger sets a custom logger for the client
//
// Example with zerolog:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, err := vco.NewClient(url,
//	    vco.APIToken(token),
//	    vco.WithLogger(vco.NewZerologLogger(zl)),
//	)
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables or disables pretty-printing of JSON bodies
// in debug logs (default: enabled)
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}

// WithHTTPClient replaces the underlying HTTP client. When set, the
// Insecure option has no effect; configure TLS on the supplied client.
func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}
