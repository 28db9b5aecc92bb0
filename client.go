// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Default client configuration values
const (
	DefaultRequestTimeout     = 30 * time.Second
	DefaultBackoffMinDelay    = 1 * time.Second
	DefaultBackoffMaxDelay    = 60 * time.Second
	DefaultBackoffDelayFactor = 2
	DefaultPrettyPrintLogs    = true
)

// Security limits for JSON processing and logging
const (
	MaxJSONSizeForLogging = 1 * 1024 * 1024 // 1MB limit to prevent ReDoS attacks
	MaxSensitiveFields    = 1000            // Max redaction operations to prevent DoS
)

// Logging message constants
const (
	JSONTooLargeMessage     = "[JSON TOO LARGE FOR LOGGING]"
	JSONTooManySensitiveMsg = "[JSON CONTAINS TOO MANY SENSITIVE FIELDS]"
)

// defaultRedactionPatterns contains regex patterns for redacting sensitive data in logs
var defaultRedactionPatterns = []*regexp.Regexp{
	// JSON field patterns
	regexp.MustCompile(`"password"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"token"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"apiKey"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"secret"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"activationKey"\s*:\s*"[^"]*"`),
	regexp.MustCompile(`"auth"\s*:\s*"[^"]*"`),
}

// Client represents a connection to an orchestrator. One Client owns one
// authenticated session and may be shared across any number of goroutines.
type Client struct {
	// httpClient executes the raw HTTPS exchanges
	httpClient *http.Client

	// BaseURL is the orchestrator base URL, e.g. https://vco12.example.com
	BaseURL string

	// ServerVersion is the orchestrator version the client is configured
	// for; it decides the wire shape compatibility-tagged fields encode as
	ServerVersion string

	// encodeShape is derived from ServerVersion at construction
	encodeShape Shape

	// Credentials, immutable for the session's lifetime
	username string // unexported for security
	password string // unexported for security
	apiToken string // unexported for security

	// Insecure disables TLS certificate verification
	Insecure bool

	// RequestTimeout is the per-call fallback timeout
	RequestTimeout time.Duration

	// Backoff configuration for the exported caller-driven Backoff helper
	BackoffMinDelay    time.Duration
	BackoffMaxDelay    time.Duration
	BackoffDelayFactor float64

	// Session state. The session value is replaced wholesale under
	// sessionMu, never mutated in place, so a reader can never observe a
	// half-updated token/expiry pair. flight is the in-progress refresh, if
	// any; see session.go.
	sessionMu sync.Mutex
	session   *Session
	flight    *refreshFlight

	// Logging configuration
	logger            Logger
	prettyPrintLogs   bool
	redactionPatterns []*regexp.Regexp
}

// NewClient creates a new orchestrator client with the specified base URL
// and options.
//
// The client does NOT log in immediately. The session is established
// automatically on the first operation (lazy login) and renewed
// transparently when it expires. Use Login() to verify credentials
// explicitly if needed.
//
// Example:
//
//	client, err := vco.NewClient(
//	    "https://vco12.example.com",
//	    vco.Username("operator"),
//	    vco.Password("secret"),
//	    vco.ServerVersion("4.2.1"),
//	)
//	if err != nil {
//	    log.Fatal(err)  // Configuration error
//	}
//
//	// Optional: verify credentials explicitly
//	if err := client.Login(ctx); err != nil {
//	    log.Fatal(err)  // Authentication error
//	}
//
// Returns a configured Client or an error if configuration validation fails.
func NewClient(baseURL string, opts ...func(*Client)) (*Client, error) {
	client := &Client{
		BaseURL:            strings.TrimRight(baseURL, "/"),
		RequestTimeout:     DefaultRequestTimeout,
		BackoffMinDelay:    DefaultBackoffMinDelay,
		BackoffMaxDelay:    DefaultBackoffMaxDelay,
		BackoffDelayFactor: DefaultBackoffDelayFactor,
		logger:             &NoOpLogger{},
		prettyPrintLogs:    DefaultPrettyPrintLogs,
		redactionPatterns:  defaultRedactionPatterns,
	}

	// Apply functional options
	for _, opt := range opts {
		opt(client)
	}

	if err := client.validateConfig(); err != nil {
		return nil, err
	}

	client.encodeShape = shapeForVersion(client.ServerVersion)

	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: client.Insecure, //nolint:gosec // Explicit opt-in for lab orchestrators
				},
			},
		}
	}

	client.logger.Info(context.Background(), "orchestrator client created",
		"url", client.BaseURL,
		"serverVersion", client.ServerVersion,
		"encodeShape", client.encodeShape.String(),
		"session", "lazy")

	return client, nil
}

// EncodeShape returns the wire shape compatibility-tagged boolean fields
// encode as, derived from the configured ServerVersion
func (c *Client) EncodeShape() Shape {
	return c.encodeShape
}

// Marshal encodes a domain object for this client's target server version:
// every TinyBool is emitted in the version-appropriate shape and captured
// unknown fields are re-merged verbatim. v must be a pointer.
//
// Example:
//
//	edge, _ := client.GetEdge(ctx, 1, 42)
//	edge.AlertsEnabled.Value = false
//	body, err := client.Marshal(&edge)
func (c *Client) Marshal(v any) ([]byte, error) {
	return Marshal(v, c.encodeShape)
}

// HasCredentials returns true if credentials are configured, without
// exposing the actual values
func (c *Client) HasCredentials() bool {
	return (c.username != "" && c.password != "") || c.apiToken != ""
}

// Backoff calculates the backoff delay for a retry attempt using
// exponential backoff with jitter.
//
// The library never retries non-authentication failures on its own; this
// helper is exported for caller-driven retry loops over idempotent
// operations:
//
//	for attempt := 0; ; attempt++ {
//	    res, err := client.Do(ctx, op)
//	    if err == nil || !vco.IsTimeout(err) || attempt == maxRetries {
//	        return res, err
//	    }
//	    time.Sleep(client.Backoff(attempt))
//	}
//
// The formula is: delay = min(minDelay * (factor ^ attempt) + jitter, maxDelay)
// where jitter is a cryptographically secure random value in [0, delay * 0.1].
// If crypto/rand fails, falls back to timestamp-based jitter to prevent
// thundering herd.
func (c *Client) Backoff(attempt int) time.Duration {
	delay := float64(c.BackoffMinDelay) * math.Pow(c.BackoffDelayFactor, float64(attempt))

	// Check for overflow and cap at max delay
	if math.IsInf(delay, 1) || delay > float64(c.BackoffMaxDelay) {
		delay = float64(c.BackoffMaxDelay)
	}

	// Add jitter (0-10% of delay) to prevent thundering herd
	jitterMax := int64(delay * 0.1)
	if jitterMax > 0 {
		var jitterBytes [8]byte
		if _, err := rand.Read(jitterBytes[:]); err == nil {
			//nolint:gosec // G115: explicitly masked to prevent overflow
			jitterVal := int64(binary.BigEndian.Uint64(jitterBytes[:]) & 0x7FFFFFFFFFFFFFFF)
			delay += float64(jitterVal % jitterMax)
		} else {
			// Not cryptographically secure but sufficient for retry dispersal
			timestamp := time.Now().UnixNano()
			delay += float64((timestamp%jitterMax + jitterMax) % jitterMax)
		}
	}

	return time.Duration(delay)
}

// prepareJSONForLogging redacts sensitive data and formats JSON for logging
//
// This method performs security checks and data sanitization:
//  1. Validates JSON size to prevent ReDoS attacks (max 1MB)
//  2. Checks sensitive field count to prevent DoS (max 1000 fields)
//  3. Redacts sensitive data (passwords, tokens, API keys, activation keys)
//  4. Pretty-prints JSON if prettyPrintLogs is enabled
//
// Returns the processed JSON string safe for logging.
func (c *Client) prepareJSONForLogging(jsonStr string) string {
	if jsonStr == "" {
		return ""
	}

	// Check JSON size limit to prevent ReDoS attacks
	if len(jsonStr) > MaxJSONSizeForLogging {
		return JSONTooLargeMessage
	}

	// Count sensitive fields before processing to prevent DoS
	sensitiveCount := strings.Count(jsonStr, `"password"`) +
		strings.Count(jsonStr, `"token"`) +
		strings.Count(jsonStr, `"apiKey"`) +
		strings.Count(jsonStr, `"secret"`) +
		strings.Count(jsonStr, `"activationKey"`) +
		strings.Count(jsonStr, `"auth"`)

	if sensitiveCount > MaxSensitiveFields {
		return JSONTooManySensitiveMsg
	}

	redacted := c.redactSensitiveData(jsonStr)

	if c.prettyPrintLogs {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(redacted), "", "  "); err == nil {
			return buf.String()
		}
		// Fallback: if indent fails (e.g. invalid JSON), return redacted as-is
	}

	return redacted
}

// redactSensitiveData replaces sensitive data in JSON with [REDACTED]
//
// Redacts "password", "token", "apiKey", "secret", "activationKey" and
// "auth" string fields, with flexible whitespace around colons.
func (c *Client) redactSensitiveData(json string) string {
	replacements := []string{
		`"password":"[REDACTED]"`,
		`"token":"[REDACTED]"`,
		`"apiKey":"[REDACTED]"`,
		`"secret":"[REDACTED]"`,
		`"activationKey":"[REDACTED]"`,
		`"auth":"[REDACTED]"`,
	}

	result := json
	for i, pattern := range c.redactionPatterns {
		if i < len(replacements) {
			result = pattern.ReplaceAllString(result, replacements[i])
		}
	}

	return result
}

// validateConfig validates client configuration before first use
//
// Validates:
//   - Base URL is a parseable http(s) URL with a host
//   - Exactly one credential kind is configured (username/password or API token)
//   - Positive timeout
//   - Backoff parameters (min > 0, max > min, factor >= 1.0)
//
// Returns an error if validation fails.
func (c *Client) validateConfig() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("base URL scheme must be http or https, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	hasPassword := c.username != "" || c.password != ""
	hasToken := c.apiToken != ""
	switch {
	case hasPassword && hasToken:
		return fmt.Errorf("configure either Username/Password or APIToken, not both")
	case hasPassword && (c.username == "" || c.password == ""):
		return fmt.Errorf("both Username and Password are required for operator login")
	case !hasPassword && !hasToken:
		return fmt.Errorf("credentials required: configure Username/Password or APIToken")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got: %v", c.RequestTimeout)
	}
	if c.BackoffMinDelay <= 0 {
		return fmt.Errorf("backoff min delay must be positive, got: %v", c.BackoffMinDelay)
	}
	if c.BackoffMaxDelay <= c.BackoffMinDelay {
		return fmt.Errorf("backoff max delay (%v) must be greater than min delay (%v)",
			c.BackoffMaxDelay, c.BackoffMinDelay)
	}
	if c.BackoffDelayFactor < 1.0 {
		return fmt.Errorf("backoff delay factor must be >= 1.0, got: %f", c.BackoffDelayFactor)
	}

	if parsed.Scheme == "http" {
		c.logger.Warn(context.Background(), "base URL is not HTTPS - credentials transmitted in clear text",
			"url", c.BaseURL,
			"recommendation", "use https for production orchestrators")
	}
	if c.Insecure {
		c.logger.Warn(context.Background(), "TLS certificate verification disabled",
			"url", c.BaseURL,
			"recommendation", "use only with lab orchestrators")
	}

	return nil
}
