// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// AuthReason classifies authentication failures
type AuthReason string

const (
	// ReasonInvalidCredentials means the orchestrator rejected the login.
	// Fatal: retrying with the same credentials cannot succeed.
	ReasonInvalidCredentials AuthReason = "invalid credentials"

	// ReasonUnreachable means the login exchange failed at the network
	// level. The caller may retry; the library never does automatically.
	ReasonUnreachable AuthReason = "orchestrator unreachable"
)

// AuthError represents a failed login or refresh exchange
type AuthError struct {
	// Reason classifies the failure
	Reason AuthReason

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vco: authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("vco: authentication failed: %s", e.Reason)
}

// Unwrap returns the underlying cause
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ProtocolKind classifies envelope-level failures
type ProtocolKind string

const (
	// KindIDMismatch means a JSONRPC response id did not correlate to the
	// request id. Fatal: the request and response streams are desynchronized.
	KindIDMismatch ProtocolKind = "id mismatch"

	// KindMalformed means the response body matched no known envelope shape
	KindMalformed ProtocolKind = "malformed envelope"
)

// ProtocolError represents a response that could not be decoded as a valid
// REST or JSONRPC envelope. Protocol errors are fatal and never retried.
type ProtocolError struct {
	// Kind classifies the failure
	Kind ProtocolKind

	// Operation is the logical operation name
	Operation string

	// Message is a human-readable description
	Message string
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("vco: %s: protocol error (%s): %s", e.Operation, e.Kind, e.Message)
}

// APIError represents the orchestrator's own domain-level rejection of a
// call (validation failure, not-found, conflict, expired session token).
// The code and message are surfaced verbatim and never retried
// automatically, except for the dispatcher's single authentication retry
// when the code indicates an expired or invalid token.
type APIError struct {
	// Code is the orchestrator error code (e.g. -32000 for token errors)
	Code int

	// Message is the orchestrator error message
	Message string

	// HTTPStatus is the HTTP status the error arrived with, 0 if the
	// envelope was a 200 with an error body
	HTTPStatus int

	// Raw is the raw error object for callers that need vendor detail
	Raw string
}

// Orchestrator error codes observed on the wire. The token codes mark a
// response as an authentication failure for the dispatcher's retry policy.
const (
	CodeTokenError     = -32000
	CodeTokenExpired   = -32001
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
)

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("vco: api error %d: %s", e.Code, e.Message)
}

// SchemaError represents a compatibility-tagged field that arrived in a
// shape the adapter cannot normalize. It is surfaced rather than coerced so
// unknown future wire formats are never silently corrupted.
type SchemaError struct {
	// Field names the offending type or field
	Field string

	// Shape is the raw wire fragment that could not be normalized
	Shape string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("vco: unrecognized wire shape for %s: %s", e.Field, e.Shape)
}

// ClientError represents a transport-level failure: connection refused, TLS
// failure, or a deadline expiring while the request was in flight. These
// are distinguishable from HTTP-level and API-level failures, which surface
// as *APIError or *ProtocolError.
type ClientError struct {
	// Operation is the logical operation name
	Operation string

	// Err is the underlying transport error
	Err error
}

// Error implements the error interface
func (e *ClientError) Error() string {
	return fmt.Sprintf("vco: %s: request failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying transport error
func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether an error was caused by an expired deadline,
// either from the call context or the client's request timeout. Timed-out
// idempotent operations may be retried by the caller.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isAuthFailure reports whether an error indicates an expired or invalid
// session token. Only these errors qualify for the dispatcher's single
// automatic retry; everything else surfaces immediately.
func isAuthFailure(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == CodeTokenError || apiErr.Code == CodeTokenExpired {
		return true
	}
	return apiErr.HTTPStatus == 401 || apiErr.HTTPStatus == 403
}
