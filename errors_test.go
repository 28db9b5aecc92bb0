// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestErrorMessages tests the error string formats
func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "auth error with cause",
			err:  &AuthError{Reason: ReasonInvalidCredentials, Err: errors.New("401")},
			want: "authentication failed: invalid credentials: 401",
		},
		{
			name: "auth error without cause",
			err:  &AuthError{Reason: ReasonUnreachable},
			want: "authentication failed: orchestrator unreachable",
		},
		{
			name: "protocol error",
			err:  &ProtocolError{Kind: KindIDMismatch, Operation: "query", Message: "ids differ"},
			want: "query: protocol error (id mismatch)",
		},
		{
			name: "api error",
			err:  &APIError{Code: -32602, Message: "invalid params"},
			want: "api error -32602: invalid params",
		},
		{
			name: "schema error",
			err:  &SchemaError{Field: "TinyBool", Shape: `"yes"`},
			want: "unrecognized wire shape for TinyBool",
		},
		{
			name: "client error",
			err:  &ClientError{Operation: "getEdge", Err: errors.New("connection refused")},
			want: "getEdge: request failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(tt.err.Error(), tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.want)
			}
		})
	}
}

// TestErrorUnwrapping tests errors.As/Is through wrapping
func TestErrorUnwrapping(t *testing.T) {
	cause := &APIError{Code: CodeTokenExpired, Message: "tokenExpired"}
	wrapped := fmt.Errorf("operation failed: %w", &AuthError{Reason: ReasonInvalidCredentials, Err: cause})

	var authErr *AuthError
	if !errors.As(wrapped, &authErr) {
		t.Fatal("AuthError not found through wrapping")
	}
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("APIError cause not found through AuthError")
	}
	if apiErr.Code != CodeTokenExpired {
		t.Errorf("code = %d", apiErr.Code)
	}
}

// TestIsTimeout tests timeout classification
func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{
			name: "wrapped deadline",
			err:  &ClientError{Operation: "getEdge", Err: context.DeadlineExceeded},
			want: true,
		},
		{name: "cancellation", err: context.Canceled, want: false},
		{name: "other error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestIsAuthFailure tests the retry-eligibility classification
func TestIsAuthFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "token error code", err: &APIError{Code: CodeTokenError}, want: true},
		{name: "token expired code", err: &APIError{Code: CodeTokenExpired}, want: true},
		{name: "http 401", err: &APIError{HTTPStatus: 401}, want: true},
		{name: "http 403", err: &APIError{HTTPStatus: 403}, want: true},
		{name: "invalid params", err: &APIError{Code: CodeInvalidParams}, want: false},
		{name: "http 404", err: &APIError{HTTPStatus: 404}, want: false},
		{name: "protocol error", err: &ProtocolError{Kind: KindMalformed}, want: false},
		{name: "transport error", err: &ClientError{Err: errors.New("refused")}, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAuthFailure(tt.err); got != tt.want {
				t.Errorf("isAuthFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}
