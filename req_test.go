// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"strings"
	"testing"
	"time"
)

// TestOpValidate tests operation validation
func TestOpValidate(t *testing.T) {
	tests := []struct {
		name       string
		op         Op
		wantErrMsg string
	}{
		{
			name: "valid rest op",
			op:   RestOp("getEdge", "edge/getEdge", `{"id":1}`),
		},
		{
			name: "valid rpc op",
			op:   RPCOp("metrics", "metrics/getGatewayStatusMetrics", ""),
		},
		{
			name:       "empty name",
			op:         Op{Protocol: ProtocolREST, Target: "edge/getEdge"},
			wantErrMsg: "name cannot be empty",
		},
		{
			name:       "whitespace target",
			op:         RestOp("x", "   ", ""),
			wantErrMsg: "target cannot be empty",
		},
		{
			name:       "absolute target",
			op:         RestOp("x", "/portal/rest/login", ""),
			wantErrMsg: "relative method path",
		},
		{
			name:       "parent traversal",
			op:         RestOp("x", "a/../../b", ""),
			wantErrMsg: "relative method path",
		},
		{
			name:       "unknown protocol",
			op:         Op{Name: "x", Protocol: "grpc", Target: "a/b"},
			wantErrMsg: "invalid protocol",
		},
		{
			name:       "oversized params",
			op:         RestOp("x", "a/b", strings.Repeat("x", MaxParamsSize+1)),
			wantErrMsg: "params size exceeds maximum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.op.validate()
			if tt.wantErrMsg == "" {
				if err != nil {
					t.Errorf("validate() failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErrMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErrMsg)
			}
		})
	}
}

// TestValidateProtocol tests the closed protocol set
func TestValidateProtocol(t *testing.T) {
	if err := ValidateProtocol(ProtocolREST); err != nil {
		t.Errorf("rest rejected: %v", err)
	}
	if err := ValidateProtocol(ProtocolJSONRPC); err != nil {
		t.Errorf("jsonrpc rejected: %v", err)
	}
	if err := ValidateProtocol("soap"); err == nil {
		t.Errorf("unknown protocol accepted")
	}
	if err := ValidateProtocol(ProtocolAny); err == nil {
		t.Errorf("session affinity marker accepted as an operation protocol")
	}
}

// TestTimeoutModifier tests the request modifier
func TestTimeoutModifier(t *testing.T) {
	req := &Req{}
	Timeout(5 * time.Second)(req)
	if req.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", req.Timeout)
	}
}
