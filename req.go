// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"fmt"
	"strings"
	"time"
)

// Protocol selects the wire protocol for a logical operation. The set is
// closed: each operation is routed to exactly one of the two codecs.
type Protocol string

const (
	// ProtocolREST routes the call as POST portal/rest/<path> with a direct
	// JSON body
	ProtocolREST Protocol = "rest"

	// ProtocolJSONRPC routes the call as a JSONRPC 2.0 envelope posted to
	// portal/
	ProtocolJSONRPC Protocol = "jsonrpc"
)

// ValidProtocols contains the list of valid protocol values
var ValidProtocols = []Protocol{ProtocolREST, ProtocolJSONRPC}

// ValidateProtocol checks if the protocol is valid
func ValidateProtocol(p Protocol) error {
	for _, valid := range ValidProtocols {
		if p == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid protocol: %s (valid values: rest, jsonrpc)", p)
}

// MaxParamsSize is the maximum size of a request parameter payload in bytes
const MaxParamsSize = 10 * 1024 * 1024

// Op describes one logical operation against the orchestrator. It is
// immutable and constructed per call; the dispatcher shapes it into the
// protocol-specific envelope.
type Op struct {
	// Name is the logical operation name, used in logs and error messages
	Name string

	// Protocol selects the wire protocol
	Protocol Protocol

	// Target is the REST path (e.g. "enterprise/getEnterpriseEdges") or the
	// JSONRPC method name, depending on Protocol
	Target string

	// Params is the JSON-encoded parameter payload; empty means none
	Params string
}

// RestOp creates an Op routed over the REST-style resource API
//
// Example:
//
//	op := vco.RestOp("getEnterprise", "enterprise/getEnterprise",
//	    vco.Body{}.Set("enterpriseId", 1).Res())
func RestOp(name, path, params string) Op {
	return Op{
		Name:     name,
		Protocol: ProtocolREST,
		Target:   path,
		Params:   params,
	}
}

// RPCOp creates an Op routed over the JSONRPC method-call API
//
// Example:
//
//	op := vco.RPCOp("getGatewayStatusMetrics", "metrics/getGatewayStatusMetrics", params)
func RPCOp(name, method, params string) Op {
	return Op{
		Name:     name,
		Protocol: ProtocolJSONRPC,
		Target:   method,
		Params:   params,
	}
}

// validate checks an Op before dispatch
func (op Op) validate() error {
	if strings.TrimSpace(op.Name) == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if err := ValidateProtocol(op.Protocol); err != nil {
		return err
	}
	target := strings.TrimSpace(op.Target)
	if target == "" {
		return fmt.Errorf("operation target cannot be empty")
	}
	if strings.HasPrefix(target, "/") || strings.Contains(target, "..") {
		return fmt.Errorf("operation target must be a relative method path: %s", target)
	}
	if len(op.Params) > MaxParamsSize {
		return fmt.Errorf("params size exceeds maximum of %d bytes (got %d bytes)", MaxParamsSize, len(op.Params))
	}
	return nil
}

// Req represents a request modifier set
//
// Operation parameters are carried by the Op; Req carries per-call options
// applied via functional modifiers.
//
// Example:
//
//	res, err := client.Do(ctx, op, vco.Timeout(30*time.Second))
type Req struct {
	// Timeout is the request-specific timeout.
	// Overrides the context deadline and client default if set.
	Timeout time.Duration
}

// Timeout returns a request modifier that sets a custom timeout for the
// operation.
//
// The timeout priority model is:
//  1. Request-specific timeout (this modifier) - highest priority
//  2. Context deadline (if already set) - medium priority
//  3. Client.RequestTimeout - fallback default
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}
