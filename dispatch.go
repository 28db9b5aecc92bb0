// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Do executes a single operation against the orchestrator. It acquires a
// session token (triggering a login if necessary), encodes the operation
// per its protocol, performs the HTTP exchange and decodes the response.
//
// If the orchestrator rejects the session token, the cached session is
// invalidated and the operation is retried exactly once with a fresh token.
// A second rejection surfaces as *AuthError. No other failure is retried
// automatically.
//
//	res, err := client.Do(ctx, vco.RestOp("getEnterprise", "enterprise/getEnterprise", body))
func (c *Client) Do(ctx context.Context, op Op, mods ...func(*Req)) (Res, error) {
	if err := op.validate(); err != nil {
		return Res{}, fmt.Errorf("%s: %w", op.Name, err)
	}
	if op.Params != "" && !gjson.Valid(op.Params) {
		return Res{}, fmt.Errorf("%s: params are not valid JSON", op.Name)
	}

	req := &Req{}
	for _, mod := range mods {
		mod(req)
	}

	ctx, cancel := c.requestContext(ctx, req)
	defer cancel()

	res, err := c.dispatch(ctx, op)
	if err == nil || !isAuthFailure(err) {
		return res, err
	}

	c.logger.Debug(ctx, "session rejected, refreshing once", "operation", op.Name)
	c.Invalidate()

	res, err = c.dispatch(ctx, op)
	if err != nil && isAuthFailure(err) {
		return Res{}, &AuthError{Reason: ReasonInvalidCredentials, Err: err}
	}
	return res, err
}

// dispatch performs one encode/exchange/decode round trip with the
// current session token.
func (c *Client) dispatch(ctx context.Context, op Op) (Res, error) {
	token, err := c.Token(ctx, op.Protocol)
	if err != nil {
		return Res{}, err
	}
	header := c.authHeader(token)

	switch op.Protocol {
	case ProtocolJSONRPC:
		id := uuid.NewString()
		wr, err := encodeJSONRPC(op, id, header)
		if err != nil {
			return Res{}, err
		}
		resp, err := c.exchange(ctx, op.Name, wr)
		if err != nil {
			return Res{}, err
		}
		return decodeJSONRPC(op, id, resp)
	default:
		wr := encodeREST(op, header)
		resp, err := c.exchange(ctx, op.Name, wr)
		if err != nil {
			return Res{}, err
		}
		return decodeREST(op, resp)
	}
}

// requestContext derives the context a single operation runs under. A
// per-request Timeout modifier wins over an existing context deadline,
// which wins over the client-wide RequestTimeout.
func (c *Client) requestContext(ctx context.Context, req *Req) (context.Context, context.CancelFunc) {
	if req.Timeout > 0 {
		return context.WithTimeout(ctx, req.Timeout)
	}
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}
