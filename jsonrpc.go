// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// rpcPath is the single endpoint all JSONRPC calls are posted to
const rpcPath = "portal/"

// jsonrpcVersion is the protocol version stamped on every request
const jsonrpcVersion = "2.0"

// encodeJSONRPC shapes an Op into a JSONRPC 2.0 envelope. The id is a
// fresh UUID per call and is later correlated against the response.
func encodeJSONRPC(op Op, id string, header http.Header) (wireRequest, error) {
	body, _ := sjson.Set("", "jsonrpc", jsonrpcVersion)
	body, _ = sjson.Set(body, "id", id)
	body, _ = sjson.Set(body, "method", op.Target)
	if op.Params != "" {
		var err error
		body, err = sjson.SetRaw(body, "params", op.Params)
		if err != nil {
			return wireRequest{}, fmt.Errorf("encoding params for %s: %w", op.Name, err)
		}
	}
	return wireRequest{
		path:   rpcPath,
		body:   body,
		header: header,
	}, nil
}

// decodeJSONRPC interprets a JSONRPC response. A response must carry either
// a result or an error member; the error member becomes an *APIError, an id
// that does not match the request id is fatal. A server that could not
// parse the request replies with a null id and an error object, which is
// still surfaced as the error rather than as a mismatch.
func decodeJSONRPC(op Op, id string, resp wireResponse) (Res, error) {
	if !gjson.Valid(resp.body) {
		if resp.status >= 400 {
			return Res{}, &APIError{
				Message:    http.StatusText(resp.status),
				HTTPStatus: resp.status,
				Raw:        resp.body,
			}
		}
		return Res{}, &ProtocolError{
			Kind:      KindMalformed,
			Operation: op.Name,
			Message:   "response body is not valid JSON",
		}
	}

	parsed := gjson.Parse(resp.body)
	if !parsed.IsObject() {
		return Res{}, &ProtocolError{
			Kind:      KindMalformed,
			Operation: op.Name,
			Message:   "response is not a JSON object",
		}
	}

	respID := parsed.Get("id")
	errVal := parsed.Get("error")

	if errVal.Exists() {
		if !errVal.IsObject() {
			return Res{}, &ProtocolError{
				Kind:      KindMalformed,
				Operation: op.Name,
				Message:   "error member is not an object",
			}
		}
		apiErr := &APIError{
			Code:    int(errVal.Get("code").Int()),
			Message: errVal.Get("message").String(),
			Raw:     errVal.Raw,
		}
		if resp.status >= 400 {
			apiErr.HTTPStatus = resp.status
		}
		return Res{}, apiErr
	}

	if !respID.Exists() || respID.String() != id {
		return Res{}, &ProtocolError{
			Kind:      KindIDMismatch,
			Operation: op.Name,
			Message:   fmt.Sprintf("response id %q does not match request id %q", respID.String(), id),
		}
	}

	result := parsed.Get("result")
	if !result.Exists() {
		return Res{}, &ProtocolError{
			Kind:      KindMalformed,
			Operation: op.Name,
			Message:   "response carries neither result nor error",
		}
	}

	return Res{raw: result.Raw}, nil
}
