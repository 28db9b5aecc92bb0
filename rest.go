// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// restBasePath is the first part of the URL path after the host for the
// REST-style resource API
const restBasePath = "portal/rest"

// encodeREST shapes an Op into the REST envelope: POST to
// portal/rest/<path> with the params as a direct JSON body
func encodeREST(op Op, header http.Header) wireRequest {
	return wireRequest{
		path:   restBasePath + "/" + op.Target,
		body:   op.Params,
		header: header,
	}
}

// decodeREST interprets a REST response. The body is the payload directly;
// the orchestrator reports its own failures either as a non-2xx status or
// as a 200 carrying an {"error":{code,message}} body, both of which surface
// as *APIError. An empty body decodes as JSON null, which some calls return
// on success.
func decodeREST(op Op, resp wireResponse) (Res, error) {
	body := strings.TrimSpace(resp.body)

	if body == "" {
		if resp.status >= 400 {
			return Res{}, &APIError{
				Message:    http.StatusText(resp.status),
				HTTPStatus: resp.status,
			}
		}
		return Res{raw: "null"}, nil
	}

	if !gjson.Valid(body) {
		return Res{}, &ProtocolError{
			Kind:      KindMalformed,
			Operation: op.Name,
			Message:   "response body is not valid JSON",
		}
	}

	if apiErr := identifyErrorBody(body, resp.status); apiErr != nil {
		return Res{}, apiErr
	}

	if resp.status >= 400 {
		return Res{}, &APIError{
			Message:    http.StatusText(resp.status),
			HTTPStatus: resp.status,
			Raw:        body,
		}
	}

	return Res{raw: body}, nil
}

// identifyErrorBody checks whether a body is an API-style error. Errors are
// always a JSON object with an "error" member that itself carries "code"
// and "message"; an "error" member of any other shape is domain data, not
// an error.
func identifyErrorBody(body string, status int) *APIError {
	parsed := gjson.Parse(body)
	if !parsed.IsObject() {
		return nil
	}
	errVal := parsed.Get("error")
	if !errVal.IsObject() {
		return nil
	}
	code := errVal.Get("code")
	message := errVal.Get("message")
	if !code.Exists() || !message.Exists() {
		return nil
	}

	apiErr := &APIError{
		Code:    int(code.Int()),
		Message: message.String(),
		Raw:     errVal.Raw,
	}
	if status >= 400 {
		apiErr.HTTPStatus = status
	}
	return apiErr
}
