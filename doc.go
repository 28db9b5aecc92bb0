// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package vco provides a simple, fluent API for the VeloCloud-style
// Orchestrator (VCO) control plane.
//
// The orchestrator exposes two structurally different wire protocols that
// operate on the same domain objects: a REST-style resource API (POST to
// portal/rest/<group>/<method>) and a JSONRPC 2.0 method-call API (POST to
// portal/). The library presents one client surface and routes each logical
// operation to the correct protocol and envelope, so callers never deal with
// the distinction.
//
// # Quick Start
//
// Create a client and perform basic operations:
//
//	client, err := vco.NewClient(
//	    "https://vco12.example.com",
//	    vco.Username("operator"),
//	    vco.Password("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	for edge, err := range client.ListEdges(ctx, 1) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(edge.Name, edge.EdgeState)
//	}
//
// # Sessions
//
// The client owns a single authenticated session. Login happens lazily on
// the first call and the session token is renewed transparently when it
// expires. Refresh is single-flight: when N concurrent callers need a token
// at the same time, exactly one login reaches the orchestrator and all
// callers share its outcome. A call that fails authentication is retried
// exactly once with a fresh token; a second failure surfaces an *AuthError.
//
// # Version Tolerance
//
// Some orchestrator versions transmit boolean fields as the integers 0/1.
// Fields of type TinyBool decode from either shape and re-encode in the
// shape appropriate for the server version the client is configured for
// (vco.ServerVersion option), defaulting to the integer form. Wire fields
// the library does not know about are preserved verbatim through
// read-modify-write cycles, so newer server versions lose no data.
//
// # JSON Manipulation
//
// Use the Body builder to construct request payloads and Res to query
// responses:
//
//	params := vco.Body{}.
//	    Set("enterpriseId", 1).
//	    Set("with", []string{"site"})
//
//	res, err := client.Do(ctx, vco.RestOp("getEnterprise", "enterprise/getEnterprise", params.Res()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Get("name").String())
//
// # Error Handling
//
// Failures are typed: *AuthError (login rejected or orchestrator
// unreachable during login), *ProtocolError (malformed envelope, JSONRPC id
// mismatch), *APIError (the orchestrator's own domain-level rejection),
// *SchemaError (a compatibility-tagged field in an unknown shape) and
// *ClientError (transport failure, including deadline expiry; check with
// IsTimeout). Apart from the single authentication retry nothing is retried
// automatically; the Backoff helper is available for caller-driven retries.
//
// # Thread Safety
//
// A single Client may be used from any number of goroutines. The session is
// the only shared mutable state and is always replaced atomically.
//
// # References
//
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
package vco
