// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building JSON request parameters
// using sjson for path-based manipulation.
//
// The Body builder tracks errors internally to enable method chaining
// while providing error checking through String() or Err() methods.
//
// Example:
//
//	params := vco.Body{}.
//	    Set("enterpriseId", 1).
//	    Set("name", "branch-edge-12").
//	    Set("serialNumber", "VC00012345")
//
//	value, err := params.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses dot notation for nested fields (e.g., "interval.start").
// The value can be any type that sjson supports (string, number, bool,
// slices, ...).
//
// Once an error occurs, all subsequent operations are no-ops that preserve
// the error; check it with String() or Err().
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result}
}

// SetRaw sets pre-encoded JSON at the specified path and returns a new Body
//
// Use this to embed an already-serialized domain object into request
// parameters without re-encoding it:
//
//	update, _ := client.Marshal(&edge)
//	params := vco.Body{}.
//	    Set("enterpriseId", edge.EnterpriseID).
//	    Set("id", edge.ID).
//	    SetRaw("_update", string(update))
//
// Returns the Body for method chaining.
func (b Body) SetRaw(path string, raw string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, raw)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result}
}

// Delete removes a value at the specified JSON path and returns a new Body
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result}
}

// String returns the JSON string representation and any error encountered
// during building
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing, or an empty string if
// an error occurred during building (check Err() first)
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}

// Bytes returns the JSON byte slice representation and any error
// encountered during building
func (b Body) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return []byte(b.str), nil
}
