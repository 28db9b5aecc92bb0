// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import "github.com/tidwall/gjson"

// Res represents a decoded response payload. For REST operations this is
// the JSON body; for JSONRPC operations it is the unwrapped result member,
// with the envelope already stripped and verified.
type Res struct {
	raw string
}

// NewRes wraps a raw JSON string as a Res. Mostly useful in tests.
func NewRes(raw string) Res {
	return Res{raw: raw}
}

// Get retrieves a value from the payload using a gjson path.
//
// Example paths:
//   - "name" - top-level field
//   - "site.contactEmail" - nested field
//   - "result.#" - number of items in the result array
//   - "result.0.logicalId" - field of the first item
//
// Returns gjson.Result which can be converted to specific types:
//   - result.String() for string values
//   - result.Int() for integer values
//   - result.Bool() for boolean values
//   - result.Array() for array values
func (r Res) Get(path string) gjson.Result {
	return gjson.Get(r.raw, path)
}

// Exists reports whether a value is present at the given gjson path
func (r Res) Exists(path string) bool {
	return gjson.Get(r.raw, path).Exists()
}

// Str returns the raw JSON payload
func (r Res) Str() string {
	return r.raw
}

// Bytes returns the raw JSON payload as a byte slice
func (r Res) Bytes() []byte {
	return []byte(r.raw)
}
