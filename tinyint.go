// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"bytes"
	"strconv"
	"strings"
)

// Shape identifies the wire representation of a compatibility-tagged field
type Shape int

const (
	// ShapeDefault defers to the integer form, the more common legacy
	// behavior, used when the target server version is unknown
	ShapeDefault Shape = iota

	// ShapeInteger transmits booleans as the integers 0/1
	ShapeInteger

	// ShapeBoolean transmits booleans as native JSON true/false
	ShapeBoolean
)

// String returns the string representation of a Shape
func (s Shape) String() string {
	switch s {
	case ShapeInteger:
		return "integer"
	case ShapeBoolean:
		return "boolean"
	default:
		return "default"
	}
}

// TinyBool is a compatibility-tagged boolean. Orchestrator schemas document
// many fields as boolean, but depending on the server version they arrive
// as either native JSON booleans or the integers 0/1, inconsistently even
// within a major version. TinyBool decodes from either shape and normalizes
// to a canonical logical value; encoding emits the shape assigned for the
// target server version, not necessarily the shape it was decoded from.
//
// The zero value is a false decoded from no particular shape; it encodes as
// the integer 0.
type TinyBool struct {
	// Value is the canonical logical value
	Value bool

	shape Shape
}

// Bool creates a TinyBool with the default (integer) wire shape
func Bool(v bool) TinyBool {
	return TinyBool{Value: v}
}

// WireShape returns the shape the value will encode as
func (t TinyBool) WireShape() Shape {
	return t.shape
}

// SetShape assigns the wire shape used on encode. The schema layer calls
// this on every TinyBool in a domain object before serialization, based on
// the server version the client is configured for.
func (t *TinyBool) SetShape(s Shape) {
	t.shape = s
}

// String returns "true" or "false"
func (t TinyBool) String() string {
	return strconv.FormatBool(t.Value)
}

// MarshalJSON encodes the value in its assigned wire shape. ShapeDefault
// and ShapeInteger emit 0/1; ShapeBoolean emits true/false.
func (t TinyBool) MarshalJSON() ([]byte, error) {
	if t.shape == ShapeBoolean {
		return []byte(strconv.FormatBool(t.Value)), nil
	}
	if t.Value {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON decodes from either wire shape: native true/false or the
// integers 0/1. Any other shape surfaces a *SchemaError rather than being
// coerced, so unknown future wire formats are never silently corrupted.
func (t *TinyBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		t.Value = true
		t.shape = ShapeBoolean
	case "false":
		t.Value = false
		t.shape = ShapeBoolean
	case "1":
		t.Value = true
		t.shape = ShapeInteger
	case "0":
		t.Value = false
		t.shape = ShapeInteger
	default:
		return &SchemaError{Field: "TinyBool", Shape: truncateShape(string(data))}
	}
	return nil
}

// truncateShape caps a raw wire fragment for inclusion in error messages
func truncateShape(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 64 {
		return s[:64] + "..."
	}
	return s
}
