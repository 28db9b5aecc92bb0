// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"encoding/json"
	"errors"
	"testing"
)

// TestTinyBoolUnmarshal tests decoding from both wire shapes
func TestTinyBoolUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue bool
		wantShape Shape
		wantErr   bool
	}{
		{name: "native true", input: "true", wantValue: true, wantShape: ShapeBoolean},
		{name: "native false", input: "false", wantValue: false, wantShape: ShapeBoolean},
		{name: "integer one", input: "1", wantValue: true, wantShape: ShapeInteger},
		{name: "integer zero", input: "0", wantValue: false, wantShape: ShapeInteger},
		{name: "leading whitespace", input: " 1", wantValue: true, wantShape: ShapeInteger},
		{name: "integer two", input: "2", wantErr: true},
		{name: "quoted integer", input: `"1"`, wantErr: true},
		{name: "quoted bool", input: `"true"`, wantErr: true},
		{name: "null", input: "null", wantErr: true},
		{name: "object", input: `{"value":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tb TinyBool
			err := json.Unmarshal([]byte(tt.input), &tb)

			if tt.wantErr {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected *SchemaError for input %q, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%q) failed: %v", tt.input, err)
			}
			if tb.Value != tt.wantValue {
				t.Errorf("value = %v, want %v", tb.Value, tt.wantValue)
			}
			if tb.WireShape() != tt.wantShape {
				t.Errorf("shape = %v, want %v", tb.WireShape(), tt.wantShape)
			}
		})
	}
}

// TestTinyBoolMarshal tests encoding in each assigned wire shape
func TestTinyBoolMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value bool
		shape Shape
		want  string
	}{
		{name: "default shape true", value: true, shape: ShapeDefault, want: "1"},
		{name: "default shape false", value: false, shape: ShapeDefault, want: "0"},
		{name: "integer shape true", value: true, shape: ShapeInteger, want: "1"},
		{name: "integer shape false", value: false, shape: ShapeInteger, want: "0"},
		{name: "boolean shape true", value: true, shape: ShapeBoolean, want: "true"},
		{name: "boolean shape false", value: false, shape: ShapeBoolean, want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := Bool(tt.value)
			tb.SetShape(tt.shape)
			out, err := json.Marshal(tb)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Marshal() = %s, want %s", out, tt.want)
			}
		})
	}
}

// TestTinyBoolRoundTripStability verifies that for a fixed target shape,
// decode-encode round trips are stable regardless of the shape the value
// arrived in
func TestTinyBoolRoundTripStability(t *testing.T) {
	inputs := []string{"true", "false", "1", "0"}

	for _, shape := range []Shape{ShapeInteger, ShapeBoolean} {
		for _, input := range inputs {
			var tb TinyBool
			if err := json.Unmarshal([]byte(input), &tb); err != nil {
				t.Fatalf("Unmarshal(%q) failed: %v", input, err)
			}
			tb.SetShape(shape)

			first, err := json.Marshal(tb)
			if err != nil {
				t.Fatalf("first Marshal failed: %v", err)
			}

			var again TinyBool
			if err := json.Unmarshal(first, &again); err != nil {
				t.Fatalf("re-Unmarshal(%s) failed: %v", first, err)
			}
			again.SetShape(shape)

			second, err := json.Marshal(again)
			if err != nil {
				t.Fatalf("second Marshal failed: %v", err)
			}
			if string(first) != string(second) {
				t.Errorf("round trip not stable for input %q shape %v: %s != %s",
					input, shape, first, second)
			}
		}
	}
}
