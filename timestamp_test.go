// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// TestTimestampUnmarshal tests decoding from all accepted wire forms
func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTime  time.Time
		wantNever bool
		wantZero  bool
		wantErr   bool
	}{
		{
			name:     "rfc3339 string",
			input:    `"2023-01-02T03:04:05Z"`,
			wantTime: time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:     "rfc3339 with offset normalizes to UTC",
			input:    `"2023-01-02T03:04:05+05:30"`,
			wantTime: time.Date(2023, 1, 1, 21, 34, 5, 0, time.UTC),
		},
		{
			name:     "epoch integer",
			input:    "1672628645",
			wantTime: time.Unix(1672628645, 0).UTC(),
		},
		{
			name:      "never sentinel",
			input:     `"0000-00-00 00:00:00"`,
			wantNever: true,
		},
		{
			name:     "null",
			input:    "null",
			wantZero: true,
		},
		{name: "malformed string", input: `"yesterday"`, wantErr: true},
		{name: "float", input: "1672628645.5", wantErr: true},
		{name: "boolean", input: "true", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)

			if tt.wantErr {
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Fatalf("expected *SchemaError for input %s, got %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
			}
			if ts.IsNever() != tt.wantNever {
				t.Errorf("IsNever() = %v, want %v", ts.IsNever(), tt.wantNever)
			}
			if tt.wantZero && !ts.IsZero() {
				t.Errorf("IsZero() = false, want true")
			}
			if !tt.wantNever && !tt.wantZero && !ts.Time().Equal(tt.wantTime) {
				t.Errorf("Time() = %v, want %v", ts.Time(), tt.wantTime)
			}
		})
	}
}

// TestTimestampMarshal tests the canonical encodings
func TestTimestampMarshal(t *testing.T) {
	tests := []struct {
		name  string
		input Timestamp
		want  string
	}{
		{
			name:  "time value",
			input: Time(time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)),
			want:  `"2023-01-02T03:04:05Z"`,
		},
		{
			name:  "never sentinel",
			input: Never(),
			want:  `"0000-00-00 00:00:00"`,
		},
		{
			name:  "zero value",
			input: Timestamp{},
			want:  "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("Marshal() = %s, want %s", out, tt.want)
			}
		})
	}
}

// TestTimestampRoundTripStability verifies that an epoch integer decodes
// and re-encodes to the same instant, and that a second round trip is
// byte-stable
func TestTimestampRoundTripStability(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte("1672628645"), &ts); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	first, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var again Timestamp
	if err := json.Unmarshal(first, &again); err != nil {
		t.Fatalf("re-Unmarshal failed: %v", err)
	}
	if !again.Time().Equal(ts.Time()) {
		t.Errorf("instant changed across round trip: %v != %v", again.Time(), ts.Time())
	}

	second, err := json.Marshal(again)
	if err != nil {
		t.Fatalf("second Marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("round trip not stable: %s != %s", first, second)
	}
}
