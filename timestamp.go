// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"bytes"
	"strconv"
	"time"
)

// neverSentinel is the orchestrator's representation of "never", used for
// example on activation keys that do not expire.
const neverSentinel = "0000-00-00 00:00:00"

// Timestamp is a compatibility-tagged date-time. The orchestrator transmits
// date-times as either an RFC3339 string or a Unix epoch integer, and uses
// the sentinel "0000-00-00 00:00:00" to mean "never". Timestamp decodes all
// three and encodes as RFC3339 in UTC (the sentinel is preserved), so
// round-tripping a domain object is stable regardless of which form the
// server sent.
type Timestamp struct {
	t     time.Time
	never bool
}

// Time creates a Timestamp from a time.Time
func Time(t time.Time) Timestamp {
	return Timestamp{t: t.UTC()}
}

// Never creates the "never" sentinel Timestamp
func Never() Timestamp {
	return Timestamp{never: true}
}

// Time returns the underlying time. Zero for null or "never" values.
func (t Timestamp) Time() time.Time {
	return t.t
}

// IsNever reports whether this is the "never" sentinel
func (t Timestamp) IsNever() bool {
	return t.never
}

// IsZero reports whether the Timestamp carries no value at all
func (t Timestamp) IsZero() bool {
	return !t.never && t.t.IsZero()
}

// String returns the RFC3339 form, "never" for the sentinel, "null" if unset
func (t Timestamp) String() string {
	if t.never {
		return "never"
	}
	if t.t.IsZero() {
		return "null"
	}
	return t.t.Format(time.RFC3339)
}

// MarshalJSON encodes as an RFC3339 string in UTC, the sentinel string for
// "never", or null when unset
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.never {
		return []byte(`"` + neverSentinel + `"`), nil
	}
	if t.t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.t.UTC().Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON decodes from an RFC3339 string, a Unix epoch integer, the
// "never" sentinel, or null. Anything else surfaces a *SchemaError.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	switch {
	case raw == "null":
		*t = Timestamp{}
		return nil
	case len(raw) >= 2 && raw[0] == '"':
		s := raw[1 : len(raw)-1]
		if s == neverSentinel {
			*t = Timestamp{never: true}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return &SchemaError{Field: "Timestamp", Shape: truncateShape(raw)}
		}
		*t = Timestamp{t: parsed.UTC()}
		return nil
	default:
		epoch, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return &SchemaError{Field: "Timestamp", Shape: truncateShape(raw)}
		}
		*t = Timestamp{t: time.Unix(epoch, 0).UTC()}
		return nil
	}
}
