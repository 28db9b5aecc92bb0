// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"strings"
	"testing"
)

// TestBodySet tests fluent body building
func TestBodySet(t *testing.T) {
	body := Body{}.
		Set("enterpriseId", 1).
		Set("name", "branch-edge-12").
		Set("interval.start", "2023-01-02T03:04:05Z")

	out, err := body.String()
	if err != nil {
		t.Fatalf("String() failed: %v", err)
	}

	res := NewRes(out)
	if res.Get("enterpriseId").Int() != 1 {
		t.Errorf("enterpriseId = %d", res.Get("enterpriseId").Int())
	}
	if res.Get("name").String() != "branch-edge-12" {
		t.Errorf("name = %q", res.Get("name").String())
	}
	if res.Get("interval.start").String() != "2023-01-02T03:04:05Z" {
		t.Errorf("nested path not set: %s", out)
	}
}

// TestBodySetRaw tests embedding pre-encoded JSON
func TestBodySetRaw(t *testing.T) {
	body := Body{}.
		Set("id", 42).
		SetRaw("_update", `{"name":"renamed","isLive":1}`)

	out, err := body.String()
	if err != nil {
		t.Fatalf("String() failed: %v", err)
	}
	res := NewRes(out)
	if res.Get("_update.name").String() != "renamed" {
		t.Errorf("raw value not embedded: %s", out)
	}
	if res.Get("_update.isLive").Raw != "1" {
		t.Errorf("raw value re-encoded: %s", out)
	}
}

// TestBodyDelete tests path removal
func TestBodyDelete(t *testing.T) {
	body := Body{}.
		Set("keep", 1).
		Set("drop", 2).
		Delete("drop")

	out, err := body.String()
	if err != nil {
		t.Fatalf("String() failed: %v", err)
	}
	res := NewRes(out)
	if !res.Exists("keep") || res.Exists("drop") {
		t.Errorf("delete result = %s", out)
	}
}

// TestBodyErrorPropagation tests that the first error sticks and later
// operations are no-ops
func TestBodyErrorPropagation(t *testing.T) {
	body := Body{}.
		Set("bad", make(chan int)).
		Set("after", 1)

	if body.Err() == nil {
		t.Fatal("expected an error from an unencodable value")
	}
	if !strings.Contains(body.Err().Error(), "Set") {
		t.Errorf("error does not name the failing operation: %v", body.Err())
	}
	if body.Res() != "" {
		t.Errorf("Res() = %q, want empty on error", body.Res())
	}
	if _, err := body.Bytes(); err == nil {
		t.Errorf("Bytes() did not surface the error")
	}
}
