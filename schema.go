// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Extra holds wire fields that are present on a domain object but not in
// the client's known schema. They are captured verbatim on decode and
// re-emitted byte-for-byte on encode, so a read-modify-write cycle against
// a newer server version never silently loses data.
//
// Domain object types opt in by declaring a field:
//
//	Extra vco.Extra `json:"-"`
type Extra map[string]json.RawMessage

var (
	tinyBoolType = reflect.TypeOf(TinyBool{})
	extraType    = reflect.TypeOf(Extra{})
)

// Unmarshal decodes a domain object from its wire form, capturing unknown
// top-level fields into the object's Extra field if it has one. Known
// fields decode through their compatibility adapters (TinyBool, Timestamp),
// so either wire shape is accepted.
func Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}

	elem := structValue(v)
	if !elem.IsValid() {
		return nil
	}
	extraField := elem.FieldByName("Extra")
	if !extraField.IsValid() || extraField.Type() != extraType || !extraField.CanSet() {
		return nil
	}

	known := knownKeys(elem.Type())
	extras := Extra{}
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if !known[key.String()] {
			extras[key.String()] = json.RawMessage(value.Raw)
		}
		return true
	})
	if len(extras) > 0 {
		extraField.Set(reflect.ValueOf(extras))
	}
	return nil
}

// Marshal encodes a domain object for the wire, emitting every TinyBool in
// the given shape and re-merging any captured unknown fields verbatim.
// v must be a pointer for the shape assignment to take effect.
func Marshal(v any, shape Shape) ([]byte, error) {
	Retarget(v, shape)

	out, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	elem := structValue(v)
	if !elem.IsValid() {
		return out, nil
	}
	extraField := elem.FieldByName("Extra")
	if !extraField.IsValid() || extraField.Type() != extraType {
		return out, nil
	}
	extras, _ := extraField.Interface().(Extra)
	for key, raw := range extras {
		out, err = sjson.SetRawBytes(out, escapePath(key), []byte(raw))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Retarget assigns the given wire shape to every TinyBool reachable from v,
// recursively through structs, pointers, slices, arrays and maps. This is
// the single place version-skew handling happens; schemas themselves carry
// no per-field special casing. v should be a pointer.
func Retarget(v any, shape Shape) {
	retargetValue(reflect.ValueOf(v), shape)
}

func retargetValue(rv reflect.Value, shape Shape) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			retargetValue(rv.Elem(), shape)
		}
	case reflect.Struct:
		if rv.Type() == tinyBoolType {
			if rv.CanAddr() {
				rv.Addr().Interface().(*TinyBool).SetShape(shape)
			}
			return
		}
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				retargetValue(rv.Field(i), shape)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			retargetValue(rv.Index(i), shape)
		}
	case reflect.Map:
		// Map values are not addressable; retarget a copy and store it back
		for _, key := range rv.MapKeys() {
			elem := reflect.New(rv.Type().Elem()).Elem()
			elem.Set(rv.MapIndex(key))
			retargetValue(elem, shape)
			rv.SetMapIndex(key, elem)
		}
	}
}

// structValue dereferences v down to a struct value, or returns an invalid
// value if v is not a (pointer to a) struct
func structValue(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return rv
}

// knownKeys collects the top-level JSON keys a struct type decodes into
func knownKeys(t reflect.Type) map[string]bool {
	known := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		switch name {
		case "-":
			continue
		case "":
			known[field.Name] = true
		default:
			known[name] = true
		}
	}
	return known
}

// escapePath escapes a raw JSON key for use as an sjson path, so keys
// containing path metacharacters set a single field rather than a nested one
func escapePath(key string) string {
	var builder strings.Builder
	builder.Grow(len(key))
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			builder.WriteByte('\\')
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// shapeForVersion decides the encode shape for a target server version.
// Servers at 4.3 and later accept and return native booleans; anything
// older, unknown or unparseable gets the integer form, the observed legacy
// behavior.
func shapeForVersion(version string) Shape {
	major, minor, ok := parseVersion(version)
	if !ok {
		return ShapeInteger
	}
	if major > 4 || (major == 4 && minor >= 3) {
		return ShapeBoolean
	}
	return ShapeInteger
}

// parseVersion extracts major and minor from a dotted version string
func parseVersion(version string) (major, minor int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	for _, r := range parts[0] {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
		major = major*10 + int(r-'0')
	}
	for _, r := range parts[1] {
		if r < '0' || r > '9' {
			return 0, 0, false
		}
		minor = minor*10 + int(r-'0')
	}
	if parts[0] == "" || parts[1] == "" {
		return 0, 0, false
	}
	return major, minor, true
}
