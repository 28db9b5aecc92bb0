// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"fmt"
	"iter"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// listPage is one page of a list response. The orchestrator returns either
// a bare JSON array or an object wrapping the array together with paging
// metadata.
type listPage struct {
	items []gjson.Result
	more  bool
	next  string
}

// parseListPage decodes one page. Accepted shapes are a bare array and
// {"result": [...], "metaData": {"more": bool, "nextPageLink": string}}.
func parseListPage(opName string, res Res) (listPage, error) {
	parsed := gjson.Parse(res.raw)

	if parsed.IsArray() {
		return listPage{items: parsed.Array()}, nil
	}

	if parsed.IsObject() {
		// REST lists wrap the array as "result", event queries as "data"
		result := parsed.Get("result")
		if !result.IsArray() {
			result = parsed.Get("data")
		}
		if result.IsArray() {
			meta := parsed.Get("metaData")
			return listPage{
				items: result.Array(),
				more:  meta.Get("more").Bool(),
				next:  meta.Get("nextPageLink").String(),
			}, nil
		}
	}

	return listPage{}, &ProtocolError{
		Kind:      KindMalformed,
		Operation: opName,
		Message:   "list response is neither an array nor a paged result object",
	}
}

// list returns a lazy sequence over all items of a paginated list
// operation. No request is sent until the sequence is iterated; follow-up
// pages are fetched on demand as iteration crosses page boundaries. The
// sequence is restartable: each range over it re-issues the operation from
// the first page, observing current server state.
//
// On a transport, protocol or decode failure the sequence yields the error
// once and stops.
func list[T any](c *Client, ctx context.Context, op Op) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		params := op.Params
		for {
			page := op
			page.Params = params

			res, err := c.Do(ctx, page)
			if err != nil {
				yield(zero, err)
				return
			}

			parsed, err := parseListPage(op.Name, res)
			if err != nil {
				yield(zero, err)
				return
			}

			for _, item := range parsed.items {
				var v T
				err := Unmarshal([]byte(item.Raw), &v)
				if !yield(v, err) {
					return
				}
				if err != nil {
					return
				}
			}

			if !parsed.more || parsed.next == "" {
				return
			}

			base := op.Params
			if base == "" {
				base = "{}"
			}
			params, err = sjson.Set(base, "nextPageLink", parsed.next)
			if err != nil {
				yield(zero, fmt.Errorf("%s: encoding next page request: %w", op.Name, err))
				return
			}
		}
	}
}

// getOne fetches a single object and decodes it
func getOne[T any](c *Client, ctx context.Context, op Op) (T, error) {
	var v T
	res, err := c.Do(ctx, op)
	if err != nil {
		return v, err
	}
	if err := Unmarshal(res.Bytes(), &v); err != nil {
		return v, err
	}
	return v, nil
}
