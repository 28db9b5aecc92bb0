// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"iter"
	"time"
)

// Event severity levels
const (
	EventSeverityInfo     = "INFO"
	EventSeverityNotice   = "NOTICE"
	EventSeverityWarning  = "WARNING"
	EventSeverityError    = "ERROR"
	EventSeverityCritical = "CRITICAL"
)

// Event is one entry of an enterprise's event log
type Event struct {
	ID           int       `json:"id"`
	EventTime    Timestamp `json:"eventTime"`
	Event        string    `json:"event"`
	Category     string    `json:"category"`
	Severity     string    `json:"severity"`
	Message      string    `json:"message"`
	Detail       string    `json:"detail,omitempty"`
	EnterpriseID int       `json:"enterpriseId,omitempty"`
	EdgeID       int       `json:"edgeId,omitempty"`
	EdgeName     string    `json:"edgeName,omitempty"`

	Extra Extra `json:"-"`
}

// ListEvents returns a lazy sequence over an enterprise's events within the
// interval, newest first, fetching pages on demand. This query goes over
// the JSONRPC endpoint.
func (c *Client) ListEvents(ctx context.Context, enterpriseID int, start, end time.Time) iter.Seq2[Event, error] {
	params := Body{}.
		Set("enterpriseId", enterpriseID).
		Set("interval.start", start.UTC().Format(time.RFC3339)).
		Set("interval.end", end.UTC().Format(time.RFC3339))
	op := RPCOp("listEvents", "event/getEnterpriseEvents", params.Res())
	return list[Event](c, ctx, op)
}
