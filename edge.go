// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"iter"
)

// EdgeState values reported by the orchestrator
const (
	EdgeStateNeverActivated = "NEVER_ACTIVATED"
	EdgeStateDegraded       = "DEGRADED"
	EdgeStateOffline        = "OFFLINE"
	EdgeStateDisabled       = "DISABLED"
	EdgeStateExpired        = "EXPIRED"
	EdgeStateConnected      = "CONNECTED"
)

// ActivationState values used by edges and gateways
const (
	ActivationStateUnassigned          = "UNASSIGNED"
	ActivationStatePending             = "PENDING"
	ActivationStateActivated           = "ACTIVATED"
	ActivationStateReactivationPending = "REACTIVATION_PENDING"
)

// Edge is an edge device belonging to an enterprise. Boolean attributes the
// orchestrator reports as 0/1 or true/false depending on its version are
// typed TinyBool; timestamps accept RFC3339 strings, epoch integers and the
// "never" sentinel. Fields this struct does not declare are captured in
// Extra and re-emitted verbatim when the edge is marshaled back.
type Edge struct {
	ID                    int       `json:"id"`
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	EnterpriseID          int       `json:"enterpriseId"`
	SiteID                int       `json:"siteId"`
	LogicalID             string    `json:"logicalId"`
	SerialNumber          string    `json:"serialNumber"`
	ModelNumber           string    `json:"modelNumber"`
	DeviceFamily          string    `json:"deviceFamily"`
	SoftwareVersion       string    `json:"softwareVersion"`
	BuildNumber           string    `json:"buildNumber"`
	ActivationKey         string    `json:"activationKey"`
	ActivationState       string    `json:"activationState"`
	ActivationTime        Timestamp `json:"activationTime"`
	EdgeState             string    `json:"edgeState"`
	EdgeStateTime         Timestamp `json:"edgeStateTime"`
	HAState               string    `json:"haState"`
	ServiceState          string    `json:"serviceState"`
	ServiceUpSince        Timestamp `json:"serviceUpSince"`
	SystemUpSince         Timestamp `json:"systemUpSince"`
	LastContact           Timestamp `json:"lastContact"`
	IsLive                TinyBool  `json:"isLive"`
	AlertsEnabled         TinyBool  `json:"alertsEnabled"`
	OperatorAlertsEnabled TinyBool  `json:"operatorAlertsEnabled"`
	Created               Timestamp `json:"created"`
	Modified              Timestamp `json:"modified"`

	Extra Extra `json:"-"`
}

// ListEdges returns a lazy sequence over all edges of an enterprise,
// fetching pages on demand. Ranging over the sequence again re-issues the
// query from the first page.
//
//	for edge, err := range client.ListEdges(ctx, 1) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(edge.Name, edge.EdgeState)
//	}
func (c *Client) ListEdges(ctx context.Context, enterpriseID int) iter.Seq2[Edge, error] {
	params := Body{}.Set("enterpriseId", enterpriseID)
	op := RestOp("listEdges", "enterprise/getEnterpriseEdges", params.Res())
	return list[Edge](c, ctx, op)
}

// GetEdge fetches a single edge by id
func (c *Client) GetEdge(ctx context.Context, enterpriseID, edgeID int) (Edge, error) {
	params := Body{}.
		Set("enterpriseId", enterpriseID).
		Set("id", edgeID)
	op := RestOp("getEdge", "edge/getEdge", params.Res())
	return getOne[Edge](c, ctx, op)
}

// EdgeProvision describes a new edge to provision
type EdgeProvision struct {
	EnterpriseID int    `json:"enterpriseId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	ModelNumber  string `json:"modelNumber"`
	SiteID       int    `json:"siteId,omitempty"`
}

// EdgeProvisionResult is the orchestrator's answer to a provision request
type EdgeProvisionResult struct {
	ID            int    `json:"id"`
	ActivationKey string `json:"activationKey"`
	LogicalID     string `json:"logicalId"`

	Extra Extra `json:"-"`
}

// CreateEdge provisions a new edge and returns its id and activation key
func (c *Client) CreateEdge(ctx context.Context, provision EdgeProvision) (EdgeProvisionResult, error) {
	params, err := c.Marshal(&provision)
	if err != nil {
		return EdgeProvisionResult{}, err
	}
	op := RestOp("createEdge", "edge/edgeProvision", string(params))
	return getOne[EdgeProvisionResult](c, ctx, op)
}

// ModifyEdge updates attributes of an existing edge. The edge is sent as an
// "_update" document, encoded for the client's target server version with
// unknown fields preserved.
func (c *Client) ModifyEdge(ctx context.Context, edge Edge) error {
	update, err := c.Marshal(&edge)
	if err != nil {
		return err
	}
	params := Body{}.
		Set("enterpriseId", edge.EnterpriseID).
		Set("id", edge.ID).
		SetRaw("_update", string(update))
	if err := params.Err(); err != nil {
		return err
	}
	op := RestOp("modifyEdge", "edge/updateEdgeAttributes", params.Res())
	_, err = c.Do(ctx, op)
	return err
}

// DeleteEdge removes an edge from an enterprise
func (c *Client) DeleteEdge(ctx context.Context, enterpriseID, edgeID int) error {
	params := Body{}.
		Set("enterpriseId", enterpriseID).
		Set("id", edgeID)
	op := RestOp("deleteEdge", "edge/deleteEdge", params.Res())
	_, err := c.Do(ctx, op)
	return err
}
