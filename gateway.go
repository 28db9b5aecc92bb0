// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"iter"
	"time"
)

// GatewayState values reported by the orchestrator
const (
	GatewayStateNeverActivated = "NEVER_ACTIVATED"
	GatewayStateDegraded       = "DEGRADED"
	GatewayStateQuiesced       = "QUIESCED"
	GatewayStateDisabled       = "DISABLED"
	GatewayStateOutOfService   = "OUT_OF_SERVICE"
	GatewayStateConnected      = "CONNECTED"
	GatewayStateOffline        = "OFFLINE"
)

// GatewayMetric names a per-gateway time series
type GatewayMetric string

// Metrics accepted by GatewayStatusMetrics
const (
	MetricTunnelCount       GatewayMetric = "tunnelCount"
	MetricTunnelCountV6     GatewayMetric = "tunnelCountV6"
	MetricMemoryPct         GatewayMetric = "memoryPct"
	MetricFlowCount         GatewayMetric = "flowCount"
	MetricCPUPct            GatewayMetric = "cpuPct"
	MetricHandoffQueueDrops GatewayMetric = "handoffQueueDrops"
	MetricConnectedEdges    GatewayMetric = "connectedEdges"
)

// Gateway is a gateway node serving enterprise tunnels
type Gateway struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	DNSName         string    `json:"dnsName,omitempty"`
	LogicalID       string    `json:"logicalId"`
	NetworkID       int       `json:"networkId"`
	SiteID          int       `json:"siteId"`
	IPAddress       string    `json:"ipAddress,omitempty"`
	SoftwareVersion string    `json:"softwareVersion"`
	BuildNumber     string    `json:"buildNumber"`
	ActivationKey   string    `json:"activationKey"`
	ActivationState string    `json:"activationState"`
	ActivationTime  Timestamp `json:"activationTime"`
	GatewayState    string    `json:"gatewayState"`
	ServiceState    string    `json:"serviceState"`
	ServiceUpSince  Timestamp `json:"serviceUpSince"`
	SystemUpSince   Timestamp `json:"systemUpSince"`
	LastContact     Timestamp `json:"lastContact"`
	Utilization     float64   `json:"utilization"`
	ConnectedEdges  int       `json:"connectedEdges"`
	AlertsEnabled   TinyBool  `json:"alertsEnabled"`
	IsLoadBalanced  TinyBool  `json:"isLoadBalanced"`
	Created         Timestamp `json:"created"`
	Modified        Timestamp `json:"modified"`

	Extra Extra `json:"-"`
}

// ListGateways returns a lazy sequence over all gateways on the network,
// fetching pages on demand
func (c *Client) ListGateways(ctx context.Context) iter.Seq2[Gateway, error] {
	op := RestOp("listGateways", "network/getNetworkGateways", "")
	return list[Gateway](c, ctx, op)
}

// GatewayStatusMetrics queries time-series metrics for one gateway over an
// interval. This call goes over the JSONRPC endpoint; the raw result is
// returned for path-based access as its shape varies with the metrics
// requested.
//
//	res, err := client.GatewayStatusMetrics(ctx, 3,
//	    time.Now().Add(-time.Hour), time.Now(),
//	    vco.MetricTunnelCount, vco.MetricCPUPct)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Get("tunnelCount.#").Int())
func (c *Client) GatewayStatusMetrics(ctx context.Context, gatewayID int, start, end time.Time, metrics ...GatewayMetric) (Res, error) {
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = string(m)
	}
	params := Body{}.
		Set("gatewayId", gatewayID).
		Set("interval.start", start.UTC().Format(time.RFC3339)).
		Set("interval.end", end.UTC().Format(time.RFC3339)).
		Set("metrics", names)
	if err := params.Err(); err != nil {
		return Res{}, err
	}
	op := RPCOp("gatewayStatusMetrics", "metrics/getGatewayStatusMetrics", params.Res())
	return c.Do(ctx, op)
}
