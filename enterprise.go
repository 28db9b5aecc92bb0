// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
	"iter"
)

// Enterprise is a customer tenant on the orchestrator
type Enterprise struct {
	ID                    int       `json:"id"`
	NetworkID             int       `json:"networkId"`
	GatewayPoolID         int       `json:"gatewayPoolId"`
	Name                  string    `json:"name"`
	LogicalID             string    `json:"logicalId"`
	AccountNumber         string    `json:"accountNumber"`
	Description           string    `json:"description,omitempty"`
	Domain                string    `json:"domain,omitempty"`
	ContactName           string    `json:"contactName,omitempty"`
	ContactEmail          string    `json:"contactEmail,omitempty"`
	City                  string    `json:"city,omitempty"`
	Country               string    `json:"country,omitempty"`
	Timezone              string    `json:"timezone"`
	Locale                string    `json:"locale"`
	AlertsEnabled         TinyBool  `json:"alertsEnabled"`
	OperatorAlertsEnabled TinyBool  `json:"operatorAlertsEnabled"`
	Created               Timestamp `json:"created"`
	Modified              Timestamp `json:"modified"`

	Extra Extra `json:"-"`
}

// ListEnterprises returns a lazy sequence over all enterprises on the
// network, fetching pages on demand
func (c *Client) ListEnterprises(ctx context.Context) iter.Seq2[Enterprise, error] {
	op := RestOp("listEnterprises", "network/getNetworkEnterprises", "")
	return list[Enterprise](c, ctx, op)
}

// GetEnterprise fetches a single enterprise by id
func (c *Client) GetEnterprise(ctx context.Context, enterpriseID int) (Enterprise, error) {
	params := Body{}.Set("enterpriseId", enterpriseID)
	op := RestOp("getEnterprise", "enterprise/getEnterprise", params.Res())
	return getOne[Enterprise](c, ctx, op)
}

// CreateEnterprise creates a new enterprise and returns it with
// server-assigned fields populated
func (c *Client) CreateEnterprise(ctx context.Context, enterprise Enterprise) (Enterprise, error) {
	params, err := c.Marshal(&enterprise)
	if err != nil {
		return Enterprise{}, err
	}
	op := RestOp("createEnterprise", "enterprise/insertEnterprise", string(params))
	return getOne[Enterprise](c, ctx, op)
}

// ModifyEnterprise updates an existing enterprise via an "_update" document
func (c *Client) ModifyEnterprise(ctx context.Context, enterprise Enterprise) error {
	update, err := c.Marshal(&enterprise)
	if err != nil {
		return err
	}
	params := Body{}.
		Set("enterpriseId", enterprise.ID).
		SetRaw("_update", string(update))
	if err := params.Err(); err != nil {
		return err
	}
	op := RestOp("modifyEnterprise", "enterprise/updateEnterprise", params.Res())
	_, err = c.Do(ctx, op)
	return err
}

// DeleteEnterprise removes an enterprise
func (c *Client) DeleteEnterprise(ctx context.Context, enterpriseID int) error {
	params := Body{}.Set("enterpriseId", enterpriseID)
	op := RestOp("deleteEnterprise", "enterprise/deleteEnterprise", params.Res())
	_, err := c.Do(ctx, op)
	return err
}
