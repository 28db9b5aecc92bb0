// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package vco

import (
	"context"
)

// PropertyDataType values a system property can carry
const (
	PropertyTypeString   = "STRING"
	PropertyTypeNumber   = "NUMBER"
	PropertyTypeBoolean  = "BOOLEAN"
	PropertyTypeJSON     = "JSON"
	PropertyTypeDate     = "DATE"
	PropertyTypeDatetime = "DATETIME"
)

// SystemProperty is a global orchestrator configuration property
type SystemProperty struct {
	ID           int       `json:"id,omitempty"`
	Name         string    `json:"name"`
	Value        string    `json:"value"`
	DefaultValue string    `json:"defaultValue,omitempty"`
	DataType     string    `json:"dataType"`
	Description  string    `json:"description,omitempty"`
	IsReadOnly   TinyBool  `json:"isReadOnly"`
	IsPassword   TinyBool  `json:"isPassword"`
	Created      Timestamp `json:"created,omitzero"`
	Modified     Timestamp `json:"modified,omitzero"`

	Extra Extra `json:"-"`
}

// ListSystemProperties fetches all system properties
func (c *Client) ListSystemProperties(ctx context.Context) ([]SystemProperty, error) {
	op := RestOp("listSystemProperties", "systemProperty/getSystemProperties", "")
	res, err := c.Do(ctx, op)
	if err != nil {
		return nil, err
	}

	page, err := parseListPage("listSystemProperties", res)
	if err != nil {
		return nil, err
	}
	properties := make([]SystemProperty, 0, len(page.items))
	for _, item := range page.items {
		var p SystemProperty
		if err := Unmarshal([]byte(item.Raw), &p); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, nil
}

// SystemPropertyMap fetches all system properties keyed by name
func (c *Client) SystemPropertyMap(ctx context.Context) (map[string]SystemProperty, error) {
	properties, err := c.ListSystemProperties(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]SystemProperty, len(properties))
	for _, p := range properties {
		m[p.Name] = p
	}
	return m, nil
}

// SetSystemProperty creates a system property or updates it if one with the
// same name exists
func (c *Client) SetSystemProperty(ctx context.Context, property SystemProperty) error {
	params, err := c.Marshal(&property)
	if err != nil {
		return err
	}
	op := RestOp("setSystemProperty", "systemProperty/insertOrUpdateSystemProperty", string(params))
	_, err = c.Do(ctx, op)
	return err
}
