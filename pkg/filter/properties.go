package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SearchPropertyType is the declared type of a searchable property.
type SearchPropertyType string

const (
	TypeFloat     SearchPropertyType = "FLOAT"
	TypeInteger   SearchPropertyType = "INTEGER"
	TypeIPAddress SearchPropertyType = "IP_ADDRESS"
	TypeLong      SearchPropertyType = "LONG"
	TypeString    SearchPropertyType = "STRING"
	TypeTimestamp SearchPropertyType = "TIMESTAMP"
	TypeBoolean   SearchPropertyType = "BOOLEAN"
)

// SearchProperty describes a property the service can filter on.
type SearchProperty struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Type    SearchPropertyType `json:"type"`
	OrderBy bool               `json:"orderBy"`
	IPLike  bool               `json:"iplike"`
	// Values maps allowed values to display labels for enumerated properties.
	Values map[string]string `json:"values,omitempty"`
}

// DisplayName returns the label if present, otherwise the ID.
func (p SearchProperty) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// TypeDescription returns a short human-readable type.
func (p SearchProperty) TypeDescription() string {
	desc := strings.ToLower(strings.ReplaceAll(string(p.Type), "_", " "))
	if desc == "" {
		desc = "unknown"
	}
	if len(p.Values) > 0 {
		desc += fmt.Sprintf(" (%d values)", len(p.Values))
	}
	return desc
}

// PropertyLister fetches search properties from an endpoint relative to the service root.
type PropertyLister interface {
	ListProperties(ctx context.Context, endpoint string) ([]SearchProperty, error)
}

// PropertyListerFunc adapts a function to the PropertyLister interface.
type PropertyListerFunc func(ctx context.Context, endpoint string) ([]SearchProperty, error)

// ListProperties implements PropertyLister.
func (f PropertyListerFunc) ListProperties(ctx context.Context, endpoint string) ([]SearchProperty, error) {
	return f(ctx, endpoint)
}

// ParseSearchProperties decodes a {"searchProperty": [...]} document.
func ParseSearchProperties(data []byte) ([]SearchProperty, error) {
	var doc struct {
		SearchProperty []SearchProperty `json:"searchProperty"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("filter: decode search properties: %w", err)
	}
	return doc.SearchProperty, nil
}
