// Package types provides shared types for gbfs-validator.
// These types are used across multiple packages and are designed for external consumption.
package types

import "encoding/json"

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a value must be handed to code that only understands the
// generic JSON shapes (map[string]any, []any), such as the jq engine or an
// MCP tool output field typed as any.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// VersionInfo describes one supported GBFS version and the feed files it
// carries schemas for.
type VersionInfo struct {
	Version string   `json:"version"`
	Feeds   []string `json:"feeds"`
}
