package api

import (
	"context"
	"encoding/json"
	"fmt"
)

// ExampleGroup is a category of example questions.
type ExampleGroup struct {
	Category string   `json:"category"`
	Queries  []string `json:"queries"`
}

// Examples fetches the example query catalog. Entries may arrive already
// grouped ({category, queries}) or flat ({category, query}); flat entries
// are grouped by category, preserving first-seen order. A bare array and
// the {"examples": [...]} wrapper are both accepted.
func (c *Client) Examples(ctx context.Context) ([]ExampleGroup, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/examples", &raw); err != nil {
		return nil, err
	}

	var wrapper struct {
		Examples json.RawMessage `json:"examples"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Examples) > 0 {
		raw = wrapper.Examples
	}

	var entries []struct {
		Category string   `json:"category"`
		Queries  []string `json:"queries"`
		Query    string   `json:"query"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("malformed examples response: %w", err)
	}

	var groups []ExampleGroup
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, ExampleGroup{Category: e.Category})
		}
		groups[i].Queries = append(groups[i].Queries, e.Queries...)
		if e.Query != "" {
			groups[i].Queries = append(groups[i].Queries, e.Query)
		}
	}
	return groups, nil
}
