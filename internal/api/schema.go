package api

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// Column describes one table column.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// ColumnList accepts both wire shapes for a table's columns: an ordered
// array of {name, type} objects, or a mapping of column name to
// {type, nullable}. The mapping shape is normalized to name order.
type ColumnList []Column

func (cl *ColumnList) UnmarshalJSON(data []byte) error {
	var list []struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Nullable *bool  `json:"nullable"`
	}
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(ColumnList, 0, len(list))
		for _, c := range list {
			nullable := true
			if c.Nullable != nil {
				nullable = *c.Nullable
			}
			out = append(out, Column{Name: c.Name, Type: c.Type, Nullable: nullable})
		}
		*cl = out
		return nil
	}

	var m map[string]struct {
		Type     string `json:"type"`
		Nullable *bool  `json:"nullable"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("unsupported columns shape: %w", err)
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(ColumnList, 0, len(names))
	for _, name := range names {
		c := m[name]
		nullable := true
		if c.Nullable != nil {
			nullable = *c.Nullable
		}
		out = append(out, Column{Name: name, Type: c.Type, Nullable: nullable})
	}
	*cl = out
	return nil
}

// Table describes one table in the backend schema.
type Table struct {
	Columns     ColumnList        `json:"columns"`
	PrimaryKeys []string          `json:"primary_keys"`
	ForeignKeys map[string]string `json:"foreign_keys"`
}

// SchemaResponse maps table name to its description.
type SchemaResponse map[string]Table

// TableNames returns the table names in sorted order.
func (s SchemaResponse) TableNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema fetches the backend schema. Both the bare mapping shape and the
// older {"schema": [{name, columns}]} wrapper are accepted.
func (c *Client) Schema(ctx context.Context) (SchemaResponse, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/schema", &raw); err != nil {
		return nil, err
	}

	// Older backends wrap the schema in a list of named tables.
	var wrapper struct {
		Schema []struct {
			Name    string     `json:"name"`
			Columns ColumnList `json:"columns"`
		} `json:"schema"`
	}
	if err := json.Unmarshal(raw, &wrapper); err == nil && len(wrapper.Schema) > 0 {
		out := make(SchemaResponse, len(wrapper.Schema))
		for _, t := range wrapper.Schema {
			out[t.Name] = Table{Columns: t.Columns}
		}
		return out, nil
	}

	var out SchemaResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("malformed schema response: %w", err)
	}
	return out, nil
}
