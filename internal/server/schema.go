package server

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
)

// columnSchema matches the /api/schema column shape.
type columnSchema struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// tableSchema matches the /api/schema table shape.
type tableSchema struct {
	Columns     []columnSchema    `json:"columns"`
	PrimaryKeys []string          `json:"primary_keys,omitempty"`
	ForeignKeys map[string]string `json:"foreign_keys,omitempty"`
}

func (t tableSchema) columnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = strings.ToLower(c.Name)
	}
	return names
}

func tableNames(schema map[string]tableSchema) []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// introspect reads the live database schema, excluding internal tables.
func (s *Server) introspect(ctx context.Context) (map[string]tableSchema, error) {
	if s.driver == "pgx" {
		return s.introspectPostgres(ctx)
	}
	return s.introspectSQLite(ctx)
}

func (s *Server) introspectSQLite(ctx context.Context) (map[string]tableSchema, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table'
		AND name NOT LIKE 'sqlite_%'
		AND name != 'query_log'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	schema := make(map[string]tableSchema, len(names))
	for _, name := range names {
		table, err := s.sqliteTableInfo(ctx, name)
		if err != nil {
			return nil, err
		}
		schema[name] = table
	}
	return schema, nil
}

func (s *Server) sqliteTableInfo(ctx context.Context, name string) (tableSchema, error) {
	var table tableSchema

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return table, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid, notNull, pk int
			colName, colType string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
			return table, err
		}
		table.Columns = append(table.Columns, columnSchema{
			Name:     colName,
			Type:     colType,
			Nullable: notNull == 0,
		})
		if pk > 0 {
			table.PrimaryKeys = append(table.PrimaryKeys, colName)
		}
	}
	if err := rows.Err(); err != nil {
		return table, err
	}

	fks, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%q)", name))
	if err != nil {
		return table, nil //nolint:nilerr // foreign keys are optional detail
	}
	defer func() { _ = fks.Close() }()

	for fks.Next() {
		var (
			id, seq                         int
			refTable, from, to              string
			onUpdate, onDelete, matchClause string
		)
		if err := fks.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &matchClause); err != nil {
			continue
		}
		if table.ForeignKeys == nil {
			table.ForeignKeys = make(map[string]string)
		}
		table.ForeignKeys[from] = refTable + "." + to
	}
	_ = fks.Err()

	return table, nil
}

func (s *Server) introspectPostgres(ctx context.Context) (map[string]tableSchema, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT table_name, column_name, data_type, is_nullable
		FROM information_schema.columns
		WHERE table_schema = 'public'
		ORDER BY table_name, ordinal_position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to introspect schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	schema := make(map[string]tableSchema)
	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return nil, err
		}
		t := schema[table]
		t.Columns = append(t.Columns, columnSchema{
			Name:     column,
			Type:     dataType,
			Nullable: nullable == "YES",
		})
		schema[table] = t
	}
	return schema, rows.Err()
}
