package commands

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/askdb-io/askdb/internal/api"
	"github.com/askdb-io/askdb/internal/output"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema [table]",
		Short: "Show the database schema",
		Long: `Show the backend database schema: every table with its columns,
types, keys, and relationships. Pass a table name to show only that table.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(cmd)

			schema, err := s.client.Schema(cmd.Context())
			if err != nil {
				// Schema is supporting context, not the main task; show
				// the failure inline instead of aborting.
				renderAPIError(s.renderer, err)
				return nil
			}

			if len(args) == 1 {
				filtered, ok := filterSchema(schema, args[0])
				if !ok {
					s.renderer.Errorf("table %q not found", args[0])
					return nil
				}
				schema = filtered
			}

			return renderSchema(s.renderer, schema)
		},
	}
}

// filterSchema narrows a schema to a single table.
func filterSchema(schema api.SchemaResponse, name string) (api.SchemaResponse, bool) {
	t, ok := schema[name]
	if !ok {
		return nil, false
	}
	return api.SchemaResponse{name: t}, true
}

func renderSchema(r *output.Renderer, schema api.SchemaResponse) error {
	if r.Mode() == output.ModeJSON {
		enc := json.NewEncoder(r.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	}

	for _, name := range schema.TableNames() {
		tbl := schema[name]
		r.Println(r.Styles().Title.Render(name))

		t := table.NewWriter()
		t.SetOutputMirror(r.Writer())
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Key"})

		pk := make(map[string]bool, len(tbl.PrimaryKeys))
		for _, k := range tbl.PrimaryKeys {
			pk[k] = true
		}

		for _, col := range tbl.Columns {
			nullable := "YES"
			if !col.Nullable {
				nullable = "NO"
			}
			var keys []string
			if pk[col.Name] {
				keys = append(keys, "PK")
			}
			if ref, ok := tbl.ForeignKeys[col.Name]; ok {
				keys = append(keys, "FK -> "+ref)
			}
			t.AppendRow(table.Row{col.Name, col.Type, nullable, strings.Join(keys, ", ")})
		}
		t.Render()
		r.Println()
	}
	return nil
}
