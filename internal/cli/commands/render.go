package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/askdb-io/askdb/internal/api"
	"github.com/askdb-io/askdb/internal/output"
	"github.com/askdb-io/askdb/internal/result"
)

// renderResponse shows the generated SQL and the result set.
func renderResponse(r *output.Renderer, resp *api.QueryResponse) error {
	if r.Mode() == output.ModeTable && resp.SQL != "" {
		r.Println(r.Styles().Muted.Render("SQL:"), r.Styles().SQL.Render(resp.SQL))
		r.Println()
	}
	if resp.Truncated {
		r.Println(r.Styles().Warning.Render(
			fmt.Sprintf("Results truncated to %d rows.", resp.Rows.Len())))
	}
	return renderRows(r, resp.Rows)
}

// renderRows dispatches on the output mode. The table mode additionally
// classifies the result: empty sets get a placeholder line and single-row
// aggregates are shown as summary cards instead of a table.
func renderRows(r *output.Renderer, rows result.Rows) error {
	switch r.Mode() {
	case output.ModeJSON:
		return renderJSON(r.Writer(), rows)
	case output.ModeCSV:
		return result.ExportCSV(r.Writer(), rows)
	case output.ModeMD:
		return renderMarkdown(r.Writer(), rows)
	}

	switch result.Classify(rows) {
	case result.KindEmpty:
		r.Println(r.Styles().Muted.Render("Query executed successfully. No results to display."))
		return nil
	case result.KindAggregate:
		renderCards(r, rows)
		return nil
	default:
		renderTable(r, rows)
		return nil
	}
}

// renderCards shows a single-row aggregate as one card per column, with
// the display label above the formatted value.
func renderCards(r *output.Renderer, rows result.Rows) {
	rec := rows.Records[0]
	cards := make([]string, 0, len(rows.Columns))
	for _, col := range rows.Columns {
		body := lipgloss.JoinVertical(lipgloss.Center,
			r.Styles().CardLabel.Render(result.Label(col)),
			r.Styles().CardValue.Render(result.FormatValue(rec[col])),
		)
		cards = append(cards, r.Styles().CardBox.Render(body))
	}
	r.Println(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func renderTable(r *output.Renderer, rows result.Rows) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(rows.Columns))
	for i, col := range rows.Columns {
		headerRow[i] = result.Label(col)
	}
	t.AppendHeader(headerRow)

	for _, rec := range rows.Records {
		row := make(table.Row, len(rows.Columns))
		for i, col := range rows.Columns {
			row[i] = result.FormatValue(rec[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	r.Printf("(%d rows)\n", rows.Len())
}

func renderJSON(w io.Writer, rows result.Rows) error {
	records := rows.Records
	if records == nil {
		records = []map[string]any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderMarkdown(w io.Writer, rows result.Rows) error {
	if rows.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(rows.Columns, " | "))
	seps := make([]string, len(rows.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, rec := range rows.Records {
		values := make([]string, len(rows.Columns))
		for i, col := range rows.Columns {
			values[i] = result.FormatValue(rec[col])
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

// renderAPIError prints a backend error as a styled panel on the error
// writer without aborting the command, mirroring inline error display.
func renderAPIError(r *output.Renderer, err error) {
	r.Errorf("%v", err)
}
