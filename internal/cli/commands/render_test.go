package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb-io/askdb/internal/history"
	"github.com/askdb-io/askdb/internal/output"
	"github.com/askdb-io/askdb/internal/result"
)

func newTestRenderer(mode output.Mode) (*output.Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return output.NewRenderer(&buf, &buf, mode, output.ThemeDark), &buf
}

func TestRenderRowsEmpty(t *testing.T) {
	r, buf := newTestRenderer(output.ModeTable)

	err := renderRows(r, result.Rows{Columns: []string{"id"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results to display")
}

func TestRenderRowsAggregateCards(t *testing.T) {
	r, buf := newTestRenderer(output.ModeTable)

	rows := result.Rows{
		Columns: []string{"total_count"},
		Records: []map[string]any{{"total_count": float64(1234567)}},
	}
	err := renderRows(r, rows)
	require.NoError(t, err)

	// Card shows the display label and the locale-grouped value, not a table.
	assert.Contains(t, buf.String(), "Total Count")
	assert.Contains(t, buf.String(), "1,234,567")
	assert.NotContains(t, buf.String(), "(1 rows)")
}

func TestRenderRowsTable(t *testing.T) {
	r, buf := newTestRenderer(output.ModeTable)

	rows := result.Rows{
		Columns: []string{"customer_name", "order_count"},
		Records: []map[string]any{
			{"customer_name": "Acme", "order_count": float64(3)},
			{"customer_name": "Globex", "order_count": nil},
		},
	}
	err := renderRows(r, rows)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Customer Name")
	assert.Contains(t, out, "Order Count")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderRowsMarkdown(t *testing.T) {
	r, buf := newTestRenderer(output.ModeMD)

	rows := result.Rows{
		Columns: []string{"a", "b"},
		Records: []map[string]any{{"a": "x", "b": float64(1)}},
	}
	require.NoError(t, renderRows(r, rows))

	assert.Equal(t, "| a | b |\n| --- | --- |\n| x | 1 |\n", buf.String())
}

func TestRenderRowsCSV(t *testing.T) {
	r, buf := newTestRenderer(output.ModeCSV)

	rows := result.Rows{
		Columns: []string{"a", "b"},
		Records: []map[string]any{{"a": float64(1), "b": "x,y"}},
	}
	require.NoError(t, renderRows(r, rows))
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())
}

func TestRenderRowsJSON(t *testing.T) {
	r, buf := newTestRenderer(output.ModeJSON)

	require.NoError(t, renderRows(r, result.Rows{Columns: []string{"a"}}))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestRenderHistoryIndexes(t *testing.T) {
	r, buf := newTestRenderer(output.ModeTable)

	now := time.Now()
	entries := []history.Entry{
		{Query: "newest", Timestamp: now},
		{Query: "oldest", Timestamp: now.Add(-time.Hour)},
	}
	require.NoError(t, renderHistory(r, entries))

	out := buf.String()
	// Newest entry is listed first with the highest storage index.
	assert.Less(t, strings.Index(out, "newest"), strings.Index(out, "oldest"))
	assert.Contains(t, out, "1h ago")
}

func TestRenderHistoryEmpty(t *testing.T) {
	r, buf := newTestRenderer(output.ModeTable)
	require.NoError(t, renderHistory(r, nil))
	assert.Contains(t, buf.String(), "No queries yet")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a ver...", truncate("a very long string", 8))

	// Cuts on rune boundaries, not bytes.
	assert.Equal(t, "売上高を表...", truncate("売上高を表示してください", 8))
	assert.True(t, utf8.ValidString(truncate("café déjà vu encore une fois", 10)))
}
