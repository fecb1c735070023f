package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdb-io/askdb/internal/output"
	"github.com/askdb-io/askdb/internal/result"
)

func salesRows() result.Rows {
	return result.Rows{
		Columns: []string{"product", "units", "note"},
		Records: []map[string]any{
			{"product": "widget", "units": 120.0, "note": "a"},
			{"product": "gadget", "units": 80.0, "note": "b"},
			{"product": "gizmo", "units": 40.0, "note": nil},
		},
	}
}

func TestAutoSelect(t *testing.T) {
	sel, err := AutoSelect(salesRows())
	require.NoError(t, err)

	assert.Equal(t, "product", sel.X)
	assert.Equal(t, "units", sel.Y)
	assert.Equal(t, TypeBar, sel.Type)
}

func TestAutoSelectNoNumericColumn(t *testing.T) {
	rows := result.Rows{
		Columns: []string{"name"},
		Records: []map[string]any{{"name": "x"}},
	}
	_, err := AutoSelect(rows)
	assert.ErrorIs(t, err, ErrNoNumericColumn)
}

func TestYCandidatesExcludesNonNumeric(t *testing.T) {
	assert.Equal(t, []string{"units"}, YCandidates(salesRows()))
}

func TestRenderDestroysPriorChart(t *testing.T) {
	a := NewAdapter(output.ThemeDark)
	rows := salesRows()

	first, err := a.Render(rows, Selection{X: "product", Y: "units", Type: TypeBar})
	require.NoError(t, err)
	assert.False(t, first.Closed())
	assert.Same(t, first, a.Current())

	second, err := a.Render(rows, Selection{X: "product", Y: "units", Type: TypeLine})
	require.NoError(t, err)

	assert.True(t, first.Closed(), "prior chart must be destroyed before a new one is built")
	assert.False(t, second.Closed())
	assert.Same(t, second, a.Current())
	assert.Empty(t, first.View())
	assert.NotEmpty(t, second.View())
}

func TestRenderFailureStillClosesPrior(t *testing.T) {
	a := NewAdapter(output.ThemeDark)
	rows := salesRows()

	first, err := a.Render(rows, Selection{X: "product", Y: "units", Type: TypeBar})
	require.NoError(t, err)

	_, err = a.Render(rows, Selection{X: "product", Y: "note", Type: TypeBar})
	require.Error(t, err)
	assert.True(t, first.Closed())
	assert.Nil(t, a.Current())
}

func TestSetThemeDestroysChart(t *testing.T) {
	a := NewAdapter(output.ThemeDark)
	c, err := a.Render(salesRows(), Selection{X: "product", Y: "units", Type: TypeBar})
	require.NoError(t, err)

	a.SetTheme(output.ThemeLight)
	assert.True(t, c.Closed())
	assert.Nil(t, a.Current())
}

func TestRenderBarOutput(t *testing.T) {
	a := NewAdapter(output.ThemeLight)
	c, err := a.Render(salesRows(), Selection{X: "product", Y: "units", Type: TypeBar})
	require.NoError(t, err)

	view := c.View()
	assert.Contains(t, view, "widget")
	assert.Contains(t, view, "120")
	assert.Contains(t, view, "units by product")
}

func TestRenderRejectsUnknownColumns(t *testing.T) {
	a := NewAdapter(output.ThemeDark)

	_, err := a.Render(salesRows(), Selection{X: "missing", Y: "units", Type: TypeBar})
	assert.Error(t, err)

	_, err = a.Render(salesRows(), Selection{X: "product", Y: "product", Type: TypeBar})
	assert.Error(t, err)
}

func TestRenderEmptyRows(t *testing.T) {
	a := NewAdapter(output.ThemeDark)
	_, err := a.Render(result.Rows{Columns: []string{"a"}}, Selection{X: "a", Y: "a", Type: TypeBar})
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	for _, ok := range []string{"line", "bar"} {
		_, err := ParseType(ok)
		assert.NoError(t, err)
	}
	_, err := ParseType("pie")
	assert.Error(t, err)
}
