// Package chart selects axes from result columns and renders terminal
// charts from the current result set.
package chart

import (
	"errors"
	"fmt"

	"github.com/askdb-io/askdb/internal/result"
)

// Type is the chart style.
type Type string

const (
	TypeLine Type = "line"
	TypeBar  Type = "bar"
)

// ParseType validates a chart type string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeLine, TypeBar:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown chart type %q (want line or bar)", s)
	}
}

// Selection names the axes and style for one chart. It is derived each
// time a chart is requested and never persisted.
type Selection struct {
	X    string
	Y    string
	Type Type
}

// ErrNoNumericColumn is returned when no column qualifies for the Y axis.
var ErrNoNumericColumn = errors.New("no numeric column available for the Y axis")

// XCandidates lists the X-axis choices: every column.
func XCandidates(rows result.Rows) []string {
	return rows.Columns
}

// YCandidates lists the Y-axis choices: columns whose value in every
// record is numeric.
func YCandidates(rows result.Rows) []string {
	return result.NumericColumns(rows)
}

// AutoSelect picks the first column as X and the first numeric column as
// Y, defaulting to a bar chart.
func AutoSelect(rows result.Rows) (Selection, error) {
	if len(rows.Columns) == 0 {
		return Selection{}, errors.New("result set has no columns")
	}
	numeric := YCandidates(rows)
	if len(numeric) == 0 {
		return Selection{}, ErrNoNumericColumn
	}
	return Selection{X: rows.Columns[0], Y: numeric[0], Type: TypeBar}, nil
}
