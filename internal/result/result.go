// Package result holds query result sets and the classification and
// formatting logic used to display them.
package result

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Rows is an ordered result set. Columns preserves the column order the
// backend returned; every record shares the same column set.
type Rows struct {
	Columns []string
	Records []map[string]any
}

// Len returns the number of records.
func (r Rows) Len() int { return len(r.Records) }

// Kind classifies a result set for rendering.
type Kind int

const (
	// KindEmpty is a result set with no records.
	KindEmpty Kind = iota
	// KindAggregate is a single-row summary (e.g. SELECT COUNT(*)).
	KindAggregate
	// KindTabular is everything else.
	KindTabular
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindAggregate:
		return "aggregate"
	default:
		return "tabular"
	}
}

// aggregateHints are matched as case-insensitive substrings of column names.
// The heuristic is intentionally loose; the backend provides no explicit
// aggregate flag, so this must stay compatible with what it emits.
var aggregateHints = []string{"count", "sum", "avg", "min", "max", "average", "total"}

// Classify decides how a result set should be rendered. A set is an
// aggregate only when it has exactly one record and at least one column
// name contains an aggregate-function hint.
func Classify(rows Rows) Kind {
	if rows.Len() == 0 {
		return KindEmpty
	}
	if rows.Len() != 1 {
		return KindTabular
	}
	for _, col := range rows.Columns {
		lower := strings.ToLower(col)
		for _, hint := range aggregateHints {
			if strings.Contains(lower, hint) {
				return KindAggregate
			}
		}
	}
	return KindTabular
}

// NumericColumns returns the columns whose value in every record is a
// native number or parses as a finite float. These are the candidates for
// a chart's Y axis.
func NumericColumns(rows Rows) []string {
	var cols []string
	for _, col := range rows.Columns {
		numeric := rows.Len() > 0
		for _, rec := range rows.Records {
			if _, ok := ToFloat(rec[col]); !ok {
				numeric = false
				break
			}
		}
		if numeric {
			cols = append(cols, col)
		}
	}
	return cols
}

// ToFloat converts a cell value to a float64 when it is a native number or
// a string that parses as a finite float.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
