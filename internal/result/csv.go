package result

import (
	"fmt"
	"io"
	"strings"
)

// ExportCSV writes the result set as CSV: a header row of raw column
// names, then one line per record. Values are quoted (with internal quotes
// doubled) only when they contain a comma, quote, or newline; nil values
// become empty fields. No locale formatting is applied.
func ExportCSV(w io.Writer, rows Rows) error {
	if _, err := fmt.Fprintf(w, "%s\n", strings.Join(rows.Columns, ",")); err != nil {
		return err
	}
	for _, rec := range rows.Records {
		fields := make([]string, len(rows.Columns))
		for i, col := range rows.Columns {
			fields[i] = escapeCSV(PlainValue(rec[col]))
		}
		if _, err := fmt.Fprintf(w, "%s\n", strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
