package result

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatValue converts a raw cell value to its display string. Numbers are
// grouped with locale thousands separators; nil becomes the literal NULL.
// This is presentation-only: the underlying result set is never modified.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if n {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return printer.Sprint(number.Decimal(n))
	case float32:
		return printer.Sprint(number.Decimal(n))
	case int:
		return printer.Sprint(number.Decimal(n))
	case int64:
		return printer.Sprint(number.Decimal(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return printer.Sprint(number.Decimal(i))
		}
		if f, err := n.Float64(); err == nil {
			return printer.Sprint(number.Decimal(f))
		}
		return n.String()
	case string:
		return n
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Label converts a column name to a display label: underscores become
// spaces and the first letter of each word is upper-cased. The remainder
// of each word is left untouched.
func Label(col string) string {
	words := strings.Split(strings.ReplaceAll(col, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PlainValue converts a cell value to an unstyled, locale-independent
// string for export. nil becomes the empty string.
func PlainValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case json.Number:
		return n.String()
	case string:
		return n
	default:
		return fmt.Sprintf("%v", v)
	}
}
