package api

import "bytes"

// sanitizeNonFinite rewrites bare NaN, Infinity, and -Infinity tokens to
// null so the body parses as standard JSON. Tokens inside string values
// are left untouched; the scanner tracks string state and escapes rather
// than doing a blind text substitution.
func sanitizeNonFinite(b []byte) []byte {
	if !bytes.Contains(b, []byte("NaN")) && !bytes.Contains(b, []byte("Infinity")) {
		return b
	}

	var out bytes.Buffer
	out.Grow(len(b))
	inString := false

	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			out.WriteByte(c)
			if c == '\\' && i+1 < len(b) {
				i++
				out.WriteByte(b[i])
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == 'N' && bytes.HasPrefix(b[i:], []byte("NaN")):
			out.WriteString("null")
			i += 2
		case c == 'I' && bytes.HasPrefix(b[i:], []byte("Infinity")):
			out.WriteString("null")
			i += 7
		case c == '-' && bytes.HasPrefix(b[i:], []byte("-Infinity")):
			out.WriteString("null")
			i += 8
		default:
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
