package casefmt

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"aegis/internal/gen"
)

// Repr prints a value as a Python literal.
func Repr(v any) string {
	var sb strings.Builder
	writeRepr(&sb, v)
	return sb.String()
}

func writeRepr(sb *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("None")
	case bool:
		if x {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case int64:
		sb.WriteString(strconv.FormatInt(x, 10))
	case int:
		sb.WriteString(strconv.Itoa(x))
	case float64:
		sb.WriteString(formatFloat(x))
	case string:
		writeStr(sb, x)
	case gen.List:
		writeSeq(sb, "[", "]", x)
	case gen.Tuple:
		if len(x) == 1 {
			sb.WriteByte('(')
			writeRepr(sb, x[0])
			sb.WriteString(",)")
			return
		}
		writeSeq(sb, "(", ")", x)
	case gen.Set:
		if len(x) == 0 {
			sb.WriteString("set()")
			return
		}
		writeSeq(sb, "{", "}", x)
	case gen.Dict:
		writeDict(sb, x)
	case []any:
		writeSeq(sb, "[", "]", x)
	case map[string]any:
		writeDict(sb, x)
	default:
		sb.WriteString("<?>")
	}
}

func writeSeq(sb *strings.Builder, open, closeTok string, items []any) {
	sb.WriteString(open)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeRepr(sb, it)
	}
	sb.WriteString(closeTok)
}

func writeDict(sb *strings.Builder, d map[string]any) {
	sb.WriteByte('{')
	for i, k := range slices.Sorted(maps.Keys(d)) {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeStr(sb, k)
		sb.WriteString(": ")
		writeRepr(sb, d[k])
	}
	sb.WriteByte('}')
}

// writeStr uses single quotes, like repr() for strings without an apostrophe.
func writeStr(sb *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	sb.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(quote):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r < 0x20:
			sb.WriteString(`\x`)
			sb.WriteString(strconv.FormatInt(int64(r)+0x100, 16)[1:])
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
}

// formatFloat uses the shortest form and keeps ".0" on whole numbers.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}
