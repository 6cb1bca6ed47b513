package instrument

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/unkn0wn-root/replaycache/codec"
)

// ArgsRepr renders call arguments as a parenthesised, comma-separated list with a
// trailing comma after a lone element: ("a",) renders as ('a',), (1, 2) as (1, 2).
// Text is single-quoted (double-quoted when it contains only single quotes),
// byte slices get a b prefix, integers use their stored decimal form, floats keep
// a fraction or exponent so 1.0 never reads as 1, and anything else falls back
// to fmt's %v.
func ArgsRepr(args ...any) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(repr(a))
	}
	if len(args) == 1 {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return sb.String()
}

// Text returns the stored form of a call result: text and bytes as-is, numbers
// in decimal, anything else via fmt's %v.
func Text(v any) []byte {
	if b, err := codec.Scalar(v); err == nil {
		return b
	}
	return []byte(fmt.Sprint(v))
}

func repr(v any) string {
	switch v := v.(type) {
	case string:
		return quoteText(v)
	case []byte:
		return "b" + quoteBytes(v)
	case float64:
		return floatRepr(v, 64)
	case float32:
		return floatRepr(float64(v), 32)
	}
	if b, err := codec.Scalar(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// floatRepr prints the shortest round-tripping form: exponent notation below
// 1e-4 or from 1e16 up, otherwise positional with at least one fractional digit.
func floatRepr(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(f, 'e', -1, bitSize)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if f != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func pickQuote(s string) byte {
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		return '"'
	}
	return '\''
}

func writeEscape(sb *strings.Builder, c byte, q byte) bool {
	switch c {
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\r':
		sb.WriteString(`\r`)
	case '\t':
		sb.WriteString(`\t`)
	case q:
		sb.WriteByte('\\')
		sb.WriteByte(q)
	default:
		return false
	}
	return true
}

func quoteText(s string) string {
	q := pickQuote(s)
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for i := 0; i < len(s); {
		r, w := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && w == 1:
			fmt.Fprintf(&sb, `\x%02x`, s[i])
		case r < utf8.RuneSelf && writeEscape(&sb, byte(r), q):
		case strconv.IsPrint(r):
			sb.WriteString(s[i : i+w])
		case r <= 0xff:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
		i += w
	}
	sb.WriteByte(q)
	return sb.String()
}

func quoteBytes(b []byte) string {
	q := pickQuote(string(b))
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte(q)
	for _, c := range b {
		switch {
		case writeEscape(&sb, c, q):
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
