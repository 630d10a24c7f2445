package literal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dump renders v as PHP literal source that parses back to the same value.
func Dump(v Value) string {
	var sb strings.Builder
	dump(&sb, v)
	return sb.String()
}

func dump(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.boolean {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.integer, 10))
	case KindFloat:
		sb.WriteString(formatFloat(v.float))
	case KindString:
		sb.WriteString(quote(v.text))
	case KindList:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			dump(sb, item)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('[')
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(formatKey(e.Key))
			sb.WriteString(" => ")
			dump(sb, e.Value)
		}
		sb.WriteByte(']')
	case KindRaw:
		sb.WriteString(v.text)
	default:
		panic(fmt.Sprintf("literal: unknown kind %v", v.kind))
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if mantissa, exp, ok := strings.Cut(s, "e"); ok {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "E" + sign + digits
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatKey prints canonical decimal keys bare, PHP normalizes them to ints anyway.
func formatKey(k string) string {
	if i, err := strconv.ParseInt(k, 10, 64); err == nil && strconv.FormatInt(i, 10) == k {
		return k
	}
	return quote(k)
}

func quote(s string) string {
	if !hasControl(s) {
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(s) + "'"
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '$':
			sb.WriteString(`\$`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		case '\f':
			sb.WriteString(`\f`)
		case 0x1b:
			sb.WriteString(`\e`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&sb, `\x%02X`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func hasControl(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] == 0x7f {
			return true
		}
	}
	return false
}
