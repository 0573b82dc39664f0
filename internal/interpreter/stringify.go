package interpreter

import (
	"fmt"
	"strconv"
)

// Stringify renders a Value for `print` and REPL auto-print, per spec.md
// §4.6.
func Stringify(v any) string {
	if v == nil {
		return "nil"
	}
	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if len(s) > 2 && s[len(s)-2:] == ".0" {
			s = s[:len(s)-2]
		}
		return s
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return ""
	}
}
