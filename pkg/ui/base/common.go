package base

import "strings"

// TruncateString flattens s onto one line and truncates it to maxWidth
// runes with an ellipsis.
func TruncateString(s string, maxWidth int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= maxWidth {
		return s
	}
	if maxWidth < 3 {
		return string(r[:maxWidth])
	}
	return string(r[:maxWidth-3]) + "..."
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
