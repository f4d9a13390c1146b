package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// today returns the current date in the backend's YYYY-MM-DD format.
func today() string {
	return time.Now().Format("2006-01-02")
}

// formatMoney renders an amount in whole sums with thousand separators.
func formatMoney(amount float64) string {
	n := int64(amount)
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, " ")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padCell left-aligns s into a cell of width w, truncating when too long.
func padCell(s string, w int) string {
	s = truncStr(s, w)
	if n := w - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
