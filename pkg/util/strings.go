package util

import (
	"strconv"
	"strings"
)

// NormalizeSymbol uppercases and trims a raw ticker and rewrites class
// separators ("BRK.B" -> "BRK-B"). Returns "" for rows that are not symbols,
// such as a scraped header cell.
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || s == "SYMBOL" {
		return ""
	}
	return strings.ReplaceAll(s, ".", "-")
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
