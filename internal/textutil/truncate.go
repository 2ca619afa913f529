// Package textutil holds rune-aware string helpers shared by extraction and segmentation.
package textutil

import "unicode/utf8"

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate returns at most n characters of s, never splitting a multi-byte rune.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
