package post

import (
	"strings"
	"unicode/utf8"
)

// ellipsis is appended to truncated summaries.
const ellipsis = "..."

// ExtractSummary truncates plain text to at most maxLength characters (runes),
// cutting at the last space inside that prefix and appending "...".
// Text that already fits is returned unchanged. A prefix without any space
// is cut hard at maxLength.
func ExtractSummary(text string, maxLength int) string {
	if text == "" {
		return ""
	}

	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	truncated := truncateRunes(text, maxLength)
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace == -1 {
		return truncated + ellipsis
	}

	return truncated[:lastSpace] + ellipsis
}

// Summarize strips markdown and extracts a summary in one step.
func Summarize(markdown string, maxLength int) string {
	return ExtractSummary(StripMarkdown(markdown), maxLength)
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
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
