package post

import (
	"strings"
	"time"
	"unicode/utf8"
)

// FormatTitle turns a hyphenated slug fragment into a display title.
// Example: "my-first-post" -> "My First Post"
//
// Only the first character of each word is changed; the rest is kept as written,
// so "top-10-tips" becomes "Top 10 Tips" and "go-HTTP" becomes "Go HTTP".
func FormatTitle(slug string) string {
	slug = strings.TrimSuffix(slug, ".md")
	if slug == "" {
		return ""
	}

	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// FormatDate renders a YYYY-MM-DD date for display, e.g. "January 15, 2024".
// Dates that do not parse are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
