package post

import (
	"regexp"
	"strings"
)

// DefaultSummaryLength is the summary budget used when none is configured.
const DefaultSummaryLength = 150

// Post is a single entry of the blog index.
// Field order is the JSON field order of the emitted manifest.
type Post struct {
	// Slug is "{date}-{fragment}" and is the routing key for the post page
	Slug string `json:"slug"`

	// Title is the display title derived from the slug fragment
	Title string `json:"title"`

	// Date is YYYY-MM-DD as embedded in the filename
	Date string `json:"date"`

	// Path is the site-relative location of the markdown source, e.g. "/2024/blog-2024-01-15-hello.md"
	Path string `json:"path"`

	// Summary is a plain-text excerpt of the post body
	Summary string `json:"summary"`
}

// yearPattern matches year directory names.
var yearPattern = regexp.MustCompile(`^\d{4}$`)

// filenamePattern matches blog post filenames.
// Groups: date, slug fragment (without the .md extension)
var filenamePattern = regexp.MustCompile(`^blog-(\d{4}-\d{2}-\d{2})-(.+)\.md$`)

// datePrefixPattern matches a leading "YYYY-MM-DD-" on a full slug.
var datePrefixPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-`)

// IsYear reports whether name is a valid year directory name (exactly four digits).
func IsYear(name string) bool {
	return yearPattern.MatchString(name)
}

// Filename holds the parts extracted from a blog post filename.
type Filename struct {
	Date     string // "2024-01-15"
	Fragment string // "my-first-post"
}

// Slug returns the full slug "{date}-{fragment}".
func (f Filename) Slug() string {
	return f.Date + "-" + f.Fragment
}

// ParseFilename extracts the date and slug fragment from a blog post filename.
// Returns false for names that are not of the form blog-YYYY-MM-DD-<rest>.md.
func ParseFilename(name string) (Filename, bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return Filename{}, false
	}
	return Filename{Date: m[1], Fragment: m[2]}, true
}

// IsPostFile reports whether name is a blog post filename.
func IsPostFile(name string) bool {
	return filenamePattern.MatchString(name)
}

// New builds a Post for the file name found in the given year directory.
// The summary is left empty; callers fill it from the file contents.
func New(year string, name Filename, file string) Post {
	return Post{
		Slug:  name.Slug(),
		Title: FormatTitle(name.Fragment),
		Date:  name.Date,
		Path:  "/" + year + "/" + file,
	}
}

// TitleFromSlug formats a full slug as a title, dropping a leading date if present.
// Example: "2024-01-15-my-first-post" -> "My First Post"
func TitleFromSlug(slug string) string {
	return FormatTitle(datePrefixPattern.ReplaceAllString(slug, ""))
}

// Year returns the year portion of the post date.
func (p Post) Year() string {
	year, _, _ := strings.Cut(p.Date, "-")
	return year
}
