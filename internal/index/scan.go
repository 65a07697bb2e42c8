package index

import (
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/logging"
	"github.com/hpungsan/blogdex/internal/post"
)

// FindYearDirectories returns the names of root's immediate subdirectories that
// are exactly four digits, sorted ascending. A missing or unreadable root yields
// an empty slice and a warning.
func FindYearDirectories(root string, log *zap.Logger) []string {
	log = logging.OrNop(log)

	entries, err := os.ReadDir(root)
	if err != nil {
		log.Warn("could not read content root", zap.String("dir", root), zap.Error(err))
		return []string{}
	}

	years := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() && post.IsYear(e.Name()) {
			years = append(years, e.Name())
		}
	}
	slices.Sort(years)
	return years
}

// FindPosts returns a record for every blog post file in root/year, in
// directory listing order. Names that don't match the post pattern are skipped
// silently. A file that cannot be read still produces a record, with an empty
// summary and a warning.
func FindPosts(root, year string, summaryLength int, log *zap.Logger) []post.Post {
	log = logging.OrNop(log)
	dir := filepath.Join(root, year)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("could not read year directory", zap.String("year", year), zap.String("dir", dir), zap.Error(err))
		return []post.Post{}
	}

	posts := make([]post.Post, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := post.ParseFilename(e.Name())
		if !ok {
			continue
		}

		p := post.New(year, name, e.Name())
		p.Summary = readSummary(filepath.Join(dir, e.Name()), summaryLength, log)
		posts = append(posts, p)
	}
	return posts
}

// readSummary reads a markdown file fully and reduces it to a summary.
func readSummary(path string, summaryLength int, log *zap.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("could not read post for summary", zap.String("file", path), zap.Error(err))
		return ""
	}
	return post.Summarize(string(data), summaryLength)
}
