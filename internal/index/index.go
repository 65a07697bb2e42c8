// Package index builds the blog manifest: it scans year directories of markdown
// posts, derives a record per post, and writes the records as a sorted JSON array.
package index

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/config"
	"github.com/hpungsan/blogdex/internal/logging"
	"github.com/hpungsan/blogdex/internal/post"
)

// Config contains the inputs of one generation run.
type Config struct {
	ContentRoot      string // tree of YYYY/ directories to scan
	OutputPath       string // manifest destination
	SummaryMaxLength int    // summary budget, DefaultSummaryLength when <= 0

	// SourceDir, when set, is synced into ContentRoot before scanning.
	SourceDir string
}

// FromConfig returns the generation inputs described by an application config.
func FromConfig(c *config.Config) Config {
	return Config{
		ContentRoot:      c.ContentRoot,
		OutputPath:       c.ResolvedOutputPath(),
		SummaryMaxLength: c.SummaryMaxLength,
		SourceDir:        c.SourceDir,
	}
}

// summaryLength returns the configured budget or the default.
func (c Config) summaryLength() int {
	if c.SummaryMaxLength <= 0 {
		return post.DefaultSummaryLength
	}
	return c.SummaryMaxLength
}

// Output contains the result of the Generate operation.
type Output struct {
	Path  string   `json:"path"`
	Count int      `json:"count"`
	Years []string `json:"years"`
}

// Build scans cfg.ContentRoot and returns the post records, newest first.
// Filesystem problems are logged and treated as empty results; Build never fails.
func Build(cfg Config, log *zap.Logger) []post.Post {
	log = logging.OrNop(log)

	return collect(cfg, FindYearDirectories(cfg.ContentRoot, log), log)
}

// collect gathers posts from each year directory in order and sorts them.
func collect(cfg Config, years []string, log *zap.Logger) []post.Post {
	posts := make([]post.Post, 0)
	for _, year := range years {
		found := FindPosts(cfg.ContentRoot, year, cfg.summaryLength(), log)
		log.Info("scanned year directory", zap.String("year", year), zap.Int("posts", len(found)))
		posts = append(posts, found...)
	}
	SortByDateDesc(posts)
	return posts
}

// SortByDateDesc orders posts newest first. Posts sharing a date keep their
// relative order. Dates are YYYY-MM-DD, so string order is chronological.
func SortByDateDesc(posts []post.Post) {
	slices.SortStableFunc(posts, func(a, b post.Post) int {
		return strings.Compare(b.Date, a.Date)
	})
}

// Generate runs the whole pipeline: optional sync, scan, and an atomic write of
// the manifest. Only the write step can fail.
func Generate(cfg Config, log *zap.Logger) (*Output, error) {
	log = logging.OrNop(log)
	log.Info("generating blog index", zap.String("content_root", cfg.ContentRoot))

	if cfg.SourceDir != "" {
		SyncPosts(cfg.SourceDir, cfg.ContentRoot, log)
	}

	years := FindYearDirectories(cfg.ContentRoot, log)
	if len(years) == 0 {
		log.Warn("no year directories found", zap.String("content_root", cfg.ContentRoot))
	} else {
		log.Info("found year directories", zap.Strings("years", years))
	}

	posts := collect(cfg, years, log)
	if len(years) > 0 && len(posts) == 0 {
		log.Warn("no blog posts found", zap.String("content_root", cfg.ContentRoot))
	}

	if err := Write(cfg.OutputPath, posts); err != nil {
		return nil, err
	}

	log.Info("wrote blog index", zap.String("path", cfg.OutputPath), zap.Int("posts", len(posts)))
	return &Output{
		Path:  cfg.OutputPath,
		Count: len(posts),
		Years: years,
	}, nil
}
