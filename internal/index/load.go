package index

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/hpungsan/blogdex/internal/errors"
	"github.com/hpungsan/blogdex/internal/post"
)

// Load reads a manifest written by Write.
// A missing manifest is NOT_FOUND; a malformed one is INTERNAL.
func Load(path string) ([]post.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewNotFound(fmt.Sprintf("blog index not found: %s", path))
		}
		return nil, errors.NewInternal(err)
	}

	var posts []post.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to parse blog index: %w", err))
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, nil
}

// FindBySlug returns the first post with the given slug.
// Slugs are not deduplicated, so a repeated slug resolves to the newest entry.
func FindBySlug(posts []post.Post, slug string) (post.Post, error) {
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return post.Post{}, errors.NewPostNotFound(slug)
}

// ReadMarkdown returns the raw markdown for p, read from contentRoot.
// The read is confined to contentRoot even if the manifest was tampered with.
func ReadMarkdown(contentRoot string, p post.Post) (string, error) {
	root, err := os.OpenRoot(contentRoot)
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to open content root: %w", err))
	}
	defer root.Close()

	data, err := root.ReadFile(strings.TrimPrefix(p.Path, "/"))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", errors.NewNotFound(fmt.Sprintf("post source not found: %s", p.Path))
		}
		return "", errors.NewInternal(fmt.Errorf("failed to read %s: %w", p.Path, err))
	}
	return string(data), nil
}
