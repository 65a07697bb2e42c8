package index

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/blogdex/internal/errors"
	"github.com/hpungsan/blogdex/internal/post"
)

// Encode renders posts as a JSON array indented with two spaces.
// HTML characters are not escaped and there is no trailing newline, so an
// empty set encodes as exactly "[]".
func Encode(posts []post.Post) ([]byte, error) {
	if posts == nil {
		posts = []post.Post{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(posts); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write encodes posts and replaces the file at path in one step.
// The data goes to a temp file in the same directory which is then renamed over
// path, so a failed run leaves any previous manifest untouched. If path is a
// symlink, the file it points to is replaced and the link is kept.
func Write(path string, posts []post.Post) error {
	data, err := Encode(posts)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to encode index: %w", err))
	}

	path, err = resolveTarget(path)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to resolve output path: %w", err))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create output directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create temp file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write index: %w", err))
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close index file: %w", err))
	}
	file = nil

	if err := os.Rename(tempPath, path); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to finalize index: %w", err))
	}

	success = true
	return nil
}

// resolveTarget returns the file a symlink at path points to, or path itself.
// A dangling link resolves to the path it names, relative to the link's directory.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	if target, err := filepath.EvalSymlinks(path); err == nil {
		return target, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}
