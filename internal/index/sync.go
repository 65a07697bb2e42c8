package index

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hpungsan/blogdex/internal/logging"
	"github.com/hpungsan/blogdex/internal/post"
)

// SyncPosts copies blog post files from src into dst, keeping the YYYY/
// layout. Only year directories and post-named files are copied; existing
// destination files are replaced. A file that is already its own destination
// (src and dst overlap, or a year directory links back to src) is left alone
// and not counted. It returns the number of files copied.
// A missing src is a warning, not an error, and per-file failures are logged
// and skipped.
func SyncPosts(src, dst string, log *zap.Logger) int {
	log = logging.OrNop(log)

	if _, err := os.Stat(src); err != nil {
		log.Warn("source directory not found", zap.String("dir", src), zap.Error(err))
		return 0
	}

	copied := 0
	for _, year := range FindYearDirectories(src, log) {
		srcYear := filepath.Join(src, year)
		dstYear := filepath.Join(dst, year)

		if err := os.MkdirAll(dstYear, 0755); err != nil {
			log.Warn("could not create year directory", zap.String("dir", dstYear), zap.Error(err))
			continue
		}

		entries, err := os.ReadDir(srcYear)
		if err != nil {
			log.Warn("could not read year directory", zap.String("dir", srcYear), zap.Error(err))
			continue
		}

		for _, e := range entries {
			if e.IsDir() || !post.IsPostFile(e.Name()) {
				continue
			}
			from := filepath.Join(srcYear, e.Name())
			to := filepath.Join(dstYear, e.Name())
			if sameFile(from, to) {
				log.Debug("post already in place", zap.String("path", to))
				continue
			}
			if err := copyFile(from, to); err != nil {
				log.Warn("could not copy post", zap.String("from", from), zap.String("to", to), zap.Error(err))
				continue
			}
			copied++
		}
	}

	log.Info("copied posts", zap.String("from", src), zap.String("to", dst), zap.Int("files", copied))
	return copied
}

// sameFile reports whether from and to name the same file on disk.
func sameFile(from, to string) bool {
	fromInfo, err := os.Stat(from)
	if err != nil {
		return false
	}
	toInfo, err := os.Stat(to)
	if err != nil {
		return false
	}
	return os.SameFile(fromInfo, toInfo)
}

// copyFile copies a single regular file through a temp file in the
// destination directory, so to is only replaced once from has been read.
func copyFile(from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return err
	}
	defer in.Close()

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return err
	}
	tempPath := to + "." + hex.EncodeToString(randBytes) + ".tmp"

	out, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tempPath)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}
	if err := os.Rename(tempPath, to); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}
