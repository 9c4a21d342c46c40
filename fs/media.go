package fs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jfsagro-glitch/lessonsync"
)

// Ensure MediaStore implements lessonsync.MediaStore at compile time.
var _ lessonsync.MediaStore = (*MediaStore)(nil)

// MediaStore caches media assets under a base directory. Paths passed in
// are slash-separated and relative to the base directory.
type MediaStore struct {
	baseDir string
}

// NewMediaStore creates a store rooted at baseDir.
func NewMediaStore(baseDir string) *MediaStore {
	return &MediaStore{baseDir: baseDir}
}

// BaseDir returns the store root.
func (s *MediaStore) BaseDir() string {
	return s.baseDir
}

// ShouldSkip reports whether the cached copy at rel is still current for a
// remote file of the given size and modification time. An absent local
// file or a size mismatch always forces a download; a local copy modified
// at or after the remote timestamp is kept; with no remote timestamp a
// size match alone is enough.
func (s *MediaStore) ShouldSkip(rel string, size int64, modified time.Time) bool {
	info, err := os.Stat(s.abs(rel))
	if err != nil {
		return false
	}
	if size > 0 && info.Size() != size {
		return false
	}
	if !modified.IsZero() {
		return !info.ModTime().Before(modified)
	}
	return size > 0 && info.Size() == size
}

// Store atomically writes data to rel under the store root. A crash
// mid-download never leaves a corrupt asset at the canonical path.
func (s *MediaStore) Store(ctx context.Context, rel string, data []byte) error {
	return writeAtomic(s.abs(rel), data)
}

func (s *MediaStore) abs(rel string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(rel))
}
