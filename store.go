package lessonsync

import (
	"context"
	"time"
)

// Backup identifies one timestamped copy of a previously published dataset.
// Backups are append-only: created before every publish, never mutated.
type Backup struct {
	Name      string
	Path      string
	CreatedAt time.Time
}

// DatasetStore owns the published dataset file and its backups. No other
// component writes to them.
type DatasetStore interface {
	// Publish backs up the current dataset, if one exists, then
	// atomically replaces it with content. Readers never observe a
	// partially written file.
	Publish(ctx context.Context, content []byte) error

	// Path returns the location of the published dataset file.
	Path() string

	// Backups enumerates existing backups, newest first.
	Backups() ([]Backup, error)

	// Restore replaces the live dataset with the named backup, or the
	// most recent one when ref is empty. The live dataset is backed up
	// first in case the restore itself was a mistake. Returns false,
	// without error, when no usable backup exists.
	Restore(ctx context.Context, ref string) (bool, error)
}

// MediaStore caches downloaded media assets on local disk. Paths are
// relative to the store root, namespaced by day.
type MediaStore interface {
	// ShouldSkip reports whether the local copy at rel is still valid
	// for a remote file with the given size and modification time.
	// Absent files and size mismatches always force a download.
	ShouldSkip(rel string, size int64, modified time.Time) bool

	// Store atomically writes data to rel under the store root.
	Store(ctx context.Context, rel string, data []byte) error
}
