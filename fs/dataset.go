// Package fs stores the published dataset, its backups, and cached media
// assets on the local filesystem. All writes go through a
// temp-file-then-rename pattern so readers never observe a partially
// written file.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jfsagro-glitch/lessonsync"
)

// backupTimeFormat is the UTC timestamp embedded in backup filenames.
const backupTimeFormat = "20060102T150405Z"

// Ensure DatasetStore implements lessonsync.DatasetStore at compile time.
var _ lessonsync.DatasetStore = (*DatasetStore)(nil)

// DatasetStore owns the dataset file and its timestamp-named backups in a
// sibling directory. Backups are append-only; retention is an external
// concern.
type DatasetStore struct {
	path      string
	backupDir string
	now       func() time.Time
}

// Option configures a DatasetStore.
type Option func(*DatasetStore)

// WithBackupDir overrides the backup directory. Defaults to a "backups"
// directory next to the dataset file.
func WithBackupDir(dir string) Option {
	return func(s *DatasetStore) {
		s.backupDir = dir
	}
}

// WithClock overrides the time source used for backup names.
func WithClock(now func() time.Time) Option {
	return func(s *DatasetStore) {
		s.now = now
	}
}

// NewDatasetStore creates a store for the dataset file at path.
func NewDatasetStore(path string, opts ...Option) *DatasetStore {
	s := &DatasetStore{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.backupDir == "" {
		s.backupDir = filepath.Join(filepath.Dir(path), "backups")
	}
	return s
}

// Path returns the location of the published dataset file.
func (s *DatasetStore) Path() string {
	return s.path
}

// Publish backs up the current dataset, if one exists, then atomically
// replaces it with content.
func (s *DatasetStore) Publish(ctx context.Context, content []byte) error {
	if len(content) == 0 {
		return lessonsync.Errorf(lessonsync.EINVALID, "refusing to publish empty dataset")
	}
	if _, err := os.Stat(s.path); err == nil {
		if err := s.backupCurrent(); err != nil {
			return err
		}
	}
	return writeAtomic(s.path, content)
}

// backupCurrent copies the live dataset into the backup directory under a
// timestamped name.
func (s *DatasetStore) backupCurrent() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return err
	}
	dest := filepath.Join(s.backupDir, s.backupName(s.now().UTC()))
	return writeAtomic(dest, data)
}

// backupName builds <dataset-stem>.<UTC timestamp>.<dataset-extension>.
func (s *DatasetStore) backupName(ts time.Time) string {
	base := filepath.Base(s.path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "." + ts.Format(backupTimeFormat) + ext
}

// Backups enumerates existing backups, newest first. Timestamps come from
// the filename, falling back to the file's modification time when the name
// doesn't parse.
func (s *DatasetStore) Backups() ([]lessonsync.Backup, error) {
	entries, err := os.ReadDir(s.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	base := filepath.Base(s.path)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext) + "."

	var backups []lessonsync.Backup
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
			continue
		}
		ts, err := time.Parse(backupTimeFormat, strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext))
		if err != nil {
			info, ierr := e.Info()
			if ierr != nil {
				continue
			}
			ts = info.ModTime().UTC()
		}
		backups = append(backups, lessonsync.Backup{
			Name:      name,
			Path:      filepath.Join(s.backupDir, name),
			CreatedAt: ts,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].CreatedAt.After(backups[j].CreatedAt)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// Restore replaces the live dataset with the named backup, or the most
// recent one when ref is empty. Returns false, without error, when no
// usable backup exists. The live dataset is backed up first so a mistaken
// restore is itself recoverable.
func (s *DatasetStore) Restore(ctx context.Context, ref string) (bool, error) {
	backups, err := s.Backups()
	if err != nil {
		return false, err
	}
	if len(backups) == 0 {
		return false, nil
	}

	chosen := backups[0]
	if ref != "" {
		found := false
		for _, b := range backups {
			if b.Name == ref {
				chosen = b
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	data, err := os.ReadFile(chosen.Path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := s.backupCurrent(); err != nil {
			return false, err
		}
	}
	if err := writeAtomic(s.path, data); err != nil {
		return false, err
	}
	return true, nil
}

// writeAtomic writes data to a uniquely named temporary sibling and renames
// it over path.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
