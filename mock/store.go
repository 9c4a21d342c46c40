package mock

import (
	"context"
	"time"

	"github.com/jfsagro-glitch/lessonsync"
)

var _ lessonsync.DatasetStore = (*DatasetStore)(nil)

// DatasetStore is a mock implementation of lessonsync.DatasetStore.
type DatasetStore struct {
	PublishFn func(ctx context.Context, content []byte) error
	PathFn    func() string
	BackupsFn func() ([]lessonsync.Backup, error)
	RestoreFn func(ctx context.Context, ref string) (bool, error)
}

func (s *DatasetStore) Publish(ctx context.Context, content []byte) error {
	return s.PublishFn(ctx, content)
}

func (s *DatasetStore) Path() string {
	return s.PathFn()
}

func (s *DatasetStore) Backups() ([]lessonsync.Backup, error) {
	return s.BackupsFn()
}

func (s *DatasetStore) Restore(ctx context.Context, ref string) (bool, error) {
	return s.RestoreFn(ctx, ref)
}

var _ lessonsync.MediaStore = (*MediaStore)(nil)

// MediaStore is a mock implementation of lessonsync.MediaStore.
type MediaStore struct {
	ShouldSkipFn func(rel string, size int64, modified time.Time) bool
	StoreFn      func(ctx context.Context, rel string, data []byte) error
}

func (s *MediaStore) ShouldSkip(rel string, size int64, modified time.Time) bool {
	return s.ShouldSkipFn(rel, size, modified)
}

func (s *MediaStore) Store(ctx context.Context, rel string, data []byte) error {
	return s.StoreFn(ctx, rel, data)
}
