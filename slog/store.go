package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jfsagro-glitch/lessonsync"
)

// Ensure LoggingDatasetStore implements lessonsync.DatasetStore.
var _ lessonsync.DatasetStore = (*LoggingDatasetStore)(nil)

// LoggingDatasetStore wraps a DatasetStore with publish and restore
// logging.
type LoggingDatasetStore struct {
	next   lessonsync.DatasetStore
	logger *slog.Logger
}

// NewLoggingDatasetStore creates a new LoggingDatasetStore.
func NewLoggingDatasetStore(next lessonsync.DatasetStore, logger *slog.Logger) *LoggingDatasetStore {
	return &LoggingDatasetStore{next: next, logger: logger}
}

// Publish delegates to the wrapped store and logs the call.
func (s *LoggingDatasetStore) Publish(ctx context.Context, content []byte) error {
	begin := time.Now()
	if err := s.next.Publish(ctx, content); err != nil {
		s.logger.Error("publish dataset", "path", s.next.Path(), "err", err)
		return err
	}
	s.logger.Info("publish dataset",
		"path", s.next.Path(),
		"bytes", len(content),
		"duration", time.Since(begin),
	)
	return nil
}

// Path delegates to the wrapped store.
func (s *LoggingDatasetStore) Path() string {
	return s.next.Path()
}

// Backups delegates to the wrapped store.
func (s *LoggingDatasetStore) Backups() ([]lessonsync.Backup, error) {
	return s.next.Backups()
}

// Restore delegates to the wrapped store and logs the outcome.
func (s *LoggingDatasetStore) Restore(ctx context.Context, ref string) (bool, error) {
	restored, err := s.next.Restore(ctx, ref)
	if err != nil {
		s.logger.Error("restore dataset", "ref", ref, "err", err)
		return false, err
	}
	s.logger.Info("restore dataset", "ref", ref, "restored", restored)
	return restored, nil
}
