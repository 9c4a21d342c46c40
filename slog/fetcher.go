// Package slog provides logging decorators for the service interfaces,
// built on the standard library's structured logger.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jfsagro-glitch/lessonsync"
)

// Ensure LoggingFetcher implements lessonsync.Fetcher at compile time.
var _ lessonsync.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-call logging.
type LoggingFetcher struct {
	next   lessonsync.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next lessonsync.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchText delegates to the wrapped fetcher and logs the call.
func (f *LoggingFetcher) FetchText(ctx context.Context, id string) (string, error) {
	begin := time.Now()
	text, err := f.next.FetchText(ctx, id)
	if err != nil {
		f.logger.Error("fetch text", "id", id, "err", err)
		return "", err
	}
	f.logger.Info("fetch text",
		"id", id,
		"bytes", len(text),
		"duration", time.Since(begin),
	)
	return text, nil
}

// Stat delegates to the wrapped fetcher and logs failures.
func (f *LoggingFetcher) Stat(ctx context.Context, id string) (lessonsync.FileMeta, error) {
	meta, err := f.next.Stat(ctx, id)
	if err != nil {
		f.logger.Error("stat", "id", id, "err", err)
		return lessonsync.FileMeta{}, err
	}
	f.logger.Debug("stat", "id", id, "name", meta.Name, "mime", meta.MimeType, "size", meta.Size)
	return meta, nil
}

// Download delegates to the wrapped fetcher and logs the call.
func (f *LoggingFetcher) Download(ctx context.Context, id string) ([]byte, error) {
	begin := time.Now()
	data, err := f.next.Download(ctx, id)
	if err != nil {
		f.logger.Error("download", "id", id, "err", err)
		return nil, err
	}
	f.logger.Info("download",
		"id", id,
		"bytes", len(data),
		"duration", time.Since(begin),
	)
	return data, nil
}

// List delegates to the wrapped fetcher and logs the call.
func (f *LoggingFetcher) List(ctx context.Context, folderID string) ([]lessonsync.FileMeta, error) {
	begin := time.Now()
	metas, err := f.next.List(ctx, folderID)
	if err != nil {
		f.logger.Error("list", "folder", folderID, "err", err)
		return nil, err
	}
	f.logger.Info("list",
		"folder", folderID,
		"files", len(metas),
		"duration", time.Since(begin),
	)
	return metas, nil
}
