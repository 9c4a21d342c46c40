package mock

import (
	"context"

	"github.com/jfsagro-glitch/lessonsync"
)

var _ lessonsync.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of lessonsync.Fetcher.
type Fetcher struct {
	FetchTextFn func(ctx context.Context, id string) (string, error)
	StatFn      func(ctx context.Context, id string) (lessonsync.FileMeta, error)
	DownloadFn  func(ctx context.Context, id string) ([]byte, error)
	ListFn      func(ctx context.Context, folderID string) ([]lessonsync.FileMeta, error)
}

func (f *Fetcher) FetchText(ctx context.Context, id string) (string, error) {
	return f.FetchTextFn(ctx, id)
}

func (f *Fetcher) Stat(ctx context.Context, id string) (lessonsync.FileMeta, error) {
	return f.StatFn(ctx, id)
}

func (f *Fetcher) Download(ctx context.Context, id string) ([]byte, error) {
	return f.DownloadFn(ctx, id)
}

func (f *Fetcher) List(ctx context.Context, folderID string) ([]lessonsync.FileMeta, error) {
	return f.ListFn(ctx, folderID)
}
