// Package drive implements lessonsync.Fetcher backed by the Google Drive
// API. All calls go through a rate limiter so a full course sync stays
// inside the provider's per-user quota.
package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jfsagro-glitch/lessonsync"
	"golang.org/x/time/rate"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DefaultQPS bounds Drive API calls per second.
const DefaultQPS = 5

const (
	metaFields = googleapi.Field("id, name, mimeType, modifiedTime, size")
	listFields = googleapi.Field("nextPageToken, files(id, name, mimeType, modifiedTime, size)")
)

// Ensure Fetcher implements lessonsync.Fetcher at compile time.
var _ lessonsync.Fetcher = (*Fetcher)(nil)

// Fetcher implements lessonsync.Fetcher using the Google Drive API.
type Fetcher struct {
	svc     *drivev3.Service
	limiter *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithQPS overrides the API rate limit.
func WithQPS(qps float64) Option {
	return func(f *Fetcher) {
		if qps > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(qps), 1)
		}
	}
}

// NewFetcher creates a Fetcher on top of an existing Drive service.
func NewFetcher(svc *drivev3.Service, opts ...Option) *Fetcher {
	f := &Fetcher{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(DefaultQPS), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewService builds a read-only Drive service from service account
// credentials.
func NewService(ctx context.Context, credentialsJSON []byte) (*drivev3.Service, error) {
	if len(credentialsJSON) == 0 {
		return nil, lessonsync.Errorf(lessonsync.EINVALID, "service account credentials required")
	}
	svc, err := drivev3.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drivev3.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}

// FetchText returns a file's content as text. Provider-native documents
// are exported as plain text; everything else is downloaded verbatim.
func (f *Fetcher) FetchText(ctx context.Context, id string) (string, error) {
	meta, err := f.Stat(ctx, id)
	if err != nil {
		return "", err
	}

	if meta.MimeType == lessonsync.MimeGoogleDoc {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
		resp, err := f.svc.Files.Export(id, "text/plain").Context(ctx).Download()
		if err != nil {
			return "", wrapErr(id, err)
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read export of %s: %w", id, err)
		}
		return string(data), nil
	}

	data, err := f.Download(ctx, id)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Stat returns a file's metadata.
func (f *Fetcher) Stat(ctx context.Context, id string) (lessonsync.FileMeta, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return lessonsync.FileMeta{}, err
	}
	file, err := f.svc.Files.Get(id).Fields(metaFields).Context(ctx).Do()
	if err != nil {
		return lessonsync.FileMeta{}, wrapErr(id, err)
	}
	return toFileMeta(file), nil
}

// Download returns a file's raw bytes.
func (f *Fetcher) Download(ctx context.Context, id string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := f.svc.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return nil, wrapErr(id, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download of %s: %w", id, err)
	}
	return data, nil
}

// List returns the direct, non-trashed children of a folder.
func (f *Fetcher) List(ctx context.Context, folderID string) ([]lessonsync.FileMeta, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var metas []lessonsync.FileMeta
	pageToken := ""
	for {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		call := f.svc.Files.List().Q(query).Fields(listFields).OrderBy("name").PageSize(200).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, wrapErr(folderID, err)
		}
		for _, file := range page.Files {
			metas = append(metas, toFileMeta(file))
		}
		if page.NextPageToken == "" {
			return metas, nil
		}
		pageToken = page.NextPageToken
	}
}

func toFileMeta(file *drivev3.File) lessonsync.FileMeta {
	meta := lessonsync.FileMeta{
		ID:       file.Id,
		Name:     file.Name,
		MimeType: file.MimeType,
		Size:     file.Size,
	}
	if file.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, file.ModifiedTime); err == nil {
			meta.Modified = t.UTC()
		}
	}
	return meta
}

// wrapErr maps Drive API errors to application error codes.
func wrapErr(id string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 404:
			return lessonsync.Errorf(lessonsync.ENOTFOUND, "drive file %s not found", id)
		case apiErr.Code == 401 || apiErr.Code == 403:
			return lessonsync.Errorf(lessonsync.EUNAVAILABLE, "drive access to %s denied: %s", id, apiErr.Message)
		case apiErr.Code == 429 || apiErr.Code >= 500:
			return lessonsync.Errorf(lessonsync.EUNAVAILABLE, "drive unavailable for %s: %s", id, apiErr.Message)
		}
	}
	return fmt.Errorf("drive request for %s: %w", id, err)
}
