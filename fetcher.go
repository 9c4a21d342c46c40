package lessonsync

import (
	"context"
	"time"
)

// MIME types of provider-native objects.
const (
	MimeGoogleDoc = "application/vnd.google-apps.document"
	MimeFolder    = "application/vnd.google-apps.folder"
)

// FileMeta describes a remote file. Size and Modified may be zero when the
// provider does not report them.
type FileMeta struct {
	ID       string
	Name     string
	MimeType string
	Size     int64
	Modified time.Time
}

// Fetcher retrieves documents and files from the remote content provider.
type Fetcher interface {
	// FetchText returns the plain-text content of a remote document.
	// Provider-native documents are exported as text; other files are
	// downloaded and decoded as UTF-8.
	FetchText(ctx context.Context, id string) (string, error)

	// Stat returns metadata for a remote file without downloading it.
	// Returns ENOTFOUND if the file does not exist.
	Stat(ctx context.Context, id string) (FileMeta, error)

	// Download returns the raw bytes of a remote file.
	Download(ctx context.Context, id string) ([]byte, error)

	// List returns the direct children of a remote folder.
	List(ctx context.Context, folderID string) ([]FileMeta, error)
}
