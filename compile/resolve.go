package compile

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/jfsagro-glitch/lessonsync"
)

// resolver rewrites remote file links in one day's text into marker tokens
// and ensures the referenced assets exist in the media store. Lesson and
// task text share one resolver so a file referenced in both gets a single
// marker and a single media entry.
type resolver struct {
	fetcher lessonsync.Fetcher
	media   lessonsync.MediaStore
	prefix  string
	day     int

	order      []string // remote ids in first-occurrence order
	items      map[string]lessonsync.MediaItem
	failed     map[string]bool // fetch failed; occurrences stay as-is
	skipped    map[string]bool // unsupported type; occurrences stay as-is
	downloaded int
	warnings   []string
}

func newResolver(fetcher lessonsync.Fetcher, media lessonsync.MediaStore, prefix string, day int) *resolver {
	return &resolver{
		fetcher: fetcher,
		media:   media,
		prefix:  prefix,
		day:     day,
		items:   make(map[string]lessonsync.MediaItem),
		failed:  make(map[string]bool),
		skipped: make(map[string]bool),
	}
}

// Resolve replaces every resolvable file link in text with its marker
// token. Replacement walks occurrences in descending position order so
// earlier replacements never invalidate pending offsets.
func (r *resolver) Resolve(ctx context.Context, text string) string {
	links := lessonsync.FindFileLinks(text)
	if len(links) == 0 {
		return text
	}

	for _, link := range links {
		if _, ok := r.items[link.RemoteID]; ok {
			continue
		}
		if r.failed[link.RemoteID] || r.skipped[link.RemoteID] {
			continue
		}
		r.resolveID(ctx, link.RemoteID)
	}

	for i := len(links) - 1; i >= 0; i-- {
		link := links[i]
		item, ok := r.items[link.RemoteID]
		if !ok {
			continue
		}
		text = text[:link.Start] + item.MarkerID + text[link.End:]
	}
	return text
}

// resolveID fetches metadata for one remote file, classifies it, and makes
// sure a valid local copy exists. Failures are recoverable: the id is
// marked failed, a warning recorded, and the day continues.
func (r *resolver) resolveID(ctx context.Context, id string) {
	meta, err := r.fetcher.Stat(ctx, id)
	if err != nil {
		r.fail(id, fmt.Sprintf("media %s: %v", id, err))
		return
	}

	var typ lessonsync.MediaType
	switch {
	case strings.HasPrefix(meta.MimeType, "image/"):
		typ = lessonsync.MediaPhoto
	case strings.HasPrefix(meta.MimeType, "video/"):
		typ = lessonsync.MediaVideo
	default:
		// Unsupported types keep their original link text.
		r.skipped[id] = true
		return
	}

	name := meta.Name
	if name == "" {
		name = id
	}
	rel := lessonsync.MediaRelPath(r.day, name)

	if !r.media.ShouldSkip(rel, meta.Size, meta.Modified) {
		data, err := r.fetcher.Download(ctx, id)
		if err != nil {
			r.fail(id, fmt.Sprintf("media %s (%s): %v", name, id, err))
			return
		}
		if err := r.media.Store(ctx, rel, data); err != nil {
			r.fail(id, fmt.Sprintf("media %s (%s): %v", name, id, err))
			return
		}
		r.downloaded++
	}

	marker := lessonsync.MarkerToken(id, len(r.order)+1)
	r.order = append(r.order, id)
	r.items[id] = lessonsync.MediaItem{
		Type:     typ,
		Path:     path.Join(r.prefix, rel),
		MarkerID: marker,
		RemoteID: id,
	}
}

func (r *resolver) fail(id, warning string) {
	r.failed[id] = true
	r.warnings = append(r.warnings, warning)
}

// Items returns the day's resolved media in first-occurrence order.
func (r *resolver) Items() []lessonsync.MediaItem {
	if len(r.order) == 0 {
		return nil
	}
	items := make([]lessonsync.MediaItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id])
	}
	return items
}

// Markers returns the marker-token to media mapping for the day.
func (r *resolver) Markers() map[string]lessonsync.MediaItem {
	if len(r.order) == 0 {
		return nil
	}
	markers := make(map[string]lessonsync.MediaItem, len(r.order))
	for _, item := range r.items {
		markers[item.MarkerID] = item
	}
	return markers
}

// Downloaded returns how many assets were actually downloaded, excluding
// cache hits.
func (r *resolver) Downloaded() int {
	return r.downloaded
}

// TakeWarnings returns accumulated warnings and resets the list.
func (r *resolver) TakeWarnings() []string {
	w := r.warnings
	r.warnings = nil
	return w
}
