package compile

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jfsagro-glitch/lessonsync"
)

// dayFolderRe extracts a day number from folder names like "day_1",
// "day-01", "01" or the localized "День 1".
var dayFolderRe = regexp.MustCompile(`(?i)(?:day[_-]?|день\s*)?(\d{1,2})\b`)

// parseDayFromName returns the course day encoded in a folder name.
func parseDayFromName(name string) (int, bool) {
	m := dayFolderRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return 0, false
	}
	day, _ := strconv.Atoi(m[1])
	if day < lessonsync.MinDay || day > lessonsync.MaxDay {
		return 0, false
	}
	return day, true
}

// folderMeta is the optional meta.json kept next to a day's lesson file.
type folderMeta struct {
	Title  string `json:"title"`
	Silent *bool  `json:"silent"`
}

// SyncFolder compiles the per-day folder tree into a dataset and publishes
// it. It is the simpler alternative to SyncNow for sources maintained as
// one folder per day, sharing the same output schema, media cache, and
// publisher.
func (s *Syncer) SyncFolder(ctx context.Context) (*lessonsync.SyncResult, error) {
	if err := s.ready(s.RootFolderID, "root folder id"); err != nil {
		return nil, err
	}

	children, err := s.Fetcher.List(ctx, s.RootFolderID)
	if err != nil {
		return nil, fmt.Errorf("list root folder %s: %w", s.RootFolderID, err)
	}

	type dayFolder struct {
		day  int
		meta lessonsync.FileMeta
	}
	var folders []dayFolder
	for _, c := range children {
		if c.MimeType != lessonsync.MimeFolder {
			continue
		}
		if day, ok := parseDayFromName(c.Name); ok {
			folders = append(folders, dayFolder{day: day, meta: c})
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].day < folders[j].day })

	if len(folders) == 0 {
		return nil, lessonsync.Errorf(lessonsync.EINVALID, "no day folders found under root folder")
	}

	ds := make(lessonsync.Dataset, len(folders))
	var warnings []string
	downloaded := 0

	for _, f := range folders {
		lesson, n, w := s.compileFolderDay(ctx, f.day, f.meta.ID)
		warnings = append(warnings, w...)
		if lesson == nil {
			continue
		}
		ds[f.day] = lesson
		downloaded += n
	}

	if len(ds) == 0 {
		return nil, lessonsync.Errorf(lessonsync.EINVALID, "no lessons compiled from folder source")
	}
	return s.publish(ctx, ds, downloaded, warnings)
}

// compileFolderDay compiles one day folder: a lesson file, an optional
// task file, an optional meta.json, and media from the folder itself plus
// a "media" subfolder.
func (s *Syncer) compileFolderDay(ctx context.Context, day int, folderID string) (*lessonsync.Lesson, int, []string) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf("day %d: %s", day, fmt.Sprintf(format, args...)))
	}

	children, err := s.Fetcher.List(ctx, folderID)
	if err != nil {
		warn("%v", err)
		return nil, 0, warnings
	}

	var mediaKids []lessonsync.FileMeta
	for _, c := range children {
		if c.MimeType == lessonsync.MimeFolder && strings.EqualFold(c.Name, "media") {
			kids, err := s.Fetcher.List(ctx, c.ID)
			if err != nil {
				warn("media folder: %v", err)
				continue
			}
			mediaKids = append(mediaKids, kids...)
		}
	}

	lessonFile := pickNamed(children, "lesson")
	if lessonFile == nil {
		warn("missing lesson file")
		return nil, 0, warnings
	}

	lessonText, err := s.Fetcher.FetchText(ctx, lessonFile.ID)
	if err != nil {
		warn("lesson file: %v", err)
		return nil, 0, warnings
	}

	var taskText string
	if taskFile := pickNamed(children, "task"); taskFile != nil {
		taskText, err = s.Fetcher.FetchText(ctx, taskFile.ID)
		if err != nil {
			warn("task file: %v", err)
		}
	}

	var meta folderMeta
	if metaFile := pickNamed(children, "meta"); metaFile != nil && strings.HasSuffix(strings.ToLower(metaFile.Name), ".json") {
		raw, err := s.Fetcher.FetchText(ctx, metaFile.ID)
		if err != nil {
			warn("meta.json: %v", err)
		} else if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			warn("meta.json invalid: %v", err)
		}
	}

	items, n := s.collectFolderMedia(ctx, day, append(children, mediaKids...), warn)

	lessonText, w := lessonsync.SanitizeMarkup(strings.TrimSpace(lessonText))
	for _, msg := range w {
		warn("%s", msg)
	}
	taskText, w = lessonsync.SanitizeMarkup(strings.TrimSpace(taskText))
	for _, msg := range w {
		warn("%s", msg)
	}

	if strings.TrimSpace(lessonText) == "" {
		warn("empty lesson text")
	}

	body := lessonsync.SingleBody("")
	switch posts := lessonsync.SplitPosts(lessonText, s.MaxPostLen); len(posts) {
	case 0:
	case 1:
		body = lessonsync.SingleBody(posts[0])
	default:
		body = lessonsync.PostsBody(posts)
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = lessonsync.DefaultTitle(day)
	}

	return &lessonsync.Lesson{
		DayNumber: day,
		Title:     title,
		Body:      body,
		Task:      strings.TrimSpace(taskText),
		Media:     items,
		Silent:    meta.Silent,
	}, n, warnings
}

// collectFolderMedia downloads the day's media files through the cache.
// Folder-mode media has no inline markers; assets are delivered alongside
// the lesson in file order.
func (s *Syncer) collectFolderMedia(ctx context.Context, day int, files []lessonsync.FileMeta, warn func(string, ...any)) ([]lessonsync.MediaItem, int) {
	var items []lessonsync.MediaItem
	downloaded := 0
	seen := make(map[string]bool)

	for _, f := range files {
		if f.ID == "" || seen[f.ID] {
			continue
		}
		seen[f.ID] = true

		var typ lessonsync.MediaType
		switch {
		case strings.HasPrefix(f.MimeType, "image/"):
			typ = lessonsync.MediaPhoto
		case strings.HasPrefix(f.MimeType, "video/"):
			typ = lessonsync.MediaVideo
		default:
			continue
		}

		name := f.Name
		if name == "" {
			name = f.ID
		}
		rel := lessonsync.MediaRelPath(day, name)

		if !s.Media.ShouldSkip(rel, f.Size, f.Modified) {
			data, err := s.Fetcher.Download(ctx, f.ID)
			if err != nil {
				warn("failed to download media %s: %v", name, err)
				continue
			}
			if err := s.Media.Store(ctx, rel, data); err != nil {
				warn("failed to store media %s: %v", name, err)
				continue
			}
			downloaded++
		}

		items = append(items, lessonsync.MediaItem{
			Type:     typ,
			Path:     path.Join(s.MediaPrefix, rel),
			RemoteID: f.ID,
		})
	}
	return items, downloaded
}

// pickNamed selects the file whose stem matches base, preferring .html,
// then .txt, then a provider-native document.
func pickNamed(files []lessonsync.FileMeta, base string) *lessonsync.FileMeta {
	var candidates []lessonsync.FileMeta
	for _, f := range files {
		if f.MimeType == lessonsync.MimeFolder {
			continue
		}
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		stem := strings.ToLower(name)
		if i := strings.LastIndex(stem, "."); i > 0 {
			stem = stem[:i]
		}
		if strings.HasPrefix(stem, base) {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	score := func(f lessonsync.FileMeta) int {
		name := strings.ToLower(f.Name)
		switch {
		case strings.HasSuffix(name, ".html"):
			return 0
		case strings.HasSuffix(name, ".txt"):
			return 1
		case f.MimeType == lessonsync.MimeGoogleDoc:
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return score(candidates[i]) < score(candidates[j]) })
	return &candidates[0]
}
