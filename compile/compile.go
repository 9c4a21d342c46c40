// Package compile turns remote course content into the published lesson
// dataset. It coordinates fetching, day splitting, media resolution,
// markup sanitization, and post segmentation, then publishes the
// assembled dataset with backup.
package compile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/jfsagro-glitch/lessonsync"
)

// Syncer compiles course content and publishes the dataset. The whole run
// is a single synchronous job: days are processed in ascending order and
// asset resolution within a day is sequential. Publish is single-writer;
// concurrent runs must be serialized by the caller.
type Syncer struct {
	Fetcher lessonsync.Fetcher
	Store   lessonsync.DatasetStore
	Media   lessonsync.MediaStore

	// DocID identifies the master document for SyncNow.
	DocID string

	// RootFolderID identifies the per-day folder tree for SyncFolder.
	RootFolderID string

	// MediaPrefix is prepended to asset paths recorded in the dataset,
	// typically the media directory relative to the deployment root.
	MediaPrefix string

	// MaxPostLen bounds a single post; DefaultMaxPostLen when zero.
	MaxPostLen int
}

// ready verifies the preconditions that must hold before any network call.
func (s *Syncer) ready(sourceID, what string) error {
	if s.Fetcher == nil || s.Store == nil || s.Media == nil {
		return lessonsync.Errorf(lessonsync.EINVALID, "syncer is not fully wired")
	}
	if strings.TrimSpace(sourceID) == "" {
		return lessonsync.Errorf(lessonsync.EINVALID, "%s required", what)
	}
	return nil
}

// SyncNow compiles the master document into a dataset and publishes it.
// It is idempotent given an unchanged source and unchanged remote assets.
// Nothing is written unless the entire compilation succeeds.
func (s *Syncer) SyncNow(ctx context.Context) (*lessonsync.SyncResult, error) {
	if err := s.ready(s.DocID, "master document id"); err != nil {
		return nil, err
	}

	text, err := s.Fetcher.FetchText(ctx, s.DocID)
	if err != nil {
		return nil, fmt.Errorf("fetch master document %s: %w", s.DocID, err)
	}

	blocks, err := lessonsync.SplitDayBlocks(text)
	if err != nil {
		return nil, err
	}

	days := make([]int, 0, len(blocks))
	for day := range blocks {
		days = append(days, day)
	}
	sort.Ints(days)

	ds := make(lessonsync.Dataset, len(blocks))
	var warnings []string
	downloaded := 0

	for _, day := range days {
		lesson, n, w := s.compileDay(ctx, blocks[day])
		ds[day] = lesson
		downloaded += n
		warnings = append(warnings, w...)
	}

	return s.publish(ctx, ds, downloaded, warnings)
}

// compileDay runs the per-day pipeline: media resolution over the raw
// text, then sanitization, then post segmentation.
func (s *Syncer) compileDay(ctx context.Context, block lessonsync.DayBlock) (*lessonsync.Lesson, int, []string) {
	var warnings []string
	warn := func(ws ...string) {
		for _, w := range ws {
			warnings = append(warnings, fmt.Sprintf("day %d: %s", block.Day, w))
		}
	}

	res := newResolver(s.Fetcher, s.Media, s.MediaPrefix, block.Day)
	lessonText := res.Resolve(ctx, block.Lesson)
	taskText := res.Resolve(ctx, block.Task)
	warn(res.TakeWarnings()...)

	lessonText, w := lessonsync.SanitizeMarkup(lessonText)
	warn(w...)
	taskText, w = lessonsync.SanitizeMarkup(taskText)
	warn(w...)

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

	title := block.Title
	if title == "" {
		title = lessonsync.DefaultTitle(block.Day)
	}

	lesson := &lessonsync.Lesson{
		DayNumber:    block.Day,
		Title:        title,
		Body:         body,
		Task:         strings.TrimSpace(taskText),
		Media:        res.Items(),
		MediaMarkers: res.Markers(),
	}
	return lesson, res.Downloaded(), warnings
}

// publish encodes and atomically publishes the dataset, then builds the
// sync report.
func (s *Syncer) publish(ctx context.Context, ds lessonsync.Dataset, downloaded int, warnings []string) (*lessonsync.SyncResult, error) {
	for _, lesson := range ds {
		if err := lesson.Validate(); err != nil {
			return nil, err
		}
	}

	content, err := lessonsync.EncodeDataset(ds)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Publish(ctx, content); err != nil {
		return nil, fmt.Errorf("publish dataset: %w", err)
	}

	return &lessonsync.SyncResult{
		DaysSynced:      len(ds),
		DatasetPath:     s.Store.Path(),
		MediaDownloaded: downloaded,
		DatasetHash:     fmt.Sprintf("%x", xxhash.Sum64(content)),
		Warnings:        warnings,
	}, nil
}
