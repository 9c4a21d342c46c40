package lessonsync

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Course day bounds. Day numbers outside this range are treated as noise
// by the splitters.
const (
	MinDay = 0
	MaxDay = 30
)

// MediaType classifies a resolved media asset.
type MediaType string

// Supported media classifications. Remote files with other MIME types are
// skipped during resolution.
const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// MediaItem describes one resolved media asset referenced by a lesson.
type MediaItem struct {
	Type     MediaType `json:"type"`
	Path     string    `json:"path"`
	MarkerID string    `json:"marker_id,omitempty"`
	RemoteID string    `json:"remote_id,omitempty"`
}

// LessonBody holds lesson text as either a single string or an ordered
// sequence of delivery-sized posts. The multi-post form is used only when
// segmentation actually split the text.
type LessonBody struct {
	posts []string
}

// SingleBody returns a body holding one unsplit text.
func SingleBody(text string) LessonBody {
	return LessonBody{posts: []string{text}}
}

// PostsBody returns a body holding an ordered sequence of posts.
func PostsBody(posts []string) LessonBody {
	return LessonBody{posts: append([]string(nil), posts...)}
}

// Posts returns the body's posts in order. A single-text body yields one
// element.
func (b LessonBody) Posts() []string {
	return append([]string(nil), b.posts...)
}

// IsMulti reports whether the body was split into multiple posts.
func (b LessonBody) IsMulti() bool {
	return len(b.posts) > 1
}

// MarshalJSON writes a single string for the unsplit form and an array of
// strings for the multi-post form.
func (b LessonBody) MarshalJSON() ([]byte, error) {
	switch len(b.posts) {
	case 0:
		return json.Marshal("")
	case 1:
		return json.Marshal(b.posts[0])
	default:
		return json.Marshal(b.posts)
	}
}

// UnmarshalJSON accepts both wire shapes.
func (b *LessonBody) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		b.posts = []string{s}
		return nil
	}
	var posts []string
	if err := json.Unmarshal(data, &posts); err != nil {
		return Errorf(EINVALID, "lesson text must be a string or an array of strings")
	}
	b.posts = posts
	return nil
}

// Lesson is one compiled course day.
type Lesson struct {
	DayNumber    int                  `json:"day_number"`
	Title        string               `json:"title"`
	Body         LessonBody           `json:"text"`
	Task         string               `json:"task"`
	Media        []MediaItem          `json:"media,omitempty"`
	MediaMarkers map[string]MediaItem `json:"media_markers,omitempty"`
	Silent       *bool                `json:"silent,omitempty"`
}

// DefaultTitle generates the fallback title for a day with no authored one.
func DefaultTitle(day int) string {
	return fmt.Sprintf("Day %d", day)
}

// Validate returns an error if the lesson contains invalid fields or if a
// marker token present in its text has no media_markers entry.
func (l *Lesson) Validate() error {
	if l.DayNumber < MinDay || l.DayNumber > MaxDay {
		return Errorf(EINVALID, "day number %d outside course range", l.DayNumber)
	}
	if l.Title == "" {
		return Errorf(EINVALID, "day %d: title required", l.DayNumber)
	}
	for _, post := range l.Body.Posts() {
		if err := l.validateMarkers(post); err != nil {
			return err
		}
	}
	return l.validateMarkers(l.Task)
}

func (l *Lesson) validateMarkers(text string) error {
	for _, marker := range FindMarkers(text) {
		if _, ok := l.MediaMarkers[marker]; !ok {
			return Errorf(EINVALID, "day %d: marker %s has no media_markers entry", l.DayNumber, marker)
		}
	}
	return nil
}

// Dataset is the full compiled course, keyed by day number.
type Dataset map[int]*Lesson

/// EncodeDataset renders a dataset in its published form: a JSON object
// keyed by day number as a string, in ascending numeric order, two-space
// indented, with non-ASCII text and markup tags preserved verbatim.
// Encoding is deterministic so an unchanged source produces byte-identical
// output.
func EncodeDataset(ds Dataset) ([]byte, error) {
	if len(ds) == 0 {
		return nil, Errorf(EINVALID, "dataset is empty")
	}

	days := make([]int, 0, len(ds))
	for day := range ds {
		days = append(days, day)
	}
	sort.Ints(days)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, day := range days {
		entry, err := encodeLesson(ds[day])
		if err != nil {
			return nil, Errorf(EINTERNAL, "encode day %d: %v", day, err)
		}
		fmt.Fprintf(&buf, "  %q: %s", strconv.Itoa(day), entry)
		if i < len(days)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func encodeLesson(l *Lesson) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeDataset parses a published dataset file.
func DecodeDataset(data []byte) (Dataset, error) {
	var raw map[string]*Lesson
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Errorf(EINVALID, "decode dataset: %v", err)
	}
	ds := make(Dataset, len(raw))
	for key, lesson := range raw {
		day, err := strconv.Atoi(key)
		if err != nil {
			return nil, Errorf(EINVALID, "dataset key %q is not a day number", key)
		}
		ds[day] = lesson
	}
	return ds, nil
}
