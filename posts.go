package lessonsync

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPostLen is the delivery channel's message length budget in
// runes.
const DefaultMaxPostLen = 4000

var (
	// separatorRe matches a line authors use to force a post break.
	separatorRe = regexp.MustCompile(`^\s*(?:-{3,}|={3,}|\*{3,})\s*$`)

	// paragraphRe matches blank-line paragraph boundaries.
	paragraphRe = regexp.MustCompile(`\n[ \t]*\n`)
)

// SplitPosts splits lesson text into delivery-sized posts. Manual separator
// lines win: if splitting on them yields at least two non-empty posts those
// are returned as-is. Otherwise text within maxLen is returned unsplit, and
// longer text is packed greedily at paragraph boundaries, with a line-level
// fallback for paragraphs that alone exceed maxLen. A single line longer
// than maxLen is never sub-split. Lengths are counted in runes.
func SplitPosts(text string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxPostLen
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil
	}

	if posts := splitManual(text); len(posts) >= 2 {
		return posts
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}
	return autoSplit(text, maxLen)
}

// splitManual splits strictly on separator lines. Returns nil unless that
// produces at least two non-empty posts.
func splitManual(text string) []string {
	var posts []string
	var cur []string

	flush := func() {
		post := strings.TrimSpace(strings.Join(cur, "\n"))
		if post != "" {
			posts = append(posts, post)
		}
		cur = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if separatorRe.MatchString(line) {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	if len(posts) >= 2 {
		return posts
	}
	return nil
}

// packer accumulates text units into posts bounded by maxLen.
type packer struct {
	maxLen int
	posts  []string
	cur    strings.Builder
	curLen int
}

func (p *packer) add(unit, sep string) {
	n := utf8.RuneCountInString(unit)
	sepLen := utf8.RuneCountInString(sep)
	if p.curLen > 0 && p.curLen+sepLen+n > p.maxLen {
		p.flush()
	}
	if p.curLen > 0 {
		p.cur.WriteString(sep)
		p.curLen += sepLen
	}
	p.cur.WriteString(unit)
	p.curLen += n
}

func (p *packer) flush() {
	if p.curLen == 0 {
		return
	}
	p.posts = append(p.posts, p.cur.String())
	p.cur.Reset()
	p.curLen = 0
}

func autoSplit(text string, maxLen int) []string {
	p := &packer{maxLen: maxLen}
	for _, para := range paragraphRe.Split(text, -1) {
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) > maxLen {
			// Oversized paragraph: fall back to line boundaries.
			for _, line := range strings.Split(para, "\n") {
				p.add(line, "\n")
			}
			continue
		}
		p.add(para, "\n\n")
	}
	p.flush()
	return p.posts
}
