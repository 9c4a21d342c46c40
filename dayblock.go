package lessonsync

import (
	"regexp"
	"strconv"
	"strings"
)

// DayBlock is the raw text belonging to one course day, delimited by
// day-header lines in the master document.
type DayBlock struct {
	Day    int
	Title  string
	Lesson string
	Task   string
}

var (
	// dayHeaderRe matches "Day <n>" and the localized "День <n>", with an
	// optional inline title after a colon.
	dayHeaderRe = regexp.MustCompile(`(?i)^\s*(?:day|день)\s+(\d{1,2})\s*(?::\s*(.*))?$`)

	// taskHeaderRe matches "Task:" and the localized "Задание:"; text on
	// the same line is the first line of the task body.
	taskHeaderRe = regexp.MustCompile(`(?i)^\s*(?:task|задание)\s*:\s*(.*)$`)
)

// blockState tracks which part of a day block the scanner is accumulating.
type blockState int

const (
	inLesson blockState = iota
	inTask
)

// SplitDayBlocks splits a master document into one block per course day.
// A day-header line opens a new block; a task-header line switches the
// block from lesson to task accumulation until the next day header. Day
// headers outside the course range are ignored as noise. Blocks with no
// content after trimming are dropped. When the same day number appears
// twice the later block wins.
//
// Returns EINVALID when the document contains no recognizable day blocks.
func SplitDayBlocks(text string) (map[int]DayBlock, error) {
	blocks := make(map[int]DayBlock)

	var (
		cur    *DayBlock
		state  blockState
		lesson []string
		task   []string
	)

	flush := func() {
		if cur == nil {
			return
		}
		b := *cur
		b.Lesson = strings.TrimSpace(strings.Join(lesson, "\n"))
		b.Task = strings.TrimSpace(strings.Join(task, "\n"))
		if b.Lesson != "" || b.Task != "" {
			blocks[b.Day] = b
		}
		cur = nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if m := dayHeaderRe.FindStringSubmatch(line); m != nil {
			day, _ := strconv.Atoi(m[1])
			if day >= MinDay && day <= MaxDay {
				flush()
				cur = &DayBlock{Day: day, Title: strings.TrimSpace(m[2])}
				state = inLesson
				lesson, task = nil, nil
				continue
			}
		}
		if cur == nil {
			continue
		}
		if state == inLesson {
			if m := taskHeaderRe.FindStringSubmatch(line); m != nil {
				state = inTask
				if first := strings.TrimSpace(m[1]); first != "" {
					task = append(task, first)
				}
				continue
			}
			lesson = append(lesson, line)
			continue
		}
		task = append(task, line)
	}
	flush()

	if len(blocks) == 0 {
		return nil, Errorf(EINVALID, "no day blocks found in source document")
	}
	return blocks, nil
}
