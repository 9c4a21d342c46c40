package lessonsync

import (
	"fmt"
	"strings"
)

// SyncResult reports the outcome of one sync run. It is returned to the
// caller and never persisted.
type SyncResult struct {
	DaysSynced      int
	DatasetPath     string
	MediaDownloaded int
	DatasetHash     string
	Warnings        []string
}

// FormatWarnings renders warnings for user-facing output: at most max
// entries as a bullet list, followed by a count of the rest. Returns the
// empty string when there are no warnings.
func FormatWarnings(warnings []string, max int) string {
	if len(warnings) == 0 {
		return ""
	}
	if max <= 0 || max > len(warnings) {
		max = len(warnings)
	}

	var b strings.Builder
	for _, w := range warnings[:max] {
		b.WriteString("- ")
		b.WriteString(w)
		b.WriteByte('\n')
	}
	if rest := len(warnings) - max; rest > 0 {
		fmt.Fprintf(&b, "... and %d more warnings\n", rest)
	}
	return b.String()
}
