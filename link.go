package lessonsync

import (
	"fmt"
	"regexp"
	"sort"
)

// FileLink is one remote-file URL occurrence found in day text. Offsets
// are byte positions into the scanned text.
type FileLink struct {
	RemoteID string
	Start    int
	End      int
}

// driveLinkRes are the recognized remote-link URL shapes. The first
// capture group of each pattern is the remote file identifier.
var driveLinkRes = []*regexp.Regexp{
	regexp.MustCompile(`https://drive\.google\.com/file/d/([A-Za-z0-9_-]{10,})[^\s<>()"']*`),
	regexp.MustCompile(`https://drive\.google\.com/open\?id=([A-Za-z0-9_-]{10,})[^\s<>()"']*`),
	regexp.MustCompile(`https://drive\.google\.com/uc\?(?:export=\w+&)?id=([A-Za-z0-9_-]{10,})[^\s<>()"']*`),
}

// FindFileLinks scans text for embedded remote file links and returns
// every occurrence in position order.
func FindFileLinks(text string) []FileLink {
	var links []FileLink
	for _, re := range driveLinkRes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			links = append(links, FileLink{
				RemoteID: text[m[2]:m[3]],
				Start:    m[0],
				End:      m[1],
			})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Start < links[j].Start })
	return links
}

// MarkerToken builds the marker for the ordinal-th distinct file of a day.
// Ordinals are 1-based first-occurrence positions, so the token stays
// stable across runs and unique within a day.
func MarkerToken(remoteID string, ordinal int) string {
	return fmt.Sprintf("MEDIA_%s_%d", remoteID, ordinal)
}

var markerRe = regexp.MustCompile(`MEDIA_[A-Za-z0-9_-]+_\d+`)

// FindMarkers returns every marker token present in text, in order.
func FindMarkers(text string) []string {
	return markerRe.FindAllString(text, -1)
}

var unsafeFileCharRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFileName maps a remote file name to the safe character set used
// for local asset paths.
func SanitizeFileName(name string) string {
	return unsafeFileCharRe.ReplaceAllString(name, "_")
}

// MediaRelPath returns the day-namespaced relative path for an asset.
func MediaRelPath(day int, name string) string {
	return fmt.Sprintf("day_%02d/%s", day, SanitizeFileName(name))
}
