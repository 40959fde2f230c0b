package notion

import (
	"regexp"
	"strings"
)

var (
	compactIDPattern = regexp.MustCompile(`(?i)[0-9a-f]{32}`)
	uuidIDPattern    = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)
)

// ExtractPageID finds the page id in a share link. A 32-hex run wins over a
// dashed UUID. The id is returned lower-case without dashes.
func ExtractPageID(link string) (string, bool) {
	if m := compactIDPattern.FindString(link); m != "" {
		return strings.ToLower(m), true
	}
	if m := uuidIDPattern.FindString(link); m != "" {
		return strings.ToLower(strings.ReplaceAll(m, "-", "")), true
	}
	return "", false
}

// DashedID formats a 32-hex id as 8-4-4-4-12.
func DashedID(id string) string {
	if len(id) != 32 {
		return id
	}
	return id[0:8] + "-" + id[8:12] + "-" + id[12:16] + "-" + id[16:20] + "-" + id[20:]
}
