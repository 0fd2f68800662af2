package wikidump

import (
	"regexp"
	"strings"
)

var fileRE = regexp.MustCompile(`(?i)\[(?:file|image):([^\|\]]+)`)

// FindFiles returns every File:/Image: reference in an article body.
//
// Commented-out references are included on purpose: a lot of the file
// references in real dumps live inside comments.
func FindFiles(text string) []string {
	cleaned := nowikiRE.ReplaceAllString(text, "")
	matches := fileRE.FindAllStringSubmatch(cleaned, -1)

	rv := make([]string, 0, len(matches))
	for _, m := range matches {
		rv = append(rv, strings.TrimSpace(m[1]))
	}
	return rv
}
