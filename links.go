package wikidump

import (
	"regexp"
	"strings"
)

var (
	linkRE    = regexp.MustCompile(`\[\[([^\|\]]+)`)
	nowikiRE  = regexp.MustCompile(`(?ms)<nowiki>.*?</nowiki>`)
	commentRE = regexp.MustCompile(`(?ms)<!--.*?-->`)
)

// FindLinks returns the targets of every [[internal link]] in an
// article body, in order of appearance. Links inside comments or
// nowiki sections don't count.
func FindLinks(text string) []string {
	cleaned := nowikiRE.ReplaceAllString(commentRE.ReplaceAllString(text, ""), "")
	matches := linkRE.FindAllStringSubmatch(cleaned, -1)

	rv := make([]string, 0, len(matches))
	for _, m := range matches {
		rv = append(rv, strings.TrimSpace(m[1]))
	}
	return rv
}
