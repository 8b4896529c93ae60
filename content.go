package docsite

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```.*?```")
	linkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	sigilRe     = regexp.MustCompile("[#*`_]")
	newlineRe   = regexp.MustCompile(`[\r\n]+`)
)

// CleanContent strips markdown syntax from a document body for indexing.
// Steps run in order: fenced code blocks are removed entirely, links are
// replaced by their text, the sigils # * ` _ are dropped, newline runs
// become a single space, and the result is trimmed.
func CleanContent(markdown string) string {
	s := codeFenceRe.ReplaceAllString(markdown, "")
	s = linkRe.ReplaceAllString(s, "$1")
	s = sigilRe.ReplaceAllString(s, "")
	s = newlineRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
