package analysis

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// minMeaningfulTextLen is the threshold below which extracted resume text is
// treated as empty.
const minMeaningfulTextLen = 10

// Normalize lowercases text and collapses all whitespace runs to single
// spaces. Detection matches against the normalized form; the original text
// is kept for level inference so excerpt offsets stay meaningful.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(text), " "))
}

// IsEmptyText reports whether extracted text is too short to analyze.
func IsEmptyText(text string) bool {
	return len(strings.TrimSpace(text)) < minMeaningfulTextLen
}
