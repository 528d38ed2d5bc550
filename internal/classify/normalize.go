package classify

import (
	"strings"
	"unicode"

	"github.com/opencountrieslist/advisory-cli/internal/htmltext"
)

// NormalizeAnswer reduces a raw answer fragment to the classifier's input
// form: tags stripped, punctuation removed, whitespace collapsed, lower case.
// This is distinct from the display preformatter; the two never share output.
func NormalizeAnswer(raw string) string {
	stripped := htmltext.StripTags(raw)

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.ToLower(htmltext.Collapse(b.String()))
}

// containsAny reports whether any phrase in the bucket appears as a
// substring of the normalized answer.
func containsAny(answer string, bucket []string) bool {
	for _, phrase := range bucket {
		if strings.Contains(answer, phrase) {
			return true
		}
	}
	return false
}
