// Package extract locates question/answer fragments in advisory page
// bodies. It is the one place allowed to pattern-match raw markup: the
// phrases and boundaries here are fixed and documented, which bounds the
// fragile-scraping risk to a single component.
package extract

import (
	"regexp"
	"strings"

	"github.com/opencountrieslist/advisory-cli/internal/htmltext"
)

// Question identifies one of the tracked advisory questions and the phrase
// that anchors it in page markup.
type Question struct {
	Kind string
	Text string

	re *regexp.Regexp
}

// fragmentPattern anchors on the question phrase (optional leading "Are ",
// optional trailing question mark) and captures through to the next
// list-item close. (?s) lets answers span line breaks.
func newQuestion(kind, text string) Question {
	pattern := `(?is)((?:are )?` + regexp.QuoteMeta(text) + `\??)(.*?)</li>`
	return Question{Kind: kind, Text: text, re: regexp.MustCompile(pattern)}
}

// The three tracked questions, phrased as the embassy FAQ pages phrase them.
var (
	EntryQuestion      = newQuestion("entry", `U.S. citizens permitted to enter`)
	TestQuestion       = newQuestion("test", `Is a negative COVID-19 test (PCR and/or serology) required for entry`)
	QuarantineQuestion = newQuestion("quarantine", `U.S. citizens required to quarantine`)
)

// Fragment is one (question, answer) pair lifted from a page. Answer holds
// raw markup; callers normalize or preformat it as needed.
type Fragment struct {
	Question string
	Answer   string
}

// Fragments returns every fragment for q in body, in document order. An
// empty result for EntryQuestion is the signal that primary extraction
// failed; for the other questions it simply means Unknown.
func Fragments(body string, q Question) []Fragment {
	matches := q.re.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	frags := make([]Fragment, 0, len(matches))
	for _, m := range matches {
		frags = append(frags, Fragment{Question: m[1], Answer: m[2]})
	}
	return frags
}

var headerRe = regexp.MustCompile(`(?is)<h([2-4])[^>]*>(.*?)</h[2-4]>`)

// CountrySection narrows a multi-country page to the slice belonging to the
// named country. Embassies covering several countries publish one page with
// per-country section headers; matching must not cross into a neighboring
// country's section. The country matches a header when the header's text
// contains its name, or its name with "and" written as "&". When no header
// matches, the whole body is returned.
func CountrySection(body, country string) string {
	if country == "" {
		return body
	}

	headers := headerRe.FindAllStringSubmatchIndex(body, -1)
	if len(headers) < 2 {
		return body
	}

	wanted := strings.ToLower(country)
	variant := strings.ToLower(strings.ReplaceAll(country, " and ", " & "))

	for i, h := range headers {
		text := strings.ToLower(htmltext.Normalize(body[h[4]:h[5]]))
		if !strings.Contains(text, wanted) && !strings.Contains(text, variant) {
			continue
		}
		start := h[1] // end of the matched header
		end := len(body)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		return body[start:end]
	}

	return body
}
