package extract

import (
	"regexp"
	"time"

	"github.com/rotisserie/eris"

	"github.com/opencountrieslist/advisory-cli/internal/htmltext"
)

var lastUpdatedRe = regexp.MustCompile(`(?i)last updated:?\s*([A-Za-z0-9, /]+)`)

// ErrNoLastUpdated reports a page that carries no "Last updated" line at
// all, as opposed to one whose date would not parse.
var ErrNoLastUpdated = eris.New("extract: no last-updated line")

// Layouts the advisory pages have been seen to use for their update line.
var dateLayouts = []string{
	"January 2, 2006",
	"01/02/2006",
	"1/2/2006",
	"2 January 2006",
}

// LastUpdated parses the page's own "Last updated" line. A page without one,
// or with a date in an unrecognized shape, is a soft miss: callers log it
// and leave the record's timestamp nil.
func LastUpdated(body string) (time.Time, error) {
	m := lastUpdatedRe.FindStringSubmatch(htmltext.Normalize(body))
	if m == nil {
		return time.Time{}, ErrNoLastUpdated
	}

	raw := m[1]
	for _, layout := range dateLayouts {
		// The capture is greedy about trailing words; shrink until a
		// layout fits.
		for end := len(raw); end > 0; end-- {
			if t, err := time.Parse(layout, trimDate(raw[:end])); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, eris.Errorf("extract: unparseable last-updated date %q", raw)
}

func trimDate(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == ',') {
		s = s[:len(s)-1]
	}
	return s
}
