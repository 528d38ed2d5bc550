// Package directory parses the travel-advisory directory page into the list
// of countries whose embassy pages the pipeline visits.
package directory

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// DefaultURL is the state department's country-specific information index.
const DefaultURL = "https://travel.state.gov/content/travel/en/traveladvisories/COVID-19-Country-Specific-Information.html"

// advisoryHostRe recognizes the embassy, consulate and mission hosts that
// country links point at. Group 1 is the country abbreviation, group 2 the
// host suffix follow-up links are matched against.
var advisoryHostRe = regexp.MustCompile(`^https?://(..|china)\.(usembassy-china\.org\.cn|usembassy\.gov|usconsulate\.gov|usmission\.gov)`)

// nameRe keeps only plausible country names as link texts.
var nameRe = regexp.MustCompile(`^[\w '.,]+$`)

// Parse extracts the country list from the directory page, in page order.
// A duplicate country name means the page layout changed under us, and the
// whole cycle must stop rather than publish half a directory.
func Parse(body []byte) ([]model.Country, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "directory: parse html")
	}

	seen := make(map[string]bool)
	var countries []model.Country
	var dupName string

	doc.Find("tr td a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		m := advisoryHostRe.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		name := strings.TrimSpace(sel.Text())
		if name == "" || !nameRe.MatchString(name) {
			return true
		}
		if seen[name] {
			dupName = name
			return false
		}
		seen[name] = true

		countries = append(countries, model.Country{
			Name:         name,
			Abbreviation: strings.ToUpper(m[1]),
			URL:          href,
			Domain:       m[2],
		})
		return true
	})

	if dupName != "" {
		return nil, eris.Errorf("directory: duplicate country %q", dupName)
	}
	return countries, nil
}
