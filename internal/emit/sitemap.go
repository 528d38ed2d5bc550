package emit

import (
	"encoding/xml"
	"os"
	"time"

	"github.com/rotisserie/eris"
)

const siteURL = "https://opencountrieslist.com/"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders the sitemap document for the site root, stamped with the
// given date.
func Sitemap(now time.Time) ([]byte, error) {
	set := urlset{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		XHTML: "http://www.w3.org/1999/xhtml",
		URLs: []sitemapURL{{
			Loc:        siteURL,
			LastMod:    now.Format("2006-01-02"),
			ChangeFreq: "hourly",
			Priority:   "1.0",
		}},
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "emit: marshal sitemap")
	}
	return append([]byte(xml.Header), body...), nil
}

// WriteSitemap writes the sitemap next to the data document.
func WriteSitemap(path string, now time.Time) error {
	body, err := Sitemap(now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return eris.Wrap(err, "emit: write sitemap")
	}
	return nil
}
