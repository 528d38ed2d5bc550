package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

func testRecord(name string) *model.CountryRecord {
	return &model.CountryRecord{
		Country: model.Country{
			Name:         name,
			Abbreviation: "WK",
			URL:          "https://wk.usembassy.gov/covid-19-information/",
			Domain:       "wk.usembassy.gov",
		},
		Entry:        model.EntryYes,
		Test:         model.BinaryYes,
		Quarantine:   model.BinaryNo,
		Preformatted: []string{"Yes."},
		ObservedAt:   time.Date(2021, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildDocument_PreviousOnlyOnChange(t *testing.T) {
	at := time.Date(2021, 3, 2, 12, 0, 0, 0, time.UTC)
	records := []*model.CountryRecord{testRecord("Wakanda"), testRecord("Genovia")}
	events := map[string]*model.ChangeEvent{
		"Wakanda": {
			Country:   "Wakanda",
			Old:       model.StatusTriple{Entry: model.EntryNo, Test: model.BinaryNo, Quarantine: model.BinaryNo},
			New:       model.StatusTriple{Entry: model.EntryYes, Test: model.BinaryYes, Quarantine: model.BinaryNo},
			ChangedAt: at,
		},
	}

	doc := BuildDocument("cycle-1", at, records, events)
	require.Len(t, doc.Records, 2)

	require.NotNil(t, doc.Records[0].Previous)
	assert.Equal(t, model.EntryNo, doc.Records[0].Previous.Entry)
	assert.Equal(t, at, doc.Records[0].Previous.ChangedAt)
	assert.Nil(t, doc.Records[1].Previous)
}

func TestWriteDocument_OmitsInternalFields(t *testing.T) {
	at := time.Date(2021, 3, 2, 12, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "data.json")

	doc := BuildDocument("cycle-1", at, []*model.CountryRecord{testRecord("Wakanda")}, nil)
	require.NoError(t, WriteDocument(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "cycle-1", decoded["cycle_id"])

	rec := decoded["records"].([]any)[0].(map[string]any)
	assert.Equal(t, "Wakanda", rec["name"])
	assert.Equal(t, float64(5), rec["classification"])
	assert.NotContains(t, rec, "domain")
	assert.NotContains(t, rec, "previous")
	assert.NotContains(t, rec, "last_modified")
}

func TestWriteSitemap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	now := time.Date(2021, 3, 2, 12, 0, 0, 0, time.UTC)

	require.NoError(t, WriteSitemap(path, now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, `<?xml`)
	assert.Contains(t, body, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, body, "<loc>https://opencountrieslist.com/</loc>")
	assert.Contains(t, body, "<lastmod>2021-03-02</lastmod>")
	assert.Contains(t, body, "<changefreq>hourly</changefreq>")
	assert.Contains(t, body, "<priority>1.0</priority>")
}
