// Package emit renders cycle results into the published artifacts: the
// data.json document and the sitemap.
package emit

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// Document is one cycle's full output.
type Document struct {
	CycleID    string    `json:"cycle_id"`
	ObservedAt time.Time `json:"observed_at"`
	Records    []Record  `json:"records"`
}

// Record is the published view of a country. Internal fields such as the
// embassy domain stay out of the document.
type Record struct {
	Name         string             `json:"name"`
	Abbreviation string             `json:"abbreviation"`
	URL          string             `json:"url"`
	Entry        model.EntryStatus  `json:"classification"`
	Test         model.BinaryAnswer `json:"test_required"`
	Quarantine   model.BinaryAnswer `json:"quarantine_required"`
	Preformatted []string           `json:"preformatted"`
	LastModified *time.Time         `json:"last_modified,omitempty"`

	// Previous is present only for countries that changed this cycle.
	Previous *Previous `json:"previous,omitempty"`
}

// Previous captures the state a changed country held before this cycle.
type Previous struct {
	Entry      model.EntryStatus  `json:"classification"`
	Test       model.BinaryAnswer `json:"test_required"`
	Quarantine model.BinaryAnswer `json:"quarantine_required"`
	ChangedAt  time.Time          `json:"changed_at"`
}

// BuildDocument assembles the cycle document. events maps country name to
// the change detected for it this cycle, if any.
func BuildDocument(cycleID string, observedAt time.Time, records []*model.CountryRecord, events map[string]*model.ChangeEvent) Document {
	doc := Document{
		CycleID:    cycleID,
		ObservedAt: observedAt,
		Records:    make([]Record, 0, len(records)),
	}
	for _, rec := range records {
		out := Record{
			Name:         rec.Name,
			Abbreviation: rec.Abbreviation,
			URL:          rec.URL,
			Entry:        rec.Entry,
			Test:         rec.Test,
			Quarantine:   rec.Quarantine,
			Preformatted: rec.Preformatted,
			LastModified: rec.LastModified,
		}
		if event, ok := events[rec.Name]; ok && event != nil {
			out.Previous = &Previous{
				Entry:      event.Old.Entry,
				Test:       event.Old.Test,
				Quarantine: event.Old.Quarantine,
				ChangedAt:  event.ChangedAt,
			}
		}
		doc.Records = append(doc.Records, out)
	}
	return doc
}

// WriteDocument writes the document as indented JSON.
func WriteDocument(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "emit: marshal document")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "emit: write document")
	}
	return nil
}
