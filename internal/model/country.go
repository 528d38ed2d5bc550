// Package model defines the data types shared across the advisory pipeline.
package model

import "time"

// Country is one entry from the advisory directory: where a country's
// advisory page lives and how to label it.
type Country struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	URL          string `json:"url"`
	Domain       string `json:"domain"`
}

// CountryRecord is the per-cycle result for one country. It is owned by the
// aggregation step until handed to change detection, and is never mutated
// after that handoff.
type CountryRecord struct {
	Country

	Entry      EntryStatus  `json:"classification"`
	Test       BinaryAnswer `json:"test_required"`
	Quarantine BinaryAnswer `json:"quarantine_required"`

	// Preformatted holds display-ready answer texts. Set semantics: order
	// carries no meaning and duplicates are collapsed.
	Preformatted []string `json:"preformatted"`

	// LastModified is the page's own "last updated" date, when one parsed.
	LastModified *time.Time `json:"last_modified,omitempty"`

	ObservedAt time.Time `json:"observed_at"`
}

// Triple returns the record's classification triple.
func (r *CountryRecord) Triple() StatusTriple {
	return StatusTriple{Entry: r.Entry, Test: r.Test, Quarantine: r.Quarantine}
}
