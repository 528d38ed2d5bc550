package model

import "time"

// Observation is one append-only history row. Rows for a country are totally
// ordered by ObservedAt and are never updated or deleted.
type Observation struct {
	ID           string       `json:"id"`
	CountryName  string       `json:"country"`
	Entry        EntryStatus  `json:"entry"`
	Test         BinaryAnswer `json:"test"`
	Quarantine   BinaryAnswer `json:"quarantine"`
	Preformatted []string     `json:"preformatted"`
	ObservedAt   time.Time    `json:"observed_at"`
}

// Triple returns the observation's classification triple.
func (o *Observation) Triple() StatusTriple {
	return StatusTriple{Entry: o.Entry, Test: o.Test, Quarantine: o.Quarantine}
}

// ChangeEvent describes a detected status transition for one country. It is
// computed once per cycle, immediately before the new observation is
// appended, and is never persisted or read back.
type ChangeEvent struct {
	Country   string // country name, the history key
	Old       StatusTriple
	New       StatusTriple
	ChangedAt time.Time // ObservedAt of the record that broke the streak

	// Narrative is the rendered change sentence; empty when the transition
	// is not worth narrating.
	Narrative string
}
