package model

// EntryStatus is the classified answer to "are U.S. citizens permitted to
// enter?". The ordinal values are load-bearing: aggregation tie-breaks prefer
// lower values, so the order Unknown < ReadMore < No < Rarely < Sometimes <
// Yes must not be rearranged.
type EntryStatus int

const (
	EntryUnknown EntryStatus = iota
	EntryReadMore
	EntryNo
	EntryRarely
	EntrySometimes
	EntryYes
)

var entryNames = map[EntryStatus]string{
	EntryUnknown:   "Unknown",
	EntryReadMore:  "Read More",
	EntryNo:        "No",
	EntryRarely:    "Rarely",
	EntrySometimes: "Sometimes",
	EntryYes:       "Yes",
}

func (s EntryStatus) String() string {
	if name, ok := entryNames[s]; ok {
		return name
	}
	return "Unknown"
}

// BinaryAnswer is the classified answer to a yes/no question (negative test
// required, quarantine required).
type BinaryAnswer int

const (
	BinaryUnknown BinaryAnswer = iota
	BinaryYes
	BinaryNo
)

var binaryNames = map[BinaryAnswer]string{
	BinaryUnknown: "Unknown",
	BinaryYes:     "Yes",
	BinaryNo:      "No",
}

func (b BinaryAnswer) String() string {
	if name, ok := binaryNames[b]; ok {
		return name
	}
	return "Unknown"
}

// TestRequired reports whether a negative test is required for entry.
type TestRequired = BinaryAnswer

// QuarantineRequired reports whether quarantine is required on arrival.
type QuarantineRequired = BinaryAnswer

// StatusTriple is the (entry, test, quarantine) classification for a country
// at one observation. Change detection compares whole triples.
type StatusTriple struct {
	Entry      EntryStatus  `json:"entry"`
	Test       BinaryAnswer `json:"test"`
	Quarantine BinaryAnswer `json:"quarantine"`
}

// Equal reports whether two triples match in all three positions.
func (t StatusTriple) Equal(o StatusTriple) bool {
	return t.Entry == o.Entry && t.Test == o.Test && t.Quarantine == o.Quarantine
}
