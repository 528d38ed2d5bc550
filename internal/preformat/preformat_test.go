package preformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswer_OrdinarySentence(t *testing.T) {
	got := Answer("Wakanda", "<li>Yes, with a valid visa.</li>")
	assert.Equal(t, "Yes, with a valid visa.", got)
}

func TestAnswer_AllowList(t *testing.T) {
	got := Answer("", "Yes! Entry via e-visa [portal] &amp; airports (PCR test required)?")
	assert.Equal(t, "Yes. Entry via evisa portal airports (PCR test required).", got)
}

func TestAnswer_TerminalPunctuation(t *testing.T) {
	assert.Equal(t, "Entry is permitted.", Answer("", "entry is permitted"))
}

func TestAnswer_Canonicalization(t *testing.T) {
	got := Answer("", "YES US citizens may enter")
	assert.Equal(t, "Yes. U.S. citizens may enter.", got)
}

func TestAnswer_RepeatedPeriods(t *testing.T) {
	got := Answer("", "No.. the border is closed...")
	assert.Equal(t, "No. the border is closed.", got)
}

func TestAnswer_URLReplacement(t *testing.T) {
	got := Answer("", `See https://wk.usembassy.gov/updated/ for details`)
	assert.Equal(t, "See the website for details.", got)
}

func TestAnswer_CountryPrefixStripped(t *testing.T) {
	got := Answer("Wakanda", "Wakanda Yes, with a valid visa.")
	assert.Equal(t, "Yes, with a valid visa.", got)

	// The prefix only comes off when a Yes/No token follows.
	kept := Answer("Wakanda", "Wakanda remains closed to visitors.")
	assert.Equal(t, "Wakanda remains closed to visitors.", kept)
}

func TestAnswer_LeadingYesBoundary(t *testing.T) {
	got := Answer("", "Yes Travelers must hold a visa.")
	assert.Equal(t, "Yes. Travelers must hold a visa.", got)
}

func TestAnswer_Empty(t *testing.T) {
	assert.Equal(t, "", Answer("Wakanda", ""))
	assert.Equal(t, "", Answer("Wakanda", "<li>  </li>"))
}

// Running the preformatter on its own output must be a fixed point for
// ordinary sentences.
func TestAnswer_Idempotent(t *testing.T) {
	inputs := []string{
		"<li>Yes, with a valid visa.</li>",
		"YES US citizens may enter",
		"No.. the border is closed...",
		"Yes Travelers must hold a visa.",
		"See https://wk.usembassy.gov/updated/ for details",
		"entry is permitted",
	}
	for _, in := range inputs {
		once := Answer("Wakanda", in)
		twice := Answer("Wakanda", once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}
