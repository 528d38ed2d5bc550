package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragments_Entry(t *testing.T) {
	body := `<ul><li><strong>U.S. citizens permitted to enter?</strong> Yes, with a valid visa.</li></ul>`

	frags := Fragments(body, EntryQuestion)
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Answer, "Yes, with a valid visa.")
}

func TestFragments_OptionalAre(t *testing.T) {
	body := `<li>Are U.S. citizens permitted to enter? No.</li>`

	frags := Fragments(body, EntryQuestion)
	require.Len(t, frags, 1)
	assert.Equal(t, "Are U.S. citizens permitted to enter?", frags[0].Question)
	assert.Contains(t, frags[0].Answer, "No.")
}

func TestFragments_CaseInsensitiveAndMultiline(t *testing.T) {
	body := "<li>ARE U.S. CITIZENS PERMITTED TO ENTER?\nYes, but\nonly under limited circumstances.</li>"

	frags := Fragments(body, EntryQuestion)
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Answer, "only under limited circumstances")
}

func TestFragments_MultipleMatches(t *testing.T) {
	body := `<li>U.S. citizens permitted to enter? Yes.</li>
		<li>Are U.S. citizens permitted to enter? Yes, not for tourism.</li>`

	frags := Fragments(body, EntryQuestion)
	assert.Len(t, frags, 2)
}

func TestFragments_NoneFound(t *testing.T) {
	assert.Nil(t, Fragments("<p>nothing relevant here</p>", EntryQuestion))
}

func TestFragments_AnswerStopsAtListClose(t *testing.T) {
	body := `<li>U.S. citizens permitted to enter? Yes.</li><li>Unrelated answer.</li>`

	frags := Fragments(body, EntryQuestion)
	require.Len(t, frags, 1)
	assert.NotContains(t, frags[0].Answer, "Unrelated")
}

func TestFragments_TestAndQuarantineQuestions(t *testing.T) {
	body := `<li>Is a negative COVID-19 test (PCR and/or serology) required for entry? Yes.</li>
		<li>Are U.S. citizens required to quarantine? No.</li>`

	require.Len(t, Fragments(body, TestQuestion), 1)
	require.Len(t, Fragments(body, QuarantineQuestion), 1)
}

const multiCountryPage = `
<h2>COVID-19 Information: Eswatini</h2>
<ul><li>U.S. citizens permitted to enter? No.</li></ul>
<h2>COVID-19 Information: Saint Kitts & Nevis</h2>
<ul><li>U.S. citizens permitted to enter? Yes.</li></ul>
<h2>Local Resources</h2>
<p>Consular contacts.</p>`

func TestCountrySection_NarrowsToOwnSection(t *testing.T) {
	section := CountrySection(multiCountryPage, "Eswatini")
	frags := Fragments(section, EntryQuestion)
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Answer, "No.")
	assert.NotContains(t, section, "Saint Kitts")
}

func TestCountrySection_AmpersandVariant(t *testing.T) {
	// Directory name uses "and"; the page header writes "&".
	section := CountrySection(multiCountryPage, "Saint Kitts and Nevis")
	frags := Fragments(section, EntryQuestion)
	require.Len(t, frags, 1)
	assert.Contains(t, frags[0].Answer, "Yes.")
}

func TestCountrySection_NoHeaderReturnsWholeBody(t *testing.T) {
	body := `<li>U.S. citizens permitted to enter? Yes.</li>`
	assert.Equal(t, body, CountrySection(body, "Wakanda"))
}

func TestLastUpdated(t *testing.T) {
	ts, err := LastUpdated(`<p>Last updated: July 22, 2021</p>`)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 7, 22, 0, 0, 0, 0, time.UTC), ts)

	ts, err = LastUpdated(`<em>Last Updated: 07/22/2021 10:00</em>`)
	require.NoError(t, err)
	assert.Equal(t, 2021, ts.Year())

	_, err = LastUpdated(`<p>no date here</p>`)
	assert.Error(t, err)

	_, err = LastUpdated(`<p>Last updated: sometime soon</p>`)
	assert.Error(t, err)
}
