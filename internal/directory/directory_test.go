package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

const directoryPage = `<html><body><table>
<tr><td><a href="https://mx.usembassy.gov/covid-19-information/">Mexico</a></td></tr>
<tr><td><a href="https://china.usembassy-china.org.cn/covid-19-information/">China</a></td></tr>
<tr><td><a href="https://cw.usconsulate.gov/covid-19-information/">Curacao</a></td></tr>
<tr><td><a href="https://uk.usembassy.gov/covid-19-coronavirus-information/">United Kingdom</a></td></tr>
<tr><td><a href="https://travel.state.gov/other-page.html">Travel Advisories</a></td></tr>
<tr><td><a href="https://evil.example.com/xx.usembassy.gov/">Phishing</a></td></tr>
</table></body></html>`

func TestParse(t *testing.T) {
	countries, err := Parse([]byte(directoryPage))
	require.NoError(t, err)
	require.Len(t, countries, 4)

	assert.Equal(t, model.Country{
		Name:         "Mexico",
		Abbreviation: "MX",
		URL:          "https://mx.usembassy.gov/covid-19-information/",
		Domain:       "usembassy.gov",
	}, countries[0])

	assert.Equal(t, "China", countries[1].Name)
	assert.Equal(t, "CHINA", countries[1].Abbreviation)
	assert.Equal(t, "usembassy-china.org.cn", countries[1].Domain)

	assert.Equal(t, "usconsulate.gov", countries[2].Domain)
	assert.Equal(t, "United Kingdom", countries[3].Name)
}

func TestParse_DuplicateCountryAborts(t *testing.T) {
	page := `<table>
<tr><td><a href="https://mx.usembassy.gov/covid-19-information/">Mexico</a></td></tr>
<tr><td><a href="https://mx.usembassy.gov/other-covid-page/">Mexico</a></td></tr>
</table>`

	_, err := Parse([]byte(page))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mexico")
}

func TestParse_EmptyPage(t *testing.T) {
	countries, err := Parse([]byte("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, countries)
}
