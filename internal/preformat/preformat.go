// Package preformat produces display-ready versions of raw answer
// fragments. The output is purely cosmetic: it is stored and shown to humans
// and never feeds back into classification.
package preformat

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/opencountrieslist/advisory-cli/internal/htmltext"
)

var (
	urlRe          = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	repeatDotRe    = regexp.MustCompile(`\.+`)
	leadBoundaryRe = regexp.MustCompile(`^(Yes|No) (\p{Lu})`)
)

// canonical rewrites shouty abbreviations into their display forms.
var canonical = strings.NewReplacer(
	"YES", "Yes",
	"NO", "No",
	"US", "U.S.",
)

// Answer cleans a raw answer fragment for display. country, when non-empty,
// lets a redundant leading "<Country> Yes/No" echo be stripped. Running
// Answer on its own output is a fixed point for ordinary sentences.
func Answer(country, raw string) string {
	t := htmltext.Normalize(raw)

	// URLs carry characters the allow-list would mangle; swap them out
	// before filtering.
	t = urlRe.ReplaceAllString(t, "the website")

	t = allowList(t)
	t = htmltext.Collapse(t)
	t = canonical.Replace(t)
	t = stripCountryPrefix(country, t)

	if t != "" && !strings.HasSuffix(t, ".") {
		t += "."
	}

	t = repeatDotRe.ReplaceAllString(t, ".")
	t = strings.ReplaceAll(t, " .", "")
	t = strings.TrimSpace(t)
	t = capitalizeFirst(t)
	t = leadBoundaryRe.ReplaceAllString(t, "$1. $2")

	return t
}

// allowList drops every rune outside letters, digits, space, comma, period
// and parentheses.
func allowList(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == ',' || r == '.' || r == '(' || r == ')':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripCountryPrefix removes a leading "<Country> " echo when the rest of
// the text starts with a Yes/No token, e.g. "Mexico Yes, with a visa" from a
// page that repeats the section header inside the answer.
func stripCountryPrefix(country, s string) string {
	if country == "" {
		return s
	}
	prefix := country + " "
	if len(s) <= len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s
	}
	rest := s[len(prefix):]
	if strings.HasPrefix(rest, "Yes") || strings.HasPrefix(rest, "No") {
		return rest
	}
	return s
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
