// Package change compares fresh observations to historical state and turns
// meaningful transitions into human-readable sentences.
package change

import (
	"strings"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// statusGroup is the coarse bucket an entry status narrates under. A
// transition inside one group is not worth a sentence.
type statusGroup int

const (
	groupUnknown statusGroup = iota // Unknown, Read More
	groupClosed                     // No, Rarely, Sometimes
	groupOpen                       // Yes
)

func entryGroup(s model.EntryStatus) statusGroup {
	switch s {
	case model.EntryNo, model.EntryRarely, model.EntrySometimes:
		return groupClosed
	case model.EntryYes:
		return groupOpen
	default:
		return groupUnknown
	}
}

const travelerStem = "requires U.S. travelers to"

// Fixed clause texts, keyed by the new value.
const (
	clauseNoLongerOpen = "is no longer open to U.S. travelers"
	clauseOnlySpecific = "is now only open to U.S. travelers who enter for specific purposes"
	clauseNowOpen      = "is now open to U.S. travelers"
	clauseTestNow      = "now " + travelerStem + " test negative for COVID-19 before entry"
	clauseTestNoLonger = "no longer " + travelerStem + " test negative for COVID-19 before entry"
	clauseQuarNow      = "now " + travelerStem + " quarantine upon arrival"
	clauseQuarNoLonger = "no longer " + travelerStem + " quarantine upon arrival"
)

// Narrate renders the transition between two triples as one sentence, or
// "" when nothing about the transition deserves narration.
func Narrate(country string, from, to model.StatusTriple) string {
	clauses := buildClauses(from, to)
	if len(clauses) == 0 {
		return ""
	}

	text := country + " " + joinClauses(clauses)
	text = repairIdioms(text)

	text = strings.TrimRight(text, ".")
	return text + "."
}

func buildClauses(from, to model.StatusTriple) []string {
	var clauses []string

	// Entry clause: only across coarse groups, and only when the new
	// status has a defined sentence (transitions into Unknown/Read More
	// stay silent).
	if entryGroup(from.Entry) != entryGroup(to.Entry) {
		switch to.Entry {
		case model.EntryNo, model.EntryRarely:
			clauses = append(clauses, clauseNoLongerOpen)
		case model.EntrySometimes:
			clauses = append(clauses, clauseOnlySpecific)
		case model.EntryYes:
			clauses = append(clauses, clauseNowOpen)
		}
	}

	// Test/quarantine clauses are suppressed whenever the new entry group
	// is closed: a country you cannot enter has no meaningful test rules.
	if entryGroup(to.Entry) == groupClosed {
		return clauses
	}

	// Leaving a closed state, the first clause that would start with
	// "now" reads as a caveat, not an independent change.
	caveat := entryGroup(from.Entry) == groupClosed

	if to.Test != from.Test {
		switch to.Test {
		case model.BinaryYes:
			clauses = append(clauses, rephrase(clauseTestNow, &caveat))
		case model.BinaryNo:
			clauses = append(clauses, clauseTestNoLonger)
		}
	}
	if to.Quarantine != from.Quarantine {
		switch to.Quarantine {
		case model.BinaryYes:
			clauses = append(clauses, rephrase(clauseQuarNow, &caveat))
		case model.BinaryNo:
			clauses = append(clauses, clauseQuarNoLonger)
		}
	}

	return clauses
}

func rephrase(clause string, caveat *bool) string {
	if *caveat && strings.HasPrefix(clause, "now ") {
		*caveat = false
		return "but " + strings.TrimPrefix(clause, "now ")
	}
	return clause
}

func joinClauses(clauses []string) string {
	switch len(clauses) {
	case 1:
		return clauses[0]
	case 2:
		return clauses[0] + ", and " + clauses[1]
	default:
		return clauses[0] + ", " + clauses[1] + ", and " + clauses[2]
	}
}

// idiomRepairs is a literal pattern-fix list, not a grammar. Shapes it does
// not cover pass through as accepted imperfections.
var idiomRepairs = []struct{ old, new string }{
	{", and but ", ", but "},
	{" and but ", " but "},
}

func repairIdioms(s string) string {
	for _, r := range idiomRepairs {
		s = strings.ReplaceAll(s, r.old, r.new)
	}

	// When the final two clauses both lean on the traveler stem with
	// same-polarity leads, the second occurrence collapses to a bare "to".
	// A "no longer" clause never merges into a "now"/"but" one (or the
	// reverse); stripping the lead there would flip the clause's meaning.
	if strings.Count(s, travelerStem) >= 2 {
		i := strings.LastIndex(s, travelerStem)
		j := strings.Index(s, travelerStem)
		if stemNegated(s[:i]) == stemNegated(s[:j]) {
			head, tail := s[:i], s[i+len(travelerStem):]
			for _, lead := range []string{"now ", "no longer ", "but "} {
				if strings.HasSuffix(head, lead) {
					head = strings.TrimSuffix(head, lead)
					break
				}
			}
			s = head + "to" + tail
		}
	}

	return s
}

func stemNegated(head string) bool {
	return strings.HasSuffix(head, "no longer ")
}
