package classify

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

var (
	wordYes = regexp.MustCompile(`\byes\b`)
	wordNo  = regexp.MustCompile(`\bno\b`)
)

// Classifier evaluates answer fragments against a RuleSet. It is stateless
// and safe for concurrent use.
type Classifier struct {
	rules *RuleSet
}

// New creates a Classifier over the given rule tables.
func New(rules *RuleSet) *Classifier {
	return &Classifier{rules: rules}
}

// Entry classifies a raw entry-status answer.
//
// The walk order is fixed: an affirming answer consults the yes-sometimes
// bucket before yes-always and defaults to Yes; a denying answer consults
// no-rarely before no-always and defaults to No; anything else runs the
// override sets in No, Rarely, Sometimes, Yes order. A non-empty answer that
// matches nothing is a classifier miss: it returns Unknown and is logged for
// manual review, never treated as an error.
func (c *Classifier) Entry(raw string) model.EntryStatus {
	answer := NormalizeAnswer(raw)

	if wordYes.MatchString(answer) || strings.HasPrefix(answer, "yes") {
		if containsAny(answer, c.rules.Entry.YesSometimes) {
			return model.EntrySometimes
		}
		if containsAny(answer, c.rules.Entry.YesAlways) {
			return model.EntryYes
		}
		return model.EntryYes
	}

	if wordNo.MatchString(answer) || strings.HasPrefix(answer, "no") {
		if containsAny(answer, c.rules.Entry.NoRarely) {
			return model.EntryRarely
		}
		if containsAny(answer, c.rules.Entry.NoAlways) {
			return model.EntryNo
		}
		return model.EntryNo
	}

	switch {
	case containsAny(answer, c.rules.Entry.OtherNo):
		return model.EntryNo
	case containsAny(answer, c.rules.Entry.OtherRarely):
		return model.EntryRarely
	case containsAny(answer, c.rules.Entry.OtherSometimes):
		return model.EntrySometimes
	case containsAny(answer, c.rules.Entry.OtherYes):
		return model.EntryYes
	}

	if answer == "" {
		return model.EntryUnknown
	}

	zap.L().Warn("classify: unmatched entry answer",
		zap.String("raw", raw),
		zap.String("normalized", answer),
	)
	return model.EntryUnknown
}

// Test classifies a raw test-required answer. The question text is prepended
// before matching: some answers elide their subject ("...to Mexico.") and
// only make sense read together with the question.
func (c *Classifier) Test(question, raw string) model.BinaryAnswer {
	if NormalizeAnswer(raw) == "" {
		return model.BinaryUnknown
	}
	return c.binary(c.rules.Test, NormalizeAnswer(question+" "+raw), raw, "test")
}

// Quarantine classifies a raw quarantine-required answer.
func (c *Classifier) Quarantine(raw string) model.BinaryAnswer {
	answer := NormalizeAnswer(raw)
	if answer == "" {
		return model.BinaryUnknown
	}
	return c.binary(c.rules.Quarantine, answer, raw, "quarantine")
}

// binary runs the shared two-bucket walk: Unknown overrides first, then the
// yes/no word branches, then the phrase buckets.
func (c *Classifier) binary(rules BinaryRules, answer, raw, kind string) model.BinaryAnswer {
	if containsAny(answer, rules.Unknown) {
		return model.BinaryUnknown
	}

	if wordYes.MatchString(answer) || strings.HasPrefix(answer, "yes") {
		return model.BinaryYes
	}
	if wordNo.MatchString(answer) || strings.HasPrefix(answer, "no") {
		return model.BinaryNo
	}

	if containsAny(answer, rules.No) {
		return model.BinaryNo
	}
	if containsAny(answer, rules.Yes) {
		return model.BinaryYes
	}

	zap.L().Warn("classify: unmatched binary answer",
		zap.String("question", kind),
		zap.String("raw", raw),
		zap.String("normalized", answer),
	)
	return model.BinaryUnknown
}
