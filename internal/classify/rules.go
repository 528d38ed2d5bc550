// Package classify maps normalized answer fragments to discrete status
// codes. The matching engine is fixed; the phrase tables it consumes are
// versioned data (rules.yaml) so they can be extended without touching the
// engine.
package classify

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// EntryRules holds the ordered phrase buckets for the entry-status question.
type EntryRules struct {
	// Consulted when the answer affirms ("yes" branch).
	YesSometimes []string `yaml:"yes_sometimes"`
	YesAlways    []string `yaml:"yes_always"`

	// Consulted when the answer denies ("no" branch).
	NoRarely []string `yaml:"no_rarely"`
	NoAlways []string `yaml:"no_always"`

	// Override sets for answers that start with neither yes nor no,
	// consulted in this order.
	OtherNo        []string `yaml:"other_no"`
	OtherRarely    []string `yaml:"other_rarely"`
	OtherSometimes []string `yaml:"other_sometimes"`
	OtherYes       []string `yaml:"other_yes"`
}

// BinaryRules holds the phrase buckets for a yes/no question.
type BinaryRules struct {
	// Unknown phrases override everything: they mark answers that cannot
	// be reduced to yes or no ("borders remain closed", "possibly").
	Unknown []string `yaml:"unknown"`
	Yes     []string `yaml:"yes"`
	No      []string `yaml:"no"`
}

// RuleSet is the full phrase-table configuration for all three classifiers.
type RuleSet struct {
	Version    int         `yaml:"version"`
	Entry      EntryRules  `yaml:"entry"`
	Test       BinaryRules `yaml:"test"`
	Quarantine BinaryRules `yaml:"quarantine"`
}

// DefaultRules parses the rule tables embedded in the binary.
func DefaultRules() (*RuleSet, error) {
	return parseRules(embeddedRules)
}

// LoadRulesFile reads rule tables from an external YAML file, letting
// operators ship phrase updates without a rebuild.
func LoadRulesFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read rules %s", path)
	}
	return parseRules(data)
}

func parseRules(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, eris.Wrap(err, "classify: parse rules")
	}
	if len(rs.Entry.YesSometimes) == 0 || len(rs.Entry.NoRarely) == 0 {
		return nil, eris.New("classify: rules missing entry phrase buckets")
	}
	return &rs, nil
}
