package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

func TestAggregateEntry_Cardinality(t *testing.T) {
	assert.Equal(t, model.EntryUnknown, AggregateEntry(nil))
	assert.Equal(t, model.EntryYes, AggregateEntry([]model.EntryStatus{model.EntryYes}))
	assert.Equal(t, model.EntryNo,
		AggregateEntry([]model.EntryStatus{model.EntryNo, model.EntryNo, model.EntryNo}))
}

func TestAggregateEntry_MergeTable(t *testing.T) {
	tests := []struct {
		name string
		in   []model.EntryStatus
		want model.EntryStatus
	}{
		{"yes+sometimes", []model.EntryStatus{model.EntryYes, model.EntrySometimes}, model.EntryYes},
		{"sometimes+rarely", []model.EntryStatus{model.EntrySometimes, model.EntryRarely}, model.EntryRarely},
		{"no+rarely", []model.EntryStatus{model.EntryNo, model.EntryRarely}, model.EntryNo},
		{"no+yes", []model.EntryStatus{model.EntryNo, model.EntryYes}, model.EntryReadMore},
		{"rarely+yes", []model.EntryStatus{model.EntryRarely, model.EntryYes}, model.EntryReadMore},
		{"unlisted pair", []model.EntryStatus{model.EntryUnknown, model.EntryYes}, model.EntryReadMore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateEntry(tt.in))

			// Commutativity: reversing input order changes nothing.
			reversed := []model.EntryStatus{tt.in[1], tt.in[0]}
			assert.Equal(t, tt.want, AggregateEntry(reversed))
		})
	}
}

// Merging has set semantics: {Yes, Yes, Sometimes} equals {Sometimes, Yes}.
func TestAggregateEntry_Idempotent(t *testing.T) {
	a := AggregateEntry([]model.EntryStatus{model.EntryYes, model.EntryYes, model.EntrySometimes})
	b := AggregateEntry([]model.EntryStatus{model.EntrySometimes, model.EntryYes})
	assert.Equal(t, a, b)
	assert.Equal(t, model.EntryYes, a)
}

// Any three or more distinct values aggregate to ReadMore.
func TestAggregateEntry_ThreeDistinctAlwaysReadMore(t *testing.T) {
	all := []model.EntryStatus{
		model.EntryUnknown, model.EntryReadMore, model.EntryNo,
		model.EntryRarely, model.EntrySometimes, model.EntryYes,
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			for k := j + 1; k < len(all); k++ {
				got := AggregateEntry([]model.EntryStatus{all[i], all[j], all[k]})
				assert.Equal(t, model.EntryReadMore, got,
					"combo %v %v %v", all[i], all[j], all[k])
			}
		}
	}
}

func TestAggregateBinary(t *testing.T) {
	tests := []struct {
		name string
		in   []model.BinaryAnswer
		want model.BinaryAnswer
	}{
		{"empty", nil, model.BinaryUnknown},
		{"single yes", []model.BinaryAnswer{model.BinaryYes}, model.BinaryYes},
		{"yes beats no", []model.BinaryAnswer{model.BinaryNo, model.BinaryYes}, model.BinaryYes},
		{"no beats unknown", []model.BinaryAnswer{model.BinaryUnknown, model.BinaryNo}, model.BinaryNo},
		{"all unknown", []model.BinaryAnswer{model.BinaryUnknown, model.BinaryUnknown}, model.BinaryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateBinary(tt.in))
		})
	}
}

func TestLoadRulesFile_Missing(t *testing.T) {
	_, err := LoadRulesFile("/nonexistent/rules.yaml")
	assert.Error(t, err)
}
