package classify

import (
	"go.uber.org/zap"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// entryMergeTable resolves a pair of distinct entry classifications for one
// country. Keys hold the lower ordinal first. The {Sometimes,Rarely} row
// resolving to Rarely mirrors the long-standing heuristic table even though
// its symmetry with the neighboring rows is debatable; do not "clean it up".
var entryMergeTable = map[[2]model.EntryStatus]model.EntryStatus{
	{model.EntrySometimes, model.EntryYes}:    model.EntryYes,
	{model.EntryRarely, model.EntrySometimes}: model.EntryRarely,
	{model.EntryNo, model.EntryRarely}:        model.EntryNo,
	{model.EntryNo, model.EntryYes}:           model.EntryReadMore,
	{model.EntryRarely, model.EntryYes}:       model.EntryReadMore,
}

// AggregateEntry merges the per-fragment entry classifications for one
// country into a single value. Input has set semantics: duplicates collapse
// and order is irrelevant, so the merge is commutative and idempotent.
func AggregateEntry(results []model.EntryStatus) model.EntryStatus {
	distinct := make(map[model.EntryStatus]struct{}, len(results))
	for _, r := range results {
		distinct[r] = struct{}{}
	}

	switch len(distinct) {
	case 0:
		return model.EntryUnknown
	case 1:
		for r := range distinct {
			return r
		}
	case 2:
		var pair [2]model.EntryStatus
		i := 0
		for r := range distinct {
			pair[i] = r
			i++
		}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}
		if merged, ok := entryMergeTable[pair]; ok {
			return merged
		}
		// Extensibility point: a pair the table does not cover is
		// ambiguous, not a crash.
		zap.L().Warn("classify: unlisted entry merge pair",
			zap.String("low", pair[0].String()),
			zap.String("high", pair[1].String()),
		)
		return model.EntryReadMore
	}

	// Three or more distinct answers on one page: punt to a human.
	return model.EntryReadMore
}

// AggregateBinary merges per-fragment yes/no classifications. Any
// affirmative fragment makes the country-level answer Yes; otherwise any
// negative makes it No.
func AggregateBinary(results []model.BinaryAnswer) model.BinaryAnswer {
	sawNo := false
	for _, r := range results {
		switch r {
		case model.BinaryYes:
			return model.BinaryYes
		case model.BinaryNo:
			sawNo = true
		}
	}
	if sawNo {
		return model.BinaryNo
	}
	return model.BinaryUnknown
}
