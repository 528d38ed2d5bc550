package change

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/opencountrieslist/advisory-cli/internal/history"
	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// Detector decides whether a fresh observation represents a country that
// just changed state, as opposed to one that changed a while ago or never.
type Detector struct {
	store history.Store
}

func NewDetector(store history.Store) *Detector {
	return &Detector{store: store}
}

// Detect compares the fresh record against history. A change event exists
// only when the most recent stored observation differs from the fresh triple
// AND is itself the most recent observation that differs, meaning every row
// since the last state flip agreed with each other and the fresh record
// breaks the streak.
//
// A nil event with a nil error means "no change right now", which covers
// both unchanged countries and countries whose change is already old news.
func (d *Detector) Detect(ctx context.Context, rec *model.CountryRecord) (*model.ChangeEvent, error) {
	triple := rec.Triple()

	differing, err := d.store.MostRecentDiffering(ctx, rec.Name, triple)
	if err != nil {
		return nil, eris.Wrap(err, "change: query most recent differing observation")
	}
	recent, err := d.store.MostRecent(ctx, rec.Name)
	if err != nil {
		return nil, eris.Wrap(err, "change: query most recent observation")
	}
	if differing == nil || recent == nil || differing.ID != recent.ID {
		return nil, nil
	}

	old := differing.Triple()
	return &model.ChangeEvent{
		Country:   rec.Name,
		Old:       old,
		New:       triple,
		ChangedAt: rec.ObservedAt,
		Narrative: Narrate(rec.Name, old, triple),
	}, nil
}
