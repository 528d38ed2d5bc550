package change

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencountrieslist/advisory-cli/internal/history"
	"github.com/opencountrieslist/advisory-cli/internal/model"
)

func newTestStore(t *testing.T) history.Store {
	t.Helper()

	store, err := history.NewSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func record(entry model.EntryStatus, test, quarantine model.BinaryAnswer, at time.Time) *model.CountryRecord {
	return &model.CountryRecord{
		Country:    model.Country{Name: "Wakanda"},
		Entry:      entry,
		Test:       test,
		Quarantine: quarantine,
		ObservedAt: at,
	}
}

func observe(t *testing.T, store history.Store, rec *model.CountryRecord) {
	t.Helper()
	require.NoError(t, store.Append(context.Background(), model.Observation{
		CountryName: rec.Name,
		Entry:       rec.Entry,
		Test:        rec.Test,
		Quarantine:  rec.Quarantine,
		ObservedAt:  rec.ObservedAt,
	}))
}

func TestDetect_NoHistory(t *testing.T) {
	store := newTestStore(t)
	det := NewDetector(store)

	event, err := det.Detect(context.Background(), record(model.EntryNo, model.BinaryNo, model.BinaryNo, time.Now()))
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestDetect_FreshFlip(t *testing.T) {
	store := newTestStore(t)
	det := NewDetector(store)
	base := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	observe(t, store, record(model.EntryNo, model.BinaryNo, model.BinaryNo, base))

	rec := record(model.EntryYes, model.BinaryNo, model.BinaryNo, base.Add(24*time.Hour))
	event, err := det.Detect(context.Background(), rec)
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, "Wakanda", event.Country)
	assert.Equal(t, triple(model.EntryNo, model.BinaryNo, model.BinaryNo), event.Old)
	assert.Equal(t, triple(model.EntryYes, model.BinaryNo, model.BinaryNo), event.New)
	assert.Equal(t, rec.ObservedAt, event.ChangedAt)
	assert.Equal(t, "Wakanda is now open to U.S. travelers.", event.Narrative)
}

func TestDetect_UnchangedCountry(t *testing.T) {
	store := newTestStore(t)
	det := NewDetector(store)
	base := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	observe(t, store, record(model.EntryYes, model.BinaryNo, model.BinaryNo, base))
	observe(t, store, record(model.EntryYes, model.BinaryNo, model.BinaryNo, base.Add(24*time.Hour)))

	event, err := det.Detect(context.Background(), record(model.EntryYes, model.BinaryNo, model.BinaryNo, base.Add(48*time.Hour)))
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestDetect_StaleChange(t *testing.T) {
	store := newTestStore(t)
	det := NewDetector(store)
	base := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	// The flip to open happened a cycle ago; it is no longer news.
	observe(t, store, record(model.EntryNo, model.BinaryNo, model.BinaryNo, base))
	observe(t, store, record(model.EntryYes, model.BinaryNo, model.BinaryNo, base.Add(24*time.Hour)))

	event, err := det.Detect(context.Background(), record(model.EntryYes, model.BinaryNo, model.BinaryNo, base.Add(48*time.Hour)))
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestDetect_ChangeWithSilentNarrative(t *testing.T) {
	store := newTestStore(t)
	det := NewDetector(store)
	base := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)

	observe(t, store, record(model.EntryNo, model.BinaryNo, model.BinaryNo, base))

	event, err := det.Detect(context.Background(), record(model.EntryNo, model.BinaryYes, model.BinaryNo, base.Add(24*time.Hour)))
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Empty(t, event.Narrative)
}
