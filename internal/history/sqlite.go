package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS observations (
	id           TEXT PRIMARY KEY,
	country      TEXT NOT NULL,
	entry        INTEGER NOT NULL,
	test         INTEGER NOT NULL,
	quarantine   INTEGER NOT NULL,
	preformatted TEXT NOT NULL,
	observed_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_country_observed_at
	ON observations(country, observed_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, obs model.Observation) error {
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}
	if obs.ObservedAt.IsZero() {
		obs.ObservedAt = time.Now().UTC()
	}

	preformattedJSON, err := json.Marshal(obs.Preformatted)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal preformatted")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO observations (id, country, entry, test, quarantine, preformatted, observed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		obs.ID, obs.CountryName, int(obs.Entry), int(obs.Test), int(obs.Quarantine),
		string(preformattedJSON), obs.ObservedAt,
	)
	return eris.Wrapf(err, "sqlite: append observation for %s", obs.CountryName)
}

func (s *SQLiteStore) MostRecent(ctx context.Context, country string) (*model.Observation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, country, entry, test, quarantine, preformatted, observed_at
		 FROM observations WHERE country = ?
		 ORDER BY observed_at DESC LIMIT 1`,
		country,
	)
	return scanObservation(row)
}

func (s *SQLiteStore) MostRecentDiffering(ctx context.Context, country string, triple model.StatusTriple) (*model.Observation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, country, entry, test, quarantine, preformatted, observed_at
		 FROM observations
		 WHERE country = ? AND (entry != ? OR test != ? OR quarantine != ?)
		 ORDER BY observed_at DESC LIMIT 1`,
		country, int(triple.Entry), int(triple.Test), int(triple.Quarantine),
	)
	return scanObservation(row)
}

func (s *SQLiteStore) Latest(ctx context.Context) ([]model.Observation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.id, o.country, o.entry, o.test, o.quarantine, o.preformatted, o.observed_at
		 FROM observations o
		 JOIN (SELECT country, MAX(observed_at) AS newest
		       FROM observations GROUP BY country) latest
		   ON o.country = latest.country AND o.observed_at = latest.newest
		 ORDER BY o.country`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest observations")
	}
	defer rows.Close()
	return collectObservations(rows)
}

func (s *SQLiteStore) Recent(ctx context.Context, country string, limit int) ([]model.Observation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, country, entry, test, quarantine, preformatted, observed_at
		 FROM observations WHERE country = ?
		 ORDER BY observed_at DESC LIMIT ?`,
		country, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: recent observations for %s", country)
	}
	defer rows.Close()
	return collectObservations(rows)
}

// helpers

type scannable interface {
	Scan(dest ...any) error
}

func scanObservation(row scannable) (*model.Observation, error) {
	var o model.Observation
	var entry, test, quarantine int
	var preformattedJSON string

	err := row.Scan(&o.ID, &o.CountryName, &entry, &test, &quarantine, &preformattedJSON, &o.ObservedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan observation")
	}

	o.Entry = model.EntryStatus(entry)
	o.Test = model.BinaryAnswer(test)
	o.Quarantine = model.BinaryAnswer(quarantine)
	if err := json.Unmarshal([]byte(preformattedJSON), &o.Preformatted); err != nil {
		return nil, eris.Wrap(err, "unmarshal preformatted")
	}
	return &o, nil
}

func collectObservations(rows *sql.Rows) ([]model.Observation, error) {
	var out []model.Observation
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, eris.Wrap(rows.Err(), "iterate observations")
}
