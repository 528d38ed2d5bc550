package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS observations (
	id           TEXT PRIMARY KEY,
	country      TEXT NOT NULL,
	entry        INTEGER NOT NULL,
	test         INTEGER NOT NULL,
	quarantine   INTEGER NOT NULL,
	preformatted TEXT NOT NULL,
	observed_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_country_observed_at
	ON observations(country, observed_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, obs model.Observation) error {
	if obs.ID == "" {
		obs.ID = uuid.New().String()
	}
	if obs.ObservedAt.IsZero() {
		obs.ObservedAt = time.Now().UTC()
	}

	preformattedJSON, err := json.Marshal(obs.Preformatted)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal preformatted")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO observations (id, country, entry, test, quarantine, preformatted, observed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		obs.ID, obs.CountryName, int(obs.Entry), int(obs.Test), int(obs.Quarantine),
		string(preformattedJSON), obs.ObservedAt,
	)
	return eris.Wrapf(err, "postgres: append observation for %s", obs.CountryName)
}

func (s *PostgresStore) MostRecent(ctx context.Context, country string) (*model.Observation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, country, entry, test, quarantine, preformatted, observed_at
		 FROM observations WHERE country = $1
		 ORDER BY observed_at DESC LIMIT 1`,
		country,
	)
	return scanPgObservation(row)
}

func (s *PostgresStore) MostRecentDiffering(ctx context.Context, country string, triple model.StatusTriple) (*model.Observation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, country, entry, test, quarantine, preformatted, observed_at
		 FROM observations
		 WHERE country = $1 AND (entry != $2 OR test != $3 OR quarantine != $4)
		 ORDER BY observed_at DESC LIMIT 1`,
		country, int(triple.Entry), int(triple.Test), int(triple.Quarantine),
	)
	return scanPgObservation(row)
}

func (s *PostgresStore) Latest(ctx context.Context) ([]model.Observation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT o.id, o.country, o.entry, o.test, o.quarantine, o.preformatted, o.observed_at
		 FROM observations o
		 JOIN (SELECT country, MAX(observed_at) AS newest
		       FROM observations GROUP BY country) latest
		   ON o.country = latest.country AND o.observed_at = latest.newest
		 ORDER BY o.country`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: latest observations")
	}
	defer rows.Close()
	return collectPgObservations(rows)
}

func (s *PostgresStore) Recent(ctx context.Context, country string, limit int) ([]model.Observation, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, country, entry, test, quarantine, preformatted, observed_at
		 FROM observations WHERE country = $1
		 ORDER BY observed_at DESC LIMIT $2`,
		country, limit,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: recent observations for %s", country)
	}
	defer rows.Close()
	return collectPgObservations(rows)
}

// helpers

func scanPgObservation(row pgx.Row) (*model.Observation, error) {
	var o model.Observation
	var entry, test, quarantine int
	var preformattedJSON string

	err := row.Scan(&o.ID, &o.CountryName, &entry, &test, &quarantine, &preformattedJSON, &o.ObservedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan observation")
	}

	o.Entry = model.EntryStatus(entry)
	o.Test = model.BinaryAnswer(test)
	o.Quarantine = model.BinaryAnswer(quarantine)
	if err := json.Unmarshal([]byte(preformattedJSON), &o.Preformatted); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal preformatted")
	}
	return &o, nil
}

func collectPgObservations(rows pgx.Rows) ([]model.Observation, error) {
	var out []model.Observation
	for rows.Next() {
		o, err := scanPgObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate observations")
}
