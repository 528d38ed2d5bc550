package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/opencountrieslist/advisory-cli/internal/classify"
	"github.com/opencountrieslist/advisory-cli/internal/history"
	"github.com/opencountrieslist/advisory-cli/internal/pipeline"
	"github.com/opencountrieslist/advisory-cli/internal/provider"
)

func initStore(ctx context.Context) (history.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		path := cfg.Store.Path
		if path == "" {
			path = "advisory.db"
		}
		return history.NewSQLite(path)
	case "postgres":
		return history.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initClassifier() (*classify.Classifier, error) {
	rules, err := loadRules()
	if err != nil {
		return nil, err
	}
	return classify.New(rules), nil
}

func loadRules() (*classify.RuleSet, error) {
	if cfg.Classify.RulesFile != "" {
		return classify.LoadRulesFile(cfg.Classify.RulesFile)
	}
	return classify.DefaultRules()
}

func initProvider() *provider.HTTPProvider {
	return provider.NewHTTP(provider.Options{
		UserAgent:         cfg.Provider.UserAgent,
		Timeout:           time.Duration(cfg.Provider.TimeoutSecs) * time.Second,
		MaxRetries:        cfg.Provider.MaxRetries,
		CacheDir:          cfg.Provider.CacheDir,
		CacheTTL:          time.Duration(cfg.Provider.CacheTTLHours) * time.Hour,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
		Burst:             cfg.Provider.Burst,
	})
}

// scrapeEnv bundles the collaborators every store-touching command sets up.
type scrapeEnv struct {
	Store    history.Store
	Pipeline *pipeline.Pipeline
}

func initScrapeEnv(ctx context.Context) (*scrapeEnv, error) {
	if err := cfg.Validate("scrape"); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	classifier, err := initClassifier()
	if err != nil {
		st.Close()
		return nil, err
	}

	return &scrapeEnv{
		Store:    st,
		Pipeline: pipeline.New(initProvider(), classifier, st, cfg.Pipeline.Concurrency),
	}, nil
}

func (e *scrapeEnv) Close() {
	_ = e.Store.Close()
}
