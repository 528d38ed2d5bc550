package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/opencountrieslist/advisory-cli/internal/change"
	"github.com/opencountrieslist/advisory-cli/internal/classify"
	"github.com/opencountrieslist/advisory-cli/internal/directory"
	"github.com/opencountrieslist/advisory-cli/internal/history"
	"github.com/opencountrieslist/advisory-cli/internal/model"
	"github.com/opencountrieslist/advisory-cli/internal/provider"
	"github.com/opencountrieslist/advisory-cli/internal/resolve"
)

const defaultConcurrency = 4

// Pipeline wires the scrape cycle's collaborators together.
type Pipeline struct {
	provider    provider.Provider
	classifier  *classify.Classifier
	resolver    *resolve.Resolver
	store       history.Store
	detector    *change.Detector
	concurrency int
}

// New creates a Pipeline. concurrency bounds the country fetch fan-out; zero
// or negative picks the default.
func New(p provider.Provider, classifier *classify.Classifier, store history.Store, concurrency int) *Pipeline {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Pipeline{
		provider:    p,
		classifier:  classifier,
		resolver:    resolve.New(p),
		store:       store,
		detector:    change.NewDetector(store),
		concurrency: concurrency,
	}
}

// RunOptions tune a single cycle.
type RunOptions struct {
	// DirectoryURL overrides the advisory directory location.
	DirectoryURL string
	// Limit caps how many countries the cycle visits; zero means all.
	Limit int
	// DryRun skips the history append, leaving the store untouched.
	DryRun bool
}

// CycleResult is everything one cycle produced.
type CycleResult struct {
	ID         string
	ObservedAt time.Time
	Records    []*model.CountryRecord
	// Events maps country name to the change detected this cycle.
	Events map[string]*model.ChangeEvent
	// Posts holds the rendered announcements for narrated changes.
	Posts []string
}

// Run executes one full scrape cycle. Country fetches fan out with a bounded
// limit; change detection and appends happen on the calling goroutine so the
// per-country observation order stays intact.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*CycleResult, error) {
	dirURL := opts.DirectoryURL
	if dirURL == "" {
		dirURL = directory.DefaultURL
	}

	body, err := p.provider.Fetch(ctx, dirURL)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: fetch directory")
	}
	countries, err := directory.Parse(body)
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && opts.Limit < len(countries) {
		countries = countries[:opts.Limit]
	}

	result := &CycleResult{
		ID:         uuid.NewString(),
		ObservedAt: time.Now().UTC(),
		Events:     make(map[string]*model.ChangeEvent),
	}
	log := zap.L().With(zap.String("cycle", result.ID))
	log.Info("pipeline: starting cycle", zap.Int("countries", len(countries)))

	records := make([]*model.CountryRecord, len(countries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, country := range countries {
		g.Go(func() error {
			rec, err := p.ParseCountry(gctx, country, result.ObservedAt)
			if err != nil {
				// One unreachable embassy must not sink the cycle.
				log.Warn("pipeline: country failed",
					zap.String("country", country.Name),
					zap.Error(err),
				)
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := gctx.Err(); err != nil {
		return nil, eris.Wrap(err, "pipeline: cycle canceled")
	}

	for _, rec := range records {
		if rec == nil {
			continue
		}
		result.Records = append(result.Records, rec)

		event, err := p.detector.Detect(ctx, rec)
		if err != nil {
			return nil, err
		}
		if event != nil {
			result.Events[rec.Name] = event
			if post, ok := change.RenderPost(event); ok {
				result.Posts = append(result.Posts, post)
			}
		}

		if opts.DryRun {
			continue
		}
		if err := p.store.Append(ctx, model.Observation{
			CountryName:  rec.Name,
			Entry:        rec.Entry,
			Test:         rec.Test,
			Quarantine:   rec.Quarantine,
			Preformatted: rec.Preformatted,
			ObservedAt:   rec.ObservedAt,
		}); err != nil {
			return nil, err
		}
	}

	log.Info("pipeline: cycle complete",
		zap.Int("records", len(result.Records)),
		zap.Int("changes", len(result.Events)),
	)
	return result, nil
}
