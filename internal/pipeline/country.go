// Package pipeline orchestrates one scrape cycle: directory, per-country
// parsing, change detection, history append.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/opencountrieslist/advisory-cli/internal/classify"
	"github.com/opencountrieslist/advisory-cli/internal/extract"
	"github.com/opencountrieslist/advisory-cli/internal/model"
	"github.com/opencountrieslist/advisory-cli/internal/preformat"
	"github.com/opencountrieslist/advisory-cli/internal/resolve"
)

// ParseCountry fetches a country's advisory page and derives its record.
// When the primary page lacks the entry question, follow-up resolution takes
// over; if that also comes up empty the record degrades to Unknown rather
// than failing.
func (p *Pipeline) ParseCountry(ctx context.Context, country model.Country, observedAt time.Time) (*model.CountryRecord, error) {
	rec := &model.CountryRecord{Country: country, ObservedAt: observedAt}

	body, err := p.provider.Fetch(ctx, country.URL)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: fetch %s", country.Name)
	}

	visited := resolve.NewVisited(country.URL)
	informative, err := p.parsePage(ctx, country, string(body), visited, rec)
	if err != nil {
		return nil, err
	}
	if !informative {
		zap.L().Warn("pipeline: no informative page found",
			zap.String("country", country.Name),
			zap.String("url", country.URL),
		)
	}

	return rec, nil
}

// parsePage runs the full extraction over one page body, recursing through
// the resolver when the entry question is missing. It reports whether the
// page (or one it led to) answered the entry question.
func (p *Pipeline) parsePage(ctx context.Context, country model.Country, body string, visited *resolve.Visited, rec *model.CountryRecord) (bool, error) {
	section := extract.CountrySection(body, country.Name)

	entryFrags := extract.Fragments(section, extract.EntryQuestion)
	if len(entryFrags) == 0 {
		// Follow-up links are matched over the whole body: they sit
		// outside the country's own section on shared pages.
		parse := func(ctx context.Context, url, fetched string) (bool, error) {
			return p.parsePage(ctx, country, fetched, visited, rec)
		}
		return p.resolver.Resolve(ctx, body, country.Domain, visited, parse)
	}

	statuses := make([]model.EntryStatus, 0, len(entryFrags))
	seen := make(map[string]bool, len(entryFrags))
	pre := make([]string, 0, len(entryFrags))
	for _, f := range entryFrags {
		statuses = append(statuses, p.classifier.Entry(f.Answer))
		text := preformat.Answer(country.Name, f.Answer)
		if text != "" && !seen[text] {
			seen[text] = true
			pre = append(pre, text)
		}
	}
	rec.Entry = classify.AggregateEntry(statuses)
	rec.Preformatted = pre

	var tests []model.BinaryAnswer
	for _, f := range extract.Fragments(section, extract.TestQuestion) {
		tests = append(tests, p.classifier.Test(f.Question, f.Answer))
	}
	rec.Test = classify.AggregateBinary(tests)

	var quarantines []model.BinaryAnswer
	for _, f := range extract.Fragments(section, extract.QuarantineQuestion) {
		quarantines = append(quarantines, p.classifier.Quarantine(f.Answer))
	}
	rec.Quarantine = classify.AggregateBinary(quarantines)

	if rec.LastModified == nil {
		if ts, err := extract.LastUpdated(body); err == nil {
			rec.LastModified = &ts
		} else if !errors.Is(err, extract.ErrNoLastUpdated) {
			zap.L().Warn("pipeline: last-updated date did not parse",
				zap.String("country", country.Name),
				zap.Error(err),
			)
		}
	}

	return true, nil
}
