// Package resolve follows "latest/updated info" links when a primary
// advisory page lacks the expected entry fragment.
package resolve

import (
	"context"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/opencountrieslist/advisory-cli/internal/provider"
)

// Visited tracks URLs already fetched during one resolution. The top-level
// call owns it and passes it by reference through every recursive step, so a
// URL is fetched at most once no matter how the candidate pages link to each
// other. That, not a depth counter, is the termination guarantee.
type Visited struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisited creates an empty visited set, seeded with the URLs already
// fetched before resolution started (typically the primary page).
func NewVisited(seed ...string) *Visited {
	v := &Visited{urls: make(map[string]struct{}, len(seed))}
	for _, u := range seed {
		v.urls[u] = struct{}{}
	}
	return v
}

// MarkSeen records the URL, reporting whether it had been seen before.
func (v *Visited) MarkSeen(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.urls[url]; ok {
		return true
	}
	v.urls[url] = struct{}{}
	return false
}

// followUpPattern matches a "latest ... info" phrase with a quoted URL on
// the same line, restricted to the country's own source domain. Plain `.`
// keeps the phrase and URL on one line, mirroring how the advisory pages
// actually mark these links up.
func followUpPattern(domain string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(latest|updated).*info.*?"(https?[^"]*` + regexp.QuoteMeta(domain) + `[^"]*)"`)
}

// FollowUps returns the candidate "more info" URLs found in body for the
// given source domain, in document order, deduplicated.
func FollowUps(body, domain string) []string {
	matches := followUpPattern(domain).FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		u := m[2]
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// ParseFunc re-runs the full per-country parse on a fetched body. It returns
// true when the body (or a page it led to, via further resolution with the
// same visited set) yielded a successful primary extraction.
type ParseFunc func(ctx context.Context, url, body string) (bool, error)

// Resolver fetches follow-up candidates through the content provider.
type Resolver struct {
	provider provider.Provider
}

// New creates a Resolver over the given content provider.
func New(p provider.Provider) *Resolver {
	return &Resolver{provider: p}
}

// Resolve walks body's follow-up candidates and recursively parses each
// unvisited one, stopping at the first that yields a successful primary
// extraction. The return value is a signal, not an error: false means no
// informative content was found anywhere in the link graph.
func (r *Resolver) Resolve(ctx context.Context, body, domain string, visited *Visited, parse ParseFunc) (bool, error) {
	for _, candidate := range FollowUps(body, domain) {
		if visited.MarkSeen(candidate) {
			continue
		}

		zap.L().Debug("resolve: following candidate link",
			zap.String("url", candidate),
		)

		fetched, err := r.provider.Fetch(ctx, candidate)
		if err != nil {
			zap.L().Warn("resolve: candidate fetch failed",
				zap.String("url", candidate),
				zap.Error(err),
			)
			continue
		}

		informative, err := parse(ctx, candidate, string(fetched))
		if err != nil {
			return false, err
		}
		if informative {
			return true, nil
		}
	}

	return false, nil
}
