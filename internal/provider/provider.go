// Package provider fetches advisory page bodies. It owns freshness: pages
// land in an on-disk cache with a TTL, and callers always receive the latest
// known body for a URL without managing staleness themselves.
package provider

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// maxBodyBytes caps how much of a page is read; advisory pages are small and
// anything larger is not one.
const maxBodyBytes = 4 << 20

// Provider returns the latest known body for a URL.
type Provider interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures the HTTP provider.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int

	// CacheDir enables the on-disk page cache when non-empty. A cached
	// page younger than CacheTTL short-circuits the network.
	CacheDir string
	CacheTTL time.Duration

	// RequestsPerSecond and Burst tune the per-host rate limiters.
	RequestsPerSecond float64
	Burst             int
}

// HTTPProvider implements Provider over net/http with per-host rate
// limiting, retries with backoff, charset decoding, and the disk cache.
type HTTPProvider struct {
	client *http.Client
	opts   Options
	limits *hostLimiters
	cache  *diskCache
}

// NewHTTP creates an HTTPProvider with the given options, filling defaults
// for anything unset.
func NewHTTP(opts Options) *HTTPProvider {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "advisory-cli/1.0"
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Burst == 0 {
		opts.Burst = 2
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 24 * time.Hour
	}

	var cache *diskCache
	if opts.CacheDir != "" {
		cache = &diskCache{dir: opts.CacheDir, ttl: opts.CacheTTL}
	}

	return &HTTPProvider{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				MaxConnsPerHost:     20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:   opts,
		limits: newHostLimiters(opts.RequestsPerSecond, opts.Burst),
		cache:  cache,
	}
}

// Fetch returns the page body for url, from cache when fresh, otherwise
// from the network (refreshing the cache on success).
func (p *HTTPProvider) Fetch(ctx context.Context, url string) ([]byte, error) {
	if p.cache != nil {
		if body, ok := p.cache.get(url); ok {
			return body, nil
		}
		zap.L().Debug("provider: cache stale or missing, fetching",
			zap.String("url", url),
		)
	}

	body, err := p.fetchRemote(ctx, url)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.put(url, body); err != nil {
			zap.L().Warn("provider: cache write failed",
				zap.String("url", url),
				zap.Error(err),
			)
		}
	}

	return body, nil
}

func (p *HTTPProvider) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "provider: create request")
	}
	req.Header.Set("User-Agent", p.opts.UserAgent)

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("provider: unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrapf(err, "provider: read body from %s", url)
	}

	return decodeCharset(body, resp.Header.Get("Content-Type"))
}

func (p *HTTPProvider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := range p.opts.MaxRetries {
		if err := p.limits.wait(ctx, req.URL.Host); err != nil {
			return nil, eris.Wrap(err, "provider: rate limiter wait")
		}

		resp, err := p.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			zap.L().Warn("provider: request failed, retrying",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("provider: http %d from %s", resp.StatusCode, req.URL.String())
			zap.L().Warn("provider: retryable status",
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			backoff(ctx, attempt)
			continue
		}

		return resp, nil
	}

	return nil, eris.Wrap(lastErr, "provider: all retries exhausted")
}

// decodeCharset converts a body to UTF-8 according to the Content-Type
// charset parameter. Pages without one (or already UTF-8) pass through.
func decodeCharset(body []byte, contentType string) ([]byte, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	charset, ok := params["charset"]
	if !ok || charset == "utf-8" || charset == "UTF-8" {
		return body, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		zap.L().Warn("provider: unsupported charset, passing through",
			zap.String("charset", charset),
		)
		return body, nil
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, eris.Wrapf(err, "provider: decode charset %s", charset)
	}
	return decoded, nil
}
