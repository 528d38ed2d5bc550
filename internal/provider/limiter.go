package provider

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostLimiters hands out one rate limiter per host, created on first use.
// Embassy hosts are numerous and uniform, so a single configured rate
// applies to all of them.
type hostLimiters struct {
	mu      sync.Mutex
	perHost map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func newHostLimiters(rps float64, burst int) *hostLimiters {
	return &hostLimiters{
		perHost: make(map[string]*rate.Limiter),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

func (h *hostLimiters) wait(ctx context.Context, host string) error {
	h.mu.Lock()
	lim, ok := h.perHost[host]
	if !ok {
		lim = rate.NewLimiter(h.limit, h.burst)
		h.perHost[host] = lim
	}
	h.mu.Unlock()

	return lim.Wait(ctx)
}

// backoff sleeps for an exponentially growing, jittered interval, honoring
// context cancellation.
func backoff(ctx context.Context, attempt int) {
	base := time.Second
	maxBackoff := 30 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
