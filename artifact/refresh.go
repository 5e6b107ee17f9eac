package artifact

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/mokjaru/mokja/vectorindex"
)

// ErrRefreshThrottled is returned when a refresh is requested before the
// minimum interval since the previous one has elapsed.
var ErrRefreshThrottled = errors.New("artifact refresh throttled")

// Refresher re-runs a Loader over a fixed source set, rate limited so that
// operational retries cannot hammer the blob store. Reloaded vectors
// shadow the previous rows for the same ids.
type Refresher struct {
	loader  *Loader
	sources []Source
	limiter *rate.Limiter
}

// NewRefresher creates a Refresher that allows at most one refresh per
// minInterval. A non-positive interval disables throttling.
func NewRefresher(loader *Loader, sources []Source, minInterval time.Duration) *Refresher {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Refresher{
		loader:  loader,
		sources: sources,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Refresh reloads every configured source. Returns ErrRefreshThrottled
// when called again within the minimum interval.
func (r *Refresher) Refresh(ctx context.Context) (map[vectorindex.Space]vectorindex.StoreResult, error) {
	if !r.limiter.Allow() {
		return nil, ErrRefreshThrottled
	}
	return r.loader.Load(ctx, r.sources...)
}
