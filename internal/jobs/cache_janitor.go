package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmarais/go-autoquote/internal/core"
)

// CacheJanitor periodically evicts expired entries from the calculation
// cache so repeated one-off requests don't pin memory forever.
type CacheJanitor struct {
	BaseWorker
	cache *core.CalcCache
}

func NewCacheJanitor(cache *core.CalcCache, interval time.Duration, log *slog.Logger) *CacheJanitor {
	return &CacheJanitor{
		BaseWorker: NewBaseWorker("cache-janitor", interval, log),
		cache:      cache,
	}
}

func (j *CacheJanitor) Start(ctx context.Context) {
	j.Poll(ctx, func(context.Context) error {
		removed := j.cache.Sweep()
		if removed > 0 {
			j.log.Debug("swept calculation cache",
				"removed", removed,
				"remaining", j.cache.Len())
		}
		return nil
	})
}
