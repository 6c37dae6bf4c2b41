package suggestions

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/logger"
)

const snapshotKey = "snapshot"

// SnapshotCache holds the current snapshot for a TTL. Refresh is the only
// place a snapshot is built.
type SnapshotCache struct {
	catalog *content.Catalog
	cache   *cache.Cache
	ttl     time.Duration
	log     *slog.Logger

	// serializes loads so concurrent misses build one snapshot
	mu sync.Mutex
}

// NewSnapshotCache creates an empty cache.
func NewSnapshotCache(catalog *content.Catalog, ttl time.Duration, log *slog.Logger) *SnapshotCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SnapshotCache{
		catalog: catalog,
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		log:     log.With(logger.Scope("suggestions.cache")),
	}
}

// Get returns the cached snapshot, loading one if none is live.
func (c *SnapshotCache) Get(ctx context.Context) *Snapshot {
	if snap, ok := c.cached(); ok {
		return snap
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if snap, ok := c.cached(); ok {
		return snap
	}
	return c.load(ctx)
}

// Refresh rebuilds the snapshot unconditionally.
func (c *SnapshotCache) Refresh(ctx context.Context) *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Invalidate drops the cached snapshot.
func (c *SnapshotCache) Invalidate() {
	c.cache.Delete(snapshotKey)
}

func (c *SnapshotCache) cached() (*Snapshot, bool) {
	v, found := c.cache.Get(snapshotKey)
	if !found {
		return nil, false
	}
	snap, ok := v.(*Snapshot)
	return snap, ok
}

func (c *SnapshotCache) load(ctx context.Context) *Snapshot {
	start := time.Now()
	snap := LoadSnapshot(ctx, c.catalog, c.log)
	c.cache.Set(snapshotKey, snap, cache.DefaultExpiration)

	snapshotRefreshesTotal.Inc()
	snapshotRecords.WithLabelValues(string(content.VariantWord)).Set(float64(len(snap.Words)))
	snapshotRecords.WithLabelValues(string(content.VariantWordEN)).Set(float64(len(snap.WordsEN)))

	c.log.Debug("snapshot loaded",
		slog.Int("words", len(snap.Words)),
		slog.Int("words_en", len(snap.WordsEN)),
		slog.Duration("duration", time.Since(start)),
	)
	return snap
}
