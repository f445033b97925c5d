package loader

import (
	"sync"
	"time"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/models"
)

// snapshotCache holds the most recently loaded snapshot for the freshness
// window. Freshness alone is not enough to serve a hit: the cached
// document's baseline date must also match the current rolling baseline,
// otherwise the entry was produced under an older 12-month window and is
// discarded even if recent.
type snapshotCache struct {
	mu       sync.Mutex
	snap     *models.Snapshot
	storedAt time.Time
	ttl      time.Duration
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{ttl: ttl}
}

// Get returns the cached snapshot if it is still fresh at now and was built
// against wantBaseline.
func (c *snapshotCache) Get(now time.Time, wantBaseline string) (*models.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap == nil {
		return nil, false
	}
	if !common.IsFresh(c.storedAt, now, c.ttl) {
		return nil, false
	}
	if c.snap.Metadata.BaselineDate != wantBaseline {
		return nil, false
	}
	return c.snap, true
}

// Put stores a snapshot with the given load time.
func (c *snapshotCache) Put(snap *models.Snapshot, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.storedAt = now
}

// Invalidate drops the cached snapshot.
func (c *snapshotCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = nil
	c.storedAt = time.Time{}
}
