// Package loader assembles the portal's view-model: it fetches the snapshot
// and allocation documents, caches the snapshot for the freshness window,
// and joins them into a single PortfolioPerformance.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/alphapie/pieview/internal/common"
	"github.com/alphapie/pieview/internal/config"
	"github.com/alphapie/pieview/internal/models"
	"github.com/alphapie/pieview/internal/perf"
)

// topPerformerCount is how many leaders the view-model carries.
const topPerformerCount = 5

// Loader loads and caches the portal's data. Safe for concurrent use: the
// snapshot cache is internally locked and the allocation set is memoised
// after the first successful read.
type Loader struct {
	snapshotPath    string
	allocationsPath string
	logger          *common.Logger
	client          *resty.Client
	cache           *snapshotCache
	now             func() time.Time

	allocMu sync.Mutex
	alloc   *models.AllocationSet
}

// New creates a Loader from config. Both document paths may be filesystem
// paths or http(s) URLs.
func New(cfg *config.Config, logger *common.Logger) *Loader {
	if logger == nil {
		logger = common.NewSilentLogger()
	}

	client := resty.New()
	client.SetTimeout(10 * time.Second)

	return &Loader{
		snapshotPath:    cfg.Snapshot.Path,
		allocationsPath: cfg.Snapshot.AllocationsPath,
		logger:          logger,
		client:          client,
		cache:           newSnapshotCache(cfg.Cache.GetTTL()),
		now:             time.Now,
	}
}

// Load produces the complete view-model for one page render. The snapshot
// and allocations are fetched concurrently on a cold start; afterwards the
// allocations are memoised and the snapshot is served from cache inside the
// freshness window. Either document failing to load fails the whole load —
// the portal renders an error page rather than partial figures.
func (l *Loader) Load(ctx context.Context) (*models.PortfolioPerformance, error) {
	var (
		wg       sync.WaitGroup
		snap     *models.Snapshot
		alloc    *models.AllocationSet
		snapErr  error
		allocErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snap, snapErr = l.Snapshot(ctx)
	}()
	go func() {
		defer wg.Done()
		alloc, allocErr = l.Allocations(ctx)
	}()
	wg.Wait()

	if allocErr != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", allocErr)
	}
	if snapErr != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", snapErr)
	}

	view, err := perf.Merge(snap, alloc, l.logger)
	if err != nil {
		return nil, err
	}

	return &models.PortfolioPerformance{
		MergedView:    *view,
		Metrics:       perf.Metrics(snap, alloc),
		TopPerformers: perf.TopPerformers(snap, topPerformerCount),
	}, nil
}

// Snapshot returns the current snapshot, from cache when fresh. A cache
// entry whose baseline date no longer matches today's rolling baseline is
// treated as a miss and refetched.
func (l *Loader) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	now := l.now()
	baseline := common.RollingBaseline(now)

	if snap, ok := l.cache.Get(now, baseline); ok {
		return snap, nil
	}

	var snap models.Snapshot
	if err := l.fetchJSON(ctx, l.snapshotPath, &snap); err != nil {
		return nil, err
	}

	if snap.Metadata.BaselineDate != baseline {
		l.logger.Warn().
			Str("snapshot_baseline", snap.Metadata.BaselineDate).
			Str("current_baseline", baseline).
			Msg("snapshot baseline behind current window")
	}

	l.cache.Put(&snap, now)
	return &snap, nil
}

// Allocations returns the allocation set, reading it at most once.
// Failures are not memoised, so a missing file can be fixed without a
// restart.
func (l *Loader) Allocations(ctx context.Context) (*models.AllocationSet, error) {
	l.allocMu.Lock()
	defer l.allocMu.Unlock()

	if l.alloc != nil {
		return l.alloc, nil
	}

	var alloc models.AllocationSet
	if err := l.fetchJSON(ctx, l.allocationsPath, &alloc); err != nil {
		return nil, err
	}
	if len(alloc.Holdings) == 0 {
		return nil, fmt.Errorf("allocation document %s has no holdings", l.allocationsPath)
	}

	l.alloc = &alloc
	return l.alloc, nil
}

// Invalidate drops the cached snapshot so the next load refetches.
func (l *Loader) Invalidate() {
	l.cache.Invalidate()
}

// fetchJSON reads a JSON document from a filesystem path or an http(s) URL
// into v.
func (l *Loader) fetchJSON(ctx context.Context, path string, v any) error {
	if path == "" {
		return fmt.Errorf("no document path configured")
	}

	var data []byte
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(path)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return fmt.Errorf("fetch of %s returned %d", path, resp.StatusCode())
		}
		data = resp.Body()
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
