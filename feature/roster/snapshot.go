package roster

import (
	"context"
	"sync"
	"time"

	"swim-admin/feature/ingest/match"

	"golang.org/x/sync/singleflight"
)

// SnapshotProvider builds and caches roster snapshots for the matcher.
//
// A snapshot is reused for the configured TTL so a multi-file batch matches
// every file against the same roster state; concurrent builds are collapsed
// through singleflight. A zero TTL disables caching and rebuilds on every
// call.
type SnapshotProvider struct {
	service *Service
	ttl     time.Duration

	mu    sync.RWMutex
	cache *match.Snapshot
	built time.Time
	sf    singleflight.Group
}

// NewSnapshotProvider creates a provider over the roster service.
func NewSnapshotProvider(service *Service, ttl time.Duration) *SnapshotProvider {
	return &SnapshotProvider{service: service, ttl: ttl}
}

// Snapshot returns a current roster snapshot, rebuilding it when expired.
func (p *SnapshotProvider) Snapshot(ctx context.Context) (*match.Snapshot, error) {
	if p.ttl > 0 {
		p.mu.RLock()
		cached, built := p.cache, p.built
		p.mu.RUnlock()
		if cached != nil && time.Since(built) <= p.ttl {
			return cached, nil
		}
	}

	result, err, _ := p.sf.Do("roster", func() (any, error) {
		entries, clubs, err := p.service.LoadEntries(ctx)
		if err != nil {
			return nil, err
		}
		snapshot := match.NewSnapshot(entries, clubs)

		p.mu.Lock()
		p.cache = snapshot
		p.built = time.Now()
		p.mu.Unlock()

		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*match.Snapshot), nil
}

// Invalidate drops the cached snapshot.
func (p *SnapshotProvider) Invalidate() {
	p.mu.Lock()
	p.cache = nil
	p.mu.Unlock()
}
