package analyses

import (
	"context"
	"sync"
	"time"

	"resumelens/internal/shared/telemetry"
)

// MemoryRepo stores analyses in memory until they expire. It is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
	now  func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo; now defaults to time.Now.
func NewMemoryRepo(now func() time.Time) *MemoryRepo {
	if now == nil {
		now = time.Now
	}
	return &MemoryRepo{
		byID: make(map[string]Analysis),
		now:  now,
	}
}

// Create stores the analysis and drops any expired entries.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purgeLocked(r.now())
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an unexpired analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	analysis, ok := r.byID[analysisID]
	r.mu.RUnlock()
	if !ok || r.expired(analysis, r.now()) {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// Purge removes expired analyses and returns how many were dropped.
func (r *MemoryRepo) Purge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.purgeLocked(r.now())
}

// Sweep purges expired analyses every interval until ctx is done.
func (r *MemoryRepo) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Purge(); n > 0 {
				telemetry.Debug("analyses.purged", map[string]any{"count": n, "remaining": r.Len()})
			}
		}
	}
}

// Len returns the number of stored analyses, expired or not.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *MemoryRepo) purgeLocked(now time.Time) int {
	n := 0
	for id, a := range r.byID {
		if r.expired(a, now) {
			delete(r.byID, id)
			n++
		}
	}
	return n
}

func (r *MemoryRepo) expired(a Analysis, now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}
