package alerts

import (
	"context"
	"sync"
	"time"

	"rental-alert-service/internal/metrics"
	"rental-alert-service/internal/models"
)

// Computer is anything that can compute an alert batch for a user. Both
// Engine and Cache implement it, so the HTTP layer does not care whether a
// cache sits in front of the engine.
type Computer interface {
	ComputeAlerts(ctx context.Context, userID string) ([]models.Alert, error)
}

// Cache sits in front of the engine on the caller side: it serves a recent
// batch for up to one TTL and coalesces overlapping requests for the same
// user into a single computation. The engine itself stays stateless.
// Failures are never cached.
type Cache struct {
	engine Computer
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]*cacheEntry

	// now is swapped out in tests.
	now func() time.Time
}

type cacheEntry struct {
	// done is closed once the computation has settled and the fields
	// below are readable.
	done      chan struct{}
	alerts    []models.Alert
	err       error
	fetchedAt time.Time
}

func NewCache(engine Computer, ttl time.Duration) *Cache {
	return &Cache{
		engine:  engine,
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// ComputeAlerts returns the cached batch when fresh, joins an in-flight
// computation when one exists, and otherwise computes a new batch.
func (c *Cache) ComputeAlerts(ctx context.Context, userID string) ([]models.Alert, error) {
	if userID == "" {
		// Let the engine fail fast with its own taxonomy.
		return c.engine.ComputeAlerts(ctx, userID)
	}

	c.mu.Lock()
	if e, ok := c.entries[userID]; ok {
		select {
		case <-e.done:
			if e.err == nil && c.now().Sub(e.fetchedAt) < c.ttl {
				alerts := e.alerts
				c.mu.Unlock()
				metrics.AlertCacheHits.Inc()
				return alerts, nil
			}
			// stale: fall through and recompute
		default:
			// In flight: share its outcome instead of stacking a
			// second computation for the same user.
			c.mu.Unlock()
			select {
			case <-e.done:
				if e.err != nil {
					return nil, e.err
				}
				metrics.AlertCacheHits.Inc()
				return e.alerts, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	e := &cacheEntry{done: make(chan struct{})}
	c.entries[userID] = e
	c.mu.Unlock()
	metrics.AlertCacheMisses.Inc()

	alerts, err := c.engine.ComputeAlerts(ctx, userID)

	c.mu.Lock()
	e.alerts, e.err, e.fetchedAt = alerts, err, c.now()
	close(e.done)
	if err != nil && c.entries[userID] == e {
		delete(c.entries, userID)
	}
	c.mu.Unlock()
	return alerts, err
}

// Invalidate drops the cached batch for a user, forcing the next request to
// recompute. In-flight computations are left alone.
func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[userID]; ok {
		select {
		case <-e.done:
			delete(c.entries, userID)
		default:
		}
	}
}
