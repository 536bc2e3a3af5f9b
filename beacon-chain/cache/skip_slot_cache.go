// Package cache holds the caches shared by the state transition.
package cache

import (
	"context"
	"math"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prysmaticlabs/gasper/beacon-chain/state"
	"go.opencensus.io/trace"
)

const (
	// maxSkipSlotCacheSize defines the max number of advanced states that can be cached.
	maxSkipSlotCacheSize = 8
)

var (
	// Delay parameters
	minDelay    = float64(10)        // 10 nanoseconds
	maxDelay    = float64(100000000) // 0.1 second
	delayFactor = 1.1

	// Metrics
	skipSlotCacheHit = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skip_slot_cache_hit",
		Help: "The total number of cache hits on the skip slot cache.",
	})
	skipSlotCacheMiss = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skip_slot_cache_miss",
		Help: "The total number of cache misses on the skip slot cache.",
	})
)

// SkipSlotCache stores the states produced by advancing a known state
// through empty slots, keyed by the pre-state root and the target slot.
type SkipSlotCache struct {
	cache      *lru.Cache
	lock       sync.RWMutex
	disabled   bool
	inProgress map[[32]byte]bool
}

// NewSkipSlotCache initializes the map and underlying cache.
func NewSkipSlotCache() *SkipSlotCache {
	c, err := lru.New(maxSkipSlotCacheSize)
	if err != nil {
		panic(err)
	}
	return &SkipSlotCache{
		cache:      c,
		inProgress: make(map[[32]byte]bool),
	}
}

// Enable the skip slot cache.
func (c *SkipSlotCache) Enable() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.disabled = false
}

// Disable the skip slot cache.
func (c *SkipSlotCache) Disable() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.disabled = true
}

// Clear empties the cache.
func (c *SkipSlotCache) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache.Purge()
	c.inProgress = make(map[[32]byte]bool)
}

// Get waits for any in progress calculation to complete before returning a
// cached response, if any. A miss returns a nil state and no error.
func (c *SkipSlotCache) Get(ctx context.Context, r [32]byte) (state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "skipSlotCache.Get")
	defer span.End()

	c.lock.RLock()
	disabled := c.disabled
	c.lock.RUnlock()
	if disabled {
		skipSlotCacheMiss.Inc()
		return nil, nil
	}

	delay := minDelay
	inProgress := false
	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.lock.RLock()
		if !c.inProgress[r] {
			c.lock.RUnlock()
			break
		}
		inProgress = true
		c.lock.RUnlock()

		// Back off while another caller computes the same state.
		time.Sleep(time.Duration(delay) * time.Nanosecond)
		delay *= delayFactor
		delay = math.Min(delay, maxDelay)
	}
	span.AddAttributes(trace.BoolAttribute("inProgress", inProgress))

	item, exists := c.cache.Get(r)
	if !exists || item == nil {
		skipSlotCacheMiss.Inc()
		span.AddAttributes(trace.BoolAttribute("hit", false))
		return nil, nil
	}
	st, ok := item.(state.BeaconState)
	if !ok {
		return nil, errCastingFailed
	}
	skipSlotCacheHit.Inc()
	span.AddAttributes(trace.BoolAttribute("hit", true))
	return st.Copy(), nil
}

// MarkInProgress a request so that any other similar requests will block on
// Get until MarkNotInProgress is called.
func (c *SkipSlotCache) MarkInProgress(r [32]byte) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.disabled {
		return nil
	}
	if c.inProgress[r] {
		return ErrAlreadyInProgress
	}
	c.inProgress[r] = true
	return nil
}

// MarkNotInProgress will release the lock on a given request. This should be
// called after put.
func (c *SkipSlotCache) MarkNotInProgress(r [32]byte) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.inProgress, r)
}

// Put the response in the cache.
func (c *SkipSlotCache) Put(_ context.Context, r [32]byte, st state.BeaconState) error {
	c.lock.RLock()
	disabled := c.disabled
	c.lock.RUnlock()
	if disabled {
		return nil
	}
	if st == nil {
		return errors.New("cannot cache a nil state")
	}
	// Copy state so cached value is not mutated.
	c.cache.Add(r, st.Copy())
	return nil
}
