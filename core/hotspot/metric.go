package hotspot

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Sunshine-Research/Sentinel/util"
)

// capacityBase and capacityMax bound the per-rule LRU caches: capacity
// scales with the rule's window (more distinct hot values need tracking
// over a longer window) but never past capacityMax (spec.md §4.5,
// "capacity min(baseCapacity·durationInSec, totalCap)").
const (
	capacityBase = 4000
	capacityMax  = 20000
)

func paramCacheCapacity(durationInSec int64) int {
	if durationInSec <= 0 {
		durationInSec = 1
	}
	cap64 := capacityBase * durationInSec
	if cap64 > capacityMax {
		cap64 = capacityMax
	}
	return int(cap64)
}

// paramMetric holds the per-value counter caches a hot parameter rule
// needs: last-refill timestamp and remaining tokens for the QPS
// token-bucket path, last-passed timestamp for the rate-limiter path,
// and a live thread counter for the concurrency path (spec.md §4.5). A
// single mutex guards every read-modify-write against a value's pair of
// caches; the vendor SPI exposes per-value CAS, but that requires an
// atomic slot per value, which an LRU-evicted map cannot offer cheaply.
type paramMetric struct {
	mu sync.Mutex

	lastAddTokenTime *lru.Cache[string, int64]
	tokenCounter     *lru.Cache[string, int64]
	lastPassedTime   *lru.Cache[string, int64]
	threadCounter    *lru.Cache[string, int64]
}

func newParamMetric(durationInSec int64) *paramMetric {
	capacity := paramCacheCapacity(durationInSec)
	lastAdd, _ := lru.New[string, int64](capacity)
	tokens, _ := lru.New[string, int64](capacity)
	lastPassed, _ := lru.New[string, int64](capacity)
	threads, _ := lru.New[string, int64](capacity)
	return &paramMetric{
		lastAddTokenTime: lastAdd,
		tokenCounter:     tokens,
		lastPassedTime:   lastPassed,
		threadCounter:    threads,
	}
}

// tryConsumeToken implements the QPS default mode's custom token bucket
// (spec.md §4.5, "QPS default mode"). capacity is threshold+burstCount,
// already resolved for any per-value override.
func (m *paramMetric) tryConsumeToken(arg string, count, capacity, threshold, durationMs int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := int64(util.CurrentTimeMillis())
	lastAdd, seen := m.lastAddTokenTime.Get(arg)
	if !seen {
		m.lastAddTokenTime.Add(arg, now)
		m.tokenCounter.Add(arg, capacity-count)
		return true
	}

	passTime := now - lastAdd
	rest, _ := m.tokenCounter.Get(arg)
	if passTime > durationMs {
		toAdd := passTime * threshold / durationMs
		newCount := rest + toAdd
		if newCount > capacity {
			newCount = capacity
		}
		newCount -= count
		if newCount < 0 {
			return false
		}
		m.lastAddTokenTime.Add(arg, now)
		m.tokenCounter.Add(arg, newCount)
		return true
	}

	newCount := rest - count
	if newCount < 0 {
		return false
	}
	m.tokenCounter.Add(arg, newCount)
	return true
}

// tryPassLeaky mirrors the flow package's leaky-bucket throttling
// checker but keyed per parameter value (spec.md §4.5, "QPS
// rate-limiter mode").
func (m *paramMetric) tryPassLeaky(arg string, count, threshold, maxQueueingTimeMs int64) (waitMs int64, ok bool) {
	if threshold <= 0 {
		return 0, false
	}
	costMs := int64(float64(count) * 1000.0 / float64(threshold))

	m.mu.Lock()
	defer m.mu.Unlock()

	now := int64(util.CurrentTimeMillis())
	last, seen := m.lastPassedTime.Get(arg)
	if !seen {
		m.lastPassedTime.Add(arg, now)
		return 0, true
	}

	expected := last + costMs
	if expected <= now {
		m.lastPassedTime.Add(arg, now)
		return 0, true
	}

	wait := expected - now
	if wait > maxQueueingTimeMs {
		return 0, false
	}
	m.lastPassedTime.Add(arg, expected)
	return wait, true
}

func (m *paramMetric) threadCount(arg string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, _ := m.threadCounter.Get(arg)
	return cur
}

func (m *paramMetric) addThreadCount(arg string, delta int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, _ := m.threadCounter.Get(arg)
	next := cur + delta
	if next < 0 {
		next = 0
	}
	m.threadCounter.Add(arg, next)
}
