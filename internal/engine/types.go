package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lexicoord/semcore/internal/obsv"
)

// Config is immutable once an engine is built; changing a value requires
// building a fresh engine.
type Config struct {
	CacheEnabled        bool
	CacheCapacity       int
	MetricsEnabled      bool
	ParallelEnabled     bool
	MaxThreads          int
	ConfidenceThreshold float64
}

// DefaultConfig mirrors the teacher's conservative tool defaults.
func DefaultConfig() Config {
	return Config{
		CacheEnabled:        true,
		CacheCapacity:       5000,
		MetricsEnabled:      true,
		ParallelEnabled:     true,
		MaxThreads:          4,
		ConfidenceThreshold: 0.5,
	}
}

// CacheStats reports hit/miss accounting for one engine's cache.
type CacheStats struct {
	Hits         uint64
	Misses       uint64
	TotalLookups uint64
	HitRate      float64
	Evictions    uint64
	CurrentSize  int
	HasTTL       bool
}

// Stats accumulates monotone per-engine counters across the engine's lifetime.
type Stats struct {
	EngineName         string
	TotalAnalyses      uint64
	SuccessfulAnalyses uint64
	FailedAnalyses     uint64
	AvgConfidence      float64
	TotalWallTime      time.Duration
}

// Snapshot returns a value copy of s safe to hand to callers.
func (s *Stats) Snapshot() Stats {
	return *s
}

// Result pairs an analysis output with its confidence, mirroring SemanticResult<T>.
type Result[T any] struct {
	Data       T
	Confidence float64
}

// Core is the pluggable hook every concrete engine implements; Base wraps it
// with the uniform cache-probe/compute/cache-store/stats pipeline.
type Core[I any, O any] interface {
	PerformAnalysis(input I) (O, error)
	CalculateConfidence(input I, output O) float64
	CacheKey(input I) string
	Name() string
}

// Base provides every resource engine with analyze(input) -> SemanticResult,
// an internal cache keyed by cache_key(input), metrics accounting and stats.
//
// Base never retries; a PerformAnalysis error is surfaced to the caller
// verbatim and counted as a failure. Cache writes go to an in-memory map and
// cannot fail.
type Base[I any, O any] struct {
	cfg   Config
	mu    sync.RWMutex
	cache map[string]Result[O]
	order []string // insertion order, for capacity eviction (FIFO-ish LRU-lite)

	stats   Stats
	statsMu sync.Mutex

	cacheHitsAtomic     uint64
	cacheMissesAtomic   uint64
	cacheLookupsAtomic  uint64
	cacheEvictions      uint64

	initOnce sync.Once
	ready    atomic.Bool
}

// NewBase constructs a Base for the named engine with the given config.
func NewBase[I any, O any](cfg Config, name string) *Base[I, O] {
	b := &Base[I, O]{
		cfg:   cfg,
		cache: make(map[string]Result[O]),
		stats: Stats{EngineName: name},
	}
	return b
}

// WarmUp marks the engine ready for analysis; idempotent.
func (b *Base[I, O]) WarmUp() {
	b.initOnce.Do(func() { b.ready.Store(true) })
}

// Ready reports whether WarmUp has completed.
func (b *Base[I, O]) Ready() bool { return b.ready.Load() }

// Analyze runs the uniform cache-probe/compute/cache-store/stats pipeline
// against core, the concrete engine's PerformAnalysis hook.
func (b *Base[I, O]) Analyze(input I, core Core[I, O]) (Result[O], error) {
	start := time.Now()
	name := core.Name()

	var key string
	if b.cfg.CacheEnabled {
		key = core.CacheKey(input)
		b.mu.RLock()
		if r, ok := b.cache[key]; ok {
			b.mu.RUnlock()
			b.recordCacheHit()
			if b.cfg.MetricsEnabled {
				obsv.CacheLookupsTotal.WithLabelValues(name, "hit").Inc()
			}
			b.recordStats(r.Confidence, true, time.Since(start))
			return r, nil
		}
		b.mu.RUnlock()
		b.recordCacheMiss()
		if b.cfg.MetricsEnabled {
			obsv.CacheLookupsTotal.WithLabelValues(name, "miss").Inc()
		}
	}

	out, err := core.PerformAnalysis(input)
	if err != nil {
		b.recordStats(0, false, time.Since(start))
		if b.cfg.MetricsEnabled {
			obsv.AnalysisFailuresTotal.WithLabelValues(name, KindOf(err).String()).Inc()
		}
		return Result[O]{}, err
	}
	confidence := core.CalculateConfidence(input, out)
	result := Result[O]{Data: out, Confidence: confidence}

	if b.cfg.CacheEnabled {
		b.store(key, result)
	}
	b.recordStats(confidence, true, time.Since(start))
	return result, nil
}

func (b *Base[I, O]) store(key string, r Result[O]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.cache[key]; !exists {
		if b.cfg.CacheCapacity > 0 && len(b.order) >= b.cfg.CacheCapacity {
			evictKey := b.order[0]
			b.order = b.order[1:]
			delete(b.cache, evictKey)
			atomic.AddUint64(&b.cacheEvictions, 1)
		}
		b.order = append(b.order, key)
	}
	b.cache[key] = r
}

func (b *Base[I, O]) recordCacheHit() {
	atomic.AddUint64(&b.cacheHitsAtomic, 1)
	atomic.AddUint64(&b.cacheLookupsAtomic, 1)
}

func (b *Base[I, O]) recordCacheMiss() {
	atomic.AddUint64(&b.cacheMissesAtomic, 1)
	atomic.AddUint64(&b.cacheLookupsAtomic, 1)
}

func (b *Base[I, O]) recordStats(confidence float64, success bool, elapsed time.Duration) {
	b.statsMu.Lock()
	defer b.statsMu.Unlock()
	b.stats.TotalAnalyses++
	if success {
		b.stats.SuccessfulAnalyses++
		n := float64(b.stats.SuccessfulAnalyses)
		b.stats.AvgConfidence = (b.stats.AvgConfidence*(n-1) + confidence) / n
	} else {
		b.stats.FailedAnalyses++
	}
	b.stats.TotalWallTime += elapsed
}

// ClearCache empties the cache without resetting statistics.
func (b *Base[I, O]) ClearCache() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache = make(map[string]Result[O])
	b.order = nil
}

// SetCacheCapacity updates the capacity used by future evictions.
func (b *Base[I, O]) SetCacheCapacity(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg.CacheCapacity = n
}

// Stats returns a monotone snapshot of accumulated engine statistics.
func (b *Base[I, O]) Stats() Stats {
	b.statsMu.Lock()
	defer b.statsMu.Unlock()
	return b.stats.Snapshot()
}

// CacheStats returns the current hit/miss accounting.
func (b *Base[I, O]) CacheStats() CacheStats {
	hits := atomic.LoadUint64(&b.cacheHitsAtomic)
	misses := atomic.LoadUint64(&b.cacheMissesAtomic)
	total := atomic.LoadUint64(&b.cacheLookupsAtomic)
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	b.mu.RLock()
	size := len(b.cache)
	b.mu.RUnlock()
	return CacheStats{
		Hits:         hits,
		Misses:       misses,
		TotalLookups: total,
		HitRate:      hitRate,
		Evictions:    atomic.LoadUint64(&b.cacheEvictions),
		CurrentSize:  size,
		HasTTL:       false,
	}
}
