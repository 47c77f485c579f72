package treebank

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2"
	"github.com/lexicoord/semcore/internal/engine"
	"github.com/vmihailenco/msgpack/v5"
	bolt "go.etcd.io/bbolt"
)

// AdaptiveCache is the three-tier pattern cache described in §4.5.4: a
// small, always-hot T1 map for the highest-frequency lemmas, a bounded T2 LRU
// for everything else seen recently, and an optional T3 on-disk bbolt index
// that backs cold lookups without holding every pattern in memory.
type AdaptiveCache struct {
	mu sync.RWMutex
	t1 map[string]Pattern

	t2 *lru.Cache[string, Pattern]

	t3Path string
	t3     *bolt.DB

	t1HotThreshold int

	coreHits     uint64
	lruHits      uint64
	indexLookups uint64
	totalLookups uint64
}

// TierStats is the per-tier hit accounting described in §4.5.4.
type TierStats struct {
	CoreHits     uint64
	LRUHits      uint64
	IndexLookups uint64
	TotalLookups uint64
}

// HitRate is (core_hits + lru_hits) / total_lookups, per §4.5.4. A T3 hit is
// counted under IndexLookups, not here, since reaching the persistent tier
// already cost the caller the fast-path latency the rate is meant to track.
func (s TierStats) HitRate() float64 {
	if s.TotalLookups == 0 {
		return 0
	}
	return float64(s.CoreHits+s.LRUHits) / float64(s.TotalLookups)
}

var bucketPatterns = []byte("patterns")

// NewAdaptiveCache builds a cache. t1HotThreshold is the minimum Frequency a
// pattern needs to be promoted into the always-hot T1 tier. t2Capacity bounds
// the T2 LRU. t3Path, if non-empty, opens (or creates) a persistent bbolt
// index for T3; a blank path disables the persistent tier.
func NewAdaptiveCache(t1HotThreshold, t2Capacity int, t3Path string) (*AdaptiveCache, error) {
	t2, err := lru.New[string, Pattern](t2Capacity)
	if err != nil {
		return nil, engine.Cache("TreebankEngine", err)
	}
	c := &AdaptiveCache{
		t1:             make(map[string]Pattern),
		t2:             t2,
		t1HotThreshold: t1HotThreshold,
		t3Path:         t3Path,
	}
	if t3Path != "" {
		if err := os.MkdirAll(filepath.Dir(t3Path), 0o755); err != nil {
			return nil, engine.Cache("TreebankEngine", err)
		}
		db, oerr := bolt.Open(t3Path, 0o600, nil)
		if oerr != nil {
			return nil, engine.Cache("TreebankEngine", oerr)
		}
		if uerr := db.Update(func(tx *bolt.Tx) error {
			_, berr := tx.CreateBucketIfNotExists(bucketPatterns)
			return berr
		}); uerr != nil {
			db.Close()
			return nil, engine.Cache("TreebankEngine", uerr)
		}
		c.t3 = db
	}
	return c, nil
}

// Get probes T1, then T2, then T3 in order, promoting a T3 hit into T2.
func (c *AdaptiveCache) Get(key string) (Pattern, bool) {
	atomic.AddUint64(&c.totalLookups, 1)

	c.mu.RLock()
	if p, ok := c.t1[key]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.coreHits, 1)
		return p, true
	}
	c.mu.RUnlock()

	if p, ok := c.t2.Get(key); ok {
		atomic.AddUint64(&c.lruHits, 1)
		return p, true
	}

	if c.t3 != nil {
		atomic.AddUint64(&c.indexLookups, 1)
		var p Pattern
		found := false
		_ = c.t3.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPatterns)
			if b == nil {
				return nil
			}
			v := b.Get([]byte(key))
			if v == nil {
				return nil
			}
			if err := msgpack.Unmarshal(v, &p); err != nil {
				return err
			}
			found = true
			return nil
		})
		if found {
			c.t2.Add(key, p)
			return p, true
		}
	}
	return Pattern{}, false
}

// TierStats returns a snapshot of the cache's per-tier hit accounting.
func (c *AdaptiveCache) TierStats() TierStats {
	return TierStats{
		CoreHits:     atomic.LoadUint64(&c.coreHits),
		LRUHits:      atomic.LoadUint64(&c.lruHits),
		IndexLookups: atomic.LoadUint64(&c.indexLookups),
		TotalLookups: atomic.LoadUint64(&c.totalLookups),
	}
}

// Put stores a pattern, promoting it to T1 when its frequency clears the hot
// threshold and otherwise landing it in T2. A T3-backed cache also persists
// the write so future process starts see it without rebuilding.
func (c *AdaptiveCache) Put(key string, p Pattern) {
	if p.Frequency >= c.t1HotThreshold {
		c.mu.Lock()
		c.t1[key] = p
		c.mu.Unlock()
	} else {
		c.t2.Add(key, p)
	}
	if c.t3 != nil {
		v, err := msgpack.Marshal(p)
		if err != nil {
			return
		}
		_ = c.t3.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketPatterns)
			if b == nil {
				return nil
			}
			return b.Put([]byte(key), v)
		})
	}
}

// PutSynthesized stores a freshly synthesized pattern into T2 only, per
// §4.5.5: synthesis output is a best-effort fallback, not a corpus
// observation, so it never earns T1 promotion or T3 persistence.
func (c *AdaptiveCache) PutSynthesized(key string, p Pattern) {
	c.t2.Add(key, p)
}

// Close releases the T3 bbolt handle, if one is open.
func (c *AdaptiveCache) Close() error {
	if c.t3 == nil {
		return nil
	}
	return c.t3.Close()
}

// Len reports the combined size of the in-memory tiers (T1 + T2); T3's size
// is not tracked in memory.
func (c *AdaptiveCache) Len() int {
	c.mu.RLock()
	n := len(c.t1)
	c.mu.RUnlock()
	return n + c.t2.Len()
}
