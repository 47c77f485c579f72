package coordinator

import (
	"context"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/framenet"
	"github.com/lexicoord/semcore/internal/obsv"
	"github.com/lexicoord/semcore/internal/treebank"
	"github.com/lexicoord/semcore/internal/verbnet"
	"github.com/lexicoord/semcore/internal/wordnet"
	"golang.org/x/sync/errgroup"
)

// Config configures a Coordinator.
type Config struct {
	// MaxParallelEngines bounds the per-word fan-out across the four engines.
	MaxParallelEngines int
	// MaxParallelBatch bounds how many distinct words a batch call analyzes
	// concurrently.
	MaxParallelBatch int
}

// Coordinator is the single entry point a caller uses to analyze a word (or
// a batch of words) against all four lexical engines at once.
type Coordinator struct {
	verbnet  *verbnet.Engine
	framenet *framenet.Engine
	wordnet  *wordnet.Engine
	treebank *treebank.Engine

	cfg Config

	mu    sync.RWMutex
	cache map[string]WordAnalysis
}

// New builds a Coordinator over already-constructed engines. A nil engine is
// legal and simply never contributes to any analysis (useful for partial
// deployments or tests that exercise a subset of engines).
func New(vn *verbnet.Engine, fn *framenet.Engine, wn *wordnet.Engine, tb *treebank.Engine, cfg Config) *Coordinator {
	if cfg.MaxParallelEngines <= 0 {
		cfg.MaxParallelEngines = 4
	}
	if cfg.MaxParallelBatch <= 0 {
		cfg.MaxParallelBatch = 8
	}
	return &Coordinator{
		verbnet:  vn,
		framenet: fn,
		wordnet:  wn,
		treebank: tb,
		cfg:      cfg,
		cache:    make(map[string]WordAnalysis),
	}
}

// AnalyzeWithPOS analyzes lemma under an externally supplied POS tag,
// fanning out across every engine that POS gates in for, merging their
// confidences per the cross-engine bonus rule.
func (c *Coordinator) AnalyzeWithPOS(ctx context.Context, lemma string, pos engine.UPos) (WordAnalysis, error) {
	key := compositeKey(strings.ToLower(lemma), pos)
	c.mu.RLock()
	if cached, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result := WordAnalysis{Lemma: lemma, POS: pos, Sources: mapset.NewSet[string]()}
	var mu sync.Mutex
	var confidences []float64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxParallelEngines)
	_ = gctx

	if c.verbnet != nil && pos.IsVerbLike() {
		g.Go(func() error {
			r, err := c.verbnet.Analyze(lemma)
			if err != nil || r.Confidence <= 0 {
				return nil
			}
			mu.Lock()
			result.Verbnet = &r.Data
			result.Sources.Add("verbnet")
			confidences = append(confidences, r.Confidence)
			mu.Unlock()
			return nil
		})
	}
	if c.framenet != nil && pos.IsContentPOS() {
		g.Go(func() error {
			r, err := c.framenet.Analyze(lemma + ":" + frameNetPOSCode(pos))
			if err != nil || r.Confidence <= 0 {
				return nil
			}
			mu.Lock()
			result.Framenet = &r.Data
			result.Sources.Add("framenet")
			confidences = append(confidences, r.Confidence)
			mu.Unlock()
			return nil
		})
	}
	if c.wordnet != nil {
		if wnPOS, ok := pos.ToWordnetPOS(); ok {
			g.Go(func() error {
				r, err := c.wordnet.Analyze(wordnet.Query{Lemma: lemma, POS: wnPOS})
				if err != nil || r.Confidence <= 0 {
					return nil
				}
				mu.Lock()
				result.Wordnet = &r.Data
				result.Sources.Add("wordnet")
				confidences = append(confidences, r.Confidence)
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return WordAnalysis{}, engine.AnalysisFailed("Coordinator", err)
	}

	// Treebank runs only after verbnet/framenet have fully completed, per
	// §4.6: its signature is informed by whichever of their results landed,
	// so it cannot safely run concurrently with the writes above.
	if c.treebank != nil {
		var vcID, frID string
		if result.Verbnet != nil && len(result.Verbnet.Classes) > 0 {
			vcID = result.Verbnet.Classes[0].ID
		}
		if result.Framenet != nil && len(result.Framenet.Frames) > 0 {
			frID = result.Framenet.Frames[0].ID
		}
		sig := treebank.SemanticSignature{Lemma: lemma, UPos: pos, VerbClassID: vcID, FrameID: frID}
		if r, err := c.treebank.AnalyzeWithContext(sig); err == nil && r.Confidence > 0 {
			result.Treebank = &r.Data
			result.Sources.Add("treebank")
			confidences = append(confidences, r.Confidence)
		}
	}

	result.Confidence = mergeConfidence(confidences)

	c.mu.Lock()
	c.cache[key] = result
	c.mu.Unlock()
	return result, nil
}

// Analyze analyzes lemma with no externally supplied POS, guessing one from
// its surface form via the closed suffix-rule table.
func (c *Coordinator) Analyze(ctx context.Context, lemma string) (WordAnalysis, error) {
	pos, _ := guessPOS(lemma)
	result, err := c.AnalyzeWithPOS(ctx, lemma, pos)
	if err == nil {
		result.Guessed = true
	}
	return result, err
}

// frameNetPOSCode maps a UD upos to FrameNet's own short lexical-unit POS
// code ("word.v", "word.n", ...), since the two tagsets don't share spelling.
func frameNetPOSCode(pos engine.UPos) string {
	switch pos {
	case engine.UPosVerb, engine.UPosAux:
		return "v"
	case engine.UPosNoun, engine.UPosPropn:
		return "n"
	case engine.UPosAdj:
		return "a"
	case engine.UPosAdv:
		return "adv"
	default:
		return "n"
	}
}

// batchItem pairs a requested word with its resolved POS, carrying the
// original input index so dedup-then-reconstruct preserves order.
type batchItem struct {
	lemma string
	pos   engine.UPos
	index int
}

// AnalyzeBatchDeduped analyzes words sequentially, deduplicating repeated
// (lemma, POS) pairs so each distinct pair is analyzed exactly once; results
// are returned in the same order and length as words.
func (c *Coordinator) AnalyzeBatchDeduped(ctx context.Context, words []string, posHints []engine.UPos) ([]WordAnalysis, error) {
	items := c.dedupInputs(words, posHints)
	computed := make(map[string]WordAnalysis, len(items))
	for key, rep := range items {
		r, err := c.AnalyzeWithPOS(ctx, rep.lemma, rep.pos)
		if err != nil {
			return nil, err
		}
		computed[key] = r
	}
	return c.reconstruct(words, posHints, computed), nil
}

// AnalyzeBatchDedupedParallel is AnalyzeBatchDeduped with the distinct
// (lemma, POS) pairs analyzed concurrently, bounded by cfg.MaxParallelBatch.
// Both variants must produce the same result for the same input, since
// dedup and reconstruction are deterministic regardless of completion order.
func (c *Coordinator) AnalyzeBatchDedupedParallel(ctx context.Context, words []string, posHints []engine.UPos) ([]WordAnalysis, error) {
	items := c.dedupInputs(words, posHints)

	var mu sync.Mutex
	computed := make(map[string]WordAnalysis, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxParallelBatch)
	for key, rep := range items {
		key, rep := key, rep
		g.Go(func() error {
			r, err := c.AnalyzeWithPOS(gctx, rep.lemma, rep.pos)
			if err != nil {
				return err
			}
			mu.Lock()
			computed[key] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c.reconstruct(words, posHints, computed), nil
}

func (c *Coordinator) dedupInputs(words []string, posHints []engine.UPos) map[string]batchItem {
	obsv.BatchSize.Observe(float64(len(words)))
	items := make(map[string]batchItem)
	for i, w := range words {
		pos := engine.UPosX
		if i < len(posHints) {
			pos = posHints[i]
		}
		if pos == engine.UPosX {
			pos, _ = guessPOS(w)
		}
		key := compositeKey(strings.ToLower(w), pos)
		if _, ok := items[key]; !ok {
			items[key] = batchItem{lemma: w, pos: pos, index: i}
		}
	}
	return items
}

func (c *Coordinator) reconstruct(words []string, posHints []engine.UPos, computed map[string]WordAnalysis) []WordAnalysis {
	out := make([]WordAnalysis, len(words))
	for i, w := range words {
		pos := engine.UPosX
		if i < len(posHints) {
			pos = posHints[i]
		}
		if pos == engine.UPosX {
			pos, _ = guessPOS(w)
		}
		key := compositeKey(strings.ToLower(w), pos)
		out[i] = computed[key]
	}
	return out
}

// Stats is the coordinator-level view of its own cache plus every enabled
// engine's cumulative statistics, keyed by engine name.
type Stats struct {
	CacheSize int
	PerEngine map[string]engine.Stats
}

// Statistics reports the coordinator's cache size and each enabled engine's
// cumulative stats, per §6.3's statistics() entry point.
func (c *Coordinator) Statistics() Stats {
	c.mu.RLock()
	size := len(c.cache)
	c.mu.RUnlock()

	per := make(map[string]engine.Stats)
	if c.verbnet != nil {
		per[c.verbnet.Stats().EngineName] = c.verbnet.Stats()
	}
	if c.framenet != nil {
		per[c.framenet.Stats().EngineName] = c.framenet.Stats()
	}
	if c.wordnet != nil {
		per[c.wordnet.Stats().EngineName] = c.wordnet.Stats()
	}
	if c.treebank != nil {
		per[c.treebank.Stats().EngineName] = c.treebank.Stats()
	}
	return Stats{CacheSize: size, PerEngine: per}
}

// CacheStats reports each enabled engine's cache hit/miss accounting, keyed
// by engine name, per §6.3's cache_stats() entry point.
func (c *Coordinator) CacheStats() map[string]engine.CacheStats {
	out := make(map[string]engine.CacheStats)
	if c.verbnet != nil {
		out[c.verbnet.Stats().EngineName] = c.verbnet.CacheStats()
	}
	if c.framenet != nil {
		out[c.framenet.Stats().EngineName] = c.framenet.CacheStats()
	}
	if c.wordnet != nil {
		out[c.wordnet.Stats().EngineName] = c.wordnet.CacheStats()
	}
	if c.treebank != nil {
		out[c.treebank.Stats().EngineName] = c.treebank.CacheStats()
	}
	return out
}

// ClearCache empties the coordinator's own result cache and every enabled
// engine's cache, per §6.3's clear_cache() entry point.
func (c *Coordinator) ClearCache() {
	c.mu.Lock()
	c.cache = make(map[string]WordAnalysis)
	c.mu.Unlock()

	if c.verbnet != nil {
		c.verbnet.ClearCache()
	}
	if c.framenet != nil {
		c.framenet.ClearCache()
	}
	if c.wordnet != nil {
		c.wordnet.ClearCache()
	}
	if c.treebank != nil {
		c.treebank.ClearCache()
	}
}

// WarmupCache pre-analyzes a list of common words with guessed POS so their
// first real request is already a cache hit, per §6.3's warmup_cache()
// entry point.
func (c *Coordinator) WarmupCache(ctx context.Context, commonWords []string) error {
	_, err := c.AnalyzeBatchDedupedParallel(ctx, commonWords, nil)
	return err
}
