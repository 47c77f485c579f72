package treebank

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/obsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Config configures an Engine build.
type Config struct {
	CorpusPath     string
	T1HotThreshold int // minimum pattern frequency promoted into the always-hot tier
	T2Capacity     int
	T3Path         string // optional persistent bbolt index path; blank disables it
	MinFrequency   int    // patterns below this frequency are not indexed at all

	Theta ThetaGridSource
	Frame FrameValenceSource

	// DisableSynthesis turns off the synthesized-pattern fallback; an
	// unindexed lemma becomes a flat zero-confidence miss instead. The zero
	// value (false) keeps synthesis on, the spec's default behavior.
	DisableSynthesis bool

	Base engine.Config
}

// Engine answers dependency-pattern lookups against the loaded corpus,
// falling back to synthesis for lemmas the corpus never observed.
type Engine struct {
	base  *engine.Base[SemanticSignature, TreebankAnalysis]
	cfg   Config
	cache *AdaptiveCache

	buildErrors []error
}

// New parses every .conllu file under cfg.CorpusPath, builds the pattern
// index, and loads it into a three-tier adaptive cache.
func New(cfg Config) (*Engine, error) {
	if cfg.CorpusPath == "" {
		return nil, engine.ConfigErr("TreebankEngine", "corpus path is required")
	}
	if cfg.T1HotThreshold <= 0 {
		cfg.T1HotThreshold = 50
	}
	if cfg.T2Capacity <= 0 {
		cfg.T2Capacity = 5000
	}

	sentences, errs := walkCorpus(cfg.CorpusPath)
	if len(sentences) == 0 {
		return nil, engine.ConfigErr("TreebankEngine", "no sentences loaded from "+cfg.CorpusPath)
	}

	index := BuildIndex(sentences)
	cache, cerr := NewAdaptiveCache(cfg.T1HotThreshold, cfg.T2Capacity, cfg.T3Path)
	if cerr != nil {
		return nil, cerr
	}
	for key, p := range index {
		if p.Frequency < cfg.MinFrequency {
			continue
		}
		cache.Put(key, *p)
	}

	e := &Engine{
		cfg:         cfg,
		cache:       cache,
		buildErrors: errs,
	}
	e.base = engine.NewBase[SemanticSignature, TreebankAnalysis](cfg.Base, "TreebankEngine")
	e.base.WarmUp()
	log.WithFields(logrus.Fields{"engine": "TreebankEngine", "sentences": len(sentences), "patterns": len(index)}).
		Info("loaded dependency-pattern corpus")
	return e, nil
}

func walkCorpus(root string) ([]Sentence, []error) {
	var sentences []Sentence
	var errs []error
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() || !strings.HasSuffix(path, ".conllu") {
			return nil
		}
		s, e := ParseCoNLLUFile(path)
		sentences = append(sentences, s...)
		errs = append(errs, e...)
		return nil
	})
	return sentences, errs
}

// Name implements engine.Core.
func (e *Engine) Name() string { return "TreebankEngine" }

// CacheKey implements engine.Core: the full signature key, the most specific
// of Variants().
func (e *Engine) CacheKey(sig SemanticSignature) string { return "treebank:" + sig.key() }

// PerformAnalysis implements engine.Core: walks sig's fallback variants in
// priority order (AnalyzeWithSignature), synthesizing a pattern if none of
// them is indexed. A freshly synthesized pattern is written back into the
// adaptive cache's T2 tier (§4.5.5) so a repeat lookup for the same
// signature variant reports FromCache on its second call (§4.5.6).
func (e *Engine) PerformAnalysis(sig SemanticSignature) (TreebankAnalysis, error) {
	start := time.Now()
	variants := sig.Variants()
	for _, key := range variants {
		if p, ok := e.cache.Get(key); ok {
			return TreebankAnalysis{
				Lemma:            sig.Lemma,
				Patterns:         []Pattern{p},
				FromCache:        true,
				ProcessingTimeUs: time.Since(start).Microseconds(),
			}, nil
		}
	}
	if e.cfg.DisableSynthesis {
		return TreebankAnalysis{Lemma: sig.Lemma, ProcessingTimeUs: time.Since(start).Microseconds()}, nil
	}
	synth := Synthesize(sig.Lemma, sig.UPos, e.cfg.Theta, e.cfg.Frame)
	if len(variants) > 0 {
		e.cache.PutSynthesized(variants[0], synth)
	}
	return TreebankAnalysis{
		Lemma:            sig.Lemma,
		Patterns:         []Pattern{synth},
		Synthesized:      true,
		ProcessingTimeUs: time.Since(start).Microseconds(),
	}, nil
}

// CalculateConfidence implements engine.Core. An indexed (corpus-observed)
// pattern's confidence scales with its observed frequency, capped at 0.95;
// a synthesized pattern uses CalculateSynthesisConfidence, with the source
// bonus granted only when the theta-grid or frame-valence source yielded a
// result for the lemma (the same check Synthesize makes).
func (e *Engine) CalculateConfidence(sig SemanticSignature, out TreebankAnalysis) float64 {
	if len(out.Patterns) == 0 {
		return 0.0
	}
	p := out.Patterns[0]
	if !out.Synthesized {
		conf := 0.5 + float64(p.Frequency)/100.0
		if conf > 0.95 {
			conf = 0.95
		}
		return conf
	}
	highFreq := false
	if e.cfg.Theta != nil {
		roles, ok := e.cfg.Theta.ThetaGridFor(sig.Lemma)
		highFreq = ok && len(roles) > 0
	}
	if !highFreq && e.cfg.Frame != nil {
		n, ok := e.cfg.Frame.CoreElementCountFor(sig.Lemma)
		highFreq = ok && n > 0
	}
	hasNonLemma := sig.VerbClassID != "" || sig.FrameID != "" || sig.SynsetOffset != ""
	return CalculateSynthesisConfidence(len(p.Relations), highFreq, hasNonLemma)
}

// AnalyzeWord analyzes a bare lemma with no disambiguating signature fields.
func (e *Engine) AnalyzeWord(lemma string, upos engine.UPos) (engine.Result[TreebankAnalysis], error) {
	return e.Analyze(SemanticSignature{Lemma: lemma, UPos: upos})
}

// AnalyzeWithContext analyzes lemma using the fuller signature produced by
// cross-referencing the other three engines' own analyses of the same word.
func (e *Engine) AnalyzeWithContext(sig SemanticSignature) (engine.Result[TreebankAnalysis], error) {
	return e.Analyze(sig)
}

// Analyze resolves sig through the substrate's cache-probe/compute pipeline.
func (e *Engine) Analyze(sig SemanticSignature) (engine.Result[TreebankAnalysis], error) {
	start := time.Now()
	r, err := e.base.Analyze(sig, e)
	obsv.AnalyzeDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
	return r, err
}

// Stats returns the engine's accumulated statistics.
func (e *Engine) Stats() engine.Stats { return e.base.Stats() }

// CacheStats returns the engine's cache hit/miss accounting.
func (e *Engine) CacheStats() engine.CacheStats { return e.base.CacheStats() }

// TierStats returns the adaptive pattern cache's per-tier hit accounting,
// per §4.5.4.
func (e *Engine) TierStats() TierStats { return e.cache.TierStats() }

// ClearCache empties the engine's result cache (the adaptive pattern index
// itself is left intact; it is corpus-derived, not a memoization of Analyze).
func (e *Engine) ClearCache() { e.base.ClearCache() }

// Close releases the adaptive cache's T3 bbolt handle, if one is open.
func (e *Engine) Close() error { return e.cache.Close() }

// BuildErrors returns the per-sentence errors recorded while loading the corpus.
func (e *Engine) BuildErrors() []error { return e.buildErrors }
