package wordnet

import (
	"strings"
	"time"

	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/obsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// earlyExitConfidence stops scanning further parts of speech once a
// candidate POS has already produced at least this much confidence; an
// unambiguous (single-sense) hit on the first POS tried rarely benefits from
// also checking the rest.
const earlyExitConfidence = 0.7

// Config configures an Engine build.
type Config struct {
	DataPath string
	Mode     Mode
	Base     engine.Config
}

// Engine answers synset lookups and base-form resolution against the loaded
// WordNet database.
type Engine struct {
	base *engine.Base[Query, WordnetAnalysis]
	cfg  Config

	synsetByOffset map[string]Synset // keyed "pos:offset"
	indexByLemma   map[string][]IndexEntry
	exceptions     map[engine.PartOfSpeech]map[string][]string

	buildErrors []error
}

// Query is the input to Analyze: a lemma and an optional POS hint (POSUnknown
// means "search every open-class part of speech").
type Query struct {
	Lemma string
	POS   engine.PartOfSpeech
}

func (q Query) key() string {
	return strings.ToLower(q.Lemma) + "#" + q.POS.String()
}

// New builds an Engine by parsing cfg.DataPath's data.*, index.*, and *.exc
// files for each open-class part of speech.
func New(cfg Config) (*Engine, error) {
	if cfg.DataPath == "" {
		return nil, engine.ConfigErr("WordnetEngine", "data path is required")
	}
	e := &Engine{
		cfg:            cfg,
		synsetByOffset: make(map[string]Synset),
		indexByLemma:   make(map[string][]IndexEntry),
		exceptions:     make(map[engine.PartOfSpeech]map[string][]string),
	}

	posFile := map[engine.PartOfSpeech]string{
		engine.POSNoun:      "noun",
		engine.POSVerb:      "verb",
		engine.POSAdjective: "adj",
		engine.POSAdverb:    "adv",
	}
	loadedAny := false
	for pos, suffix := range posFile {
		dataPath := cfg.DataPath + "/data." + suffix
		if synsets, derr := ParseDataFile(dataPath, cfg.Mode); derr == nil {
			loadedAny = true
			for _, ss := range synsets {
				e.synsetByOffset[ss.POS.String()+":"+ss.Offset] = ss
			}
		} else {
			e.buildErrors = append(e.buildErrors, derr)
		}

		indexPath := cfg.DataPath + "/index." + suffix
		if entries, ierr := ParseIndexFile(indexPath, cfg.Mode); ierr == nil {
			loadedAny = true
			for _, entry := range entries {
				key := strings.ToLower(entry.Lemma)
				e.indexByLemma[key] = append(e.indexByLemma[key], entry)
			}
		} else {
			e.buildErrors = append(e.buildErrors, ierr)
		}

		excPath := cfg.DataPath + "/" + suffix + ".exc"
		if excs, eerr := ParseExceptionFile(excPath, cfg.Mode); eerr == nil {
			m := make(map[string][]string, len(excs))
			for _, ex := range excs {
				m[strings.ToLower(ex.Inflected)] = ex.Bases
			}
			e.exceptions[pos] = m
		}
	}
	if !loadedAny {
		return nil, engine.ConfigErr("WordnetEngine", "no wordnet data loaded from "+cfg.DataPath)
	}

	e.base = engine.NewBase[Query, WordnetAnalysis](cfg.Base, "WordnetEngine")
	e.base.WarmUp()
	log.WithFields(logrus.Fields{"engine": "WordnetEngine", "synsets": len(e.synsetByOffset), "lemmas": len(e.indexByLemma)}).
		Info("loaded wordnet database")
	return e, nil
}

// Name implements engine.Core.
func (e *Engine) Name() string { return "WordnetEngine" }

// CacheKey implements engine.Core: engine_name:input, the lower-cased lemma
// plus the POS hint (POSUnknown when no hint was supplied).
func (e *Engine) CacheKey(q Query) string { return "wordnet:" + q.key() }

// BaseForms resolves surface to its WordNet base form(s) for pos, consulting
// the irregular-exception list first and falling back to the surface form
// unchanged when no exception applies.
func (e *Engine) BaseForms(surface string, pos engine.PartOfSpeech) []string {
	lower := strings.ToLower(surface)
	if m, ok := e.exceptions[pos]; ok {
		if bases, found := m[lower]; found {
			return bases
		}
	}
	return []string{lower}
}

// PerformAnalysis implements engine.Core.
func (e *Engine) PerformAnalysis(q Query) (WordnetAnalysis, error) {
	posList := engine.AllWordnetPOS
	if q.POS != engine.POSUnknown {
		posList = []engine.PartOfSpeech{q.POS}
	}
	analysis := WordnetAnalysis{Lemma: q.Lemma}
	seenBase := map[string]bool{}

	for _, pos := range posList {
		bases := e.BaseForms(q.Lemma, pos)
		for _, base := range bases {
			if !seenBase[base] {
				analysis.BaseForms = append(analysis.BaseForms, base)
				seenBase[base] = true
			}
			for _, entry := range e.indexByLemma[base] {
				if entry.POS != pos {
					continue
				}
				for _, offset := range entry.SynsetOffsets {
					if ss, ok := e.synsetByOffset[pos.String()+":"+offset]; ok {
						analysis.Senses = append(analysis.Senses, SenseEntry{
							Synset:     ss,
							SenseIndex: wordIndexIn(ss, base),
						})
					}
				}
			}
		}
		if partialConfidence(analysis) >= earlyExitConfidence && q.POS == engine.POSUnknown {
			break
		}
	}
	return analysis, nil
}

func wordIndexIn(ss Synset, base string) int {
	for i, w := range ss.Words {
		if strings.EqualFold(w, base) {
			return i + 1
		}
	}
	return 0
}

// partialConfidence gives CalculateConfidence's formula a value usable for
// the early-exit check while a multi-POS scan is still in progress.
func partialConfidence(a WordnetAnalysis) float64 {
	if len(a.Senses) == 0 {
		return 0
	}
	return senseCountConfidence(len(a.Senses))
}

// senseCountConfidence scales confidence down with polysemy: a single sense
// is near-certain, many senses leave genuine ambiguity about which was meant.
func senseCountConfidence(n int) float64 {
	switch {
	case n <= 0:
		return 0.0
	case n == 1:
		return 0.95
	case n <= 3:
		return 0.80
	case n <= 6:
		return 0.65
	default:
		return 0.50
	}
}

// CalculateConfidence implements engine.Core.
func (e *Engine) CalculateConfidence(_ Query, out WordnetAnalysis) float64 {
	return senseCountConfidence(len(out.Senses))
}

// Analyze resolves q through the substrate's cache-probe/compute pipeline.
func (e *Engine) Analyze(q Query) (engine.Result[WordnetAnalysis], error) {
	start := time.Now()
	r, err := e.base.Analyze(q, e)
	obsv.AnalyzeDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
	return r, err
}

// SynsetByOffset returns a loaded synset by (pos, offset).
func (e *Engine) SynsetByOffset(pos engine.PartOfSpeech, offset string) (Synset, bool) {
	ss, ok := e.synsetByOffset[pos.String()+":"+offset]
	return ss, ok
}

// Stats returns the engine's accumulated statistics.
func (e *Engine) Stats() engine.Stats { return e.base.Stats() }

// CacheStats returns the engine's cache hit/miss accounting.
func (e *Engine) CacheStats() engine.CacheStats { return e.base.CacheStats() }

// ClearCache empties the engine's analyze cache.
func (e *Engine) ClearCache() { e.base.ClearCache() }

// BuildErrors returns the per-file errors recorded while loading the database.
func (e *Engine) BuildErrors() []error { return e.buildErrors }
