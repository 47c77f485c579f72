package framenet

import (
	"strings"
	"time"

	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/obsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

const snapshotFileName = "framenet.db"

// Config configures an Engine build.
type Config struct {
	DataPath       string
	SnapshotPath   string // optional; when set and it is the production default, loaded instead of reparsing XML
	IsDefaultPath  bool   // true only when DataPath is the well-known production database location
	Base           engine.Config
}

// Engine answers frame and lexical-unit lookups against the loaded database.
type Engine struct {
	base *engine.Base[string, FramenetAnalysis]
	cfg  Config

	frameByID   map[string]FrameRecord
	frameByName map[string]FrameRecord
	luByID      map[string]LexicalUnit
	luByLemma   map[string][]string // "lemma:pos" or "lemma" -> [lu_id]

	buildErrors []error
}

// New builds an Engine from cfg.DataPath (or its snapshot, per §4.3).
func New(cfg Config) (*Engine, error) {
	if cfg.DataPath == "" {
		return nil, engine.ConfigErr("FramenetEngine", "data path is required")
	}

	var frames []FrameRecord
	var lus []LexicalUnit
	var errs []error

	loadedFromSnapshot := false
	if cfg.IsDefaultPath && cfg.SnapshotPath != "" {
		if f, l, serr := LoadSnapshot(cfg.SnapshotPath); serr == nil && (len(f) > 0 || len(l) > 0) {
			frames, lus = f, l
			loadedFromSnapshot = true
		}
	}
	if !loadedFromSnapshot {
		frames, lus, errs = WalkDatabase(cfg.DataPath)
	}
	if len(frames) == 0 && len(lus) == 0 {
		return nil, engine.ConfigErr("FramenetEngine", "no frames or lexical units loaded from "+cfg.DataPath)
	}

	e := &Engine{
		cfg:         cfg,
		frameByID:   make(map[string]FrameRecord, len(frames)),
		frameByName: make(map[string]FrameRecord, len(frames)),
		luByID:      make(map[string]LexicalUnit, len(lus)),
		luByLemma:   make(map[string][]string),
		buildErrors: errs,
	}
	for _, fr := range frames {
		e.frameByID[fr.ID] = fr
		e.frameByName[strings.ToLower(fr.Name)] = fr
	}
	for _, lu := range lus {
		e.luByID[lu.ID] = lu
		lemma, pos := splitLUName(lu.Name, lu.POS)
		lemmaKey := strings.ToLower(lemma)
		posKey := lemmaKey + ":" + strings.ToLower(pos)
		e.luByLemma[posKey] = appendUnique(e.luByLemma[posKey], lu.ID)
		e.luByLemma[lemmaKey] = appendUnique(e.luByLemma[lemmaKey], lu.ID)

		if fr, ok := e.frameByID[lu.FrameID]; ok {
			fr.LexicalUnits = appendUnique(fr.LexicalUnits, lu.ID)
			e.frameByID[lu.FrameID] = fr
			e.frameByName[strings.ToLower(fr.Name)] = fr
		}
	}

	if !loadedFromSnapshot && cfg.IsDefaultPath && cfg.SnapshotPath != "" {
		if serr := SaveSnapshot(cfg.SnapshotPath, frames, lus); serr != nil {
			log.WithError(serr).Warn("failed to persist framenet snapshot")
		}
	}

	e.base = engine.NewBase[string, FramenetAnalysis](cfg.Base, "FramenetEngine")
	e.base.WarmUp()
	log.WithFields(logrus.Fields{"engine": "FramenetEngine", "frames": len(e.frameByID), "lexical_units": len(e.luByID)}).
		Info("loaded frame/lexical-unit database")
	return e, nil
}

func appendUnique(ss []string, v string) []string {
	for _, s := range ss {
		if s == v {
			return ss
		}
	}
	return append(ss, v)
}

// splitLUName splits FrameNet's "word.pos" lexical-unit name convention.
func splitLUName(name, fallbackPOS string) (lemma, pos string) {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return name, fallbackPOS
}

// Name implements engine.Core.
func (e *Engine) Name() string { return "FramenetEngine" }

// CacheKey implements engine.Core: engine_name:input, lower-cased text.
func (e *Engine) CacheKey(text string) string { return "framenet:" + strings.ToLower(strings.TrimSpace(text)) }

// PerformAnalysis implements engine.Core: text is a bare lemma, or "lemma:pos".
func (e *Engine) PerformAnalysis(text string) (FramenetAnalysis, error) {
	out := FramenetAnalysis{Text: text}
	key := strings.ToLower(strings.TrimSpace(text))
	ids, ok := e.luByLemma[key]
	if !ok {
		return out, nil
	}
	seenFrames := map[string]bool{}
	for _, id := range ids {
		lu, found := e.luByID[id]
		if !found {
			continue
		}
		out.LexicalUnits = append(out.LexicalUnits, lu)
		if !seenFrames[lu.FrameID] {
			if fr, fok := e.frameByID[lu.FrameID]; fok {
				out.Frames = append(out.Frames, fr)
				seenFrames[lu.FrameID] = true
			}
		}
	}
	return out, nil
}

// CalculateConfidence implements engine.Core, per §4.3's layered confidence
// scale keyed on (len(Frames), len(LexicalUnits)): a single lexical unit
// resolving to a single frame is 0.95; one frame reached through multiple
// lexical units is 0.85; multiple frames reached through a single lexical
// unit is 0.80; anything else (including multiple frames spanning multiple
// lexical units) is 0.75. A per-lexical-unit quality bonus of
// min(TotalAnnotated*0.01, 0.1), plus 0.05 when Status contains "Finished",
// is averaged over the matched lexical units and added; the result is capped
// at 0.98 overall.
func (e *Engine) CalculateConfidence(input string, out FramenetAnalysis) float64 {
	if len(out.LexicalUnits) == 0 {
		return 0.0
	}
	var base float64
	switch {
	case len(out.Frames) == 1 && len(out.LexicalUnits) == 1:
		base = 0.95
	case len(out.Frames) == 1 && len(out.LexicalUnits) > 1:
		base = 0.85
	case len(out.Frames) > 1 && len(out.LexicalUnits) == 1:
		base = 0.80
	default:
		base = 0.75
	}
	bonus := 0.0
	for _, lu := range out.LexicalUnits {
		bonus += min(float64(lu.TotalAnnotated)*0.01, 0.1)
		if strings.Contains(lu.Status, "Finished") {
			bonus += 0.05
		}
	}
	base += bonus / float64(len(out.LexicalUnits))
	if base > 0.98 {
		base = 0.98
	}
	return base
}

// Analyze resolves text (a lemma, or "lemma:pos") through the substrate's
// cache-probe/compute pipeline.
func (e *Engine) Analyze(text string) (engine.Result[FramenetAnalysis], error) {
	start := time.Now()
	r, err := e.base.Analyze(text, e)
	obsv.AnalyzeDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
	return r, err
}

// SearchFrames returns frames whose name contains the (case-insensitive) query.
func (e *Engine) SearchFrames(query string) []FrameRecord {
	q := strings.ToLower(query)
	var out []FrameRecord
	for name, fr := range e.frameByName {
		if strings.Contains(name, q) {
			out = append(out, fr)
		}
	}
	return out
}

// SearchLexicalUnits returns lexical units whose name contains the
// (case-insensitive) query.
func (e *Engine) SearchLexicalUnits(query string) []LexicalUnit {
	q := strings.ToLower(query)
	var out []LexicalUnit
	for _, lu := range e.luByID {
		if strings.Contains(strings.ToLower(lu.Name), q) {
			out = append(out, lu)
		}
	}
	return out
}

// FrameByID returns a loaded frame by id.
func (e *Engine) FrameByID(id string) (FrameRecord, bool) {
	fr, ok := e.frameByID[id]
	return fr, ok
}

// Stats returns the engine's accumulated statistics.
func (e *Engine) Stats() engine.Stats { return e.base.Stats() }

// CacheStats returns the engine's cache hit/miss accounting.
func (e *Engine) CacheStats() engine.CacheStats { return e.base.CacheStats() }

// ClearCache empties the engine's analyze cache.
func (e *Engine) ClearCache() { e.base.ClearCache() }

// BuildErrors returns the per-file errors recorded while walking the database.
func (e *Engine) BuildErrors() []error { return e.buildErrors }
