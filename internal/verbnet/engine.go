package verbnet

import (
	"strings"
	"time"

	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/obsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Config configures an Engine build.
type Config struct {
	DataPath string
	Base     engine.Config
}

// Engine answers verb-class lookups against the loaded database, built once
// at startup and read-only for its lifetime thereafter.
type Engine struct {
	base *engine.Base[string, VerbnetAnalysis]
	cfg  Config

	classByID map[string]VerbClass
	byMember  map[string][]string // member_name(lower) -> [class_id]
	byRole    map[engine.ThetaRole][]string

	buildErrors []error
}

// New builds an Engine by recursively walking cfg.DataPath for verb-class XML.
func New(cfg Config) (*Engine, error) {
	if cfg.DataPath == "" {
		return nil, engine.ConfigErr("VerbnetEngine", "data path is required")
	}
	classes, errs := WalkClassDirectory(cfg.DataPath)
	if len(classes) == 0 {
		return nil, engine.ConfigErr("VerbnetEngine", "no verb classes loaded from "+cfg.DataPath)
	}

	e := &Engine{
		cfg:         cfg,
		classByID:   make(map[string]VerbClass, len(classes)),
		byMember:    make(map[string][]string),
		byRole:      make(map[engine.ThetaRole][]string),
		buildErrors: errs,
	}
	for _, c := range classes {
		e.classByID[c.ID] = c
		for _, m := range c.Members {
			key := strings.ToLower(m.Name)
			e.byMember[key] = appendUnique(e.byMember[key], c.ID)
		}
		for _, tr := range c.ThetaRoles {
			e.byRole[tr.RoleType] = appendUnique(e.byRole[tr.RoleType], c.ID)
		}
	}
	e.base = engine.NewBase[string, VerbnetAnalysis](cfg.Base, "VerbnetEngine")
	e.base.WarmUp()
	log.WithFields(logrus.Fields{"engine": "VerbnetEngine", "classes": len(e.classByID)}).Info("loaded verb-class database")
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

// Name implements engine.Core.
func (e *Engine) Name() string { return "VerbnetEngine" }

// CacheKey implements engine.Core: engine_name:input, per §9's standardized scheme.
func (e *Engine) CacheKey(lemma string) string { return "verbnet:" + strings.ToLower(lemma) }

// PerformAnalysis implements engine.Core; see Analyze for the public entry point.
func (e *Engine) PerformAnalysis(lemma string) (VerbnetAnalysis, error) {
	lower := strings.ToLower(lemma)
	ids := e.byMember[lower]
	analysis := VerbnetAnalysis{Lemma: lemma}
	for _, id := range ids {
		if c, ok := e.classByID[id]; ok {
			analysis.Classes = append(analysis.Classes, c)
		}
	}
	return analysis, nil
}

// CalculateConfidence implements engine.Core per §4.2: 0.95 for a single
// class hit, 0.80 for multiple, 0.0 for no hit.
func (e *Engine) CalculateConfidence(_ string, out VerbnetAnalysis) float64 {
	switch len(out.Classes) {
	case 0:
		return 0.0
	case 1:
		return 0.95
	default:
		return 0.80
	}
}

// Analyze looks up lemma through the substrate's cache-probe/compute pipeline.
func (e *Engine) Analyze(lemma string) (engine.Result[VerbnetAnalysis], error) {
	start := time.Now()
	r, err := e.base.Analyze(lemma, e)
	obsv.AnalyzeDuration.WithLabelValues(e.Name()).Observe(time.Since(start).Seconds())
	return r, err
}

// ClassByID returns a loaded class by id, for callers (e.g. the coordinator's
// treebank signature builder) that already hold a VerbnetAnalysis.
func (e *Engine) ClassByID(id string) (VerbClass, bool) {
	c, ok := e.classByID[id]
	return c, ok
}

// MapPatternToThetaRoles implements §4.2's pattern-to-theta-role mapping.
// pattern is a "+"-joined list of deprels, e.g. "nsubj+obj".
func (e *Engine) MapPatternToThetaRoles(lemma, pattern string, argHeads map[string]string) []PatternMapping {
	lower := strings.ToLower(lemma)
	ids := e.byMember[lower]
	parts := strings.Split(pattern, "+")

	var out []PatternMapping
	for _, id := range ids {
		class, ok := e.classByID[id]
		if !ok {
			continue
		}
		for _, frame := range class.Frames {
			specificity, matched := frameMatchesPattern(frame, parts)
			if !matched {
				continue
			}
			var assigns []ThetaAssignment
			filled := 0
			for i, role := range class.ThetaRoles {
				if i >= len(parts) {
					break
				}
				head := argHeads[parts[i]]
				if head != "" {
					filled++
				}
				assigns = append(assigns, ThetaAssignment{Role: role.RoleType, DependentHead: head})
			}
			fraction := 0.0
			if len(parts) > 0 {
				fraction = float64(filled) / float64(len(parts))
			}
			confidence := specificity * fraction
			if confidence > 0.95 {
				confidence = 0.95
			}
			out = append(out, PatternMapping{
				VerbClassID:        class.ID,
				ThetaAssignments:   assigns,
				SemanticPredicates: frame.Semantics,
				Confidence:         confidence,
			})
		}
	}
	sortMappingsByConfidence(out)
	return out
}

// frameMatchesPattern matches a deprel pattern ("nsubj+obj") against a
// frame's syntax descriptor keywords, returning a specificity score in (0,1].
func frameMatchesPattern(frame Frame, parts []string) (float64, bool) {
	wantNP := 0
	for _, p := range parts {
		if p == "nsubj" || p == "obj" || p == "iobj" {
			wantNP++
		}
	}
	haveNP := 0
	for _, el := range frame.Syntax {
		if el.Kind == "NP" {
			haveNP++
		}
	}
	if wantNP == 0 {
		return 0, false
	}
	if haveNP < wantNP {
		return 0, false
	}
	// More tightly-sized frames (fewer extraneous NP slots) are more specific.
	specificity := float64(wantNP) / float64(haveNP)
	if specificity > 1 {
		specificity = 1
	}
	return specificity, true
}

func sortMappingsByConfidence(out []PatternMapping) {
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Confidence > out[j-1].Confidence; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
}

// Stats returns the engine's accumulated statistics.
func (e *Engine) Stats() engine.Stats { return e.base.Stats() }

// CacheStats returns the engine's cache hit/miss accounting.
func (e *Engine) CacheStats() engine.CacheStats { return e.base.CacheStats() }

// ClearCache empties the engine's analyze cache.
func (e *Engine) ClearCache() { e.base.ClearCache() }

// BuildErrors returns the per-file errors recorded while walking the class
// directory; a class file that omits its root id is skipped (§8), not fatal
// to the build as a whole.
func (e *Engine) BuildErrors() []error { return e.buildErrors }
