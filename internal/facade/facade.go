// Package facade assembles the four engines' per-word analyses and the
// coordinator's cross-engine merge into one ordered, per-token result for an
// input span of text — the system's single public output shape.
package facade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lexicoord/semcore/internal/coordinator"
	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/lemma"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SemanticToken is one word's full cross-engine analysis, flattened for
// external consumption.
type SemanticToken struct {
	Surface string
	Lemma   string
	POS     engine.UPos
	Start   int
	End     int

	VerbClasses     []string
	Frames          []string
	SenseCount      int
	ArgumentPattern []string
	Morphology      engine.MorphFeatures

	Confidence float64
	Sources    []string
}

// TimingMetrics breaks an Analyze call's wall time down by phase, per
// §4.7's timing-metrics block.
type TimingMetrics struct {
	TokenizeMillis float64
	AnalyzeMillis  float64
	TotalMillis    float64
}

// SemanticLayer1Output is one text span's complete analysis.
type SemanticLayer1Output struct {
	Text   string
	Tokens []SemanticToken

	// AggregateFrames and AggregatePredicates are the deduplicated,
	// confidence-thresholded union across every token, per §4.7. A frame
	// dropped here because its token's confidence missed the threshold
	// still appears on that token's own Frames list.
	AggregateFrames     []string
	AggregatePredicates []string

	Timing        TimingMetrics
	ElapsedMillis float64
}

// Config configures a Facade.
type Config struct {
	// ConfidenceThreshold filters which frames and predicates make it into
	// the output's aggregate lists; a token's own Frames list is never
	// filtered.
	ConfidenceThreshold float64
}

// Facade is the top-level entry point: raw text in, a fully analyzed,
// ordered token list out.
type Facade struct {
	tokenizer  lemma.Tokenizer
	lemmatizer lemma.Lemmatizer
	coord      *coordinator.Coordinator
	cfg        Config
}

// New builds a Facade. A nil tokenizer/lemmatizer defaults to the prose-v2
// adapter.
func New(tokenizer lemma.Tokenizer, lemmatizer lemma.Lemmatizer, coord *coordinator.Coordinator, cfg Config) *Facade {
	if tokenizer == nil || lemmatizer == nil {
		adapter := lemma.NewProseAdapter()
		if tokenizer == nil {
			tokenizer = adapter
		}
		if lemmatizer == nil {
			lemmatizer = adapter
		}
	}
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = 0.5
	}
	return &Facade{tokenizer: tokenizer, lemmatizer: lemmatizer, coord: coord, cfg: cfg}
}

// Analyze tokenizes text, analyzes every word against all four engines, and
// returns the assembled per-token output. Empty text returns a zero-token
// output with no error, per the documented boundary behavior.
func (f *Facade) Analyze(ctx context.Context, text string) (SemanticLayer1Output, error) {
	start := time.Now()
	requestID := uuid.New().String()
	out := SemanticLayer1Output{Text: text}
	if text == "" {
		out.ElapsedMillis = elapsedMillis(start)
		return out, nil
	}

	tokenizeStart := time.Now()
	words, err := f.tokenizer.Tokenize(text)
	tokenizeMillis := elapsedMillis(tokenizeStart)
	if err != nil {
		log.WithFields(logrus.Fields{"engine": "Facade", "operation": "tokenize", "request_id": requestID}).
			WithError(err).Error("tokenize failed")
		return SemanticLayer1Output{}, engine.AnalysisFailed("Facade", err)
	}

	analyzeStart := time.Now()
	out.Tokens = make([]SemanticToken, 0, len(words))
	seenFrames := map[string]bool{}
	seenPredicates := map[string]bool{}
	for _, w := range words {
		pos := PennToUPos(w.POSTag)
		lem, _ := f.lemmatizer.Lemmatize(w.Surface)

		tok := SemanticToken{
			Surface:    w.Surface,
			Lemma:      lem,
			POS:        pos,
			Start:      w.Start,
			End:        w.End,
			Morphology: PennToMorphFeatures(w.POSTag),
		}

		analysis, aerr := f.coord.AnalyzeWithPOS(ctx, lem, pos)
		if aerr != nil {
			log.WithFields(logrus.Fields{"engine": "Facade", "operation": "analyze", "lemma": lem, "request_id": requestID}).
				WithError(aerr).Warn("word analysis failed, returning bare token")
			out.Tokens = append(out.Tokens, tok)
			continue
		}
		f.fillToken(&tok, analysis)
		if tok.Confidence >= f.cfg.ConfidenceThreshold {
			for _, fr := range tok.Frames {
				if !seenFrames[fr] {
					seenFrames[fr] = true
					out.AggregateFrames = append(out.AggregateFrames, fr)
				}
			}
			for _, pred := range predicatesOf(analysis) {
				if !seenPredicates[pred] {
					seenPredicates[pred] = true
					out.AggregatePredicates = append(out.AggregatePredicates, pred)
				}
			}
		}
		out.Tokens = append(out.Tokens, tok)
	}
	analyzeMillis := elapsedMillis(analyzeStart)

	out.ElapsedMillis = elapsedMillis(start)
	out.Timing = TimingMetrics{
		TokenizeMillis: tokenizeMillis,
		AnalyzeMillis:  analyzeMillis,
		TotalMillis:    out.ElapsedMillis,
	}
	log.WithFields(logrus.Fields{"engine": "Facade", "operation": "analyze", "request_id": requestID, "tokens": len(out.Tokens)}).
		Debug("analysis complete")
	return out, nil
}

// fillToken fills tok's engine-derived fields unconditionally; the per-token
// record is never filtered by confidence — only the output's aggregate
// frame/predicate lists are (see Analyze), per §4.7's invariant that a
// sub-threshold frame is dropped from the aggregate but kept on the token.
func (f *Facade) fillToken(tok *SemanticToken, a coordinator.WordAnalysis) {
	tok.Confidence = a.Confidence
	tok.Sources = a.Sources.ToSlice()

	if a.Verbnet != nil {
		for _, c := range a.Verbnet.Classes {
			tok.VerbClasses = append(tok.VerbClasses, c.ID)
		}
	}
	if a.Framenet != nil {
		for _, fr := range a.Framenet.Frames {
			tok.Frames = append(tok.Frames, fr.Name)
		}
	}
	if a.Wordnet != nil {
		tok.SenseCount = len(a.Wordnet.Senses)
	}
	if a.Treebank != nil && len(a.Treebank.Patterns) > 0 {
		tok.ArgumentPattern = a.Treebank.Patterns[0].Relations
	}
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// predicatesOf collects the semantic predicate values carried by a's
// matched verb classes' frames, feeding the output's aggregate predicate
// list.
func predicatesOf(a coordinator.WordAnalysis) []string {
	if a.Verbnet == nil {
		return nil
	}
	var out []string
	for _, c := range a.Verbnet.Classes {
		for _, fr := range c.Frames {
			for _, pred := range fr.Semantics {
				out = append(out, pred.Value)
			}
		}
	}
	return out
}
