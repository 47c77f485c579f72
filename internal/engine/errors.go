// Package engine provides the substrate shared by every resource engine:
// configuration, statistics, cache accounting and the uniform
// analyze-with-cache pipeline.
package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the error categories every engine surfaces.
type Kind int

const (
	// KindConfig marks a missing required path or an enabled engine with no data.
	KindConfig Kind = iota
	// KindParse marks an XML/CoNLL-U/text-format violation.
	KindParse
	// KindDataLoad marks an IO failure reading a source file or snapshot.
	KindDataLoad
	// KindNotReady marks an analysis call that arrived before warm-up completed.
	KindNotReady
	// KindAnalysisFailed marks a violated internal invariant at query time.
	KindAnalysisFailed
	// KindCache marks a recoverable serialization/filesystem failure on a binary snapshot.
	KindCache
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindParse:
		return "ParseError"
	case KindDataLoad:
		return "DataLoadError"
	case KindNotReady:
		return "NotReady"
	case KindAnalysisFailed:
		return "AnalysisFailed"
	case KindCache:
		return "CacheError"
	default:
		return "UnknownError"
	}
}

// Location pinpoints a ParseError's origin, carried verbatim through to the caller.
type Location struct {
	File   string
	Line   int
	Offset int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("line %d", l.Line)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Error is the single error type every engine returns; Kind distinguishes
// propagation policy at the call site.
type Error struct {
	Kind     Kind
	Engine   string
	Location *Location
	cause    error
}

func (e *Error) Error() string {
	if e.Location != nil {
		return fmt.Sprintf("%s[%s] at %s: %v", e.Kind, e.Engine, e.Location, e.cause)
	}
	return fmt.Sprintf("%s[%s]: %v", e.Kind, e.Engine, e.cause)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

func newErr(kind Kind, engine string, cause error) *Error {
	return &Error{Kind: kind, Engine: engine, cause: errors.WithStack(cause)}
}

// ConfigErr wraps msg into a ConfigError for engine.
func ConfigErr(engine, msg string) *Error { return newErr(KindConfig, engine, errors.New(msg)) }

// Parse wraps err into a ParseError for engine at loc.
func Parse(engine string, loc Location, err error) *Error {
	e := newErr(KindParse, engine, err)
	e.Location = &loc
	return e
}

// DataLoad wraps err into a DataLoadError for engine.
func DataLoad(engine string, err error) *Error { return newErr(KindDataLoad, engine, err) }

// NotReady builds a NotReady error for engine.
func NotReady(engine string) *Error {
	return newErr(KindNotReady, engine, errors.New("analyze called before warm_up completed"))
}

// AnalysisFailed wraps err into an AnalysisFailed error for engine.
func AnalysisFailed(engine string, err error) *Error {
	return newErr(KindAnalysisFailed, engine, err)
}

// Cache wraps err into a CacheError for engine. Always recoverable by the caller.
func Cache(engine string, err error) *Error { return newErr(KindCache, engine, err) }

// Is reports whether err (or any error it wraps) is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// KindOf extracts err's Kind, defaulting to KindAnalysisFailed for an error
// that didn't originate from this package (e.g. a raw error returned by a
// PerformAnalysis hook).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindAnalysisFailed
}
