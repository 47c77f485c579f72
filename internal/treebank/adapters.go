package treebank

import (
	"strings"

	"github.com/lexicoord/semcore/internal/engine"
	"github.com/lexicoord/semcore/internal/framenet"
	"github.com/lexicoord/semcore/internal/verbnet"
)

// VerbnetThetaGridSource adapts a verbnet.Engine into a ThetaGridSource,
// letting the synthesizer's first-choice path draw on a lemma's actual
// theta-role grid instead of falling straight to the bare default pattern.
type VerbnetThetaGridSource struct {
	Verbnet *verbnet.Engine
}

// ThetaGridFor implements ThetaGridSource by analyzing lemma through the
// verbnet engine and returning the role inventory of the first matching
// class, in the order the verbnet index lists the lemma's classes (they are
// not ranked).
func (s VerbnetThetaGridSource) ThetaGridFor(lemma string) ([]engine.ThetaRole, bool) {
	if s.Verbnet == nil {
		return nil, false
	}
	r, err := s.Verbnet.Analyze(lemma)
	if err != nil || r.Confidence <= 0 || len(r.Data.Classes) == 0 {
		return nil, false
	}
	class := r.Data.Classes[0]
	if len(class.ThetaRoles) == 0 {
		return nil, false
	}
	roles := make([]engine.ThetaRole, 0, len(class.ThetaRoles))
	for _, tr := range class.ThetaRoles {
		roles = append(roles, tr.RoleType)
	}
	return roles, true
}

// FramenetCoreElementSource adapts a framenet.Engine into a
// FrameValenceSource, letting the synthesizer's second-choice path draw on a
// lemma's actual frame core-element count.
type FramenetCoreElementSource struct {
	Framenet *framenet.Engine
}

// CoreElementCountFor implements FrameValenceSource by analyzing lemma
// through the framenet engine and counting the core frame elements of its
// best matching frame.
func (s FramenetCoreElementSource) CoreElementCountFor(lemma string) (int, bool) {
	if s.Framenet == nil {
		return 0, false
	}
	r, err := s.Framenet.Analyze(strings.ToLower(lemma))
	if err != nil || r.Confidence <= 0 || len(r.Data.Frames) == 0 {
		return 0, false
	}
	count := 0
	for _, fe := range r.Data.Frames[0].Elements {
		if fe.CoreTypeVal == framenet.Core {
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return count, true
}
