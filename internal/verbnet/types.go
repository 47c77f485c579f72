// Package verbnet implements the verb-class/theta-role engine: class ->
// members, theta roles, selectional restrictions, syntactic frames and
// semantic predicates.
package verbnet

import "github.com/lexicoord/semcore/internal/engine"

// RestrictionLogic is the closed connective under which a list of
// SelectionalRestrictions combines.
type RestrictionLogic int

const (
	LogicNone RestrictionLogic = iota
	LogicAnd
	LogicOr
)

// Restriction is a single typed selectional constraint, e.g. {type: "animate", value: "+"}.
type Restriction struct {
	Type  string
	Value string
}

// SelectionalRestrictions combines zero or more Restrictions under Logic.
type SelectionalRestrictions struct {
	Logic        RestrictionLogic
	Restrictions []Restriction
}

// ThetaRoleSpec is one role a class's frames assign to an argument.
type ThetaRoleSpec struct {
	RoleType     engine.ThetaRole
	Restrictions SelectionalRestrictions
}

// Member is one verb lemma belonging to a VerbClass.
type Member struct {
	Name         string
	WordnetSense string
	Grouping     string
	Features     string
}

// SyntaxElement is one slot in a Frame's surface syntax, e.g. {Kind: "NP"}.
type SyntaxElement struct {
	Kind         string
	Value        string
	Restrictions SelectionalRestrictions
}

// PredicateArg is one argument of a SemanticPredicate.
type PredicateArg struct {
	Kind  string
	Value string
}

// SemanticPredicate is one atomic predication in a Frame's semantics block.
type SemanticPredicate struct {
	Value   string
	Negated bool
	Args    []PredicateArg
}

// Frame is one syntax/semantics pairing a VerbClass licenses.
type Frame struct {
	Description string
	Examples    []string
	Syntax      []SyntaxElement
	Semantics   []SemanticPredicate
}

// VerbClass is one verb class as loaded from the verb-class XML database.
type VerbClass struct {
	ID          string
	ClassName   string
	ParentClass string
	Members     []Member
	ThetaRoles  []ThetaRoleSpec
	Frames      []Frame
	Subclasses  []string // child class ids, flattened during build
}

// VerbnetAnalysis is the output of analyzing one lemma against the loaded
// verb-class database.
type VerbnetAnalysis struct {
	Lemma   string
	Classes []VerbClass
}

// ThetaAssignment pairs a theta role with the dependent lemma that filled it.
type ThetaAssignment struct {
	Role          engine.ThetaRole
	DependentHead string
}

// PatternMapping is one candidate reading of a dependency pattern against a
// verb class's frames, produced by MapPatternToThetaRoles.
type PatternMapping struct {
	VerbClassID        string
	ThetaAssignments   []ThetaAssignment
	SemanticPredicates []SemanticPredicate
	Confidence         float64
}
