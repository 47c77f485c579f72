package verbnet

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexicoord/semcore/internal/engine"
)

// verbClassRoot names the root element of a verb-class XML file.
const verbClassRoot = "VNCLASS"

// ParseFile parses one verb-class XML file into a VerbClass, recursively
// flattening SUBCLASSES into the returned class's Subclasses id list while
// also returning the nested classes themselves so the caller can index them.
func ParseFile(path string) (VerbClass, []VerbClass, error) {
	f, err := os.Open(path)
	if err != nil {
		return VerbClass{}, nil, engine.DataLoad("VerbnetEngine", err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads one verb-class XML document from r.
func Parse(r io.Reader, sourceName string) (VerbClass, []VerbClass, error) {
	xs := engine.NewXMLStream(r)

	root, err := xs.NextElement()
	if err != nil {
		return VerbClass{}, nil, engine.Parse("VerbnetEngine", engine.Location{File: sourceName}, err)
	}
	if root.Name != verbClassRoot && !strings.Contains(root.Name, "CLASS") {
		return VerbClass{}, nil, engine.Parse("VerbnetEngine", engine.Location{File: sourceName},
			errParse("root element is not a verb class: "+root.Name))
	}
	return parseClassBody(xs, root, sourceName)
}

func parseClassBody(xs *engine.XMLStream, start engine.Element, sourceName string) (VerbClass, []VerbClass, error) {
	id := start.Attrs["ID"]
	if id == "" {
		return VerbClass{}, nil, engine.Parse("VerbnetEngine", engine.Location{File: sourceName},
			errParse("verb class missing required ID attribute"))
	}
	class := VerbClass{ID: id, ClassName: deriveClassName(id)}
	var nested []VerbClass

	for {
		tok, err := xs.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return VerbClass{}, nil, engine.Parse("VerbnetEngine", engine.Location{File: sourceName}, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == start.Name {
				return class, nested, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "MEMBERS":
				class.Members = parseMembers(xs)
			case "THEMROLES":
				roles, rerr := parseThetaRoles(xs)
				if rerr != nil {
					return VerbClass{}, nil, engine.Parse("VerbnetEngine", engine.Location{File: sourceName}, rerr)
				}
				class.ThetaRoles = roles
			case "FRAMES":
				class.Frames = parseFrames(xs)
			case "SUBCLASSES":
				children, serr := parseSubclasses(xs, sourceName)
				if serr != nil {
					return VerbClass{}, nil, serr
				}
				for _, c := range children {
					class.Subclasses = append(class.Subclasses, c.ID)
					c.ParentClass = class.ID
					nested = append(nested, c)
				}
			default:
				// Unknown child elements are ignored, per §6.1.
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
	return class, nested, nil
}

func parseSubclasses(xs *engine.XMLStream, sourceName string) ([]VerbClass, error) {
	var out []VerbClass
	for {
		tok, err := xs.RawToken()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, engine.Parse("VerbnetEngine", engine.Location{File: sourceName}, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "SUBCLASSES" {
				return out, nil
			}
		case xml.StartElement:
			if strings.Contains(t.Name.Local, "CLASS") {
				attrs := make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					attrs[a.Name.Local] = a.Value
				}
				child, childNested, cerr := parseClassBody(xs, engine.Element{Name: t.Name.Local, Attrs: attrs}, sourceName)
				if cerr != nil {
					return nil, cerr
				}
				out = append(out, child)
				out = append(out, childNested...)
			} else {
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

func parseMembers(xs *engine.XMLStream) []Member {
	var out []Member
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "MEMBERS" {
				return out
			}
		case xml.StartElement:
			if t.Name.Local == "MEMBER" {
				out = append(out, Member{
					Name:         attr(t, "name"),
					WordnetSense: attr(t, "wn"),
					Grouping:     attr(t, "grouping"),
					Features:     attr(t, "features"),
				})
			}
		}
	}
}

func parseThetaRoles(xs *engine.XMLStream) ([]ThetaRoleSpec, error) {
	var out []ThetaRoleSpec
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out, nil
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "THEMROLES" {
				return out, nil
			}
		case xml.StartElement:
			if t.Name.Local == "THEMROLE" {
				roleStr := attr(t, "type")
				role, rerr := engine.ParseThetaRole(roleStr)
				if rerr != nil {
					return nil, rerr
				}
				restr := parseSelRestrictions(xs, "THEMROLE")
				out = append(out, ThetaRoleSpec{RoleType: role, Restrictions: restr})
			}
		}
	}
}

func parseSelRestrictions(xs *engine.XMLStream, closeName string) SelectionalRestrictions {
	sr := SelectionalRestrictions{Logic: LogicNone}
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return sr
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == closeName {
				return sr
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "SELRESTRS":
				if logic := attr(t, "logic"); logic != "" {
					if strings.EqualFold(logic, "or") {
						sr.Logic = LogicOr
					} else {
						sr.Logic = LogicAnd
					}
				} else if sr.Logic == LogicNone {
					sr.Logic = LogicAnd
				}
			case "SELRESTR":
				sr.Restrictions = append(sr.Restrictions, Restriction{
					Type:  attr(t, "type"),
					Value: attr(t, "Value"),
				})
			default:
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

func parseFrames(xs *engine.XMLStream) []Frame {
	var out []Frame
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "FRAMES" {
				return out
			}
		case xml.StartElement:
			if t.Name.Local == "FRAME" {
				out = append(out, parseOneFrame(xs))
			}
		}
	}
}

func parseOneFrame(xs *engine.XMLStream) Frame {
	var fr Frame
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return fr
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "FRAME" {
				return fr
			}
		case xml.CharData:
			// stray text outside named elements; ignored
		case xml.StartElement:
			switch t.Name.Local {
			case "DESCRIPTION":
				fr.Description = attr(t, "descriptionNumber") + " " + attr(t, "primary")
				xs.SkipToClose("DESCRIPTION")
			case "EXAMPLES":
				fr.Examples = parseExamples(xs)
			case "SYNTAX":
				fr.Syntax = parseSyntax(xs)
			case "SEMANTICS":
				fr.Semantics = parseSemantics(xs)
			default:
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

func parseExamples(xs *engine.XMLStream) []string {
	var out []string
	var cur strings.Builder
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "EXAMPLES" {
				return out
			}
			if t.Name.Local == "EXAMPLE" {
				out = append(out, strings.TrimSpace(cur.String()))
				cur.Reset()
			}
		case xml.CharData:
			cur.Write(t)
		}
	}
}

func parseSyntax(xs *engine.XMLStream) []SyntaxElement {
	var out []SyntaxElement
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "SYNTAX" {
				return out
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "NP", "VERB", "PREP", "ADJ", "ADV", "LEX":
				el := SyntaxElement{Kind: t.Name.Local, Value: attr(t, "value")}
				el.Restrictions = parseSelRestrictions(xs, t.Name.Local)
				out = append(out, el)
			default:
				xs.SkipToClose(t.Name.Local)
			}
		}
	}
}

func parseSemantics(xs *engine.XMLStream) []SemanticPredicate {
	var out []SemanticPredicate
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "SEMANTICS" {
				return out
			}
		case xml.StartElement:
			if t.Name.Local == "PRED" {
				pred := SemanticPredicate{
					Value:   attr(t, "value"),
					Negated: strings.EqualFold(attr(t, "bool"), "!") || strings.EqualFold(attr(t, "bool"), "not"),
				}
				pred.Args = parsePredArgs(xs)
				out = append(out, pred)
			}
		}
	}
}

func parsePredArgs(xs *engine.XMLStream) []PredicateArg {
	var out []PredicateArg
	for {
		tok, err := xs.RawToken()
		if err != nil {
			return out
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "PRED" {
				return out
			}
		case xml.StartElement:
			if t.Name.Local == "ARG" {
				out = append(out, PredicateArg{Kind: attr(t, "type"), Value: attr(t, "value")})
			}
		}
	}
}

// deriveClassName strips the dotted version suffix from id and replaces
// underscores with spaces, per §3.3's invariant.
func deriveClassName(id string) string {
	base := id
	if idx := strings.Index(id, "-"); idx >= 0 {
		base = id[:idx]
	}
	return strings.ReplaceAll(base, "_", " ")
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

type parseErr string

func (e parseErr) Error() string { return string(e) }
func errParse(msg string) error  { return parseErr(msg) }

// WalkClassDirectory recursively walks dir for *.xml files and parses each,
// per §4.2's build algorithm. A file that fails to parse is skipped with its
// error recorded rather than aborting the whole walk.
func WalkClassDirectory(dir string) ([]VerbClass, []error) {
	var classes []VerbClass
	var errs []error
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".xml") {
			return nil
		}
		class, nested, perr := ParseFile(path)
		if perr != nil {
			errs = append(errs, perr)
			return nil
		}
		classes = append(classes, class)
		classes = append(classes, nested...)
		return nil
	})
	return classes, errs
}
