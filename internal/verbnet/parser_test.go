package verbnet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const chaseClassXML = `<VNCLASS ID="chase-51.1">
  <MEMBERS>
    <MEMBER name="chase" wn="chase%2:38:00"/>
    <MEMBER name="pursue" wn="pursue%2:38:00"/>
  </MEMBERS>
  <THEMROLES>
    <THEMROLE type="Agent">
      <SELRESTRS logic="and"><SELRESTR type="animate" Value="+"/></SELRESTRS>
    </THEMROLE>
    <THEMROLE type="Theme"/>
  </THEMROLES>
  <FRAMES>
    <FRAME>
      <DESCRIPTION descriptionNumber="0.1" primary="NP V NP"/>
      <EXAMPLES><EXAMPLE>The dog chased the cat.</EXAMPLE></EXAMPLES>
      <SYNTAX>
        <NP value="Agent"/>
        <VERB/>
        <NP value="Theme"/>
      </SYNTAX>
      <SEMANTICS>
        <PRED value="motion"><ARG type="Event" value="during(E)"/></PRED>
      </SEMANTICS>
    </FRAME>
  </FRAMES>
  <SUBCLASSES>
    <VNSUBCLASS ID="chase-51.1-1">
      <MEMBERS><MEMBER name="hound" wn="hound%2:38:00"/></MEMBERS>
      <THEMROLES/>
      <FRAMES/>
    </VNSUBCLASS>
  </SUBCLASSES>
</VNCLASS>`

func TestParseClassBodyExtractsMembersRolesFramesAndSubclasses(t *testing.T) {
	class, nested, err := Parse(strings.NewReader(chaseClassXML), "chase.xml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if class.ID != "chase-51.1" {
		t.Fatalf("expected ID chase-51.1, got %q", class.ID)
	}
	if len(class.Members) != 2 || class.Members[0].Name != "chase" {
		t.Fatalf("unexpected members: %+v", class.Members)
	}
	if len(class.ThetaRoles) != 2 {
		t.Fatalf("expected 2 theta roles, got %d", len(class.ThetaRoles))
	}
	if class.ThetaRoles[0].Restrictions.Logic != LogicAnd || len(class.ThetaRoles[0].Restrictions.Restrictions) != 1 {
		t.Fatalf("unexpected selectional restrictions: %+v", class.ThetaRoles[0].Restrictions)
	}
	if len(class.Frames) != 1 || len(class.Frames[0].Syntax) != 3 || len(class.Frames[0].Semantics) != 1 {
		t.Fatalf("unexpected frame structure: %+v", class.Frames)
	}
	if len(class.Subclasses) != 1 || class.Subclasses[0] != "chase-51.1-1" {
		t.Fatalf("expected one flattened subclass id, got %+v", class.Subclasses)
	}
	if len(nested) != 1 || nested[0].ParentClass != "chase-51.1" {
		t.Fatalf("expected nested subclass with ParentClass set, got %+v", nested)
	}
}

func TestParseRejectsClassMissingID(t *testing.T) {
	_, _, err := Parse(strings.NewReader(`<VNCLASS><MEMBERS/></VNCLASS>`), "bad.xml")
	if err == nil {
		t.Fatal("expected an error for a class missing its ID attribute")
	}
}

func TestDeriveClassNameStripsVersionSuffix(t *testing.T) {
	if got := deriveClassName("battle-36.4"); got != "battle" {
		t.Fatalf("expected 'battle', got %q", got)
	}
	if got := deriveClassName("wish_for-62"); got != "wish for" {
		t.Fatalf("expected underscores replaced with spaces, got %q", got)
	}
}

func TestWalkClassDirectoryParsesEveryFileAndSkipsBadOnes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "chase-51.1.xml"), []byte(chaseClassXML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.xml"), []byte(`<VNCLASS><MEMBERS/></VNCLASS>`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	classes, errs := WalkClassDirectory(dir)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 parse error for the broken file, got %d: %v", len(errs), errs)
	}
	// chase-51.1 plus its one flattened subclass.
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes (root + subclass), got %d", len(classes))
	}
}
