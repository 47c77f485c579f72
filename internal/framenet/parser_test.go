package framenet

import (
	"strings"
	"testing"
)

func TestCleanDefinition(t *testing.T) {
	in := `<def-root>The <fen name="Agent">Agent</fen> causes the <fex name="Patient">Patient</fex> to change &amp; move.</def-root>`
	got := CleanDefinition(in)
	want := "The Agent causes the Patient to change & move."
	if got != want {
		t.Fatalf("CleanDefinition() = %q, want %q", got, want)
	}
}

func TestCleanDefinitionDecodesEntities(t *testing.T) {
	got := CleanDefinition("&lt;tag&gt; &quot;quoted&quot; &apos;s")
	want := `<tag> "quoted" 's`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseFrame(t *testing.T) {
	doc := `<frame ID="139" name="Cause_motion" cBy="KmG" cDate="01/01/01">
  <definition>&lt;def-root&gt;An &lt;fen name="Agent"&gt;Agent&lt;/fen&gt; causes a &lt;fen name="Theme"&gt;Theme&lt;/fen&gt; to move.&lt;/def-root&gt;</definition>
  <FE ID="1" name="Agent" abbrev="Age" coreType="Core" bgColor="FF0000" fgColor="FFFFFF">
    <definition>The entity that causes the motion.</definition>
  </FE>
  <frameRelation type="Inherits from">
    <relatedFrame>Motion</relatedFrame>
  </frameRelation>
</frame>`
	fr, err := ParseFrame(strings.NewReader(doc), "test.xml")
	if err != nil {
		t.Fatalf("ParseFrame() error = %v", err)
	}
	if fr.ID != "139" || fr.Name != "Cause_motion" {
		t.Fatalf("unexpected frame: %+v", fr)
	}
	if !strings.Contains(fr.Definition, "Agent causes a") {
		t.Fatalf("definition not cleaned: %q", fr.Definition)
	}
	if len(fr.Elements) != 1 || fr.Elements[0].Name != "Agent" || fr.Elements[0].CoreTypeVal != Core {
		t.Fatalf("unexpected elements: %+v", fr.Elements)
	}
	if len(fr.Relations) != 1 || fr.Relations[0].Target != "Motion" {
		t.Fatalf("unexpected relations: %+v", fr.Relations)
	}
}

func TestParseFrameMissingID(t *testing.T) {
	_, err := ParseFrame(strings.NewReader(`<frame name="X"></frame>`), "bad.xml")
	if err == nil {
		t.Fatal("expected error for frame missing ID")
	}
}

func TestParseLU(t *testing.T) {
	doc := `<lexUnit ID="1000" name="abandon.v" POS="V" status="Finished_Initial" frameID="139" frame="Cause_motion" totalAnnotated="12">
  <definition>To leave behind.</definition>
  <lexeme name="abandon" POS="V"/>
  <valences>
    <FE name="Agent" total="10">
      <pattern total="8" gf="Ext" pt="NP"/>
    </FE>
  </valences>
</lexUnit>`
	lu, err := ParseLU(strings.NewReader(doc), "test.xml")
	if err != nil {
		t.Fatalf("ParseLU() error = %v", err)
	}
	if lu.ID != "1000" || lu.Name != "abandon.v" || lu.FrameID != "139" {
		t.Fatalf("unexpected lu: %+v", lu)
	}
	if len(lu.Lexemes) != 1 || lu.Lexemes[0].Name != "abandon" {
		t.Fatalf("unexpected lexemes: %+v", lu.Lexemes)
	}
	if len(lu.Valences) != 1 || len(lu.Valences[0].Realizations) != 1 {
		t.Fatalf("unexpected valences: %+v", lu.Valences)
	}
}

func TestParseLUMissingID(t *testing.T) {
	_, err := ParseLU(strings.NewReader(`<lexUnit name="x.v"></lexUnit>`), "bad.xml")
	if err == nil {
		t.Fatal("expected error for lexUnit missing ID")
	}
}
