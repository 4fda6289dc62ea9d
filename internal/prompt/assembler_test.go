// ABOUTME: Tests for prompt assembly and diagnostics
// ABOUTME: Verifies section content, length guidance and the retrieval-empty signal
package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/pagesmith/internal/models"
)

func testInput() Input {
	return Input{
		StaticRules: models.StaticRuleSet{Categories: []models.RuleCategory{
			{Name: "structure", Rules: []string{"One H1 per page"}},
			{Name: "unused", Rules: nil},
			{Name: "cta", Rules: []string{"End every section with a next step"}},
		}},
		DynamicRules: []models.RuleChunk{
			{Text: "Lead with the patient outcome", Metadata: models.ChunkMetadata{Tags: []string{"tone"}, Score: score(0.88)}},
			{Text: "lead with the patient outcome", Metadata: models.ChunkMetadata{Tags: []string{"tone"}, Score: score(0.5)}},
		},
		Brand: models.BrandInfo{Name: "Harbor Dental", Industry: "Dentistry", Location: "Portland, OR"},
		Page: models.PageRequest{
			PageDefinition: models.PageDefinition{Slug: "/", PageName: "Home", PageType: models.PageTypeHome},
			Topic:          "Family dentistry",
		},
		Keywords: models.KeywordSets{Paramount: []string{"portland dentist"}},
	}
}

func TestAssemble_Sections(t *testing.T) {
	a := NewAssembler(nil)
	a.newID = func() string { return "run-1" }

	res, err := a.Assemble(testInput())
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	for _, want := range []string{
		"STATIC CORE RULES (always apply):\nStructure\n- One H1 per page\n\nCta\n- End every section with a next step",
		"[1] (tags: tone) (sim=0.880)\nLead with the patient outcome",
		"- Brand: Harbor Dental",
		"- Page type: home",
		"- Service focus: None specified",
		"Paramount keywords: portland dentist",
		"Primary keywords: None",
		"BRAND BOOK / PERSONA HIGHLIGHTS:\nNone provided",
		"Length guardrail: Home pages should read like a full landing page",
	} {
		if !strings.Contains(res.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.HasSuffix(res.Prompt, "Return ONLY the JSON following the provided schema.") {
		t.Error("prompt should end with the JSON-only instruction")
	}
	if strings.Contains(res.Prompt, "[2]") {
		t.Error("duplicate dynamic rule rendered")
	}
	if strings.Contains(res.Prompt, "OUTPUT SCHEMA") {
		t.Error("schema section should be omitted when no example is given")
	}
}

func TestAssemble_Diagnostics(t *testing.T) {
	a := NewAssembler(nil)
	a.newID = func() string { return "run-1" }

	in := testInput()
	in.ReferenceCopy = "We care for your smile. Book today."
	res, err := a.Assemble(in)
	if err != nil {
		t.Fatal(err)
	}

	d := res.Diagnostics
	if d.RunID != "run-1" || d.PageType != "home" {
		t.Errorf("diagnostics = %+v", d)
	}
	if strings.Join(d.StaticRules, ",") != "structure,cta" {
		t.Errorf("StaticRules = %v", d.StaticRules)
	}
	if len(d.DynamicRules) != 1 || *d.DynamicRules[0].Score != 0.88 {
		t.Errorf("DynamicRules = %+v", d.DynamicRules)
	}
	if d.RetrievalEmpty {
		t.Error("RetrievalEmpty should be false")
	}
	if d.ReferenceProfile == nil || d.ReferenceProfile.SentenceCount != 2 {
		t.Errorf("ReferenceProfile = %+v, want derived from reference copy", d.ReferenceProfile)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(res.DiagnosticsText), &decoded); err != nil {
		t.Fatalf("DiagnosticsText is not JSON: %v", err)
	}
	for _, key := range []string{"run_id", "static_rules", "dynamic_rules", "retrieval_empty", "reference_profile"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("DiagnosticsText missing %q", key)
		}
	}
}

func TestAssemble_RetrievalEmpty(t *testing.T) {
	in := testInput()
	in.DynamicRules = nil
	in.StaticRules = models.StaticRuleSet{}

	res, err := NewAssembler(nil).Assemble(in)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Diagnostics.RetrievalEmpty {
		t.Error("RetrievalEmpty should be true")
	}
	if !strings.Contains(res.Prompt, NoDynamicRules) || !strings.Contains(res.Prompt, NoStaticRules) {
		t.Error("prompt should carry both fallback sentences")
	}
	if res.Diagnostics.DynamicRules == nil {
		t.Error("DynamicRules should encode as an empty list")
	}
	if res.Diagnostics.RunID == "" {
		t.Error("RunID should be generated")
	}
}

func TestAssemble_SchemaAndStyle(t *testing.T) {
	in := testInput()
	in.SchemaExample = `{"hero": {"headline": "string"}}`
	in.StyleProfile = "Concise and direct"

	res, err := NewAssembler(nil).Assemble(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Prompt, "OUTPUT SCHEMA:\n{\"hero\"") {
		t.Error("schema example missing")
	}
	if !strings.Contains(res.Prompt, "- Style profile: Concise and direct") {
		t.Error("style profile missing")
	}
}

func TestLengthGuidance(t *testing.T) {
	a := NewAssembler(map[string]string{"service": "Short service pages.", "landing": "Landing copy."})
	tests := map[string]string{
		"service":  "Short service pages.",
		"landing":  "Landing copy.",
		"about":    DefaultLengthGuidance()["about"],
		"glossary": GenericLengthGuidance,
	}
	for pageType, want := range tests {
		if got := a.LengthGuidance(pageType); got != want {
			t.Errorf("LengthGuidance(%q) = %q, want %q", pageType, got, want)
		}
	}

	var zero Assembler
	if got := zero.LengthGuidance("home"); got != DefaultLengthGuidance()["home"] {
		t.Errorf("zero Assembler guidance = %q", got)
	}
}

func TestBuildQueryText(t *testing.T) {
	got := BuildQueryText(QueryParts{Industry: "Dentistry", PageType: "home", Location: " ", Tone: "warm"})
	if got != "Dentistry | home | warm" {
		t.Errorf("BuildQueryText() = %q", got)
	}
	if got := BuildQueryText(QueryParts{}); got != "" {
		t.Errorf("BuildQueryText(empty) = %q", got)
	}
}
