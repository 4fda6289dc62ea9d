// ABOUTME: Assembles the page-generation prompt from static rules, retrieved rules and the brief
// ABOUTME: Every prompt comes with structured diagnostics for operator audits
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/pagesmith/internal/models"
)

// Input is everything the assembler renders into one prompt
type Input struct {
	StaticRules      models.StaticRuleSet
	DynamicRules     []models.RuleChunk
	Brand            models.BrandInfo
	Page             models.PageRequest
	Keywords         models.KeywordSets
	OnboardingNotes  string
	BrandBook        string
	ReferenceCopy    string
	ReferenceProfile models.ToneProfile
	StyleProfile     string
	SchemaExample    string
}

// Diagnostics records what went into a prompt
type Diagnostics struct {
	RunID            string                 `json:"run_id"`
	PageType         string                 `json:"page_type"`
	StaticRules      []string               `json:"static_rules"`
	DynamicRules     []models.ChunkMetadata `json:"dynamic_rules"`
	RetrievalEmpty   bool                   `json:"retrieval_empty"`
	LengthGuidance   string                 `json:"length_guidance"`
	ReferenceProfile *models.ToneProfile    `json:"reference_profile,omitempty"`
}

// Result is an assembled prompt plus its diagnostics
type Result struct {
	Prompt          string
	Diagnostics     Diagnostics
	DiagnosticsText string
}

// Assembler renders prompts; the zero value uses the built-in length guidance
type Assembler struct {
	lengthGuidance map[string]string
	newID          func() string
}

// NewAssembler creates an Assembler. Entries in guidance override the
// built-in table per page type.
func NewAssembler(guidance map[string]string) *Assembler {
	table := DefaultLengthGuidance()
	for pageType, hint := range guidance {
		table[pageType] = hint
	}
	return &Assembler{lengthGuidance: table, newID: uuid.NewString}
}

// LengthGuidance returns the guardrail text for pageType
func (a *Assembler) LengthGuidance(pageType string) string {
	table := a.lengthGuidance
	if table == nil {
		table = DefaultLengthGuidance()
	}
	return LengthGuidanceFor(table, pageType)
}

// Assemble renders the prompt and diagnostics for in
func (a *Assembler) Assemble(in Input) (*Result, error) {
	newID := a.newID
	if newID == nil {
		newID = uuid.NewString
	}

	static := DedupeStaticRules(in.StaticRules)
	dynamic := DedupeDynamicRules(in.DynamicRules)
	profile := in.ReferenceProfile
	if profile.IsEmpty() && strings.TrimSpace(in.ReferenceCopy) != "" {
		profile = AnalyzeTone(in.ReferenceCopy)
	}
	lengthHint := a.LengthGuidance(in.Page.PageType)

	var b strings.Builder
	b.WriteString("You are a website copy specialist. Follow the static core rules FIRST, then the retrieved dynamic golden rule snippets, without contradicting either.\n\n")

	section(&b, "STATIC CORE RULES (always apply)", FormatStaticRules(static))
	section(&b, "DYNAMIC GOLDEN RULE SNIPPETS (semantic retrieval)", FormatDynamicRules(dynamic))
	section(&b, "BRAND + CONTEXT", bullets(
		"Brand", in.Brand.Name,
		"Industry/Niche", in.Brand.Industry,
		"Location", in.Brand.Location,
		"Voice & tone", in.Brand.VoiceTone,
		"Target audience", in.Brand.TargetAudience,
		"UVP", in.Brand.UVP,
		"Notes", in.Brand.Notes,
	))
	section(&b, "PAGE REQUEST", bullets(
		"Page type", in.Page.PageType,
		"Page name", in.Page.PageName,
		"Slug", in.Page.Slug,
		"Page topic", in.Page.Topic,
		"Service focus", orDefault(in.Page.Service, "None specified"),
		"Audience intent", in.Page.Intent,
		"Goal", in.Page.Goal,
		"Style profile", orDefault(in.StyleProfile, "Default agency style"),
	))
	section(&b, "KEYWORDS & SEO", strings.Join([]string{
		"Paramount keywords: " + joinOrNone(in.Keywords.Paramount),
		"Primary keywords: " + joinOrNone(in.Keywords.Primary),
		"Page SEO keywords: " + joinOrNone(in.Keywords.PagePrimary),
		"Supporting keywords: " + joinOrNone(in.Keywords.PageSupporting),
	}, "\n"))
	section(&b, "BRAND BOOK / PERSONA HIGHLIGHTS", orDefault(in.BrandBook, "None provided"))
	section(&b, "ONBOARDING INSIGHTS", orDefault(in.OnboardingNotes, "None provided"))
	section(&b, "REFERENCE STYLE PROFILE (mimic structure, tone, CTA pacing when provided)", profileBlock(profile))
	section(&b, "REFERENCE COPY", orDefault(in.ReferenceCopy, "None"))
	if schema := strings.TrimSpace(in.SchemaExample); schema != "" {
		section(&b, "OUTPUT SCHEMA", schema)
	}
	b.WriteString("OUTPUT INSTRUCTIONS:\n")
	b.WriteString("- Keep the target audience consistent throughout the page.\n")
	b.WriteString("- Use paramount and primary keywords naturally; avoid stuffing.\n")
	b.WriteString("- Respect SEO/AEO guidance, CTA style, and structure cues from the retrieved rules.\n")
	b.WriteString("- Length guardrail: " + lengthHint + "\n")
	b.WriteString("- Return ONLY the JSON following the provided schema.")

	diag := Diagnostics{
		RunID:          newID(),
		PageType:       in.Page.PageType,
		StaticRules:    static.Names(),
		DynamicRules:   make([]models.ChunkMetadata, 0, len(dynamic)),
		RetrievalEmpty: len(dynamic) == 0,
		LengthGuidance: lengthHint,
	}
	for _, chunk := range dynamic {
		diag.DynamicRules = append(diag.DynamicRules, chunk.Clone().Metadata)
	}
	if !profile.IsEmpty() {
		diag.ReferenceProfile = &profile
	}

	text, err := json.MarshalIndent(diag, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	return &Result{
		Prompt:          strings.TrimSpace(b.String()),
		Diagnostics:     diag,
		DiagnosticsText: string(text),
	}, nil
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(title)
	b.WriteString(":\n")
	b.WriteString(body)
	b.WriteString("\n\n")
}

// bullets renders label/value pairs as "- label: value" lines
func bullets(pairs ...string) string {
	lines := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		lines = append(lines, fmt.Sprintf("- %s: %s", pairs[i], strings.TrimSpace(pairs[i+1])))
	}
	return strings.Join(lines, "\n")
}

func profileBlock(profile models.ToneProfile) string {
	lines := profile.Lines()
	if len(lines) == 0 {
		return "None provided"
	}
	return "- " + strings.Join(lines, "\n- ")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
