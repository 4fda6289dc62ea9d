// ABOUTME: Formatting of static and retrieved rules into prompt blocks
// ABOUTME: Both formatters de-duplicate case-insensitively and are idempotent
package prompt

import (
	"fmt"
	"strings"

	"github.com/harper/pagesmith/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallback texts used when a rule block would otherwise be empty
const (
	NoStaticRules  = "No static rules available."
	NoDynamicRules = "No dynamic golden rule snippets retrieved; rely on static core rules."
)

// DedupeStaticRules trims rules, drops blanks and case-insensitive repeats
// within each category (first casing wins), and drops empty categories.
func DedupeStaticRules(set models.StaticRuleSet) models.StaticRuleSet {
	var out models.StaticRuleSet
	for _, category := range set.Categories {
		seen := make(map[string]struct{}, len(category.Rules))
		var rules []string
		for _, rule := range category.Rules {
			normalized := strings.TrimSpace(rule)
			key := strings.ToLower(normalized)
			if normalized == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rules = append(rules, normalized)
		}
		if len(rules) == 0 {
			continue
		}
		out.Categories = append(out.Categories, models.RuleCategory{Name: category.Name, Rules: rules})
	}
	return out
}

// FormatStaticRules renders categories as title-cased headings with bullet lists
func FormatStaticRules(set models.StaticRuleSet) string {
	deduped := DedupeStaticRules(set)
	if deduped.IsEmpty() {
		return NoStaticRules
	}

	// Casers keep state, so each call gets its own
	caser := cases.Title(language.English)
	sections := make([]string, 0, len(deduped.Categories))
	for _, category := range deduped.Categories {
		var b strings.Builder
		b.WriteString(caser.String(category.Name))
		for _, rule := range category.Rules {
			b.WriteString("\n- ")
			b.WriteString(rule)
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n\n")
}

// DedupeDynamicRules keeps the first chunk for each trimmed, lowercased text
func DedupeDynamicRules(chunks []models.RuleChunk) []models.RuleChunk {
	seen := make(map[string]struct{}, len(chunks))
	out := make([]models.RuleChunk, 0, len(chunks))
	for _, chunk := range chunks {
		normalized := strings.TrimSpace(chunk.Text)
		key := strings.ToLower(normalized)
		if normalized == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, chunk)
	}
	return out
}

// FormatDynamicRules renders retrieved chunks as numbered snippets with their
// tags and similarity score
func FormatDynamicRules(chunks []models.RuleChunk) string {
	unique := DedupeDynamicRules(chunks)
	if len(unique) == 0 {
		return NoDynamicRules
	}

	blocks := make([]string, 0, len(unique))
	for i, chunk := range unique {
		header := fmt.Sprintf("[%d] (tags: %s)", i+1, strings.Join(chunk.Metadata.Tags, ", "))
		if chunk.Metadata.Score != nil {
			header += fmt.Sprintf(" (sim=%.3f)", *chunk.Metadata.Score)
		}
		blocks = append(blocks, header+"\n"+strings.TrimSpace(chunk.Text))
	}
	return strings.Join(blocks, "\n\n")
}
