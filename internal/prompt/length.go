// ABOUTME: Page-type word-count guidance for the output length guardrail
// ABOUTME: Unknown page types fall back to a generic range
package prompt

import "github.com/harper/pagesmith/internal/models"

// GenericLengthGuidance applies to page types without a dedicated entry
const GenericLengthGuidance = "Aim for 1,000–1,300 words with complete sections that would fit a production-ready web page."

// DefaultLengthGuidance returns a fresh copy of the built-in guidance table
func DefaultLengthGuidance() map[string]string {
	return map[string]string{
		models.PageTypeHome:     "Home pages should read like a full landing page: aim for 1,300–1,700 words across 8–12 sections with full paragraphs, not stubs.",
		models.PageTypeService:  "Service pages should land around 1,000–1,300 words with descriptive sections, proof points, FAQs, and a closing CTA.",
		models.PageTypeAbout:    "About pages should run 900–1,200 words with a rich story, team details, values, and credibility.",
		models.PageTypeLocation: "Location pages should be 1,000–1,300 words covering local details, services, trust signals, and FAQs.",
	}
}

// LengthGuidanceFor looks up guidance for pageType in table
func LengthGuidanceFor(table map[string]string, pageType string) string {
	if hint, ok := table[pageType]; ok && hint != "" {
		return hint
	}
	return GenericLengthGuidance
}
