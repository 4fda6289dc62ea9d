// ABOUTME: Brand, page, keyword and brief models for page generation
// ABOUTME: Shared by the prompt assembler, CSV ingestion, and the generation pipeline
package models

// Page types with dedicated schemas and length guidance
const (
	PageTypeHome       = "home"
	PageTypeService    = "service"
	PageTypeSubService = "sub service"
	PageTypeAbout      = "about"
	PageTypeLocation   = "location"
)

// BrandInfo describes the client brand
type BrandInfo struct {
	Name           string `json:"name" yaml:"name"`
	Industry       string `json:"industry" yaml:"industry"`
	Location       string `json:"location" yaml:"location"`
	VoiceTone      string `json:"voice_tone" yaml:"voice_tone"`
	TargetAudience string `json:"target_audience" yaml:"target_audience"`
	UVP            string `json:"uvp" yaml:"uvp"`
	Notes          string `json:"notes" yaml:"notes"`
}

// PageDefinition is one row of the sitemap
type PageDefinition struct {
	Slug     string `json:"slug" yaml:"slug"`
	PageName string `json:"page_name" yaml:"page_name"`
	PageType string `json:"page_type" yaml:"page_type"`
}

// PageRequest is the page being generated plus its intent
type PageRequest struct {
	PageDefinition `yaml:",inline"`
	Topic          string `json:"topic" yaml:"topic"`
	Service        string `json:"service" yaml:"service"`
	Intent         string `json:"intent" yaml:"intent"`
	Goal           string `json:"goal" yaml:"goal"`
}

// SEOEntry holds keyword targets for one slug
type SEOEntry struct {
	Slug               string   `json:"slug"`
	PrimaryKeyword     string   `json:"primary_keyword,omitempty"`
	SupportingKeywords []string `json:"supporting_keywords"`
}

// KeywordSets groups the keyword lists rendered into the prompt
type KeywordSets struct {
	Paramount      []string `json:"paramount" yaml:"paramount"`
	Primary        []string `json:"primary" yaml:"primary"`
	PagePrimary    []string `json:"page_primary" yaml:"page_primary"`
	PageSupporting []string `json:"page_supporting" yaml:"page_supporting"`
}

// WithSEO fills the page-level keyword lists from an SEO entry
func (k KeywordSets) WithSEO(entry *SEOEntry) KeywordSets {
	if entry == nil {
		return k
	}
	out := k
	if entry.PrimaryKeyword != "" {
		out.PagePrimary = []string{entry.PrimaryKeyword}
	}
	out.PageSupporting = append([]string(nil), entry.SupportingKeywords...)
	return out
}

// Brief bundles everything an operator supplies for one generation
type Brief struct {
	Brand           BrandInfo   `json:"brand" yaml:"brand"`
	Page            PageRequest `json:"page" yaml:"page"`
	Keywords        KeywordSets `json:"keywords" yaml:"keywords"`
	OnboardingNotes string      `json:"onboarding_notes" yaml:"onboarding_notes"`
	BrandBook       string      `json:"brand_book" yaml:"brand_book"`
	ReferenceCopy   string      `json:"reference_copy" yaml:"reference_copy"`
	StyleProfile    string      `json:"style_profile" yaml:"style_profile"`
}
