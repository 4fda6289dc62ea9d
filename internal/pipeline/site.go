// ABOUTME: Whole-site generation over a sitemap and the combined export document
// ABOUTME: One page failing does not stop the rest of the site
package pipeline

import (
	"context"
	"errors"

	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/schema"
)

// PageOutcome is the result of generating one sitemap page
type PageOutcome struct {
	Page   models.PageDefinition
	SEO    *models.SEOEntry
	Result *Result
	Err    error
}

// Valid reports whether the page generated and passed validation
func (o PageOutcome) Valid() bool {
	return o.Err == nil && o.Result != nil
}

// GenerateSite generates every page in pages using base for brand and keyword context.
// It stops early only when ctx is done.
func (g *Generator) GenerateSite(ctx context.Context, base models.Brief, pages []models.PageDefinition, seo map[string]*models.SEOEntry) ([]PageOutcome, error) {
	outcomes := make([]PageOutcome, 0, len(pages))
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		brief := base
		brief.Page = models.PageRequest{
			PageDefinition: page,
			Topic:          page.PageName,
			Intent:         base.Page.Intent,
			Goal:           base.Page.Goal,
		}
		if page.PageType == models.PageTypeService || page.PageType == models.PageTypeSubService {
			brief.Page.Service = page.PageName
		}

		entry := seo[page.Slug]
		res, err := g.Generate(ctx, Request{Brief: brief, SEO: entry})
		outcomes = append(outcomes, PageOutcome{Page: page, SEO: entry, Result: res, Err: err})
	}
	return outcomes, nil
}

// SiteExport is the combined document written after a site run
type SiteExport struct {
	Pages map[string]ExportPage `json:"pages"`
}

// ExportPage is one page entry in a SiteExport
type ExportPage struct {
	PageName  string         `json:"page_name"`
	PageType  string         `json:"page_type"`
	SEO       ExportSEO      `json:"seo"`
	FinalCopy map[string]any `json:"final_copy"`
}

// ExportSEO carries the keyword targets; PrimaryKeyword is null when absent
type ExportSEO struct {
	PrimaryKeyword     *string  `json:"primary_keyword"`
	SupportingKeywords []string `json:"supporting_keywords"`
}

// BuildSiteExport collects outcomes into a SiteExport keyed by slug. Pages
// that failed validation keep their parsed copy; pages with no output get null.
func BuildSiteExport(outcomes []PageOutcome) SiteExport {
	export := SiteExport{Pages: make(map[string]ExportPage, len(outcomes))}
	for _, o := range outcomes {
		entry := ExportPage{
			PageName: o.Page.PageName,
			PageType: o.Page.PageType,
			SEO:      ExportSEO{SupportingKeywords: []string{}},
		}
		if o.SEO != nil {
			if o.SEO.PrimaryKeyword != "" {
				kw := o.SEO.PrimaryKeyword
				entry.SEO.PrimaryKeyword = &kw
			}
			entry.SEO.SupportingKeywords = append(entry.SEO.SupportingKeywords, o.SEO.SupportingKeywords...)
		}
		var verr *schema.ValidationError
		if o.Result != nil && (o.Err == nil || errors.As(o.Err, &verr)) {
			entry.FinalCopy = o.Result.Page
		}
		export.Pages[o.Page.Slug] = entry
	}
	return export
}
