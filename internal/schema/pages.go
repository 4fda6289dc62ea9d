// ABOUTME: Page shapes for each supported page type
// ABOUTME: New page types are added as new shape trees without touching the validator
package schema

import (
	"sort"

	"github.com/harper/pagesmith/internal/models"
)

func ctaFields() []Field {
	return []Field{
		Str("title", "string"),
		Str("body", "string"),
		Str("primary_cta_label", "string"),
		Str("primary_cta_url", "string"),
	}
}

func faqList() Shape {
	return Object(
		Str("title", "string"),
		Req("items", List(Object(
			Str("question", "string"),
			Str("answer", "string"),
		))),
	)
}

func stepList() Shape {
	return List(Object(
		Req("step_number", Scalar("integer")),
		Str("title", "string"),
		Str("description", "string"),
	))
}

func bulletSection(bullet string) Shape {
	return Object(
		Str("title", "string"),
		Str("intro", "string"),
		Req("bullets", List(Scalar(bullet))),
	)
}

func labelled(label string) Shape {
	return List(Object(
		Str("label", label),
		Str("description", "string"),
	))
}

var homeShape = Object(
	Str("page_type", models.PageTypeHome),
	Req("hero", Object(
		Str("eyebrow", "string - short positioning phrase above the headline"),
		Str("headline", "string - main benefit-driven headline"),
		Str("subheadline", "string - one to two sentences expanding on the main promise"),
		Str("primary_cta_label", "string - e.g., 'Request a Consultation'"),
		Str("primary_cta_url", "string - URL path or placeholder"),
		Opt("secondary_cta_label", Scalar("string - optional")),
		Opt("secondary_cta_url", Scalar("string - optional")),
	)),
	Req("sections", List(Object(
		Str("id", "services_overview | why_choose_us | process | testimonials | faqs | final_cta"),
		Str("title", "string - section heading"),
		Opt("intro", Scalar("string - short intro paragraph")),
		Opt("body", Scalar("string")),
		Opt("items", List(Object())),
		Opt("bullets", List(Scalar("string - specific, benefit-driven reason"))),
		Opt("steps", stepList()),
		Opt("primary_cta_label", Scalar("string")),
		Opt("primary_cta_url", Scalar("string")),
	))),
)

func serviceShape(pageType string) Shape {
	return Object(
		Str("page_type", pageType),
		Req("hero", Object(
			Str("eyebrow", "string"),
			Str("headline", "string"),
			Str("subheadline", "string"),
			Str("primary_cta_label", "string"),
			Str("primary_cta_url", "string"),
		)),
		Req("problem_section", bulletSection("string - pain point")),
		Req("solution_section", bulletSection("string - how the service solves the problem")),
		Req("benefits_section", bulletSection("string - tangible benefit")),
		Req("process_section", Object(
			Str("title", "string"),
			Req("steps", stepList()),
		)),
		Req("faq_section", faqList()),
		Req("final_cta_section", Object(ctaFields()...)),
	)
}

var aboutShape = Object(
	Str("page_type", models.PageTypeAbout),
	Req("hero", Object(
		Str("headline", "string"),
		Str("subheadline", "string"),
	)),
	Req("brand_story", Object(
		Str("title", "string"),
		Str("body", "string - 2–4 paragraphs as a single string"),
	)),
	Req("team_section", Object(
		Str("title", "string"),
		Str("intro", "string"),
		Req("members", List(Object(
			Str("name", "string"),
			Str("role", "string"),
			Str("bio", "string"),
		))),
	)),
	Req("values_section", Object(
		Str("title", "string"),
		Req("values", labelled("string")),
	)),
	Req("credibility_section", Object(
		Str("title", "string"),
		Req("items", labelled("string - e.g., award, certification")),
	)),
	Req("final_cta_section", Object(ctaFields()...)),
)

var locationShape = Object(
	Str("page_type", models.PageTypeLocation),
	Req("hero", Object(
		Str("headline", "string"),
		Str("subheadline", "string"),
		Str("primary_cta_label", "string"),
		Str("primary_cta_url", "string"),
	)),
	Req("local_intro", Object(
		Str("title", "string"),
		Str("body", "string - intro with location details"),
	)),
	Req("services_summary", Object(
		Str("title", "string"),
		Str("intro", "string"),
		Req("services", labelled("string")),
	)),
	Req("neighborhood_specific_details", Object(
		Str("title", "string"),
		Str("body", "string"),
		Req("bullets", List(Scalar("string - local-specific note"))),
	)),
	Req("trust_signals", Object(
		Str("title", "string"),
		Req("items", labelled("string - e.g., years in area, local partnerships")),
	)),
	Req("local_faqs", faqList()),
	Req("final_cta_section", Object(ctaFields()...)),
)

var pageShapes = map[string]Shape{
	models.PageTypeHome:       homeShape,
	models.PageTypeService:    serviceShape(models.PageTypeService),
	models.PageTypeSubService: serviceShape(models.PageTypeSubService),
	models.PageTypeAbout:      aboutShape,
	models.PageTypeLocation:   locationShape,
}

// ForPageType returns the shape generated pages of pageType must match
func ForPageType(pageType string) (Shape, bool) {
	shape, ok := pageShapes[pageType]
	return shape, ok
}

// PageTypes lists the page types that have a shape, sorted
func PageTypes() []string {
	types := make([]string, 0, len(pageShapes))
	for t := range pageShapes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
