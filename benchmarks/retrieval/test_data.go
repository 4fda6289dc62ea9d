// ABOUTME: Scenario data for the retrieval benchmarks
// ABOUTME: A fixed golden-rule corpus plus queries with the context each should surface

package retrieval

// ChunkWords is the window size used to build the benchmark corpus; every
// rule in GoldenRules is exactly this many words so each becomes one chunk.
const ChunkWords = 20

// GoldenRules is the benchmark corpus, one rule per line
const GoldenRules = `Home pages open with a benefit headline, a short proof line, and one primary call to action button above fold.
Service pages place the primary SEO keyword in the first heading and repeat it naturally within the opening paragraph text.
About pages use a warm brand voice, introduce the founders by name, and share the origin story with genuine empathy.
Location pages mention the city, nearby neighborhoods, parking details, and opening hours so local search visitors find directions very quickly.
Every page ends with a closing section that restates the offer and gives visitors a single clear conversion path forward.
Testimonials quote real clients with first names and outcomes; never invent reviews, ratings, awards, or statistics for social proof ever.
Headlines stay under ten words, avoid clever puns, and lead with the reader outcome rather than the company name itself.
FAQ sections answer pricing, insurance, scheduling, and cancellation questions in plain everyday language to support answer engine optimization (AEO) snippets.`

// Scenario is one retrieval query with its ground truth
type Scenario struct {
	ID           string
	Name         string
	Query        string
	RequiredTags []string
	TopK         int
	// ExpectedContext lists phrases that must appear in the retrieved chunks
	ExpectedContext []string
}

// GetHomeCTA checks that home page queries surface the CTA rule
func GetHomeCTA() Scenario {
	return Scenario{
		ID:              "home-cta",
		Name:            "Home page call to action",
		Query:           "home page benefit headline call to action button above the fold",
		RequiredTags:    []string{"structure", "cta"},
		TopK:            3,
		ExpectedContext: []string{"call to action button"},
	}
}

// GetServiceSEO checks that service queries surface keyword placement
func GetServiceSEO() Scenario {
	return Scenario{
		ID:              "service-seo",
		Name:            "Service page keyword placement",
		Query:           "service page primary SEO keyword first heading",
		RequiredTags:    []string{"seo", "cta"},
		TopK:            3,
		ExpectedContext: []string{"primary SEO keyword in the first heading"},
	}
}

// GetAboutTone checks that about queries surface the voice rule
func GetAboutTone() Scenario {
	return Scenario{
		ID:              "about-tone",
		Name:            "About page voice",
		Query:           "about page warm brand voice founders origin story",
		RequiredTags:    []string{"tone"},
		TopK:            3,
		ExpectedContext: []string{"introduce the founders", "origin story"},
	}
}

// GetLocationSEO checks that location queries surface local search details
func GetLocationSEO() Scenario {
	return Scenario{
		ID:              "location-seo",
		Name:            "Location page local search",
		Query:           "location page city neighborhoods parking opening hours",
		RequiredTags:    []string{"seo"},
		TopK:            3,
		ExpectedContext: []string{"parking details"},
	}
}

// GetTestimonials checks an untagged query against an untagged rule
func GetTestimonials() Scenario {
	return Scenario{
		ID:              "testimonials",
		Name:            "Testimonial honesty",
		Query:           "client testimonials reviews ratings social proof",
		TopK:            3,
		ExpectedContext: []string{"never invent reviews"},
	}
}

// GetFAQ checks that FAQ queries surface the answer engine rule
func GetFAQ() Scenario {
	return Scenario{
		ID:              "faq",
		Name:            "FAQ answer engine snippets",
		Query:           "FAQ pricing insurance scheduling cancellation questions",
		TopK:            3,
		ExpectedContext: []string{"cancellation questions"},
	}
}

// GetAllScenarios returns every benchmark scenario
func GetAllScenarios() []Scenario {
	return []Scenario{
		GetHomeCTA(),
		GetServiceSEO(),
		GetAboutTone(),
		GetLocationSEO(),
		GetTestimonials(),
		GetFAQ(),
	}
}

// GetScenario looks a scenario up by ID
func GetScenario(id string) (Scenario, bool) {
	for _, s := range GetAllScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
