// ABOUTME: Builds the retrieval query text for a page
// ABOUTME: Joins the non-empty context fields with a pipe separator
package prompt

import "strings"

// QueryParts are the page facts that steer rule retrieval
type QueryParts struct {
	Industry string
	PageType string
	Location string
	Intent   string
	Tone     string
	Service  string
}

// BuildQueryText joins non-empty parts with " | " in a fixed order
func BuildQueryText(p QueryParts) string {
	parts := []string{p.Industry, p.PageType, p.Location, p.Intent, p.Tone, p.Service}
	kept := parts[:0]
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " | ")
}
