// ABOUTME: Keyword tagger that assigns coarse topical tags to rule chunks
// ABOUTME: Case-insensitive substring match against fixed vocabularies
package core

import (
	"strings"

	"github.com/harper/pagesmith/internal/models"
)

// tagVocabulary maps each tag to the phrases that trigger it
var tagVocabulary = []struct {
	tag      string
	keywords []string
}{
	{models.TagSEO, []string{"seo", "search", "keyword", "serp", "aeo"}},
	{models.TagStructure, []string{"structure", "layout", "sections", "heading", "outline"}},
	{models.TagCTA, []string{"cta", "call to action", "conversion", "button"}},
	{models.TagTone, []string{"tone", "voice", "empathy", "personality", "brand"}},
}

// Tag derives the sorted tag set for a chunk of text. Text matching no
// vocabulary is tagged "general".
func Tag(text string) []string {
	lowered := strings.ToLower(text)
	var tags []string
	for _, v := range tagVocabulary {
		for _, kw := range v.keywords {
			if strings.Contains(lowered, kw) {
				tags = append(tags, v.tag)
				break
			}
		}
	}
	if len(tags) == 0 {
		return []string{models.TagGeneral}
	}
	return models.NormalizeTags(tags)
}

// MergeTags unions caller-supplied base tags with derived tags
func MergeTags(base, derived []string) []string {
	all := make([]string, 0, len(base)+len(derived))
	all = append(all, base...)
	all = append(all, derived...)
	return models.NormalizeTags(all)
}
