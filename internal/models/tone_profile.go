// ABOUTME: ToneProfile summarises the style of reference copy
// ABOUTME: Derived heuristically; zero value means no reference was supplied
package models

import (
	"fmt"
	"math"
	"strings"
)

// Tone indicator labels
const (
	ToneCollaborative = "collaborative"
	ToneSecondPerson  = "second-person"
	ToneAuthoritative = "authoritative"
	ToneEmpathetic    = "empathetic"
)

// ToneProfile is a lightweight tone/structure summary of free text
type ToneProfile struct {
	SentenceCount         int      `json:"sentence_count,omitempty"`
	AverageSentenceLength float64  `json:"average_sentence_length,omitempty"`
	ShortSentenceRatio    float64  `json:"short_sentence_ratio,omitempty"`
	CTACount              int      `json:"cta_count,omitempty"`
	HeadlineCount         int      `json:"headline_count,omitempty"`
	HeadlineRatio         float64  `json:"headline_ratio,omitempty"`
	ToneIndicators        []string `json:"tone_indicators,omitempty"`
}

// IsEmpty reports whether the profile was derived from no text
func (p ToneProfile) IsEmpty() bool {
	return p.SentenceCount == 0
}

// Lines renders the profile as "key: value" pairs in a fixed order
func (p ToneProfile) Lines() []string {
	if p.IsEmpty() {
		return nil
	}
	indicators := "neutral"
	if len(p.ToneIndicators) > 0 {
		indicators = strings.Join(p.ToneIndicators, ", ")
	}
	return []string{
		fmt.Sprintf("average_sentence_length: %.1f words", p.AverageSentenceLength),
		fmt.Sprintf("short_sentence_ratio: %d%% of lines are crisp", int(math.Round(p.ShortSentenceRatio*100))),
		fmt.Sprintf("cta_density: Detected %d CTA-like phrases", p.CTACount),
		fmt.Sprintf("headline_to_body_ratio: %d headline-style snippets vs %d total sentences", p.HeadlineCount, p.SentenceCount),
		fmt.Sprintf("tone_indicators: %s", indicators),
	}
}
