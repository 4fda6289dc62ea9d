// ABOUTME: Heuristic tone and structure profile of reference copy
// ABOUTME: Sentence lengths, CTA phrases, headline-like lines and tone indicators
package prompt

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/harper/pagesmith/internal/models"
)

const (
	shortSentenceWords    = 12
	headlineSentenceWords = 8
)

var (
	ctaPattern = regexp.MustCompile(`(?i)call|schedule|book|contact|request|learn more|get started`)

	toneIndicators = []struct {
		label   string
		pattern *regexp.Regexp
	}{
		{models.ToneCollaborative, regexp.MustCompile(`(?i)we\b|our team|our clinic`)},
		{models.ToneSecondPerson, regexp.MustCompile(`(?i)you\b|your`)},
		{models.ToneAuthoritative, regexp.MustCompile(`(?i)expert|board-certified|specialist|clinical`)},
		{models.ToneEmpathetic, regexp.MustCompile(`(?i)calm|gentle|compassion|caring|trust`)},
	}
)

// AnalyzeTone derives a ToneProfile from free text. Blank text yields the zero profile.
func AnalyzeTone(text string) models.ToneProfile {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return models.ToneProfile{}
	}

	var totalWords, short, headlines int
	for _, sentence := range sentences {
		n := len(strings.Fields(sentence))
		totalWords += n
		if n <= shortSentenceWords {
			short++
		}
		if n <= headlineSentenceWords {
			headlines++
		}
	}

	count := float64(len(sentences))
	profile := models.ToneProfile{
		SentenceCount:         len(sentences),
		AverageSentenceLength: float64(totalWords) / count,
		ShortSentenceRatio:    float64(short) / count,
		CTACount:              len(ctaPattern.FindAllStringIndex(text, -1)),
		HeadlineCount:         headlines,
		HeadlineRatio:         float64(headlines) / count,
	}
	for _, indicator := range toneIndicators {
		if indicator.pattern.MatchString(text) {
			profile.ToneIndicators = append(profile.ToneIndicators, indicator.label)
		}
	}
	return profile
}

// splitSentences breaks after '.', '!' or '?' when followed by whitespace
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminator(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
