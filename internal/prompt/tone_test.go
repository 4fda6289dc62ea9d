// ABOUTME: Tests for the reference copy tone profile
// ABOUTME: Verifies sentence statistics, CTA counting and tone indicators
package prompt

import (
	"math"
	"reflect"
	"testing"

	"github.com/harper/pagesmith/internal/models"
)

func TestAnalyzeTone_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		if got := AnalyzeTone(text); !reflect.DeepEqual(got, models.ToneProfile{}) {
			t.Errorf("AnalyzeTone(%q) = %+v, want zero profile", text, got)
		}
	}
}

func TestAnalyzeTone_Statistics(t *testing.T) {
	text := "Gentle care for your family. " +
		"Our team of board-certified specialists treats every patient with the same attention we give our own relatives every single working day. " +
		"Book a visit today!"

	got := AnalyzeTone(text)
	if got.SentenceCount != 3 {
		t.Fatalf("SentenceCount = %d, want 3", got.SentenceCount)
	}
	// 5 + 21 + 4 words
	if math.Abs(got.AverageSentenceLength-10) > 1e-9 {
		t.Errorf("AverageSentenceLength = %v, want 10", got.AverageSentenceLength)
	}
	if math.Abs(got.ShortSentenceRatio-2.0/3.0) > 1e-9 {
		t.Errorf("ShortSentenceRatio = %v", got.ShortSentenceRatio)
	}
	if got.HeadlineCount != 2 {
		t.Errorf("HeadlineCount = %d, want 2", got.HeadlineCount)
	}
	if got.CTACount != 1 {
		t.Errorf("CTACount = %d, want 1", got.CTACount)
	}
	want := []string{models.ToneCollaborative, models.ToneSecondPerson, models.ToneAuthoritative, models.ToneEmpathetic}
	if !reflect.DeepEqual(got.ToneIndicators, want) {
		t.Errorf("ToneIndicators = %v, want %v", got.ToneIndicators, want)
	}
}

func TestAnalyzeTone_Neutral(t *testing.T) {
	got := AnalyzeTone("Plain statement of fact")
	if got.SentenceCount != 1 || len(got.ToneIndicators) != 0 {
		t.Errorf("AnalyzeTone() = %+v", got)
	}
	if lines := got.Lines(); lines[4] != "tone_indicators: neutral" {
		t.Errorf("Lines()[4] = %q", lines[4])
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"Version 2.5 ships.  Next", []string{"Version 2.5 ships.", "Next"}},
		{"Wait...\nReally?", []string{"Wait...", "Really?"}},
		{"no terminator", []string{"no terminator"}},
	}
	for _, tt := range tests {
		if got := splitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSentences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
