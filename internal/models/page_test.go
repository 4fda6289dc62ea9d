// ABOUTME: Tests for keyword set helpers
// ABOUTME: Verifies SEO entries populate page-level keyword lists
package models

import (
	"reflect"
	"testing"
)

func TestKeywordSets_WithSEO(t *testing.T) {
	base := KeywordSets{Paramount: []string{"dental implants"}}

	t.Run("nil entry leaves sets untouched", func(t *testing.T) {
		got := base.WithSEO(nil)
		if !reflect.DeepEqual(got, base) {
			t.Errorf("WithSEO(nil) = %+v, want %+v", got, base)
		}
	})

	t.Run("entry fills page keywords", func(t *testing.T) {
		entry := &SEOEntry{Slug: "/implants", PrimaryKeyword: "implant dentist", SupportingKeywords: []string{"same day", "cost"}}
		got := base.WithSEO(entry)
		if !reflect.DeepEqual(got.PagePrimary, []string{"implant dentist"}) {
			t.Errorf("PagePrimary = %v", got.PagePrimary)
		}
		if !reflect.DeepEqual(got.PageSupporting, []string{"same day", "cost"}) {
			t.Errorf("PageSupporting = %v", got.PageSupporting)
		}
		if !reflect.DeepEqual(got.Paramount, base.Paramount) {
			t.Errorf("Paramount changed: %v", got.Paramount)
		}
	})
}

func TestToneProfile_Lines(t *testing.T) {
	if lines := (ToneProfile{}).Lines(); lines != nil {
		t.Errorf("empty profile Lines() = %v, want nil", lines)
	}

	p := ToneProfile{
		SentenceCount:         4,
		AverageSentenceLength: 7.25,
		ShortSentenceRatio:    0.75,
		CTACount:              2,
		HeadlineCount:         3,
		HeadlineRatio:         0.75,
	}
	lines := p.Lines()
	if len(lines) != 5 {
		t.Fatalf("Lines() returned %d lines, want 5", len(lines))
	}
	if lines[0] != "average_sentence_length: 7.2 words" && lines[0] != "average_sentence_length: 7.3 words" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "short_sentence_ratio: 75% of lines are crisp" {
		t.Errorf("lines[1] = %q", lines[1])
	}
	if lines[4] != "tone_indicators: neutral" {
		t.Errorf("lines[4] = %q", lines[4])
	}
}
