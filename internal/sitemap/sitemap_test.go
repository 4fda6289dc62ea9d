// ABOUTME: Tests for sitemap and SEO CSV parsing
// ABOUTME: Covers missing columns, blank slugs, page type filtering and keyword splitting
package sitemap

import (
	"reflect"
	"strings"
	"testing"

	"github.com/harper/pagesmith/internal/models"
)

func TestParsePages(t *testing.T) {
	csv := "\uFEFFSlug,Page_Name,Page_Type\n" +
		"/,Home,home\n" +
		"services/implants,Dental Implants,Service\n" +
		",Orphan,about\n" +
		"blog,Blog,blog\n" +
		"about,,about\n"

	pages, warnings, err := ParsePages(strings.NewReader(csv), nil)
	if err != nil {
		t.Fatalf("ParsePages() error = %v", err)
	}
	want := []models.PageDefinition{
		{Slug: "/", PageName: "Home", PageType: "home"},
		{Slug: "services/implants", PageName: "Dental Implants", PageType: "service"},
		{Slug: "about", PageName: "about", PageType: "about"},
	}
	if !reflect.DeepEqual(pages, want) {
		t.Errorf("pages = %+v, want %+v", pages, want)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"blog"`) || !strings.Contains(warnings[0], "row 5") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestParsePages_AllowedList(t *testing.T) {
	csv := "slug,page_name,page_type\nx,X,sub service\n"
	pages, warnings, err := ParsePages(strings.NewReader(csv), []string{"home"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 0 || len(warnings) != 1 {
		t.Errorf("pages = %v, warnings = %v", pages, warnings)
	}
}

func TestParsePages_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"empty", "", "sitemap CSV is empty"},
		{"missing columns", "slug,name\n/,Home\n", "missing required columns: page_name, page_type"},
		{"bad quoting", "slug,page_name,page_type\n\"/,Home,home\n", "failed to parse sitemap CSV"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParsePages(strings.NewReader(tt.csv), nil)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParsePages() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseSEO(t *testing.T) {
	csv := "slug,primary_keyword,supporting_keywords\n" +
		"/,portland dentist,\"family dentist, , teeth cleaning \"\n" +
		"about,,\n" +
		" ,ignored,ignored\n"

	entries, err := ParseSEO(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseSEO() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	home := entries["/"]
	if home.PrimaryKeyword != "portland dentist" {
		t.Errorf("PrimaryKeyword = %q", home.PrimaryKeyword)
	}
	if !reflect.DeepEqual(home.SupportingKeywords, []string{"family dentist", "teeth cleaning"}) {
		t.Errorf("SupportingKeywords = %v", home.SupportingKeywords)
	}
	about := entries["about"]
	if about.PrimaryKeyword != "" || about.SupportingKeywords == nil || len(about.SupportingKeywords) != 0 {
		t.Errorf("about = %+v", about)
	}
}

func TestParseSEO_MissingColumns(t *testing.T) {
	_, err := ParseSEO(strings.NewReader("slug\n/\n"))
	if err == nil || !strings.Contains(err.Error(), "primary_keyword, supporting_keywords") {
		t.Errorf("ParseSEO() error = %v", err)
	}
}
