// ABOUTME: Sitemap and SEO keyword CSV ingestion
// ABOUTME: Columns are matched by header name; blank slugs are skipped
package sitemap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/harper/pagesmith/internal/models"
)

// DefaultPageTypes are accepted when ParsePages is given no explicit list
var DefaultPageTypes = []string{
	models.PageTypeHome,
	models.PageTypeService,
	models.PageTypeSubService,
	models.PageTypeAbout,
	models.PageTypeLocation,
}

var (
	pageColumns = []string{"slug", "page_name", "page_type"}
	seoColumns  = []string{"slug", "primary_keyword", "supporting_keywords"}
)

// table is a parsed CSV with header positions resolved
type table struct {
	cols map[string]int
	rows [][]string
}

func (t *table) get(row []string, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readTable(r io.Reader, kind string, required []string) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s CSV is empty", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s CSV: %w", kind, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%s CSV is missing required columns: %s", kind, strings.Join(missing, ", "))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s CSV: %w", kind, err)
	}
	return &table{cols: cols, rows: rows}, nil
}

// ParsePages reads slug, page_name and page_type columns. Rows whose page
// type is not in allowed are skipped with a warning; page types are matched
// case-insensitively. A nil allowed list means DefaultPageTypes.
func ParsePages(r io.Reader, allowed []string) ([]models.PageDefinition, []string, error) {
	t, err := readTable(r, "sitemap", pageColumns)
	if err != nil {
		return nil, nil, err
	}
	if allowed == nil {
		allowed = DefaultPageTypes
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, pt := range allowed {
		allowedSet[pt] = struct{}{}
	}

	var (
		pages    []models.PageDefinition
		warnings []string
	)
	for i, row := range t.rows {
		slug := t.get(row, "slug")
		if slug == "" {
			continue
		}
		pageType := strings.ToLower(t.get(row, "page_type"))
		if _, ok := allowedSet[pageType]; !ok {
			warnings = append(warnings, fmt.Sprintf("row %d (%s): unsupported page type %q", i+2, slug, pageType))
			continue
		}
		name := t.get(row, "page_name")
		if name == "" {
			name = slug
		}
		pages = append(pages, models.PageDefinition{Slug: slug, PageName: name, PageType: pageType})
	}
	return pages, warnings, nil
}

// ParseSEO reads slug, primary_keyword and a comma-separated supporting_keywords column
func ParseSEO(r io.Reader) (map[string]*models.SEOEntry, error) {
	t, err := readTable(r, "SEO", seoColumns)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]*models.SEOEntry, len(t.rows))
	for _, row := range t.rows {
		slug := t.get(row, "slug")
		if slug == "" {
			continue
		}
		entry := &models.SEOEntry{
			Slug:               slug,
			PrimaryKeyword:     t.get(row, "primary_keyword"),
			SupportingKeywords: []string{},
		}
		for _, kw := range strings.Split(t.get(row, "supporting_keywords"), ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				entry.SupportingKeywords = append(entry.SupportingKeywords, kw)
			}
		}
		entries[slug] = entry
	}
	return entries, nil
}
