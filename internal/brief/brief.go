// ABOUTME: Loads operator briefs (brand, page, keywords, reference material) from YAML
// ABOUTME: Document fields may point at txt, md, pdf or docx files next to the brief
package brief

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harper/pagesmith/internal/extract"
	"github.com/harper/pagesmith/internal/models"
)

// file is the on-disk shape: a Brief plus optional document paths
type file struct {
	models.Brief      `yaml:",inline"`
	BrandBookFile     string `yaml:"brand_book_file"`
	OnboardingFile    string `yaml:"onboarding_file"`
	ReferenceCopyFile string `yaml:"reference_copy_file"`
}

// Load reads a brief from path. Document paths resolve relative to the brief.
func Load(path string) (*models.Brief, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open brief: %w", err)
	}
	defer f.Close()
	return Parse(f, filepath.Dir(path))
}

// Parse decodes a brief from r; baseDir anchors relative document paths
func Parse(r io.Reader, baseDir string) (*models.Brief, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var raw file
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("brief is empty")
		}
		return nil, fmt.Errorf("failed to parse brief: %w", err)
	}

	b := raw.Brief
	docs := []struct {
		path   string
		target *string
	}{
		{raw.BrandBookFile, &b.BrandBook},
		{raw.OnboardingFile, &b.OnboardingNotes},
		{raw.ReferenceCopyFile, &b.ReferenceCopy},
	}
	for _, d := range docs {
		if d.path == "" {
			continue
		}
		p := d.path
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		text, err := extract.File(p)
		if err != nil {
			return nil, err
		}
		*d.target = joinText(*d.target, text)
	}

	normalize(&b)
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the fields generation cannot proceed without
func Validate(b *models.Brief) error {
	var missing []string
	if b.Brand.Name == "" {
		missing = append(missing, "brand.name")
	}
	if b.Page.PageType == "" {
		missing = append(missing, "page.page_type")
	}
	if len(missing) > 0 {
		return fmt.Errorf("brief is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func normalize(b *models.Brief) {
	b.Brand.Name = strings.TrimSpace(b.Brand.Name)
	b.Page.PageType = strings.ToLower(strings.TrimSpace(b.Page.PageType))
	if b.Page.PageName == "" {
		b.Page.PageName = b.Page.Slug
	}
	b.Keywords.Paramount = cleanList(b.Keywords.Paramount)
	b.Keywords.Primary = cleanList(b.Keywords.Primary)
	b.Keywords.PagePrimary = cleanList(b.Keywords.PagePrimary)
	b.Keywords.PageSupporting = cleanList(b.Keywords.PageSupporting)
}

// SplitKeywords splits a comma or newline separated keyword list
func SplitKeywords(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	return cleanList(fields)
}

func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func joinText(existing, extra string) string {
	existing = strings.TrimSpace(existing)
	extra = strings.TrimSpace(extra)
	switch {
	case existing == "":
		return extra
	case extra == "":
		return existing
	default:
		return existing + "\n" + extra
	}
}
