// ABOUTME: Tests for static rule and length guidance loading
// ABOUTME: Checks category order across JSON, YAML and TOML sources
package rules

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/harper/pagesmith/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStatic_PreservesOrder(t *testing.T) {
	want := []models.RuleCategory{
		{Name: "voice", Rules: []string{"Speak to the reader as you", "Avoid jargon"}},
		{Name: "structure", Rules: []string{"One H1 per page"}},
		{Name: "accessibility", Rules: []string{}},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "rules.json",
			content: `{"voice": ["Speak to the reader as you", " Avoid jargon ", ""],
			           "structure": "One H1 per page",
			           "accessibility": []}`,
		},
		{
			name: "yaml",
			file: "rules.yaml",
			content: "voice:\n  - Speak to the reader as you\n  - Avoid jargon\n" +
				"structure: One H1 per page\naccessibility: []\n",
		},
		{
			name: "toml",
			file: "rules.toml",
			content: "voice = [\"Speak to the reader as you\", \"Avoid jargon\"]\n" +
				"structure = \"One H1 per page\"\naccessibility = []\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := LoadStatic(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadStatic() error = %v", err)
			}
			if !reflect.DeepEqual(set.Categories, want) {
				t.Errorf("categories = %+v, want %+v", set.Categories, want)
			}
		})
	}
}

func TestLoadStatic_Missing(t *testing.T) {
	set, err := LoadStatic(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadStatic() error = %v", err)
	}
	if !set.IsEmpty() {
		t.Errorf("expected empty set, got %+v", set)
	}
}

func TestLoadStatic_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unsupported", "rules.ini", "x", "unsupported static rules format"},
		{"json array", "rules.json", `["a"]`, "must be a JSON object"},
		{"json bad item", "rules.json", `{"voice": [1]}`, `category "voice" item 0`},
		{"yaml list root", "rules.yaml", "- a\n", "must be a YAML mapping"},
		{"yaml nested map", "rules.yaml", "voice:\n  a: b\n", "must be a list of strings"},
		{"toml invalid", "rules.toml", "voice = [", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStatic(writeFile(t, tt.file, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseStaticJSON_Empty(t *testing.T) {
	set, err := ParseStaticJSON([]byte("  "))
	if err != nil || !set.IsEmpty() {
		t.Errorf("ParseStaticJSON(blank) = %+v, %v", set, err)
	}
}

func TestLoadLengthGuidance(t *testing.T) {
	path := writeFile(t, "length.yaml", "Home: \" Keep it tight. \"\nservice: Go deep.\n")
	got, err := LoadLengthGuidance(path)
	if err != nil {
		t.Fatalf("LoadLengthGuidance() error = %v", err)
	}
	want := map[string]string{"home": "Keep it tight.", "service": "Go deep."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	missing, err := LoadLengthGuidance(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil || missing != nil {
		t.Errorf("missing file = %v, %v", missing, err)
	}

	if _, err := LoadLengthGuidance(writeFile(t, "bad.yaml", "- a\n")); err == nil {
		t.Error("expected error for list document")
	}
}
