// ABOUTME: Loads static rule sets and length guidance tables from disk
// ABOUTME: JSON, YAML and TOML sources keep their category declaration order
package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/harper/pagesmith/internal/models"
)

// LoadStatic reads a category -> rules mapping. A missing file yields an empty set.
func LoadStatic(path string) (models.StaticRuleSet, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return models.StaticRuleSet{}, nil
	}
	if err != nil {
		return models.StaticRuleSet{}, fmt.Errorf("failed to read static rules: %w", err)
	}

	var set models.StaticRuleSet
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		set, err = parseJSON(data)
	case ".yaml", ".yml":
		set, err = parseYAML(data)
	case ".toml":
		set, err = parseTOML(data)
	default:
		return models.StaticRuleSet{}, fmt.Errorf("unsupported static rules format %q", ext)
	}
	if err != nil {
		return models.StaticRuleSet{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return set, nil
}

// ParseStaticJSON parses a JSON object of category -> rule list
func ParseStaticJSON(data []byte) (models.StaticRuleSet, error) {
	return parseJSON(data)
}

func parseJSON(data []byte) (models.StaticRuleSet, error) {
	var set models.StaticRuleSet
	if len(bytes.TrimSpace(data)) == 0 {
		return set, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return set, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return set, errors.New("static rules must be a JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return set, err
		}
		name, _ := keyTok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return set, err
		}
		rules, err := toRules(name, raw)
		if err != nil {
			return set, err
		}
		set.Categories = append(set.Categories, models.RuleCategory{Name: name, Rules: rules})
	}
	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return set, err
	}
	return set, nil
}

func parseYAML(data []byte) (models.StaticRuleSet, error) {
	var set models.StaticRuleSet
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return set, err
	}
	if len(doc.Content) == 0 {
		return set, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return set, errors.New("static rules must be a YAML mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var raw any
		if err := root.Content[i+1].Decode(&raw); err != nil {
			return set, err
		}
		rules, err := toRules(name, raw)
		if err != nil {
			return set, err
		}
		set.Categories = append(set.Categories, models.RuleCategory{Name: name, Rules: rules})
	}
	return set, nil
}

func parseTOML(data []byte) (models.StaticRuleSet, error) {
	var set models.StaticRuleSet
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return set, err
	}
	// Keys() is in document order and includes nested keys; keep top-level only
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		rules, err := toRules(name, raw[name])
		if err != nil {
			return set, err
		}
		set.Categories = append(set.Categories, models.RuleCategory{Name: name, Rules: rules})
	}
	return set, nil
}

func toRules(category string, raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		return []string{strings.TrimSpace(v)}, nil
	case []any:
		rules := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("category %q item %d is not a string", category, i)
			}
			if s = strings.TrimSpace(s); s != "" {
				rules = append(rules, s)
			}
		}
		return rules, nil
	default:
		return nil, fmt.Errorf("category %q must be a list of strings", category)
	}
}

// LoadLengthGuidance reads a YAML page type -> guidance mapping. Keys are
// lower-cased. A missing file yields a nil map.
func LoadLengthGuidance(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read length guidance: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse length guidance: %w", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out, nil
}
