// ABOUTME: Parses model output into a JSON object
// ABOUTME: Falls back to the outermost brace pair when the model wraps JSON in prose
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON decodes raw as a JSON object. When raw has surrounding text,
// the span from the first '{' to the last '}' is tried before giving up.
func ExtractJSON(raw string) (map[string]any, error) {
	var out map[string]any
	err := json.Unmarshal([]byte(raw), &out)
	if err == nil && out != nil {
		return out, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		var inner map[string]any
		if innerErr := json.Unmarshal([]byte(raw[start:end+1]), &inner); innerErr == nil && inner != nil {
			return inner, nil
		}
	}
	if err == nil {
		err = fmt.Errorf("top-level value is not an object")
	}
	return nil, fmt.Errorf("failed to parse model output as JSON: %w", err)
}
