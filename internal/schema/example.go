// ABOUTME: Renders a Shape as an indented placeholder JSON document
// ABOUTME: Shown to the model so field names and nesting are explicit
package schema

import (
	"encoding/json"
	"strings"
)

// Example renders shape as indented JSON with fields in declaration order
func Example(shape Shape) string {
	var b strings.Builder
	writeExample(&b, shape, 0)
	return b.String()
}

func writeExample(b *strings.Builder, shape Shape, depth int) {
	indent := strings.Repeat("  ", depth)
	switch shape.Kind {
	case KindObject:
		if len(shape.Fields) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, field := range shape.Fields {
			b.WriteString(indent + "  ")
			writeString(b, field.Name)
			b.WriteString(": ")
			writeExample(b, field.Shape, depth+1)
			if i < len(shape.Fields)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(indent + "}")
	case KindList:
		b.WriteString("[\n" + indent + "  ")
		writeExample(b, *shape.Elem, depth+1)
		b.WriteString("\n" + indent + "]")
	default:
		example := shape.Example
		if example == "" {
			example = "string"
		}
		writeString(b, example)
	}
}

func writeString(b *strings.Builder, s string) {
	data, _ := json.Marshal(s)
	b.Write(data)
}
