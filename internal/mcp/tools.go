// ABOUTME: MCP tool definitions and registration for the pagesmith server
// ABOUTME: Exposes rule retrieval, rule building, prompt assembly and tone analysis
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/pagesmith/internal/bootstrap"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, app *bootstrap.App) *Handlers {
	handlers := NewHandlers(app)

	// 1. query_rules - Semantic search over the golden rule store
	server.AddTool(mcp.Tool{
		Name:        "query_rules",
		Description: "Retrieve the golden rule snippets most similar to a query. Optional tags keep only chunks sharing at least one of them.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Query text, e.g. 'dental | home | Portland | book a visit'",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: configured top k)",
				},
				"tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tags every returned chunk must carry (e.g. 'seo', 'cta')",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.QueryRules)

	// 2. build_rules - Rebuild the rule store from text and documents
	server.AddTool(mcp.Tool{
		Name:        "build_rules",
		Description: "Replace the golden rule store with chunks of the given text and documents, then save it. Empty input clears the store.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Golden rule text",
				},
				"files": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Paths to .txt, .md, .pdf or .docx rule documents appended after the text",
				},
				"base_tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tags added to every chunk",
				},
			},
		},
	}, handlers.BuildRules)

	// 3. rules_status - Rule store statistics
	server.AddTool(mcp.Tool{
		Name:        "rules_status",
		Description: "Report whether the golden rule store is ready, its chunk count, dimension, index kind and tag counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.RulesStatus)

	// 4. assemble_prompt - Build the page generation prompt without calling a model
	server.AddTool(mcp.Tool{
		Name:        "assemble_prompt",
		Description: "Retrieve rules for a page and assemble the full generation prompt plus diagnostics.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"brand_name":          stringProp("Brand name"),
				"industry":            stringProp("Industry or niche"),
				"location":            stringProp("Primary location"),
				"voice_tone":          stringProp("Voice and tone"),
				"target_audience":     stringProp("Target audience"),
				"page_type":           stringProp("home, service, sub service, about or location"),
				"page_name":           stringProp("Page name"),
				"slug":                stringProp("Page slug"),
				"service":             stringProp("Service focus"),
				"intent":              stringProp("Audience intent"),
				"reference_copy":      stringProp("Reference copy whose tone should be mirrored"),
				"primary_keyword":     stringProp("Page primary SEO keyword"),
				"supporting_keywords": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "Page supporting keywords"},
			},
			Required: []string{"brand_name", "page_type"},
		},
	}, handlers.AssemblePrompt)

	// 5. analyze_tone - Tone profile of reference copy
	server.AddTool(mcp.Tool{
		Name:        "analyze_tone",
		Description: "Summarize sentence length, CTA count, headline ratio and tone indicators of a piece of copy.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": stringProp("Copy to analyze"),
			},
			Required: []string{"text"},
		},
	}, handlers.AnalyzeTone)

	return handlers
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}
