// ABOUTME: MCP tool handler implementations for the pagesmith server
// ABOUTME: Tool failures are reported as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/bootstrap"
	"github.com/harper/pagesmith/internal/brief"
	"github.com/harper/pagesmith/internal/extract"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/pipeline"
	"github.com/harper/pagesmith/internal/prompt"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	app *bootstrap.App
}

// NewHandlers creates handlers over app
func NewHandlers(app *bootstrap.App) *Handlers {
	return &Handlers{app: app}
}

// QueryRules handles the query_rules tool
func (h *Handlers) QueryRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", h.app.Config.TopK)
	if topK <= 0 {
		return mcp.NewToolResultError("top_k must be positive"), nil
	}
	tags := request.GetStringSlice("tags", nil)

	chunks := h.app.Store.Query(ctx, query, topK, tags)
	results := make([]map[string]interface{}, 0, len(chunks))
	for _, chunk := range chunks {
		entry := map[string]interface{}{
			"text": chunk.Text,
			"tags": chunk.Metadata.Tags,
		}
		if chunk.Metadata.Score != nil {
			entry["score"] = *chunk.Metadata.Score
		}
		results = append(results, entry)
	}

	return jsonResult(map[string]interface{}{
		"ready":   h.app.Store.Ready(),
		"results": results,
	})
}

// BuildRules handles the build_rules tool
func (h *Handlers) BuildRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := request.GetString("text", "")
	files := request.GetStringSlice("files", nil)
	baseTags := request.GetStringSlice("base_tags", nil)

	if len(files) > 0 {
		docs, err := extract.Files(files...)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read rule documents: %v", err)), nil
		}
		text = strings.TrimSpace(text + "\n" + docs)
	}
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("no rule text provided"), nil
	}

	chunks, err := h.app.Store.Build(ctx, text, baseTags)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rule build failed: %v", err)), nil
	}
	if err := h.app.SaveStore(); err != nil {
		h.app.Logger.Error("Failed to persist rule store", zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("rules built but not saved: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"chunks": len(chunks),
		"stats":  h.app.Store.Stats(),
	})
}

// RulesStatus handles the rules_status tool
func (h *Handlers) RulesStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.app.Store.Stats())
}

// AssemblePrompt handles the assemble_prompt tool
func (h *Handlers) AssemblePrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b := models.Brief{
		Brand: models.BrandInfo{
			Name:           request.GetString("brand_name", ""),
			Industry:       request.GetString("industry", ""),
			Location:       request.GetString("location", ""),
			VoiceTone:      request.GetString("voice_tone", ""),
			TargetAudience: request.GetString("target_audience", ""),
		},
		Page: models.PageRequest{
			PageDefinition: models.PageDefinition{
				Slug:     request.GetString("slug", ""),
				PageName: request.GetString("page_name", ""),
				PageType: strings.ToLower(strings.TrimSpace(request.GetString("page_type", ""))),
			},
			Service: request.GetString("service", ""),
			Intent:  request.GetString("intent", ""),
		},
		ReferenceCopy: request.GetString("reference_copy", ""),
	}
	if err := brief.Validate(&b); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var seo *models.SEOEntry
	primary := request.GetString("primary_keyword", "")
	supporting := request.GetStringSlice("supporting_keywords", nil)
	if primary != "" || len(supporting) > 0 {
		seo = &models.SEOEntry{Slug: b.Page.Slug, PrimaryKeyword: primary, SupportingKeywords: supporting}
	}

	res, err := h.app.PromptGenerator().PromptFor(ctx, pipeline.Request{Brief: b, SEO: seo})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prompt assembly failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"query":       res.Query,
		"prompt":      res.Prompt.Prompt,
		"diagnostics": res.Prompt.Diagnostics,
	})
}

// AnalyzeTone handles the analyze_tone tool
func (h *Handlers) AnalyzeTone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text argument is required and must be a string"), nil
	}
	return jsonResult(prompt.AnalyzeTone(text))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
