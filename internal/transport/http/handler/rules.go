// ABOUTME: Rule store endpoints: status, rebuild from text, and similarity query
// ABOUTME: A rebuild is persisted to the configured backend before responding
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/bootstrap"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/rulestore"
	"github.com/harper/pagesmith/internal/transport/http/response"
)

type RulesHandler struct {
	app *bootstrap.App
}

type BuildRulesRequest struct {
	Text     string   `json:"text"`
	BaseTags []string `json:"base_tags"`
}

type QueryRulesRequest struct {
	Text string   `json:"text" binding:"required"`
	TopK int      `json:"top_k" binding:"omitempty,min=1,max=100"`
	Tags []string `json:"tags"`
}

func NewRulesHandler(app *bootstrap.App) *RulesHandler {
	return &RulesHandler{app: app}
}

func (h *RulesHandler) Status(c *gin.Context) {
	response.OK(c, h.app.Store.Stats())
}

func (h *RulesHandler) Build(c *gin.Context) {
	var req BuildRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "no rule text provided")
		return
	}

	chunks, err := h.app.Store.Build(c.Request.Context(), req.Text, req.BaseTags)
	if err != nil {
		if errors.Is(err, rulestore.ErrEmbedding) {
			response.Error(c, http.StatusBadGateway, response.CodeEmbedding, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		}
		return
	}
	if err := h.app.SaveStore(); err != nil {
		h.app.Logger.Error("Failed to persist rule store", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "rule store built but not saved")
		return
	}
	response.OK(c, gin.H{"chunks": len(chunks), "stats": h.app.Store.Stats()})
}

func (h *RulesHandler) Query(c *gin.Context) {
	var req QueryRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	topK := req.TopK
	if topK == 0 {
		topK = h.app.Config.TopK
	}

	results := h.app.Store.Query(c.Request.Context(), req.Text, topK, req.Tags)
	hits := make([]ruleHit, 0, len(results))
	for _, chunk := range results {
		hits = append(hits, newRuleHit(chunk))
	}
	response.OK(c, gin.H{"results": hits})
}

// ruleHit omits the embedding from query responses
type ruleHit struct {
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`
	Score float64  `json:"score"`
}

func newRuleHit(chunk models.RuleChunk) ruleHit {
	hit := ruleHit{Text: chunk.Text, Tags: chunk.Metadata.Tags}
	if chunk.Metadata.Score != nil {
		hit.Score = *chunk.Metadata.Score
	}
	if hit.Tags == nil {
		hit.Tags = []string{}
	}
	return hit
}
