// ABOUTME: Prompt assembly, page generation and tone analysis endpoints
// ABOUTME: Schema failures return 422 with the parsed copy so operators can inspect it
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harper/pagesmith/internal/bootstrap"
	"github.com/harper/pagesmith/internal/brief"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/pipeline"
	"github.com/harper/pagesmith/internal/prompt"
	"github.com/harper/pagesmith/internal/schema"
	"github.com/harper/pagesmith/internal/transport/http/response"
)

type PagesHandler struct {
	app *bootstrap.App
}

type PageRequest struct {
	Brief models.Brief     `json:"brief"`
	SEO   *models.SEOEntry `json:"seo"`
}

type ToneRequest struct {
	Text string `json:"text" binding:"required"`
}

func NewPagesHandler(app *bootstrap.App) *PagesHandler {
	return &PagesHandler{app: app}
}

func (h *PagesHandler) bind(c *gin.Context) (pipeline.Request, bool) {
	var req PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return pipeline.Request{}, false
	}
	if err := brief.Validate(&req.Brief); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return pipeline.Request{}, false
	}
	return pipeline.Request{Brief: req.Brief, SEO: req.SEO}, true
}

func (h *PagesHandler) Prompt(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	res, err := h.app.PromptGenerator().PromptFor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		return
	}
	response.OK(c, gin.H{
		"query":       res.Query,
		"tags":        res.Tags,
		"prompt":      res.Prompt.Prompt,
		"diagnostics": res.Prompt.Diagnostics,
	})
}

func (h *PagesHandler) Generate(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	if _, known := schema.ForPageType(req.Brief.Page.PageType); !known {
		response.Error(c, http.StatusBadRequest, response.CodeUnknownPageType, "unsupported page type: "+req.Brief.Page.PageType)
		return
	}
	gen, err := h.app.Generator()
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeModelMissing, err.Error())
		return
	}

	res, err := gen.Generate(c.Request.Context(), req)
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithData(c, http.StatusUnprocessableEntity, response.CodeInvalidOutput, verr.Error(), gin.H{
			"page":             res.Page,
			"validation_error": verr,
			"diagnostics":      res.Prompt.Diagnostics,
		})
	case err != nil && res != nil:
		response.ErrorWithData(c, http.StatusBadGateway, response.CodeModel, err.Error(), gin.H{"raw": res.Raw})
	case err != nil:
		response.Error(c, http.StatusBadGateway, response.CodeModel, err.Error())
	default:
		response.OK(c, gin.H{
			"page":        res.Page,
			"diagnostics": res.Prompt.Diagnostics,
			"duration_ms": res.Duration.Milliseconds(),
		})
	}
}

func (h *PagesHandler) Tone(c *gin.Context) {
	var req ToneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	response.OK(c, prompt.AnalyzeTone(req.Text))
}
