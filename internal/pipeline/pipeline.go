// ABOUTME: Page generation pipeline: retrieve rules, assemble the prompt, call the model, validate
// ABOUTME: Validation failures are returned with the partial result so operators can inspect output
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/logging"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/prompt"
	"github.com/harper/pagesmith/internal/schema"
)

// SystemPrompt frames every completion request
const SystemPrompt = `You are a senior web and SEO copywriter at a digital agency.

Write production-ready website copy that matches the brand context and style profile.
Be specific and benefit-first for the target audience. Avoid filler and cliches.
Use the primary keyword naturally; never stuff keywords.

Return a single valid JSON object that matches the provided schema exactly.
Do not add commentary or markdown outside the JSON.`

// Retriever returns the golden rule chunks most relevant to a query
type Retriever interface {
	Query(ctx context.Context, text string, topK int, requiredTags []string) []models.RuleChunk
}

// Completer sends a system and user message to a chat model and returns its reply
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Recorder persists an audit record for each generation
type Recorder interface {
	Record(run *models.GenerationRun) error
}

var pageTypeTags = map[string][]string{
	models.PageTypeHome:       {"structure", "cta"},
	models.PageTypeService:    {"seo", "cta"},
	models.PageTypeSubService: {"seo", "cta"},
	models.PageTypeAbout:      {"tone"},
	models.PageTypeLocation:   {"seo"},
}

// RequiredTags returns the tags retrieved chunks must carry for pageType
func RequiredTags(pageType string) []string {
	tags := pageTypeTags[pageType]
	if tags == nil {
		return nil
	}
	return append([]string(nil), tags...)
}

// Generator runs the generation pipeline for one page at a time
type Generator struct {
	retriever   Retriever
	completer   Completer
	assembler   *prompt.Assembler
	static      models.StaticRuleSet
	topK        int
	requireTags bool
	recorder    Recorder
	logger      *zap.Logger
	now         func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithStaticRules sets the always-applied rule set
func WithStaticRules(set models.StaticRuleSet) Option {
	return func(g *Generator) { g.static = set }
}

// WithAssembler replaces the default prompt assembler
func WithAssembler(a *prompt.Assembler) Option {
	return func(g *Generator) {
		if a != nil {
			g.assembler = a
		}
	}
}

// WithTopK sets how many rule chunks are retrieved per page
func WithTopK(k int) Option {
	return func(g *Generator) {
		if k > 0 {
			g.topK = k
		}
	}
}

// WithRequiredTags toggles page-type tag filtering of retrieved chunks
func WithRequiredTags(enabled bool) Option {
	return func(g *Generator) { g.requireTags = enabled }
}

// WithRecorder records every run, successful or not
func WithRecorder(r Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = logging.OrNop(l) }
}

// NewGenerator creates a Generator over a rule retriever and a chat model
func NewGenerator(retriever Retriever, completer Completer, opts ...Option) *Generator {
	g := &Generator{
		retriever:   retriever,
		completer:   completer,
		assembler:   prompt.NewAssembler(nil),
		topK:        5,
		requireTags: true,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request is one page to generate
type Request struct {
	Brief models.Brief
	SEO   *models.SEOEntry
}

// Result is the outcome of one generation
type Result struct {
	Query    string
	Tags     []string
	Prompt   *prompt.Result
	Raw      string
	Page     map[string]any
	Schema   bool
	Duration time.Duration
}

// PromptFor retrieves rules and assembles the prompt without calling the model
func (g *Generator) PromptFor(ctx context.Context, req Request) (*Result, error) {
	b := req.Brief
	pageType := b.Page.PageType

	query := prompt.BuildQueryText(prompt.QueryParts{
		Industry: b.Brand.Industry,
		PageType: pageType,
		Location: b.Brand.Location,
		Intent:   b.Page.Intent,
		Tone:     b.Brand.VoiceTone,
		Service:  b.Page.Service,
	})
	var tags []string
	if g.requireTags {
		tags = RequiredTags(pageType)
	}

	var dynamic []models.RuleChunk
	if g.retriever != nil {
		dynamic = g.retriever.Query(ctx, query, g.topK, tags)
	}

	shape, hasShape := schema.ForPageType(pageType)
	example := ""
	if hasShape {
		example = schema.Example(shape)
	}

	assembled, err := g.assembler.Assemble(prompt.Input{
		StaticRules:     g.static,
		DynamicRules:    dynamic,
		Brand:           b.Brand,
		Page:            b.Page,
		Keywords:        b.Keywords.WithSEO(req.SEO),
		OnboardingNotes: b.OnboardingNotes,
		BrandBook:       b.BrandBook,
		ReferenceCopy:   b.ReferenceCopy,
		StyleProfile:    b.StyleProfile,
		SchemaExample:   example,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Query: query, Tags: tags, Prompt: assembled, Schema: hasShape}, nil
}

// Generate produces copy for one page. When the model output parses but
// does not match the page shape, the result is returned together with a
// *schema.ValidationError.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if g.completer == nil {
		return nil, errors.New("no completion client configured")
	}
	start := g.now()

	res, err := g.PromptFor(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, err := g.completer.Complete(ctx, SystemPrompt, res.Prompt.Prompt)
	res.Raw = raw
	if err != nil {
		err = fmt.Errorf("completion failed: %w", err)
		g.record(req, res, err)
		return nil, err
	}

	page, err := schema.ExtractJSON(raw)
	if err != nil {
		g.record(req, res, err)
		return res, err
	}
	res.Page = page

	if res.Schema {
		shape, _ := schema.ForPageType(req.Brief.Page.PageType)
		if verr := schema.Validate(shape, page); verr != nil {
			res.Duration = g.now().Sub(start)
			g.record(req, res, verr)
			return res, verr
		}
	}

	res.Duration = g.now().Sub(start)
	g.logger.Info("Generated page",
		zap.String("slug", req.Brief.Page.Slug),
		zap.String("page_type", req.Brief.Page.PageType),
		zap.Int("dynamic_rules", len(res.Prompt.Diagnostics.DynamicRules)),
		zap.Duration("duration", res.Duration))
	g.record(req, res, nil)
	return res, nil
}

func (g *Generator) record(req Request, res *Result, runErr error) {
	if runErr != nil {
		g.logger.Warn("Page generation failed",
			zap.String("slug", req.Brief.Page.Slug),
			zap.Error(runErr))
	}
	if g.recorder == nil {
		return
	}

	run := &models.GenerationRun{
		ID:           res.Prompt.Diagnostics.RunID,
		Slug:         req.Brief.Page.Slug,
		PageType:     req.Brief.Page.PageType,
		Query:        res.Query,
		DynamicCount: len(res.Prompt.Diagnostics.DynamicRules),
		Diagnostics:  res.Prompt.DiagnosticsText,
		Output:       res.Raw,
		CreatedAt:    g.now().UTC(),
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := g.recorder.Record(run); err != nil {
		g.logger.Warn("Failed to record generation run", zap.String("run_id", run.ID), zap.Error(err))
	}
}
