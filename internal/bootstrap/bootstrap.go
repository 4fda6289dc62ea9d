// ABOUTME: Wires configuration into the rule store, storage backend, model client and pipeline
// ABOUTME: Shared by the CLI commands, the HTTP server and the MCP server
package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/config"
	"github.com/harper/pagesmith/internal/index"
	"github.com/harper/pagesmith/internal/llm"
	"github.com/harper/pagesmith/internal/logging"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/pipeline"
	"github.com/harper/pagesmith/internal/prompt"
	"github.com/harper/pagesmith/internal/rules"
	"github.com/harper/pagesmith/internal/rulestore"
	"github.com/harper/pagesmith/internal/storage"
	"github.com/harper/pagesmith/internal/storage/charm"
	"github.com/harper/pagesmith/internal/storage/sqlite"
)

// ErrNoModel is returned when generation is requested without an API key
var ErrNoModel = errors.New("OPENAI_API_KEY is not set; generation is unavailable")

// App holds the long-lived components of one process
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	Backend     storage.Backend
	DB          *sqlite.DB
	Runs        *sqlite.RunStore
	Embedder    rulestore.Embedder
	LLM         *llm.OpenAIClient
	Completer   pipeline.Completer
	Store       *rulestore.Store
	StaticRules models.StaticRuleSet
	Assembler   *prompt.Assembler
	StartedAt   time.Time
}

// New builds an App from cfg. The saved rule store is loaded if present.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	app := &App{Config: cfg, Logger: logger, StartedAt: time.Now()}

	db, err := sqlite.Open(cfg.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	app.DB = db
	app.Runs = sqlite.NewRunStore(db)

	backend, err := NewBackend(cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.Backend = backend

	embedder, client, err := NewEmbedder(cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Embedder, app.LLM = embedder, client
	if client != nil {
		app.Completer = client
	}

	builder, err := index.BuilderFor(index.Kind(cfg.IndexMode))
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Store = rulestore.Load(backend, cfg.IndexPrefix, embedder,
		rulestore.WithIndexBuilder(builder),
		rulestore.WithChunking(cfg.ChunkSize, cfg.ChunkOverlap),
		rulestore.WithEmbedTimeout(cfg.Timeout*2),
		rulestore.WithLogger(logger.Named("rulestore")),
	)

	if cfg.StaticRulesPath != "" {
		app.StaticRules, err = rules.LoadStatic(cfg.StaticRulesPath)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	var guidance map[string]string
	if cfg.LengthGuidancePath != "" {
		guidance, err = rules.LoadLengthGuidance(cfg.LengthGuidancePath)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
	}
	app.Assembler = prompt.NewAssembler(guidance)

	return app, nil
}

// NewBackend returns the snapshot backend named by cfg.Storage. The sqlite
// backend shares db.
func NewBackend(cfg *config.Config, db *sqlite.DB) (storage.Backend, error) {
	switch cfg.Storage {
	case config.StorageFile, "":
		return storage.NewFileBackend(), nil
	case config.StorageSQLite:
		if db == nil {
			return nil, errors.New("sqlite storage requires an open database")
		}
		return sqlite.NewSnapshotStore(db), nil
	case config.StorageCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:     cfg.CharmHost,
			DBName:   cfg.CharmDBName,
			AutoSync: cfg.AutoSync,
		})
		if err != nil {
			return nil, err
		}
		return charm.NewBackend(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// NewEmbedder returns the OpenAI client as embedder when a key is configured,
// otherwise the offline hash embedder and a nil client.
func NewEmbedder(cfg *config.Config, logger *zap.Logger) (rulestore.Embedder, *llm.OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		logging.OrNop(logger).Warn("OPENAI_API_KEY not set; using offline hash embeddings")
		return llm.NewHashEmbedder(llm.DefaultHashDimension), nil, nil
	}
	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		BaseURL:        cfg.OpenAIBaseURL,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Temperature:    0.4,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}
	return client, client, nil
}

// Generator returns a pipeline over the loaded store and the completion client
func (a *App) Generator() (*pipeline.Generator, error) {
	if a.Completer == nil {
		return nil, ErrNoModel
	}
	return a.newGenerator(a.Completer), nil
}

// PromptGenerator returns a pipeline that can assemble prompts without a model
func (a *App) PromptGenerator() *pipeline.Generator {
	return a.newGenerator(nil)
}

func (a *App) newGenerator(completer pipeline.Completer) *pipeline.Generator {
	return pipeline.NewGenerator(a.Store, completer,
		pipeline.WithStaticRules(a.StaticRules),
		pipeline.WithAssembler(a.Assembler),
		pipeline.WithTopK(a.Config.TopK),
		pipeline.WithRequiredTags(a.Config.RequireTags),
		pipeline.WithRecorder(a.Runs),
		pipeline.WithLogger(a.Logger.Named("pipeline")),
	)
}

// SaveStore persists the rule store to the configured backend
func (a *App) SaveStore() error {
	return a.Store.Save(a.Backend, a.Config.IndexPrefix)
}

// Close releases the backend and database
func (a *App) Close() error {
	var errs []error
	if a.Backend != nil {
		errs = append(errs, a.Backend.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
