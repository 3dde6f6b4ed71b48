package app

import (
	"context"

	"github.com/palacelab/cardgen/internal/cards"
	"github.com/palacelab/cardgen/internal/config"
	"github.com/palacelab/cardgen/internal/enrich"
	"github.com/palacelab/cardgen/internal/generator"
	"github.com/palacelab/cardgen/internal/match"
	"github.com/palacelab/cardgen/internal/mediasearch"
	"github.com/palacelab/cardgen/internal/store"
	"github.com/palacelab/cardgen/internal/verify"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Generator *generator.Generator
	Enricher  *enrich.Orchestrator
	Snapshot  *store.Snapshot
	History   *store.History
}

// Options controls which optional dependencies New wires up.
type Options struct {
	// WithHistory opens the SQLite generation history. Commands that
	// never record generations leave it off.
	WithHistory bool
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	gen := generator.New(generator.Config{
		APIKey: cfg.AnthropicAPIKey,
		Model:  cfg.ClaudeModel,
	})

	verifier := verify.New(verify.Config{
		Timeout:   cfg.VerifyTimeout,
		CacheSize: cfg.VerifyCacheSize,
	})

	wiki := mediasearch.NewWikiClient(mediasearch.WikiConfig{
		APIURL: cfg.WikiAPIURL,
	})

	searcher := mediasearch.NewSearcher(mediasearch.SearcherConfig{
		Wiki:        wiki,
		Verifier:    verifier,
		MaxAttempts: cfg.SearchMaxAttempts,
	})

	// The generation model doubles as the image judge.
	matcher := match.New(match.Config{
		Judge: gen.Claude(),
	})

	enricher := enrich.New(enrich.Config{
		Searcher: searcher,
		Match:    matcher,
		Checker:  verifier,
		IDs:      &cards.IDGenerator{},
	})

	a := &App{
		Config:    cfg,
		Generator: gen,
		Enricher:  enricher,
		Snapshot:  store.NewSnapshot(cfg.LatestCardsPath),
	}

	if opts.WithHistory {
		history, err := store.NewHistory(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		if err := history.Migrate(ctx); err != nil {
			history.Close()
			return nil, err
		}
		a.History = history
	}

	return a, nil
}

// GenerateCards runs the full pipeline for one topic: model generation
// followed by image enrichment.
func (a *App) GenerateCards(ctx context.Context, topic string) ([]cards.Card, error) {
	candidates, err := a.Generator.Generate(ctx, topic)
	if err != nil {
		return nil, err
	}
	return a.Enricher.Enrich(ctx, topic, candidates), nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}
