package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/palacelab/cardgen/internal/cards"
	"github.com/palacelab/cardgen/internal/formatter"
	"github.com/palacelab/cardgen/internal/store"
)

// CardGenerator produces candidate cards for a topic. Implemented by
// generator.Generator.
type CardGenerator interface {
	Generate(ctx context.Context, topic string) ([]cards.Candidate, error)
}

// Enricher finalizes candidate cards. Implemented by
// enrich.Orchestrator.
type Enricher interface {
	Enrich(ctx context.Context, topic string, candidates []cards.Candidate) []cards.Card
}

// SnapshotStore persists and serves the latest card list. Implemented by
// store.Snapshot.
type SnapshotStore interface {
	Save(cs []cards.Card) error
	Load() ([]cards.Card, error)
}

// HistoryStore records generations. Implemented by store.History.
type HistoryStore interface {
	Record(ctx context.Context, topic string, cs []cards.Card) (int64, error)
	Recent(ctx context.Context, limit int) ([]store.Generation, error)
}

// RouterConfig holds the dependencies of the generation API.
type RouterConfig struct {
	Generator CardGenerator
	Enricher  Enricher
	Snapshot  SnapshotStore
	// History may be nil; generations are then not recorded.
	History HistoryStore
}

// NewRouter builds the generation API: card generation, health checks
// and generation history. CORS is wide open; every known consumer is a
// browser or headset client on another origin.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend is working!"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/generate-notes", generateNotes(cfg))

	if cfg.History != nil {
		r.GET("/history", history(cfg.History))
	}

	return r
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func generateNotes(cfg RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
			return
		}
		if req.Prompt == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "prompt is required"})
			return
		}

		ctx := c.Request.Context()

		candidates, err := cfg.Generator.Generate(ctx, req.Prompt)
		if err != nil {
			slog.Error("card generation failed", "topic", req.Prompt, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"detail": "card generation failed"})
			return
		}

		finalized := cfg.Enricher.Enrich(ctx, req.Prompt, candidates)

		if cfg.Snapshot != nil {
			if err := cfg.Snapshot.Save(finalized); err != nil {
				slog.Warn("failed to persist latest cards", "error", err)
			}
		}
		if cfg.History != nil {
			if _, err := cfg.History.Record(ctx, req.Prompt, finalized); err != nil {
				slog.Warn("failed to record generation", "error", err)
			}
		}

		c.JSON(http.StatusOK, finalized)
	}
}

func history(h HistoryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		recent, err := h.Recent(c.Request.Context(), 20)
		if err != nil {
			slog.Error("failed to load history", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to load history"})
			return
		}
		if recent == nil {
			recent = []store.Generation{}
		}
		c.JSON(http.StatusOK, recent)
	}
}

// NewLatestRouter builds the read-only service exposing the most recent
// generation in the downstream client's format. It runs separately from
// the generation API so consumers can poll it without touching the
// model-facing service.
func NewLatestRouter(snapshot SnapshotStore) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	serve := func(c *gin.Context) {
		cs, err := snapshot.Load()
		if err != nil {
			slog.Error("failed to read latest cards", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "error reading latest cards"})
			return
		}
		c.JSON(http.StatusOK, formatter.Format(cs))
	}

	r.GET("/", serve)
	r.GET("/latest-cards", serve)

	return r
}
