package enrich

import (
	"context"
	"log/slog"
	"strings"

	"github.com/palacelab/cardgen/internal/cards"
	"github.com/palacelab/cardgen/internal/mediasearch"
)

// Searcher resolves a topic to ranked, verified image candidates.
// Implemented by mediasearch.Searcher.
type Searcher interface {
	Search(ctx context.Context, topic string) []mediasearch.Result
}

// MatchVerifier decides whether an image fits a card's text. Implemented
// by match.Verifier.
type MatchVerifier interface {
	Matches(ctx context.Context, imageURL, caption, title, content string) (bool, string)
}

// ExistenceChecker reports URL reachability. Implemented by
// verify.Verifier.
type ExistenceChecker interface {
	Exists(ctx context.Context, url string) bool
}

// Orchestrator turns candidate cards into finalized cards: it validates
// model-proposed images, searches for substitutes when needed, and
// guarantees that every emitted image URL passed existence verification.
type Orchestrator struct {
	search  Searcher
	match   MatchVerifier
	checker ExistenceChecker
	ids     *cards.IDGenerator
}

// Config holds configuration for the orchestrator.
type Config struct {
	Searcher Searcher
	Match    MatchVerifier
	Checker  ExistenceChecker
	IDs      *cards.IDGenerator
}

// New creates a new Orchestrator.
func New(cfg Config) *Orchestrator {
	ids := cfg.IDs
	if ids == nil {
		ids = &cards.IDGenerator{}
	}
	return &Orchestrator{
		search:  cfg.Searcher,
		match:   cfg.Match,
		checker: cfg.Checker,
		ids:     ids,
	}
}

// Enrich finalizes the candidates for one generation request. Cards are
// processed in order; a card that cannot be enriched is still emitted
// with no image. Searches are cached per title for the lifetime of this
// call so repeated titles cost one search.
func (o *Orchestrator) Enrich(ctx context.Context, topic string, candidates []cards.Candidate) []cards.Card {
	titleCache := make(map[string][]mediasearch.Result)

	out := make([]cards.Card, 0, len(candidates))
	for _, c := range candidates {
		image, caption := o.resolveImage(ctx, topic, c, titleCache)
		if image == "" {
			caption = ""
		}
		out = append(out, cards.Card{
			ID:      o.ids.Next(),
			Title:   c.Title,
			Content: c.Content,
			Image:   image,
			Caption: caption,
		})
	}
	return out
}

func (o *Orchestrator) resolveImage(ctx context.Context, topic string, c cards.Candidate, titleCache map[string][]mediasearch.Result) (string, string) {
	proposed := mediasearch.Normalize(strings.TrimSpace(c.Image))

	// Last-resort fallback: the model's own image when it is reachable
	// but failed caption verification.
	fallback := ""

	if acceptableImageURL(proposed) && o.checker.Exists(ctx, proposed) {
		if ok, caption := o.match.Matches(ctx, proposed, c.Caption, c.Title, c.Content); ok {
			return proposed, caption
		}
		slog.Debug("proposed image did not match card text", "title", c.Title, "url", proposed)
		fallback = proposed
	}

	results, cached := titleCache[c.Title]
	if !cached {
		results = o.search.Search(ctx, c.Title)
		if len(results) == 0 && topic != "" {
			results = o.search.Search(ctx, topic)
		}
		titleCache[c.Title] = results
	}

	for _, r := range results {
		if ok, caption := o.match.Matches(ctx, r.URL, c.Caption, c.Title, c.Content); ok {
			return r.URL, caption
		}
	}

	// Nothing verified against the caption; take the highest-ranked
	// candidate as a best effort.
	if len(results) > 0 {
		return results[0].URL, c.Caption
	}
	if fallback != "" {
		return fallback, c.Caption
	}

	slog.Debug("no image found for card", "title", c.Title)
	return "", ""
}

// acceptableImageURL gates model-proposed URLs: HTTP(S) scheme and a
// recognized image extension. Anything else goes straight to search.
func acceptableImageURL(rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return false
	}
	return mediasearch.HasImageExtension(rawURL)
}
