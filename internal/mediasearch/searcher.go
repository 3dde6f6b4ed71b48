package mediasearch

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/palacelab/cardgen/internal/keywords"
)

// TopPerStrategy caps how many scored candidates one strategy attempt may
// contribute.
const TopPerStrategy = 3

// decorativeMarkers flag file names that are navigation chrome or page
// decoration rather than content.
var decorativeMarkers = []string{
	"icon",
	"logo",
	"button",
	"bullet",
	"arrow",
	"pixel",
	"category",
	"nav",
	"disambig",
	"edit",
	"commons-",
	"wiki",
	"ambox",
	"question_mark",
}

// Result is a verified candidate image URL with its relevance score
// against the query that found it.
type Result struct {
	URL   string
	Score int
}

// ExistenceChecker reports URL reachability. Implemented by
// verify.Verifier.
type ExistenceChecker interface {
	Exists(ctx context.Context, url string) bool
}

// MediaLister returns the media file names for a query. Implemented by
// WikiClient.
type MediaLister interface {
	PageImages(ctx context.Context, query string) ([]string, error)
}

// Searcher resolves a topic to verified, relevance-ranked image URLs by
// walking the strategy sequence.
type Searcher struct {
	wiki        MediaLister
	verifier    ExistenceChecker
	maxAttempts int
}

// SearcherConfig holds configuration for the searcher.
type SearcherConfig struct {
	Wiki        MediaLister
	Verifier    ExistenceChecker
	MaxAttempts int
}

// NewSearcher creates a new Searcher.
func NewSearcher(cfg SearcherConfig) *Searcher {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &Searcher{
		wiki:        cfg.Wiki,
		verifier:    cfg.Verifier,
		maxAttempts: maxAttempts,
	}
}

// Search runs the strategy sequence for topic and returns as soon as one
// attempt produces at least one verified image. Results are deduplicated
// by URL and ordered by descending relevance score, discovery order
// breaking ties. An exhausted sequence yields an empty result, never an
// error; per-attempt failures are logged and skipped.
func (s *Searcher) Search(ctx context.Context, topic string) []Result {
	var results []Result
	seen := make(map[string]bool)

	for _, query := range Strategies(topic, s.maxAttempts) {
		files, err := s.wiki.PageImages(ctx, query)
		if err != nil {
			slog.Warn("media search attempt failed", "query", query, "error", err)
			continue
		}

		attempt := s.scoreCandidates(ctx, query, files)
		for _, r := range attempt {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			results = append(results, r)
		}

		if len(results) > 0 {
			slog.Debug("media search succeeded",
				"topic", topic,
				"query", query,
				"results", len(results),
			)
			return results
		}
	}

	slog.Debug("media search exhausted", "topic", topic, "attempts", s.maxAttempts)
	return nil
}

func (s *Searcher) scoreCandidates(ctx context.Context, query string, files []string) []Result {
	var scored []Result
	for _, file := range files {
		name := strings.TrimPrefix(file, "File:")
		if !usableFileName(name) {
			continue
		}

		candidateURL := FilePathURL(name)
		if !s.verifier.Exists(ctx, candidateURL) {
			continue
		}

		scored = append(scored, Result{
			URL:   candidateURL,
			Score: keywords.Score(query, CleanFileName(name)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > TopPerStrategy {
		scored = scored[:TopPerStrategy]
	}
	return scored
}

func usableFileName(name string) bool {
	if !HasImageExtension(name) {
		return false
	}
	lower := strings.ToLower(name)
	for _, marker := range decorativeMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}

// CleanFileName strips the extension from a media file name and replaces
// separators with spaces, leaving text suitable for keyword comparison.
func CleanFileName(name string) string {
	name = strings.TrimPrefix(name, "File:")
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
