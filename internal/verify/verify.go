package verify

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultCacheSize = 1024
)

// Verifier checks whether URLs are reachable. Results are memoized in a
// bounded cache so repeated lookups for the same URL skip the network.
// Cached results can go stale; an image disappearing after being cached
// as reachable is an accepted tradeoff.
type Verifier struct {
	httpClient *http.Client

	mu    sync.Mutex
	memo  map[string]bool
	order []string // insertion order, oldest first
	cap   int
}

// Config holds configuration for the verifier.
type Config struct {
	Timeout   time.Duration
	CacheSize int
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// New creates a new Verifier.
func New(cfg Config) *Verifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &Verifier{
		httpClient: client,
		memo:       make(map[string]bool),
		cap:        size,
	}
}

// Exists reports whether rawURL points at something reachable. A HEAD
// request with any status below 400 counts as existing. URLs without a
// scheme, transport errors and timeouts all report false; Exists never
// returns an error.
func (v *Verifier) Exists(ctx context.Context, rawURL string) bool {
	if rawURL == "" {
		return false
	}

	v.mu.Lock()
	if cached, ok := v.memo[rawURL]; ok {
		v.mu.Unlock()
		return cached
	}
	v.mu.Unlock()

	exists := v.check(ctx, rawURL)

	v.mu.Lock()
	if _, ok := v.memo[rawURL]; !ok {
		if len(v.memo) >= v.cap {
			oldest := v.order[0]
			v.order = v.order[1:]
			delete(v.memo, oldest)
		}
		v.memo[rawURL] = exists
		v.order = append(v.order, rawURL)
	}
	v.mu.Unlock()

	return exists
}

func (v *Verifier) check(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		slog.Debug("existence check failed", "url", rawURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}

// CacheLen returns the number of memoized results.
func (v *Verifier) CacheLen() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.memo)
}
