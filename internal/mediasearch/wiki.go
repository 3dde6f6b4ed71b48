package mediasearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultWikiAPIURL = "https://en.wikipedia.org/w/api.php"
	filePathBaseURL   = "https://commons.wikimedia.org/wiki/Special:FilePath/"

	wikiTimeout     = 10 * time.Second
	imagesPerPage   = 50
	searchTopLimit  = 1
)

// WikiClient talks to the MediaWiki action API: keyed page lookup, a
// full-text search fallback, and the list of media files attached to a
// page.
type WikiClient struct {
	apiURL     string
	httpClient *http.Client
	userAgent  string
}

// WikiConfig holds configuration for the wiki client.
type WikiConfig struct {
	APIURL    string
	UserAgent string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// NewWikiClient creates a new MediaWiki API client.
func NewWikiClient(cfg WikiConfig) *WikiClient {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultWikiAPIURL
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = "cardgen/1.0"
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: wikiTimeout}
	}

	return &WikiClient{
		apiURL:     apiURL,
		httpClient: client,
		userAgent:  ua,
	}
}

// wikiImagesResponse is the shape of action=query&prop=images.
type wikiImagesResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Missing *struct{} `json:"missing,omitempty"`
			Images  []struct {
				Title string `json:"title"`
			} `json:"images"`
		} `json:"pages"`
	} `json:"query"`
}

// wikiSearchResponse is the shape of action=query&list=search.
type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// PageImages returns the media file names attached to the page best
// matching query. It first tries the query as an exact page title; when
// that page does not exist it falls back to full-text search and uses the
// top hit. File names come back in the "File:Name.ext" form.
func (c *WikiClient) PageImages(ctx context.Context, query string) ([]string, error) {
	files, found, err := c.imagesForTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	if found {
		return files, nil
	}

	title, err := c.topSearchHit(ctx, query)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, nil
	}

	slog.Debug("no exact page, using search hit", "query", query, "page", title)

	files, _, err = c.imagesForTitle(ctx, title)
	return files, err
}

func (c *WikiClient) imagesForTitle(ctx context.Context, title string) ([]string, bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "images")
	params.Set("imlimit", fmt.Sprintf("%d", imagesPerPage))
	params.Set("titles", title)
	params.Set("redirects", "1")

	var resp wikiImagesResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, false, err
	}

	for id, page := range resp.Query.Pages {
		if id == "-1" || page.Missing != nil {
			return nil, false, nil
		}
		files := make([]string, 0, len(page.Images))
		for _, img := range page.Images {
			files = append(files, img.Title)
		}
		return files, true, nil
	}

	return nil, false, nil
}

func (c *WikiClient) topSearchHit(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", fmt.Sprintf("%d", searchTopLimit))

	var resp wikiSearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}

	if len(resp.Query.Search) == 0 {
		return "", nil
	}
	return resp.Query.Search[0].Title, nil
}

func (c *WikiClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("wiki API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// FilePathURL converts a media file name (with or without the "File:"
// prefix) to the stable Special:FilePath redirect URL for it.
func FilePathURL(fileName string) string {
	name := strings.TrimPrefix(fileName, "File:")
	name = strings.ReplaceAll(name, " ", "_")
	return filePathBaseURL + url.PathEscape(name)
}
