package match

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/palacelab/cardgen/internal/keywords"
	"github.com/palacelab/cardgen/internal/mediasearch"
)

// MaxCaptionLength bounds captions adopted from the judge.
const MaxCaptionLength = 150

// judgePrompt forces a binary first-token verdict so parsing stays
// trivial even when the model rambles.
const judgePrompt = `Look at the image and decide whether it plausibly illustrates the following learning card.

Title: %s
Content: %s
Caption: %s

Answer with exactly one line. Start with the single word MATCH or MISMATCH.
If it is a match and you can describe the image better than the caption above,
append a colon and a short improved caption, e.g. "MATCH: a spiral galaxy seen edge-on".`

// Judge renders a free-text verdict on whether an image fits a textual
// context. Failures are tolerated; the verdict is advisory.
type Judge interface {
	JudgeImage(ctx context.Context, imageURL, instruction string) (string, error)
}

// Verifier decides whether an image plausibly matches a card's text,
// first by keyword overlap with the image filename, then by asking a
// vision-capable judge.
type Verifier struct {
	judge Judge
}

// Config holds configuration for the verifier.
type Config struct {
	// Judge may be nil; verification then relies on the cheap path only.
	Judge Judge
}

// New creates a new match Verifier.
func New(cfg Config) *Verifier {
	return &Verifier{judge: cfg.Judge}
}

// Matches reports whether imageURL plausibly illustrates the given
// caption/title/content, and returns the caption to use. An empty
// caption or URL can never be verified and yields (false, ""). When the
// judge supplies an improved caption it replaces the original, truncated
// to MaxCaptionLength.
func (v *Verifier) Matches(ctx context.Context, imageURL, caption, title, content string) (bool, string) {
	if imageURL == "" || caption == "" {
		return false, ""
	}

	if filenameOverlap(imageURL, caption, title) {
		return true, caption
	}

	if v.judge == nil {
		return false, ""
	}

	instruction := fmt.Sprintf(judgePrompt, title, content, caption)
	verdict, err := v.judge.JudgeImage(ctx, imageURL, instruction)
	if err != nil {
		slog.Warn("image judge call failed", "url", imageURL, "error", err)
		return false, ""
	}

	matched, improved := parseVerdict(verdict)
	if !matched {
		return false, ""
	}
	if improved != "" {
		return true, Truncate(improved, MaxCaptionLength)
	}
	return true, caption
}

// filenameOverlap is the cheap path: any caption or title keyword
// appearing in the image's cleaned filename counts as a match.
func filenameOverlap(imageURL, caption, title string) bool {
	name := fileNameOf(imageURL)
	if name == "" {
		return false
	}
	cleaned := mediasearch.CleanFileName(name)

	if keywords.Overlaps(keywords.Extract(caption), cleaned) {
		return true
	}
	return keywords.Overlaps(keywords.Extract(title), cleaned)
}

func fileNameOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := parsed.Path
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}

// parseVerdict reads the judge's first token for a match signal and any
// improved caption after the first colon.
func parseVerdict(verdict string) (bool, string) {
	trimmed := strings.TrimSpace(verdict)
	if trimmed == "" {
		return false, ""
	}

	head := trimmed
	improved := ""
	if idx := strings.Index(trimmed, ":"); idx >= 0 {
		head = trimmed[:idx]
		improved = strings.TrimSpace(trimmed[idx+1:])
	}

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return false, ""
	}

	first := strings.ToUpper(strings.Trim(fields[0], ".,!"))
	switch first {
	case "MATCH", "YES":
		return true, improved
	default:
		return false, ""
	}
}

// Truncate shortens s to at most maxLen runes, appending an ellipsis
// when anything was cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
