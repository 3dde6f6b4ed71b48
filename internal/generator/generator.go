package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/palacelab/cardgen/internal/cards"
)

// MaxTopicLength bounds the user-supplied topic before it reaches the
// model.
const MaxTopicLength = 100

// Generator produces candidate learning cards for a topic via Claude.
type Generator struct {
	claude *ClaudeClient
}

// Config holds configuration for the generator.
type Config struct {
	APIKey string
	Model  string
	// APIURL overrides the production endpoint, mainly for tests.
	APIURL string
}

// New creates a new Generator.
func New(cfg Config) *Generator {
	return &Generator{
		claude: NewClaudeClient(ClaudeConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			APIURL: cfg.APIURL,
		}),
	}
}

// Claude exposes the underlying client so other components (the image
// judge) can share one configured connection.
func (g *Generator) Claude() *ClaudeClient {
	return g.claude
}

// Generate asks the model for candidate cards on topic. The topic is
// truncated to MaxTopicLength characters first. Image URLs in the result
// are untrusted.
func (g *Generator) Generate(ctx context.Context, topic string) ([]cards.Candidate, error) {
	topic = strings.TrimSpace(topic)
	if runes := []rune(topic); len(runes) > MaxTopicLength {
		slog.Debug("topic truncated", "length", len(runes), "max", MaxTopicLength)
		topic = string(runes[:MaxTopicLength])
	}

	response, err := g.claude.Complete(ctx, SystemPrompt, userPromptPrefix+topic)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}

	candidates, err := parseCandidates(response)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	slog.Debug("generated candidate cards", "topic", topic, "count", len(candidates))
	return candidates, nil
}

// parseCandidates decodes the model response, salvaging the JSON array
// when the model wrapped it in prose.
func parseCandidates(response string) ([]cards.Candidate, error) {
	var out []cards.Candidate
	if err := json.Unmarshal([]byte(response), &out); err == nil {
		return out, nil
	}

	arr := extractJSONArray(response)
	if arr == "" {
		return nil, fmt.Errorf("no JSON array found in response")
	}
	if err := json.Unmarshal([]byte(arr), &out); err != nil {
		return nil, fmt.Errorf("parse extracted JSON: %w", err)
	}
	return out, nil
}

// extractJSONArray finds the first bracket-balanced JSON array in text.
func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
