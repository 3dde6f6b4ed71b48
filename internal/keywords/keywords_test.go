package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "drops stopwords and short tokens",
			input:    "The Theory of Relativity",
			expected: []string{"theory", "relativity"},
		},
		{
			name:     "lowercases and deduplicates",
			input:    "Neural Networks and neural networks",
			expected: []string{"neural", "networks"},
		},
		{
			name:     "splits on punctuation",
			input:    "black-holes: event horizons",
			expected: []string{"black", "holes", "event", "horizons"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "only stopwords",
			input:    "the and of is",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.input))
		})
	}
}

func TestExtract_PreservesOrder(t *testing.T) {
	kws := Extract("Quantum entanglement explained with photons")
	assert.Equal(t, []string{"quantum", "entanglement", "explained", "photons"}, kws)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		expected  int
	}{
		{
			name:      "exact matches score double",
			query:     "albert einstein",
			candidate: "Albert Einstein 1921",
			expected:  4,
		},
		{
			name:      "substring match scores one",
			query:     "photo",
			candidate: "photograph of a nebula",
			expected:  1,
		},
		{
			name:      "no overlap",
			query:     "neural networks",
			candidate: "Eiffel Tower at night",
			expected:  0,
		},
		{
			name:      "substring false positive is accepted",
			query:     "cat",
			candidate: "category listing",
			expected:  1,
		},
		{
			name:      "mixed exact and substring",
			query:     "solar system",
			candidate: "solar systems diagram",
			expected:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.query, tt.candidate))
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps([]string{"einstein"}, "Albert_Einstein.jpg"))
	assert.True(t, Overlaps([]string{"relativ"}, "general relativity"))
	assert.False(t, Overlaps([]string{"newton"}, "Albert Einstein"))
	assert.False(t, Overlaps(nil, "anything"))
}
