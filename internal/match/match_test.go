package match

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockJudge records calls and returns a canned verdict.
type mockJudge struct {
	verdict string
	err     error
	calls   int
}

func (m *mockJudge) JudgeImage(ctx context.Context, imageURL, instruction string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.verdict, nil
}

func TestMatches_CheapPathSkipsJudge(t *testing.T) {
	judge := &mockJudge{verdict: "MISMATCH"}
	v := New(Config{Judge: judge})

	ok, caption := v.Matches(context.Background(),
		"https://commons.wikimedia.org/wiki/Special:FilePath/Albert_Einstein.jpg",
		"A photo of Albert Einstein",
		"Albert Einstein",
		"Physicist who developed relativity.",
	)

	assert.True(t, ok)
	assert.Equal(t, "A photo of Albert Einstein", caption)
	assert.Zero(t, judge.calls, "cheap path must not invoke the judge")
}

func TestMatches_TitleKeywordsCountToo(t *testing.T) {
	v := New(Config{})

	ok, caption := v.Matches(context.Background(),
		"https://example.com/Relativity_lecture.jpg",
		"A blackboard full of equations",
		"General Relativity",
		"",
	)

	assert.True(t, ok)
	assert.Equal(t, "A blackboard full of equations", caption)
}

func TestMatches_EmptyInputsNeverMatch(t *testing.T) {
	judge := &mockJudge{verdict: "MATCH"}
	v := New(Config{Judge: judge})

	ok, caption := v.Matches(context.Background(), "", "a caption", "title", "content")
	assert.False(t, ok)
	assert.Empty(t, caption)

	ok, caption = v.Matches(context.Background(), "https://example.com/x.jpg", "", "title", "content")
	assert.False(t, ok)
	assert.Empty(t, caption)

	assert.Zero(t, judge.calls)
}

func TestMatches_JudgeVerdicts(t *testing.T) {
	tests := []struct {
		name        string
		verdict     string
		wantMatch   bool
		wantCaption string
	}{
		{
			name:        "plain match keeps caption",
			verdict:     "MATCH",
			wantMatch:   true,
			wantCaption: "original caption",
		},
		{
			name:        "match with improved caption",
			verdict:     "MATCH: a spiral galaxy seen edge-on",
			wantMatch:   true,
			wantCaption: "a spiral galaxy seen edge-on",
		},
		{
			name:        "yes counts as match",
			verdict:     "Yes, this fits well",
			wantMatch:   true,
			wantCaption: "original caption",
		},
		{
			name:      "mismatch",
			verdict:   "MISMATCH: shows something unrelated",
			wantMatch: false,
		},
		{
			name:      "rambling answer without verdict",
			verdict:   "It is hard to say what this depicts.",
			wantMatch: false,
		},
		{
			name:      "empty verdict",
			verdict:   "",
			wantMatch: false,
		},
		{
			name:      "leading colon leaves no verdict token",
			verdict:   ": a spiral galaxy seen edge-on",
			wantMatch: false,
		},
		{
			name:      "whitespace before colon",
			verdict:   "   : shows a nebula",
			wantMatch: false,
		},
		{
			name:      "whitespace-only verdict",
			verdict:   "   \n\t  ",
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			judge := &mockJudge{verdict: tt.verdict}
			v := New(Config{Judge: judge})

			// Filename shares no keywords with the text, forcing the judge path.
			ok, caption := v.Matches(context.Background(),
				"https://example.com/IMG_20240101_0042.jpg",
				"original caption",
				"Quantum tunneling",
				"Particles crossing classically forbidden barriers.",
			)

			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.wantCaption, caption)
			} else {
				assert.Empty(t, caption)
			}
			assert.Equal(t, 1, judge.calls)
		})
	}
}

func TestMatches_JudgeFailureDegradesToNoMatch(t *testing.T) {
	judge := &mockJudge{err: errors.New("api unavailable")}
	v := New(Config{Judge: judge})

	ok, caption := v.Matches(context.Background(),
		"https://example.com/IMG_0001.jpg",
		"original caption",
		"Quantum tunneling",
		"",
	)

	assert.False(t, ok)
	assert.Empty(t, caption)
}

func TestMatches_ImprovedCaptionTruncated(t *testing.T) {
	long := strings.Repeat("very long caption ", 20)
	judge := &mockJudge{verdict: "MATCH: " + long}
	v := New(Config{Judge: judge})

	ok, caption := v.Matches(context.Background(),
		"https://example.com/IMG_0001.jpg",
		"original caption",
		"Quantum tunneling",
		"",
	)

	require.True(t, ok)
	assert.LessOrEqual(t, len([]rune(caption)), MaxCaptionLength)
	assert.True(t, strings.HasSuffix(caption, "..."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdefgh", 6))
}
