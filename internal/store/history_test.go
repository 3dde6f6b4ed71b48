package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palacelab/cardgen/internal/cards"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	ctx := context.Background()

	h, err := NewHistory(ctx, filepath.Join(t.TempDir(), "cardgen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })

	require.NoError(t, h.Migrate(ctx))
	return h
}

func TestHistory_RecordAndRecent(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	cs := []cards.Card{
		{ID: 0, Title: "a", Content: "first", Image: "https://img.example/a.jpg", Caption: "cap"},
		{ID: 1, Title: "b", Content: "second"},
	}

	genID, err := h.Record(ctx, "black holes", cs)
	require.NoError(t, err)
	assert.Positive(t, genID)

	_, err = h.Record(ctx, "neural networks", nil)
	require.NoError(t, err)

	recent, err := h.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "neural networks", recent[0].Topic, "newest first")
	assert.Equal(t, "black holes", recent[1].Topic)
	assert.Equal(t, 2, recent[1].CardCount)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestHistory_Cards(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	cs := []cards.Card{
		{ID: 5, Title: "a", Content: "first"},
		{ID: 6, Title: "b", Content: "second", Image: "https://img.example/b.png", Caption: "cap"},
	}
	genID, err := h.Record(ctx, "topic", cs)
	require.NoError(t, err)

	got, err := h.Cards(ctx, genID)
	require.NoError(t, err)
	assert.Equal(t, cs, got)
}

func TestHistory_RecentLimit(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := h.Record(ctx, "t", nil)
		require.NoError(t, err)
	}

	recent, err := h.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestHistory_MigrateIsIdempotent(t *testing.T) {
	h := newTestHistory(t)
	require.NoError(t, h.Migrate(context.Background()))
}
