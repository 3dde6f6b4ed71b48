package formatter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palacelab/cardgen/internal/cards"
)

func TestFormat(t *testing.T) {
	in := []cards.Card{
		{ID: 3, Title: "Event horizon", Content: "Point of no return.", Image: "https://img.example/x.jpg", Caption: "a diagram"},
		{ID: 4, Title: "Hawking radiation", Content: "Black holes evaporate."},
	}

	out := Format(in)

	require.Len(t, out, 2)
	assert.Equal(t, "3", out[0].ID)
	assert.Equal(t, "Null", out[0].Anchor)
	assert.Equal(t, "Point of no return.", out[0].Description)
	assert.Equal(t, "https://img.example/x.jpg", out[0].ImageURL)
	assert.Equal(t, DefaultColor, out[0].Color)
	assert.Equal(t, Position{}, out[0].Position)
	assert.Empty(t, out[1].ImageURL)
	assert.Empty(t, out[1].Caption)
}

func TestFormat_EmptyInput(t *testing.T) {
	out := Format(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFormat_JSONShape(t *testing.T) {
	b, err := json.Marshal(Format([]cards.Card{{ID: 0, Title: "t", Content: "c"}}))
	require.NoError(t, err)
	assert.JSONEq(t, `[{
		"id": "0",
		"anchor": "Null",
		"title": "t",
		"description": "c",
		"position": {"x": 0, "y": 0, "z": 0},
		"imageUrl": "",
		"color": "#FFD700",
		"caption": ""
	}]`, string(b))
}
