// Package formatter converts finalized cards into the shape the
// downstream memory-palace client consumes.
package formatter

import (
	"strconv"

	"github.com/palacelab/cardgen/internal/cards"
)

// DefaultColor is the card color the client renders when nothing else is
// specified.
const DefaultColor = "#FFD700"

// Position is a 3D placement hint. The client assigns real positions;
// the service always emits the origin.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PlacedCard is one card in the downstream format.
type PlacedCard struct {
	ID          string   `json:"id"`
	Anchor      string   `json:"anchor"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Position    Position `json:"position"`
	ImageURL    string   `json:"imageUrl"`
	Color       string   `json:"color"`
	Caption     string   `json:"caption"`
}

// Format converts finalized cards to the downstream shape. The mapping
// is fixed: content becomes description, image becomes imageUrl, anchor
// and position are placeholders the client fills in.
func Format(cs []cards.Card) []PlacedCard {
	out := make([]PlacedCard, 0, len(cs))
	for _, c := range cs {
		out = append(out, PlacedCard{
			ID:          strconv.Itoa(c.ID),
			Anchor:      "Null",
			Title:       c.Title,
			Description: c.Content,
			ImageURL:    c.Image,
			Color:       DefaultColor,
			Caption:     c.Caption,
		})
	}
	return out
}
