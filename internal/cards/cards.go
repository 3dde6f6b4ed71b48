package cards

import "sync/atomic"

// Candidate is a card as proposed by the generation model. The image URL
// is untrusted: the model may have fabricated it.
type Candidate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
	Caption string `json:"caption"`
}

// Card is a finalized learning card. Image is either empty or a URL that
// passed existence verification. Caption is empty whenever Image is empty.
type Card struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Caption string `json:"caption"`
}

// IDGenerator hands out process-wide monotonic card IDs, starting at 0.
// Safe for concurrent use.
type IDGenerator struct {
	next atomic.Int64
}

// Next returns the next card ID.
func (g *IDGenerator) Next() int {
	return int(g.next.Add(1)) - 1
}
