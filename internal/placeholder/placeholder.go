// Package placeholder renders local stand-in icons for cards without an
// image. These are cosmetic only and are never injected into finalized
// cards.
package placeholder

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultSize is the rendered icon edge length in pixels.
const DefaultSize = 256

// palette holds the background colors icons cycle through, keyed by a
// hash of the topic so the same topic always gets the same color.
var palette = []string{
	"#FFD700",
	"#6FA8DC",
	"#93C47D",
	"#E06666",
	"#8E7CC3",
	"#F6B26B",
}

// Render draws a rounded square in a topic-derived color with the
// topic's initial letter centered on it, returned as PNG bytes.
func Render(topic string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}

	dc := gg.NewContext(size, size)
	dc.SetHexColor(colorFor(topic))

	margin := float64(size) / 16
	radius := float64(size) / 8
	dc.DrawRoundedRectangle(margin, margin, float64(size)-2*margin, float64(size)-2*margin, radius)
	dc.Fill()

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(font, &truetype.Options{Size: float64(size) / 2})
	dc.SetFontFace(face)

	dc.SetHexColor("#FFFFFF")
	dc.DrawStringAnchored(initialOf(topic), float64(size)/2, float64(size)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func colorFor(topic string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(topic))))
	return palette[int(h.Sum32())%len(palette)]
}

func initialOf(topic string) string {
	for _, r := range strings.TrimSpace(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return "?"
}
