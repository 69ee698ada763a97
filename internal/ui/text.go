package ui

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const atlasSize = 512

type Glyph struct {
	UVMin [2]float32
	UVMax [2]float32
	Size  [2]float32
	Off   [2]float32
	Adv   float32
}

// TextAtlas rasterizes printable ASCII of the Go Regular font into one
// alpha texture.
type TextAtlas struct {
	Image      *image.Alpha
	Glyphs     map[rune]Glyph
	ascent     float32
	lineHeight float32
}

func NewTextAtlas(size float64) (*TextAtlas, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	defer face.Close()

	atlas := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]Glyph)

	x, y := 2, 2
	rowHeight := 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w := bounds.Dx()
		h := bounds.Dy()
		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			break
		}

		if w > 0 && h > 0 && mask != nil {
			draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)
		}

		glyphs[r] = Glyph{
			UVMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			UVMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			Size:  [2]float32{float32(w), float32(h)},
			Off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Adv:   float32(adv) / 64.0,
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	m := face.Metrics()
	return &TextAtlas{
		Image:      atlas,
		Glyphs:     glyphs,
		ascent:     float32(m.Ascent.Ceil()),
		lineHeight: float32(m.Height.Ceil()),
	}, nil
}

func (a *TextAtlas) LineHeight() float32 { return a.lineHeight }

// Measure returns the width of the longest line and the total height.
func (a *TextAtlas) Measure(text string) (float32, float32) {
	maxW, cur := float32(0), float32(0)
	lines := 1
	for _, r := range text {
		if r == '\n' {
			maxW = max(maxW, cur)
			cur = 0
			lines++
			continue
		}
		if g, ok := a.Glyphs[r]; ok {
			cur += g.Adv
		}
	}
	return max(maxW, cur), a.lineHeight * float32(lines)
}
