package ui

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex matches ui.wgsl's vertex input.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
	Mode  float32
}

const (
	modeFlat  = 0
	modeGlyph = 1
	modeImage = 2
)

type TextureKind int

const (
	TextureAtlas TextureKind = iota
	TextureViewport
)

// Batch is a run of vertices drawn with one texture bound.
type Batch struct {
	Texture TextureKind
	First   uint32
	Count   uint32
}

type DrawList struct {
	Vertices []Vertex
	Batches  []Batch
}

func (d *DrawList) Reset() {
	d.Vertices = d.Vertices[:0]
	d.Batches = d.Batches[:0]
}

func (d *DrawList) quad(r Rect, uvMin, uvMax [2]float32, color [4]float32, mode float32, tex TextureKind) {
	if n := len(d.Batches); n == 0 || d.Batches[n-1].Texture != tex {
		d.Batches = append(d.Batches, Batch{Texture: tex, First: uint32(len(d.Vertices))})
	}
	x0, y0, x1, y1 := r.Min.X(), r.Min.Y(), r.Max.X(), r.Max.Y()
	v := func(x, y, u, w float32) Vertex {
		return Vertex{Pos: [2]float32{x, y}, UV: [2]float32{u, w}, Color: color, Mode: mode}
	}
	d.Vertices = append(d.Vertices,
		v(x0, y0, uvMin[0], uvMin[1]),
		v(x1, y0, uvMax[0], uvMin[1]),
		v(x0, y1, uvMin[0], uvMax[1]),
		v(x1, y0, uvMax[0], uvMin[1]),
		v(x1, y1, uvMax[0], uvMax[1]),
		v(x0, y1, uvMin[0], uvMax[1]),
	)
	d.Batches[len(d.Batches)-1].Count += 6
}

func (d *DrawList) AddRect(r Rect, color [4]float32) {
	d.quad(r, [2]float32{}, [2]float32{}, color, modeFlat, TextureAtlas)
}

// AddOutline draws the border of r, thickness pixels wide, inside r.
func (d *DrawList) AddOutline(r Rect, color [4]float32, thickness float32) {
	t := thickness
	d.AddRect(Rect{r.Min, mgl32.Vec2{r.Max.X(), r.Min.Y() + t}}, color)
	d.AddRect(Rect{mgl32.Vec2{r.Min.X(), r.Max.Y() - t}, r.Max}, color)
	d.AddRect(Rect{mgl32.Vec2{r.Min.X(), r.Min.Y() + t}, mgl32.Vec2{r.Min.X() + t, r.Max.Y() - t}}, color)
	d.AddRect(Rect{mgl32.Vec2{r.Max.X() - t, r.Min.Y() + t}, mgl32.Vec2{r.Max.X(), r.Max.Y() - t}}, color)
}

func (d *DrawList) AddImage(r Rect, tex TextureKind, tint [4]float32) {
	d.quad(r, [2]float32{0, 0}, [2]float32{1, 1}, tint, modeImage, tex)
}

// AddText lays text out with its top-left corner at pos.
func (d *DrawList) AddText(a *TextAtlas, pos mgl32.Vec2, text string, color [4]float32) {
	if a == nil {
		return
	}
	x := pos.X()
	y := pos.Y() + a.ascent
	for _, r := range text {
		if r == '\n' {
			x = pos.X()
			y += a.lineHeight
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			continue
		}
		if g.Size[0] > 0 && g.Size[1] > 0 {
			p0 := mgl32.Vec2{x + g.Off[0], y + g.Off[1]}
			d.quad(Rect{p0, p0.Add(mgl32.Vec2{g.Size[0], g.Size[1]})}, g.UVMin, g.UVMax, color, modeGlyph, TextureAtlas)
		}
		x += g.Adv
	}
}
