package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPanel = XYWH(0, 0, 200, 300)

// First panel row spans x 6..194, y 28..50; the slider track starts at 30%.
func trackX(f float32) float32 {
	return 6 + 188*0.3 + f*188*0.7
}

func sliderFrame(c *Context, in Input, v *float32) bool {
	c.Begin(in)
	c.BeginPanel("Light", testPanel)
	changed := c.SliderFloat("x", v, 0, 10)
	c.EndPanel()
	c.End()
	return changed
}

func TestSliderDragCapturesPointer(t *testing.T) {
	c := NewContext(nil)
	v := float32(1)

	changed := sliderFrame(c, Input{Mouse: mgl32.Vec2{trackX(0.5), 40}, Down: true, Pressed: true}, &v)
	assert.True(t, changed)
	assert.InDelta(t, 5, v, 1e-4)
	assert.NotEmpty(t, c.Active())

	// Dragging outside the track still edits, clamped to the range.
	sliderFrame(c, Input{Mouse: mgl32.Vec2{500, 200}, Down: true}, &v)
	assert.InDelta(t, 10, v, 1e-4)
	assert.True(t, c.WantsPointerAt(mgl32.Vec2{500, 200}))

	sliderFrame(c, Input{Mouse: mgl32.Vec2{500, 200}, Released: true}, &v)
	assert.Empty(t, c.Active())
	assert.False(t, c.WantsPointerAt(mgl32.Vec2{500, 200}))
}

func TestSliderIgnoresPressOutsideTrack(t *testing.T) {
	c := NewContext(nil)
	v := float32(3)
	changed := sliderFrame(c, Input{Mouse: mgl32.Vec2{10, 40}, Down: true, Pressed: true}, &v)
	assert.False(t, changed)
	assert.Equal(t, float32(3), v)
	assert.Empty(t, c.Active())
}

func TestListItemClick(t *testing.T) {
	c := NewContext(nil)
	frame := func(in Input) (a, b bool) {
		c.Begin(in)
		c.BeginPanel("Hierarchy", testPanel)
		a = c.ListItem("first", false)
		b = c.ListItem("second", true)
		c.EndPanel()
		c.End()
		return
	}

	// Second row spans y 52..74.
	a, b := frame(Input{Mouse: mgl32.Vec2{50, 60}, Down: true, Pressed: true})
	assert.False(t, a)
	assert.True(t, b)

	a, b = frame(Input{Mouse: mgl32.Vec2{50, 60}, Down: true})
	assert.False(t, a)
	assert.False(t, b, "holding the button is not a new click")
}

func TestRowsStopAtPanelBottom(t *testing.T) {
	c := NewContext(nil)
	c.Begin(Input{Mouse: mgl32.Vec2{50, 90}, Pressed: true, Down: true})
	c.BeginPanel("Tiny", XYWH(0, 0, 100, 60))
	assert.False(t, c.ListItem("a", false))
	assert.False(t, c.ListItem("b", false), "second row falls outside the panel")
	c.EndPanel()
	c.End()
}

func TestWantsPointerChromeOnly(t *testing.T) {
	c := NewContext(nil)
	l := ComputeLayout(1280, 720)

	c.Begin(Input{})
	c.MenuBar(l.MenuBar)
	c.BeginPanel("Hierarchy", l.Hierarchy)
	c.EndPanel()
	c.BeginPanel("Inspector", l.Inspector)
	c.EndPanel()
	vp := c.Viewport(l.Viewport)
	c.End()

	center := l.Viewport.Min.Add(l.Viewport.Max).Mul(0.5)
	assert.False(t, c.WantsPointerAt(center))
	assert.True(t, c.WantsPointerAt(mgl32.Vec2{10, 100}))
	assert.True(t, c.WantsPointerAt(mgl32.Vec2{640, 5}))
	assert.Equal(t, l.Viewport, vp.Rect)
}

func TestClosedPanelStopsBlockingNextFrame(t *testing.T) {
	c := NewContext(nil)
	dropdown := XYWH(0, 24, 140, 60)
	inside := mgl32.Vec2{50, 50}

	c.Begin(Input{})
	c.BeginPanel("File", dropdown)
	c.EndPanel()
	c.End()
	assert.True(t, c.WantsPointerAt(inside))

	c.Begin(Input{})
	c.End()
	assert.False(t, c.WantsPointerAt(inside))
}

func TestOverlayCoversPanelsBeneath(t *testing.T) {
	c := NewContext(nil)
	popup := XYWH(0, 24, 140, 80)

	// testPanel's second row and the popup's first row both span y 52..74.
	c.Begin(Input{Mouse: mgl32.Vec2{50, 60}, Down: true, Pressed: true})
	c.Overlay(popup)
	c.BeginPanel("Hierarchy", testPanel)
	c.ListItem("first", false)
	below := c.ListItem("second", false)
	c.EndPanel()
	c.BeginPanel("File", popup)
	above := c.ListItem("Quit", false)
	c.EndPanel()
	c.End()

	assert.False(t, below)
	assert.True(t, above)

	c.Begin(Input{Mouse: mgl32.Vec2{50, 60}, Down: true, Pressed: true})
	c.BeginPanel("Hierarchy", testPanel)
	c.ListItem("first", false)
	below = c.ListItem("second", false)
	c.EndPanel()
	c.End()
	assert.True(t, below, "overlay lasts one frame")
}

func TestViewportHovered(t *testing.T) {
	c := NewContext(nil)
	r := XYWH(100, 100, 200, 200)
	c.Begin(Input{Mouse: mgl32.Vec2{150, 150}})
	assert.True(t, c.Viewport(r).Hovered)
	c.End()

	c.Begin(Input{Mouse: mgl32.Vec2{50, 50}})
	assert.False(t, c.Viewport(r).Hovered)
	c.End()
}

func TestMenuButton(t *testing.T) {
	c := NewContext(nil)
	c.Begin(Input{Mouse: mgl32.Vec2{10, 10}, Pressed: true, Down: true})
	c.MenuBar(XYWH(0, 0, 400, MenuBarHeight))
	assert.True(t, c.MenuButton("File"))
	assert.False(t, c.MenuButton("View"))
	c.End()
}

func TestComputeLayout(t *testing.T) {
	l := ComputeLayout(1280, 720)
	assert.Equal(t, float32(MenuBarHeight), l.MenuBar.Height())
	assert.Equal(t, float32(HierarchyWidth), l.Hierarchy.Width())
	assert.Equal(t, float32(InspectorWidth), l.Inspector.Width())
	assert.Equal(t, l.Hierarchy.Max.X(), l.Viewport.Min.X())
	assert.Equal(t, l.Inspector.Min.X(), l.Viewport.Max.X())
	assert.Equal(t, float32(720), l.Viewport.Max.Y())

	narrow := ComputeLayout(300, 200)
	assert.GreaterOrEqual(t, narrow.Viewport.Width(), float32(100)-0.01)
}

func TestDrawListBatchesByTexture(t *testing.T) {
	var d DrawList
	d.AddRect(XYWH(0, 0, 10, 10), [4]float32{1, 0, 0, 1})
	d.AddRect(XYWH(10, 0, 10, 10), [4]float32{0, 1, 0, 1})
	d.AddImage(XYWH(0, 10, 10, 10), TextureViewport, [4]float32{1, 1, 1, 1})
	d.AddRect(XYWH(0, 20, 10, 10), [4]float32{0, 0, 1, 1})

	require.Len(t, d.Batches, 3)
	assert.Equal(t, Batch{Texture: TextureAtlas, First: 0, Count: 12}, d.Batches[0])
	assert.Equal(t, Batch{Texture: TextureViewport, First: 12, Count: 6}, d.Batches[1])
	assert.Equal(t, Batch{Texture: TextureAtlas, First: 18, Count: 6}, d.Batches[2])
	assert.Len(t, d.Vertices, 24)
	assert.Equal(t, float32(modeImage), d.Vertices[12].Mode)

	d.Reset()
	assert.Empty(t, d.Vertices)
	assert.Empty(t, d.Batches)
}

func TestTextAtlas(t *testing.T) {
	a, err := NewTextAtlas(14)
	require.NoError(t, err)
	assert.Greater(t, a.LineHeight(), float32(0))

	for r := rune(33); r < 127; r++ {
		assert.Contains(t, a.Glyphs, r)
	}

	w1, h1 := a.Measure("ab")
	w2, _ := a.Measure("abab")
	assert.InDelta(t, 2*w1, w2, 0.01)
	assert.Equal(t, a.LineHeight(), h1)

	_, h2 := a.Measure("a\nb")
	assert.Equal(t, 2*a.LineHeight(), h2)

	var d DrawList
	d.AddText(a, mgl32.Vec2{0, 0}, "a b", [4]float32{1, 1, 1, 1})
	assert.Len(t, d.Vertices, 12, "space has no quad")
}
