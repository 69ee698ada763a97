// Package ui is a small immediate-mode toolkit: widgets are described every
// frame and report their interaction results straight back to the caller.
package ui

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Input is the pointer state for one frame. Pressed and Released are edges
// seen since the previous frame.
type Input struct {
	Mouse    mgl32.Vec2
	Down     bool
	Pressed  bool
	Released bool
}

type Style struct {
	Padding     float32
	RowHeight   float32
	PanelBg     [4]float32
	HeaderBg    [4]float32
	MenuBg      [4]float32
	Text        [4]float32
	TextDim     [4]float32
	Widget      [4]float32
	WidgetHot   [4]float32
	WidgetFill  [4]float32
	Selected    [4]float32
	DragFill    [4]float32
	DragOutline [4]float32
}

func DefaultStyle() Style {
	return Style{
		Padding:     6,
		RowHeight:   22,
		PanelBg:     [4]float32{0.11, 0.11, 0.12, 0.96},
		HeaderBg:    [4]float32{0.18, 0.18, 0.2, 1},
		MenuBg:      [4]float32{0.15, 0.15, 0.17, 1},
		Text:        [4]float32{0.92, 0.92, 0.92, 1},
		TextDim:     [4]float32{0.6, 0.6, 0.62, 1},
		Widget:      [4]float32{0.22, 0.22, 0.25, 1},
		WidgetHot:   [4]float32{0.3, 0.3, 0.34, 1},
		WidgetFill:  [4]float32{0.26, 0.45, 0.75, 1},
		Selected:    [4]float32{0.24, 0.38, 0.6, 1},
		DragFill:    [4]float32{0.3, 0.55, 1, 0.15},
		DragOutline: [4]float32{0.3, 0.55, 1, 0.9},
	}
}

type Context struct {
	Style Style

	atlas *TextAtlas
	list  DrawList
	in    Input

	active string
	chrome []Rect // being drawn this frame
	drawn  []Rect // completed at the last End

	panel   Rect
	inPanel bool
	cursor  mgl32.Vec2
	idScope string

	menu   Rect
	menuX  float32
	inMenu bool

	overlay    Rect
	hasOverlay bool
}

// NewContext builds a context; atlas may be nil, which draws no text.
func NewContext(atlas *TextAtlas) *Context {
	return &Context{Style: DefaultStyle(), atlas: atlas}
}

func (c *Context) Atlas() *TextAtlas { return c.atlas }

func (c *Context) Begin(in Input) {
	c.in = in
	c.list.Reset()
	c.chrome = c.chrome[:0]
	c.hasOverlay = false
	c.inPanel = false
	c.inMenu = false
}

// End finishes the frame. The returned list is valid until the next Begin.
func (c *Context) End() *DrawList {
	if c.in.Released || !c.in.Down {
		c.active = ""
	}
	c.drawn, c.chrome = c.chrome, c.drawn[:0]
	return &c.list
}

// WantsPointerAt reports whether p is over UI chrome drawn last frame, or a
// widget is being dragged.
func (c *Context) WantsPointerAt(p mgl32.Vec2) bool {
	if c.active != "" {
		return true
	}
	for _, r := range c.drawn {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Overlay reserves r for a popup panel drawn later this frame. Until then,
// widgets under r ignore the pointer.
func (c *Context) Overlay(r Rect) {
	c.overlay = r
	c.hasOverlay = true
}

// hovered reports whether the pointer is over r and not covered by an
// overlay other than the panel being drawn.
func (c *Context) hovered(r Rect) bool {
	if !r.Contains(c.in.Mouse) {
		return false
	}
	if c.hasOverlay && c.overlay.Contains(c.in.Mouse) {
		return c.inPanel && c.panel == c.overlay
	}
	return true
}

// Active is the id of the widget holding the pointer, if any.
func (c *Context) Active() string { return c.active }

func (c *Context) id(label string) string {
	return c.idScope + "/" + label
}

func (c *Context) text(pos mgl32.Vec2, s string, color [4]float32) {
	c.list.AddText(c.atlas, pos, s, color)
}

func (c *Context) measure(s string) float32 {
	if c.atlas == nil {
		return float32(len(s)) * 7
	}
	w, _ := c.atlas.Measure(s)
	return w
}

func (c *Context) textY(row Rect) float32 {
	lh := float32(14)
	if c.atlas != nil {
		lh = c.atlas.LineHeight()
	}
	return row.Min.Y() + (row.Height()-lh)/2
}

// MenuBar starts a horizontal bar of MenuButtons.
func (c *Context) MenuBar(r Rect) {
	c.chrome = append(c.chrome, r)
	c.list.AddRect(r, c.Style.MenuBg)
	c.menu = r
	c.menuX = r.Min.X() + c.Style.Padding
	c.inMenu = true
	c.idScope = "menu"
}

func (c *Context) MenuButton(label string) bool {
	if !c.inMenu {
		return false
	}
	w := c.measure(label) + 2*c.Style.Padding
	r := Rect{mgl32.Vec2{c.menuX, c.menu.Min.Y()}, mgl32.Vec2{c.menuX + w, c.menu.Max.Y()}}
	c.menuX += w + 2

	hot := c.hovered(r)
	if hot {
		c.list.AddRect(r, c.Style.WidgetHot)
	}
	c.text(mgl32.Vec2{r.Min.X() + c.Style.Padding, c.textY(r)}, label, c.Style.Text)
	return hot && c.in.Pressed
}

// BeginPanel opens a titled panel; widgets stack top to bottom inside it.
func (c *Context) BeginPanel(title string, r Rect) {
	c.inMenu = false
	c.chrome = append(c.chrome, r)
	c.list.AddRect(r, c.Style.PanelBg)
	header := Rect{r.Min, mgl32.Vec2{r.Max.X(), r.Min.Y() + c.Style.RowHeight}}
	c.list.AddRect(header, c.Style.HeaderBg)
	c.text(mgl32.Vec2{header.Min.X() + c.Style.Padding, c.textY(header)}, title, c.Style.Text)

	c.panel = r
	c.inPanel = true
	c.idScope = title
	c.cursor = mgl32.Vec2{r.Min.X() + c.Style.Padding, header.Max.Y() + c.Style.Padding}
}

func (c *Context) EndPanel() {
	c.inPanel = false
	c.idScope = ""
}

// row reserves the next full-width row, or reports false past the panel bottom.
func (c *Context) row() (Rect, bool) {
	if !c.inPanel {
		return Rect{}, false
	}
	r := Rect{c.cursor, mgl32.Vec2{c.panel.Max.X() - c.Style.Padding, c.cursor.Y() + c.Style.RowHeight}}
	c.cursor[1] += c.Style.RowHeight + 2
	if r.Max.Y() > c.panel.Max.Y() {
		return Rect{}, false
	}
	return r, true
}

func (c *Context) Label(s string) {
	r, ok := c.row()
	if !ok {
		return
	}
	c.text(mgl32.Vec2{r.Min.X(), c.textY(r)}, s, c.Style.TextDim)
}

func (c *Context) Separator() {
	if c.inPanel {
		c.cursor[1] += c.Style.Padding
	}
}

// ListItem draws a selectable row and reports a click on it.
func (c *Context) ListItem(label string, selected bool) bool {
	r, ok := c.row()
	if !ok {
		return false
	}
	hot := c.hovered(r) && c.active == ""
	switch {
	case selected:
		c.list.AddRect(r, c.Style.Selected)
	case hot:
		c.list.AddRect(r, c.Style.WidgetHot)
	}
	c.text(mgl32.Vec2{r.Min.X() + c.Style.Padding, c.textY(r)}, label, c.Style.Text)
	return hot && c.in.Pressed
}

// SliderFloat edits *v within [lo, hi]. A press on the track captures the
// pointer until release. It reports whether *v changed.
func (c *Context) SliderFloat(label string, v *float32, lo, hi float32) bool {
	r, ok := c.row()
	if !ok || hi <= lo {
		return false
	}
	id := c.id(label)

	labelW := r.Width() * 0.3
	track := Rect{mgl32.Vec2{r.Min.X() + labelW, r.Min.Y()}, r.Max}

	if c.in.Pressed && c.hovered(track) && c.active == "" {
		c.active = id
	}

	changed := false
	if c.active == id && c.in.Down {
		f := (c.in.Mouse.X() - track.Min.X()) / track.Width()
		nv := lo + mgl32.Clamp(f, 0, 1)*(hi-lo)
		if nv != *v {
			*v = nv
			changed = true
		}
	}

	bg := c.Style.Widget
	if c.active == id || c.hovered(track) {
		bg = c.Style.WidgetHot
	}
	c.list.AddRect(track, bg)
	f := mgl32.Clamp((*v-lo)/(hi-lo), 0, 1)
	c.list.AddRect(Rect{track.Min, mgl32.Vec2{track.Min.X() + f*track.Width(), track.Max.Y()}}, c.Style.WidgetFill)

	c.text(mgl32.Vec2{r.Min.X(), c.textY(r)}, label, c.Style.TextDim)
	c.text(mgl32.Vec2{track.Min.X() + c.Style.Padding, c.textY(r)}, fmt.Sprintf("%.2f", *v), c.Style.Text)
	return changed
}

// ColorEdit edits an RGB color as three 0..1 sliders under a swatch.
func (c *Context) ColorEdit(label string, rgb *[3]float32) bool {
	r, ok := c.row()
	if !ok {
		return false
	}
	c.text(mgl32.Vec2{r.Min.X(), c.textY(r)}, label, c.Style.TextDim)
	swatch := Rect{mgl32.Vec2{r.Max.X() - r.Height()*2, r.Min.Y() + 3}, mgl32.Vec2{r.Max.X(), r.Max.Y() - 3}}
	c.list.AddRect(swatch, [4]float32{rgb[0], rgb[1], rgb[2], 1})

	changed := false
	for i, ch := range []string{"R", "G", "B"} {
		if c.SliderFloat(label+" "+ch, &rgb[i], 0, 1) {
			changed = true
		}
	}
	return changed
}

// ViewportResponse reports pointer interaction with the 3D image.
type ViewportResponse struct {
	Rect    Rect
	Hovered bool
}

// Viewport draws the offscreen scene image into r. It is not chrome.
func (c *Context) Viewport(r Rect) ViewportResponse {
	c.list.AddImage(r, TextureViewport, [4]float32{1, 1, 1, 1})
	return ViewportResponse{Rect: r, Hovered: c.hovered(r) && c.active == ""}
}

// DragRect outlines a box-selection rectangle.
func (c *Context) DragRect(r Rect) {
	c.list.AddRect(r, c.Style.DragFill)
	c.list.AddOutline(r, c.Style.DragOutline, 1)
}
