// Package selection tracks the hovered and selected instances and turns
// pointer gestures into picks and box selections.
package selection

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDragThreshold is the rectangle size, in pixels on either axis, above
// which a release becomes a box selection.
const DefaultDragThreshold = 5

type State int

const (
	Idle State = iota
	Hovering
	Dragging
)

func (s State) String() string {
	switch s {
	case Hovering:
		return "hovering"
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Picker resolves a viewport pixel to an instance index.
type Picker interface {
	PickAt(p mgl32.Vec2) (int, bool)
}

// View carries what box selection needs to project instances.
type View struct {
	ViewProj  mgl32.Mat4
	Viewport  mgl32.Vec2
	Positions []mgl32.Vec3
}

type Selection struct {
	Threshold float32

	hovered    int
	hasHovered bool
	selected   map[int]struct{}

	dragStart mgl32.Vec2
	dragEnd   mgl32.Vec2
	dragging  bool
}

func New(threshold float32) *Selection {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Selection{Threshold: threshold, selected: make(map[int]struct{})}
}

func (s *Selection) State() State {
	switch {
	case s.dragging:
		return Dragging
	case s.hasHovered:
		return Hovering
	default:
		return Idle
	}
}

func (s *Selection) Hovered() (int, bool) {
	return s.hovered, s.hasHovered
}

func (s *Selection) SetHovered(i int, ok bool) {
	s.hovered, s.hasHovered = i, ok
	if !ok {
		s.hovered = 0
	}
}

func (s *Selection) IsSelected(i int) bool {
	_, ok := s.selected[i]
	return ok
}

func (s *Selection) Len() int { return len(s.selected) }

// SelectedIndices returns the selection in ascending order.
func (s *Selection) SelectedIndices() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (s *Selection) Clear() {
	clear(s.selected)
}

// SelectOnly makes i the sole member.
func (s *Selection) SelectOnly(i int) {
	s.Clear()
	s.selected[i] = struct{}{}
}

// Toggle adds or removes i; used by the hierarchy list.
func (s *Selection) Toggle(i int) {
	if s.IsSelected(i) {
		delete(s.selected, i)
		return
	}
	s.selected[i] = struct{}{}
}

// Replace makes indices the whole selection.
func (s *Selection) Replace(indices []int) {
	s.Clear()
	for _, i := range indices {
		s.selected[i] = struct{}{}
	}
}

// DragRect is the rectangle of the gesture in progress.
func (s *Selection) DragRect() (Rect, bool) {
	if !s.dragging {
		return Rect{}, false
	}
	return RectFromPoints(s.dragStart, s.dragEnd), true
}

// PointerMoved re-runs the hit test while not dragging. Leaving the viewport
// clears the hover; during a drag it only extends the rectangle.
func (s *Selection) PointerMoved(p mgl32.Vec2, overViewport bool, picker Picker) {
	if s.dragging {
		s.dragEnd = p
		return
	}
	if !overViewport || picker == nil {
		s.SetHovered(0, false)
		return
	}
	s.SetHovered(picker.PickAt(p))
}

// PointerPressed records the drag start; the selection is unchanged until release.
func (s *Selection) PointerPressed(p mgl32.Vec2, overViewport bool) {
	if !overViewport {
		return
	}
	s.dragStart = p
	s.dragEnd = p
	s.dragging = true
}

// PointerReleased finishes the gesture: a box select when the rectangle exceeds
// the threshold on either axis, otherwise a click that selects only the hit.
func (s *Selection) PointerReleased(p mgl32.Vec2, picker Picker, view View) {
	if !s.dragging {
		return
	}
	start := s.dragStart
	s.dragging = false
	s.dragStart = mgl32.Vec2{}
	s.dragEnd = mgl32.Vec2{}

	r := RectFromPoints(start, p)
	if r.Width() > s.Threshold || r.Height() > s.Threshold {
		s.Replace(BoxSelect(r, view.Positions, view.ViewProj, view.Viewport))
		return
	}

	s.Clear()
	if picker == nil {
		return
	}
	if i, ok := picker.PickAt(p); ok {
		s.selected[i] = struct{}{}
	}
}

// CancelDrag drops a gesture without changing the selection.
func (s *Selection) CancelDrag() {
	s.dragging = false
	s.dragStart = mgl32.Vec2{}
	s.dragEnd = mgl32.Vec2{}
}
