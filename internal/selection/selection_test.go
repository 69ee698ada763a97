package selection

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pickerFunc adapts a function to Picker.
type pickerFunc func(p mgl32.Vec2) (int, bool)

func (f pickerFunc) PickAt(p mgl32.Vec2) (int, bool) { return f(p) }

func always(i int) Picker {
	return pickerFunc(func(mgl32.Vec2) (int, bool) { return i, true })
}

var nothing = pickerFunc(func(mgl32.Vec2) (int, bool) { return 0, false })

func TestRectFromPointsAndContains(t *testing.T) {
	r := RectFromPoints(mgl32.Vec2{10, 40}, mgl32.Vec2{30, 20})
	assert.Equal(t, mgl32.Vec2{10, 20}, r.Min)
	assert.Equal(t, mgl32.Vec2{30, 40}, r.Max)
	assert.Equal(t, mgl32.Vec2{20, 20}, r.Size())

	assert.True(t, r.Contains(mgl32.Vec2{20, 30}))
	assert.True(t, r.Contains(mgl32.Vec2{10, 20}), "corner")
	assert.True(t, r.Contains(mgl32.Vec2{30, 35}), "edge")
	assert.False(t, r.Contains(mgl32.Vec2{31, 30}))
	assert.False(t, r.Contains(mgl32.Vec2{20, 19.9}))
}

func TestHoverTransitions(t *testing.T) {
	s := New(5)
	assert.Equal(t, Idle, s.State())

	s.PointerMoved(mgl32.Vec2{10, 10}, true, always(3))
	i, ok := s.Hovered()
	require.True(t, ok)
	assert.Equal(t, 3, i)
	assert.Equal(t, Hovering, s.State())

	s.PointerMoved(mgl32.Vec2{11, 10}, true, nothing)
	_, ok = s.Hovered()
	assert.False(t, ok)
	assert.Equal(t, Idle, s.State())

	s.PointerMoved(mgl32.Vec2{10, 10}, true, always(2))
	s.PointerMoved(mgl32.Vec2{10, 10}, false, always(2))
	_, ok = s.Hovered()
	assert.False(t, ok, "leaving the viewport clears hover")
}

func TestHoverFrozenWhileDragging(t *testing.T) {
	s := New(5)
	s.PointerMoved(mgl32.Vec2{10, 10}, true, always(1))
	s.PointerPressed(mgl32.Vec2{10, 10}, true)
	assert.Equal(t, Dragging, s.State())

	s.PointerMoved(mgl32.Vec2{50, 60}, true, always(7))
	i, _ := s.Hovered()
	assert.Equal(t, 1, i)

	r, ok := s.DragRect()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{10, 10}, r.Min)
	assert.Equal(t, mgl32.Vec2{50, 60}, r.Max)
	assert.Equal(t, 0, s.Len(), "press does not change selection")
}

func TestPressOutsideViewportIgnored(t *testing.T) {
	s := New(5)
	s.PointerPressed(mgl32.Vec2{1, 1}, false)
	assert.NotEqual(t, Dragging, s.State())
	s.PointerReleased(mgl32.Vec2{1, 1}, always(4), View{})
	assert.Equal(t, 0, s.Len())
}

func TestClickSelectsOnlyHit(t *testing.T) {
	s := New(5)
	s.Replace([]int{1, 2, 3})

	s.PointerPressed(mgl32.Vec2{100, 100}, true)
	s.PointerReleased(mgl32.Vec2{103, 102}, always(9), View{})

	assert.Equal(t, []int{9}, s.SelectedIndices())
	_, dragging := s.DragRect()
	assert.False(t, dragging, "drag start cleared on release")
}

func TestClickOnNothingClears(t *testing.T) {
	s := New(5)
	s.Replace([]int{4, 5})
	s.PointerPressed(mgl32.Vec2{100, 100}, true)
	s.PointerReleased(mgl32.Vec2{100, 100}, nothing, View{})
	assert.Equal(t, 0, s.Len())
}

func TestReclickIsIdempotent(t *testing.T) {
	s := New(5)
	for n := 0; n < 3; n++ {
		s.PointerPressed(mgl32.Vec2{50, 50}, true)
		s.PointerReleased(mgl32.Vec2{50, 50}, always(6), View{})
		assert.Equal(t, []int{6}, s.SelectedIndices())
	}
}

// orthoView maps world x,y in [-10,10] onto a 200x200 viewport.
func orthoView(positions ...mgl32.Vec3) View {
	return View{
		ViewProj:  mgl32.Ortho(-10, 10, -10, 10, -10, 10),
		Viewport:  mgl32.Vec2{200, 200},
		Positions: positions,
	}
}

func TestProjectToScreen(t *testing.T) {
	v := orthoView()
	p, ok := ProjectToScreen(mgl32.Vec3{0, 0, 0}, v.ViewProj, v.Viewport)
	require.True(t, ok)
	assert.InDelta(t, 100, p.X(), 1e-4)
	assert.InDelta(t, 100, p.Y(), 1e-4)

	p, _ = ProjectToScreen(mgl32.Vec3{-10, 10, 0}, v.ViewProj, v.Viewport)
	assert.InDelta(t, 0, p.X(), 1e-4)
	assert.InDelta(t, 0, p.Y(), 1e-4)
}

func TestBoxSelectContainment(t *testing.T) {
	// Screen positions: (100,100), (150,100), (100,150), (190,190).
	v := orthoView(
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{5, 0, 0},
		mgl32.Vec3{0, -5, 0},
		mgl32.Vec3{9, -9, 0},
	)
	r := Rect{Min: mgl32.Vec2{90, 90}, Max: mgl32.Vec2{150, 150}}
	got := BoxSelect(r, v.Positions, v.ViewProj, v.Viewport)
	assert.Equal(t, []int{0, 1, 2}, got, "points on the boundary are selected")
}

func TestBoxSelectSkipsBehindCamera(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	vp := proj.Mul4(view)

	positions := []mgl32.Vec3{{0, 0, -5}, {0, 0, 5}}
	r := Rect{Min: mgl32.Vec2{-1000, -1000}, Max: mgl32.Vec2{1000, 1000}}
	assert.Equal(t, []int{0}, BoxSelect(r, positions, vp, mgl32.Vec2{100, 100}))
}

func TestDragReleaseBoxSelects(t *testing.T) {
	s := New(5)
	s.SelectOnly(3)
	v := orthoView(
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{5, 0, 0},
		mgl32.Vec3{-9, 9, 0},
	)

	s.PointerPressed(mgl32.Vec2{90, 90}, true)
	s.PointerMoved(mgl32.Vec2{120, 95}, true, nil)
	s.PointerReleased(mgl32.Vec2{160, 110}, nothing, v)

	assert.Equal(t, []int{0, 1}, s.SelectedIndices())
	assert.NotEqual(t, Dragging, s.State())
}

func TestThresholdIsPerAxis(t *testing.T) {
	v := orthoView(mgl32.Vec3{0, 0, 0})

	// 6px wide, 1px tall: exceeds on x only, still a box select.
	s := New(5)
	s.PointerPressed(mgl32.Vec2{97, 100}, true)
	s.PointerReleased(mgl32.Vec2{103, 101}, always(42), v)
	assert.Equal(t, []int{0}, s.SelectedIndices())

	// 5px square: at the threshold, treated as a click.
	s.PointerPressed(mgl32.Vec2{97, 97}, true)
	s.PointerReleased(mgl32.Vec2{102, 102}, always(42), v)
	assert.Equal(t, []int{42}, s.SelectedIndices())
}

func TestToggleAndCancel(t *testing.T) {
	s := New(0)
	assert.Equal(t, float32(DefaultDragThreshold), s.Threshold)

	s.Toggle(2)
	s.Toggle(5)
	s.Toggle(2)
	assert.Equal(t, []int{5}, s.SelectedIndices())

	s.PointerPressed(mgl32.Vec2{1, 1}, true)
	s.CancelDrag()
	assert.NotEqual(t, Dragging, s.State())
	assert.Equal(t, []int{5}, s.SelectedIndices())
}
