package ui

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rect is in window pixels, top-left origin.
type Rect struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

func XYWH(x, y, w, h float32) Rect {
	return Rect{mgl32.Vec2{x, y}, mgl32.Vec2{x + w, y + h}}
}

func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() && p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

func (r Rect) Width() float32  { return r.Max.X() - r.Min.X() }
func (r Rect) Height() float32 { return r.Max.Y() - r.Min.Y() }

const (
	MenuBarHeight  = 24
	HierarchyWidth = 220
	InspectorWidth = 260
)

// Layout is the fixed window arrangement: menu bar on top, hierarchy on the
// left, inspector on the right and the 3D viewport in the middle.
type Layout struct {
	MenuBar   Rect
	Hierarchy Rect
	Inspector Rect
	Viewport  Rect
}

// ComputeLayout shrinks the side panels on narrow windows so the viewport
// keeps at least a third of the width.
func ComputeLayout(width, height float32) Layout {
	width = max(width, 1)
	height = max(height, MenuBarHeight+1)

	left, right := float32(HierarchyWidth), float32(InspectorWidth)
	if avail := width * 2 / 3; left+right > avail {
		scale := avail / (left + right)
		left *= scale
		right *= scale
	}
	body := height - MenuBarHeight
	return Layout{
		MenuBar:   XYWH(0, 0, width, MenuBarHeight),
		Hierarchy: XYWH(0, MenuBarHeight, left, body),
		Inspector: XYWH(width-right, MenuBarHeight, right, body),
		Viewport:  XYWH(left, MenuBarHeight, width-left-right, body),
	}
}
