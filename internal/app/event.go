package app

import (
	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/render"
)

type EventType int

const (
	EventKey EventType = iota
	EventMouseButton
	EventCursorMoved
	EventScroll
)

// Event is one window event. X and Y carry the cursor position for
// EventCursorMoved and the offsets for EventScroll.
type Event struct {
	Type    EventType
	Key     core.Key
	Button  core.MouseButton
	Pressed bool
	X, Y    float64
}

// Window is the part of the platform window the app drives.
type Window interface {
	SetCursorCaptured(captured bool)
	Size() (int, int)
	FramebufferSize() (int, int)
}

// Renderer draws frames; the GPU implementation lives in internal/gpu.
type Renderer interface {
	Upload(s render.SceneAssets) error
	Resize(t render.Target) error
	Reconfigure()
	Render(f *render.Frame) error
	Release()
}
