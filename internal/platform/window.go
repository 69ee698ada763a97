// Package platform wraps the GLFW window and turns its callbacks into
// app.Events.
package platform

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/meshview/internal/app"
	"github.com/gekko3d/meshview/internal/core"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window must be created and polled on the main OS thread.
type Window struct {
	win *glfw.Window

	events []app.Event

	captured       bool
	lastX, lastY   float64
	haveLast       bool
	deltaX, deltaY float64

	resized  bool
	fbWidth  int
	fbHeight int
}

func NewWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{win: win}
	w.fbWidth, w.fbHeight = win.GetFramebufferSize()

	win.SetKeyCallback(w.onKey)
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursorPos)
	win.SetScrollCallback(w.onScroll)
	win.SetFramebufferSizeCallback(w.onFramebufferSize)
	return w, nil
}

// SurfaceDescriptor describes the native window for wgpu surface creation.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.win)
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// PollEvents pumps GLFW and returns the events queued since the last call.
// The slice is reused by the next call.
func (w *Window) PollEvents() []app.Event {
	w.events = w.events[:0]
	w.deltaX, w.deltaY = 0, 0
	glfw.PollEvents()
	return w.events
}

// MouseDelta is the relative cursor motion gathered by the last PollEvents.
func (w *Window) MouseDelta() (float64, float64) { return w.deltaX, w.deltaY }

// TakeResize reports a framebuffer resize seen since the last call.
func (w *Window) TakeResize() (int, int, bool) {
	if !w.resized {
		return 0, 0, false
	}
	w.resized = false
	return w.fbWidth, w.fbHeight, true
}

func (w *Window) Size() (int, int)            { return w.win.GetSize() }
func (w *Window) FramebufferSize() (int, int) { return w.win.GetFramebufferSize() }

// SetCursorCaptured hides and locks the cursor for camera look.
func (w *Window) SetCursorCaptured(captured bool) {
	if captured == w.captured {
		return
	}
	w.captured = captured
	w.haveLast = false
	if captured {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.win.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
		return
	}
	w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

func (w *Window) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	k, ok := glfwToKey[key]
	if !ok {
		k = core.KeyUnknown
	}
	w.events = append(w.events, app.Event{Type: app.EventKey, Key: k, Pressed: action == glfw.Press})
}

func (w *Window) onMouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	var b core.MouseButton
	switch button {
	case glfw.MouseButtonLeft:
		b = core.MouseButtonLeft
	case glfw.MouseButtonRight:
		b = core.MouseButtonRight
	case glfw.MouseButtonMiddle:
		b = core.MouseButtonMiddle
	default:
		return
	}
	w.events = append(w.events, app.Event{Type: app.EventMouseButton, Button: b, Pressed: action == glfw.Press})
}

func (w *Window) onCursorPos(_ *glfw.Window, x, y float64) {
	if w.haveLast {
		w.deltaX += x - w.lastX
		w.deltaY += y - w.lastY
	}
	w.lastX, w.lastY = x, y
	w.haveLast = true
	w.events = append(w.events, app.Event{Type: app.EventCursorMoved, X: x, Y: y})
}

func (w *Window) onScroll(_ *glfw.Window, dx, dy float64) {
	w.events = append(w.events, app.Event{Type: app.EventScroll, X: dx, Y: dy})
}

func (w *Window) onFramebufferSize(_ *glfw.Window, width, height int) {
	w.fbWidth, w.fbHeight = width, height
	w.resized = true
}

var glfwToKey = map[glfw.Key]core.Key{
	glfw.KeyW:         core.KeyW,
	glfw.KeyA:         core.KeyA,
	glfw.KeyS:         core.KeyS,
	glfw.KeyD:         core.KeyD,
	glfw.KeyUp:        core.KeyUp,
	glfw.KeyDown:      core.KeyDown,
	glfw.KeyLeft:      core.KeyLeft,
	glfw.KeyRight:     core.KeyRight,
	glfw.KeySpace:     core.KeySpace,
	glfw.KeyLeftShift: core.KeyLeftShift,
	glfw.KeyEscape:    core.KeyEscape,
	glfw.KeyF1:        core.KeyF1,
}
