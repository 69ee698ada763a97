package app

import (
	"github.com/gekko3d/meshview/internal/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Input routes one window event and reports whether it was consumed. The UI
// sees every pointer event; the scene only gets pointer events over the
// viewport that the UI chrome does not claim, and keys only while focused.
func (a *App) Input(ev Event) bool {
	switch ev.Type {
	case EventCursorMoved:
		return a.cursorMoved(mgl32.Vec2{float32(ev.X), float32(ev.Y)})
	case EventMouseButton:
		return a.mouseButton(ev.Button, ev.Pressed)
	case EventKey:
		return a.key(ev.Key, ev.Pressed)
	}
	return false
}

// HandleMouseMotion applies a relative pointer delta while in camera-look mode.
func (a *App) HandleMouseMotion(dx, dy float64) {
	if a.lookMode {
		a.controller.ProcessMouse(dx, dy)
	}
}

func (a *App) cursorMoved(p mgl32.Vec2) bool {
	a.cursor = p
	a.uiInput.Mouse = p
	if a.lookMode {
		return true
	}
	a.selection.PointerMoved(a.toViewport(p), a.overViewport(p), a)
	return false
}

func (a *App) mouseButton(button core.MouseButton, pressed bool) bool {
	uiWants := a.ui.WantsPointerAt(a.cursor)
	over := a.overViewport(a.cursor)

	switch button {
	case core.MouseButtonLeft:
		if pressed {
			a.uiInput.Pressed = true
			a.uiInput.Down = true
		} else {
			a.uiInput.Released = true
			a.uiInput.Down = false
		}
		return a.leftButton(pressed, over, uiWants)
	case core.MouseButtonRight:
		return a.rightButton(pressed, over)
	}
	return false
}

func (a *App) leftButton(pressed, over, uiWants bool) bool {
	if pressed {
		if over {
			a.focusScene(true)
			a.selection.PointerPressed(a.toViewport(a.cursor), true)
			return true
		}
		if uiWants {
			a.focusScene(false)
		}
		return uiWants
	}

	// A drag that started in the viewport finishes wherever it is released.
	if _, dragging := a.selection.DragRect(); dragging {
		a.selection.PointerReleased(a.toViewport(a.cursor), a, a.selectionView())
		return true
	}
	return uiWants
}

func (a *App) rightButton(pressed, over bool) bool {
	if pressed {
		if !over {
			return false
		}
		a.focusScene(true)
		a.lookMode = true
		a.captureCursor(true)
		return true
	}
	if !a.lookMode {
		return false
	}
	a.lookMode = false
	a.captureCursor(false)
	return true
}

func (a *App) key(k core.Key, pressed bool) bool {
	if pressed && k == core.KeyF1 {
		a.log.SetDebug(!a.log.DebugEnabled())
		a.log.Infof("debug logging %v", a.log.DebugEnabled())
		return true
	}
	if !a.sceneFocused {
		return false
	}
	if pressed && k == core.KeyEscape {
		a.selection.CancelDrag()
		a.selection.Clear()
		return true
	}
	return a.controller.ProcessKeyboard(k, pressed)
}

// focusScene switches keyboard focus; losing it drops held movement keys so
// the camera does not keep drifting.
func (a *App) focusScene(focused bool) {
	if a.sceneFocused && !focused {
		a.controller.ReleaseAll()
	}
	a.sceneFocused = focused
}

func (a *App) captureCursor(captured bool) {
	if a.window != nil {
		a.window.SetCursorCaptured(captured)
	}
}
