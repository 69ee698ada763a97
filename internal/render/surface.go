package render

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSurfaceLost covers lost and outdated surfaces; reconfigure and retry.
	ErrSurfaceLost = errors.New("surface lost")
	// ErrSurfaceOutOfMemory is fatal.
	ErrSurfaceOutOfMemory = errors.New("surface out of memory")
	// ErrDeviceLost is fatal; reconfiguring the surface cannot bring it back.
	ErrDeviceLost = errors.New("device lost")
	// ErrSurfaceTimeout means the frame is skipped.
	ErrSurfaceTimeout = errors.New("surface timeout")
	// ErrTargetStale means Render was called before Resize rebuilt the targets.
	ErrTargetStale = errors.New("render targets do not match surface size")
)

// SurfaceAction tells the frame loop how to react to a Render error.
type SurfaceAction int

const (
	ActionNone SurfaceAction = iota
	ActionReconfigure
	ActionExit
	ActionSkip
)

// statusReplacer folds the driver's status spellings ("out-of-memory",
// "OutOfMemory", "out of memory") onto one form.
var statusReplacer = strings.NewReplacer(" ", "", "-", "", "_", "")

// ClassifySurfaceError maps a driver error onto the surface sentinels by its
// status text. Unrecognized errors are returned unchanged.
func ClassifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{ErrSurfaceLost, ErrSurfaceOutOfMemory, ErrSurfaceTimeout, ErrDeviceLost} {
		if errors.Is(err, known) {
			return err
		}
	}
	msg := statusReplacer.Replace(strings.ToLower(err.Error()))
	switch {
	case strings.Contains(msg, "devicelost"):
		return fmt.Errorf("%w: %v", ErrDeviceLost, err)
	case strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %v", ErrSurfaceOutOfMemory, err)
	case strings.Contains(msg, "lost"), strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %v", ErrSurfaceTimeout, err)
	}
	return err
}

// ActionFor picks the frame loop's reaction to a Render error.
func ActionFor(err error) SurfaceAction {
	switch {
	case err == nil:
		return ActionNone
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrTargetStale):
		return ActionReconfigure
	case errors.Is(err, ErrSurfaceOutOfMemory), errors.Is(err, ErrDeviceLost):
		return ActionExit
	default:
		return ActionSkip
	}
}
