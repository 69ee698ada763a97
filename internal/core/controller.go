package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps the forward vector away from the poles (about 88.8 degrees).
const MaxPitch = 1.55

// CameraController turns held keys and look deltas into camera motion.
type CameraController struct {
	Speed       float32
	Sensitivity float32
	Yaw         float32
	Pitch       float32

	forward, backward bool
	left, right       bool
	up, down          bool
}

func NewCameraController(speed, sensitivity float32) *CameraController {
	return &CameraController{Speed: speed, Sensitivity: sensitivity}
}

// SyncFromCamera derives yaw and pitch from the camera's current view direction.
func (c *CameraController) SyncFromCamera(cam *Camera) {
	dir := cam.Target.Sub(cam.Eye)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = clampPitch(float32(math.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1)))))
	c.Yaw = float32(math.Atan2(float64(dir.Z()), float64(dir.X())))
}

// ProcessKeyboard records the held state of movement keys. It reports
// whether the key is one the controller handles.
func (c *CameraController) ProcessKeyboard(key Key, pressed bool) bool {
	switch key {
	case KeyW, KeyUp:
		c.forward = pressed
	case KeyS, KeyDown:
		c.backward = pressed
	case KeyA, KeyLeft:
		c.left = pressed
	case KeyD, KeyRight:
		c.right = pressed
	case KeySpace:
		c.up = pressed
	case KeyLeftShift:
		c.down = pressed
	default:
		return false
	}
	return true
}

// ProcessMouse accumulates a relative look delta.
func (c *CameraController) ProcessMouse(dx, dy float64) {
	c.Yaw += float32(dx) * c.Sensitivity
	c.Pitch = clampPitch(c.Pitch - float32(dy)*c.Sensitivity)
}

// ReleaseAll drops every held key, e.g. when the scene loses focus.
func (c *CameraController) ReleaseAll() {
	c.forward, c.backward = false, false
	c.left, c.right = false, false
	c.up, c.down = false, false
}

func (c *CameraController) Forward() mgl32.Vec3 {
	cy, sy := math.Cos(float64(c.Yaw)), math.Sin(float64(c.Yaw))
	cp, sp := math.Cos(float64(c.Pitch)), math.Sin(float64(c.Pitch))
	return mgl32.Vec3{float32(cy * cp), float32(sp), float32(sy * cp)}
}

// UpdateCamera moves the eye along the held directions and re-aims the target.
func (c *CameraController) UpdateCamera(cam *Camera) {
	c.Pitch = clampPitch(c.Pitch)
	forward := c.Forward()
	right := forward.Cross(cam.Up)
	if right.Len() > 0 {
		right = right.Normalize()
	}

	var move mgl32.Vec3
	if c.forward {
		move = move.Add(forward)
	}
	if c.backward {
		move = move.Sub(forward)
	}
	if c.right {
		move = move.Add(right)
	}
	if c.left {
		move = move.Sub(right)
	}
	if c.up {
		move = move.Add(cam.Up)
	}
	if c.down {
		move = move.Sub(cam.Up)
	}

	cam.Eye = cam.Eye.Add(move.Mul(c.Speed))
	cam.Target = cam.Eye.Add(forward)
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}
