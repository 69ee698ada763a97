package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestProjectionDepthRange(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 45, 0.1, 100)
	cam.SetViewport(1280, 720)
	vp := cam.ViewProjection()

	near := vp.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := vp.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-4)
	assert.InDelta(t, 1280.0/720.0, cam.Aspect, 1e-6)
}

func TestSetViewportIgnoresZero(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 45, 0.1, 100)
	cam.SetViewport(800, 400)
	cam.SetViewport(0, 400)
	assert.Equal(t, float32(2), cam.Aspect)
}

func TestCameraUniform(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 1, 5}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100)
	var u CameraUniform
	u.Update(cam)
	assert.Equal(t, [4]float32{0, 1, 5, 1}, u.ViewPosition)
	assert.Equal(t, [16]float32(cam.ViewProjection()), u.ViewProj)
}

func TestControllerForwardAndTarget(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 1, 5}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100)
	c := NewCameraController(0.5, 0.01)
	c.SyncFromCamera(cam)

	assert.InDelta(t, -math.Pi/2, c.Yaw, 1e-5)
	assert.InDelta(t, 0, c.Pitch, 1e-5)
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, c.Forward())

	assert.True(t, c.ProcessKeyboard(KeyW, true))
	c.UpdateCamera(cam)
	assertVecNear(t, mgl32.Vec3{0, 1, 4.5}, cam.Eye)
	assertVecNear(t, cam.Eye.Add(c.Forward()), cam.Target)

	c.ProcessKeyboard(KeyW, false)
	c.UpdateCamera(cam)
	assertVecNear(t, mgl32.Vec3{0, 1, 4.5}, cam.Eye)
}

func TestControllerStrafe(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 45, 0.1, 100)
	c := NewCameraController(1, 0.01)
	c.SyncFromCamera(cam)
	c.ProcessKeyboard(KeyD, true)
	c.UpdateCamera(cam)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cam.Eye)
}

func TestControllerPitchClamp(t *testing.T) {
	c := NewCameraController(1, 0.01)
	c.ProcessMouse(0, -100000)
	assert.Equal(t, float32(MaxPitch), c.Pitch)
	c.ProcessMouse(0, 100000)
	assert.Equal(t, float32(-MaxPitch), c.Pitch)

	f := c.Forward()
	assert.Greater(t, float64(mgl32.Vec3{f.X(), 0, f.Z()}.Len()), 0.0)
}

func TestControllerForwardFormula(t *testing.T) {
	c := &CameraController{Yaw: 0.3, Pitch: -0.4}
	f := c.Forward()
	want := mgl32.Vec3{
		float32(math.Cos(0.3) * math.Cos(-0.4)),
		float32(math.Sin(-0.4)),
		float32(math.Sin(0.3) * math.Cos(-0.4)),
	}
	assertVecNear(t, want, f)
}

func TestControllerIgnoresUnknownKeys(t *testing.T) {
	c := NewCameraController(1, 1)
	assert.False(t, c.ProcessKeyboard(KeyEscape, true))
}
