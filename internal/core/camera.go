package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// wgpu clip space keeps depth in 0..1; mgl32.Perspective produces -1..1.
var glToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Aspect float32
	FovY   float32 // radians
	ZNear  float32
	ZFar   float32
}

func NewCamera(eye, target mgl32.Vec3, fovYDeg, znear, zfar float32) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: 1,
		FovY:   mgl32.DegToRad(fovYDeg),
		ZNear:  znear,
		ZFar:   zfar,
	}
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return glToWGPU.Mul4(mgl32.Perspective(c.FovY, aspect, c.ZNear, c.ZFar))
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// SetViewport updates the aspect ratio; zero sizes are ignored.
func (c *Camera) SetViewport(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = width / height
}

// CameraUniform matches the WGSL Camera struct (80 bytes).
type CameraUniform struct {
	ViewPosition [4]float32
	ViewProj     [16]float32
}

func (u *CameraUniform) Update(c *Camera) {
	u.ViewPosition = [4]float32{c.Eye.X(), c.Eye.Y(), c.Eye.Z(), 1}
	u.ViewProj = c.ViewProjection()
}
