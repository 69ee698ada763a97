// Package picking casts rays from the viewport into the instanced scene.
package picking

import (
	"math"

	"github.com/gekko3d/meshview/internal/core"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-7

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// ScreenToRay builds a world ray from a pixel inside a width x height viewport.
// The pixel is unprojected onto the near plane (depth 0) and the ray runs from
// eye through that point.
func ScreenToRay(px, py, width, height float32, eye mgl32.Vec3, invViewProj mgl32.Mat4) Ray {
	ndcX := 2*px/width - 1
	ndcY := 1 - 2*py/height

	p := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 0, 1})
	if p.W() != 0 {
		p = p.Mul(1 / p.W())
	}
	dir := p.Vec3().Sub(eye)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: eye, Direction: dir}
}

// IntersectAABB is the slab test. It returns the entry distance, clamped to 0
// when the origin is inside the box.
func IntersectAABB(r Ray, box core.AABB) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for i := 0; i < 3; i++ {
		inv := 1 / r.Direction[i]
		t1 := (box.Min[i] - r.Origin[i]) * inv
		t2 := (box.Max[i] - r.Origin[i]) * inv
		// Parallel ray lying exactly on a slab plane gives 0*Inf.
		if t1 != t1 || t2 != t2 {
			if r.Origin[i] < box.Min[i] || r.Origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		tmin = max(tmin, min(t1, t2))
		tmax = min(tmax, max(t1, t2))
	}
	if tmin > tmax || tmax < 0 {
		return 0, false
	}
	return max(tmin, 0), true
}

// IntersectTriangle is Möller–Trumbore. Hits at t <= epsilon are rejected.
func IntersectTriangle(r Ray, v0, v1, v2 mgl32.Vec3) (float32, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	h := r.Direction.Cross(e2)
	det := e1.Dot(h)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	f := 1 / det
	s := r.Origin.Sub(v0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := f * e2.Dot(q)
	if t <= epsilon {
		return 0, false
	}
	return t, true
}
