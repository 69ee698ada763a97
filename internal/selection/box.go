package selection

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectToScreen maps a world point to viewport pixels. Points with
// clip.w <= 0 are behind the camera and report false.
func ProjectToScreen(p mgl32.Vec3, viewProj mgl32.Mat4, viewport mgl32.Vec2) (mgl32.Vec2, bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return mgl32.Vec2{
		(ndcX + 1) * 0.5 * viewport.X(),
		(1 - ndcY) * 0.5 * viewport.Y(),
	}, true
}

// BoxSelect returns the indices of positions whose screen projection lies in r.
// Only the point is tested, not the instance's silhouette.
func BoxSelect(r Rect, positions []mgl32.Vec3, viewProj mgl32.Mat4, viewport mgl32.Vec2) []int {
	var out []int
	for i, p := range positions {
		s, ok := ProjectToScreen(p, viewProj, viewport)
		if !ok {
			continue
		}
		if r.Contains(s) {
			out = append(out, i)
		}
	}
	return out
}
