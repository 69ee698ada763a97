package picking

import (
	"math"

	"github.com/gekko3d/meshview/internal/core"
)

// Hit is the closest instance along a ray.
type Hit struct {
	Instance int
	Distance float32
}

// Pick tests r against every instance of model. The nearest triangle wins;
// at equal distance the lower instance index is kept.
func Pick(r Ray, model *core.Model, instances []core.Instance) (Hit, bool) {
	return pickFrom(r, model, instances, func(yield func(int) bool) {
		for i := range instances {
			if !yield(i) {
				return
			}
		}
	})
}

func pickFrom(r Ray, model *core.Model, instances []core.Instance, candidates func(func(int) bool)) (Hit, bool) {
	if model == nil || len(model.Meshes) == 0 || len(instances) == 0 || model.AABB.IsEmpty() {
		return Hit{}, false
	}

	closest := float32(math.Inf(1))
	best := -1

	candidates(func(i int) bool {
		o, d := instances[i].WorldToLocalRay(r.Origin, r.Direction)
		local := Ray{Origin: o, Direction: d}

		tBox, ok := IntersectAABB(local, model.AABB)
		if !ok || tBox > closest {
			return true
		}

		for m := range model.Meshes {
			mesh := &model.Meshes[m]
			for tri := 0; tri < mesh.TriangleCount(); tri++ {
				v0, v1, v2 := mesh.Triangle(tri)
				if t, ok := IntersectTriangle(local, v0, v1, v2); ok && t < closest {
					closest = t
					best = i
				}
			}
		}
		return true
	})

	if best < 0 {
		return Hit{}, false
	}
	return Hit{Instance: best, Distance: closest}, true
}
