package picking

import (
	"math"
	"testing"

	"github.com/gekko3d/meshview/internal/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox() core.AABB {
	return core.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
}

func TestIntersectAABB(t *testing.T) {
	box := unitBox()

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front face", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
		{"pointing away", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"inside clamps to zero", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, 0},
		{"miss beside", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"diagonal", Ray{mgl32.Vec3{-3, -3, 0}, mgl32.Vec3{1, 1, 0}.Normalize()}, true, float32(2 * math.Sqrt2)},
		{"parallel outside slab", Ray{mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"parallel on face plane", Ray{mgl32.Vec3{0, 1, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntersectAABB(tt.ray, box)
			require.Equal(t, tt.hit, ok)
			if ok {
				assert.InDelta(t, tt.wantT, got, 1e-5)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	v0 := mgl32.Vec3{0, 0, 0}
	v1 := mgl32.Vec3{1, 0, 0}
	v2 := mgl32.Vec3{0, 1, 0}
	centroid := v0.Add(v1).Add(v2).Mul(1.0 / 3.0)

	t.Run("centroid", func(t *testing.T) {
		d, ok := IntersectTriangle(Ray{centroid.Add(mgl32.Vec3{0, 0, 2}), mgl32.Vec3{0, 0, -1}}, v0, v1, v2)
		require.True(t, ok)
		assert.InDelta(t, 2, d, 1e-5)
	})
	t.Run("back face also hits", func(t *testing.T) {
		_, ok := IntersectTriangle(Ray{centroid.Add(mgl32.Vec3{0, 0, -2}), mgl32.Vec3{0, 0, 1}}, v0, v1, v2)
		assert.True(t, ok)
	})
	t.Run("misses plane", func(t *testing.T) {
		_, ok := IntersectTriangle(Ray{centroid.Add(mgl32.Vec3{0, 0, 2}), mgl32.Vec3{0, 0, 1}}, v0, v1, v2)
		assert.False(t, ok)
	})
	t.Run("outside barycentric", func(t *testing.T) {
		_, ok := IntersectTriangle(Ray{mgl32.Vec3{0.8, 0.8, 2}, mgl32.Vec3{0, 0, -1}}, v0, v1, v2)
		assert.False(t, ok)
	})
	t.Run("negative u", func(t *testing.T) {
		_, ok := IntersectTriangle(Ray{mgl32.Vec3{-0.1, 0.5, 2}, mgl32.Vec3{0, 0, -1}}, v0, v1, v2)
		assert.False(t, ok)
	})
	t.Run("parallel", func(t *testing.T) {
		_, ok := IntersectTriangle(Ray{mgl32.Vec3{-1, 0.2, 0}, mgl32.Vec3{1, 0, 0}}, v0, v1, v2)
		assert.False(t, ok)
	})
	t.Run("origin on triangle", func(t *testing.T) {
		_, ok := IntersectTriangle(Ray{centroid, mgl32.Vec3{0, 0, -1}}, v0, v1, v2)
		assert.False(t, ok)
	})
}

func TestScreenToRayCenterLooksForward(t *testing.T) {
	cam := core.NewCamera(mgl32.Vec3{0, 1, 5}, mgl32.Vec3{0, 1, 0}, 45, 0.1, 100)
	cam.SetViewport(800, 600)
	inv := cam.ViewProjection().Inv()

	r := ScreenToRay(400, 300, 800, 600, cam.Eye, inv)
	assert.Equal(t, cam.Eye, r.Origin)
	assert.InDelta(t, 0, r.Direction.X(), 1e-4)
	assert.InDelta(t, 0, r.Direction.Y(), 1e-4)
	assert.InDelta(t, -1, r.Direction.Z(), 1e-4)
	assert.InDelta(t, 1, r.Direction.Len(), 1e-5)
}

func TestScreenToRayCorners(t *testing.T) {
	cam := core.NewCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 90, 0.1, 100)
	cam.SetViewport(100, 100)
	inv := cam.ViewProjection().Inv()

	// 90 degree fov: the top-left corner ray leaves at 45 degrees on both axes.
	r := ScreenToRay(0, 0, 100, 100, cam.Eye, inv)
	want := mgl32.Vec3{-1, 1, -1}.Normalize()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], r.Direction[i], 1e-4)
	}
}

// cubeModel is a closed unit cube centered on the origin.
func cubeModel() *core.Model {
	p := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	verts := make([]core.Vertex, 8)
	for i := range p {
		verts[i] = core.Vertex{Position: p[i]}
	}
	idx := []uint32{
		0, 2, 1, 0, 3, 2, // -z
		4, 5, 6, 4, 6, 7, // +z
		0, 1, 5, 0, 5, 4, // -y
		3, 7, 6, 3, 6, 2, // +y
		0, 4, 7, 0, 7, 3, // -x
		1, 2, 6, 1, 6, 5, // +x
	}
	m := &core.Model{Meshes: []core.Mesh{{Vertices: verts, Indices: idx, MaterialIndex: core.NoMaterial}}}
	m.ComputeAABB()
	return m
}

func at(x, y, z float32) core.Instance {
	return core.Instance{Position: mgl32.Vec3{x, y, z}, Rotation: mgl32.QuatIdent()}
}

func TestPickNearestRegardlessOfOrder(t *testing.T) {
	model := cubeModel()
	ray := Ray{mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -1}}

	near := at(0, 0, 5)
	far := at(0, 0, -5)

	hit, ok := Pick(ray, model, []core.Instance{near, far})
	require.True(t, ok)
	assert.Equal(t, 0, hit.Instance)
	assert.InDelta(t, 14, hit.Distance, 1e-4)

	hit, ok = Pick(ray, model, []core.Instance{far, near})
	require.True(t, ok)
	assert.Equal(t, 1, hit.Instance)
	assert.InDelta(t, 14, hit.Distance, 1e-4)
}

func TestPickTieKeepsFirstInstance(t *testing.T) {
	model := cubeModel()
	ray := Ray{mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -1}}
	hit, ok := Pick(ray, model, []core.Instance{at(0, 0, 0), at(0, 0, 0)})
	require.True(t, ok)
	assert.Equal(t, 0, hit.Instance)
}

func TestPickRotatedInstance(t *testing.T) {
	model := cubeModel()
	inst := core.Instance{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0}),
	}
	// The rotated +z face runs from (0, sqrt2) to (sqrt2, 0) in xz.
	ray := Ray{mgl32.Vec3{0.1, 0.5, 10}, mgl32.Vec3{0, 0, -1}}
	hit, ok := Pick(ray, model, []core.Instance{inst})
	require.True(t, ok)
	assert.InDelta(t, 10.1-math.Sqrt2, hit.Distance, 1e-3)

	// A ray that clears the unrotated cube's corner but grazes the rotated one.
	ray = Ray{mgl32.Vec3{1.2, 0, 10}, mgl32.Vec3{0, 0, -1}}
	_, ok = Pick(ray, model, []core.Instance{inst})
	assert.True(t, ok)
	_, ok = Pick(ray, model, []core.Instance{at(0, 0, 0)})
	assert.False(t, ok)
}

func TestPickEmpty(t *testing.T) {
	ray := Ray{mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -1}}
	_, ok := Pick(ray, cubeModel(), nil)
	assert.False(t, ok)
	_, ok = Pick(ray, &core.Model{}, []core.Instance{at(0, 0, 0)})
	assert.False(t, ok)
	_, ok = Pick(ray, nil, []core.Instance{at(0, 0, 0)})
	assert.False(t, ok)
}

func TestPickMiss(t *testing.T) {
	ray := Ray{mgl32.Vec3{5, 5, 20}, mgl32.Vec3{0, 0, -1}}
	_, ok := Pick(ray, cubeModel(), []core.Instance{at(0, 0, 0)})
	assert.False(t, ok)
}
