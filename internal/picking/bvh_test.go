package picking

import (
	"testing"

	"github.com/gekko3d/meshview/internal/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBVHCandidatesSorted(t *testing.T) {
	model := cubeModel()
	var instances []core.Instance
	for i := 0; i < 10; i++ {
		instances = append(instances, at(float32(i)*3, 0, 0))
	}
	bvh := BuildInstanceBVH(model, instances)
	assert.Equal(t, 2*len(instances)-1, bvh.Len())

	// Ray along +x through every instance.
	all := bvh.Candidates(Ray{mgl32.Vec3{-10, 0, 0}, mgl32.Vec3{1, 0, 0}})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)

	one := bvh.Candidates(Ray{mgl32.Vec3{9, 0, 10}, mgl32.Vec3{0, 0, -1}})
	assert.Equal(t, []int{3}, one)

	none := bvh.Candidates(Ray{mgl32.Vec3{0, 10, 10}, mgl32.Vec3{0, 0, -1}})
	assert.Empty(t, none)
}

func TestPickAcceleratedMatchesPick(t *testing.T) {
	model := cubeModel()
	instances := core.GridInstances(10, 3)
	bvh := BuildInstanceBVH(model, instances)

	cam := core.NewCamera(mgl32.Vec3{0, 12, 20}, mgl32.Vec3{0, 0, 0}, 45, 0.1, 100)
	cam.SetViewport(640, 480)
	inv := cam.ViewProjection().Inv()

	hits := 0
	for py := float32(0); py < 480; py += 37 {
		for px := float32(0); px < 640; px += 41 {
			r := ScreenToRay(px, py, 640, 480, cam.Eye, inv)
			want, wantOK := Pick(r, model, instances)
			got, gotOK := PickAccelerated(r, model, instances, bvh)
			require.Equal(t, wantOK, gotOK, "pixel %v,%v", px, py)
			if wantOK {
				hits++
				assert.Equal(t, want.Instance, got.Instance)
				assert.InDelta(t, want.Distance, got.Distance, 1e-5)
			}
		}
	}
	assert.Greater(t, hits, 0)
}

func TestEmptyBVH(t *testing.T) {
	bvh := BuildInstanceBVH(cubeModel(), nil)
	assert.Nil(t, bvh.Candidates(Ray{Direction: mgl32.Vec3{0, 0, -1}}))
	_, ok := PickAccelerated(Ray{Direction: mgl32.Vec3{0, 0, -1}}, cubeModel(), nil, bvh)
	assert.False(t, ok)
}
