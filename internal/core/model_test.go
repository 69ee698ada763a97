package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func quadMesh() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{1, 1, 0}},
			{Position: [3]float32{0, 1, 0}},
		},
		Indices:       []uint32{0, 1, 2, 0, 2, 3},
		MaterialIndex: NoMaterial,
	}
}

func TestEdgeIndicesDeduplicatesSharedEdges(t *testing.T) {
	m := quadMesh()
	edges := m.EdgeIndices()

	// Two triangles sharing the diagonal: 5 unique edges.
	assert.Len(t, edges, 10)
	seen := map[[2]uint32]bool{}
	for i := 0; i < len(edges); i += 2 {
		e := [2]uint32{edges[i], edges[i+1]}
		assert.Less(t, e[0], e[1])
		assert.False(t, seen[e], "edge %v repeated", e)
		seen[e] = true
	}
	assert.True(t, seen[[2]uint32{0, 2}])
}

func TestComputeAABBEnclosesVertices(t *testing.T) {
	m := Model{Meshes: []Mesh{quadMesh(), {
		Vertices: []Vertex{{Position: [3]float32{-2, 3, 5}}},
	}}}
	m.ComputeAABB()

	assert.Equal(t, mgl32.Vec3{-2, 0, 0}, m.AABB.Min)
	assert.Equal(t, mgl32.Vec3{1, 3, 5}, m.AABB.Max)
	for _, mesh := range m.Meshes {
		for _, v := range mesh.Vertices {
			assert.True(t, m.AABB.Contains(mgl32.Vec3(v.Position)))
		}
	}
}

func TestEmptyModelAABB(t *testing.T) {
	var m Model
	m.ComputeAABB()
	assert.True(t, m.AABB.IsEmpty())
}

func TestAABBTransform(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	moved := box.Transform(mgl32.Translate3D(10, 0, 0))
	assert.InDelta(t, 9, moved.Min.X(), 1e-5)
	assert.InDelta(t, 11, moved.Max.X(), 1e-5)

	rot := box.Transform(mgl32.HomogRotate3DY(mgl32.DegToRad(45)))
	assert.InDelta(t, 1.41421, rot.Max.X(), 1e-4)
	assert.InDelta(t, 1.0, rot.Max.Y(), 1e-5)
}

func TestMeshTriangle(t *testing.T) {
	m := quadMesh()
	assert.Equal(t, 2, m.TriangleCount())
	a, b, c := m.Triangle(1)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, a)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, b)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c)
}
