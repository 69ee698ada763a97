// Package core holds the CPU-side scene data: geometry, instances, camera and light.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex matches the mesh shader's vertex input (locations 0..3).
type Vertex struct {
	Position  [3]float32
	Color     [3]float32
	TexCoords [2]float32
	Normal    [3]float32
}

// NoMaterial marks a mesh drawn with the flat white fallback.
const NoMaterial = -1

type Mesh struct {
	Name          string
	Vertices      []Vertex
	Indices       []uint32
	MaterialIndex int
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corner positions of triangle i.
func (m *Mesh) Triangle(i int) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	a := m.Vertices[m.Indices[3*i]].Position
	b := m.Vertices[m.Indices[3*i+1]].Position
	c := m.Vertices[m.Indices[3*i+2]].Position
	return mgl32.Vec3(a), mgl32.Vec3(b), mgl32.Vec3(c)
}

// EdgeIndices returns each undirected triangle edge once, as line-list pairs.
func (m *Mesh) EdgeIndices() []uint32 {
	type edge struct{ a, b uint32 }
	seen := make(map[edge]struct{}, len(m.Indices))
	out := make([]uint32, 0, len(m.Indices)*2)
	for t := 0; t+2 < len(m.Indices); t += 3 {
		tri := [3]uint32{m.Indices[t], m.Indices[t+1], m.Indices[t+2]}
		for k := 0; k < 3; k++ {
			a, b := tri[k], tri[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			e := edge{a, b}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, a, b)
		}
	}
	return out
}

// Material names a diffuse map; an empty DiffuseTexture draws flat white.
type Material struct {
	Name           string
	DiffuseTexture string
}

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b AABB) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

func (b AABB) Extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Contains reports whether p lies inside b, boundary included.
func (b AABB) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Transform returns the box enclosing all eight corners of b under m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	if b.IsEmpty() {
		return b
	}
	out := EmptyAABB()
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min.X(), b.Min.Y(), b.Min.Z()}
		if i&1 != 0 {
			c[0] = b.Max.X()
		}
		if i&2 != 0 {
			c[1] = b.Max.Y()
		}
		if i&4 != 0 {
			c[2] = b.Max.Z()
		}
		out = out.Extend(m.Mul4x1(c.Vec4(1)).Vec3())
	}
	return out
}

// Model is a loaded mesh set with its materials. Immutable after load.
type Model struct {
	Meshes    []Mesh
	Materials []Material
	AABB      AABB
}

// ComputeAABB folds every vertex of every mesh into the model bounds.
func (m *Model) ComputeAABB() {
	box := EmptyAABB()
	for i := range m.Meshes {
		for _, v := range m.Meshes[i].Vertices {
			box = box.Extend(mgl32.Vec3(v.Position))
		}
	}
	m.AABB = box
}

func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Meshes {
		n += m.Meshes[i].TriangleCount()
	}
	return n
}
