// Package assets loads meshes, materials and textures from disk.
package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/logging"
	"github.com/udhos/gwob"
)

var (
	defaultNormal = [3]float32{0, 1, 0}
	white         = [3]float32{1, 1, 1}
)

// LoadModel reads a Wavefront OBJ file and the material library it names.
// Each face group becomes one mesh with its own vertex list. Texture V is
// flipped for top-left image origin.
func LoadModel(path string, log logging.Logger) (*core.Model, error) {
	log = logging.OrNop(log)
	opts := parserOptions(path, log)

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	obj, err := gwob.NewObjFromReader(path, bufio.NewReader(f), opts)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrMalformed, Err: err}
	}

	var lib gwob.MaterialLib
	mtlDir := filepath.Dir(path)
	if name := strings.TrimSpace(obj.Mtllib); name != "" {
		mtlPath := filepath.Join(mtlDir, filepath.FromSlash(name))
		if lib, err = loadMaterialLib(mtlPath, opts); err != nil {
			return nil, err
		}
		mtlDir = filepath.Dir(mtlPath)
	}

	model, err := buildModel(path, mtlDir, obj, lib)
	if err != nil {
		return nil, err
	}
	model.ComputeAABB()

	log.Infof("loaded %s: %d meshes, %d materials, %d triangles",
		path, len(model.Meshes), len(model.Materials), model.TriangleCount())
	return model, nil
}

// parserOptions routes gwob's non-fatal complaints (unsupported statements,
// skipped lines) to the debug log.
func parserOptions(path string, log logging.Logger) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			log.Debugf("%s: %s", path, strings.TrimSpace(msg))
		},
	}
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Path: path, Kind: ErrNotFound, Err: err}
	}
	return fmt.Errorf("open %s: %w", path, err)
}

type meshBuilder struct {
	mesh   core.Mesh
	lookup map[core.Vertex]uint32
}

func (b *meshBuilder) add(v core.Vertex) {
	idx, ok := b.lookup[v]
	if !ok {
		idx = uint32(len(b.mesh.Vertices))
		b.mesh.Vertices = append(b.mesh.Vertices, v)
		b.lookup[v] = idx
	}
	b.mesh.Indices = append(b.mesh.Indices, idx)
}

// buildModel splits the interleaved gwob vertex stream into per-group meshes
// with local indices. Identical vertices within a mesh are shared.
func buildModel(path, mtlDir string, obj *gwob.Obj, lib gwob.MaterialLib) (*core.Model, error) {
	layout, err := newCoordLayout(path, obj)
	if err != nil {
		return nil, err
	}
	mats, err := newMaterialTable(path, mtlDir, obj, lib)
	if err != nil {
		return nil, err
	}

	groups := obj.Groups
	if len(groups) == 0 && len(obj.Indices) > 0 {
		groups = []*gwob.Group{{IndexCount: len(obj.Indices)}}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	used := make(map[string]bool)
	var meshes []core.Mesh

	for _, g := range groups {
		if g == nil || g.IndexCount == 0 {
			continue
		}
		end := g.IndexBegin + g.IndexCount
		if g.IndexBegin < 0 || end > len(obj.Indices) || g.IndexCount%3 != 0 {
			return nil, malformed(path, 0, "group %q spans indices [%d,%d) of %d", g.Name, g.IndexBegin, end, len(obj.Indices))
		}

		matIdx := core.NoMaterial
		if g.Usemtl != "" {
			matIdx = mats.index[g.Usemtl]
		}

		name := strings.TrimSpace(g.Name)
		if name == "" {
			name = base
		}
		if used[name] && matIdx >= 0 {
			name = fmt.Sprintf("%s.%s", name, mats.materials[matIdx].Name)
		}
		used[name] = true

		b := meshBuilder{
			mesh:   core.Mesh{Name: name, MaterialIndex: matIdx},
			lookup: make(map[core.Vertex]uint32),
		}
		for _, i := range obj.Indices[g.IndexBegin:end] {
			if i < 0 || i >= layout.count {
				return nil, malformed(path, 0, "index %d out of range (%d vertices)", i, layout.count)
			}
			b.add(layout.vertex(obj.Coord, i))
		}
		meshes = append(meshes, b.mesh)
	}

	return &core.Model{Meshes: meshes, Materials: mats.materials}, nil
}

// coordLayout locates the attributes inside one interleaved vertex. gwob
// reports strides and offsets in bytes.
type coordLayout struct {
	stride int
	pos    int
	uv     int // -1 when the file has no texture coordinates
	normal int // -1 when the file has no normals
	count  int
}

func newCoordLayout(path string, obj *gwob.Obj) (coordLayout, error) {
	l := coordLayout{stride: obj.StrideSize / 4, pos: obj.StrideOffsetPosition / 4, uv: -1, normal: -1}
	if obj.TextCoordFound {
		l.uv = obj.StrideOffsetTexture / 4
	}
	if obj.NormCoordFound {
		l.normal = obj.StrideOffsetNormal / 4
	}

	fits := func(off, n int) bool { return off < 0 || off+n <= l.stride }
	if l.stride < 3 || l.pos < 0 || !fits(l.pos, 3) || !fits(l.uv, 2) || !fits(l.normal, 3) {
		return l, malformed(path, 0, "bad vertex layout: stride %d bytes", obj.StrideSize)
	}
	if len(obj.Coord)%l.stride != 0 {
		return l, malformed(path, 0, "%d coordinates do not fill %d-float vertices", len(obj.Coord), l.stride)
	}
	l.count = len(obj.Coord) / l.stride
	return l, nil
}

// vertex unpacks vertex i. Missing normals, and the zero normals gwob pads
// faces without one with, become defaultNormal.
func (l coordLayout) vertex(coord []float32, i int) core.Vertex {
	c := coord[i*l.stride : (i+1)*l.stride]
	v := core.Vertex{
		Position: [3]float32{c[l.pos], c[l.pos+1], c[l.pos+2]},
		Color:    white,
		Normal:   defaultNormal,
	}
	if l.uv >= 0 {
		v.TexCoords = [2]float32{c[l.uv], 1 - c[l.uv+1]}
	}
	if l.normal >= 0 {
		if n := [3]float32{c[l.normal], c[l.normal+1], c[l.normal+2]}; n != [3]float32{} {
			v.Normal = n
		}
	}
	return v
}

type materialTable struct {
	materials []core.Material
	index     map[string]int
}

// newMaterialTable orders materials by first use in the OBJ, then the unused
// ones by name. A group naming a material the library lacks is an error.
func newMaterialTable(path, mtlDir string, obj *gwob.Obj, lib gwob.MaterialLib) (materialTable, error) {
	t := materialTable{index: make(map[string]int)}
	add := func(name string, m *gwob.Material) {
		t.index[name] = len(t.materials)
		t.materials = append(t.materials, materialFor(mtlDir, name, m))
	}

	for _, g := range obj.Groups {
		if g == nil || g.Usemtl == "" {
			continue
		}
		if _, seen := t.index[g.Usemtl]; seen {
			continue
		}
		m, ok := lib.Lib[g.Usemtl]
		if !ok {
			return t, &LoadError{
				Path: path,
				Kind: ErrMaterialMismatch,
				Err:  fmt.Errorf("usemtl %q not defined by any mtllib", g.Usemtl),
			}
		}
		add(g.Usemtl, m)
	}

	var unused []string
	for name := range lib.Lib {
		if _, seen := t.index[name]; !seen {
			unused = append(unused, name)
		}
	}
	sort.Strings(unused)
	for _, name := range unused {
		add(name, lib.Lib[name])
	}
	return t, nil
}
