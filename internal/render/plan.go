// Package render decides what the GPU draws each frame, independent of the
// graphics API.
package render

import (
	"slices"
)

type Pass int

const (
	PassOpaque Pass = iota
	PassSelection
	PassHover
)

func (p Pass) String() string {
	switch p {
	case PassSelection:
		return "selection"
	case PassHover:
		return "hover"
	default:
		return "opaque"
	}
}

// BindKind picks the texture bind group for a draw.
type BindKind int

const (
	BindMaterial BindKind = iota
	BindDefault
	BindSelection
	BindHover
)

// InstanceRange is the half-open range [Start, End) of instance slots.
type InstanceRange struct {
	Start uint32
	End   uint32
}

func (r InstanceRange) Count() uint32 { return r.End - r.Start }

type DrawCall struct {
	Pass      Pass
	Mesh      int
	Material  int // valid when Bind is BindMaterial
	Bind      BindKind
	Instances InstanceRange
}

// SceneInfo is the CPU-side shape of what the GPU holds.
type SceneInfo struct {
	MeshMaterials []int // material index per mesh, negative for none
	MaterialCount int
	InstanceCount int
}

// InstanceRanges coalesces sorted, unique indices into contiguous ranges.
func InstanceRanges(indices []int) []InstanceRange {
	if len(indices) == 0 {
		return nil
	}
	var out []InstanceRange
	cur := InstanceRange{Start: uint32(indices[0]), End: uint32(indices[0]) + 1}
	for _, i := range indices[1:] {
		if uint32(i) == cur.End {
			cur.End++
			continue
		}
		out = append(out, cur)
		cur = InstanceRange{Start: uint32(i), End: uint32(i) + 1}
	}
	return append(out, cur)
}

// BuildFramePlan orders the frame's draws: every mesh across all instances,
// then wireframe over the selected instances, then wireframe over the hovered
// one unless it is already selected. Indices outside the instance range are dropped.
func BuildFramePlan(scene SceneInfo, selected []int, hovered int, hasHover bool) []DrawCall {
	if scene.InstanceCount <= 0 || len(scene.MeshMaterials) == 0 {
		return nil
	}
	plan := make([]DrawCall, 0, len(scene.MeshMaterials)*3)

	all := InstanceRange{Start: 0, End: uint32(scene.InstanceCount)}
	for mesh, mat := range scene.MeshMaterials {
		dc := DrawCall{Pass: PassOpaque, Mesh: mesh, Material: mat, Bind: BindMaterial, Instances: all}
		if mat < 0 || mat >= scene.MaterialCount {
			dc.Material = -1
			dc.Bind = BindDefault
		}
		plan = append(plan, dc)
	}

	sel := make([]int, 0, len(selected))
	for _, i := range selected {
		if i >= 0 && i < scene.InstanceCount {
			sel = append(sel, i)
		}
	}
	slices.Sort(sel)
	sel = slices.Compact(sel)

	for _, r := range InstanceRanges(sel) {
		for mesh := range scene.MeshMaterials {
			plan = append(plan, DrawCall{Pass: PassSelection, Mesh: mesh, Material: -1, Bind: BindSelection, Instances: r})
		}
	}

	if hasHover && hovered >= 0 && hovered < scene.InstanceCount {
		if _, dup := slices.BinarySearch(sel, hovered); !dup {
			r := InstanceRange{Start: uint32(hovered), End: uint32(hovered) + 1}
			for mesh := range scene.MeshMaterials {
				plan = append(plan, DrawCall{Pass: PassHover, Mesh: mesh, Material: -1, Bind: BindHover, Instances: r})
			}
		}
	}
	return plan
}
