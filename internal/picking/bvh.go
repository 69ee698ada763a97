package picking

import (
	"slices"
	"sort"

	"github.com/gekko3d/meshview/internal/core"
)

// BVHThreshold is the instance count above which the scene prefilters
// candidates through an InstanceBVH.
const BVHThreshold = 64

type bvhNode struct {
	Box       core.AABB
	Left      int32
	Right     int32
	LeafFirst int32 // instance index, -1 for inner nodes
}

type bvhItem struct {
	box   core.AABB
	index int
}

// InstanceBVH is a median-split hierarchy over instance world bounds.
type InstanceBVH struct {
	nodes []bvhNode
}

// BuildInstanceBVH bounds the model under each instance transform.
func BuildInstanceBVH(model *core.Model, instances []core.Instance) *InstanceBVH {
	b := &InstanceBVH{}
	if model == nil || model.AABB.IsEmpty() || len(instances) == 0 {
		return b
	}
	items := make([]bvhItem, len(instances))
	for i, inst := range instances {
		items[i] = bvhItem{box: model.AABB.Transform(inst.Matrix()), index: i}
	}
	b.build(items)
	return b
}

func (b *InstanceBVH) build(items []bvhItem) int32 {
	idx := int32(len(b.nodes))
	b.nodes = append(b.nodes, bvhNode{Left: -1, Right: -1, LeafFirst: -1})

	box := core.EmptyAABB()
	for _, it := range items {
		box = box.Union(it.box)
	}
	b.nodes[idx].Box = box

	if len(items) == 1 {
		b.nodes[idx].LeafFirst = int32(items[0].index)
		return idx
	}

	extent := box.Max.Sub(box.Min)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].box.Center()[axis] < items[j].box.Center()[axis]
	})

	mid := len(items) / 2
	left := b.build(items[:mid])
	right := b.build(items[mid:])
	b.nodes[idx].Left = left
	b.nodes[idx].Right = right
	return idx
}

func (b *InstanceBVH) Len() int { return len(b.nodes) }

// Candidates returns, in ascending order, the instances whose world bounds r hits.
func (b *InstanceBVH) Candidates(r Ray) []int {
	if len(b.nodes) == 0 {
		return nil
	}
	var out []int
	stack := []int32{0}
	for len(stack) > 0 {
		n := b.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if _, ok := IntersectAABB(r, n.Box); !ok {
			continue
		}
		if n.LeafFirst >= 0 {
			out = append(out, int(n.LeafFirst))
			continue
		}
		stack = append(stack, n.Left, n.Right)
	}
	slices.Sort(out)
	return out
}

// PickAccelerated gives the same answer as Pick, testing only BVH candidates.
func PickAccelerated(r Ray, model *core.Model, instances []core.Instance, bvh *InstanceBVH) (Hit, bool) {
	if bvh == nil {
		return Pick(r, model, instances)
	}
	cands := bvh.Candidates(r)
	return pickFrom(r, model, instances, func(yield func(int) bool) {
		for _, i := range cands {
			if !yield(i) {
				return
			}
		}
	})
}
