package render

import (
	"math"

	"github.com/gekko3d/meshview/internal/assets"
	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/ui"
	"github.com/go-gl/mathgl/mgl32"
)

// Target is the geometry a frame is drawn for. Screen and Viewport are in UI
// coordinates (window points); Surface is in framebuffer pixels.
type Target struct {
	Surface  [2]int
	Screen   mgl32.Vec2
	Viewport ui.Rect
}

func (t Target) Valid() bool {
	return t.Surface[0] > 0 && t.Surface[1] > 0 && t.Screen.X() > 0 && t.Screen.Y() > 0
}

// ViewportPixels is the framebuffer size of the viewport rect, at least 1x1.
func (t Target) ViewportPixels() (int, int) {
	if !t.Valid() {
		return 1, 1
	}
	sx := float64(t.Surface[0]) / float64(t.Screen.X())
	sy := float64(t.Surface[1]) / float64(t.Screen.Y())
	w := int(math.Round(float64(t.Viewport.Width()) * sx))
	h := int(math.Round(float64(t.Viewport.Height()) * sy))
	return max(w, 1), max(h, 1)
}

// Frame is everything the GPU needs for one frame.
type Frame struct {
	Target    Target
	Camera    core.CameraUniform
	Light     core.LightUniform
	Instances []core.InstanceRaw
	Plan      []DrawCall
	UI        *ui.DrawList
	Clear     [4]float32
}

// SceneAssets is uploaded once after the model loads. Textures is parallel
// to Model.Materials.
type SceneAssets struct {
	Model     *core.Model
	Textures  []*assets.Image
	Default   *assets.Image
	Selection [4]float32
	Hover     [4]float32
	Atlas     *ui.TextAtlas
}

// SceneInfoFor summarizes model for BuildFramePlan.
func SceneInfoFor(model *core.Model, instanceCount int) SceneInfo {
	if model == nil {
		return SceneInfo{}
	}
	mats := make([]int, len(model.Meshes))
	for i := range model.Meshes {
		mats[i] = model.Meshes[i].MaterialIndex
	}
	return SceneInfo{MeshMaterials: mats, MaterialCount: len(model.Materials), InstanceCount: instanceCount}
}
