// Package app ties the scene, selection and UI together behind the
// event-driven surface the main loop calls every frame.
package app

import (
	"fmt"

	"github.com/gekko3d/meshview/internal/assets"
	"github.com/gekko3d/meshview/internal/config"
	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/logging"
	"github.com/gekko3d/meshview/internal/picking"
	"github.com/gekko3d/meshview/internal/render"
	"github.com/gekko3d/meshview/internal/selection"
	"github.com/gekko3d/meshview/internal/ui"
	"github.com/go-gl/mathgl/mgl32"
)

const textSize = 14

var clearColor = [4]float32{0.1, 0.2, 0.3, 1}

// Light is the editable point light.
type Light struct {
	Position [3]float32
	Color    [3]float32
}

type App struct {
	cfg *config.Config
	log logging.Logger

	window   Window
	renderer Renderer
	library  *assets.Library

	model     *core.Model
	instances []core.Instance
	raw       []core.InstanceRaw
	positions []mgl32.Vec3
	bvh       *picking.InstanceBVH

	camera     *core.Camera
	controller *core.CameraController
	light      Light
	selection  *selection.Selection

	ui      *ui.Context
	uiInput ui.Input
	layout  ui.Layout
	target  render.Target

	cursor       mgl32.Vec2
	lookMode     bool
	sceneFocused bool
	fileMenuOpen bool
	quit         bool
}

func New(cfg *config.Config, log logging.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	log = logging.OrNop(log)

	cc := cfg.Camera
	camera := core.NewCamera(mgl32.Vec3(cc.Eye), mgl32.Vec3(cc.Target), cc.FovYDeg, cc.Near, cc.Far)
	controller := core.NewCameraController(cc.Speed, cc.Sensitivity)
	controller.SyncFromCamera(camera)

	return &App{
		cfg:        cfg,
		log:        log,
		library:    assets.NewLibrary(log),
		camera:     camera,
		controller: controller,
		light:      Light{Position: cfg.Light.Position, Color: cfg.Light.Color},
		selection:  selection.New(cfg.Selection.DragThresholdPx),
		ui:         ui.NewContext(nil),
	}
}

// Init loads the model, lays out the instance grid and uploads everything to
// the renderer. Any error is fatal: there is no scene to show.
func (a *App) Init(window Window, renderer Renderer) error {
	a.window = window
	a.renderer = renderer

	path := a.cfg.ModelPath()
	model, err := a.library.LoadModel(path)
	if err != nil {
		return fmt.Errorf("failed to load model %s: %w", path, err)
	}
	a.model = model

	a.instances = core.GridInstances(a.cfg.Scene.GridPerRow, a.cfg.Scene.GridSpacing)
	a.positions = core.InstancePositions(a.instances)
	a.raw = make([]core.InstanceRaw, len(a.instances))
	for i, inst := range a.instances {
		a.raw[i] = inst.ToRaw()
	}
	if len(a.instances) > picking.BVHThreshold {
		a.bvh = picking.BuildInstanceBVH(model, a.instances)
		a.log.Debugf("built instance BVH with %d nodes", a.bvh.Len())
	}

	atlas, err := ui.NewTextAtlas(textSize)
	if err != nil {
		a.log.Warnf("UI text disabled: %v", err)
	}
	a.ui = ui.NewContext(atlas)

	mats := a.library.Materials()
	textures := make([]*assets.Image, len(mats))
	for i, m := range mats {
		if m.Texture != nil {
			textures[i] = m.Texture.Image
		}
	}
	err = renderer.Upload(render.SceneAssets{
		Model:     model,
		Textures:  textures,
		Default:   a.library.Default().Image,
		Selection: a.cfg.Selection.SelectedColor,
		Hover:     a.cfg.Selection.HoverColor,
		Atlas:     atlas,
	})
	if err != nil {
		return fmt.Errorf("failed to upload scene: %w", err)
	}

	a.log.Infof("loaded %s: %d meshes, %d materials, %d triangles, %d instances",
		path, len(model.Meshes), len(model.Materials), model.TriangleCount(), len(a.instances))

	w, h := window.FramebufferSize()
	return a.Resize(w, h)
}

// Resize relayouts the UI for the new framebuffer size and rebuilds the
// renderer's targets. Zero sizes (minimized windows) are ignored.
func (a *App) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	sw, sh := width, height
	if a.window != nil {
		if w, h := a.window.Size(); w > 0 && h > 0 {
			sw, sh = w, h
		}
	}
	a.layout = ui.ComputeLayout(float32(sw), float32(sh))
	a.target = render.Target{
		Surface:  [2]int{width, height},
		Screen:   mgl32.Vec2{float32(sw), float32(sh)},
		Viewport: a.layout.Viewport,
	}
	a.camera.SetViewport(a.layout.Viewport.Width(), a.layout.Viewport.Height())
	if a.renderer == nil {
		return nil
	}
	return a.renderer.Resize(a.target)
}

// Update advances the camera from the held keys.
func (a *App) Update() {
	a.controller.UpdateCamera(a.camera)
	a.camera.SetViewport(a.layout.Viewport.Width(), a.layout.Viewport.Height())
}

// ShouldQuit reports whether File > Quit was chosen.
func (a *App) ShouldQuit() bool { return a.quit }

func (a *App) Selection() *selection.Selection { return a.selection }
func (a *App) Camera() *core.Camera             { return a.camera }
func (a *App) Light() Light                     { return a.light }
func (a *App) Layout() ui.Layout                { return a.layout }
func (a *App) Instances() []core.Instance       { return a.instances }

// Reconfigure restores a lost surface at the current size.
func (a *App) Reconfigure() {
	if a.renderer != nil {
		a.renderer.Reconfigure()
	}
}

func (a *App) Release() {
	if a.renderer != nil {
		a.renderer.Release()
	}
}

// toViewport converts a window point to viewport-local pixels.
func (a *App) toViewport(p mgl32.Vec2) mgl32.Vec2 {
	return p.Sub(a.layout.Viewport.Min)
}

func (a *App) overViewport(p mgl32.Vec2) bool {
	return a.layout.Viewport.Contains(p) && !a.ui.WantsPointerAt(p)
}

func (a *App) selectionView() selection.View {
	vp := a.layout.Viewport
	return selection.View{
		ViewProj:  a.camera.ViewProjection(),
		Viewport:  mgl32.Vec2{vp.Width(), vp.Height()},
		Positions: a.positions,
	}
}

// PickAt casts a ray through viewport-local pixel p.
func (a *App) PickAt(p mgl32.Vec2) (int, bool) {
	if a.model == nil || len(a.instances) == 0 {
		return 0, false
	}
	vp := a.layout.Viewport
	inv := a.camera.ViewProjection().Inv()
	ray := picking.ScreenToRay(p.X(), p.Y(), vp.Width(), vp.Height(), a.camera.Eye, inv)

	var hit picking.Hit
	var ok bool
	if a.bvh != nil {
		hit, ok = picking.PickAccelerated(ray, a.model, a.instances, a.bvh)
	} else {
		hit, ok = picking.Pick(ray, a.model, a.instances)
	}
	return hit.Instance, ok
}
