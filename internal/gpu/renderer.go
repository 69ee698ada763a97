package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/meshview/internal/assets"
	"github.com/gekko3d/meshview/internal/logging"
	"github.com/gekko3d/meshview/internal/render"
	"github.com/gekko3d/meshview/internal/ui"
)

var errNotUploaded = errors.New("scene assets not uploaded")

// Renderer executes render.Frames: the scene goes into an offscreen target at
// viewport size, then the UI pass composites it with the panels onto the
// surface.
type Renderer struct {
	log     logging.Logger
	ctx     *Context
	buffers *BufferManager
	pipes   *Pipelines

	sampler   *wgpu.Sampler
	uiSampler *wgpu.Sampler

	cameraGroup *wgpu.BindGroup
	lightGroup  *wgpu.BindGroup
	screenGroup *wgpu.BindGroup

	// Material groups are parallel to Model.Materials.
	textures       []*Texture
	materialGroups []*wgpu.BindGroup
	defaultGroup   *wgpu.BindGroup
	selectionGroup *wgpu.BindGroup
	hoverGroup     *wgpu.BindGroup

	atlas      *Texture
	atlasGroup *wgpu.BindGroup

	color         *Texture
	depth         *Texture
	viewportGroup *wgpu.BindGroup
	target        render.Target

	uploaded bool
}

func NewRenderer(ctx *Context, log logging.Logger) (*Renderer, error) {
	r := &Renderer{log: logging.OrNop(log), ctx: ctx}

	var err error
	if r.buffers, err = NewBufferManager(ctx.Device); err != nil {
		return nil, err
	}
	if r.pipes, err = NewPipelines(ctx.Device, ctx.Format(), ctx.Format()); err != nil {
		return nil, fmt.Errorf("failed to create pipelines: %w", err)
	}
	if r.sampler, err = newSampler(ctx.Device); err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	if r.uiSampler, err = newUISampler(ctx.Device); err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}

	if r.cameraGroup, err = r.uniformGroup("CameraBG", r.pipes.CameraLayout, r.buffers.CameraBuf, cameraUniformSize); err != nil {
		return nil, err
	}
	if r.lightGroup, err = r.uniformGroup("LightBG", r.pipes.LightLayout, r.buffers.LightBuf, lightUniformSize); err != nil {
		return nil, err
	}
	if r.screenGroup, err = r.uniformGroup("ScreenBG", r.pipes.ScreenLayout, r.buffers.ScreenBuf, screenUniformSize); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) uniformGroup(label string, layout *wgpu.BindGroupLayout, buf *wgpu.Buffer, size uint64) (*wgpu.BindGroup, error) {
	bg, err := r.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Size:    size,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return bg, nil
}

func (r *Renderer) textureGroup(label string, view *wgpu.TextureView, sampler *wgpu.Sampler) (*wgpu.BindGroup, error) {
	bg, err := r.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: r.pipes.TextureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", label, err)
	}
	return bg, nil
}

// imageGroup uploads img and binds it with the scene sampler.
func (r *Renderer) imageGroup(label string, img *assets.Image) (*wgpu.BindGroup, error) {
	t, err := UploadImage(r.ctx.Device, r.ctx.Queue, label, img)
	if err != nil {
		return nil, err
	}
	r.textures = append(r.textures, t)
	return r.textureGroup(label+" BG", t.View, r.sampler)
}

// Upload sends the model geometry, material textures, overlay colors and
// glyph atlas to the GPU, replacing anything uploaded before.
func (r *Renderer) Upload(s render.SceneAssets) error {
	if s.Model == nil {
		return errors.New("upload: nil model")
	}
	r.releaseScene()

	if err := r.buffers.UploadModel(s.Model); err != nil {
		return err
	}

	def := s.Default
	if def == nil {
		def = assets.SolidImage(assets.White)
	}
	var err error
	if r.defaultGroup, err = r.imageGroup("Default Texture", def); err != nil {
		return err
	}

	r.materialGroups = make([]*wgpu.BindGroup, len(s.Model.Materials))
	for i, m := range s.Model.Materials {
		img := def
		if i < len(s.Textures) && s.Textures[i] != nil {
			img = s.Textures[i]
		}
		if r.materialGroups[i], err = r.imageGroup("Material "+m.Name, img); err != nil {
			return err
		}
	}

	if r.selectionGroup, err = r.imageGroup("Selection Color", assets.ColorImage(s.Selection)); err != nil {
		return err
	}
	if r.hoverGroup, err = r.imageGroup("Hover Color", assets.ColorImage(s.Hover)); err != nil {
		return err
	}

	if s.Atlas != nil {
		if r.atlas, err = uploadAlpha(r.ctx.Device, r.ctx.Queue, "Glyph Atlas", s.Atlas.Image); err != nil {
			return err
		}
		if r.atlasGroup, err = r.textureGroup("Glyph Atlas BG", r.atlas.View, r.uiSampler); err != nil {
			return err
		}
	} else {
		// Flat UI quads still need something bound in the texture slot.
		r.atlasGroup = r.defaultGroup
	}

	r.uploaded = true
	r.log.Debugf("uploaded %d meshes, %d materials", len(s.Model.Meshes), len(s.Model.Materials))
	return nil
}

// Resize reconfigures the surface and rebuilds the offscreen color and depth
// targets for t. Invalid targets (minimized windows) are ignored.
func (r *Renderer) Resize(t render.Target) error {
	if !t.Valid() {
		return nil
	}
	r.ctx.Configure(t.Surface[0], t.Surface[1])

	w, h := t.ViewportPixels()
	r.releaseTargets()

	var err error
	if r.color, err = newColorTarget(r.ctx.Device, r.ctx.Format(), uint32(w), uint32(h)); err != nil {
		return err
	}
	if r.depth, err = newDepthTarget(r.ctx.Device, uint32(w), uint32(h)); err != nil {
		return err
	}
	if r.viewportGroup, err = r.textureGroup("Viewport BG", r.color.View, r.uiSampler); err != nil {
		return err
	}
	r.target = t
	r.log.Debugf("resized surface to %dx%d, viewport target %dx%d", t.Surface[0], t.Surface[1], w, h)
	return nil
}

// Reconfigure restores the surface after a lost or outdated error.
func (r *Renderer) Reconfigure() {
	r.ctx.Reconfigure()
}

// Render draws f. It returns render.ErrTargetStale when f was laid out for a
// size Resize has not seen, and classified surface errors from acquisition.
func (r *Renderer) Render(f *render.Frame) error {
	if !r.uploaded {
		return errNotUploaded
	}
	if f.Target != r.target || r.color == nil {
		return render.ErrTargetStale
	}

	r.buffers.UpdateCamera(f.Camera)
	r.buffers.UpdateLight(f.Light)
	r.buffers.UpdateScreen(f.Target.Screen)
	if err := r.buffers.UpdateInstances(f.Instances); err != nil {
		return err
	}
	var uiVerts []ui.Vertex
	if f.UI != nil {
		uiVerts = f.UI.Vertices
	}
	if err := r.buffers.UpdateUI(uiVerts); err != nil {
		return err
	}

	next, err := r.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return render.ClassifySurfaceError(err)
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := r.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("failed to create command encoder: %w", err)
	}
	defer encoder.Release()

	if err := r.scenePass(encoder, f); err != nil {
		return err
	}
	if err := r.uiPass(encoder, view, f); err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("failed to finish command encoder: %w", err)
	}
	defer cmd.Release()

	r.ctx.Queue.Submit(cmd)
	r.ctx.Surface.Present()
	return nil
}

func (r *Renderer) scenePass(encoder *wgpu.CommandEncoder, f *render.Frame) error {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Scene Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       r.color.View,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(f.Clear[0]), G: float64(f.Clear[1]), B: float64(f.Clear[2]), A: float64(f.Clear[3])},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depth.View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1,
		},
	})

	if r.buffers.InstanceBuf != nil && r.buffers.InstanceCount > 0 {
		r.drawPlan(pass, f.Plan)
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("scene pass: %w", err)
	}
	return nil
}

func (r *Renderer) drawPlan(pass *wgpu.RenderPassEncoder, plan []render.DrawCall) {
	var current *wgpu.RenderPipeline
	instances := r.buffers.InstanceBuf

	for _, dc := range plan {
		if dc.Mesh < 0 || dc.Mesh >= len(r.buffers.Meshes) || dc.Instances.Count() == 0 {
			continue
		}
		if dc.Instances.End > r.buffers.InstanceCount {
			continue
		}
		mesh := &r.buffers.Meshes[dc.Mesh]

		pipeline := r.pipes.Mesh
		index, count := mesh.Index, mesh.IndexCount
		if dc.Pass != render.PassOpaque {
			pipeline = r.pipes.Wireframe
			index, count = mesh.Edges, mesh.EdgeCount
		}
		if index == nil || count == 0 {
			continue
		}

		if pipeline != current {
			pass.SetPipeline(pipeline)
			pass.SetBindGroup(1, r.cameraGroup, nil)
			if pipeline == r.pipes.Mesh {
				pass.SetBindGroup(2, r.lightGroup, nil)
			}
			current = pipeline
		}
		pass.SetBindGroup(0, r.bindGroupFor(dc), nil)

		pass.SetVertexBuffer(0, mesh.Vertex, 0, mesh.Vertex.GetSize())
		pass.SetVertexBuffer(1, instances, 0, instances.GetSize())
		pass.SetIndexBuffer(index, wgpu.IndexFormatUint32, 0, index.GetSize())
		pass.DrawIndexed(count, dc.Instances.Count(), 0, 0, dc.Instances.Start)
	}
}

func (r *Renderer) bindGroupFor(dc render.DrawCall) *wgpu.BindGroup {
	switch dc.Bind {
	case render.BindSelection:
		return r.selectionGroup
	case render.BindHover:
		return r.hoverGroup
	case render.BindMaterial:
		if dc.Material >= 0 && dc.Material < len(r.materialGroups) {
			return r.materialGroups[dc.Material]
		}
	}
	return r.defaultGroup
}

func (r *Renderer) uiPass(encoder *wgpu.CommandEncoder, view *wgpu.TextureView, f *render.Frame) error {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "UI Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.06, G: 0.06, B: 0.07, A: 1},
		}},
	})

	if f.UI != nil && r.buffers.UIVertexBuf != nil && r.buffers.UIVertexCount > 0 {
		vb := r.buffers.UIVertexBuf
		pass.SetPipeline(r.pipes.UI)
		pass.SetBindGroup(0, r.screenGroup, nil)
		pass.SetVertexBuffer(0, vb, 0, vb.GetSize())
		for _, b := range f.UI.Batches {
			if b.Count == 0 {
				continue
			}
			tex := r.atlasGroup
			if b.Texture == ui.TextureViewport {
				tex = r.viewportGroup
			}
			pass.SetBindGroup(1, tex, nil)
			pass.Draw(b.Count, 1, b.First, 0)
		}
	}

	if err := pass.End(); err != nil {
		return fmt.Errorf("ui pass: %w", err)
	}
	return nil
}

func (r *Renderer) releaseScene() {
	for _, t := range r.textures {
		t.Release()
	}
	r.textures = nil
	groups := append([]*wgpu.BindGroup{r.defaultGroup, r.selectionGroup, r.hoverGroup}, r.materialGroups...)
	if r.atlasGroup != r.defaultGroup {
		groups = append(groups, r.atlasGroup)
	}
	for _, g := range groups {
		if g != nil {
			g.Release()
		}
	}
	r.materialGroups = nil
	r.defaultGroup, r.selectionGroup, r.hoverGroup, r.atlasGroup = nil, nil, nil, nil
	r.atlas.Release()
	r.atlas = nil
	r.uploaded = false
}

func (r *Renderer) releaseTargets() {
	if r.viewportGroup != nil {
		r.viewportGroup.Release()
		r.viewportGroup = nil
	}
	r.color.Release()
	r.depth.Release()
	r.color, r.depth = nil, nil
	r.target = render.Target{}
}

func (r *Renderer) Release() {
	r.releaseScene()
	r.releaseTargets()
	for _, g := range []*wgpu.BindGroup{r.cameraGroup, r.lightGroup, r.screenGroup} {
		if g != nil {
			g.Release()
		}
	}
	if r.sampler != nil {
		r.sampler.Release()
	}
	if r.uiSampler != nil {
		r.uiSampler.Release()
	}
	r.buffers.Release()
	r.pipes.Release()
}
