package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/shaders"
	"github.com/gekko3d/meshview/internal/ui"
)

// Pipelines holds the three render pipelines and the explicit bind group
// layouts they share.
type Pipelines struct {
	Mesh      *wgpu.RenderPipeline
	Wireframe *wgpu.RenderPipeline
	UI        *wgpu.RenderPipeline

	TextureLayout *wgpu.BindGroupLayout
	CameraLayout  *wgpu.BindGroupLayout
	LightLayout   *wgpu.BindGroupLayout
	ScreenLayout  *wgpu.BindGroupLayout
}

var meshVertexLayouts = []wgpu.VertexBufferLayout{
	{
		ArrayStride: uint64(unsafe.Sizeof(core.Vertex{})),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 32, ShaderLocation: 3},
		},
	},
	{
		ArrayStride: uint64(unsafe.Sizeof(core.InstanceRaw{})),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
		},
	},
}

var uiVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: uint64(unsafe.Sizeof(ui.Vertex{})),
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
		{Format: wgpu.VertexFormatFloat32, Offset: 32, ShaderLocation: 3},
	},
}

var alphaBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

var noStencil = wgpu.StencilFaceState{
	Compare:     wgpu.CompareFunctionAlways,
	FailOp:      wgpu.StencilOperationKeep,
	DepthFailOp: wgpu.StencilOperationKeep,
	PassOp:      wgpu.StencilOperationKeep,
}

func uniformLayout(device *wgpu.Device, label string, vis wgpu.ShaderStage, size uint64) (*wgpu.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: vis,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		}},
	})
}

func textureLayout(device *wgpu.Device) (*wgpu.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "TextureBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
}

func shaderModule(device *wgpu.Device, label, code string) (*wgpu.ShaderModule, error) {
	return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
}

// NewPipelines builds the scene pipelines for sceneFormat (the offscreen
// target) and the UI pipeline for surfaceFormat.
func NewPipelines(device *wgpu.Device, sceneFormat, surfaceFormat wgpu.TextureFormat) (*Pipelines, error) {
	p := &Pipelines{}
	var err error
	if p.TextureLayout, err = textureLayout(device); err != nil {
		return nil, err
	}
	if p.CameraLayout, err = uniformLayout(device, "CameraBGL", wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, cameraUniformSize); err != nil {
		return nil, err
	}
	if p.LightLayout, err = uniformLayout(device, "LightBGL", wgpu.ShaderStageFragment, lightUniformSize); err != nil {
		return nil, err
	}
	if p.ScreenLayout, err = uniformLayout(device, "ScreenBGL", wgpu.ShaderStageVertex, screenUniformSize); err != nil {
		return nil, err
	}

	if p.Mesh, err = p.meshPipeline(device, sceneFormat); err != nil {
		return nil, err
	}
	if p.Wireframe, err = p.wireframePipeline(device, sceneFormat); err != nil {
		return nil, err
	}
	if p.UI, err = p.uiPipeline(device, surfaceFormat); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipelines) meshPipeline(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := shaderModule(device, "Mesh Shader", shaders.MeshWGSL)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Mesh Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.TextureLayout, p.CameraLayout, p.LightLayout},
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Mesh Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    meshVertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     nil,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      noStencil,
			StencilBack:       noStencil,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

// wireframePipeline draws edge lines over already shaded geometry. It tests
// against the scene depth but never writes it.
func (p *Pipelines) wireframePipeline(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := shaderModule(device, "Wireframe Shader", shaders.WireframeWGSL)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Wireframe Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.TextureLayout, p.CameraLayout},
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Wireframe Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    meshVertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     alphaBlend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront:      noStencil,
			StencilBack:       noStencil,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (p *Pipelines) uiPipeline(device *wgpu.Device, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	module, err := shaderModule(device, "UI Shader", shaders.UIWGSL)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "UI Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.ScreenLayout, p.TextureLayout},
	})
	if err != nil {
		return nil, err
	}
	defer layout.Release()

	return device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "UI Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{uiVertexLayout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     alphaBlend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (p *Pipelines) Release() {
	for _, pl := range []*wgpu.RenderPipeline{p.Mesh, p.Wireframe, p.UI} {
		if pl != nil {
			pl.Release()
		}
	}
	for _, l := range []*wgpu.BindGroupLayout{p.TextureLayout, p.CameraLayout, p.LightLayout, p.ScreenLayout} {
		if l != nil {
			l.Release()
		}
	}
}
