package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/meshview/internal/assets"
)

const DepthFormat = wgpu.TextureFormatDepth32Float

type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32
}

func (t *Texture) Release() {
	if t == nil {
		return
	}
	if t.View != nil {
		t.View.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}

func newTexture(device *wgpu.Device, label string, format wgpu.TextureFormat, usage wgpu.TextureUsage, w, h uint32) (*Texture, error) {
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		Format:        format,
		Usage:         usage,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %s: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create view for %s: %w", label, err)
	}
	return &Texture{Texture: tex, View: view, Width: w, Height: h}, nil
}

// UploadImage creates an sRGB texture from a decoded RGBA image.
func UploadImage(device *wgpu.Device, queue *wgpu.Queue, label string, img *assets.Image) (*Texture, error) {
	w, h := uint32(img.Width), uint32(img.Height)
	t, err := newTexture(device, label, wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, w, h)
	if err != nil {
		return nil, err
	}
	queue.WriteTexture(t.Texture.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  img.BytesPerRow(),
		RowsPerImage: h,
	}, &wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1})
	return t, nil
}

// uploadAlpha creates a single-channel texture, used for the glyph atlas.
func uploadAlpha(device *wgpu.Device, queue *wgpu.Queue, label string, img *image.Alpha) (*Texture, error) {
	w, h := uint32(img.Bounds().Dx()), uint32(img.Bounds().Dy())
	t, err := newTexture(device, label, wgpu.TextureFormatR8Unorm,
		wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, w, h)
	if err != nil {
		return nil, err
	}
	queue.WriteTexture(t.Texture.AsImageCopy(), img.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(img.Stride),
		RowsPerImage: h,
	}, &wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1})
	return t, nil
}

// newColorTarget is the offscreen scene image: rendered into, then sampled by
// the UI pass.
func newColorTarget(device *wgpu.Device, format wgpu.TextureFormat, w, h uint32) (*Texture, error) {
	return newTexture(device, "Scene Color", format,
		wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, w, h)
}

func newDepthTarget(device *wgpu.Device, w, h uint32) (*Texture, error) {
	return newTexture(device, "Scene Depth", DepthFormat, wgpu.TextureUsageRenderAttachment, w, h)
}

func newSampler(device *wgpu.Device) (*wgpu.Sampler, error) {
	return device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
}

// newUISampler clamps so image and glyph edges do not bleed.
func newUISampler(device *wgpu.Device) (*wgpu.Sampler, error) {
	return device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
}
