// Package gpu owns the WebGPU device and draws render.Frames onto a window
// surface.
package gpu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	ErrSurfaceCreate = errors.New("failed to create surface")
	ErrNoAdapter     = errors.New("no compatible GPU adapter")
	ErrDeviceRequest = errors.New("failed to request device")
)

type Context struct {
	Instance *wgpu.Instance
	Surface  *wgpu.Surface
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Config   *wgpu.SurfaceConfiguration
}

// NewContext wraps the window surface described by desc and brings up a
// device for it, configured at width x height framebuffer pixels.
func NewContext(desc *wgpu.SurfaceDescriptor, width, height int, vsync bool) (*Context, error) {
	c := &Context{Instance: wgpu.CreateInstance(nil)}

	c.Surface = c.Instance.CreateSurface(desc)
	if c.Surface == nil {
		c.Release()
		return nil, ErrSurfaceCreate
	}

	adapter, err := c.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: %v", ErrNoAdapter, err)
	}
	c.Adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "meshview device",
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("%w: %v", ErrDeviceRequest, err)
	}
	c.Device = device
	c.Queue = device.GetQueue()

	caps := c.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		c.Release()
		return nil, fmt.Errorf("%w: surface reports no formats", ErrSurfaceCreate)
	}

	present := wgpu.PresentModeFifo
	if !vsync && slices.Contains(caps.PresentModes, wgpu.PresentModeImmediate) {
		present = wgpu.PresentModeImmediate
	}

	c.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: present,
		AlphaMode:   caps.AlphaModes[0],
	}
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	return c, nil
}

// Configure resizes the surface. Zero sizes (minimized windows) are ignored.
func (c *Context) Configure(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.Config.Width = uint32(width)
	c.Config.Height = uint32(height)
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
	return true
}

// Reconfigure reapplies the current size after a lost or outdated surface.
func (c *Context) Reconfigure() {
	c.Surface.Configure(c.Adapter, c.Device, c.Config)
}

func (c *Context) Format() wgpu.TextureFormat {
	return c.Config.Format
}

func (c *Context) Release() {
	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}
	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}
	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}
	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
	if c.Instance != nil {
		c.Instance.Release()
		c.Instance = nil
	}
}
