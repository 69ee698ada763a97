package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/meshview/internal/core"
	"github.com/gekko3d/meshview/internal/ui"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraUniformSize = uint64(unsafe.Sizeof(core.CameraUniform{}))
	lightUniformSize  = uint64(unsafe.Sizeof(core.LightUniform{}))
	screenUniformSize = 16
)

// MeshBuffers holds one mesh's geometry. Edges index the same vertices as
// line-list pairs for the wireframe overlays.
type MeshBuffers struct {
	Vertex     *wgpu.Buffer
	Index      *wgpu.Buffer
	Edges      *wgpu.Buffer
	IndexCount uint32
	EdgeCount  uint32
}

func (b *MeshBuffers) release() {
	for _, buf := range []*wgpu.Buffer{b.Vertex, b.Index, b.Edges} {
		if buf != nil {
			buf.Release()
		}
	}
}

// BufferManager keeps per-mesh geometry parallel to Model.Meshes plus the
// per-frame instance, uniform and UI vertex buffers.
type BufferManager struct {
	Device *wgpu.Device
	Meshes []MeshBuffers

	InstanceBuf   *wgpu.Buffer
	InstanceCount uint32

	CameraBuf *wgpu.Buffer
	LightBuf  *wgpu.Buffer
	ScreenBuf *wgpu.Buffer

	UIVertexBuf   *wgpu.Buffer
	UIVertexCount uint32
}

// NewBufferManager allocates the fixed-size uniform buffers so bind groups can
// reference them before the first frame.
func NewBufferManager(device *wgpu.Device) (*BufferManager, error) {
	m := &BufferManager{Device: device}
	if _, err := m.ensureBuffer("Camera Uniform", &m.CameraBuf, make([]byte, cameraUniformSize), wgpu.BufferUsageUniform, 0); err != nil {
		return nil, err
	}
	if _, err := m.ensureBuffer("Light Uniform", &m.LightBuf, make([]byte, lightUniformSize), wgpu.BufferUsageUniform, 0); err != nil {
		return nil, err
	}
	if _, err := m.ensureBuffer("Screen Uniform", &m.ScreenBuf, make([]byte, screenUniformSize), wgpu.BufferUsageUniform, 0); err != nil {
		return nil, err
	}
	return m, nil
}

// ensureBuffer writes data into *buf, replacing it first when it is missing or
// too small. It reports whether the buffer was recreated.
func (m *BufferManager) ensureBuffer(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage, headroom int) (bool, error) {
	neededSize := uint64(len(data) + headroom)
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}

	recreated := false
	current := *buf
	if current == nil || current.GetSize() < neededSize {
		if current != nil {
			current.Release()
		}
		newBuf, err := m.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            name,
			Size:             neededSize,
			Usage:            usage | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			*buf = nil
			return false, fmt.Errorf("failed to create %s buffer: %w", name, err)
		}
		*buf = newBuf
		recreated = true
	}

	if len(data) > 0 {
		// Writes must be 4-byte multiples; pad the tail.
		if rem := len(data) % 4; rem != 0 {
			data = append(data[:len(data):len(data)], make([]byte, 4-rem)...)
		}
		m.Device.GetQueue().WriteBuffer(*buf, 0, data)
	}
	return recreated, nil
}

// UploadModel replaces all mesh geometry. Meshes without triangles keep an
// empty slot so indices stay parallel to the model.
func (m *BufferManager) UploadModel(model *core.Model) error {
	m.releaseMeshes()
	m.Meshes = make([]MeshBuffers, len(model.Meshes))
	for i := range model.Meshes {
		mesh := &model.Meshes[i]
		if len(mesh.Indices) == 0 || len(mesh.Vertices) == 0 {
			continue
		}
		b := &m.Meshes[i]
		label := fmt.Sprintf("Mesh %d %q", i, mesh.Name)

		if _, err := m.ensureBuffer(label+" VB", &b.Vertex, sliceBytes(mesh.Vertices), wgpu.BufferUsageVertex, 0); err != nil {
			return err
		}
		if _, err := m.ensureBuffer(label+" IB", &b.Index, sliceBytes(mesh.Indices), wgpu.BufferUsageIndex, 0); err != nil {
			return err
		}
		b.IndexCount = uint32(len(mesh.Indices))

		edges := mesh.EdgeIndices()
		if len(edges) > 0 {
			if _, err := m.ensureBuffer(label+" Edges", &b.Edges, sliceBytes(edges), wgpu.BufferUsageIndex, 0); err != nil {
				return err
			}
			b.EdgeCount = uint32(len(edges))
		}
	}
	return nil
}

func (m *BufferManager) UpdateInstances(raw []core.InstanceRaw) error {
	m.InstanceCount = uint32(len(raw))
	if len(raw) == 0 {
		return nil
	}
	_, err := m.ensureBuffer("Instances", &m.InstanceBuf, sliceBytes(raw), wgpu.BufferUsageVertex, 0)
	return err
}

func (m *BufferManager) UpdateCamera(u core.CameraUniform) {
	m.Device.GetQueue().WriteBuffer(m.CameraBuf, 0, structBytes(&u))
}

func (m *BufferManager) UpdateLight(u core.LightUniform) {
	m.Device.GetQueue().WriteBuffer(m.LightBuf, 0, structBytes(&u))
}

func (m *BufferManager) UpdateScreen(size mgl32.Vec2) {
	data := [4]float32{size.X(), size.Y(), 0, 0}
	m.Device.GetQueue().WriteBuffer(m.ScreenBuf, 0, structBytes(&data))
}

// UpdateUI uploads the UI vertices, growing the buffer with headroom for a
// few more widgets.
func (m *BufferManager) UpdateUI(verts []ui.Vertex) error {
	m.UIVertexCount = uint32(len(verts))
	if len(verts) == 0 {
		return nil
	}
	headroom := 256 * int(unsafe.Sizeof(ui.Vertex{}))
	_, err := m.ensureBuffer("UI VB", &m.UIVertexBuf, sliceBytes(verts), wgpu.BufferUsageVertex, headroom)
	return err
}

func (m *BufferManager) releaseMeshes() {
	for i := range m.Meshes {
		m.Meshes[i].release()
	}
	m.Meshes = nil
}

func (m *BufferManager) Release() {
	m.releaseMeshes()
	for _, buf := range []**wgpu.Buffer{&m.InstanceBuf, &m.CameraBuf, &m.LightBuf, &m.ScreenBuf, &m.UIVertexBuf} {
		if *buf != nil {
			(*buf).Release()
			*buf = nil
		}
	}
}

func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

func structBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
