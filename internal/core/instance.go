package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is one placement of the model: rotation, then translation.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// InstanceRaw is the per-instance vertex block (locations 5..8).
type InstanceRaw struct {
	Model [16]float32
}

func (i Instance) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z())
	return t.Mul4(i.Rotation.Normalize().Mat4())
}

func (i Instance) ToRaw() InstanceRaw {
	return InstanceRaw{Model: i.Matrix()}
}

// WorldToLocalRay maps a world-space ray into the instance's local frame.
func (i Instance) WorldToLocalRay(origin, dir mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	inv := i.Rotation.Normalize().Inverse()
	return inv.Rotate(origin.Sub(i.Position)), inv.Rotate(dir)
}

// GridInstances lays perRow*perRow instances on the XZ plane, centered near
// the origin. Each is tilted 45 degrees about its own position axis; the one
// at the exact origin keeps the identity rotation.
func GridInstances(perRow int, spacing float32) []Instance {
	if perRow <= 0 {
		return nil
	}
	disp := mgl32.Vec3{float32(perRow) * 0.5, 0, float32(perRow) * 0.5}
	out := make([]Instance, 0, perRow*perRow)
	for z := 0; z < perRow; z++ {
		for x := 0; x < perRow; x++ {
			pos := mgl32.Vec3{float32(x) * spacing, 0, float32(z) * spacing}.Sub(disp)
			rot := mgl32.QuatIdent()
			if pos.Len() > 0 {
				rot = mgl32.QuatRotate(mgl32.DegToRad(45), pos.Normalize())
			}
			out = append(out, Instance{Position: pos, Rotation: rot})
		}
	}
	return out
}

// InstancePositions returns the world origin of each instance.
func InstancePositions(instances []Instance) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(instances))
	for i, inst := range instances {
		out[i] = inst.Position
	}
	return out
}
