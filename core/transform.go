package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform holds a position, Euler rotation in degrees (X pitch, Y yaw,
// Z roll) and scale. Forward and World are derived and only valid after
// Update; every mutating helper calls it.
//
// Axes are right-handed with +Y up. The local forward axis is -Z.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Forward mgl32.Vec3
	World   mgl32.Mat4
}

func NewTransform(position, rotation, scale mgl32.Vec3) Transform {
	t := Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	}
	t.Update()
	return t
}

// RotationMatrix returns Ry(yaw) * Rx(pitch) * Rz(roll).
func (t *Transform) RotationMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X()))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())))
}

// Update recomputes Forward and World from Position, Rotation and Scale.
func (t *Transform) Update() {
	// M = T * R * S
	rotate := t.RotationMatrix()
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	t.Forward = rotate.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	t.World = translate.Mul4(rotate).Mul4(scale)
}

// TranslateRel moves the transform in its own frame: delta.X along right,
// delta.Y along up and delta.Z along forward.
func (t *Transform) TranslateRel(delta mgl32.Vec3) {
	local := mgl32.Vec4{delta.X(), delta.Y(), -delta.Z(), 0}
	t.Position = t.Position.Add(t.RotationMatrix().Mul4x1(local).Vec3())
	t.Update()
}

// Rotate adds delta degrees to the Euler rotation.
func (t *Transform) Rotate(delta mgl32.Vec3) {
	t.Rotation = t.Rotation.Add(delta)
	t.Update()
}
