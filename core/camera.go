package core

import (
	"errors"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	FieldOfView = 45.0

	DefaultRigMoveSpeed     = 20.0
	DefaultRigRotationSpeed = 40.0

	MinRigMoveSpeed = 1.0
	MaxRigMoveSpeed = 2000.0

	// WheelSpeedRate is how much move speed changes per second of scroll.
	WheelSpeedRate = 20.0

	// MaxRotationStep bounds each rotation axis per update, in degrees.
	MaxRotationStep = 20.0
)

var ErrCameraRigExists = errors.New("camera rig already exists")

var (
	activeRigMu sync.Mutex
	activeRig   *CameraRig
)

// FreeLookInput is the slice of the input source the rig reads in free-look mode.
type FreeLookInput interface {
	CursorLocked() bool
	MouseWheel() float32
	Axis() mgl32.Vec2
	MouseDelta() mgl32.Vec2
}

type CameraRig struct {
	Transform Transform

	view     mgl32.Mat4
	proj     mgl32.Mat4
	viewProj mgl32.Mat4
	mode     CameraMode

	moveSpeed float32
	rotSpeed  float32
}

// NewCameraRig builds the rig and claims the process-wide slot. Only one rig
// may be alive at a time; a second construction fails with ErrCameraRigExists
// until the first one is closed.
func NewCameraRig(viewport mgl32.Vec2, position, rotation mgl32.Vec3, near, far float32) (*CameraRig, error) {
	activeRigMu.Lock()
	defer activeRigMu.Unlock()

	if activeRig != nil {
		return nil, ErrCameraRigExists
	}

	aspect := float32(1)
	if viewport.Y() > 0 {
		aspect = viewport.X() / viewport.Y()
	}

	rig := &CameraRig{
		Transform: NewTransform(position, rotation, mgl32.Vec3{1, 1, 1}),
		proj:      mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, near, far),
		mode:      FirstPerson,
		moveSpeed: DefaultRigMoveSpeed,
		rotSpeed:  DefaultRigRotationSpeed,
	}
	rig.UpdateMat()

	activeRig = rig
	return rig, nil
}

// ActiveCameraRig returns the registered rig, or nil when none is alive.
func ActiveCameraRig() *CameraRig {
	activeRigMu.Lock()
	defer activeRigMu.Unlock()
	return activeRig
}

// Close releases the process-wide slot if this rig holds it.
func (r *CameraRig) Close() {
	activeRigMu.Lock()
	defer activeRigMu.Unlock()
	if activeRig == r {
		activeRig = nil
	}
}

func (r *CameraRig) Mode() CameraMode        { return r.mode }
func (r *CameraRig) SetMode(mode CameraMode) { r.mode = mode }

func (r *CameraRig) ToggleMode() {
	r.mode = r.mode.Toggled()
}

func (r *CameraRig) MoveSpeed() float32 { return r.moveSpeed }

func (r *CameraRig) SetMoveSpeed(speed float32) {
	r.moveSpeed = mgl32.Clamp(speed, MinRigMoveSpeed, MaxRigMoveSpeed)
}

// UpdateMat rebuilds the view and view-projection matrices from the transform.
// Call it after mutating Transform and before trusting ViewProj.
func (r *CameraRig) UpdateMat() {
	switch r.mode {
	case ThirdPerson:
		r.view = r.Transform.World.Inv()
	default:
		eye := r.Transform.Position
		r.view = mgl32.LookAtV(eye, eye.Add(r.Transform.Forward), mgl32.Vec3{0, 1, 0})
	}
	r.viewProj = r.proj.Mul4(r.view)
}

// Update drives the rig directly from input (free-look). It does nothing
// while the cursor is released.
func (r *CameraRig) Update(dt float32, input FreeLookInput) {
	if !input.CursorLocked() {
		return
	}
	if dt < 0 {
		dt = 0
	}

	r.SetMoveSpeed(r.moveSpeed + input.MouseWheel()*WheelSpeedRate*dt)

	moveDelta := input.Axis().Mul(r.moveSpeed * dt)
	rotDelta := input.MouseDelta().Mul(-r.rotSpeed * dt)

	if moveDelta.Len() > 0 {
		r.Transform.TranslateRel(mgl32.Vec3{moveDelta.X(), 0, moveDelta.Y()})
	}
	if rotDelta.Len() > 0 {
		r.Transform.Rotate(ClampAxes3(mgl32.Vec3{rotDelta.Y(), rotDelta.X(), 0}, MaxRotationStep))
	}

	r.UpdateMat()
}

// Follow places the rig relative to the actor according to the current mode
// and rebuilds the matrices.
func (r *CameraRig) Follow(actor *Transform) {
	r.mode.Place(&r.Transform, actor)
	r.UpdateMat()
}

func (r *CameraRig) View() mgl32.Mat4       { return r.view }
func (r *CameraRig) Projection() mgl32.Mat4 { return r.proj }
func (r *CameraRig) ViewProj() mgl32.Mat4   { return r.viewProj }
