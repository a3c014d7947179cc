package trex

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gekko3d/trex/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	WalkSpeed      = 10.0
	SprintSpeed    = 20.0
	SpeedBlendRate = 2.0
	TurnBlendRate  = 2.0

	DefaultCharacterRotationSpeed = 20.0

	JumpImpulse      = 20.0
	GroundBias       = -2.0
	GravityAccel     = 40.0
	MaxVerticalSpeed = 20.0

	MinCameraPitch = -60.0
	MaxCameraPitch = 10.0
	MaxLookStep    = 20.0

	AnimRun  = "Run"
	AnimIdle = "Idle"
)

var (
	ErrNilCameraRig  = errors.New("nil camera rig")
	ErrNilCollisions = errors.New("nil collision collaborator")
)

// ControllerInput is the slice of the input source the character reads.
type ControllerInput interface {
	Axis() mgl32.Vec2
	MouseDelta() mgl32.Vec2
	CursorLocked() bool
	KeyPressed(key int) bool
	KeyDown(key int) bool
}

type CharacterBindings struct {
	Jump         int
	Sprint       int
	ToggleCamera int
}

func DefaultCharacterBindings() CharacterBindings {
	return CharacterBindings{
		Jump:         KeySpace,
		Sprint:       KeyShift,
		ToggleCamera: KeyF,
	}
}

// CharacterVisuals names the render resources used by Draw.
type CharacterVisuals struct {
	Shader        string
	Mesh          string
	BaseTexture   string
	NormalTexture string
}

type CharacterOptions struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	Visuals  CharacterVisuals
	Animator Animator
	Bindings *CharacterBindings
	Logger   Logger
}

// CharacterController integrates the actor's motion each frame and keeps the
// camera rig attached to it. The collision pass sets colliding between
// frames; Update consumes and clears it.
type CharacterController struct {
	Transform core.Transform

	VerticalVelocity float32
	MoveSpeed        float32
	RotationSpeed    float32

	HalfExtents mgl32.Vec3
	Offset      mgl32.Vec3
	Tag         string

	grounded   bool
	colliding  bool
	toggleHeld bool

	rig        *core.CameraRig
	collisions *Collisions
	colliderId ColliderId
	animator   Animator
	visuals    CharacterVisuals
	bindings   CharacterBindings
	logger     Logger
	closeOnce  sync.Once
}

// NewCharacterController registers the actor with collisions and frames the
// rig behind it. Call Close to deregister.
func NewCharacterController(rig *core.CameraRig, collisions *Collisions, opts CharacterOptions) (*CharacterController, error) {
	if rig == nil {
		return nil, fmt.Errorf("character controller: %w", ErrNilCameraRig)
	}
	if collisions == nil {
		return nil, fmt.Errorf("character controller: %w", ErrNilCollisions)
	}

	scale := opts.Scale
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	animator := opts.Animator
	if animator == nil {
		animator = NewClipAnimator(0, map[string]float32{AnimRun: 1, AnimIdle: 1})
	}
	bindings := DefaultCharacterBindings()
	if opts.Bindings != nil {
		bindings = *opts.Bindings
	}
	logger := opts.Logger
	if logger == nil {
		logger = NewNopLogger()
	}

	c := &CharacterController{
		Transform:     core.NewTransform(opts.Position, opts.Rotation, scale),
		MoveSpeed:     WalkSpeed,
		RotationSpeed: DefaultCharacterRotationSpeed,
		HalfExtents:   mgl32.Vec3{2, 2, 2},
		Offset:        mgl32.Vec3{0, 2, 0},
		Tag:           "Player",
		rig:           rig,
		collisions:    collisions,
		animator:      animator,
		visuals:       opts.Visuals,
		bindings:      bindings,
		logger:        logger,
	}

	// Initial pose: behind the actor, third-person framing.
	rig.Transform.Rotation = c.Transform.Rotation
	rig.Transform.Update()
	rig.Transform.Position = c.Transform.Position.
		Add(mgl32.Vec3{0, core.ThirdPersonHeight, 0}).
		Sub(rig.Transform.Forward.Mul(core.ThirdPersonTrailDistance))
	rig.Transform.Update()
	rig.UpdateMat()

	c.colliderId = collisions.AddCollider(c)
	logger.Infof("Character %s spawned at %v (collider %s)", c.Tag, c.Transform.Position, c.colliderId)
	return c, nil
}

// Close removes the collider registration. It is safe to call more than once.
func (c *CharacterController) Close() {
	c.closeOnce.Do(func() {
		if c.collisions.RemoveCollider(c) {
			c.logger.Infof("Character %s collider %s removed", c.Tag, c.colliderId)
		}
	})
}

func (c *CharacterController) Grounded() bool { return c.grounded }
func (c *CharacterController) Colliding() bool { return c.colliding }
func (c *CharacterController) ColliderId() ColliderId { return c.colliderId }

// Bounds is the actor's collision box: HalfExtents scaled by the transform,
// centred at Position + Offset.
func (c *CharacterController) Bounds() AABB {
	s := c.Transform.Scale
	half := mgl32.Vec3{
		c.HalfExtents.X() * abs32(s.X()),
		c.HalfExtents.Y() * abs32(s.Y()),
		c.HalfExtents.Z() * abs32(s.Z()),
	}
	return NewAABB(c.Transform.Position.Add(c.Offset), half)
}

// OnCollision marks contact for the next Update. Repeated calls within a
// frame have no further effect.
func (c *CharacterController) OnCollision(other Collider) {
	c.colliding = true
}

// Update advances the actor by dt seconds. The step order matters: grounded
// is sampled from the previous frame's contact before anything moves, and the
// camera is placed only after both actor and rig rotation have settled.
func (c *CharacterController) Update(dt float32, input ControllerInput) {
	if dt < 0 {
		dt = 0
	}

	targetSpeed := float32(WalkSpeed)
	if input.KeyDown(c.bindings.Sprint) {
		targetSpeed = SprintSpeed
	}
	c.MoveSpeed = core.Damp(c.MoveSpeed, targetSpeed, SpeedBlendRate, dt)

	c.grounded = c.colliding && c.VerticalVelocity < 0

	move := input.Axis().Mul(c.MoveSpeed * dt)
	var look mgl32.Vec2
	if input.CursorLocked() {
		look = core.ClampAxes2(input.MouseDelta().Mul(-c.RotationSpeed*dt), MaxLookStep)
	}

	if c.grounded && input.KeyPressed(c.bindings.Jump) {
		c.grounded = false
		c.VerticalVelocity = JumpImpulse
	}

	rotated := look.Len() > 0
	if rotated {
		rot := c.rig.Transform.Rotation
		rot[0] = mgl32.Clamp(rot[0]+look.Y(), MinCameraPitch, MaxCameraPitch)
		rot[1] += look.X()
		c.rig.Transform.Rotation = rot
		c.rig.Transform.Update()
	}

	if c.grounded {
		c.VerticalVelocity = GroundBias
	} else {
		c.VerticalVelocity = mgl32.Clamp(c.VerticalVelocity-GravityAccel*dt, -MaxVerticalSpeed, MaxVerticalSpeed)
	}

	walking := move.Len() > 0
	moved := walking || c.VerticalVelocity != 0
	if moved {
		if walking {
			facing := mgl32.Vec3{0, c.rig.Transform.Rotation.Y(), 0}
			c.Transform.Rotation = core.DampVec3(c.Transform.Rotation, facing, TurnBlendRate, dt)
		}
		c.Transform.TranslateRel(mgl32.Vec3{move.X(), c.VerticalVelocity * dt, move.Y()})
	}

	if walking {
		direction := float32(1)
		if move.Y() < 0 {
			direction = -1
		}
		c.animator.Update(AnimRun, dt*direction*c.MoveSpeed/WalkSpeed)
	} else {
		c.animator.Update(AnimIdle, dt)
	}

	toggleHeld := input.KeyDown(c.bindings.ToggleCamera)
	if toggleHeld && !c.toggleHeld {
		c.rig.ToggleMode()
		c.logger.Infof("Camera mode: %s", c.rig.Mode())
	}
	c.toggleHeld = toggleHeld

	if rotated || moved {
		c.rig.Follow(&c.Transform)
	}

	c.colliding = false
}

// Draw submits the actor with its current world matrix. Run it after Update.
func (c *CharacterController) Draw(sink RenderSink) {
	sink.UseShader(c.visuals.Shader)
	sink.SetMatrix("W", c.Transform.World)
	sink.SetMatrices("bones", c.animator.Bones())
	sink.BindTexture("tex", c.visuals.BaseTexture)
	sink.BindTexture("nor", c.visuals.NormalTexture)
	sink.DrawMesh(c.visuals.Mesh)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

// CharacterModule spawns the actor. A Detached character is still a collider
// and still frames the rig's starting pose, but it is neither updated nor
// drawn and leaves the rig to another driver.
type CharacterModule struct {
	Options  CharacterOptions
	Detached bool
}

func (m CharacterModule) Install(app *App, cmd *Commands) {
	if !m.Detached {
		ensureSingleCameraDriver(app, CameraDriverCharacter)
	}

	rig, ok := Resource[core.CameraRig](app)
	if !ok {
		panic("CharacterModule requires CameraModule")
	}
	collisions, ok := Resource[Collisions](app)
	if !ok {
		panic("CharacterModule requires CollisionModule")
	}

	opts := m.Options
	if opts.Logger == nil {
		opts.Logger = app.Logger()
	}
	ctrl, err := NewCharacterController(rig, collisions, opts)
	if err != nil {
		panic(err)
	}

	cmd.AddResources(ctrl)
	cmd.OnShutdown("character collider", ctrl.Close)
	if m.Detached {
		return
	}

	app.UseSystem(
		System(CharacterSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(CharacterDrawSystem).
			InStage(Render),
	)
}

func CharacterSystem(clock *Time, input *Input, ctrl *CharacterController) {
	ctrl.Update(clock.Dt, input)
}

func CharacterDrawSystem(rs *RenderState, ctrl *CharacterController) {
	ctrl.Draw(rs.Sink)
	if rs.Debug {
		start := ctrl.Transform.Position.Add(ctrl.Offset)
		rs.Sink.DrawGizmo(NewGizmoLine(start, start.Add(ctrl.Transform.Forward.Mul(5)), [4]float32{1, 0, 0, 1}))
	}
}
