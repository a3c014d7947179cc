package trex

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	KeyA int = iota
	KeyD
	KeyF
	KeyS
	KeyW
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyF1
	KeyShift
	KeyControl
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

type InputModule struct {
	// CaptureCursor locks the pointer from the first frame.
	CaptureCursor bool
}

// Input is the per-frame input snapshot. Pressed holds the current key state,
// JustPressed the keys that went down since the previous poll.
type Input struct {
	Pressed     [256]bool
	JustPressed [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool
	Wheel                    float64

	CloseRequested bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{MouseCaptured: mod.CaptureCursor})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

// Axis returns planar movement intent: X is right, Y is forward.
func (in *Input) Axis() mgl32.Vec2 {
	var axis mgl32.Vec2
	if in.Pressed[KeyD] || in.Pressed[KeyRight] {
		axis[0] += 1
	}
	if in.Pressed[KeyA] || in.Pressed[KeyLeft] {
		axis[0] -= 1
	}
	if in.Pressed[KeyW] || in.Pressed[KeyUp] {
		axis[1] += 1
	}
	if in.Pressed[KeyS] || in.Pressed[KeyDown] {
		axis[1] -= 1
	}
	return axis
}

func (in *Input) MouseDelta() mgl32.Vec2 {
	return mgl32.Vec2{float32(in.MouseDeltaX), float32(in.MouseDeltaY)}
}

func (in *Input) MouseWheel() float32 {
	return float32(in.Wheel)
}

// KeyPressed reports a key that went down this frame.
func (in *Input) KeyPressed(key int) bool {
	return in.JustPressed[key]
}

// KeyDown reports a key that is currently held.
func (in *Input) KeyDown(key int) bool {
	return in.Pressed[key]
}

// ButtonPressed reports a mouse button that went down this frame.
func (in *Input) ButtonPressed(button int) bool {
	return in.JustPressed[button]
}

func (in *Input) CursorLocked() bool {
	return in.MouseCaptured
}

func (in *Input) SetCursorLock(locked bool) {
	in.MouseCaptured = locked
}

func (in *Input) ToggleCursorLock() {
	in.MouseCaptured = !in.MouseCaptured
}

func (in *Input) Exit() bool {
	return in.CloseRequested
}

// setButton records the new state of key and derives its edges.
func (in *Input) setButton(key int, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.Pressed[key] = down
}

// setCursor records the pointer position. Deltas are only reported while the
// cursor is captured.
func (in *Input) setCursor(x, y float64) {
	if in.MouseCaptured {
		in.MouseDeltaX = x - in.MouseX
		in.MouseDeltaY = y - in.MouseY
	} else {
		in.MouseDeltaX = 0
		in.MouseDeltaY = 0
	}
	in.MouseX = x
	in.MouseY = y
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.setButton(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.setButton(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.setCursor(s.windowGlfw.GetCursorPos())
	input.Wheel = s.takeScroll()
	input.CloseRequested = s.windowGlfw.ShouldClose()

	if input.MouseCaptured {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.windowGlfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyA:       glfw.KeyA,
	KeyD:       glfw.KeyD,
	KeyF:       glfw.KeyF,
	KeyS:       glfw.KeyS,
	KeyW:       glfw.KeyW,
	KeySpace:   glfw.KeySpace,
	KeyEnter:   glfw.KeyEnter,
	KeyEscape:  glfw.KeyEscape,
	KeyTab:     glfw.KeyTab,
	KeyRight:   glfw.KeyRight,
	KeyLeft:    glfw.KeyLeft,
	KeyDown:    glfw.KeyDown,
	KeyUp:      glfw.KeyUp,
	KeyF1:      glfw.KeyF1,
	KeyShift:   glfw.KeyLeftShift,
	KeyControl: glfw.KeyLeftControl,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
