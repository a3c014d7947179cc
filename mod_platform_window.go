package trex

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw *glfw.Window
	scroll     float64
}

// PlatformWindowModule creates the single GLFW window shared by input and
// rendering. Install is idempotent.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "trex"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	cmd.AddResources(ws)
	cmd.OnShutdown("window", ws.destroy)
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}

	ws := &WindowState{windowGlfw: win}
	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		ws.scroll += yoff
	})
	return ws
}

// takeScroll returns the wheel movement accumulated since the last call.
func (s *WindowState) takeScroll() float64 {
	v := s.scroll
	s.scroll = 0
	return v
}

func (s *WindowState) destroy() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}
