package trex

import (
	"fmt"

	"github.com/gekko3d/trex/core"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraModule constructs the session's camera rig and exposes it as a
// resource. The rig is closed at shutdown.
type CameraModule struct {
	Viewport mgl32.Vec2
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Near     float32
	Far      float32
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	near, far := m.Near, m.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 100
	}

	rig, err := core.NewCameraRig(m.Viewport, m.Position, m.Rotation, near, far)
	if err != nil {
		app.Logger().Errorf("camera module: %v", err)
		panic(fmt.Errorf("camera module: %w", err))
	}

	cmd.AddResources(rig)
	cmd.OnShutdown("camera rig", rig.Close)
	app.Logger().Infof("Camera rig ready at %v (%s)", m.Position, rig.Mode())
}
