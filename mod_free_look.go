package trex

import (
	"github.com/gekko3d/trex/core"
)

// FreeLookModule lets the camera rig consume input directly, detached from
// any character.
type FreeLookModule struct{}

func (m FreeLookModule) Install(app *App, cmd *Commands) {
	ensureSingleCameraDriver(app, CameraDriverFreeLook)
	app.UseSystem(
		System(FreeLookSystem).
			InStage(Update),
	)
}

func FreeLookSystem(clock *Time, input *Input, rig *core.CameraRig) {
	rig.Update(clock.Dt, input)
}
