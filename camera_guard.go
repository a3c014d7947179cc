package trex

import (
	"fmt"
)

// CameraDriverTag records which module drives the camera rig. Exactly one
// driver may be installed per session; the rig has no lock of its own.
type CameraDriverTag struct {
	Name string
}

const (
	CameraDriverFreeLook  = "free-look"
	CameraDriverCharacter = "character"
)

// ensureSingleCameraDriver panics if a different driver is already installed.
func ensureSingleCameraDriver(app *App, name string) {
	if app == nil {
		panic("ensureSingleCameraDriver: app is nil")
	}
	if tag, ok := Resource[CameraDriverTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple camera drivers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple camera drivers installed: %s and %s", tag.Name, name))
		}
		return
	}
	app.addResources(&CameraDriverTag{Name: name})
}
