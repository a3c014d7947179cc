package trex

import (
	"testing"

	"github.com/gekko3d/trex/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadlessRig(t *testing.T) *core.CameraRig {
	t.Helper()
	rig, err := core.NewCameraRig(mgl32.Vec2{800, 600}, mgl32.Vec3{0, 5, 10}, mgl32.Vec3{}, 0.1, 100)
	require.NoError(t, err)
	t.Cleanup(rig.Close)
	return rig
}

func TestEnsureSingleCameraDriver(t *testing.T) {
	app := NewApp()

	ensureSingleCameraDriver(app, CameraDriverFreeLook)
	tag, ok := Resource[CameraDriverTag](app)
	require.True(t, ok)
	assert.Equal(t, CameraDriverFreeLook, tag.Name)

	assert.NotPanics(t, func() { ensureSingleCameraDriver(app, CameraDriverFreeLook) })
	assert.PanicsWithValue(t, "Multiple camera drivers installed: free-look and character", func() {
		ensureSingleCameraDriver(app, CameraDriverCharacter)
	})
}

func TestFreeLookAndCharacterAreExclusive(t *testing.T) {
	rig := newHeadlessRig(t)
	app := NewApp()
	app.Commands().AddResources(rig)
	app.UseModules(CollisionModule{}, FreeLookModule{})

	assert.Panics(t, func() {
		app.UseModules(CharacterModule{})
	})
}

func TestFreeLookSystem_DrivesRig(t *testing.T) {
	rig := newHeadlessRig(t)
	input := &Input{}
	input.SetCursorLock(true)
	input.setButton(KeyW, true)

	app := NewApp()
	app.Commands().AddResources(rig, input, &Time{Dt: 0.5})
	app.UseModules(FreeLookModule{})

	app.Step()

	// 20 units/s forward along -Z for half a second.
	assert.InDelta(t, 0, rig.Transform.Position.Z(), 1e-4)
	assert.InDelta(t, 5, rig.Transform.Position.Y(), 1e-4)
}
