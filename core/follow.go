package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraMode int

const (
	FirstPerson CameraMode = iota
	ThirdPerson
)

const (
	FirstPersonEyeHeight     = 2.0
	ThirdPersonHeight        = 4.0
	ThirdPersonTrailDistance = 20.0
)

func (m CameraMode) String() string {
	switch m {
	case FirstPerson:
		return "First Person"
	case ThirdPerson:
		return "Third Person"
	default:
		return "Unknown"
	}
}

func (m CameraMode) Toggled() CameraMode {
	if m == FirstPerson {
		return ThirdPerson
	}
	return FirstPerson
}

// Place moves cam relative to actor and recomputes cam.
func (m CameraMode) Place(cam, actor *Transform) {
	switch m {
	case ThirdPerson:
		placeThirdPerson(cam, actor)
	default:
		placeFirstPerson(cam, actor)
	}
}

// placeFirstPerson puts the eye at the actor's head and looks where the body faces.
func placeFirstPerson(cam, actor *Transform) {
	cam.Position = actor.Position.Add(mgl32.Vec3{0, FirstPersonEyeHeight, 0})
	cam.Update()
	cam.Forward = actor.Forward
}

// placeThirdPerson trails behind along the camera's own last forward, not the
// actor's, so the follow orbits with a lag.
func placeThirdPerson(cam, actor *Transform) {
	cam.Position = actor.Position.Add(mgl32.Vec3{0, ThirdPersonHeight, 0}).Sub(cam.Forward.Mul(ThirdPersonTrailDistance))
	cam.Update()
}
