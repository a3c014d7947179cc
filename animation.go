package trex

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Animator selects and advances a named animation state once per frame.
// dt may be negative to play a clip backwards.
type Animator interface {
	Update(state string, dt float32)
	Bones() []mgl32.Mat4
}

// ClipAnimator tracks playback of named looping clips. It has no skeleton
// data of its own and reports identity bone matrices.
type ClipAnimator struct {
	clips   map[string]float32
	current string
	time    float32
	bones   []mgl32.Mat4
}

func NewClipAnimator(boneCount int, clips map[string]float32) *ClipAnimator {
	bones := make([]mgl32.Mat4, boneCount)
	for i := range bones {
		bones[i] = mgl32.Ident4()
	}
	durations := make(map[string]float32, len(clips))
	for name, d := range clips {
		durations[name] = d
	}
	return &ClipAnimator{
		clips: durations,
		bones: bones,
	}
}

// Update switches to state, restarting playback on a change, and advances it
// by dt wrapped to the clip length. Unknown states are ignored.
func (a *ClipAnimator) Update(state string, dt float32) {
	duration, ok := a.clips[state]
	if !ok {
		return
	}
	if state != a.current {
		a.current = state
		a.time = 0
	}
	if duration <= 0 {
		a.time = 0
		return
	}
	t := float32(math.Mod(float64(a.time+dt), float64(duration)))
	if t < 0 {
		t += duration
	}
	a.time = t
}

func (a *ClipAnimator) State() string { return a.current }
func (a *ClipAnimator) Time() float32 { return a.time }

func (a *ClipAnimator) Bones() []mgl32.Mat4 {
	return a.bones
}
