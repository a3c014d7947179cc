package trex

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClipAnimator_WrapsAndRestarts(t *testing.T) {
	a := NewClipAnimator(3, map[string]float32{"Run": 1, "Idle": 2})

	a.Update("Run", 0.75)
	a.Update("Run", 0.5)
	assert.Equal(t, "Run", a.State())
	assert.InDelta(t, 0.25, a.Time(), 1e-6)

	a.Update("Idle", 0.5)
	assert.Equal(t, "Idle", a.State())
	assert.InDelta(t, 0.5, a.Time(), 1e-6, "switching clips restarts playback")
}

func TestClipAnimator_NegativeDeltaPlaysBackwards(t *testing.T) {
	a := NewClipAnimator(0, map[string]float32{"Run": 1})

	a.Update("Run", -0.25)

	assert.InDelta(t, 0.75, a.Time(), 1e-6)
}

func TestClipAnimator_UnknownStateIgnored(t *testing.T) {
	a := NewClipAnimator(0, map[string]float32{"Run": 1})
	a.Update("Run", 0.5)

	a.Update("Fly", 0.1)

	assert.Equal(t, "Run", a.State())
	assert.InDelta(t, 0.5, a.Time(), 1e-6)
}

func TestClipAnimator_Bones(t *testing.T) {
	a := NewClipAnimator(2, nil)
	assert.Equal(t, []mgl32.Mat4{mgl32.Ident4(), mgl32.Ident4()}, a.Bones())
}
