package trex

import "github.com/go-gl/mathgl/mgl32"

type GizmoType int

const (
	GizmoLine GizmoType = iota
	GizmoCube
)

// Gizmo is a debug wireframe handed to the render sink.
type Gizmo struct {
	Type  GizmoType
	Color [4]float32

	// Cube: Position is the center and Scale the full size.
	// Line: Position is the start.
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	LineEnd  mgl32.Vec3
}

func NewGizmoLine(start, end mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoLine,
		Position: start,
		LineEnd:  end,
		Color:    color,
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func NewGizmoCube(center mgl32.Vec3, size mgl32.Vec3, color [4]float32) Gizmo {
	return Gizmo{
		Type:     GizmoCube,
		Position: center,
		Scale:    size,
		Color:    color,
	}
}
