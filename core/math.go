package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Damp moves current toward target with exponential smoothing.
// The fraction covered in one step is 1 - e^(-rate*dt), so the result never
// overshoots and is frame-rate independent.
func Damp(current, target, rate, dt float32) float32 {
	return current + (target-current)*dampFactor(rate, dt)
}

// DampVec3 is Damp applied per component.
func DampVec3(current, target mgl32.Vec3, rate, dt float32) mgl32.Vec3 {
	return current.Add(target.Sub(current).Mul(dampFactor(rate, dt)))
}

func dampFactor(rate, dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	return 1 - float32(math.Exp(float64(-rate*dt)))
}

// ClampAxes2 limits each component of v to [-limit, limit].
func ClampAxes2(v mgl32.Vec2, limit float32) mgl32.Vec2 {
	return mgl32.Vec2{
		mgl32.Clamp(v[0], -limit, limit),
		mgl32.Clamp(v[1], -limit, limit),
	}
}

// ClampAxes3 limits each component of v to [-limit, limit].
func ClampAxes3(v mgl32.Vec3, limit float32) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v[0], -limit, limit),
		mgl32.Clamp(v[1], -limit, limit),
		mgl32.Clamp(v[2], -limit, limit),
	}
}
