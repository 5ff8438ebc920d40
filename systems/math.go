package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// restSpeed is the per-tick speed below which friction stops a controller
// outright, so decay ends in a finite number of ticks.
const restSpeed = 1e-6

var worldUp = mgl32.Vec3{0, 1, 0}

// clamp01 clamps a float32 value to the [0, 1] range. NaN maps to 0.
func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// isFinite reports whether f is neither NaN nor infinite.
func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// finite3 reports whether every component of v is finite.
func finite3(v mgl32.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

// safeNormalize returns v scaled to unit length, or zero for a zero or
// non-finite vector.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if !(l > 1e-8) || !isFinite(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// safeQuat returns q normalized, or identity if q is zero or not finite.
func safeQuat(q mgl32.Quat) mgl32.Quat {
	l := q.Len()
	if !(l > 1e-6) || !isFinite(l) {
		return mgl32.QuatIdent()
	}
	return q.Scale(1 / l)
}
