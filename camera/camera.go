// Package camera provides the third-person orbit math: pointer-driven pitch
// and yaw, and the camera pose that orbits a followed target.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/components"
)

// AngleEpsilon keeps pitch away from the poles, where the look-at basis
// would flip.
const AngleEpsilon float32 = 0.001953125

// PitchLimit is the largest pitch magnitude a rig can reach.
const PitchLimit = float32(math.Pi/2) - AngleEpsilon

const twoPi = 2 * math.Pi

var (
	worldUp       = mgl32.Vec3{0, 1, 0}
	worldSide     = mgl32.Vec3{1, 0, 0}
	behindAxis    = mgl32.Vec3{0, 0, 1}
	degenerateLen = float32(1e-6)
)

// ApplyPointer turns a tick's summed pointer delta into new rig angles.
// Returns false, leaving the rig untouched, for a zero or non-finite delta.
func ApplyPointer(rig *components.CameraRig, delta mgl32.Vec2) bool {
	if delta == (mgl32.Vec2{}) || !finite2(delta) {
		return false
	}
	d := delta.Mul(rig.Sensitivity)
	rig.Pitch = ClampPitch(rig.Pitch - d.Y())
	rig.Yaw = WrapYaw(rig.Yaw - d.X())
	return true
}

// ClampPitch restricts pitch to [-PitchLimit, PitchLimit].
func ClampPitch(p float32) float32 {
	if p != p {
		return 0
	}
	return clamp(p, -PitchLimit, PitchLimit)
}

// WrapYaw wraps an angle into [0, 2π).
func WrapYaw(y float32) float32 {
	if y != y || math.IsInf(float64(y), 0) {
		return 0
	}
	r := mod(float64(y), twoPi)
	// Rounding to float32 can land exactly on 2π.
	if float64(r) >= twoPi {
		return 0
	}
	return r
}

// LookPoint returns where a rig looks for a target at targetPos: the ground
// point under the target plus the rig's target offset.
func LookPoint(rig *components.CameraRig, targetPos mgl32.Vec3) mgl32.Vec3 {
	look := targetPos
	look[1] = 0
	return look.Add(rig.TargetOffset)
}

// Orientation is the orbit rotation: yaw about world up, then pitch about
// the rig's own side axis.
func Orientation(pitch, yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, worldUp).Mul(mgl32.QuatRotate(pitch, worldSide))
}

// Orbit computes the camera pose for a rig following a target at targetPos.
func Orbit(rig *components.CameraRig, targetPos mgl32.Vec3) components.Transform {
	look := LookPoint(rig, targetPos)

	offset := Orientation(rig.Pitch, rig.Yaw).Rotate(behindAxis.Mul(rig.Distance))
	pos := look.Add(offset).Add(rig.PositionOffset)
	if rig.ClampHeight && pos.Y() < rig.MinHeight {
		pos[1] = rig.MinHeight
	}

	return components.Transform{
		Position: pos,
		Rotation: LookRotation(pos, look, worldUp),
	}
}

// LookRotation returns the rotation that points -Z from eye at center with
// the given up. Degenerate input (eye on center, or looking along up)
// yields identity.
func LookRotation(eye, center, up mgl32.Vec3) mgl32.Quat {
	dir := center.Sub(eye)
	l := dir.Len()
	if l < degenerateLen || !finite3(dir) {
		return mgl32.QuatIdent()
	}
	fwd := dir.Mul(1 / l)

	right := fwd.Cross(up)
	rl := right.Len()
	if rl < degenerateLen {
		return mgl32.QuatIdent()
	}
	right = right.Mul(1 / rl)
	u := right.Cross(fwd)

	// Column-major basis: right, up, back
	m := mgl32.Mat4{
		right[0], right[1], right[2], 0,
		u[0], u[1], u[2], 0,
		-fwd[0], -fwd[1], -fwd[2], 0,
		0, 0, 0, 1,
	}
	return mgl32.Mat4ToQuat(m).Normalize()
}

// mod computes the positive modulo (Go's math.Mod can return negative).
func mod(x, m float64) float32 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return float32(r)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

func finite2(v mgl32.Vec2) bool {
	return isFinite(v[0]) && isFinite(v[1])
}

func finite3(v mgl32.Vec3) bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2])
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
