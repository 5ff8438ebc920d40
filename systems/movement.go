package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/input"
)

// Sweep casts the controller's shape along motion from origin and returns
// the time of impact in [0, 1] when something is hit.
type Sweep func(origin mgl32.Vec3, rot mgl32.Quat, motion mgl32.Vec3) (toi float32, hit bool)

// MoveInput builds the movement intent from held keys: x = right - left,
// y = forward - back. Each axis is -1, 0 or 1.
func MoveInput(in *input.State, keys components.KeyBindings) mgl32.Vec2 {
	if in == nil {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		in.Axis(keys.Right, keys.Left),
		in.Axis(keys.Forward, keys.Back),
	}
}

// TargetYaw converts movement intent into a world yaw relative to the camera.
func TargetYaw(move mgl32.Vec2, cameraYaw, facingOffset float32) float32 {
	return float32(math.Atan2(float64(move.Y()), float64(move.X()))) + cameraYaw + facingOffset
}

// YawRotation returns a rotation of yaw radians about world up.
func YawRotation(yaw float32) mgl32.Quat {
	return mgl32.QuatRotate(yaw, worldUp)
}

// TurnToward rotates facing toward targetYaw. With snap it jumps straight
// there; otherwise it slerps along the shorter arc by rotationSpeed*dt,
// bounded to [0, 1].
func TurnToward(facing mgl32.Quat, targetYaw, rotationSpeed, dt float32, snap bool) mgl32.Quat {
	target := YawRotation(targetYaw)
	if snap {
		return target
	}
	facing = safeQuat(facing)

	t := clamp01(rotationSpeed * dt)
	switch t {
	case 0:
		return facing
	case 1:
		return target
	}
	if facing.Dot(target) < 0 {
		target = target.Scale(-1)
	}
	return safeQuat(mgl32.QuatSlerp(facing, target, t))
}

// FacingDirection returns the horizontal unit direction rot points forwardAxis
// at, or zero if it points straight up or down.
func FacingDirection(rot mgl32.Quat, forwardAxis mgl32.Vec3) mgl32.Vec3 {
	d := safeQuat(rot).Rotate(forwardAxis)
	d[1] = 0
	return safeNormalize(d)
}

// ApplyFriction decays velocity: drop = speed*friction*dt, then rescale to
// max(speed-drop, 0). Never reverses direction.
func ApplyFriction(v mgl32.Vec3, friction, dt float32) mgl32.Vec3 {
	speed := v.Len()
	if !(speed > 0) || !isFinite(speed) {
		return mgl32.Vec3{}
	}
	drop := speed * friction * dt
	newSpeed := speed - drop
	if !(newSpeed > restSpeed) {
		return mgl32.Vec3{}
	}
	return v.Mul(newSpeed / speed)
}

// Accelerate adds topSpeed*dt along dir, cut so the projection of velocity
// on dir does not pass maxSpeed. A velocity already past maxSpeed along dir
// is left as is.
func Accelerate(v, dir mgl32.Vec3, topSpeed, maxSpeed, dt float32) mgl32.Vec3 {
	if dir == (mgl32.Vec3{}) {
		return v
	}
	projected := v.Dot(dir)
	add := topSpeed * dt
	if projected+add > maxSpeed {
		add = maxSpeed - projected
	}
	if !(add > 0) {
		return v
	}
	return v.Add(dir.Mul(add))
}

// ClampToImpact scales velocity by the time of impact so the controller stops
// at the contact. The remainder is dropped; there is no sliding.
func ClampToImpact(v mgl32.Vec3, toi float32) mgl32.Vec3 {
	return v.Mul(clamp01(toi))
}

// StepController advances one controller by one tick: facing, friction,
// acceleration, optional collision clamp, integration. dt is applied once,
// in friction and acceleration; integration adds velocity as is.
func StepController(
	ctl *components.Controller,
	keys components.KeyBindings,
	in *input.State,
	cameraYaw, dt float32,
	tf *components.Transform,
	vel *components.Velocity,
	sweep Sweep,
) {
	if !(dt > 0) || !isFinite(dt) {
		dt = 0
	}
	if !finite3(vel.Linear) {
		vel.Linear = mgl32.Vec3{}
	}
	tf.Rotation = safeQuat(tf.Rotation)

	move := MoveInput(in, keys)
	moving := move != (mgl32.Vec2{})
	if moving {
		yaw := TargetYaw(move, cameraYaw, ctl.FacingOffset)
		tf.Rotation = TurnToward(tf.Rotation, yaw, ctl.RotationSpeed, dt, ctl.SnapRotation)
	}

	topSpeed := ctl.MovementSpeed
	if in != nil && in.Pressed(keys.Sprint) {
		topSpeed = ctl.SprintSpeed
	}

	v := ApplyFriction(vel.Linear, ctl.Friction, dt)
	if moving {
		v = Accelerate(v, FacingDirection(tf.Rotation, ctl.ForwardAxis), topSpeed, ctl.MaxSpeed, dt)
	}

	if sweep != nil && v != (mgl32.Vec3{}) {
		if toi, hit := sweep(tf.Position, tf.Rotation, v); hit {
			v = ClampToImpact(v, toi)
		}
	}

	vel.Linear = v
	tf.Position = tf.Position.Add(v)
}
