// Package components defines ECS components for the camera rig and the
// motion controller.
package components

import "github.com/go-gl/mathgl/mgl32"

// Transform is a world-space pose. The host reads it back every tick and
// applies it to its own scene graph.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewTransform returns a transform at pos with identity rotation.
func NewTransform(pos mgl32.Vec3) Transform {
	return Transform{Position: pos, Rotation: mgl32.QuatIdent()}
}

// Velocity is a controller's per-tick displacement. The tick length is
// already folded in by the friction and acceleration step.
type Velocity struct {
	Linear mgl32.Vec3
}

// Collider is the shape swept along the controller's motion. A zero
// HalfHeight is a sphere; otherwise a vertical capsule, which on the ground
// plane has the same footprint as a sphere of the same radius.
type Collider struct {
	Radius     float32 `inspect:"label,fmt:%.2f"`
	HalfHeight float32 `inspect:"skip"`
}
