// Package collision provides the shape-cast query the motion controller uses
// to stop short of obstacles.
package collision

import "github.com/go-gl/mathgl/mgl32"

// BodyID identifies a collider in a Space. Zero is never assigned.
type BodyID uint32

// controllerTag marks ids reserved for controller colliders.
const controllerTag BodyID = 1 << 16

// ControllerBody returns the body id used for the controller with the given id.
func ControllerBody(id uint8) BodyID {
	return controllerTag | BodyID(id)
}

// Query describes a shape swept along a motion vector.
type Query struct {
	Radius   float32    // footprint radius on the ground plane
	Origin   mgl32.Vec3 // start of the sweep
	Rotation mgl32.Quat // shape orientation; round footprints ignore it
	Motion   mgl32.Vec3 // full proposed displacement for the tick
	Exclude  []BodyID   // bodies the sweep passes through, typically self
}

// Hit is the first contact along a sweep.
type Hit struct {
	TOI    float32 // fraction of Motion travelled before contact, in [0, 1]
	Points []mgl32.Vec3
	Normal mgl32.Vec3
	Body   BodyID
}

// Caster answers sweep queries. Sensors never report hits.
type Caster interface {
	Cast(q Query) (Hit, bool)
}

// Mover is implemented by casters that track moving colliders.
type Mover interface {
	Move(id BodyID, pos mgl32.Vec3)
}

// CasterFunc adapts a function to Caster.
type CasterFunc func(q Query) (Hit, bool)

// Cast calls f.
func (f CasterFunc) Cast(q Query) (Hit, bool) {
	return f(q)
}

func excluded(id BodyID, set []BodyID) bool {
	for _, e := range set {
		if e == id {
			return true
		}
	}
	return false
}
