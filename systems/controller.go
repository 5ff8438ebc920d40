package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbit/collision"
	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/input"
)

// ControllerSystem moves every controller on the ground plane.
type ControllerSystem struct {
	filter    *ecs.Filter4[components.Controller, components.KeyBindings, components.Transform, components.Velocity]
	colliders *ecs.Map[components.Collider]

	exclude []collision.BodyID
}

// NewControllerSystem creates a new controller system.
func NewControllerSystem(w *ecs.World) *ControllerSystem {
	return &ControllerSystem{
		filter:    ecs.NewFilter4[components.Controller, components.KeyBindings, components.Transform, components.Velocity](w),
		colliders: ecs.NewMap[components.Collider](w),
		exclude:   make([]collision.BodyID, 1),
	}
}

// Update runs the controller system for one fixed tick. Controllers that no
// rig follows are skipped entirely. caster may be nil.
func (s *ControllerSystem) Update(in *input.State, dt float32, rigs RigLookup, caster collision.Caster) {
	mover, _ := caster.(collision.Mover)

	query := s.filter.Query()
	for query.Next() {
		entity := query.Entity()
		ctl, keys, tf, vel := query.Get()

		if rigs == nil {
			continue
		}
		yaw, ok := rigs.RigYaw(ctl.ID)
		if !ok {
			continue
		}

		var sweep Sweep
		if caster != nil && s.colliders.Has(entity) {
			sweep = s.sweepFor(ctl.ID, *s.colliders.Get(entity), caster)
		}

		StepController(ctl, *keys, in, yaw, dt, tf, vel, sweep)

		if mover != nil {
			mover.Move(collision.ControllerBody(ctl.ID), tf.Position)
		}
	}
}

// sweepFor builds the collision sweep for one controller, excluding itself.
func (s *ControllerSystem) sweepFor(id uint8, col components.Collider, caster collision.Caster) Sweep {
	s.exclude[0] = collision.ControllerBody(id)
	exclude := s.exclude
	return func(origin mgl32.Vec3, rot mgl32.Quat, motion mgl32.Vec3) (float32, bool) {
		hit, ok := caster.Cast(collision.Query{
			Radius:   col.Radius,
			Origin:   origin,
			Rotation: rot,
			Motion:   motion,
			Exclude:  exclude,
		})
		return hit.TOI, ok
	}
}
