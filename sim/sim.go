// Package sim owns the headless side of the reference host: the ark world,
// player spawning, the tick pipeline, the collision space and config
// reloads. The raylib host in package game drives it per frame; scripted
// runs and the tuner drive it per tick.
package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbit/camera"
	"github.com/pthm-cable/orbit/collision"
	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/input"
	"github.com/pthm-cable/orbit/systems"
	"github.com/pthm-cable/orbit/telemetry"
)

// Sim holds the complete simulation state.
type Sim struct {
	cfg   *config.Config
	world *ecs.World

	playerMapper *ecs.Map5[
		components.Controller,
		components.KeyBindings,
		components.Transform,
		components.Velocity,
		components.Collider,
	]
	rigMapper *ecs.Map2[components.CameraRig, components.Transform]

	playerFilter *ecs.Filter3[components.Controller, components.Transform, components.Velocity]
	rigFilter    *ecs.Filter2[components.CameraRig, components.Transform]
	keysFilter   *ecs.Filter1[components.KeyBindings]
	colFilter    *ecs.Filter2[components.Controller, components.Collider]

	pipeline *systems.Pipeline
	space    *collision.Space // nil when collision is disabled

	tick int32
}

// New builds a world from cfg: one controller and one rig per configured
// player, and the obstacle layout when collision is enabled.
func New(cfg *config.Config) (*Sim, error) {
	order, err := systems.ParseOrder(cfg.Schedule.Order)
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}

	world := ecs.NewWorld()
	s := &Sim{
		cfg:   cfg,
		world: world,
		playerMapper: ecs.NewMap5[
			components.Controller,
			components.KeyBindings,
			components.Transform,
			components.Velocity,
			components.Collider,
		](world),
		rigMapper:    ecs.NewMap2[components.CameraRig, components.Transform](world),
		playerFilter: ecs.NewFilter3[components.Controller, components.Transform, components.Velocity](world),
		rigFilter:    ecs.NewFilter2[components.CameraRig, components.Transform](world),
		keysFilter:   ecs.NewFilter1[components.KeyBindings](world),
		colFilter:    ecs.NewFilter2[components.Controller, components.Collider](world),
	}

	if cfg.Collision.Enabled {
		s.space = collision.FromConfig(cfg.Collision)
	}
	s.pipeline = systems.NewPipeline(world, order, s.caster())

	seen := make(map[uint8]bool, len(cfg.Players))
	for _, p := range cfg.Players {
		if seen[p.ID] {
			return nil, fmt.Errorf("players: duplicate id %d", p.ID)
		}
		seen[p.ID] = true
		s.spawnPlayer(p)
	}

	return s, nil
}

// caster returns the space as a Caster, or nil without collision. A typed
// nil would defeat the nil checks in the controller system.
func (s *Sim) caster() collision.Caster {
	if s.space == nil {
		return nil
	}
	return s.space
}

// spawnPlayer creates a controller and the rig following it, with the
// camera already placed.
func (s *Sim) spawnPlayer(p config.PlayerConfig) {
	pos := mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}

	ctl := components.ControllerFromConfig(s.cfg.Controller, p.ID)
	keys := components.KeyBindingsFromConfig(s.cfg.Keys)
	tf := components.NewTransform(pos)
	vel := components.Velocity{}
	col := components.ColliderFromConfig(s.cfg.Controller)
	s.playerMapper.NewEntity(&ctl, &keys, &tf, &vel, &col)

	rig := components.RigFromConfig(s.cfg.Camera, p.ID)
	rig.Pitch = camera.ClampPitch(rig.Pitch)
	rig.Yaw = camera.WrapYaw(rig.Yaw)
	camTf := camera.Orbit(&rig, pos)
	s.rigMapper.NewEntity(&rig, &camTf)

	if s.space != nil {
		s.space.AddMover(collision.ControllerBody(p.ID), pos, col.Radius)
	}
}

// Tick runs one fixed tick of both systems.
func (s *Sim) Tick(in *input.State) {
	s.pipeline.Tick(in, s.cfg.Derived.FixedDT32)
	s.tick++
}

// Frame runs the camera once and the controller for as many fixed steps as
// frameDt covers. When c is non-nil every controller tick is observed into
// it. Returns the number of controller ticks taken.
func (s *Sim) Frame(in *input.State, frameDt float32, step *systems.FixedStep, c *telemetry.Collector) int {
	return s.pipeline.Frame(in, frameDt, step, func() {
		s.tick++
		if c != nil {
			s.Observe(c)
		}
	})
}

// TickCount returns the number of controller ticks run so far.
func (s *Sim) TickCount() int32 {
	return s.tick
}

// Config returns the active configuration.
func (s *Sim) Config() *config.Config {
	return s.cfg
}

// Order returns the current system order.
func (s *Sim) Order() systems.Order {
	return s.pipeline.Order
}

// Space returns the collision space, or nil without collision.
func (s *Sim) Space() *collision.Space {
	return s.space
}

// PlayerState is a read-only view of one controller and the first rig
// following it.
type PlayerState struct {
	ID       uint8
	Body     components.Transform
	Velocity mgl32.Vec3
	Radius   float32

	HasRig bool
	Rig    components.CameraRig
	Camera components.Transform
}

// Players returns a snapshot of every controller, in query order.
func (s *Sim) Players() []PlayerState {
	var out []PlayerState
	query := s.playerFilter.Query()
	for query.Next() {
		ctl, tf, vel := query.Get()
		out = append(out, PlayerState{ID: ctl.ID, Body: *tf, Velocity: vel.Linear})
	}

	radius := make(map[uint8]float32, len(out))
	cq := s.colFilter.Query()
	for cq.Next() {
		ctl, col := cq.Get()
		radius[ctl.ID] = col.Radius
	}

	for i := range out {
		out[i].Radius = radius[out[i].ID]
		if rig, tf, ok := s.rigFor(out[i].ID); ok {
			out[i].HasRig = true
			out[i].Rig = *rig
			out[i].Camera = *tf
		}
	}
	return out
}

// Tunables returns the live rig and controller for id, for tuning panels.
// The pointers are only valid until the next structural change to the world.
func (s *Sim) Tunables(id uint8) (*components.CameraRig, *components.Controller, bool) {
	rig, _, ok := s.rigFor(id)
	if !ok {
		return nil, nil, false
	}
	query := s.playerFilter.Query()
	for query.Next() {
		ctl, _, _ := query.Get()
		if ctl.ID == id {
			query.Close()
			return rig, ctl, true
		}
	}
	return nil, nil, false
}

func (s *Sim) rigFor(id uint8) (*components.CameraRig, *components.Transform, bool) {
	query := s.rigFilter.Query()
	for query.Next() {
		rig, tf := query.Get()
		if rig.TargetID == id {
			query.Close()
			return rig, tf, true
		}
	}
	return nil, nil, false
}

// Observe feeds the current state of every player into c.
func (s *Sim) Observe(c *telemetry.Collector) {
	for _, p := range s.Players() {
		sample := telemetry.Sample{
			ID:       p.ID,
			Position: p.Body.Position,
			Velocity: p.Velocity,
		}
		if p.HasRig {
			sample.Yaw = p.Rig.Yaw
			sample.Pitch = p.Rig.Pitch
			sample.CameraPos = p.Camera.Position
		}
		c.Observe(s.tick, sample)
	}
}
