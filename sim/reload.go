package sim

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/orbit/collision"
	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/systems"
)

// ApplyConfig swaps in a reloaded config between ticks: tuning, key
// bindings, collider radius, system order and the obstacle layout. Live
// angles, positions and velocities are kept. Spawn points only apply at
// start.
func (s *Sim) ApplyConfig(cfg *config.Config) error {
	order, err := systems.ParseOrder(cfg.Schedule.Order)
	if err != nil {
		return fmt.Errorf("applying config: %w", err)
	}

	rq := s.rigFilter.Query()
	for rq.Next() {
		rig, _ := rq.Get()
		rig.ApplyTuning(cfg.Camera)
	}

	pq := s.playerFilter.Query()
	for pq.Next() {
		ctl, _, _ := pq.Get()
		ctl.ApplyTuning(cfg.Controller)
	}

	keys := components.KeyBindingsFromConfig(cfg.Keys)
	kq := s.keysFilter.Query()
	for kq.Next() {
		*kq.Get() = keys
	}

	col := components.ColliderFromConfig(cfg.Controller)
	cq := s.colFilter.Query()
	for cq.Next() {
		_, c := cq.Get()
		*c = col
	}

	s.cfg = cfg
	s.rebuildSpace()
	s.pipeline.Order = order

	slog.Info("config applied",
		"order", order.String(),
		"collision", cfg.Collision.Enabled,
		"obstacles", len(cfg.Collision.Obstacles),
	)
	return nil
}

// rebuildSpace recreates the collision space from the current config and
// re-registers every controller at its current position.
func (s *Sim) rebuildSpace() {
	if !s.cfg.Collision.Enabled {
		s.space = nil
		s.pipeline.Caster = nil
		return
	}

	s.space = collision.FromConfig(s.cfg.Collision)
	for _, p := range s.Players() {
		s.space.AddMover(collision.ControllerBody(p.ID), p.Body.Position, p.Radius)
	}
	s.pipeline.Caster = s.space
}
