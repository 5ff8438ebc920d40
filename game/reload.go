package game

import (
	"log/slog"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/systems"
)

// checkReload applies a pending config change between ticks. A bad file
// is logged and the running config kept.
func (g *Game) checkReload() {
	if g.watcher == nil {
		return
	}

	select {
	case path, ok := <-g.watcher.Events:
		if !ok {
			g.watcher = nil
			return
		}
		g.reload(path)
	case err, ok := <-g.watcher.Errors:
		if ok {
			slog.Warn("config watcher error", "error", err)
		}
	default:
	}
}

func (g *Game) reload(path string) {
	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("config reload failed", "path", path, "error", err)
		return
	}
	g.apply(cfg)
	slog.Info("config reloaded", "path", path)
}

// apply swaps in cfg for the simulation and host.
func (g *Game) apply(cfg *config.Config) {
	if err := g.sim.ApplyConfig(cfg); err != nil {
		slog.Error("config rejected", "error", err)
		return
	}
	config.Set(cfg)
	g.cfg = cfg
	g.keys = bindKeys(cfg.Keys)
	g.in.ReleaseAll()
	g.scene.SetFOV(float32(cfg.Screen.FOV))
	g.step = systems.NewFixedStep(cfg.Derived.FixedDT32, cfg.Schedule.MaxStepsPerFrame)
}
