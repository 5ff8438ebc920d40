package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/renderer"
	"github.com/pthm-cable/orbit/sim"
	"github.com/pthm-cable/orbit/telemetry"
	"github.com/pthm-cable/orbit/ui"
)

const controlsLegend = "WASD: move | Shift: sprint | Tab: mouse | 1-4: player | P: pause | F1: panel | F2: perf | F11: fullscreen"

// Draw renders the scene from the selected player's camera rig.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)
	defer g.perf.EndTick()

	players := g.sim.Players()
	view, ok := g.selectedPlayer(players)

	rl.BeginDrawing()
	rl.ClearBackground(renderer.ColorBackground)

	if ok && view.HasRig {
		g.scene.Begin(view.Camera)
		if g.cfg.Collision.Enabled {
			g.scene.DrawObstacles(g.cfg.Collision.Obstacles)
		}
		for _, p := range players {
			g.scene.DrawPlayer(p.Body, p.Radius, p.ID == g.selected)
		}
		g.scene.End()
	}

	g.drawHUD(view, ok)
	if g.showPanel {
		g.drawPanel()
	}

	rl.EndDrawing()
}

func (g *Game) selectedPlayer(players []sim.PlayerState) (sim.PlayerState, bool) {
	for _, p := range players {
		if p.ID == g.selected {
			return p, true
		}
	}
	return sim.PlayerState{}, false
}

func (g *Game) drawHUD(view sim.PlayerState, ok bool) {
	data := ui.HUDData{
		Title:    "Orbit",
		Order:    g.sim.Order().String(),
		Tick:     g.sim.TickCount(),
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Captured: g.captured,
	}
	if ok {
		data.HasPlayer = true
		data.PlayerID = view.ID
		data.Speed = view.Velocity.Len() / g.cfg.Derived.FixedDT32
		data.PosX, data.PosY, data.PosZ = view.Body.Position.Elem()
		if view.HasRig {
			data.HasRig = true
			data.Yaw = view.Rig.Yaw
			data.Pitch = view.Rig.Pitch
		}
	}

	width := int32(rl.GetScreenWidth())
	g.hud.SetWidth(width)
	g.hud.Draw(data)
	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
	if g.showPerf {
		g.perfPanel.SetPosition(width-300, 180)
		g.perfPanel.Draw(g.perf.Stats())
	}
}

// storeTuning copies live tuning of the selected player into a copy of cfg.
func (g *Game) storeTuning() *config.Config {
	out := *g.cfg
	out.Players = append([]config.PlayerConfig(nil), g.cfg.Players...)
	out.Collision.Obstacles = append([]config.ObstacleConfig(nil), g.cfg.Collision.Obstacles...)
	if rig, ctl, ok := g.sim.Tunables(g.selected); ok {
		rig.StoreTuning(&out.Camera)
		ctl.StoreTuning(&out.Controller)
	}
	return &out
}
