package game

import (
	"log/slog"
	"path/filepath"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/inspector"
)

const (
	panelX     = 10
	panelY     = 10
	panelWidth = 330
)

var colorPanelBg = rl.Color{R: 0, G: 0, B: 0, A: 170}

// drawPanel renders the tuning panel for the selected player. Sliders write
// straight into the live components.
func (g *Game) drawPanel() {
	rig, ctl, ok := g.sim.Tunables(g.selected)
	if !ok {
		return
	}
	rigFields := inspector.Fields(rig)
	ctlFields := inspector.Fields(ctl)

	height := int32(90 + 24*(len(rigFields)+len(ctlFields)) + 40)
	rl.DrawRectangle(panelX-4, panelY-4, panelWidth, height, colorPanelBg)

	y := int32(panelY)
	y += inspector.DrawFields(panelX, y, "Camera rig", rigFields)
	y += inspector.DrawFields(panelX, y, "Controller", ctlFields)

	bx := float32(panelX)
	by := float32(y)
	if gui.Button(rl.Rectangle{X: bx, Y: by, Width: 100, Height: 26}, "Save tuning") {
		g.saveTuning()
	}
	if gui.Button(rl.Rectangle{X: bx + 108, Y: by, Width: 100, Height: 26}, "Reset") {
		g.resetTuning()
	}
	if gui.Button(rl.Rectangle{X: bx + 216, Y: by, Width: 100, Height: 26}, toggleText(g.paused, "Resume", "Pause")) {
		g.paused = !g.paused
		g.step.Reset()
	}
}

// saveTuning writes the live tuning as tuned.yaml next to the trace output,
// or in the working directory.
func (g *Game) saveTuning() {
	path := filepath.Join(g.opts.OutputDir, "tuned.yaml")
	if err := g.storeTuning().WriteYAML(path); err != nil {
		slog.Error("failed to save tuning", "error", err)
		return
	}
	slog.Info("tuning saved", "path", path)
}

// resetTuning re-applies the config file (or defaults) to every player.
func (g *Game) resetTuning() {
	cfg, err := config.Load(g.opts.ConfigPath)
	if err != nil {
		slog.Error("reset failed", "error", err)
		return
	}
	g.apply(cfg)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
