// Package ui draws the host's heads-up display.
package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbit/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Order    string
	Tick     int32
	FPS      int32
	Paused   bool
	Captured bool

	HasPlayer bool
	PlayerID  uint8
	Speed     float32 // units/s
	PosX      float32
	PosY      float32
	PosZ      float32

	HasRig bool
	Yaw    float32
	Pitch  float32
}

// HUD renders the main heads-up display anchored at the top right.
type HUD struct {
	width int32
}

// NewHUD creates a HUD for a screen of the given width.
func NewHUD(screenWidth int32) *HUD {
	return &HUD{width: screenWidth}
}

// SetWidth updates the screen width after a resize.
func (h *HUD) SetWidth(w int32) {
	h.width = w
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	x := h.width - 300
	y := int32(10)

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	rl.DrawText(fmt.Sprintf("Tick: %d | %s | FPS: %d", data.Tick, data.Order, data.FPS), x, y, 16, rl.LightGray)
	y += 20

	if data.HasPlayer {
		rl.DrawText(fmt.Sprintf("Player %d | %.2f u/s", data.PlayerID, data.Speed), x, y, 16, rl.LightGray)
		y += 20
		rl.DrawText(fmt.Sprintf("Pos: %.2f %.2f %.2f", data.PosX, data.PosY, data.PosZ), x, y, 16, rl.LightGray)
		y += 20
	}
	if data.HasRig {
		rl.DrawText(fmt.Sprintf("Yaw: %.3f | Pitch: %.3f", data.Yaw, data.Pitch), x, y, 16, rl.LightGray)
		y += 20
	}

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, x, y, 16, rl.Yellow)
	y += 20

	if !data.Captured {
		rl.DrawText("Tab: capture mouse", x, y, 14, rl.Gray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase frame timings.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		ps := stats.Phase(phase)
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, ps.Avg.Round(time.Microsecond), ps.Pct),
			x, y, 12, phaseColor(ps.Pct),
		)
		y += 14
	}
}

func phaseColor(pct float64) rl.Color {
	switch {
	case pct > 50:
		return rl.Red
	case pct > 25:
		return rl.Orange
	default:
		return rl.LightGray
	}
}
