// Speed curve preview tool - interactive plot of controller spin-up and
// stop with sliders.
//
// Usage: go run ./cmd/speedpreview [--config path]
package main

import (
	"flag"
	"fmt"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orbit/config"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	plotWidth    = 560
	plotHeight   = 400
	panelWidth   = windowWidth - plotWidth - 40
)

// slider describes one tunable on the panel.
type slider struct {
	label    string
	value    *float32
	min, max float32
	format   string
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	flag.Parse()

	base, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Speed Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := ParamsFromConfig(base)
	curve := SpeedCurve(params)

	sliders := []slider{
		{"Movement speed (accel/tick)", &params.MovementSpeed, 0.1, 50, "%.2f"},
		{"Sprint speed", &params.SprintSpeed, 0.1, 100, "%.2f"},
		{"Max speed (per tick)", &params.MaxSpeed, 0.01, 2, "%.3f"},
		{"Friction", &params.Friction, 0, 100, "%.1f"},
		{"Hold time (s)", &params.Hold, 0.1, 4, "%.2f"},
		{"Release time (s)", &params.Release, 0.1, 4, "%.2f"},
	}

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPlot(curve, params)

		// Control panel
		panelX := float32(plotWidth + 30)
		panelY := float32(10)

		rl.DrawText("Controller Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*s.value, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if v != *s.value {
				*s.value = v
				changed = true
			}
			panelY += 35
		}

		sprintText := "Sprint: OFF"
		if params.Sprint {
			sprintText = "Sprint: ON"
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, sprintText) {
			params.Sprint = !params.Sprint
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = ParamsFromConfig(base)
			changed = true
		}
		panelY += 50

		if changed {
			curve = SpeedCurve(params)
		}

		// Output YAML
		fragment := params.YAML()
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(fragment, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(fragment)
		}

		rl.EndDrawing()
	}
}

func drawPlot(curve Curve, params Params) {
	x0, y0 := int32(20), int32(20)
	rl.DrawRectangleLines(x0, y0, plotWidth, plotHeight, rl.DarkGray)
	if len(curve.Speeds) < 2 {
		return
	}

	top := curve.Max * 1.1
	if top <= 0 {
		top = 1
	}
	point := func(i int, v float32) rl.Vector2 {
		return rl.Vector2{
			X: float32(x0) + float32(i)/float32(len(curve.Speeds)-1)*plotWidth,
			Y: float32(y0+plotHeight) - v/top*plotHeight,
		}
	}

	// Release marker
	rx := point(curve.ReleaseTick, 0).X
	rl.DrawLineV(rl.Vector2{X: rx, Y: float32(y0)}, rl.Vector2{X: rx, Y: float32(y0 + plotHeight)}, rl.LightGray)

	for i := 1; i < len(curve.Speeds); i++ {
		rl.DrawLineV(point(i-1, curve.Speeds[i-1]), point(i, curve.Speeds[i]), rl.Maroon)
	}

	statsY := y0 + plotHeight + 15
	rl.DrawText(fmt.Sprintf("Top: %.2f u/s  95%% at: %s  Stop: %s", curve.Max, seconds(curve.TimeToTop), seconds(curve.TimeToStop)),
		x0, statsY, 16, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("dt: %.3fs  ticks: %d", params.DT, len(curve.Speeds)), x0, statsY+20, 16, rl.DarkGray)
}

func seconds(t float32) string {
	if t < 0 {
		return "never"
	}
	return fmt.Sprintf("%.2fs", t)
}

// YAML renders the controller section for pasting into a config file.
func (p Params) YAML() string {
	cfg := struct {
		Controller map[string]float64 `yaml:"controller"`
	}{
		Controller: map[string]float64{
			"movement_speed": round(p.MovementSpeed),
			"sprint_speed":   round(p.SprintSpeed),
			"max_speed":      round(p.MaxSpeed),
			"friction":       round(p.Friction),
		},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
