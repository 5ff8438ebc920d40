package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/input"
)

// keyCodes maps logical key names used in config onto raylib key codes.
var keyCodes = map[input.Key]int32{
	"A": rl.KeyA, "B": rl.KeyB, "C": rl.KeyC, "D": rl.KeyD, "E": rl.KeyE,
	"F": rl.KeyF, "G": rl.KeyG, "H": rl.KeyH, "I": rl.KeyI, "J": rl.KeyJ,
	"K": rl.KeyK, "L": rl.KeyL, "M": rl.KeyM, "N": rl.KeyN, "O": rl.KeyO,
	"P": rl.KeyP, "Q": rl.KeyQ, "R": rl.KeyR, "S": rl.KeyS, "T": rl.KeyT,
	"U": rl.KeyU, "V": rl.KeyV, "W": rl.KeyW, "X": rl.KeyX, "Y": rl.KeyY,
	"Z": rl.KeyZ,

	"Up":           rl.KeyUp,
	"Down":         rl.KeyDown,
	"Left":         rl.KeyLeft,
	"Right":        rl.KeyRight,
	"Space":        rl.KeySpace,
	"LeftShift":    rl.KeyLeftShift,
	"RightShift":   rl.KeyRightShift,
	"LeftControl":  rl.KeyLeftControl,
	"RightControl": rl.KeyRightControl,
	"LeftAlt":      rl.KeyLeftAlt,
}

type boundKey struct {
	name input.Key
	code int32
}

// bindKeys resolves the configured movement keys. Unknown names stay
// unbound and are reported once.
func bindKeys(cfg config.KeysConfig) []boundKey {
	var out []boundKey
	for _, name := range []string{cfg.Forward, cfg.Back, cfg.Left, cfg.Right, cfg.Sprint} {
		if name == "" {
			continue
		}
		code, ok := keyCodes[input.Key(name)]
		if !ok {
			slog.Warn("unknown key name in config", "key", name)
			continue
		}
		out = append(out, boundKey{name: input.Key(name), code: code})
	}
	return out
}

// handleInput processes host controls that are not part of the simulation.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyTab) {
		g.setCaptured(!g.captured)
	}
	if g.captured && !rl.IsWindowFocused() {
		g.setCaptured(false)
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.showPanel = !g.showPanel
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
		g.step.Reset()
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Cycle the followed player with the number row
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour} {
		if rl.IsKeyPressed(key) {
			g.selectPlayer(uint8(i))
		}
	}
}

func (g *Game) setCaptured(on bool) {
	g.captured = on
	if on {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}

func (g *Game) selectPlayer(id uint8) {
	for _, p := range g.sim.Players() {
		if p.ID == id {
			g.selected = id
			return
		}
	}
}

// pollInput fills the input state for this frame. Pointer motion only
// counts while the cursor is captured by a focused window.
func (g *Game) pollInput() {
	for _, k := range g.keys {
		g.in.SetPressed(k.name, rl.IsKeyDown(k.code))
	}

	g.in.Focused = g.captured && rl.IsWindowFocused()
	if g.in.Focused {
		d := rl.GetMouseDelta()
		g.in.AddPointer(mgl32.Vec2{d.X, d.Y})
	}
}
