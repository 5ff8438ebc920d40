// Package game is the raylib host: it polls the window for input, runs the
// simulation on a fixed step and draws the scene with a debug tuning panel.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/input"
	"github.com/pthm-cable/orbit/renderer"
	"github.com/pthm-cable/orbit/sim"
	"github.com/pthm-cable/orbit/systems"
	"github.com/pthm-cable/orbit/telemetry"
	"github.com/pthm-cable/orbit/ui"
)

// traceFlushTicks is how many controller ticks pass between trace writes.
const traceFlushTicks = 250

// Options holds runtime options for the interactive host.
type Options struct {
	ConfigPath string // Watched for hot reload when non-empty
	OutputDir  string // Trace output, empty = disabled
	Watch      bool
}

// Game holds the interactive host state.
type Game struct {
	sim  *sim.Sim
	cfg  *config.Config
	opts Options

	in   *input.State
	keys []boundKey
	step *systems.FixedStep

	watcher   *config.Watcher
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	output    *telemetry.TraceWriter
	lastFlush int32

	scene     *renderer.SceneRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	// UI state
	captured  bool
	paused    bool
	showPanel bool
	showPerf  bool
	selected  uint8
}

// New creates the host around a fresh simulation. The raylib window must
// already be open.
func New(cfg *config.Config, opts Options) (*Game, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewTraceWriter(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		sim:       s,
		cfg:       cfg,
		opts:      opts,
		in:        input.NewState(),
		keys:      bindKeys(cfg.Keys),
		step:      systems.NewFixedStep(cfg.Derived.FixedDT32, cfg.Schedule.MaxStepsPerFrame),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		collector: telemetry.NewCollector(cfg.Telemetry.TraceEvery, cfg.Derived.FixedDT32),
		output:    output,
		scene:     renderer.NewSceneRenderer(float32(cfg.Screen.FOV)),
		hud:       ui.NewHUD(int32(cfg.Screen.Width)),
		perfPanel: ui.NewPerfPanel(int32(cfg.Screen.Width)-300, 180),
		showPanel: true,
	}
	if players := s.Players(); len(players) > 0 {
		g.selected = players[0].ID
	}

	if opts.Watch && opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			output.Close()
			return nil, fmt.Errorf("watching config: %w", err)
		}
		g.watcher = w
		slog.Info("watching config", "path", opts.ConfigPath)
	}

	return g, nil
}

// Update polls input and advances the simulation by the frame time.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()
	g.pollInput()
	g.checkReload()

	if !g.paused {
		g.perf.StartPhase(telemetry.PhasePipeline)
		n := g.sim.Frame(g.in, rl.GetFrameTime(), g.step, g.collector)

		if n > 0 {
			g.perf.StartPhase(telemetry.PhaseTrace)
			g.flushTrace(false)
		}
	}
	g.in.EndTick()
}

// flushTrace writes buffered trace rows every traceFlushTicks, or now when
// force is set.
func (g *Game) flushTrace(force bool) {
	if g.output == nil {
		g.collector.Drain()
		return
	}
	tick := g.sim.TickCount()
	if !force && tick-g.lastFlush < traceFlushTicks {
		return
	}
	g.lastFlush = tick

	if err := g.output.WriteTrace(g.collector.Drain()); err != nil {
		slog.Error("failed to write trace", "error", err)
	}
	if err := g.output.WritePerf(g.perf.Stats(), tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Tick returns the number of controller ticks run so far.
func (g *Game) Tick() int32 {
	return g.sim.TickCount()
}

// Unload flushes output and stops the config watcher.
func (g *Game) Unload() {
	if g.captured {
		rl.EnableCursor()
	}
	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.output != nil {
		g.flushTrace(true)
		if err := g.output.WriteSummary(g.collector.Summaries(0)); err != nil {
			slog.Error("failed to write summary", "error", err)
		}
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	g.perf.Stats().LogStats()
}
