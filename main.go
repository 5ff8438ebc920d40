package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/game"
	"github.com/pthm-cable/orbit/sim"
	"github.com/pthm-cable/orbit/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Replay a script without graphics")
	scriptPath := flag.String("script", "", "Input script YAML for headless runs (empty = built-in script)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV traces and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N controller ticks (0 = unlimited)")
	topSpeed := flag.Float64("top-speed", 0, "Reference top speed in units/s for spin-up time (0 = observed max)")
	watch := flag.Bool("watch", false, "Reload --config when the file changes")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *headless {
		if err := runHeadless(cfg, *scriptPath, *outputDir, *maxTicks, *topSpeed); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Orbit")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, game.Options{
		ConfigPath: *configPath,
		OutputDir:  *outputDir,
		Watch:      *watch,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	slog.Info("starting", "order", cfg.Schedule.Order, "players", len(cfg.Players))

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
}

// runHeadless replays a script through the simulation without raylib.
func runHeadless(cfg *config.Config, scriptPath, outputDir string, maxTicks int, topSpeed float64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	script := sim.DefaultScript(cfg.Keys)
	if scriptPath != "" {
		var err error
		if script, err = sim.LoadScript(scriptPath); err != nil {
			return err
		}
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	output, err := telemetry.NewTraceWriter(outputDir)
	if err != nil {
		return err
	}
	defer output.Close()

	slog.Info("starting headless run",
		"order", cfg.Schedule.Order,
		"script_ticks", script.Len(),
		"loop", script.Loop,
		"max_ticks", maxTicks,
	)

	result, err := sim.Run(ctx, s, script, sim.RunOptions{
		MaxTicks: maxTicks,
		Output:   output,
		TopSpeed: topSpeed,
	})
	if err != nil {
		return err
	}

	for _, summary := range result.Summaries {
		slog.Info("summary", "player", summary)
	}
	result.Perf.LogStats()
	return nil
}
