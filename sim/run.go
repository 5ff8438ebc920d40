package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/orbit/input"
	"github.com/pthm-cable/orbit/telemetry"
)

// flushEvery is how many ticks of trace rows are buffered between writes.
const flushEvery = 250

// RunOptions configures a scripted headless run.
type RunOptions struct {
	MaxTicks int                    // 0 = one pass of the script
	Output   *telemetry.TraceWriter // nil disables file output
	TopSpeed float64                // reference for time-to-top, 0 = observed max
}

// RunResult is what a scripted run produced.
type RunResult struct {
	Ticks     int
	Summaries []telemetry.Summary
	Perf      telemetry.PerfStats
}

// Run replays script against s until the script ends, MaxTicks is reached
// or ctx is cancelled.
func Run(ctx context.Context, s *Sim, script *Script, opts RunOptions) (RunResult, error) {
	if script == nil {
		return RunResult{}, errors.New("run: nil script")
	}
	if script.Loop && opts.MaxTicks <= 0 {
		return RunResult{}, errors.New("run: looping script needs a tick limit")
	}

	cfg := s.Config()
	collector := telemetry.NewCollector(cfg.Telemetry.TraceEvery, cfg.Derived.FixedDT32)
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	player := NewScriptPlayer(script)
	in := input.NewState()

	if err := opts.Output.WriteConfig(cfg); err != nil {
		return RunResult{}, err
	}

	var result RunResult
	for opts.MaxTicks <= 0 || result.Ticks < opts.MaxTicks {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled at tick %d: %w", result.Ticks, err)
		}

		perf.StartTick()
		perf.StartPhase(telemetry.PhaseInput)
		if !player.Next(in) {
			break
		}

		perf.StartPhase(telemetry.PhasePipeline)
		s.Tick(in)
		result.Ticks++

		perf.StartPhase(telemetry.PhaseTrace)
		s.Observe(collector)
		if result.Ticks%flushEvery == 0 {
			if err := opts.Output.WriteTrace(collector.Drain()); err != nil {
				return result, err
			}
			if err := opts.Output.WritePerf(perf.Stats(), s.TickCount()); err != nil {
				return result, err
			}
		}
		perf.EndTick()
	}

	if err := opts.Output.WriteTrace(collector.Drain()); err != nil {
		return result, err
	}

	result.Summaries = collector.Summaries(opts.TopSpeed)
	result.Perf = perf.Stats()
	if err := opts.Output.WriteSummary(result.Summaries); err != nil {
		return result, err
	}

	slog.Info("run complete", "ticks", result.Ticks, "output", opts.Output.Dir())
	return result, nil
}
