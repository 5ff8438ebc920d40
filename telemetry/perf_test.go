package telemetry

import (
	"testing"
	"time"
)

func runFrames(pc *PerfCollector, n int, input, pipeline time.Duration) {
	for i := 0; i < n; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseInput)
		time.Sleep(input)
		pc.StartPhase(PhasePipeline)
		time.Sleep(pipeline)
		pc.EndTick()
	}
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	runFrames(pc, 5, 100*time.Microsecond, 200*time.Microsecond)

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.Phase(PhaseInput).Avg <= 0 {
		t.Error("expected input phase to be tracked")
	}
	if stats.Phase(PhasePipeline).Avg <= 0 {
		t.Error("expected pipeline phase to be tracked")
	}
	if stats.Phase(PhaseRender).Avg != 0 {
		t.Errorf("render phase = %v, want 0 when never started", stats.Phase(PhaseRender).Avg)
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	runFrames(pc, 10, 0, 0)

	if pc.count != 5 {
		t.Errorf("count = %d, want window size 5", pc.count)
	}
	if stats := pc.Stats(); stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	runFrames(pc, 5, 10*time.Microsecond, 2*time.Millisecond)

	stats := pc.Stats()
	fast := stats.Phase(PhaseInput).Pct
	slow := stats.Phase(PhasePipeline).Pct
	if slow <= fast {
		t.Errorf("expected pipeline (%v%%) > input (%v%%)", slow, fast)
	}
	if slow+fast > 100.0001 {
		t.Errorf("phase shares sum to %v%%", slow+fast)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgTickDuration != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v, want (0, 70]", stats.FPS)
	}
}

func TestPhaseNames(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseInput, "input"},
		{PhasePipeline, "pipeline"},
		{PhaseTrace, "trace"},
		{PhaseRender, "render"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
	if len(Phases()) != 4 {
		t.Errorf("Phases() = %v", Phases())
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 1500 * time.Microsecond
	s.TicksPerSecond = 666
	s.Phases[PhasePipeline].Pct = 60
	s.Phases[PhaseRender].Pct = 30

	row := s.ToCSV(42)
	if row.Tick != 42 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.PipelinePct != 60 || row.RenderPct != 30 || row.InputPct != 0 {
		t.Errorf("phase columns = %+v", row)
	}
}
