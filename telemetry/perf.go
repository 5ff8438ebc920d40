package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a host frame.
type Phase int

// Phases of one host frame, in the order they run.
const (
	PhaseInput Phase = iota
	PhasePipeline
	PhaseTrace
	PhaseRender

	numPhases
	noPhase Phase = -1
)

var phaseNames = [numPhases]string{"input", "pipeline", "trace", "render"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases returns every phase in frame order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

type perfSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times host frames phase by phase over a rolling window.
// Frames are bracketed by StartTick and EndTick.
type PerfCollector struct {
	samples []perfSample
	next    int
	count   int

	current    perfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase

	lastFrame time.Time
	frameDur  time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{samples: make([]perfSample, window), phase: noPhase}
}

// StartTick begins timing a new host frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = perfSample{}
	p.phase = noPhase
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the frame and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	p.current.total = now.Sub(p.tickStart)

	p.samples[p.next] = p.current
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

// RecordFrame measures the wall time between consecutive rendered frames.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDur = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PhaseStat is the average cost of one phase.
type PhaseStat struct {
	Avg time.Duration
	Pct float64 // share of the average frame
}

// PerfStats aggregates the current window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	TicksPerSecond  float64

	Phases [numPhases]PhaseStat

	// Rendered frame timing; zero when headless
	FrameDuration time.Duration
	FPS           float64
}

// Phase returns the stats for one phase.
func (s PerfStats) Phase(p Phase) PhaseStat {
	if p < 0 || p >= numPhases {
		return PhaseStat{}
	}
	return s.Phases[p]
}

// Stats computes aggregates over the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	s.FrameDuration = p.frameDur
	if p.frameDur > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDur)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i, sample := range p.samples[:p.count] {
		total += sample.total
		if i == 0 || sample.total < s.MinTickDuration {
			s.MinTickDuration = sample.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, sample.total)
		for ph, d := range sample.phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTickDuration = total / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for ph, sum := range phaseSum {
		avg := sum / n
		s.Phases[ph].Avg = avg
		if s.AvgTickDuration > 0 {
			s.Phases[ph].Pct = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	return s
}

// LogStats logs the window at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases() {
		if pct := s.Phases[ph].Pct; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	Tick        int32   `csv:"tick"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	InputPct    float64 `csv:"input_pct"`
	PipelinePct float64 `csv:"pipeline_pct"`
	TracePct    float64 `csv:"trace_pct"`
	RenderPct   float64 `csv:"render_pct"`
}

// ToCSV flattens the stats into a perf.csv row for the given tick.
func (s PerfStats) ToCSV(tick int32) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:        tick,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		InputPct:    s.Phases[PhaseInput].Pct,
		PipelinePct: s.Phases[PhasePipeline].Pct,
		TracePct:    s.Phases[PhaseTrace].Pct,
		RenderPct:   s.Phases[PhaseRender].Pct,
	}
}
