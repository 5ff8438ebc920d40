package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// reachFraction is the share of top speed that counts as "up to speed".
const reachFraction = 0.95

// Summary holds speed statistics for one controller over a run.
type Summary struct {
	ID        uint8   `csv:"id"`
	Ticks     int     `csv:"ticks"`
	MeanSpeed float64 `csv:"mean_speed"`
	StdSpeed  float64 `csv:"std_speed"`
	P50Speed  float64 `csv:"p50_speed"`
	P90Speed  float64 `csv:"p90_speed"`
	MaxSpeed  float64 `csv:"max_speed"`
	TimeToTop float64 `csv:"time_to_top"` // Seconds to reach 95% of top speed, -1 if never
	Distance  float64 `csv:"distance"`
}

// Summarize computes statistics over a per-tick speed series (units/s).
// topSpeed <= 0 measures spin-up against the series maximum.
func Summarize(speeds []float64, dt, topSpeed float64) Summary {
	s := Summary{Ticks: len(speeds), TimeToTop: -1}
	if len(speeds) == 0 {
		return s
	}

	s.MeanSpeed = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		s.StdSpeed = stat.StdDev(speeds, nil)
	}
	s.MaxSpeed = floats.Max(speeds)

	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)
	s.P50Speed = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P90Speed = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	if topSpeed <= 0 {
		topSpeed = s.MaxSpeed
	}
	if topSpeed > 0 {
		threshold := reachFraction * topSpeed
		for i, v := range speeds {
			if v >= threshold {
				s.TimeToTop = float64(i+1) * dt
				break
			}
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", int(s.ID)),
		slog.Int("ticks", s.Ticks),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("time_to_top", s.TimeToTop),
		slog.Float64("distance", s.Distance),
	)
}
