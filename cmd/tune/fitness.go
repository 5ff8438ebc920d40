package main

import (
	"context"
	"math"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/sim"
	"github.com/pthm-cable/orbit/telemetry"
)

// missPenalty is charged when a run never reaches the target speed.
const missPenalty = 10.0

// Target is the feel the tuner is searching for.
type Target struct {
	TopSpeed float64 // units/s
	SpinUp   float64 // seconds to reach 95% of TopSpeed
}

// FitnessEvaluator runs headless straight-line runs and scores them against
// a target top speed and spin-up time.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	target     Target
	baseConfig *config.Config

	last telemetry.Summary
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, target Target, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		target:     target,
		baseConfig: baseCfg,
	}
}

// Last returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) Last() telemetry.Summary {
	return fe.last
}

// Evaluate scores a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.configFor(x)

	s, err := sim.New(cfg)
	if err != nil {
		return math.Inf(1)
	}
	res, err := sim.Run(context.Background(), s, sim.Straight(cfg.Keys, fe.ticks), sim.RunOptions{
		TopSpeed: fe.target.TopSpeed,
	})
	if err != nil || len(res.Summaries) == 0 {
		return math.Inf(1)
	}
	fe.last = res.Summaries[0]
	return Score(fe.last, fe.target)
}

// Score combines relative top-speed and spin-up errors.
func Score(s telemetry.Summary, t Target) float64 {
	speedErr := (s.MaxSpeed - t.TopSpeed) / t.TopSpeed
	score := speedErr * speedErr
	if s.TimeToTop < 0 {
		return score + missPenalty
	}
	timeErr := (s.TimeToTop - t.SpinUp) / t.SpinUp
	return score + timeErr*timeErr
}

// configFor returns a single-player, obstacle-free copy of the base config
// with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) *config.Config {
	cfg := *fe.baseConfig
	cfg.Collision.Enabled = false
	cfg.Collision.Obstacles = nil
	cfg.Players = []config.PlayerConfig{{ID: 0, Y: 1}}
	fe.params.ApplyToConfig(&cfg, x)
	return &cfg
}
