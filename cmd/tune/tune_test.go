package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/telemetry"
)

func TestParamVectorNormalizeRoundtrip(t *testing.T) {
	pv := NewParamVector(config.ControllerConfig{Friction: 25, MovementSpeed: 5})
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestParamVectorApplyClamps(t *testing.T) {
	pv := NewParamVector(config.ControllerConfig{})
	cfg := &config.Config{}
	pv.ApplyToConfig(cfg, []float64{-5, 1000})
	if cfg.Controller.Friction != 0 {
		t.Errorf("friction = %v, want 0", cfg.Controller.Friction)
	}
	if cfg.Controller.MovementSpeed != 50 {
		t.Errorf("movement_speed = %v, want 50", cfg.Controller.MovementSpeed)
	}
}

func TestScore(t *testing.T) {
	target := Target{TopSpeed: 10, SpinUp: 0.5}
	tests := []struct {
		name    string
		summary telemetry.Summary
		want    float64
	}{
		{"exact", telemetry.Summary{MaxSpeed: 10, TimeToTop: 0.5}, 0},
		{"slow", telemetry.Summary{MaxSpeed: 5, TimeToTop: 0.5}, 0.25},
		{"late", telemetry.Summary{MaxSpeed: 10, TimeToTop: 1.0}, 1},
		{"never", telemetry.Summary{MaxSpeed: 5, TimeToTop: -1}, 0.25 + missPenalty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.summary, target); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDefaults(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	pv := NewParamVector(base.Controller)
	fe := NewFitnessEvaluator(pv, 100, Target{TopSpeed: 10, SpinUp: 0.2}, base)

	fitness := fe.Evaluate(pv.DefaultVector())
	if math.IsInf(fitness, 0) || math.IsNaN(fitness) {
		t.Fatalf("fitness = %v", fitness)
	}
	if fe.Last().MaxSpeed <= 0 {
		t.Errorf("MaxSpeed = %v, want > 0", fe.Last().MaxSpeed)
	}
	if len(base.Collision.Obstacles) == 0 {
		t.Error("base config was modified")
	}
}
