package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/systems"
)

// stopSpeed is the speed in units/s below which the controller counts as
// stopped.
const stopSpeed = 0.01

// Params holds the controller tuning being previewed.
type Params struct {
	MovementSpeed float32
	SprintSpeed   float32
	MaxSpeed      float32
	Friction      float32
	DT            float32
	Sprint        bool
	Hold          float32 // Seconds of forward input
	Release       float32 // Seconds of no input afterwards
}

// ParamsFromConfig seeds the preview from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		MovementSpeed: float32(cfg.Controller.MovementSpeed),
		SprintSpeed:   float32(cfg.Controller.SprintSpeed),
		MaxSpeed:      float32(cfg.Controller.MaxSpeed),
		Friction:      float32(cfg.Controller.Friction),
		DT:            cfg.Derived.FixedDT32,
		Hold:          2,
		Release:       1,
	}
}

// Curve is the speed series of a hold-then-release run.
type Curve struct {
	Speeds      []float32 // units/s per tick
	ReleaseTick int
	Max         float32
	TimeToTop   float32 // Seconds to 95% of Max, -1 if never
	TimeToStop  float32 // Seconds after release until stopped, -1 if never
}

// SpeedCurve steps the friction and acceleration model along a fixed
// direction: forward held for Hold seconds, then released.
func SpeedCurve(p Params) Curve {
	if p.DT <= 0 {
		return Curve{TimeToTop: -1, TimeToStop: -1}
	}
	hold := int(math.Round(float64(p.Hold / p.DT)))
	release := int(math.Round(float64(p.Release / p.DT)))

	top := p.MovementSpeed
	if p.Sprint {
		top = p.SprintSpeed
	}
	dir := mgl32.Vec3{0, 0, -1}

	c := Curve{ReleaseTick: hold, TimeToTop: -1, TimeToStop: -1}
	var v mgl32.Vec3
	for i := 0; i < hold+release; i++ {
		v = systems.ApplyFriction(v, p.Friction, p.DT)
		if i < hold {
			v = systems.Accelerate(v, dir, top, p.MaxSpeed, p.DT)
		}
		speed := v.Len() / p.DT
		c.Speeds = append(c.Speeds, speed)
		c.Max = max(c.Max, speed)
	}

	if c.Max > 0 {
		for i := 0; i < hold; i++ {
			if c.Speeds[i] >= 0.95*c.Max {
				c.TimeToTop = float32(i+1) * p.DT
				break
			}
		}
	}
	for i := hold; i < len(c.Speeds); i++ {
		if c.Speeds[i] < stopSpeed {
			c.TimeToStop = float32(i-hold+1) * p.DT
			break
		}
	}
	return c
}

func round(v float32) float64 {
	return math.Round(float64(v)*1000) / 1000
}
