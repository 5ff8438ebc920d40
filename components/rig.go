package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/config"
)

// CameraRig is a third-person camera orbiting the controller whose ID equals
// TargetID.
type CameraRig struct {
	TargetID uint8 `inspect:"label"`

	// Orbital angles in radians, persisted across ticks
	Pitch float32 `inspect:"angle"`
	Yaw   float32 `inspect:"angle"`

	Sensitivity float32 `inspect:"slider,min:0.0001,max:0.01,fmt:%.4f"`
	Distance    float32 `inspect:"slider,min:1,max:30"`

	// Optional floor for the camera height
	MinHeight   float32 `inspect:"slider,min:-5,max:10"`
	ClampHeight bool    `inspect:"bool"`

	// AlwaysFollow re-places the camera every tick, not only when the
	// pointer moved.
	AlwaysFollow bool `inspect:"bool"`

	TargetOffset   mgl32.Vec3 `inspect:"skip"` // added to the look point
	PositionOffset mgl32.Vec3 `inspect:"skip"` // added to the final position, world space
}

// RigFromConfig returns a rig following target with the configured tuning.
func RigFromConfig(cfg config.CameraConfig, target uint8) CameraRig {
	return CameraRig{
		TargetID:       target,
		Pitch:          float32(cfg.Pitch),
		Yaw:            float32(cfg.Yaw),
		Sensitivity:    float32(cfg.Sensitivity),
		Distance:       float32(cfg.Distance),
		MinHeight:      float32(cfg.MinHeight),
		ClampHeight:    cfg.ClampHeight,
		AlwaysFollow:   cfg.AlwaysFollow,
		TargetOffset:   vec3(cfg.TargetOffset),
		PositionOffset: vec3(cfg.PositionOffset),
	}
}

// ApplyTuning copies tunable fields from cfg, leaving the live angles and
// target alone.
func (r *CameraRig) ApplyTuning(cfg config.CameraConfig) {
	r.Sensitivity = float32(cfg.Sensitivity)
	r.Distance = float32(cfg.Distance)
	r.MinHeight = float32(cfg.MinHeight)
	r.ClampHeight = cfg.ClampHeight
	r.AlwaysFollow = cfg.AlwaysFollow
	r.TargetOffset = vec3(cfg.TargetOffset)
	r.PositionOffset = vec3(cfg.PositionOffset)
}

// StoreTuning writes the tunable fields back into cfg.
func (r *CameraRig) StoreTuning(cfg *config.CameraConfig) {
	cfg.Sensitivity = float64(r.Sensitivity)
	cfg.Distance = float64(r.Distance)
	cfg.MinHeight = float64(r.MinHeight)
	cfg.ClampHeight = r.ClampHeight
	cfg.AlwaysFollow = r.AlwaysFollow
}

func vec3(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
