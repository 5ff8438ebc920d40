package components

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/input"
)

// Controller holds ground movement tuning for one player entity.
type Controller struct {
	ID uint8 `inspect:"label"`

	RotationSpeed float32 `inspect:"slider,min:0,max:40"`
	MovementSpeed float32 `inspect:"slider,min:0,max:40"`
	SprintSpeed   float32 `inspect:"slider,min:0,max:60"`
	MaxSpeed      float32 `inspect:"slider,min:0,max:2"` // per-tick cap along facing
	Friction      float32 `inspect:"slider,min:0,max:100"`

	// SnapRotation turns instantly instead of slerping toward the target yaw.
	SnapRotation bool `inspect:"bool"`

	// FacingOffset aligns atan2's reference axis with the model's forward.
	FacingOffset float32    `inspect:"skip"`
	ForwardAxis  mgl32.Vec3 `inspect:"skip"`
}

// KeyBindings maps movement actions to logical keys. Static configuration.
type KeyBindings struct {
	Forward input.Key
	Back    input.Key
	Left    input.Key
	Right   input.Key
	Sprint  input.Key
}

// ControllerFromConfig returns a controller with the configured tuning.
func ControllerFromConfig(cfg config.ControllerConfig, id uint8) Controller {
	c := Controller{ID: id}
	c.ApplyTuning(cfg)
	return c
}

// ApplyTuning copies tunable fields from cfg. The ID is kept.
func (c *Controller) ApplyTuning(cfg config.ControllerConfig) {
	c.RotationSpeed = float32(cfg.RotationSpeed)
	c.MovementSpeed = float32(cfg.MovementSpeed)
	c.SprintSpeed = float32(cfg.SprintSpeed)
	c.MaxSpeed = float32(cfg.MaxSpeed)
	c.Friction = float32(cfg.Friction)
	c.SnapRotation = cfg.SnapRotation
	c.FacingOffset = float32(cfg.FacingOffset)
	c.ForwardAxis = vec3(cfg.ForwardAxis)
}

// StoreTuning writes the panel-tunable fields back into cfg.
func (c *Controller) StoreTuning(cfg *config.ControllerConfig) {
	cfg.RotationSpeed = float64(c.RotationSpeed)
	cfg.MovementSpeed = float64(c.MovementSpeed)
	cfg.SprintSpeed = float64(c.SprintSpeed)
	cfg.MaxSpeed = float64(c.MaxSpeed)
	cfg.Friction = float64(c.Friction)
	cfg.SnapRotation = c.SnapRotation
}

// KeyBindingsFromConfig converts configured key names.
func KeyBindingsFromConfig(cfg config.KeysConfig) KeyBindings {
	return KeyBindings{
		Forward: input.Key(cfg.Forward),
		Back:    input.Key(cfg.Back),
		Left:    input.Key(cfg.Left),
		Right:   input.Key(cfg.Right),
		Sprint:  input.Key(cfg.Sprint),
	}
}

// ColliderFromConfig returns the configured controller collision shape.
func ColliderFromConfig(cfg config.ControllerConfig) Collider {
	return Collider{Radius: float32(cfg.Radius), HalfHeight: float32(cfg.HalfHeight)}
}
