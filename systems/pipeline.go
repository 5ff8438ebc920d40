package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbit/collision"
	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/input"
)

// Order is the fixed ordering of the two systems inside a tick.
type Order uint8

const (
	// CameraFirst orbits the camera around the controller position from the
	// previous tick, then moves the controller using this tick's yaw.
	CameraFirst Order = iota
	// ControllerFirst moves the controller using the previous tick's yaw,
	// then orbits the camera around the fresh position.
	ControllerFirst
)

func (o Order) String() string {
	switch o {
	case CameraFirst:
		return config.OrderCameraFirst
	case ControllerFirst:
		return config.OrderControllerFirst
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ParseOrder converts a schedule.order config value.
func ParseOrder(s string) (Order, error) {
	switch s {
	case config.OrderCameraFirst:
		return CameraFirst, nil
	case config.OrderControllerFirst:
		return ControllerFirst, nil
	default:
		return 0, fmt.Errorf("unknown schedule order %q", s)
	}
}

// Pipeline runs the camera and controller systems in a fixed order.
//
// Concurrency: a Pipeline is single-threaded per tick. The host must not call
// Tick or Frame concurrently; the systems borrow the world's component
// storage for the duration of one call. Calls from different goroutines are
// fine as long as they do not overlap.
type Pipeline struct {
	Order      Order
	Camera     *CameraSystem
	Controller *ControllerSystem
	Targets    TargetLookup
	Rigs       RigLookup
	Caster     collision.Caster // optional
}

// NewPipeline wires both systems and the ark-backed lookups for w.
func NewPipeline(w *ecs.World, order Order, caster collision.Caster) *Pipeline {
	return &Pipeline{
		Order:      order,
		Camera:     NewCameraSystem(w),
		Controller: NewControllerSystem(w),
		Targets:    NewControllerIndex(w),
		Rigs:       NewRigIndex(w),
		Caster:     caster,
	}
}

// Tick runs one combined tick: camera and controller share in and dt.
func (p *Pipeline) Tick(in *input.State, dt float32) {
	if p.Order == ControllerFirst {
		p.updateController(in, dt)
		p.updateCamera(in)
		return
	}
	p.updateCamera(in)
	p.updateController(in, dt)
}

// Frame runs the camera once for a rendered frame and the controller for as
// many fixed steps as the frame time covers. afterStep, when non-nil, runs
// after every controller step. Returns the number of controller steps taken.
func (p *Pipeline) Frame(in *input.State, frameDt float32, step *FixedStep, afterStep func()) int {
	n := step.Advance(frameDt)
	if p.Order == ControllerFirst {
		p.runSteps(in, n, step.Step, afterStep)
		p.updateCamera(in)
		return n
	}
	p.updateCamera(in)
	p.runSteps(in, n, step.Step, afterStep)
	return n
}

func (p *Pipeline) runSteps(in *input.State, n int, dt float32, afterStep func()) {
	for i := 0; i < n; i++ {
		p.updateController(in, dt)
		if afterStep != nil {
			afterStep()
		}
	}
}

func (p *Pipeline) updateCamera(in *input.State) {
	p.Camera.Update(in, p.Targets)
}

func (p *Pipeline) updateController(in *input.State, dt float32) {
	p.Controller.Update(in, dt, p.Rigs, p.Caster)
}
