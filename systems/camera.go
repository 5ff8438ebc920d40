package systems

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbit/camera"
	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/input"
)

// CameraSystem orbits every camera rig around its target.
type CameraSystem struct {
	filter *ecs.Filter2[components.CameraRig, components.Transform]
}

// NewCameraSystem creates a new camera system.
func NewCameraSystem(w *ecs.World) *CameraSystem {
	return &CameraSystem{
		filter: ecs.NewFilter2[components.CameraRig, components.Transform](w),
	}
}

// Update runs the camera system. Pointer motion is only consumed while the
// input source is focused.
func (s *CameraSystem) Update(in *input.State, targets TargetLookup) {
	var (
		delta   mgl32.Vec2
		focused bool
	)
	if in != nil {
		delta, focused = in.PointerDelta, in.Focused
	}

	query := s.filter.Query()
	for query.Next() {
		rig, tf := query.Get()
		UpdateRig(rig, tf, delta, focused, targets)
	}
}

// UpdateRig applies one tick to a single rig and reports whether its
// transform was rewritten. Without focus or pointer motion the rig is left
// alone unless it always follows. A missing target leaves the transform as
// it was.
func UpdateRig(rig *components.CameraRig, tf *components.Transform, delta mgl32.Vec2, focused bool, targets TargetLookup) bool {
	moved := focused && camera.ApplyPointer(rig, delta)
	if !moved && !rig.AlwaysFollow {
		return false
	}
	if targets == nil {
		return false
	}

	target, ok := targets.Target(rig.TargetID)
	if !ok {
		return false
	}
	*tf = camera.Orbit(rig, target.Position)
	return true
}
