package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/orbit/components"
)

// TargetLookup fetches the transform of the controller with the given id.
// The camera depends only on this, never on the host's entity model.
type TargetLookup interface {
	Target(id uint8) (components.Transform, bool)
}

// RigLookup fetches the yaw of the camera rig following the given controller id.
type RigLookup interface {
	RigYaw(id uint8) (float32, bool)
}

// ControllerIndex is a TargetLookup scanning controller entities in an ark
// world. With duplicate ids the first entity in query order wins.
type ControllerIndex struct {
	filter *ecs.Filter2[components.Controller, components.Transform]
}

// NewControllerIndex creates a lookup over controllers in w.
func NewControllerIndex(w *ecs.World) *ControllerIndex {
	return &ControllerIndex{
		filter: ecs.NewFilter2[components.Controller, components.Transform](w),
	}
}

// Target implements TargetLookup.
func (ix *ControllerIndex) Target(id uint8) (components.Transform, bool) {
	query := ix.filter.Query()
	for query.Next() {
		ctl, tf := query.Get()
		if ctl.ID == id {
			found := *tf
			query.Close()
			return found, true
		}
	}
	return components.Transform{}, false
}

// RigIndex is a RigLookup scanning camera rigs in an ark world. With several
// rigs on one target the first in query order wins.
type RigIndex struct {
	filter *ecs.Filter1[components.CameraRig]
}

// NewRigIndex creates a lookup over rigs in w.
func NewRigIndex(w *ecs.World) *RigIndex {
	return &RigIndex{filter: ecs.NewFilter1[components.CameraRig](w)}
}

// RigYaw implements RigLookup.
func (ix *RigIndex) RigYaw(id uint8) (float32, bool) {
	query := ix.filter.Query()
	for query.Next() {
		rig := query.Get()
		if rig.TargetID == id {
			yaw := rig.Yaw
			query.Close()
			return yaw, true
		}
	}
	return 0, false
}

// TargetMap is a TargetLookup backed by a map, for hosts that keep their
// own index.
type TargetMap map[uint8]components.Transform

// Target implements TargetLookup.
func (m TargetMap) Target(id uint8) (components.Transform, bool) {
	tf, ok := m[id]
	return tf, ok
}

// RigYawMap is a RigLookup backed by a map.
type RigYawMap map[uint8]float32

// RigYaw implements RigLookup.
func (m RigYawMap) RigYaw(id uint8) (float32, bool) {
	yaw, ok := m[id]
	return yaw, ok
}
