// Package input holds the per-tick input snapshot the host hands to the
// camera and controller systems.
package input

import "github.com/go-gl/mathgl/mgl32"

// Key is a logical key name, e.g. "W" or "LeftShift". The host maps its own
// key codes onto these names.
type Key string

// State is everything the systems read from the input source for one tick.
type State struct {
	// PointerDelta is the summed pointer motion since the previous tick.
	PointerDelta mgl32.Vec2
	// Focused gates pointer input; an unfocused window never moves the camera.
	Focused bool

	pressed map[Key]bool
}

// NewState returns an empty, focused input state.
func NewState() *State {
	return &State{Focused: true, pressed: make(map[Key]bool)}
}

// Press marks a key as held.
func (s *State) Press(k Key) {
	if s.pressed == nil {
		s.pressed = make(map[Key]bool)
	}
	s.pressed[k] = true
}

// Release marks a key as not held.
func (s *State) Release(k Key) {
	delete(s.pressed, k)
}

// ReleaseAll releases every held key.
func (s *State) ReleaseAll() {
	for k := range s.pressed {
		delete(s.pressed, k)
	}
}

// SetPressed sets a key's held state.
func (s *State) SetPressed(k Key, down bool) {
	if down {
		s.Press(k)
	} else {
		s.Release(k)
	}
}

// Pressed reports whether a key is held. Unbound (empty) keys never are.
func (s *State) Pressed(k Key) bool {
	if k == "" {
		return false
	}
	return s.pressed[k]
}

// Axis returns 1 if only pos is held, -1 if only neg is held and 0 otherwise.
// Holding both cancels out.
func (s *State) Axis(pos, neg Key) float32 {
	return pressedValue(s.Pressed(pos)) - pressedValue(s.Pressed(neg))
}

// AddPointer accumulates pointer motion events into PointerDelta.
func (s *State) AddPointer(deltas ...mgl32.Vec2) {
	s.PointerDelta = s.PointerDelta.Add(AccumulatePointer(deltas))
}

// EndTick clears per-tick pointer motion. Held keys persist.
func (s *State) EndTick() {
	s.PointerDelta = mgl32.Vec2{}
}

// AccumulatePointer sums pointer motion events. Summing keeps the result
// independent of event order.
func AccumulatePointer(deltas []mgl32.Vec2) mgl32.Vec2 {
	var sum mgl32.Vec2
	for _, d := range deltas {
		sum = sum.Add(d)
	}
	return sum
}

func pressedValue(down bool) float32 {
	if down {
		return 1
	}
	return 0
}
