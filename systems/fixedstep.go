package systems

// FixedStep converts variable frame time into a whole number of fixed ticks.
type FixedStep struct {
	Step     float32 // seconds per tick
	MaxSteps int     // cap per Advance; the backlog past it is dropped

	acc float32
}

// NewFixedStep creates an accumulator for the given tick length.
func NewFixedStep(step float32, maxSteps int) *FixedStep {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &FixedStep{Step: step, MaxSteps: maxSteps}
}

// Advance adds frame time and returns how many ticks to run now.
func (f *FixedStep) Advance(frameDt float32) int {
	if !(f.Step > 0) || !(frameDt > 0) || !isFinite(frameDt) {
		return 0
	}
	f.acc += frameDt
	n := int(f.acc / f.Step)
	if n > f.MaxSteps {
		// Too far behind to catch up; resync instead of spiralling.
		f.acc = 0
		return f.MaxSteps
	}
	f.acc -= float32(n) * f.Step
	return n
}

// Alpha is the fraction of a tick left in the accumulator, for render
// interpolation between the last two ticks.
func (f *FixedStep) Alpha() float32 {
	if !(f.Step > 0) {
		return 0
	}
	return clamp01(f.acc / f.Step)
}

// Reset clears the accumulator.
func (f *FixedStep) Reset() {
	f.acc = 0
}
