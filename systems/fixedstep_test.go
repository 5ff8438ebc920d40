package systems

import (
	"math"
	"testing"
)

func TestFixedStepAdvance(t *testing.T) {
	tests := []struct {
		name   string
		frames []float32
		want   []int
	}{
		{"exact", []float32{0.25, 0.25}, []int{1, 1}},
		{"accumulates", []float32{0.125, 0.125, 0.125}, []int{0, 1, 0}},
		{"several per frame", []float32{0.75}, []int{3}},
		{"capped", []float32{10, 0.25}, []int{4, 1}},
		{"ignores bad frames", []float32{-1, 0, float32(math.NaN()), 0.25}, []int{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFixedStep(0.25, 4)
			for i, dt := range tt.frames {
				if got := f.Advance(dt); got != tt.want[i] {
					t.Errorf("frame %d: Advance(%v) = %d, want %d", i, dt, got, tt.want[i])
				}
			}
		})
	}
}

func TestFixedStepAlpha(t *testing.T) {
	f := NewFixedStep(0.25, 4)
	f.Advance(0.375)
	if a := f.Alpha(); a != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", a)
	}
	f.Reset()
	if a := f.Alpha(); a != 0 {
		t.Errorf("Alpha after Reset = %v, want 0", a)
	}
}

func TestFixedStepMinimumCap(t *testing.T) {
	f := NewFixedStep(0.25, 0)
	if f.MaxSteps != 1 {
		t.Errorf("MaxSteps = %d, want 1", f.MaxSteps)
	}
}
