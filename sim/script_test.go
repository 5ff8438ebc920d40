package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/input"
)

func TestScriptPlayer(t *testing.T) {
	s := &Script{Steps: []ScriptStep{
		{Ticks: 2, Keys: []string{"W"}},
		{Ticks: 0, Keys: []string{"X"}},
		{Ticks: 1, Keys: []string{"A"}, Pointer: [2]float32{3, -1}, Unfocused: true},
	}}
	p := NewScriptPlayer(s)
	in := input.NewState()

	type want struct {
		w, a, x bool
		focused bool
		pointer mgl32.Vec2
	}
	steps := []want{
		{w: true, focused: true},
		{w: true, focused: true},
		{a: true, pointer: mgl32.Vec2{3, -1}},
	}
	for i, st := range steps {
		if !p.Next(in) {
			t.Fatalf("tick %d: script ended early", i)
		}
		if in.Pressed("W") != st.w || in.Pressed("A") != st.a || in.Pressed("X") != st.x {
			t.Errorf("tick %d: keys W=%v A=%v X=%v", i, in.Pressed("W"), in.Pressed("A"), in.Pressed("X"))
		}
		if in.Focused != st.focused {
			t.Errorf("tick %d: focused = %v, want %v", i, in.Focused, st.focused)
		}
		if in.PointerDelta != st.pointer {
			t.Errorf("tick %d: pointer = %v, want %v", i, in.PointerDelta, st.pointer)
		}
	}

	if p.Next(in) {
		t.Error("script did not end")
	}
	if in.Pressed("A") || in.Focused || in.PointerDelta != (mgl32.Vec2{}) {
		t.Error("input not released at end of script")
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestScriptLoop(t *testing.T) {
	s := &Script{Loop: true, Steps: []ScriptStep{{Ticks: 1, Keys: []string{"W"}}, {Ticks: 1}}}
	p := NewScriptPlayer(s)
	in := input.NewState()
	for i := 0; i < 6; i++ {
		if !p.Next(in) {
			t.Fatalf("looping script ended at tick %d", i)
		}
		if want := i%2 == 0; in.Pressed("W") != want {
			t.Errorf("tick %d: W = %v, want %v", i, in.Pressed("W"), want)
		}
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "walk.yaml")
	data := "steps:\n  - {ticks: 10, keys: [W]}\n  - {ticks: 5, pointer: [2, 0]}\n"
	if err := os.WriteFile(good, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(good)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if s.Len() != 15 || s.Steps[1].Pointer != [2]float32{2, 0} {
		t.Errorf("script = %+v", s)
	}

	tests := map[string]string{
		"negative.yaml":   "steps:\n  - {ticks: -1}\n",
		"empty-loop.yaml": "loop: true\nsteps: []\n",
		"broken.yaml":     "steps: [\n",
	}
	for name, body := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadScript(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadScript(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing script")
	}
}
