package sim

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/orbit/config"
	"github.com/pthm-cable/orbit/input"
)

// Script is scripted input for headless runs: a list of steps, each held
// for a number of ticks.
//
//	steps:
//	  - {ticks: 100, keys: [W]}
//	  - {ticks: 50, keys: [W, LeftShift], pointer: [4, 0]}
//	  - {ticks: 50, unfocused: true, pointer: [10, 0]}
type Script struct {
	Steps []ScriptStep `yaml:"steps"`
	Loop  bool         `yaml:"loop"`
}

// ScriptStep is one segment of scripted input.
type ScriptStep struct {
	Ticks     int        `yaml:"ticks"`
	Keys      []string   `yaml:"keys"`
	Pointer   [2]float32 `yaml:"pointer"` // Pointer delta per tick
	Unfocused bool       `yaml:"unfocused"`
}

// LoadScript reads a script from a YAML file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) validate() error {
	for i, step := range s.Steps {
		if step.Ticks < 0 {
			return fmt.Errorf("script step %d: negative ticks %d", i, step.Ticks)
		}
	}
	if s.Loop && s.Len() == 0 {
		return fmt.Errorf("script: loop with no ticks")
	}
	return nil
}

// Len returns the number of ticks in one pass of the script.
func (s *Script) Len() int {
	n := 0
	for _, step := range s.Steps {
		n += step.Ticks
	}
	return n
}

// DefaultScript walks forward from rest, sprints, turns the camera while
// moving, then releases everything so friction brings the player to a stop.
func DefaultScript(keys config.KeysConfig) *Script {
	return &Script{Steps: []ScriptStep{
		{Ticks: 150, Keys: []string{keys.Forward}},
		{Ticks: 100, Keys: []string{keys.Forward, keys.Sprint}},
		{Ticks: 100, Keys: []string{keys.Forward, keys.Right}, Pointer: [2]float32{8, 0}},
		{Ticks: 100},
	}}
}

// Straight holds forward for n ticks.
func Straight(keys config.KeysConfig, n int) *Script {
	return &Script{Steps: []ScriptStep{{Ticks: n, Keys: []string{keys.Forward}}}}
}

// ScriptPlayer replays a script into an input state one tick at a time.
type ScriptPlayer struct {
	script *Script
	step   int
	tick   int
}

// NewScriptPlayer creates a player positioned at the first tick.
func NewScriptPlayer(s *Script) *ScriptPlayer {
	return &ScriptPlayer{script: s}
}

// Next writes the input for the next tick into in. Returns false once a
// non-looping script is exhausted; in is left released and unfocused.
func (p *ScriptPlayer) Next(in *input.State) bool {
	step, ok := p.advance()
	in.ReleaseAll()
	in.EndTick()
	if !ok {
		in.Focused = false
		return false
	}

	for _, k := range step.Keys {
		in.Press(input.Key(k))
	}
	in.Focused = !step.Unfocused
	if step.Pointer != [2]float32{} {
		in.AddPointer(mgl32.Vec2{step.Pointer[0], step.Pointer[1]})
	}
	return true
}

func (p *ScriptPlayer) advance() (ScriptStep, bool) {
	steps := p.script.Steps
	for {
		if p.step >= len(steps) {
			if !p.script.Loop || p.script.Len() == 0 {
				return ScriptStep{}, false
			}
			p.step = 0
		}
		if p.tick < steps[p.step].Ticks {
			p.tick++
			return steps[p.step], true
		}
		p.step++
		p.tick = 0
	}
}
