package inspector

import "testing"

type tuned struct {
	Label    uint8   `inspect:"label"`
	Speed    float32 `inspect:"slider,min:0,max:10"`
	Gain     float64
	Heading  float32 `inspect:"angle"`
	Enabled  bool
	Hidden   float32 `inspect:"skip"`
	internal float32
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag    string
		widget Widget
		opts   map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"label", WidgetLabel, map[string]string{}},
		{"slider,min:1,max:30", WidgetSlider, map[string]string{"min": "1", "max": "30"}},
		{"label,fmt:%.4f", WidgetLabel, map[string]string{"fmt": "%.4f"}},
		{"angle", WidgetAngle, map[string]string{}},
		{"skip", WidgetSkip, map[string]string{}},
		{"mystery", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			if w != tt.widget {
				t.Errorf("widget = %v, want %v", w, tt.widget)
			}
			if len(opts) != len(tt.opts) {
				t.Fatalf("options = %v, want %v", opts, tt.opts)
			}
			for k, v := range tt.opts {
				if opts[k] != v {
					t.Errorf("options[%q] = %q, want %q", k, opts[k], v)
				}
			}
		})
	}
}

func TestFields(t *testing.T) {
	c := tuned{Label: 3, Speed: 2}
	fields := Fields(&c)

	want := []struct {
		name   string
		widget Widget
	}{
		{"Label", WidgetLabel},
		{"Speed", WidgetSlider},
		{"Gain", WidgetSlider},
		{"Heading", WidgetAngle},
		{"Enabled", WidgetBool},
	}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, w := range want {
		if fields[i].Name != w.name || fields[i].Widget != w.widget {
			t.Errorf("field %d = %s/%v, want %s/%v", i, fields[i].Name, fields[i].Widget, w.name, w.widget)
		}
	}
}

func TestFieldSetters(t *testing.T) {
	c := tuned{Speed: 2}
	fields := Fields(&c)
	byName := map[string]Field{}
	for _, f := range fields {
		byName[f.Name] = f
	}

	if !byName["Speed"].SetFloat(4.5) || c.Speed != 4.5 {
		t.Errorf("Speed = %v, want 4.5", c.Speed)
	}
	// Clamped to the slider range
	byName["Speed"].SetFloat(50)
	if c.Speed != 10 {
		t.Errorf("Speed = %v, want clamp to 10", c.Speed)
	}
	byName["Speed"].SetFloat(-1)
	if c.Speed != 0 {
		t.Errorf("Speed = %v, want clamp to 0", c.Speed)
	}

	// Untagged floats default to [0, 1]
	byName["Gain"].SetFloat(0.25)
	if c.Gain != 0.25 {
		t.Errorf("Gain = %v, want 0.25", c.Gain)
	}

	if !byName["Enabled"].SetBool(true) || !c.Enabled {
		t.Error("Enabled not set")
	}
	if byName["Label"].SetFloat(1) {
		t.Error("SetFloat on an integer field should fail")
	}
	if v, ok := byName["Label"].Float(); !ok || v != 0 {
		t.Errorf("Label.Float() = %v, %v", v, ok)
	}
}

func TestFieldsReadOnly(t *testing.T) {
	fields := Fields(tuned{Speed: 7})
	if len(fields) == 0 {
		t.Fatal("no fields")
	}
	for _, f := range fields {
		if f.Settable() {
			t.Errorf("%s settable on a value copy", f.Name)
		}
	}
	if fields[1].SetFloat(1) {
		t.Error("SetFloat succeeded on a value copy")
	}
	if v, _ := fields[1].Float(); v != 7 {
		t.Errorf("Speed = %v, want 7", v)
	}
}

func TestFieldsNonStruct(t *testing.T) {
	var nilPtr *tuned
	if Fields(nilPtr) != nil || Fields(3) != nil {
		t.Error("expected nil for non-struct input")
	}
}

func TestFormatAndRange(t *testing.T) {
	if got := FormatValue(float32(1.234), ""); got != "1.23" {
		t.Errorf("FormatValue = %q", got)
	}
	if got := FormatValue(float32(0.0012), "%.4f"); got != "0.0012" {
		t.Errorf("FormatValue fmt = %q", got)
	}
	if lo, hi := Range(map[string]string{"min": "5", "max": "2"}); lo != 2 || hi != 5 {
		t.Errorf("Range swapped = %v, %v", lo, hi)
	}
	if lo, hi := Range(nil); lo != 0 || hi != 1 {
		t.Errorf("Range default = %v, %v", lo, hi)
	}
}
