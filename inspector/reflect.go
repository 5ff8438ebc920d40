// Package inspector builds an editable field table from `inspect` struct
// tags, so tuning panels can list component fields without knowing their
// types.
package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetSlider
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Field is one exported component field with rendering hints. Fields built
// from a pointer can be written back through SetFloat and SetBool.
type Field struct {
	Name    string
	Widget  Widget
	Options map[string]string

	value reflect.Value
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"slider,min:0,max:40"`
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "slider":
		widget = WidgetSlider
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// Fields extracts all inspectable fields from a component. Pass a pointer
// to get settable fields; a value yields a read-only table.
func Fields(component interface{}) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}

		fv := v.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Widget:  widget,
			Options: options,
			value:   fv,
		})
	}

	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Float32, reflect.Float64:
		return WidgetSlider
	default:
		return WidgetLabel
	}
}

// Value returns the current field value.
func (f Field) Value() interface{} {
	return f.value.Interface()
}

// Settable reports whether the field can be written back.
func (f Field) Settable() bool {
	return f.value.CanSet()
}

// Float returns the field as float32 for numeric fields.
func (f Field) Float() (float32, bool) {
	switch f.value.Kind() {
	case reflect.Float32, reflect.Float64:
		return float32(f.value.Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float32(f.value.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float32(f.value.Uint()), true
	default:
		return 0, false
	}
}

// SetFloat writes a float field, clamped to the slider range. Reports
// whether the value was stored.
func (f Field) SetFloat(v float32) bool {
	if !f.value.CanSet() {
		return false
	}
	switch f.value.Kind() {
	case reflect.Float32, reflect.Float64:
	default:
		return false
	}
	if f.Widget == WidgetSlider {
		lo, hi := Range(f.Options)
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
	}
	f.value.SetFloat(float64(v))
	return true
}

// Bool returns the field as bool.
func (f Field) Bool() (bool, bool) {
	if f.value.Kind() != reflect.Bool {
		return false, false
	}
	return f.value.Bool(), true
}

// SetBool writes a bool field.
func (f Field) SetBool(b bool) bool {
	if !f.value.CanSet() || f.value.Kind() != reflect.Bool {
		return false
	}
	f.value.SetBool(b)
	return true
}

// String formats the field value, honouring the fmt option.
func (f Field) String() string {
	return FormatValue(f.Value(), f.Options["fmt"])
}

// FormatValue formats a field value as a string.
func FormatValue(value interface{}, fmtStr string) string {
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// Range returns the min and max options, defaulting to [0, 1].
func Range(options map[string]string) (min, max float32) {
	min = optionFloat(options, "min", 0)
	max = optionFloat(options, "max", 1)
	if max < min {
		min, max = max, min
	}
	return min, max
}

func optionFloat(options map[string]string, key string, def float32) float32 {
	if s, ok := options[key]; ok {
		if v, err := strconv.ParseFloat(s, 32); err == nil {
			return float32(v)
		}
	}
	return def
}
