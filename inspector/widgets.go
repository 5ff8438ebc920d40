package inspector

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
)

// Layout for one row.
const (
	labelWidth   = 110
	controlWidth = 140
	rowHeight    = 20
)

// DrawLabel renders a read-only value.
func DrawLabel(x, y int32, field Field) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", field.Name, field.String()), x, y, 14, ColorText)
	return rowHeight
}

// DrawSlider renders a raygui slider and writes the new value back.
func DrawSlider(x, y int32, field Field) int32 {
	v, ok := field.Float()
	if !ok || !field.Settable() {
		return DrawLabel(x, y, field)
	}
	lo, hi := Range(field.Options)

	rect := rl.Rectangle{X: float32(x + labelWidth), Y: float32(y), Width: controlWidth, Height: 16}
	rl.DrawText(field.Name, x, y+1, 14, ColorTextDim)
	nv := gui.SliderBar(rect, "", field.String(), v, lo, hi)
	if nv != v {
		field.SetFloat(nv)
	}
	return rowHeight
}

// DrawAngle renders a compass-style angle indicator. Yaw zero points up the
// panel, matching a camera on +Z looking toward -Z.
func DrawAngle(x, y int32, field Field) int32 {
	radians, ok := field.Float()
	if !ok {
		return DrawLabel(x, y, field)
	}
	size := int32(36)
	centerX := x + labelWidth + size/2
	centerY := y + size/2

	rl.DrawText(field.Name, x, y+size/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, float32(size/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(size/2), ColorTextDim)

	needleLen := float32(size/2 - 4)
	endX := float32(centerX) - needleLen*float32(math.Sin(float64(radians)))
	endY := float32(centerY) - needleLen*float32(math.Cos(float64(radians)))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: endX, Y: endY},
		2,
		ColorAngleNeedle,
	)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.1f deg", degrees), x+labelWidth+size+6, y+size/2-7, 14, ColorTextDim)

	return size + 4
}

// DrawBool renders a toggle button and writes the new value back.
func DrawBool(x, y int32, field Field) int32 {
	on, ok := field.Bool()
	if !ok || !field.Settable() {
		return DrawLabel(x, y, field)
	}

	rl.DrawText(field.Name, x, y+1, 14, ColorTextDim)
	text := "OFF"
	if on {
		text = "ON"
	}
	if gui.Button(rl.Rectangle{X: float32(x + labelWidth), Y: float32(y), Width: 50, Height: 16}, text) {
		field.SetBool(!on)
	}
	return rowHeight
}

// DrawField renders a field using its widget type and returns the height
// used.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetSlider:
		return DrawSlider(x, y, field)
	case WidgetAngle:
		return DrawAngle(x, y, field)
	case WidgetBool:
		return DrawBool(x, y, field)
	default:
		return DrawLabel(x, y, field)
	}
}

// DrawFields renders a titled block of fields and returns the total height.
func DrawFields(x, y int32, title string, fields []Field) int32 {
	start := y
	rl.DrawText(title, x, y, 16, ColorText)
	y += 22
	for _, f := range fields {
		y += DrawField(x+8, y, f)
	}
	return y - start + 6
}
