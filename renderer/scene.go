// Package renderer draws the 3D scene: the ground grid, obstacles and
// players, seen through a camera rig transform.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/config"
)

// Scene colors
var (
	ColorBackground = rl.Color{R: 24, G: 26, B: 32, A: 255}
	colorGround     = rl.Color{R: 36, G: 40, B: 48, A: 255}
	colorObstacle   = rl.Color{R: 90, G: 96, B: 110, A: 255}
	colorEdge       = rl.Color{R: 150, G: 156, B: 170, A: 255}
	colorSensor     = rl.Color{R: 80, G: 200, B: 160, A: 255}
	colorPlayer     = rl.Color{R: 230, G: 140, B: 60, A: 255}
	colorSelected   = rl.Color{R: 250, G: 200, B: 90, A: 255}
	colorFacing     = rl.Color{R: 240, G: 240, B: 240, A: 255}
)

const (
	obstacleHeight = 2 // Drawn height only; collision is planar
	gridSlices     = 60
	defaultRadius  = 0.5
)

// SceneRenderer draws the world in 3D.
type SceneRenderer struct {
	fovy float32
}

// NewSceneRenderer creates a renderer with the given vertical field of view
// in degrees.
func NewSceneRenderer(fovy float32) *SceneRenderer {
	return &SceneRenderer{fovy: fovy}
}

// SetFOV updates the field of view, e.g. after a config reload.
func (s *SceneRenderer) SetFOV(fovy float32) {
	s.fovy = fovy
}

// Camera converts a rig transform into a raylib camera looking along the
// rig's -Z.
func (s *SceneRenderer) Camera(tf components.Transform) rl.Camera3D {
	forward := tf.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	up := tf.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	return rl.Camera3D{
		Position:   vec(tf.Position),
		Target:     vec(tf.Position.Add(forward)),
		Up:         vec(up),
		Fovy:       s.fovy,
		Projection: rl.CameraPerspective,
	}
}

// Begin enters 3D mode for the given rig transform and draws the ground.
func (s *SceneRenderer) Begin(tf components.Transform) {
	rl.BeginMode3D(s.Camera(tf))
	rl.DrawPlane(rl.NewVector3(0, -0.01, 0), rl.NewVector2(gridSlices, gridSlices), colorGround)
	rl.DrawGrid(gridSlices, 1)
}

// End leaves 3D mode.
func (s *SceneRenderer) End() {
	rl.EndMode3D()
}

// DrawObstacles draws the configured obstacle layout.
func (s *SceneRenderer) DrawObstacles(obstacles []config.ObstacleConfig) {
	for _, ob := range obstacles {
		x, z := float32(ob.X), float32(ob.Z)
		switch ob.Kind {
		case "box":
			center := rl.NewVector3(x, obstacleHeight/2, z)
			rl.DrawCube(center, float32(ob.Width), obstacleHeight, float32(ob.Depth), colorObstacle)
			rl.DrawCubeWires(center, float32(ob.Width), obstacleHeight, float32(ob.Depth), colorEdge)
		case "circle":
			r := float32(ob.Radius)
			rl.DrawCylinder(rl.NewVector3(x, 0, z), r, r, obstacleHeight, 24, colorObstacle)
			rl.DrawCylinderWires(rl.NewVector3(x, 0, z), r, r, obstacleHeight, 24, colorEdge)
		case "sensor":
			r := float32(ob.Radius)
			rl.DrawCylinderWires(rl.NewVector3(x, 0, z), r, r, 0.1, 32, colorSensor)
		}
	}
}

// DrawPlayer draws a capsule-ish body at the controller transform with a
// line along its facing.
func (s *SceneRenderer) DrawPlayer(body components.Transform, radius float32, selected bool) {
	color := colorPlayer
	if selected {
		color = colorSelected
	}
	if radius <= 0 {
		radius = defaultRadius
	}

	pos := body.Position
	rl.DrawCylinder(vec(pos.Sub(mgl32.Vec3{0, radius, 0})), radius, radius, 2*radius, 16, color)
	rl.DrawSphere(vec(pos.Add(mgl32.Vec3{0, radius, 0})), radius, color)

	facing := body.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
	facing[1] = 0
	if facing.Len() > 1e-6 {
		tip := pos.Add(facing.Normalize().Mul(radius * 2))
		rl.DrawLine3D(vec(pos), vec(tip), colorFacing)
	}
}

func vec(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
