package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jakecoffman/cp"

	"github.com/pthm-cable/orbit/config"
)

const (
	// minMotionSq skips sweeps too short to hit anything.
	minMotionSq = 1e-12

	// ContactSkin is the gap left between a shape and whatever it hit.
	ContactSkin = 0.005
)

type shapeEntry struct {
	id     BodyID
	sensor bool
}

// Space is a Caster backed by a chipmunk space. Movement is ground-only, so
// the world XZ plane maps onto chipmunk's XY plane and heights are dropped.
type Space struct {
	space  *cp.Space
	shapes map[*cp.Shape]shapeEntry
	byID   map[BodyID][]*cp.Shape
	movers map[BodyID]*cp.Body
	nextID BodyID
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	return &Space{
		space:  cp.NewSpace(),
		shapes: make(map[*cp.Shape]shapeEntry),
		byID:   make(map[BodyID][]*cp.Shape),
		movers: make(map[BodyID]*cp.Body),
		nextID: 1,
	}
}

// FromConfig builds a space holding the configured obstacles.
func FromConfig(cfg config.CollisionConfig) *Space {
	s := NewSpace()
	for _, ob := range cfg.Obstacles {
		center := mgl32.Vec3{float32(ob.X), 0, float32(ob.Z)}
		switch ob.Kind {
		case "box":
			s.AddBox(center, float32(ob.Width), float32(ob.Depth))
		case "circle":
			s.AddCircle(center, float32(ob.Radius))
		case "sensor":
			s.AddSensor(center, float32(ob.Radius))
		}
	}
	return s
}

// AddBox adds a static axis-aligned box centered at center.
func (s *Space) AddBox(center mgl32.Vec3, width, depth float32) BodyID {
	c := toCP(center)
	hw, hd := float64(width)/2, float64(depth)/2
	bb := cp.BB{L: c.X - hw, B: c.Y - hd, R: c.X + hw, T: c.Y + hd}
	return s.addStatic(cp.NewBox2(s.space.StaticBody, bb, 0), false)
}

// AddCircle adds a static round pillar.
func (s *Space) AddCircle(center mgl32.Vec3, radius float32) BodyID {
	return s.addStatic(cp.NewCircle(s.space.StaticBody, float64(radius), toCP(center)), false)
}

// AddWall adds a static wall segment from a to b with the given thickness radius.
func (s *Space) AddWall(a, b mgl32.Vec3, radius float32) BodyID {
	return s.addStatic(cp.NewSegment(s.space.StaticBody, toCP(a), toCP(b), float64(radius)), false)
}

// AddSensor adds a round trigger volume. Sweeps pass through sensors.
func (s *Space) AddSensor(center mgl32.Vec3, radius float32) BodyID {
	return s.addStatic(cp.NewCircle(s.space.StaticBody, float64(radius), toCP(center)), true)
}

func (s *Space) addStatic(shape *cp.Shape, sensor bool) BodyID {
	id := s.nextID
	s.nextID++
	s.register(id, shape, sensor)
	return id
}

// AddMover adds a kinematic round collider under a caller-chosen id, e.g.
// ControllerBody. Adding an existing id replaces it.
func (s *Space) AddMover(id BodyID, pos mgl32.Vec3, radius float32) {
	s.Remove(id)
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	s.space.AddBody(body)
	s.movers[id] = body
	s.register(id, cp.NewCircle(body, float64(radius), cp.Vector{}), false)
}

func (s *Space) register(id BodyID, shape *cp.Shape, sensor bool) {
	if sensor {
		shape.SetSensor(true)
	}
	s.space.AddShape(shape)
	s.shapes[shape] = shapeEntry{id: id, sensor: sensor}
	s.byID[id] = append(s.byID[id], shape)
}

// Move repositions a mover. Unknown ids are ignored.
func (s *Space) Move(id BodyID, pos mgl32.Vec3) {
	body, ok := s.movers[id]
	if !ok {
		return
	}
	body.SetPosition(toCP(pos))
	// Re-insert so the spatial index picks up the new bounds.
	for _, shape := range s.byID[id] {
		s.space.RemoveShape(shape)
		s.space.AddShape(shape)
	}
}

// Remove deletes a collider. Unknown ids are ignored.
func (s *Space) Remove(id BodyID) {
	for _, shape := range s.byID[id] {
		s.space.RemoveShape(shape)
		delete(s.shapes, shape)
	}
	delete(s.byID, id)
	if body, ok := s.movers[id]; ok {
		s.space.RemoveBody(body)
		delete(s.movers, id)
	}
}

// Len returns the number of colliders.
func (s *Space) Len() int {
	return len(s.byID)
}

// Cast sweeps a circle of q.Radius along q.Motion on the ground plane and
// returns the earliest non-sensor, non-excluded contact. Shapes the circle
// already overlaps only block motion that pushes further into them.
func (s *Space) Cast(q Query) (Hit, bool) {
	motion := cp.Vector{X: float64(q.Motion.X()), Y: float64(q.Motion.Z())}
	if motion.LengthSq() < minMotionSq || math.IsNaN(motion.X) || math.IsNaN(motion.Y) {
		return Hit{}, false
	}
	radius := float64(q.Radius)
	start := toCP(q.Origin)
	end := start.Add(motion)

	var (
		best  Hit
		found bool
	)
	s.space.BBQuery(sweptBB(start, end, radius), cp.SHAPE_FILTER_ALL,
		func(shape *cp.Shape, _ interface{}) {
			entry, ok := s.shapes[shape]
			if !ok || entry.sensor || excluded(entry.id, q.Exclude) {
				return
			}
			var info cp.SegmentQueryInfo
			if !shape.SegmentQuery(start, end, radius, &info) {
				return
			}
			if info.Normal.Dot(motion) >= 0 {
				return
			}
			toi := float32(info.Alpha)
			if found && toi >= best.TOI {
				return
			}
			found = true
			best = Hit{
				TOI:    clamp01(toi),
				Points: []mgl32.Vec3{fromCP(info.Point, q.Origin.Y())},
				Normal: mgl32.Vec3{float32(info.Normal.X), 0, float32(info.Normal.Y)},
				Body:   entry.id,
			}
		}, nil)

	if found {
		best.TOI = backOff(best.TOI, float32(motion.Length()))
	}
	return best, found
}

// sweptBB bounds a circle of radius moving from a to b.
func sweptBB(a, b cp.Vector, radius float64) cp.BB {
	return cp.BB{
		L: math.Min(a.X, b.X) - radius,
		B: math.Min(a.Y, b.Y) - radius,
		R: math.Max(a.X, b.X) + radius,
		T: math.Max(a.Y, b.Y) + radius,
	}
}

// backOff pulls a time of impact back so the shape stops ContactSkin short
// of the contact. A cast starting exactly at contact can round to inside the
// inflated shape, where segment queries report nothing.
func backOff(toi, length float32) float32 {
	if !(length > 0) {
		return 0
	}
	return clamp01(toi - ContactSkin/length)
}

func toCP(v mgl32.Vec3) cp.Vector {
	return cp.Vector{X: float64(v.X()), Y: float64(v.Z())}
}

func fromCP(v cp.Vector, y float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), y, float32(v.Y)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
