package telemetry

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TraceRecord is one controller sample in the per-tick trace.
type TraceRecord struct {
	Tick  int32   `csv:"tick"`
	Time  float64 `csv:"time"`
	ID    uint8   `csv:"id"`
	PosX  float32 `csv:"pos_x"`
	PosY  float32 `csv:"pos_y"`
	PosZ  float32 `csv:"pos_z"`
	VelX  float32 `csv:"vel_x"` // Per-tick displacement
	VelY  float32 `csv:"vel_y"`
	VelZ  float32 `csv:"vel_z"`
	Speed float64 `csv:"speed"` // Units per second
	Yaw   float32 `csv:"cam_yaw"`
	Pitch float32 `csv:"cam_pitch"`
	CamX  float32 `csv:"cam_x"`
	CamY  float32 `csv:"cam_y"`
	CamZ  float32 `csv:"cam_z"`
}

// Sample holds the state of one controller/rig pair after a tick.
type Sample struct {
	ID        uint8
	Position  mgl32.Vec3
	Velocity  mgl32.Vec3
	Yaw       float32
	Pitch     float32
	CameraPos mgl32.Vec3
}

// Collector buffers trace records and keeps per-controller speed series for
// the end-of-run summary.
type Collector struct {
	every int
	dt    float32

	pending []TraceRecord
	speeds  map[uint8][]float64
	travel  map[uint8]float64
	ids     []uint8
}

// NewCollector creates a collector that records every Nth tick. dt is the
// controller tick length, used to convert per-tick velocity to units/s.
func NewCollector(every int, dt float32) *Collector {
	if every < 1 {
		every = 1
	}
	return &Collector{
		every:  every,
		dt:     dt,
		speeds: make(map[uint8][]float64),
		travel: make(map[uint8]float64),
	}
}

// Observe records one sample for the given tick. Speed series are kept for
// every tick; trace rows only for every Nth.
func (c *Collector) Observe(tick int32, s Sample) {
	speed := c.rate(s.Velocity)

	if _, ok := c.speeds[s.ID]; !ok {
		c.ids = append(c.ids, s.ID)
	}
	c.speeds[s.ID] = append(c.speeds[s.ID], speed)
	c.travel[s.ID] += float64(s.Velocity.Len())

	if int(tick)%c.every != 0 {
		return
	}
	c.pending = append(c.pending, TraceRecord{
		Tick:  tick,
		Time:  float64(tick) * float64(c.dt),
		ID:    s.ID,
		PosX:  s.Position.X(),
		PosY:  s.Position.Y(),
		PosZ:  s.Position.Z(),
		VelX:  s.Velocity.X(),
		VelY:  s.Velocity.Y(),
		VelZ:  s.Velocity.Z(),
		Speed: speed,
		Yaw:   s.Yaw,
		Pitch: s.Pitch,
		CamX:  s.CameraPos.X(),
		CamY:  s.CameraPos.Y(),
		CamZ:  s.CameraPos.Z(),
	})
}

func (c *Collector) rate(v mgl32.Vec3) float64 {
	if c.dt <= 0 {
		return 0
	}
	return float64(v.Len()) / float64(c.dt)
}

// Drain returns and clears the buffered trace records.
func (c *Collector) Drain() []TraceRecord {
	out := c.pending
	c.pending = nil
	return out
}

// Summaries computes a summary per controller, in first-seen order.
// topSpeed is the expected top speed in units/s; zero uses the observed max.
func (c *Collector) Summaries(topSpeed float64) []Summary {
	out := make([]Summary, 0, len(c.ids))
	for _, id := range c.ids {
		s := Summarize(c.speeds[id], float64(c.dt), topSpeed)
		s.ID = id
		s.Distance = c.travel[id]
		out = append(out, s)
	}
	return out
}
