package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/orbit/components"
	"github.com/pthm-cable/orbit/input"
)

var testKeys = components.KeyBindings{
	Forward: "W", Back: "S", Left: "A", Right: "D", Sprint: "LeftShift",
}

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func nearVec(a, b mgl32.Vec3, tol float32) bool {
	return near(a[0], b[0], tol) && near(a[1], b[1], tol) && near(a[2], b[2], tol)
}

func testController() components.Controller {
	return components.Controller{
		RotationSpeed: 10,
		MovementSpeed: 20,
		SprintSpeed:   40,
		MaxSpeed:      10,
		Friction:      100,
		FacingOffset:  -math.Pi / 2,
		ForwardAxis:   mgl32.Vec3{0, 0, -1},
	}
}

func pressed(keys ...input.Key) *input.State {
	in := input.NewState()
	for _, k := range keys {
		in.Press(k)
	}
	return in
}

func TestMoveInput(t *testing.T) {
	tests := []struct {
		name string
		keys []input.Key
		want mgl32.Vec2
	}{
		{"idle", nil, mgl32.Vec2{0, 0}},
		{"forward", []input.Key{"W"}, mgl32.Vec2{0, 1}},
		{"back", []input.Key{"S"}, mgl32.Vec2{0, -1}},
		{"right", []input.Key{"D"}, mgl32.Vec2{1, 0}},
		{"left", []input.Key{"A"}, mgl32.Vec2{-1, 0}},
		{"diagonal", []input.Key{"W", "A"}, mgl32.Vec2{-1, 1}},
		{"opposites cancel", []input.Key{"W", "S", "A", "D"}, mgl32.Vec2{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoveInput(pressed(tt.keys...), testKeys); got != tt.want {
				t.Errorf("MoveInput = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTargetYaw(t *testing.T) {
	tests := []struct {
		name      string
		move      mgl32.Vec2
		cameraYaw float32
		want      float32
	}{
		{"forward, camera at 0", mgl32.Vec2{0, 1}, 0, 0},
		{"right, camera at 0", mgl32.Vec2{1, 0}, 0, -math.Pi / 2},
		{"left, camera at 0", mgl32.Vec2{-1, 0}, 0, math.Pi / 2},
		{"forward follows camera", mgl32.Vec2{0, 1}, 1.2, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetYaw(tt.move, tt.cameraYaw, -math.Pi/2)
			if !near(got, tt.want, 1e-5) {
				t.Errorf("TargetYaw = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFacingMatchesCameraView(t *testing.T) {
	// Camera yaw 0 sits on +Z looking toward -Z: forward moves -Z, right moves +X.
	tests := []struct {
		name string
		move mgl32.Vec2
		want mgl32.Vec3
	}{
		{"forward", mgl32.Vec2{0, 1}, mgl32.Vec3{0, 0, -1}},
		{"right", mgl32.Vec2{1, 0}, mgl32.Vec3{1, 0, 0}},
		{"back", mgl32.Vec2{0, -1}, mgl32.Vec3{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rot := YawRotation(TargetYaw(tt.move, 0, -math.Pi/2))
			got := FacingDirection(rot, mgl32.Vec3{0, 0, -1})
			if !nearVec(got, tt.want, 1e-5) {
				t.Errorf("facing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTurnToward(t *testing.T) {
	start := mgl32.QuatIdent()

	snapped := TurnToward(start, 1.0, 1, 0.02, true)
	if !nearVec(snapped.Rotate(mgl32.Vec3{0, 0, -1}), YawRotation(1.0).Rotate(mgl32.Vec3{0, 0, -1}), 1e-5) {
		t.Error("snap did not reach target")
	}

	half := TurnToward(start, 1.0, 25, 0.02, false) // factor 0.5
	got := FacingDirection(half, mgl32.Vec3{0, 0, -1})
	want := FacingDirection(YawRotation(0.5), mgl32.Vec3{0, 0, -1})
	if !nearVec(got, want, 1e-4) {
		t.Errorf("half turn facing = %v, want %v", got, want)
	}

	// Factor above 1 is bounded to reaching the target
	over := TurnToward(start, 1.0, 1000, 0.02, false)
	if !nearVec(FacingDirection(over, mgl32.Vec3{0, 0, -1}), FacingDirection(YawRotation(1.0), mgl32.Vec3{0, 0, -1}), 1e-5) {
		t.Error("over-unity factor did not land on target")
	}

	// Zero factor keeps facing
	if still := TurnToward(start, 1.0, 0, 0.02, false); still != start {
		t.Errorf("zero rotation speed changed facing to %v", still)
	}
}

func TestTurnTowardShortestArc(t *testing.T) {
	// From just below 2π to just above 0 is a short turn through 2π.
	from := YawRotation(2*math.Pi - 0.1)
	got := TurnToward(from, 0.1, 25, 0.02, false)
	dir := FacingDirection(got, mgl32.Vec3{0, 0, -1})
	want := FacingDirection(YawRotation(0), mgl32.Vec3{0, 0, -1})
	if !nearVec(dir, want, 1e-4) {
		t.Errorf("facing = %v, want %v (shortest arc)", dir, want)
	}
}

func TestTurnTowardZeroQuat(t *testing.T) {
	got := TurnToward(mgl32.Quat{}, 0.5, 10, 0.02, false)
	if !isFinite(got.W) || !finite3(got.V) {
		t.Errorf("zero facing produced %v", got)
	}
}

func TestApplyFriction(t *testing.T) {
	tests := []struct {
		name     string
		v        mgl32.Vec3
		friction float32
		dt       float32
		want     mgl32.Vec3
	}{
		{"at rest", mgl32.Vec3{}, 10, 0.02, mgl32.Vec3{}},
		{"partial", mgl32.Vec3{0, 0, 1}, 10, 0.02, mgl32.Vec3{0, 0, 0.8}},
		{"keeps direction", mgl32.Vec3{3, 0, 4}, 25, 0.02, mgl32.Vec3{1.5, 0, 2}},
		{"overshoot stops", mgl32.Vec3{0, 0, 1}, 100, 0.02, mgl32.Vec3{}},
		{"no friction", mgl32.Vec3{1, 0, 0}, 0, 0.02, mgl32.Vec3{1, 0, 0}},
		{"nan velocity", mgl32.Vec3{float32(math.NaN()), 0, 0}, 10, 0.02, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFriction(tt.v, tt.friction, tt.dt)
			if !nearVec(got, tt.want, 1e-5) {
				t.Errorf("ApplyFriction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrictionDecayReachesRest(t *testing.T) {
	for _, friction := range []float32{1, 10, 25, 49.9, 100} {
		v := mgl32.Vec3{0.3, 0, -0.4}
		prev := v.Len()
		stopped := -1

		for tick := 0; tick < 10000; tick++ {
			v = ApplyFriction(v, friction, 0.02)
			speed := v.Len()
			if speed > prev {
				t.Fatalf("friction %v tick %d: speed rose %v -> %v", friction, tick, prev, speed)
			}
			if speed < 0 || !isFinite(speed) {
				t.Fatalf("friction %v tick %d: bad speed %v", friction, tick, speed)
			}
			prev = speed
			if speed == 0 {
				stopped = tick
				break
			}
		}
		if stopped < 0 {
			t.Errorf("friction %v: never reached exactly zero", friction)
		}
	}
}

func TestAccelerate(t *testing.T) {
	dir := mgl32.Vec3{0, 0, 1}
	tests := []struct {
		name string
		v    mgl32.Vec3
		want mgl32.Vec3
	}{
		{"from rest", mgl32.Vec3{}, mgl32.Vec3{0, 0, 0.4}},
		{"clamped near cap", mgl32.Vec3{0, 0, 0.8}, mgl32.Vec3{0, 0, 1}},
		{"at cap", mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}},
		{"above cap untouched", mgl32.Vec3{0, 0, 1.5}, mgl32.Vec3{0, 0, 1.5}},
		{"sideways velocity kept", mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.5, 0, 0.4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accelerate(tt.v, dir, 20, 1, 0.02)
			if !nearVec(got, tt.want, 1e-5) {
				t.Errorf("Accelerate = %v, want %v", got, tt.want)
			}
		})
	}

	if got := Accelerate(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, 20, 1, 0.02); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("zero direction changed velocity to %v", got)
	}
}

func TestAccelerateNeverPassesMaxSpeed(t *testing.T) {
	dirs := []mgl32.Vec3{{0, 0, 1}, {1, 0, 0}, mgl32.Vec3{1, 0, 1}.Normalize()}
	frictions := []float32{0, 0.5, 10, 100, 1000}
	speeds := []float32{0, 1, 20, 500}
	dts := []float32{0, 0.001, 0.02, 0.5}
	const maxSpeed = 0.75

	for _, dir := range dirs {
		for _, friction := range frictions {
			for _, top := range speeds {
				for _, dt := range dts {
					v := mgl32.Vec3{0.2, 0, -0.1}
					for tick := 0; tick < 50; tick++ {
						v = ApplyFriction(v, friction, dt)
						v = Accelerate(v, dir, top, maxSpeed, dt)
						if p := v.Dot(dir); p > maxSpeed+1e-5 {
							t.Fatalf("dir %v friction %v top %v dt %v: projected %v > %v",
								dir, friction, top, dt, p, maxSpeed)
						}
					}
				}
			}
		}
	}
}

func TestClampToImpact(t *testing.T) {
	v := mgl32.Vec3{0, 0, 10}
	tests := []struct {
		toi  float32
		want mgl32.Vec3
	}{
		{0.5, mgl32.Vec3{0, 0, 5}},
		{0, mgl32.Vec3{}},
		{1, v},
		{-1, mgl32.Vec3{}},
		{2, v},
		{float32(math.NaN()), mgl32.Vec3{}},
	}
	for _, tt := range tests {
		if got := ClampToImpact(v, tt.toi); !nearVec(got, tt.want, 1e-6) {
			t.Errorf("ClampToImpact(%v) = %v, want %v", tt.toi, got, tt.want)
		}
	}
}

func TestStepControllerIdleStaysPut(t *testing.T) {
	ctl := testController()
	tf := components.NewTransform(mgl32.Vec3{1, 1, 1})
	vel := components.Velocity{}
	in := input.NewState()

	for i := 0; i < 500; i++ {
		StepController(&ctl, testKeys, in, 0.7, 0.02, &tf, &vel, nil)
	}
	if tf.Position != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("position drifted to %v", tf.Position)
	}
	if vel.Linear != (mgl32.Vec3{}) {
		t.Errorf("velocity = %v, want zero", vel.Linear)
	}
}

func TestStepControllerReachesMovementSpeed(t *testing.T) {
	ctl := testController()
	ctl.ForwardAxis = mgl32.Vec3{0, 0, 1}
	const dt = 0.02

	tf := components.NewTransform(mgl32.Vec3{})
	vel := components.Velocity{}
	in := pressed("W")

	for i := 0; i < 50; i++ {
		StepController(&ctl, testKeys, in, 0, dt, &tf, &vel, nil)
	}

	// Velocity is per-tick displacement; divide by dt for units per second.
	rate := vel.Linear.Mul(1 / dt)
	if !near(rate.Len(), ctl.MovementSpeed, 0.01*ctl.MovementSpeed) {
		t.Errorf("speed = %v/s, want within 1%% of %v", rate.Len(), ctl.MovementSpeed)
	}
	if !nearVec(rate, mgl32.Vec3{0, 0, 20}, 0.2) {
		t.Errorf("velocity = %v/s, want along (0,0,20)", rate)
	}
	if vel.Linear.Len() > ctl.MaxSpeed {
		t.Errorf("per-tick speed %v above max %v", vel.Linear.Len(), ctl.MaxSpeed)
	}
}

func TestStepControllerConvergesUnderLightFriction(t *testing.T) {
	ctl := testController()
	ctl.Friction = 25
	const dt = 0.02

	tf := components.NewTransform(mgl32.Vec3{})
	vel := components.Velocity{}
	in := pressed("W")

	var prev float32
	for i := 0; i < 200; i++ {
		StepController(&ctl, testKeys, in, 0, dt, &tf, &vel, nil)
		prev = vel.Linear.Len()
	}
	StepController(&ctl, testKeys, in, 0, dt, &tf, &vel, nil)

	// Fixed point of v = v(1 - f*dt) + s*dt
	want := ctl.MovementSpeed / ctl.Friction
	if !near(vel.Linear.Len(), want, 1e-4) || !near(prev, vel.Linear.Len(), 1e-5) {
		t.Errorf("steady speed = %v (prev %v), want %v", vel.Linear.Len(), prev, want)
	}
}

func TestStepControllerSprint(t *testing.T) {
	ctl := testController()
	tf := components.NewTransform(mgl32.Vec3{})
	vel := components.Velocity{}

	StepController(&ctl, testKeys, pressed("W", "LeftShift"), 0, 0.02, &tf, &vel, nil)
	if !near(vel.Linear.Len(), ctl.SprintSpeed*0.02, 1e-5) {
		t.Errorf("sprint speed = %v, want %v", vel.Linear.Len(), ctl.SprintSpeed*0.02)
	}
}

func TestStepControllerImpact(t *testing.T) {
	ctl := testController()
	ctl.Friction = 0
	tf := components.NewTransform(mgl32.Vec3{2, 0, 3})
	vel := components.Velocity{Linear: mgl32.Vec3{0, 0, 10}}

	var gotMotion mgl32.Vec3
	sweep := func(origin mgl32.Vec3, _ mgl32.Quat, motion mgl32.Vec3) (float32, bool) {
		gotMotion = motion
		return 0.5, true
	}

	StepController(&ctl, testKeys, input.NewState(), 0, 0.02, &tf, &vel, sweep)

	if gotMotion != (mgl32.Vec3{0, 0, 10}) {
		t.Errorf("sweep motion = %v, want proposed velocity", gotMotion)
	}
	if !nearVec(tf.Position, mgl32.Vec3{2, 0, 8}, 1e-6) {
		t.Errorf("position = %v, want advance of exactly (0,0,5)", tf.Position)
	}
	if !nearVec(vel.Linear, mgl32.Vec3{0, 0, 5}, 1e-6) {
		t.Errorf("velocity = %v, want residual dropped", vel.Linear)
	}
}

func TestStepControllerSweepMissKeepsVelocity(t *testing.T) {
	ctl := testController()
	ctl.Friction = 0
	tf := components.NewTransform(mgl32.Vec3{})
	vel := components.Velocity{Linear: mgl32.Vec3{1, 0, 0}}
	sweep := func(mgl32.Vec3, mgl32.Quat, mgl32.Vec3) (float32, bool) { return 0, false }

	StepController(&ctl, testKeys, input.NewState(), 0, 0.02, &tf, &vel, sweep)
	if tf.Position != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("position = %v, want (1,0,0)", tf.Position)
	}
}

func TestStepControllerNoNaN(t *testing.T) {
	ctl := testController()
	tf := components.Transform{} // zero quaternion
	vel := components.Velocity{Linear: mgl32.Vec3{float32(math.Inf(1)), 0, 0}}

	StepController(&ctl, testKeys, pressed("W", "D"), float32(math.NaN()), 0.02, &tf, &vel, nil)
	StepController(&ctl, testKeys, pressed("W"), 0, float32(math.NaN()), &tf, &vel, nil)

	if !finite3(tf.Position) || !finite3(vel.Linear) || !isFinite(tf.Rotation.W) || !finite3(tf.Rotation.V) {
		t.Errorf("non-finite state: tf=%+v vel=%v", tf, vel.Linear)
	}
}
