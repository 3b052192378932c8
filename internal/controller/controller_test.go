package controller

import (
	"math"
	"math/rand"
	"testing"

	"firstperson/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

type fakeBody struct {
	transform engine.Transform
	velocity  rl.Vector3
}

func (b *fakeBody) Velocity() rl.Vector3     { return b.velocity }
func (b *fakeBody) SetVelocity(v rl.Vector3) { b.velocity = v }
func (b *fakeBody) RotateY(angle float32)    { b.transform.RotateY(angle) }

// yaw recovers the body's heading from its forward vector.
func (b *fakeBody) yaw() float32 {
	f := b.transform.Forward()
	return float32(math.Atan2(float64(-f.X), float64(-f.Z)))
}

type fakePivot struct {
	body  *fakeBody
	local engine.Transform
	pitch float32
}

func (p *fakePivot) world() engine.Transform {
	return engine.Transform{Rotation: rl.QuaternionMultiply(p.body.transform.Rotation, p.local.Rotation)}
}

func (p *fakePivot) Forward() rl.Vector3        { return p.world().Forward() }
func (p *fakePivot) Right() rl.Vector3          { return p.world().Right() }
func (p *fakePivot) Pitch() float32             { return p.pitch }
func (p *fakePivot) SetPitch(pitch float32)     { p.pitch = pitch }
func (p *fakePivot) RotateLocalX(angle float32) { p.local.RotateLocalX(angle) }

func newRig() (*fakeBody, *fakePivot, Rig) {
	body := &fakeBody{transform: engine.NewTransform(rl.Vector3{})}
	pivot := &fakePivot{body: body, local: engine.NewTransform(rl.Vector3{Y: 1.5})}
	return body, pivot, Rig{Body: body, Pivot: pivot}
}

func held(actions ...Action) Snapshot {
	return Snapshot{Held: NewActionSet(actions...)}
}

func TestIdleTickZeroesHorizontalAndDoesNotRotate(t *testing.T) {
	body, pivot, rig := newRig()
	body.velocity = rl.Vector3{X: 3, Y: -2, Z: 7}
	c := New(DefaultTuning(), nil)

	c.Tick(rig, Snapshot{}, 1.0/60)

	assert.Equal(t, rl.Vector3{Y: -2}, body.velocity)
	assert.Equal(t, rl.QuaternionIdentity(), body.transform.Rotation)
	assert.Equal(t, rl.QuaternionIdentity(), pivot.local.Rotation)
	assert.Zero(t, pivot.pitch)
}

func TestForwardFacingNegativeZ(t *testing.T) {
	body, _, rig := newRig()
	c := New(DefaultTuning(), nil)

	c.Tick(rig, held(Forward), 1.0/60)

	assert.InDelta(t, 0, body.velocity.X, tol)
	assert.InDelta(t, 0, body.velocity.Y, tol)
	assert.InDelta(t, -10, body.velocity.Z, tol)
}

func TestVerticalVelocityPreserved(t *testing.T) {
	body, _, rig := newRig()
	body.velocity.Y = -4.5
	c := New(DefaultTuning(), nil)

	c.Tick(rig, held(Forward, StrafeRight), 1.0/60)

	assert.Equal(t, float32(-4.5), body.velocity.Y)
	horizontalSpeed := math.Hypot(float64(body.velocity.X), float64(body.velocity.Z))
	assert.InDelta(t, 10, horizontalSpeed, tol)
}

func TestOpposingKeysCancel(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want rl.Vector3
	}{
		{"forward and backward", held(Forward, Backward), rl.Vector3{}},
		{"left and right", held(StrafeLeft, StrafeRight), rl.Vector3{}},
		{"all four", held(Forward, Backward, StrafeLeft, StrafeRight), rl.Vector3{}},
		{"forward backward right", held(Forward, Backward, StrafeRight), rl.Vector3{X: 10}},
		{"left right backward", held(StrafeLeft, StrafeRight, Backward), rl.Vector3{Z: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _, rig := newRig()
			New(DefaultTuning(), nil).Tick(rig, tt.snap, 1.0/60)

			assert.InDelta(t, tt.want.X, body.velocity.X, tol)
			assert.InDelta(t, tt.want.Z, body.velocity.Z, tol)
		})
	}
}

func TestSprintGating(t *testing.T) {
	sqrt2 := math.Sqrt2
	tests := []struct {
		name      string
		snap      Snapshot
		vertical  float32
		wantSpeed float64
	}{
		{"walk forward", held(Forward), 0, 10},
		{"sprint forward grounded", held(Forward, Sprint), 0, 15},
		{"sprint forward airborne", held(Forward, Sprint), 3, 10},
		{"sprint strafe only", held(StrafeLeft, Sprint), 0, 10},
		{"sprint backward", held(Backward, Sprint), 0, 10},
		{"sprint diagonal keeps unnormalized sum", held(Forward, StrafeRight, Sprint), 0, 15 * sqrt2},
		{"walk diagonal normalized", held(Forward, StrafeRight), 0, 10},
		{"sprint just below epsilon", held(Forward, Sprint), 0.99e-4, 15},
		{"sprint at epsilon", held(Forward, Sprint), 1e-4, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _, rig := newRig()
			body.velocity.Y = tt.vertical
			New(DefaultTuning(), nil).Tick(rig, tt.snap, 1.0/60)

			got := math.Hypot(float64(body.velocity.X), float64(body.velocity.Z))
			assert.InDelta(t, tt.wantSpeed, got, tol)
			assert.Equal(t, tt.vertical, body.velocity.Y)
		})
	}
}

func TestJumpRequiresEdgeAndGround(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		vertical float32
		want     float32
		jumped   bool
	}{
		{"pressed on ground", Snapshot{Held: NewActionSet(Jump), Pressed: NewActionSet(Jump)}, 0, 10, true},
		{"held without edge", Snapshot{Held: NewActionSet(Jump)}, 0, 0, false},
		{"pressed while rising", Snapshot{Pressed: NewActionSet(Jump)}, 4, 4, false},
		{"pressed while falling", Snapshot{Pressed: NewActionSet(Jump)}, -0.5, -0.5, false},
		{"pressed with residual jitter", Snapshot{Pressed: NewActionSet(Jump)}, -5e-5, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _, rig := newRig()
			body.velocity.Y = tt.vertical
			c := New(DefaultTuning(), nil)
			var events []JumpEvent
			c.Jumped.AddListener(func(e JumpEvent) { events = append(events, e) })

			c.Tick(rig, tt.snap, 1.0/60)

			assert.Equal(t, tt.want, body.velocity.Y)
			if tt.jumped {
				require.Len(t, events, 1)
				assert.Equal(t, uint64(1), events[0].Tick)
				assert.Equal(t, float32(10), events[0].Speed)
			} else {
				assert.Empty(t, events)
			}
		})
	}
}

func TestHoldingJumpDoesNotRelaunch(t *testing.T) {
	body, _, rig := newRig()
	c := New(DefaultTuning(), nil)

	c.Tick(rig, Snapshot{Held: NewActionSet(Jump), Pressed: NewActionSet(Jump)}, 1.0/60)
	assert.Equal(t, float32(10), body.velocity.Y)

	// Physics brings the body back to rest; the key stays down.
	body.velocity.Y = 0
	for i := 0; i < 10; i++ {
		c.Tick(rig, Snapshot{Held: NewActionSet(Jump)}, 1.0/60)
	}
	assert.Equal(t, float32(0), body.velocity.Y)
}

func TestDecoupledJumpSpeed(t *testing.T) {
	tuning := DefaultTuning()
	tuning.JumpSpeed = 6
	body, _, rig := newRig()

	New(tuning, nil).Tick(rig, Snapshot{Pressed: NewActionSet(Jump)}, 1.0/60)

	assert.Equal(t, float32(6), body.velocity.Y)
}

func TestPointerYawScenario(t *testing.T) {
	body, pivot, rig := newRig()
	c := New(DefaultTuning(), nil)

	c.Tick(rig, Snapshot{Motion: []rl.Vector2{{X: 100, Y: 0}}}, 1.0/60)

	assert.InDelta(t, -0.5, body.yaw(), tol)
	assert.Zero(t, pivot.pitch)
	assert.Equal(t, rl.QuaternionIdentity(), pivot.local.Rotation)
}

func TestMotionEventsAreSummed(t *testing.T) {
	body, _, rig := newRig()
	c := New(DefaultTuning(), nil)

	c.Tick(rig, Snapshot{Motion: []rl.Vector2{{X: 40}, {X: 60}, {X: 30}, {X: -30}}}, 1.0/60)

	assert.InDelta(t, -0.5, body.yaw(), tol)
}

func TestPitchClampsAtLowerBound(t *testing.T) {
	_, pivot, rig := newRig()
	c := New(DefaultTuning(), nil)

	for i := 0; i < 10000; i++ {
		c.Tick(rig, Snapshot{Motion: []rl.Vector2{{Y: 500}}}, 1.0/60)
	}

	assert.Equal(t, float32(-DefaultPitchLimit), pivot.pitch)
	want := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, -DefaultPitchLimit)
	assertQuat(t, want, pivot.local.Rotation, tol)
}

func TestPitchAtBoundaryAccumulatesNoPhantomRotation(t *testing.T) {
	_, pivot, rig := newRig()
	c := New(DefaultTuning(), nil)

	c.Tick(rig, Snapshot{Motion: []rl.Vector2{{Y: -1000}}}, 1.0/60)
	atLimit := pivot.local.Rotation
	for i := 0; i < 100; i++ {
		c.Tick(rig, Snapshot{Motion: []rl.Vector2{{Y: -50}}}, 1.0/60)
	}
	assert.Equal(t, atLimit, pivot.local.Rotation)

	// One small move back down must leave the limit immediately.
	c.Tick(rig, Snapshot{Motion: []rl.Vector2{{Y: 10}}}, 1.0/60)
	assert.InDelta(t, DefaultPitchLimit-0.05, pivot.pitch, tol)
}

func TestStoredPitchMatchesCameraRotation(t *testing.T) {
	body, pivot, rig := newRig()
	c := New(DefaultTuning(), nil)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		motion := []rl.Vector2{{
			X: float32(rng.NormFloat64() * 80),
			Y: float32(rng.NormFloat64() * 80),
		}}
		c.Tick(rig, Snapshot{Motion: motion}, 1.0/60)

		require.LessOrEqual(t, pivot.pitch, float32(DefaultPitchLimit))
		require.GreaterOrEqual(t, pivot.pitch, float32(-DefaultPitchLimit))
	}

	// Float32 composition drifts slightly over thousands of ticks.
	want := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, pivot.pitch)
	assertQuat(t, want, pivot.local.Rotation, 1e-3)

	// The body never picks up pitch or roll.
	assert.InDelta(t, 0, body.transform.Forward().Y, tol)
	assert.InDelta(t, 0, body.transform.Right().Y, tol)
}

func TestLookRunsBeforeMovement(t *testing.T) {
	body, _, rig := newRig()
	c := New(DefaultTuning(), nil)
	quarterTurn := float32(math.Pi/2) / DefaultSensitivity

	snap := held(Forward)
	snap.Motion = []rl.Vector2{{X: -quarterTurn}}
	c.Tick(rig, snap, 1.0/60)

	assert.InDelta(t, -10, body.velocity.X, tol)
	assert.InDelta(t, 0, body.velocity.Z, tol)
}

func TestMovementIgnoresPitch(t *testing.T) {
	body, pivot, rig := newRig()
	c := New(DefaultTuning(), nil)

	pivot.SetPitch(-DefaultPitchLimit)
	pivot.RotateLocalX(-DefaultPitchLimit)
	c.Tick(rig, held(Forward), 1.0/60)

	assert.InDelta(t, -10, body.velocity.Z, tol)
	assert.InDelta(t, 0, body.velocity.Y, tol)
}

func TestIncompleteRigSkipsTick(t *testing.T) {
	body, pivot, _ := newRig()
	body.velocity = rl.Vector3{X: 1, Y: 2, Z: 3}
	c := New(DefaultTuning(), nil)

	c.Tick(Rig{Body: body}, held(Forward), 1.0/60)
	c.Tick(Rig{Pivot: pivot}, Snapshot{Motion: []rl.Vector2{{X: 10, Y: 10}}}, 1.0/60)
	c.Tick(Rig{}, held(Forward), 1.0/60)

	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, body.velocity)
	assert.Zero(t, pivot.pitch)
	assert.Equal(t, uint64(3), c.Ticks())
}

func TestMovementApplyNilHandles(t *testing.T) {
	m := Movement{Tuning: DefaultTuning()}
	assert.False(t, m.Apply(nil, nil, held(Forward)))
}

func TestDegenerateBasisYieldsZero(t *testing.T) {
	m := Movement{Tuning: DefaultTuning()}
	up := rl.Vector3{Y: 1}
	tiny := rl.Vector3{X: 1e-9, Y: 1}

	v := m.Velocity(held(Forward, StrafeRight, Sprint), up, tiny, rl.Vector3{})

	assert.Equal(t, rl.Vector3{}, v)
	assert.False(t, math.IsNaN(float64(v.X)))
}

func TestHorizontal(t *testing.T) {
	assert.Equal(t, rl.Vector3{}, horizontal(rl.Vector3{}))
	assert.Equal(t, rl.Vector3{}, horizontal(rl.Vector3{Y: -3}))
	got := horizontal(rl.Vector3{X: 3, Y: 9, Z: -4})
	assert.InDelta(t, 0.6, got.X, tol)
	assert.Equal(t, float32(0), got.Y)
	assert.InDelta(t, -0.8, got.Z, tol)
}

func assertQuat(t *testing.T, want, got rl.Quaternion, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "x")
	assert.InDelta(t, want.Y, got.Y, delta, "y")
	assert.InDelta(t, want.Z, got.Z, delta, "z")
	assert.InDelta(t, want.W, got.W, delta, "w")
}
