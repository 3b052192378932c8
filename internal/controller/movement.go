package controller

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// minProjectedLength guards the horizontal renormalization.
const minProjectedLength = 1e-6

// Body is the physically simulated player. The physics engine owns its
// velocity; the controllers overwrite horizontal velocity and yaw only.
type Body interface {
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	RotateY(angle float32)
}

// Pivot is the camera attached to the body. Forward and Right are world space.
type Pivot interface {
	Forward() rl.Vector3
	Right() rl.Vector3
	Pitch() float32
	SetPitch(pitch float32)
	RotateLocalX(angle float32)
}

// Movement turns held keys into a body velocity.
type Movement struct {
	Tuning Tuning
}

// horizontal drops the vertical component and renormalizes. Vectors that
// are (nearly) vertical collapse to zero.
func horizontal(v rl.Vector3) rl.Vector3 {
	flat := rl.Vector3{X: v.X, Z: v.Z}
	length := float32(math.Sqrt(float64(flat.X*flat.X + flat.Z*flat.Z)))
	if !(length > minProjectedLength) || math.IsInf(float64(length), 0) {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(flat, 1/length)
}

// Velocity computes the new body velocity from the tick's input, the camera
// basis and the body's current velocity. Only the vertical component of
// current is used.
func (m Movement) Velocity(snap Snapshot, forward, right, current rl.Vector3) rl.Vector3 {
	forward = horizontal(forward)
	right = horizontal(right)
	grounded := Grounded(current.Y)

	var direction rl.Vector3
	if snap.IsHeld(Forward) {
		direction = rl.Vector3Add(direction, forward)
	}
	if snap.IsHeld(Backward) {
		direction = rl.Vector3Subtract(direction, forward)
	}
	if snap.IsHeld(StrafeLeft) {
		direction = rl.Vector3Subtract(direction, right)
	}
	if snap.IsHeld(StrafeRight) {
		direction = rl.Vector3Add(direction, right)
	}

	if direction.X*direction.X+direction.Z*direction.Z > 0 {
		if snap.IsHeld(Sprint) && snap.IsHeld(Forward) && grounded {
			// Not normalized: diagonal sprint is faster than straight sprint.
			direction = rl.Vector3Scale(direction, m.Tuning.SprintMultiplier)
		} else {
			direction = horizontal(direction)
		}
	}

	vertical := current.Y
	velocity := rl.Vector3Scale(direction, m.Tuning.BaseSpeed)
	velocity.Y = vertical

	if snap.JustPressed(Jump) && grounded {
		velocity.Y = m.Tuning.JumpSpeed
	}
	return velocity
}

// Apply reads the pivot's basis and the body's velocity and writes the new
// velocity back. It reports whether a jump was launched. A missing body or
// pivot makes it a no-op.
func (m Movement) Apply(body Body, pivot Pivot, snap Snapshot) (jumped bool) {
	if body == nil || pivot == nil {
		return false
	}
	current := body.Velocity()
	next := m.Velocity(snap, pivot.Forward(), pivot.Right(), current)
	body.SetVelocity(next)
	return snap.JustPressed(Jump) && Grounded(current.Y)
}
