package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// Body is a handle to a dynamic body. Operations on a removed or zero
// handle are no-ops and reads return the zero vector.
type Body struct {
	world  *World
	entity ecs.Entity
}

func (b Body) Valid() bool {
	return b.world != nil && b.world.owns(b)
}

func (b Body) Velocity() rl.Vector3 {
	if !b.Valid() {
		return rl.Vector3{}
	}
	_, vel, _ := b.world.bodies.Get(b.entity)
	return vel.Linear
}

func (b Body) SetVelocity(v rl.Vector3) {
	if !b.Valid() {
		return
	}
	_, vel, _ := b.world.bodies.Get(b.entity)
	vel.Linear = v
}

func (b Body) Position() rl.Vector3 {
	if !b.Valid() {
		return rl.Vector3{}
	}
	pos, _, _ := b.world.bodies.Get(b.entity)
	return pos.Value
}

func (b Body) SetPosition(p rl.Vector3) {
	if !b.Valid() {
		return
	}
	pos, _, _ := b.world.bodies.Get(b.entity)
	pos.Value = p
}
