package physics

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

var ErrUnknownBody = errors.New("unknown body")

const DefaultGravity = -9.81

type position struct {
	Value rl.Vector3
}

type velocity struct {
	Linear rl.Vector3
}

type dynamics struct {
	HalfExtents  rl.Vector3
	Damping      float32
	GravityScale float32
}

type staticBox struct {
	Box AABB
}

// BodyDesc describes a dynamic, rotation-locked body.
type BodyDesc struct {
	Position     rl.Vector3
	HalfExtents  rl.Vector3
	Damping      float32
	GravityScale float32
}

// World stores rigid bodies and static colliders in an ECS world and
// integrates them with a fixed gravity.
type World struct {
	Gravity rl.Vector3

	ecs          *ecs.World
	bodies       *ecs.Map3[position, velocity, dynamics]
	statics      *ecs.Map1[staticBox]
	bodyFilter   *ecs.Filter3[position, velocity, dynamics]
	staticFilter *ecs.Filter1[staticBox]
	bodyCount    int
	log          *zap.Logger

	staticScratch []AABB
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := ecs.NewWorld()
	return &World{
		Gravity:      rl.Vector3{Y: DefaultGravity},
		ecs:          &w,
		bodies:       ecs.NewMap3[position, velocity, dynamics](&w),
		statics:      ecs.NewMap1[staticBox](&w),
		bodyFilter:   ecs.NewFilter3[position, velocity, dynamics](&w),
		staticFilter: ecs.NewFilter1[staticBox](&w),
		log:          log.Named("physics"),
	}
}

func (w *World) AddBody(desc BodyDesc) Body {
	e := w.bodies.NewEntity(
		&position{Value: desc.Position},
		&velocity{},
		&dynamics{
			HalfExtents:  desc.HalfExtents,
			Damping:      desc.Damping,
			GravityScale: desc.GravityScale,
		},
	)
	w.bodyCount++
	w.log.Debug("body added",
		zap.Any("entity", e.ID()),
		zap.Float32("damping", desc.Damping),
		zap.Float32("gravity_scale", desc.GravityScale))
	return Body{world: w, entity: e}
}

// AddStatic adds an immovable box collider.
func (w *World) AddStatic(center, halfExtents rl.Vector3) {
	e := w.statics.NewEntity(&staticBox{Box: NewAABB(center, halfExtents)})
	w.log.Debug("static collider added", zap.Any("entity", e.ID()))
}

func (w *World) RemoveBody(b Body) error {
	if !w.owns(b) {
		return ErrUnknownBody
	}
	w.ecs.RemoveEntity(b.entity)
	w.bodyCount--
	return nil
}

func (w *World) BodyCount() int {
	return w.bodyCount
}

func (w *World) owns(b Body) bool {
	return b.world == w && !b.entity.IsZero() && w.ecs.Alive(b.entity) && w.bodies.HasAll(b.entity)
}

// Step applies gravity and damping, integrates positions and pushes bodies
// out of static colliders.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}

	w.staticScratch = w.staticScratch[:0]
	sq := w.staticFilter.Query()
	for sq.Next() {
		w.staticScratch = append(w.staticScratch, sq.Get().Box)
	}

	q := w.bodyFilter.Query()
	for q.Next() {
		pos, vel, dyn := q.Get()

		v := rl.Vector3Add(vel.Linear, rl.Vector3Scale(w.Gravity, dyn.GravityScale*dt))
		v = rl.Vector3Scale(v, 1/(1+dt*dyn.Damping))
		p := rl.Vector3Add(pos.Value, rl.Vector3Scale(v, dt))

		for _, static := range w.staticScratch {
			push := NewAABB(p, dyn.HalfExtents).Resolve(static)
			if push.X == 0 && push.Y == 0 && push.Z == 0 {
				continue
			}
			p = rl.Vector3Add(p, push)
			v = cancelInto(v, push)
		}

		pos.Value = p
		vel.Linear = v
	}
}

// cancelInto zeroes velocity components that point against the push.
func cancelInto(v, push rl.Vector3) rl.Vector3 {
	if push.X > 0 && v.X < 0 || push.X < 0 && v.X > 0 {
		v.X = 0
	}
	if push.Y > 0 && v.Y < 0 || push.Y < 0 && v.Y > 0 {
		v.Y = 0
	}
	if push.Z > 0 && v.Z < 0 || push.Z < 0 && v.Z > 0 {
		v.Z = 0
	}
	return v
}
