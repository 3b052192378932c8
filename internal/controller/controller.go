package controller

import (
	"firstperson/internal/engine"

	"go.uber.org/zap"
)

// Rig is the pair of handles a tick operates on. The host resolves them once
// and passes them in; a nil handle skips the tick.
type Rig struct {
	Body  Body
	Pivot Pivot
}

func (r Rig) complete() bool {
	return r.Body != nil && r.Pivot != nil
}

// JumpEvent is raised when a jump impulse is written.
type JumpEvent struct {
	Tick  uint64
	Speed float32
}

// Controller runs look then movement, once per tick.
type Controller struct {
	Look     Look
	Movement Movement
	Jumped   engine.EventWithArg[JumpEvent]

	log   *zap.Logger
	ticks uint64
}

func New(tuning Tuning, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		Look:     Look{Tuning: tuning},
		Movement: Movement{Tuning: tuning},
		log:      log.Named("controller"),
	}
}

// Tick applies one snapshot. Look must run before Movement so that movement
// uses the orientation produced this tick.
func (c *Controller) Tick(rig Rig, snap Snapshot, dt float32) {
	c.ticks++
	if !rig.complete() {
		c.log.Debug("skipping tick, rig incomplete",
			zap.Uint64("tick", c.ticks),
			zap.Bool("body", rig.Body != nil),
			zap.Bool("pivot", rig.Pivot != nil))
		return
	}

	c.Look.Apply(rig.Body, rig.Pivot, snap.Motion)

	if c.Movement.Apply(rig.Body, rig.Pivot, snap) {
		speed := rig.Body.Velocity().Y
		c.log.Debug("jump", zap.Uint64("tick", c.ticks), zap.Float32("speed", speed), zap.Float32("dt", dt))
		c.Jumped.Invoke(JumpEvent{Tick: c.ticks, Speed: speed})
	}
}

// Ticks returns how many ticks have been processed, skipped ones included.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}
