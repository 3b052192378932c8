package controller

import rl "github.com/gen2brain/raylib-go/raylib"

// Action is a logical input the controllers react to.
type Action uint8

const (
	Forward Action = iota
	Backward
	StrafeLeft
	StrafeRight
	Sprint
	Jump
)

func (a Action) String() string {
	switch a {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case StrafeLeft:
		return "strafe-left"
	case StrafeRight:
		return "strafe-right"
	case Sprint:
		return "sprint"
	case Jump:
		return "jump"
	}
	return "unknown"
}

// ActionSet is a bitmask of actions.
type ActionSet uint8

func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

func (s ActionSet) With(a Action) ActionSet {
	return s | 1<<a
}

func (s ActionSet) Has(a Action) bool {
	return s&(1<<a) != 0
}

// Snapshot is the input state for one tick: held actions, actions whose key
// went down this tick, and every pointer-motion event since the last tick.
type Snapshot struct {
	Held    ActionSet
	Pressed ActionSet
	Motion  []rl.Vector2
}

func (s Snapshot) IsHeld(a Action) bool {
	return s.Held.Has(a)
}

func (s Snapshot) JustPressed(a Action) bool {
	return s.Pressed.Has(a)
}

// MotionDelta sums the tick's pointer-motion events.
func (s Snapshot) MotionDelta() rl.Vector2 {
	var delta rl.Vector2
	for _, m := range s.Motion {
		delta = rl.Vector2Add(delta, m)
	}
	return delta
}
