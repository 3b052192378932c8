// Package input polls the keyboard and mouse into per-tick controller snapshots.
package input

import (
	"firstperson/internal/controller"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Source is the polling surface of a windowing backend.
type Source interface {
	IsKeyDown(key int32) bool
	IsKeyPressed(key int32) bool
	MouseDelta() rl.Vector2
}

// Binding maps one logical action to a key.
type Binding struct {
	Action controller.Action
	Key    int32
}

// DefaultBindings is the fixed WASD layout.
var DefaultBindings = []Binding{
	{controller.Forward, rl.KeyW},
	{controller.Backward, rl.KeyS},
	{controller.StrafeLeft, rl.KeyA},
	{controller.StrafeRight, rl.KeyD},
	{controller.Sprint, rl.KeyLeftShift},
	{controller.Jump, rl.KeySpace},
}

// Poll builds the snapshot for the current tick. Raylib reports the mouse
// motion of the whole frame, so at most one motion event is produced.
func Poll(src Source, bindings []Binding) controller.Snapshot {
	var snap controller.Snapshot
	for _, b := range bindings {
		if src.IsKeyDown(b.Key) {
			snap.Held = snap.Held.With(b.Action)
		}
		if src.IsKeyPressed(b.Key) {
			snap.Pressed = snap.Pressed.With(b.Action)
		}
	}
	if d := src.MouseDelta(); d.X != 0 || d.Y != 0 {
		snap.Motion = append(snap.Motion, d)
	}
	return snap
}

// Raylib reads input from the active raylib window.
type Raylib struct{}

func (Raylib) IsKeyDown(key int32) bool    { return rl.IsKeyDown(key) }
func (Raylib) IsKeyPressed(key int32) bool { return rl.IsKeyPressed(key) }
func (Raylib) MouseDelta() rl.Vector2      { return rl.GetMouseDelta() }
