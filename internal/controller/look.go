package controller

import rl "github.com/gen2brain/raylib-go/raylib"

// Look turns pointer motion into body yaw and camera pitch.
type Look struct {
	Tuning Tuning
}

// Apply sums the tick's motion events and rotates body and pivot. The pivot
// receives the clamped pitch change so its rotation never drifts from the
// stored pitch. Reports whether anything rotated.
func (l Look) Apply(body Body, pivot Pivot, motion []rl.Vector2) bool {
	return l.ApplyDelta(body, pivot, Snapshot{Motion: motion}.MotionDelta())
}

func (l Look) ApplyDelta(body Body, pivot Pivot, delta rl.Vector2) bool {
	if delta.X == 0 && delta.Y == 0 {
		return false
	}

	if body != nil {
		body.RotateY(-delta.X * l.Tuning.Sensitivity)
	}

	if pivot != nil {
		limit := l.Tuning.PitchLimit
		current := pivot.Pitch()
		next := rl.Clamp(current-delta.Y*l.Tuning.Sensitivity, -limit, limit)
		pivot.SetPitch(next)
		pivot.RotateLocalX(next - current)
	}
	return true
}
