package controller

import (
	"errors"
	"fmt"
	"math"
)

const (
	// GroundEpsilon is the vertical speed below which the body counts as grounded.
	GroundEpsilon = 1e-4

	DefaultBaseSpeed        = 10.0
	DefaultSprintMultiplier = 1.5
	DefaultJumpSpeed        = 10.0
	DefaultSensitivity      = 0.005
	DefaultPitchLimit       = math.Pi / 4
)

var ErrInvalidTuning = errors.New("invalid controller tuning")

// Tuning holds the movement and look constants.
type Tuning struct {
	BaseSpeed        float32 `yaml:"base_speed"`
	SprintMultiplier float32 `yaml:"sprint_multiplier"`
	JumpSpeed        float32 `yaml:"jump_speed"`
	Sensitivity      float32 `yaml:"sensitivity"`
	PitchLimit       float32 `yaml:"pitch_limit"`
}

func DefaultTuning() Tuning {
	return Tuning{
		BaseSpeed:        DefaultBaseSpeed,
		SprintMultiplier: DefaultSprintMultiplier,
		JumpSpeed:        DefaultJumpSpeed,
		Sensitivity:      DefaultSensitivity,
		PitchLimit:       DefaultPitchLimit,
	}
}

func (t Tuning) Validate() error {
	switch {
	case t.BaseSpeed <= 0:
		return fmt.Errorf("%w: base_speed must be positive, got %v", ErrInvalidTuning, t.BaseSpeed)
	case t.SprintMultiplier < 1:
		return fmt.Errorf("%w: sprint_multiplier must be at least 1, got %v", ErrInvalidTuning, t.SprintMultiplier)
	case t.JumpSpeed < 0:
		return fmt.Errorf("%w: jump_speed must not be negative, got %v", ErrInvalidTuning, t.JumpSpeed)
	case t.Sensitivity <= 0:
		return fmt.Errorf("%w: sensitivity must be positive, got %v", ErrInvalidTuning, t.Sensitivity)
	case t.PitchLimit <= 0 || t.PitchLimit >= math.Pi/2:
		return fmt.Errorf("%w: pitch_limit must be in (0, pi/2), got %v", ErrInvalidTuning, t.PitchLimit)
	}
	return nil
}

// Grounded reports whether a vertical velocity is close enough to zero to
// treat the body as standing. It approximates contact detection.
func Grounded(verticalVelocity float32) bool {
	return float32(math.Abs(float64(verticalVelocity))) < GroundEpsilon
}
