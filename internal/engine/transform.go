package engine

import rl "github.com/gen2brain/raylib-go/raylib"

var (
	WorldUp      = rl.Vector3{X: 0, Y: 1, Z: 0}
	localRight   = rl.Vector3{X: 1, Y: 0, Z: 0}
	localForward = rl.Vector3{X: 0, Y: 0, Z: -1}
)

// Transform is a position, a unit quaternion rotation and a scale.
// Forward is -Z and right is +X in local space.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

func NewTransform(position rl.Vector3) Transform {
	return Transform{
		Position: position,
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// RotateY rotates about the world up axis, composed before the existing rotation.
func (t *Transform) RotateY(angle float32) {
	if angle == 0 {
		return
	}
	q := rl.QuaternionFromAxisAngle(WorldUp, angle)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(q, t.Rotation))
}

// RotateLocalX rotates about the transform's own X axis.
func (t *Transform) RotateLocalX(angle float32) {
	if angle == 0 {
		return
	}
	q := rl.QuaternionFromAxisAngle(localRight, angle)
	t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(t.Rotation, q))
}

func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(localForward, t.Rotation)
}

func (t Transform) Right() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(localRight, t.Rotation)
}
