package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// AABB is an axis-aligned box. Player capsules are approximated by their
// bounding box since rotation is locked.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABB creates a box from its center and half extents.
func NewAABB(center, halfExtents rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(center, halfExtents),
		Max: rl.Vector3Add(center, halfExtents),
	}
}

// CapsuleExtents returns the half extents bounding a Y-aligned capsule.
func CapsuleExtents(halfHeight, radius float32) rl.Vector3 {
	return rl.Vector3{X: radius, Y: halfHeight + radius, Z: radius}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Resolve returns the minimum translation that pushes a out of b, or the
// zero vector when they do not overlap.
func (a AABB) Resolve(b AABB) rl.Vector3 {
	if !a.Intersects(b) {
		return rl.Vector3{}
	}

	candidates := [6]rl.Vector3{
		{X: b.Max.X - a.Min.X},
		{X: -(a.Max.X - b.Min.X)},
		{Y: b.Max.Y - a.Min.Y},
		{Y: -(a.Max.Y - b.Min.Y)},
		{Z: b.Max.Z - a.Min.Z},
		{Z: -(a.Max.Z - b.Min.Z)},
	}
	depths := [6]float32{
		b.Max.X - a.Min.X,
		a.Max.X - b.Min.X,
		b.Max.Y - a.Min.Y,
		a.Max.Y - b.Min.Y,
		b.Max.Z - a.Min.Z,
		a.Max.Z - b.Min.Z,
	}

	best := 0
	for i := 1; i < len(depths); i++ {
		if depths[i] < depths[best] {
			best = i
		}
	}
	return candidates[best]
}
