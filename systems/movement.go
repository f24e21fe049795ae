package systems

import (
	"math/rand"

	"github.com/pthm-cable/seeds/components"
	"github.com/pthm-cable/seeds/config"
)

// Bounds is the rectangle agents may occupy.
type Bounds struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// BoundsFromConfig returns the padded surface bounds.
func BoundsFromConfig(cfg *config.Config) Bounds {
	d := cfg.Derived
	return Bounds{MinX: d.MinX, MinY: d.MinY, MaxX: d.MaxX, MaxY: d.MaxY}
}

// Clamp returns (x, y) limited to the bounds.
func (b Bounds) Clamp(x, y float32) (float32, float32) {
	return min(max(x, b.MinX), b.MaxX), min(max(y, b.MinY), b.MaxY)
}

// Contains reports whether (x, y) lies within the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// RandomPoint draws a uniform point inside the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) (float32, float32) {
	return b.MinX + rng.Float32()*(b.MaxX-b.MinX), b.MinY + rng.Float32()*(b.MaxY-b.MinY)
}

// RandomTarget draws a point within radius of (x, y) on each axis, clamped to the bounds.
func (b Bounds) RandomTarget(rng *rand.Rand, x, y, radius float32) (float32, float32) {
	return b.Clamp(x+(rng.Float32()*2-1)*radius, y+(rng.Float32()*2-1)*radius)
}

// StepToward moves pos at most speed units toward (tx, ty) on each axis independently.
// Returns true once pos sits on the target.
func StepToward(pos *components.Position, tx, ty, speed float32) bool {
	pos.X = approach(pos.X, tx, speed)
	pos.Y = approach(pos.Y, ty, speed)
	return pos.X == tx && pos.Y == ty
}

func approach(v, target, step float32) float32 {
	switch {
	case v < target:
		return min(v+step, target)
	case v > target:
		return max(v-step, target)
	}
	return v
}
