// Package core provides fundamental types and utilities for the moto-rush
// simulation. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned bounding box in world units, addressed by its
// center. Obstacles, the player hit box and the slash hit box all use it.
type Rect struct {
	CX, CY float64 // Center position
	W, H   float64 // Width and height
}

// NewRect creates a rectangle from its center and dimensions.
func NewRect(cx, cy, w, h float64) Rect {
	return Rect{CX: cx, CY: cy, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.CX - r.W/2
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.CX + r.W/2
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.CY - r.H/2
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.CY + r.H/2
}

// Shrink returns a copy reduced by the given amounts on each axis.
// Used for vehicle hit boxes, which are smaller than the visual sprite.
func (r Rect) Shrink(dw, dh float64) Rect {
	return Rect{CX: r.CX, CY: r.CY, W: math.Max(0, r.W-dw), H: math.Max(0, r.H-dh)}
}

// Offset returns a copy translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{CX: r.CX + dx, CY: r.CY + dy, W: r.W, H: r.H}
}

// Intersects reports whether this rectangle overlaps another.
func (r Rect) Intersects(other Rect) bool {
	if r.Left() >= other.Right() || other.Left() >= r.Right() {
		return false
	}
	if r.Top() >= other.Bottom() || other.Top() >= r.Bottom() {
		return false
	}
	return true
}

// CircleIntersects reports whether a circle at (cx, cy) with the given
// radius overlaps this rectangle, using the closest-point distance test.
func (r Rect) CircleIntersects(cx, cy, radius float64) bool {
	px := ClampF(cx, r.Left(), r.Right())
	py := ClampF(cy, r.Top(), r.Bottom())
	dx := cx - px
	dy := cy - py
	return dx*dx+dy*dy <= radius*radius
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts an integer value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// EaseOutCubic maps t in [0, 1] to an eased value starting fast and
// decelerating. Used by the death overlay ramp and the rage speed ramp.
func EaseOutCubic(t float64) float64 {
	t = ClampF(t, 0, 1)
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOutQuad maps t in [0, 1] with acceleration then deceleration.
func EaseInOutQuad(t float64) float64 {
	t = ClampF(t, 0, 1)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
