// Package physics provides arena geometry: points, axis-aligned boxes,
// overlap tests and a broad-phase grid.
package physics

import "math"

// Box is an axis-aligned bounding box described by its center and half extents.
type Box struct {
	Center       Vec
	HalfW, HalfH float64
}

// SquareBox returns a box of the given side length centered on c.
func SquareBox(c Vec, side float64) Box {
	return Box{Center: c, HalfW: side / 2, HalfH: side / 2}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// WithinExtent reports whether b lies within half on both axes of a.
// The comparison is inclusive: |dx| <= half && |dy| <= half.
func WithinExtent(a, b Vec, half float64) bool {
	return math.Abs(a.X-b.X) <= half && math.Abs(a.Y-b.Y) <= half
}

// InRange reports whether both coordinates of p lie in [min, max].
func InRange(p Vec, min, max float64) bool {
	return p.X >= min && p.X <= max && p.Y >= min && p.Y <= max
}
