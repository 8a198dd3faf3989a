// Package entity defines the moving bodies of a round: the player ship,
// projectiles and asteroids, plus the factory that creates them.
package entity

import (
	"maps"
	"slices"
	"sync/atomic"

	"github.com/tomz197/destroid/internal/physics"
)

// ID identifies a projectile or asteroid for the lifetime of the process.
type ID uint64

// Entity is an updatable body with a bounding box.
type Entity interface {
	// ID returns the entity identifier. The player returns 0.
	ID() ID
	// Update advances the entity by one tick.
	Update()
	// Expired reports whether the entity has left its live region.
	Expired() bool
	// Bounds returns the axis-aligned bounding box.
	Bounds() physics.Box
}

// IDAllocator hands out strictly increasing ids starting at 1.
type IDAllocator struct {
	last atomic.Uint64
}

// Next returns a fresh id.
func (a *IDAllocator) Next() ID {
	return ID(a.last.Add(1))
}

// SortedIDs returns the keys of m in ascending order.
func SortedIDs[T any](m map[ID]T) []ID {
	return slices.Sorted(maps.Keys(m))
}
