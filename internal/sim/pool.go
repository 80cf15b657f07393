// Package sim implements the obstacle/pickup/projectile simulation: pooled
// entities, wave spawning, scrolling and every collision query the run
// state machine asks per frame. All randomness routes through rng.Source so
// runs sharing a weekly seed are bit-identical.
package sim

// Pool is a grow-only free list of reusable entities. Acquire returns the
// first inactive slot or appends a new one; entities are never removed from
// the backing store during a run, deactivation is the only destruction
// signal. The linear scan is fine at these sizes (tens of entities).
type Pool[T any] struct {
	slots  []*T
	inUse  func(*T) bool
	create func() *T
}

// NewPool creates a pool with the given initial capacity.
// inUse reports whether a slot is currently active; create allocates a slot.
func NewPool[T any](capacity int, inUse func(*T) bool, create func() *T) *Pool[T] {
	p := &Pool[T]{
		inUse:  inUse,
		create: create,
	}
	for i := 0; i < capacity; i++ {
		p.slots = append(p.slots, create())
	}
	return p
}

// Acquire returns an inactive slot, growing the pool by one if saturated.
// The caller is responsible for marking the slot active.
func (p *Pool[T]) Acquire() *T {
	for _, s := range p.slots {
		if !p.inUse(s) {
			return s
		}
	}
	s := p.create()
	p.slots = append(p.slots, s)
	return s
}

// Each calls fn for every active slot.
func (p *Pool[T]) Each(fn func(*T)) {
	for _, s := range p.slots {
		if p.inUse(s) {
			fn(s)
		}
	}
}

// ActiveCount returns the number of active slots.
func (p *Pool[T]) ActiveCount() int {
	n := 0
	for _, s := range p.slots {
		if p.inUse(s) {
			n++
		}
	}
	return n
}

// Size returns the total number of slots, active or not.
func (p *Pool[T]) Size() int {
	return len(p.slots)
}
