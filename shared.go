// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package once

// Shared is a write-once container for a reference-counted value.
//
// Like Slot, a Shared starts empty and transitions to holding a value at
// most once. Unlike Slot, the value is held through a Ref handle, so any
// number of readers can take their own strong reference with Get and
// hold it independently of the container and of each other. The payload
// is reclaimed exactly once, when the container's reference and every
// clone have all been released.
//
// The zero value is an empty, ready-to-use Shared.
//
// Example:
//
//	var route once.Shared[Table]
//
//	// Publisher:
//	route.SetValue(buildTable())
//
//	// Reader that needs the table beyond the container's lifetime:
//	if h, ok := route.Get(); ok {
//	    go func() {
//	        defer h.Release()
//	        walk(h.Value())
//	    }()
//	}
//
//	// Teardown, after shared use has ceased:
//	route.Release()
//
// A Shared that was set owns one strong reference. Release (or Take)
// drops it; that is the teardown step and follows the same
// exclusive-access discipline as Slot.Take.
type Shared[T any] struct {
	c cell[*Ref[T]]
}

// NewShared creates an empty Shared.
// Equivalent to new(Shared[T]); provided for symmetry with SharedOf.
func NewShared[T any]() *Shared[T] {
	return &Shared[T]{}
}

// SharedOf creates a Shared already holding h. Ownership of the caller's
// reference transfers to the container.
func SharedOf[T any](h *Ref[T]) *Shared[T] {
	s := &Shared[T]{}
	s.c.init(h)
	return s
}

// TrySet attempts to store h. It succeeds iff the Shared was empty.
//
// Ownership of the caller's reference transfers into this call either
// way: on success it becomes the container's reference and the caller
// must not Release it again; on failure it is released here through the
// normal drop path, which is correct whether or not other holders of the
// same payload exist elsewhere.
//
// A false result is permanent, and means the stored handle is already
// readable: Get or Value right after a lost TrySet always succeeds.
// Safe to call from any number of goroutines.
func (s *Shared[T]) TrySet(h *Ref[T]) bool {
	if s.c.publish(h) {
		return true
	}
	h.Release()
	return false
}

// SetValue wraps v in a fresh Ref and attempts to store it. On failure
// the fresh reference dies immediately and v is discarded.
func (s *Shared[T]) SetValue(v T) bool {
	return s.TrySet(NewRef(v))
}

// Get returns a new strong reference to the stored value, or
// (nil, false) if the Shared is empty. The returned handle is
// independently owned: the caller must Release it, and it outlives the
// container if need be.
//
// One acquire load plus one reference-count increment.
func (s *Shared[T]) Get() (*Ref[T], bool) {
	h, ok := s.c.get()
	if !ok {
		return nil, false
	}
	return (*h).Clone(), true
}

// Value returns a borrowed pointer to the stored value, or (nil, false)
// if the Shared is empty. No reference-count traffic; the pointer is
// valid for as long as the container's reference is held, which for a
// Shared in use is the container's lifetime.
//
// Wait-free: one acquire load.
func (s *Shared[T]) Value() (*T, bool) {
	h, ok := s.c.get()
	if !ok {
		return nil, false
	}
	return (*h).Value(), true
}

// IsSet reports whether the Shared holds a value.
//
// The probe is relaxed: it establishes no ordering and must not gate
// access to the value. Use Get or Value for that.
func (s *Shared[T]) IsSet() bool {
	return s.c.isSet()
}

// Take empties the Shared and hands the container's own reference to the
// caller, who assumes the obligation to Release it. Returns (nil, false)
// if the Shared was empty.
//
// Caller must guarantee exclusive access, as for Slot.Take.
func (s *Shared[T]) Take() (*Ref[T], bool) {
	return s.c.take()
}

// Release drops the container's reference if it holds one, leaving the
// Shared empty. This is the teardown step for a Shared that was set; a
// Release of an empty Shared is a no-op.
//
// Caller must guarantee exclusive access.
func (s *Shared[T]) Release() {
	if h, ok := s.c.take(); ok {
		h.Release()
	}
}
