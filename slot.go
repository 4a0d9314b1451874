// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package once

// Slot is a write-once container for an exclusively owned value.
//
// A Slot starts empty and transitions to holding a value at most once,
// after which it is frozen: the value is never reassigned or removed for
// as long as the Slot is in shared use. Readers therefore pay a single
// acquire load and no other synchronization, which makes Slot suitable
// for lazily initialized shared state, memoized results, and
// publish-once handles.
//
// The zero value is an empty, ready-to-use Slot.
//
// Example:
//
//	var cfg once.Slot[Config]
//
//	// Any number of goroutines may race to initialize:
//	cfg.TrySet(loadConfig())
//
//	// Readers observe either nothing or a fully constructed Config:
//	if c, ok := cfg.Get(); ok {
//	    serve(c)
//	}
//
// Take and Swap are the exceptions to monotonicity: they require the
// caller to guarantee exclusive access (no concurrent Slot operation in
// flight), the same discipline as tearing the Slot down.
type Slot[T any] struct {
	c cell[T]
}

// NewSlot creates an empty Slot.
// Equivalent to new(Slot[T]); provided for symmetry with SlotOf.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// SlotOf creates a Slot already holding v.
func SlotOf[T any](v T) *Slot[T] {
	s := &Slot[T]{}
	s.c.init(v)
	return s
}

// TrySet attempts to store v. It succeeds iff the Slot was empty.
//
// Returns true when v is now the Slot's permanent value. Returns false
// when another value won; the caller's v is discarded — only the winning
// value survives. A false result is permanent: the Slot is write-once,
// so retrying can never succeed. It also means the Slot is occupied and
// the winning value is already visible, so a Get right after a lost
// TrySet always succeeds.
//
// Safe to call from any number of goroutines.
func (s *Slot[T]) TrySet(v T) bool {
	return s.c.publish(v)
}

// Set stores v, or panics if the Slot already holds a value.
// For initialization paths where a second write is a programming error.
func (s *Slot[T]) Set(v T) {
	if !s.c.publish(v) {
		panic("once: Set on occupied Slot")
	}
}

// Get returns a pointer to the Slot's value, or (nil, false) if the Slot
// is empty.
//
// The pointer remains valid for the Slot's lifetime: the value is frozen
// in place and never reassigned. The payload is fully visible — a reader
// that observes ok == true observes every field the writer constructed.
//
// Wait-free: one acquire load regardless of contention.
func (s *Slot[T]) Get() (*T, bool) {
	return s.c.get()
}

// GetOrSet returns the Slot's value, storing v first if the Slot was
// empty. The bool reports whether v won (false means a previously stored
// value was returned and v was discarded).
//
// All concurrent callers return the same pointer.
func (s *Slot[T]) GetOrSet(v T) (*T, bool) {
	return s.c.getOrPublish(v)
}

// IsSet reports whether the Slot holds a value.
//
// The probe is relaxed: it establishes no ordering and must not gate
// access to the value. Use Get for that.
func (s *Slot[T]) IsSet() bool {
	return s.c.isSet()
}

// Take empties the Slot and returns the value it held, if any.
//
// Caller must guarantee exclusive access: no TrySet, Get or GetOrSet may
// run concurrently with Take on the same Slot.
func (s *Slot[T]) Take() (T, bool) {
	return s.c.take()
}

// Swap stores v and returns the previous value, if any.
//
// Same exclusive-access contract as Take. Swap is the non-monotonic
// escape hatch: with exclusive access no other goroutine can observe the
// transition, so the write-once guarantee is not weakened.
func (s *Slot[T]) Swap(v T) (T, bool) {
	return s.c.swap(v)
}
