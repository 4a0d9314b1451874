// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package once

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// setFlag marks the word as occupied. The remaining 63 bits store the value.
const setFlag = 1 << 63

// SlotIndirect is a write-once cell for uintptr values: pool indices,
// handles, packed ids. Values must fit in 63 bits (the high bit encodes
// occupancy, so zero is a legal value).
//
// The whole cell is a single machine word, and every operation is one
// atomic instruction on it: TrySet is one compare-and-swap, Get is one
// acquire load. Because the word itself carries the payload there is no
// cross-variable ordering, which also keeps SlotIndirect transparent to
// the race detector.
//
// The zero value is an empty, ready-to-use SlotIndirect.
type SlotIndirect struct {
	word atomix.Uintptr
}

// NewSlotIndirect creates an empty SlotIndirect.
func NewSlotIndirect() *SlotIndirect {
	return &SlotIndirect{}
}

// TrySet attempts to store v. It succeeds iff the cell was empty.
// A false result is permanent. Panics if v exceeds 63 bits.
func (s *SlotIndirect) TrySet(v uintptr) bool {
	if v&setFlag != 0 {
		panic("once: value exceeds 63 bits")
	}
	return s.word.CompareAndSwapAcqRel(0, v|setFlag)
}

// Get returns the stored value, or (0, false) if the cell is empty.
// Wait-free: one acquire load.
func (s *SlotIndirect) Get() (uintptr, bool) {
	w := s.word.LoadAcquire()
	if w&setFlag == 0 {
		return 0, false
	}
	return w &^ setFlag, true
}

// IsSet reports whether the cell holds a value. Relaxed probe.
func (s *SlotIndirect) IsSet() bool {
	return s.word.LoadRelaxed()&setFlag != 0
}

// Take empties the cell and returns the value it held, if any.
// Caller must guarantee exclusive access.
func (s *SlotIndirect) Take() (uintptr, bool) {
	w := s.word.Load()
	if w&setFlag == 0 {
		return 0, false
	}
	s.word.Store(0)
	return w &^ setFlag, true
}

// SlotPtr is a write-once cell for unsafe.Pointer payloads: zero-copy
// publication of an object constructed elsewhere.
//
// The pointer is kept in an ordinary pointer-typed field guarded by the
// publication protocol, so the referent stays visible to the garbage
// collector. Do not publish a uintptr-converted pointer through
// SlotIndirect for the same purpose — the collector would not see it.
//
// The zero value is an empty, ready-to-use SlotPtr.
type SlotPtr struct {
	c cell[unsafe.Pointer]
}

// NewSlotPtr creates an empty SlotPtr.
func NewSlotPtr() *SlotPtr {
	return &SlotPtr{}
}

// TrySet attempts to store p. It succeeds iff the cell was empty.
// A false result is permanent.
func (s *SlotPtr) TrySet(p unsafe.Pointer) bool {
	return s.c.publish(p)
}

// Get returns the stored pointer, or (nil, false) if the cell is empty.
// Wait-free: one acquire load.
func (s *SlotPtr) Get() (unsafe.Pointer, bool) {
	p, ok := s.c.get()
	if !ok {
		return nil, false
	}
	return *p, true
}

// IsSet reports whether the cell holds a pointer. Relaxed probe.
func (s *SlotPtr) IsSet() bool {
	return s.c.isSet()
}

// Take empties the cell and returns the pointer it held, if any.
// Caller must guarantee exclusive access.
func (s *SlotPtr) Take() (unsafe.Pointer, bool) {
	return s.c.take()
}
