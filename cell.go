// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package once

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Cell states. Shared use only ever moves forward: empty → busy → ready.
// The busy window is the winner copying its payload before the release
// store that publishes it.
const (
	cellEmpty uint64 = iota
	cellBusy
	cellReady
)

// cell is the publication protocol shared by Slot, Shared and SlotPtr.
//
// A guard word protects an inline payload: a writer claims the cell with
// a single CAS, writes the payload, then publishes with a release store.
// Readers load the guard with acquire ordering and touch the payload only
// after observing ready, so a reader never sees a partially written value.
//
// The zero value is an empty cell.
type cell[T any] struct {
	state atomix.Uint64
	data  T
}

// get returns a pointer to the published payload, or (nil, false) if no
// payload has been published yet. One acquire load; wait-free.
func (c *cell[T]) get() (*T, bool) {
	if c.state.LoadAcquire() != cellReady {
		return nil, false
	}
	return &c.data, true
}

// isSet reports whether a payload has been published.
// A relaxed probe: it orders nothing and must not be used to license
// access to the payload. Use get for that.
func (c *cell[T]) isSet() bool {
	return c.state.LoadRelaxed() == cellReady
}

// publish attempts the cell's one allowed transition. Exactly one
// publish ever returns true per cell, no matter how many race; a false
// return is permanent and the candidate never enters the cell.
//
// A false return also implies ready: a loser that arrives during the
// winner's busy window spins it out, so losing callers can always read
// the occupant immediately. The window is two instructions long.
func (c *cell[T]) publish(v T) bool {
	if c.state.CompareAndSwapAcqRel(cellEmpty, cellBusy) {
		c.data = v
		c.state.StoreRelease(cellReady)
		return true
	}
	sw := spin.Wait{}
	for c.state.LoadAcquire() != cellReady {
		sw.Once()
	}
	return false
}

// getOrPublish publishes v if the cell is empty, otherwise returns the
// payload that won. The cell is ready either way publish returns.
func (c *cell[T]) getOrPublish(v T) (*T, bool) {
	if c.publish(v) {
		return &c.data, true
	}
	return &c.data, false
}

// take empties the cell and returns the payload it held, if any.
// Caller must guarantee exclusive access: no publish or get may be in
// flight. Plain ordering suffices under that contract.
func (c *cell[T]) take() (T, bool) {
	var zero T
	if c.state.Load() != cellReady {
		return zero, false
	}
	v := c.data
	c.data = zero
	c.state.Store(cellEmpty)
	return v, true
}

// swap replaces the cell's payload with v and returns the previous
// payload, if any. Same exclusive-access contract as take.
func (c *cell[T]) swap(v T) (T, bool) {
	old, had := c.take()
	c.data = v
	c.state.Store(cellReady)
	return old, had
}

// init seeds a freshly constructed, not yet shared cell.
func (c *cell[T]) init(v T) {
	c.data = v
	c.state.StoreRelaxed(cellReady)
}
