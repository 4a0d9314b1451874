// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package once_test

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/once"
)

// wideRecord is a multi-word payload with a marker written last during
// construction. A reader that ever observes the record without the
// marker has seen a partially constructed value.
type wideRecord struct {
	a, b, c, d uint64
	marker     uint64
}

func makeWideRecord(seed uint64) wideRecord {
	r := wideRecord{}
	r.a = seed
	r.b = seed + 1
	r.c = seed + 2
	r.d = seed + 3
	r.marker = r.a ^ r.b ^ r.c ^ r.d ^ 0xdeadbeef
	return r
}

func (r *wideRecord) torn() bool {
	return r.marker != r.a^r.b^r.c^r.d^0xdeadbeef
}

// =============================================================================
// Read-After-Write Visibility
// =============================================================================

// TestSlotVisibilityStress spins many readers on Get against one writer
// per round. Once Get reports a value, every field the writer constructed
// must be visible; a torn read is a protocol failure.
func TestSlotVisibilityStress(t *testing.T) {
	if once.RaceEnabled {
		t.Skip("skip: payload guarded through cross-variable memory ordering")
	}
	if testing.Short() {
		t.Skip("skip: stress test in short mode")
	}

	const (
		readers = 8
		rounds  = 2000
	)

	var torn atomix.Int64
	for round := range rounds {
		var s once.Slot[wideRecord]
		var wg sync.WaitGroup

		start := make(chan struct{})
		for range readers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				backoff := iox.Backoff{}
				for {
					if p, ok := s.Get(); ok {
						if p.torn() {
							torn.Add(1)
						}
						return
					}
					backoff.Wait()
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			runtime.Gosched()
			s.TrySet(makeWideRecord(uint64(round)))
		}()

		close(start)
		wg.Wait()

		if n := torn.Load(); n != 0 {
			t.Fatalf("round %d: torn reads: got %d, want 0", round, n)
		}
	}
}

// TestSharedVisibilityStress is the Shared counterpart: clones taken the
// instant Get succeeds must reference a fully constructed payload.
func TestSharedVisibilityStress(t *testing.T) {
	if once.RaceEnabled {
		t.Skip("skip: payload guarded through cross-variable memory ordering")
	}
	if testing.Short() {
		t.Skip("skip: stress test in short mode")
	}

	const (
		readers = 8
		rounds  = 2000
	)

	for round := range rounds {
		var s once.Shared[wideRecord]
		var wg sync.WaitGroup

		start := make(chan struct{})
		for range readers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				backoff := iox.Backoff{}
				for {
					if h, ok := s.Get(); ok {
						if h.Value().torn() {
							t.Error("torn read through cloned handle")
						}
						h.Release()
						return
					}
					backoff.Wait()
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			runtime.Gosched()
			s.SetValue(makeWideRecord(uint64(round)))
		}()

		close(start)
		wg.Wait()
		s.Release()
	}
}

// =============================================================================
// Contention Storms
// =============================================================================

// TestSlotTrySetStorm keeps a fresh Slot under fire from writers and
// readers simultaneously for a wall-clock budget, verifying the
// single-winner and frozen-value properties hold across interleavings.
func TestSlotTrySetStorm(t *testing.T) {
	if once.RaceEnabled {
		t.Skip("skip: payload guarded through cross-variable memory ordering")
	}
	if testing.Short() {
		t.Skip("skip: stress test in short mode")
	}

	const (
		writers = 8
		readers = 8
		budget  = 2 * time.Second
	)

	deadline := time.Now().Add(budget)
	for round := 0; time.Now().Before(deadline); round++ {
		var s once.Slot[uint64]
		var wins atomix.Int64
		var wg sync.WaitGroup

		start := make(chan struct{})
		for id := range writers {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				<-start
				if s.TrySet(uint64(round)<<8 | uint64(id)) {
					wins.Add(1)
				}
			}(id)
		}
		for range readers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				var first *uint64
				backoff := iox.Backoff{}
				for first == nil {
					if p, ok := s.Get(); ok {
						first = p
					} else {
						backoff.Wait()
					}
				}
				// The value must never change once observed.
				for range 100 {
					p, ok := s.Get()
					if !ok || p != first || *p != *first {
						t.Error("observed value changed after first read")
						return
					}
				}
			}()
		}

		close(start)
		wg.Wait()

		if n := wins.Load(); n != 1 {
			t.Fatalf("round %d: winners: got %d, want 1", round, n)
		}
	}
}

// TestSlotIndirectStorm is the detector-clean storm over the single-word
// cell, runnable with -race.
func TestSlotIndirectStorm(t *testing.T) {
	if testing.Short() {
		t.Skip("skip: stress test in short mode")
	}

	const (
		writers = 8
		rounds  = 5000
	)

	for range rounds {
		var s once.SlotIndirect
		var wins atomix.Int64
		var wg sync.WaitGroup

		start := make(chan struct{})
		for id := range writers {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				<-start
				if s.TrySet(uintptr(id + 1)) {
					wins.Add(1)
				}
			}(id)
		}
		close(start)
		wg.Wait()

		if n := wins.Load(); n != 1 {
			t.Fatalf("winners: got %d, want 1", n)
		}
		if v, ok := s.Get(); !ok || v < 1 || v > writers {
			t.Fatalf("Get: got (%d, %v), want one of the contenders' values", v, ok)
		}
	}
}
