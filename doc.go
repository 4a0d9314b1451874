// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package once provides atomic, lock-free, write-once containers.
//
// A write-once container starts empty and transitions to holding a value
// at most once; after that it is frozen until teardown. Because the only
// mutation is monotonic (nothing → something, never back), readers need
// no coordination with writers or with each other: a read is a single
// acquire load, with no lock, no compare-and-swap and no retry.
//
// The package offers two ownership flavors plus two word-sized variants:
//
//   - Slot[T]:      exclusively owned value, read by borrowed pointer
//   - Shared[T]:    reference-counted value (Ref[T]), read by cloning a handle
//   - SlotIndirect: uintptr handles (pool indices, packed ids), single-word cell
//   - SlotPtr:      unsafe.Pointer payloads, zero-copy publication
//
// # Quick Start
//
//	var cfg once.Slot[Config]
//
//	// Racing initializers; exactly one wins:
//	cfg.TrySet(loadConfig())
//
//	// Readers:
//	if c, ok := cfg.Get(); ok {
//	    serve(c)
//	}
//
// # Common Patterns
//
// Lazy initialization / memoization (Slot):
//
//	var parsed once.Slot[Ruleset]
//
//	func rules() *Ruleset {
//	    if r, ok := parsed.Get(); ok {
//	        return r // hot path: one acquire load
//	    }
//	    r, _ := parsed.GetOrSet(parseRules())
//	    return r
//	}
//
// Publish-once handle with independent holders (Shared):
//
//	var table once.Shared[RouteTable]
//
//	// Publisher:
//	table.SetValue(buildTable())
//
//	// A reader that must keep the table beyond the container's lifetime
//	// clones its own strong reference:
//	if h, ok := table.Get(); ok {
//	    go func() {
//	        defer h.Release()
//	        walk(h.Value())
//	    }()
//	}
//
// Waiting for a value is the caller's concern; the containers never
// block. Poll with a backoff, the same pattern used for queue consumers:
//
//	backoff := iox.Backoff{}
//	for {
//	    if v, ok := slot.Get(); ok {
//	        use(v)
//	        break
//	    }
//	    backoff.Wait()
//	}
//
// # Operations
//
// Setting:
//
//	TrySet(v)   - succeeds iff empty; a false result is permanent and
//	              means the winning value is already readable. The
//	              loser's value is discarded: only the winning value
//	              survives.
//	Set(v)      - TrySet that panics on an occupied Slot, for
//	              initialization paths where a second write is a bug.
//	GetOrSet(v) - returns the surviving value; all concurrent callers
//	              agree on it.
//
// Reading:
//
//	Get()   - wait-free; returns nothing or a fully constructed value.
//	IsSet() - relaxed occupancy probe; never use it to gate access to
//	          the value, use Get.
//
// Exclusive-access operations:
//
//	Take() / Swap() / Shared.Release()
//
// These are non-monotonic and legal only while the caller can guarantee
// no other operation on the container is in flight — the same discipline
// as destroying any non-reference-counted structure. With exclusive
// access no other goroutine can observe the transition, so the
// write-once guarantee readers rely on is not weakened.
//
// # Memory Ordering
//
// The containers are built on one protocol: a successful set publishes
// with release ordering, a read observes with acquire ordering, and a
// failed set synchronizes only enough to observe the winner's value.
// Consequently a reader that sees a value sees the complete value —
// every field written before it was published, regardless of which
// goroutine published it. A lost TrySet additionally guarantees the
// winning value is already visible to the loser: losing implies
// occupied, so a Get right after a false TrySet always succeeds. There
// is no ABA hazard: the state space is two states with one directed
// transition, and an occupied container never changes again.
//
// Progress: reads are wait-free (one load, plus one reference-count
// increment for Shared.Get). TrySet and GetOrSet are lock-free; under
// contention exactly one contender succeeds with a single
// compare-and-swap, and a loser's permanent false may spin only while
// the winner is between its claim and its publish, a window two plain
// instructions wide.
//
// # Error Handling
//
// Losing a TrySet is not an error; it is the expected contention outcome
// and is reported as a bool. There is nothing to retry — the loss is
// permanent by construction, which is why no would-block style error is
// used: it would suggest retrying could succeed. Contract violations
// (a 64-bit value in SlotIndirect, Set on an occupied Slot, use of a
// released Ref) panic.
//
// # Race Detection
//
// Slot, Shared and SlotPtr guard their payload with a separate atomic
// word. The happens-before edge between the publishing store and the
// acquiring load is real, but Go's race detector cannot observe
// synchronization carried through atomic orderings on a different
// variable and reports false positives on the payload field. Concurrent
// tests of these types are skipped under -race via RaceEnabled;
// SlotIndirect keeps its payload in the atomic word itself and needs no
// such exclusion.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomic primitives
// with explicit memory ordering and [code.hybscloud.com/spin] for CPU
// pause instructions in the GetOrSet wait window. Examples and tests use
// [code.hybscloud.com/iox] backoff for polling readers.
package once
