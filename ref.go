// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package once

import "code.hybscloud.com/atomix"

// Ref is an atomically reference-counted strong handle to a shared value.
//
// Each Ref created by NewRef, NewRefFunc or Clone owns one reference and
// must be balanced by exactly one Release. When the last reference is
// released the drop hook, if any, runs exactly once. This gives shared
// payloads deterministic reclamation — relevant for pooled buffers, file
// descriptors and similar resources where "the GC gets to it eventually"
// is not enough.
//
// The value is shared by all handles and is immutable by convention once
// it has been published through a Shared slot.
//
// Misuse panics: Clone, Value or Release on a handle whose references
// were already exhausted.
type Ref[T any] struct {
	refs  atomix.Int64
	value T
	drop  func(*T)
}

// NewRef creates a handle holding v with a reference count of one.
func NewRef[T any](v T) *Ref[T] {
	r := &Ref[T]{value: v}
	r.refs.Store(1)
	return r
}

// NewRefFunc creates a handle holding v whose drop hook runs exactly
// once, when the last reference is released. The hook receives the
// stored value; drop may be nil.
func NewRefFunc[T any](v T, drop func(*T)) *Ref[T] {
	r := &Ref[T]{value: v, drop: drop}
	r.refs.Store(1)
	return r
}

// Clone takes a new strong reference and returns the handle.
// The caller owes one additional Release.
func (r *Ref[T]) Clone() *Ref[T] {
	if r.refs.AddAcqRel(1) <= 1 {
		panic("once: Clone of released Ref")
	}
	return r
}

// Release drops one reference. The release that takes the count to zero
// runs the drop hook; using the handle after that is a fatal error.
func (r *Ref[T]) Release() {
	n := r.refs.AddAcqRel(-1)
	if n < 0 {
		panic("once: Release of released Ref")
	}
	if n == 0 && r.drop != nil {
		r.drop(&r.value)
	}
}

// Value returns the shared value. The pointer stays valid until the last
// reference is released.
func (r *Ref[T]) Value() *T {
	if r.refs.LoadAcquire() <= 0 {
		panic("once: Value of released Ref")
	}
	return &r.value
}
