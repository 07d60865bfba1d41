// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import "sync"

// arena is the raw system allocator managed objects are carved out of. It
// never returns memory to the mutator that the host Go runtime's own
// allocator also owns: pages come from mmap (or, on platforms without it,
// a pinned Go byte slice), so the host garbage collector never mistakes
// arena bytes for its own heap and never moves or scans them.
//
// alloc is called by the mutator (from newBox) and free by sweep, with the
// single mutator paused; a single mutex is enough, and there is no per-goroutine fast path
// the way the host allocator has one, because this allocator is not meant
// to compete with it on throughput, only on not disturbing its invariants.
type arena struct {
	mu      sync.Mutex
	backend arenaBackend
}

// arenaBackend is the OS-specific half of the arena: how pages are
// obtained and released. See arena_unix.go and arena_other.go. The Unix
// backend rounds up to the page size and returns a page-aligned address;
// the fallback backend returns the start of a Go byte slice, aligned only
// as the Go allocator aligns it. The arena itself does no further
// alignment arithmetic.
type arenaBackend interface {
	alloc(size uintptr) uintptr
	free(base, size uintptr)
}

var theArena = arena{backend: newArenaBackend()}

// alloc returns size bytes of zeroed memory from the backend. align is
// accepted for documentation purposes at call sites and is not otherwise
// used; no alignment beyond what the backend returns is applied.
func (a *arena) alloc(size, align uintptr) uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	_ = align

	raw := a.backend.alloc(size)
	if raw == 0 {
		fatal(errAllocationFailure)
	}
	return raw
}

// free returns the region starting at base, of the given size, to the
// backend. base and size must match a prior alloc call exactly; sweep
// tracks this via the index record it is reclaiming.
func (a *arena) free(base, size uintptr) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.backend.free(base, size)
}
