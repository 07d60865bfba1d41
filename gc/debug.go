// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

// Debug exposes introspection used only by this package's own tests and by
// callers writing tests against it. None of it is meant for production
// use: IsBlack reaches past a Handle's normal API to read collector-
// internal state, and KeepAlive exists only to defeat the compiler's
// freedom to drop a dead local before a conservative stack scan runs.
var Debug debugAPI

type debugAPI struct{}

// IsBlack reports whether h's managed object is currently coloured black
// under the collector's live polarity.
func (debugAPI) IsBlack(h AnyHandle) bool {
	if h.addr == 0 {
		return false
	}
	return collectorState.isBlack(headerAt(h.addr))
}

// KeepAlive forces h's underlying value to stay resident on the caller's
// own stack frame, so a root scan run later in the same call chain is
// certain to find it there. The root scanner only ever walks stack memory
// (see roots.go); a package-level variable lives in the data segment, not
// the stack, so writing h into one — as an earlier version of this
// function did — would not make h discoverable at all. Taking h by
// pointer is what does the forcing: the caller must take the address of
// its own local to call this, which obliges the compiler to give that
// local real stack storage rather than keep it purely register-resident,
// and since KeepAlive never lets the pointer escape any further, that
// storage stays on the caller's stack instead of moving to the heap.
//
//go:noinline
func (debugAPI) KeepAlive(h *AnyHandle) {
	keepAliveSink = *h
}

// keepAliveSink is written by KeepAlive and never read; the write alone is
// enough to force the compiler to treat *h as used rather than dead.
var keepAliveSink AnyHandle

// Phase reports the collector's current phase name, for tests that assert
// on transitions rather than on final state.
func (debugAPI) Phase() string { return collectorState.phase().String() }

// ForceBlack marks h's object black directly, bypassing root scanning and
// the mark phase entirely. It exists so tests can pin an object's
// reachability deterministically instead of depending on where a
// conservative stack scan happens to find (or not find) a value the
// compiler was free to keep register-resident.
func (debugAPI) ForceBlack(h AnyHandle) {
	if h.addr == 0 {
		return
	}
	headerAt(h.addr).setMarkRaw(collectorState.blackValue())
}
