// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import "sync/atomic"

// phase is the collector's observable state, mirroring spec.md's
// Ready -> RootScanning -> Marking -> Sweeping -> Ready cycle.
type phase int32

const (
	phaseReady phase = iota
	phaseRootScanning
	phaseMarking
	phaseSweeping
)

func (p phase) String() string {
	switch p {
	case phaseReady:
		return "ready"
	case phaseRootScanning:
		return "root-scanning"
	case phaseMarking:
		return "marking"
	case phaseSweeping:
		return "sweeping"
	default:
		return "unknown"
	}
}

// debugFlags gates individual phases for tests, per spec.md's DebugFlags.
type debugFlags struct {
	markPhase  bool
	sweepPhase bool
}

var defaultDebugFlags = debugFlags{markPhase: true, sweepPhase: true}

// collector holds the single process-wide collection state. running is a
// CAS-guarded re-entry flag, not a mutex: a Collect call that finds a cycle
// already in flight returns immediately instead of waiting for it, since
// this is a stop-the-world, single-mutator collector and the only
// legitimate source of a concurrent call is a finalizer that allocates
// during sweep — that call must not block on the very cycle it is running
// inside of.
type collector struct {
	running atomic.Bool
	state   atomic.Int32
	black   atomic.Bool
	flags   atomic.Pointer[debugFlags]
}

var collectorState = newCollector()

func newCollector() *collector {
	c := &collector{}
	c.black.Store(true)
	f := defaultDebugFlags
	c.flags.Store(&f)
	return c
}

func (c *collector) blackValue() bool { return c.black.Load() }

func (c *collector) isBlack(h *blockHeader) bool {
	return h.markRaw() == c.black.Load()
}

func (c *collector) phase() phase { return phase(c.state.Load()) }

func (c *collector) debugFlags() debugFlags { return *c.flags.Load() }

// SetDebugFlags configures which phases run on the next and subsequent
// Collect calls. It exists for tests that need to observe the collector's
// phases in isolation (spec.md's DebugFlags / Debug.debug_flags).
func SetDebugFlags(markPhase, sweepPhase bool) {
	f := debugFlags{markPhase: markPhase, sweepPhase: sweepPhase}
	collectorState.flags.Store(&f)
}

// ResetDebugFlags restores both phases to enabled.
func ResetDebugFlags() {
	f := defaultDebugFlags
	collectorState.flags.Store(&f)
}

// Collect runs one stop-the-world collection cycle: root scanning, an
// optional mark phase, an optional sweep phase, and an unconditional
// mark-bit polarity flip. Per spec.md §4.4, a call that finds a cycle
// already running returns immediately without waiting for it — the only
// source of such a call is a finalizer that allocates during its own
// cycle's sweep phase, and that call must not block on itself.
func Collect() {
	if !collectorState.running.CompareAndSwap(false, true) {
		return
	}
	defer collectorState.running.Store(false)

	flags := collectorState.debugFlags()

	collectorState.state.Store(int32(phaseRootScanning))
	roots := scanRoots()

	collectorState.state.Store(int32(phaseMarking))
	if flags.markPhase {
		mark(roots)
	}

	collectorState.state.Store(int32(phaseSweeping))
	if flags.sweepPhase {
		sweep()
	}

	// The flip happens unconditionally: spec.md's multiple_collections
	// scenario shows a previously black object reading back as not-black
	// after a cycle that skipped both mark and sweep.
	collectorState.black.Store(!collectorState.black.Load())
	collectorState.state.Store(int32(phaseReady))

	trigger.reset()

	if pendingDestructorPanic != nil {
		p := pendingDestructorPanic
		pendingDestructorPanic = nil
		panic(p)
	}
}

// mark drives the worklist described in spec.md §4.4: a managed hit is
// coloured black and its own bytes are conservatively rescanned for
// further hits, until the worklist is empty. A non-managed but registered
// block is never coloured or swept — it has no blockHeader to carry a mark
// bit — but its contents are still traversed, so a pointer it holds into
// managed memory is not missed. Since such a block has no mark bit to
// dedupe against, seenUnmanaged tracks which ones this pass has already
// queued, so a cycle through non-managed blocks alone can't loop forever.
func mark(roots []uintptr) {
	black := collectorState.black.Load()
	work := append([]uintptr(nil), roots...)
	seenUnmanaged := make(map[uintptr]bool)

	for len(work) > 0 {
		addr := work[len(work)-1]
		work = work[:len(work)-1]

		info, ok := globalIndex.find(addr)
		if !ok {
			continue
		}
		if !info.Managed {
			if seenUnmanaged[info.Base] {
				continue
			}
			seenUnmanaged[info.Base] = true
			work = append(work, scanRange(info.Base, info.Base+info.Size)...)
			continue
		}
		h := headerAt(info.Base)
		if h.markRaw() == black {
			continue
		}
		h.setMarkRaw(black)
		work = append(work, scanRange(info.Base, info.Base+info.Size)...)
	}
}

// sweep reclaims every managed entry whose mark bit does not match the
// current black polarity. The index is iterated from a point-in-time
// snapshot (see ptrIndex.iter), so sweepDrop is free to remove entries and
// free arena memory as it goes.
func sweep() {
	var white []ptrInfo
	globalIndex.iter(func(info ptrInfo) bool {
		if !info.Managed {
			return true
		}
		h := headerAt(info.Base)
		if h.markRaw() != collectorState.black.Load() {
			white = append(white, info)
		}
		return true
	})
	for _, info := range white {
		sweepDrop(info)
	}
}
