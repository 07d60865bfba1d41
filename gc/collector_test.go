// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"runtime"
	"sync/atomic"
	"testing"
	"unsafe"
)

// resetForTest restores threshold and debug-flag state a previous test may
// have changed. The allocation metadata index and registry are process-
// wide and intentionally not reset — this package has no more a notion of
// "the heap between tests" than the host Go runtime's own allocator does —
// so every assertion below is about this test's own objects, never about
// global counts.
func resetForTest(t *testing.T) {
	t.Cleanup(ResetDebugFlags)
	t.Cleanup(func() { SetThreshold(defaultThreshold) })
	ResetDebugFlags()
}

// requireStackScanning skips tests whose assertions depend on conservative
// scanning of the goroutine stack actually finding a root. That scan is
// only implemented where /proc/self/maps reports a "[stack]" mapping
// (stackbase_linux.go); see stackbase_other.go for what Collect does on
// other platforms.
func requireStackScanning(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("conservative stack scanning requires stackbase_linux.go")
	}
}

type counterNode struct {
	name string
	_    [8]byte
}

func TestAutoCollectionThreshold(t *testing.T) {
	resetForTest(t)
	SetThreshold(1) // any single allocation crosses this

	var drops int32
	finalize := func(*counterNode) { atomic.AddInt32(&drops, 1) }

	// Nothing below keeps a root alive, so accountAlloc's synchronous
	// Collect() inside NewFinalized should reclaim each object on the
	// very next allocation's trigger.
	for i := 0; i < 8; i++ {
		NewFinalized(counterNode{name: "scratch"}, finalize)
	}
	Collect()

	if got := atomic.LoadInt32(&drops); got == 0 {
		t.Fatal("auto-collection never ran any finalizer")
	}
}

func TestMultipleCollectionsPhaseGating(t *testing.T) {
	resetForTest(t)

	y := New(456)
	yAny := y.Any()
	defer Debug.KeepAlive(&yAny)
	Debug.ForceBlack(yAny)

	if !Debug.IsBlack(yAny) {
		t.Fatal("y not black after ForceBlack")
	}

	SetDebugFlags(false, false)
	Collect()
	if Debug.IsBlack(yAny) {
		t.Fatal("y still black after a cycle with mark and sweep both disabled; the polarity flip should have changed its apparent colour")
	}

	ResetDebugFlags()
	Debug.ForceBlack(yAny)
	Collect()
	if !Debug.IsBlack(yAny) {
		t.Fatal("y not black after a full cycle re-marked it")
	}
}

type cyclic struct {
	name string
	next Handle[cyclic]
}

// TestMarkTraversesNonManagedBlocks exercises spec.md's requirement that a
// non-managed but registered block still has its contents traversed during
// mark, even though the block itself is never coloured or swept: a
// plain Go slice (never allocated through New) is registered directly with
// the index as unmanaged, holding a pointer to a managed object, and mark
// is seeded from that block alone.
func TestMarkTraversesNonManagedBlocks(t *testing.T) {
	resetForTest(t)

	target := New(counterNode{name: "via-unmanaged"})
	if Debug.IsBlack(target.Any()) {
		t.Fatal("freshly allocated object already black before mark runs")
	}

	holder := make([]uintptr, 1)
	holder[0] = target.AsAddr()
	base := uintptr(unsafe.Pointer(&holder[0]))
	globalIndex.insert(base, unsafe.Sizeof(holder[0]), false)
	defer globalIndex.remove(base)

	mark([]uintptr{base})

	if !Debug.IsBlack(target.Any()) {
		t.Fatal("mark did not traverse the non-managed block to find target")
	}
}

func TestCyclicObjectGraphAllMarked(t *testing.T) {
	resetForTest(t)

	a := New(cyclic{name: "a"})
	b := New(cyclic{name: "b"})
	c := New(cyclic{name: "c"})
	*a.Deref() = cyclic{name: "a", next: b}
	*b.Deref() = cyclic{name: "b", next: c}
	*c.Deref() = cyclic{name: "c", next: a}

	// mark is seeded directly from a, the same as a root scan that found
	// exactly one pointer (to a) would seed it; the traversal of the a ->
	// b -> c -> a cycle that follows is what this test is about, not
	// whether the stack scan happens to find a.
	mark([]uintptr{a.AsAddr()})

	for _, h := range []Handle[cyclic]{a, b, c} {
		if !Debug.IsBlack(h.Any()) {
			t.Fatalf("%s not black after tracing the cycle from a root", h.Deref().name)
		}
	}
}

type wrapper struct {
	plain counterNode
	inner Handle[counterNode]
}

// TestSweepDoesNotCascadeThroughEmbeddedHandle is this port's
// deterministic version of the live-inner scenario: sweeping outer must
// run outer's own finalizer exactly once and must never follow the
// Handle embedded inside it back into inner's own object. inner's
// liveness is pinned with ForceBlack rather than a conservative stack
// scan, so the result does not depend on compiler register allocation —
// see DESIGN.md for why this differs from the original test, which
// disables the mark phase instead.
func TestSweepDoesNotCascadeThroughEmbeddedHandle(t *testing.T) {
	resetForTest(t)

	var drops int32
	incr := func(*counterNode) { atomic.AddInt32(&drops, 1) }

	inner := NewFinalized(counterNode{name: "inner"}, incr)
	Debug.ForceBlack(inner.Any())

	NewFinalized(wrapper{plain: counterNode{name: "plain"}, inner: inner}, func(w *wrapper) {
		incr(&w.plain)
	})

	SetDebugFlags(false, true) // every object appears white to sweep except inner, forced black above
	Collect()

	if got := atomic.LoadInt32(&drops); got != 1 {
		t.Fatalf("drops = %d; want 1 (outer's own field, not inner)", got)
	}
	if inner.Deref().name != "inner" {
		t.Fatal("inner was collected despite being forced black")
	}
}

func TestLiveInnerViaStackScan(t *testing.T) {
	requireStackScanning(t)
	resetForTest(t)

	var drops int32
	incr := func(*counterNode) { atomic.AddInt32(&drops, 1) }

	inner := NewFinalized(counterNode{name: "inner"}, incr)
	innerAny := inner.Any()
	Debug.KeepAlive(&innerAny)
	buildAndDropOuter(incr, inner)

	Collect()

	if inner.Deref().name != "inner" {
		t.Fatal("inner was collected despite being kept alive")
	}
}

//go:noinline
func buildAndDropOuter(incr func(*counterNode), inner Handle[counterNode]) {
	NewFinalized(wrapper{plain: counterNode{name: "plain"}, inner: inner}, func(w *wrapper) {
		incr(&w.plain)
	})
}
