// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import "unsafe"

// systemstack runs fn on the current M's system stack instead of the
// calling goroutine's own stack. A goroutine's stack is a runtime-managed,
// copyable span carved out of the heap arena — never the region
// /proc/self/maps labels "[stack]" — so stackBase() and a scan of the
// calling goroutine's own SP describe two unrelated regions of memory;
// scanning between them walks off the end of one into unmapped pages.
// Running the spill and scan on the system stack instead ties the
// observed SP to the same OS-thread stack stackBase() reads, consistent
// with this package's single-mutator-goroutine model.
//
//go:linkname systemstack runtime.systemstack
func systemstack(fn func())

// maxScanSpan bounds how far above sp a scan is willing to read. stackBase
// and the post-spill SP are expected to land in the same stack region once
// spillRegisters runs on the system stack; this guards the rare case where
// they disagree (a stackBase reading that is stale, or a system stack that
// isn't the process's initial thread stack) so a bad pairing returns no
// roots instead of dereferencing unmapped memory.
const maxScanSpan = 64 << 20

// scanRoots conservatively walks the system stack, from the stack pointer
// observed just after a register spill up to the platform-reported stack
// base, treating every aligned machine word that matches a tracked
// allocation as a tentative root. This mirrors spec.md's register-spill
// stub: callee-saved registers are pushed to the stack by spillRegisters,
// and the callback that reads them back runs while that spill is still
// live, so the conservative scan below also covers any live Handle value a
// compiler decided to keep register-resident.
func scanRoots() []uintptr {
	base, ok := stackBase()
	if !ok {
		// No reliable stack bound on this platform: spec.md's resolved
		// Open Question (b) says return without scanning rather than
		// treat this as fatal. The next collect() call tries again.
		return nil
	}

	var roots []uintptr
	systemstack(func() {
		spillRegisters(func(sp uintptr) {
			if sp == 0 || sp >= base || base-sp > maxScanSpan {
				return
			}
			roots = scanRange(sp, base)
		})
	})
	return roots
}

const wordSize = unsafe.Sizeof(uintptr(0))

// scanRange reads every aligned word in [lo, hi) and reports the ones that
// land inside a tracked allocation, managed or not: spec.md requires that
// non-managed but registered blocks still be traversed so pointers they
// hold into managed memory are not missed, even though they are never
// themselves coloured or swept. It is also used by the mark phase to scan
// an allocation's own payload for nested handles.
func scanRange(lo, hi uintptr) []uintptr {
	var hits []uintptr
	lo &^= wordSize - 1
	for addr := lo; addr+wordSize <= hi; addr += wordSize {
		word := *(*uintptr)(unsafe.Pointer(addr))
		if _, ok := globalIndex.find(word); ok {
			hits = append(hits, word)
		}
	}
	return hits
}
