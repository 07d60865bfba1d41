// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64 || arm64

package gc

// spillAndScan is implemented in roots_amd64.s / roots_arm64.s. It writes
// every callee-saved general-purpose register into its own stack frame and
// then, while that frame is still live, calls scanSpilled with the
// resulting stack pointer — not after returning it, the way a plain
// "spill, then return the pointer" stub would. A spill stub that returns
// before its caller gets to read the spilled slots lets the very next call
// (the one doing the reading) push its own frame over those same bytes
// first; calling back into Go from inside the still-live frame is what
// spec.md's ABI contract actually requires ("pushes callee-saved registers
// and then calls callback(... current stack pointer")").
//
//go:noescape
func spillAndScan()

// scanCallback is set by spillRegisters immediately before calling
// spillAndScan and invoked by scanSpilled. It is unset again once
// spillAndScan returns; this package's single-mutator model means there is
// never a concurrent spill in flight to race it.
var scanCallback func(sp uintptr)

// scanSpilled is called directly from the assembly stub, from within its
// still-live spill frame, with the stack pointer at which the spilled
// registers (and everything deeper on the stack) can be found.
func scanSpilled(sp uintptr) {
	scanCallback(sp)
}

func spillRegisters(scan func(sp uintptr)) {
	scanCallback = scan
	spillAndScan()
	scanCallback = nil
}
