// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64 && !arm64

package gc

import "unsafe"

// spillRegisters on architectures without a hand-written spill stub falls
// back to scanning from the address of a local variable in the calling
// frame. This misses any Handle value the compiler kept purely
// register-resident across the call into Collect, which conservative
// collectors universally document as a soundness gap on unsupported
// architectures; spec.md's register-spill stub exists precisely to close
// this gap on the architectures that have one.
//
//go:noinline
func spillRegisters(scan func(sp uintptr)) {
	var anchor uintptr
	scan(uintptr(unsafe.Pointer(&anchor)))
}
