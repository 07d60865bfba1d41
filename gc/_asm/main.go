// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command asm generates gc/roots_amd64.s, the register-spill stub the
// collector uses for conservative stack scanning. It is a standalone
// module (like crypto/internal/bigmod/_asm) so avo and its dependencies
// never appear in the main module's build graph; re-run it with
// `go run .` from this directory after editing the register list below,
// and copy the result over ../roots_amd64.s.
package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/gotypes"
	. "github.com/mmcloughlin/avo/operand"
	. "github.com/mmcloughlin/avo/reg"
)

// calleeSaved lists the amd64 general-purpose registers the System V and
// Go calling conventions both treat as callee-saved; a Handle value live
// only in one of these across a call is the case the spill stub exists to
// cover.
var calleeSaved = []GPVirtual{BX, BP, R12, R13, R14, R15}

func main() {
	// avo has no primitive for emitting a CALL to another Go symbol (its
	// model is one self-contained function body), so this only generates
	// the register-spill half of spillAndScan. The CALL ·scanSpilled(SB)
	// and RET that must follow — made from within this still-live frame,
	// per roots_asm.go's contract — are added by hand to the generated
	// output before it is copied over ../roots_amd64.s.
	TEXT("spillAndScan", NOSPLIT, "func()")
	Doc("spillAndScan spills every callee-saved register into this frame.",
		"The generated body stops short of calling scanSpilled; see the",
		"hand-maintained ../roots_amd64.s for the complete stub.")

	frame := AllocLocal(8 * (len(calleeSaved) + 1))
	for i, r := range calleeSaved {
		MOVQ(r, frame.Offset(8*(i+1)))
	}

	Generate()
}
