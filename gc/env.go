// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gc

import (
	"os"
	"strconv"
	"strings"
)

// init applies GCRT_THRESHOLD and GCRT_DEBUG the way the host runtime
// applies GODEBUG: best-effort, and never fatal to startup. A malformed
// value is silently ignored rather than panicking a program that merely
// wanted to tune the collector.
func init() {
	if v, ok := os.LookupEnv("GCRT_THRESHOLD"); ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			SetThreshold(n)
		}
	}

	if v, ok := os.LookupEnv("GCRT_DEBUG"); ok {
		mark, sweep := true, true
		for _, opt := range strings.Split(v, ",") {
			switch strings.TrimSpace(opt) {
			case "nomark":
				mark = false
			case "nosweep":
				sweep = false
			}
		}
		SetDebugFlags(mark, sweep)
	}
}
