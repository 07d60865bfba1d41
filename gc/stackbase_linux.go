// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package gc

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// stackBase reports the highest address of the current process's initial
// OS thread stack, read from /proc/self/maps' "[stack]" mapping. This is
// not where an ordinary goroutine's own stack lives — that is a separate,
// runtime-managed, copyable span allocated out of the heap arena — so
// scanning up to this bound is only sound for a scan that itself runs on
// that same OS thread's system stack (see roots.go's use of
// runtime.systemstack), which is what this package's single-mutator model
// assumes happens.
func stackBase() (uintptr, bool) {
	f, err := os.Open("/proc/self/maps")
	if err != nil {
		return 0, false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasSuffix(line, "[stack]") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rng := strings.SplitN(fields[0], "-", 2)
		if len(rng) != 2 {
			continue
		}
		hi, err := strconv.ParseUint(rng[1], 16, 64)
		if err != nil {
			continue
		}
		return uintptr(hi), true
	}
	return 0, false
}
