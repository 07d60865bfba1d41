// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gcdemo drives a few allocation/collection cycles against the gc
// package and reports what survived, to exercise the collector outside of
// its own test suite.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"gcrt/gc"
)

type node struct {
	name string
	next gc.Handle[node]
}

func main() {
	pretty := term.IsTerminal(int(os.Stdout.Fd()))

	gc.SetThreshold(1 << 16)

	var dropped []string
	finalize := func(n *node) {
		dropped = append(dropped, n.name)
	}

	keep := gc.NewFinalized(node{name: "kept"}, finalize)
	keepAny := keep.Any()
	gc.Debug.KeepAlive(&keepAny)

	for i := 0; i < 64; i++ {
		gc.NewFinalized(node{name: fmt.Sprintf("scratch-%d", i)}, finalize)
	}

	gc.Collect()

	report(pretty, keep, dropped)

	if len(os.Args) > 1 {
		dumpProfile(os.Args[1])
	}
}

func report(pretty bool, keep gc.Handle[node], dropped []string) {
	row := func(label, value string) {
		if pretty {
			fmt.Printf("%-16s %s\n", label, value)
		} else {
			fmt.Printf("%s=%s\n", label, value)
		}
	}

	row("kept.name", keep.Deref().name)
	row("kept.survived", fmt.Sprintf("%v", gc.Debug.IsBlack(keep.Any())))
	row("dropped", fmt.Sprintf("%d", len(dropped)))
}

func dumpProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "profile:", err)
		return
	}
	defer f.Close()
	if err := gc.DumpProfile(f); err != nil {
		fmt.Fprintln(os.Stderr, "profile:", err)
	}
}
