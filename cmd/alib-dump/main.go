// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command alib-dump lists the contents of an asset library.
package main

import (
	"fmt"
	"os"

	"github.com/assetlib/assetlib"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <library>\n", os.Args[0])
		os.Exit(2)
	}

	lib, err := assetlib.OpenFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening %s: %s\n", os.Args[1], err)
		os.Exit(1)
	}
	defer func() {
		_ = lib.Close()
	}()

	for _, e := range lib.Entries() {
		fmt.Printf("asset %s: %d bytes\n", e.ID, e.Size)
	}
	fmt.Printf("%d assets\n", lib.Len())
}
