// Copyright 2026 The assetlib Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Command alib-pack bundles every file under a directory into a single
// asset library, keyed by slash-separated path.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/assetlib/assetlib"
)

var verbose = flag.Bool("v", false, "log layout details to stderr")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-v] <directory> <output>\n", os.Args[0])
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}
	dir, output := flag.Arg(0), flag.Arg(1)

	var opts []assetlib.BuilderOption
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, assetlib.WithBuilderLogger(logger))
	}
	builder := assetlib.NewBuilder(opts...)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := filepath.ToSlash(path)
		fmt.Printf("found asset: %s\n", name)
		builder.Insert(assetlib.FileAsset(name, path))
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error walking %s: %s\n", dir, err)
		os.Exit(1)
	}

	f, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %s\n", output, err)
		os.Exit(1)
	}
	if err := builder.Build(f); err != nil {
		_ = f.Close()
		fmt.Fprintf(os.Stderr, "error building library: %s\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "error closing %s: %s\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d assets to %s\n", builder.Len(), output)
}
