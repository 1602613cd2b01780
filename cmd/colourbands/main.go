// colourbands - reduce images to stacks of solid colour bands
//
// colourbands averages every row of an image, merges rows of similar colour
// into bands, and renders those bands back out at any resolution.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/colourbands/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
