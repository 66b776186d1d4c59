// swatch - extract the dominant colours of an image
//
// swatch clusters an image's pixels with k-means and prints the most
// dominant colours, optionally as a PNG swatch and a text report.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
