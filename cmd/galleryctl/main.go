// Package main is the entry point for galleryctl, the lineup tool.
package main

import (
	"os"

	"github.com/Faultbox/plastic-gallery/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
