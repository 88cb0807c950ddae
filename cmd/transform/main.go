// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Transform renders a scaled group of three cubes and an
// axes helper.
package main

import (
	"os"

	"github.com/gviegas/sceneframe/internal/cli"
	"github.com/gviegas/sceneframe/tutorial"
)

func main() {
	os.Exit(cli.Main("transform", os.Args[1:], tutorial.TransformObjects))
}
