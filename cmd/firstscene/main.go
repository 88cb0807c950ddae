// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Firstscene renders a single red cube.
package main

import (
	"os"

	"github.com/gviegas/sceneframe/internal/cli"
	"github.com/gviegas/sceneframe/tutorial"
)

func main() {
	os.Exit(cli.Main("firstscene", os.Args[1:], tutorial.FirstScene))
}
