// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package cli implements the command-line tools that render
// the tutorial scenes.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/gviegas/sceneframe/config"
	"github.com/gviegas/sceneframe/gltf"
	"github.com/gviegas/sceneframe/logging"
	"github.com/gviegas/sceneframe/surface"
	"github.com/gviegas/sceneframe/tutorial"
)

// DefaultSelector is the selector the output surface is
// registered under.
const DefaultSelector = "canvas.webgl"

// Builder assembles a tutorial scene.
type Builder func(context.Context, config.Config, surface.Surface) (*tutorial.Context, error)

// Options are the command-line options of a tool.
type Options struct {
	Out      string
	Config   string
	GLTF     string
	Selector string
	Dev      bool
}

// ParseFlags parses args into Options.
func ParseFlags(name string, args []string, output io.Writer) (Options, error) {
	var o Options
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&o.Out, "out", name+".png", "Output image (.png, .jpg, .gif, .tif or .bmp)")
	flags.StringVar(&o.Config, "config", "", "YAML file overriding the scene parameters")
	flags.StringVar(&o.GLTF, "gltf", "", "Also export the scene to this .gltf or .glb file")
	flags.StringVar(&o.Selector, "surface", DefaultSelector, "Selector of the output surface")
	flags.BoolVar(&o.Dev, "dev", false, "Development mode logging")
	if err := flags.Parse(args); err != nil {
		return o, err
	}
	if flags.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}
	return o, nil
}

// Run builds the scene, renders its only frame into the
// output file and optionally exports it to glTF.
func Run(ctx context.Context, o Options, build Builder) error {
	log, ctx := logging.FromWithFields(ctx, zap.String("surface", o.Selector))
	cfg := config.DefaultConfig()
	if o.Config != "" {
		var err error
		if cfg, err = config.Load(o.Config); err != nil {
			return err
		}
		log.Debug("config loaded", zap.String("path", o.Config))
	}

	f, err := surface.NewFile(o.Out)
	if err != nil {
		return err
	}
	surface.Register(o.Selector, f)
	defer surface.Register(o.Selector, nil)
	s, err := surface.Lookup(o.Selector)
	if err != nil {
		return err
	}

	c, err := build(ctx, cfg, s)
	if err != nil {
		return err
	}
	if err = c.Render(); err != nil {
		return err
	}
	log.Info("frame written",
		zap.String("path", o.Out),
		zap.Stringer("format", f.Format()),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height))

	if o.GLTF != "" {
		if err = Export(c, o.GLTF); err != nil {
			return err
		}
		log.Info("scene exported", zap.String("path", o.GLTF))
	}
	return nil
}

// Export writes the scene of c to path.
// A .glb extension selects the binary container; any other
// extension writes JSON with an embedded buffer.
func Export(c *tutorial.Context, path string) (err error) {
	doc, bin, err := gltf.Export(c.Scene)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(file)
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.EncodeGLB(w, doc, bin)
	} else {
		gltf.Embed(doc, bin)
		err = gltf.Encode(w, doc)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

// Main runs the tool called name and returns its exit
// status.
func Main(name string, args []string, build Builder) int {
	o, err := ParseFlags(name, args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	log := logging.Init(o.Dev, os.Stderr)
	defer log.Sync()
	ctx := logging.Context(context.Background(), log)
	if err = Run(ctx, o, build); err != nil {
		log.Error(name+" failed", zap.Error(err))
		return 1
	}
	return 0
}
