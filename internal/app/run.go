package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/specialistvlad/hclsketch/internal/config"
	"github.com/specialistvlad/hclsketch/internal/console"
	"github.com/specialistvlad/hclsketch/internal/ctxlog"
	"github.com/specialistvlad/hclsketch/internal/document"
	"github.com/specialistvlad/hclsketch/internal/fsutil"
	"github.com/specialistvlad/hclsketch/internal/sketch"
)

// outputDirName is the default output directory, next to the script.
const outputDirName = "output"

// ErrNoSketch is returned when the script declares no sketch or fails to
// load. Load failures have already been reported on the error writer.
var ErrNoSketch = errors.New("no sketch could be loaded")

// svgSource is a sketch whose drawing can be written as SVG.
type svgSource interface {
	Doc() *document.Document
}

// Result describes the files written by a run.
type Result struct {
	OutputPath string
	ConfigPath string
}

// Run executes the main application logic based on the app's configuration.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = a.Context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("App.Run method started.")

	if a.config.List {
		return &Result{}, a.list(ctx)
	}

	def := a.loader.Load(ctx, a.config.SketchPath)
	if def == nil {
		return nil, fmt.Errorf("%w from %s", ErrNoSketch, a.config.SketchPath)
	}

	if a.config.ConfigName != "" {
		path, err := resolveParamSet(def.Path, a.config.ConfigName)
		if err != nil {
			return nil, err
		}
		ps, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		def.SetParamSet(ps)
		logger.Info("Param set applied.", "path", path, "params", ps.Names())
	}

	s, err := sketch.Execute(ctx, def, a.config.Seed, a.config.Finalize)
	if err != nil {
		return nil, fmt.Errorf("execution failed: %w", err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: sketch %q produced no instance", ErrNoSketch, def.Name)
	}

	src, ok := s.(svgSource)
	if !ok {
		return nil, fmt.Errorf("sketch %q cannot be written as SVG", def.Name)
	}
	doc := src.Doc()

	res := &Result{}
	if res.OutputPath, err = a.writeSVG(def, doc); err != nil {
		return nil, err
	}
	logger.Info("Sketch saved.", "path", res.OutputPath, "paths", doc.Len(), "pen_up_distance", doc.PenUpDistance())
	console.PrintInfo(a.outW, "Saved: ", res.OutputPath)

	if a.config.SaveConfig {
		if res.ConfigPath, err = a.saveParams(def, s); err != nil {
			return nil, err
		}
		console.PrintInfo(a.outW, "Config saved: ", res.ConfigPath)
	}

	logger.Debug("App.Run method finished.")
	return res, nil
}

// list prints the sketch scripts found below the sketch path.
func (a *App) list(ctx context.Context) error {
	sketches, err := fsutil.FindSketches(a.config.SketchPath)
	if err != nil {
		return fmt.Errorf("failed to list sketches: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Sketches found.", "count", len(sketches))
	for _, path := range sketches {
		console.PrintInfo(a.outW, fsutil.CanonicalName(path), "  "+path)
	}
	return nil
}

// outputName is the base name of a rendered sketch, with the seed if any.
func (a *App) outputName(def *sketch.Definition) string {
	name := fsutil.CanonicalName(def.Path)
	if a.config.Seed != nil {
		name += "_s" + strconv.FormatInt(*a.config.Seed, 10)
	}
	return name
}

func (a *App) writeSVG(def *sketch.Definition, doc *document.Document) (string, error) {
	dir := a.config.OutputDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(def.Path), outputDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path, err := fsutil.FindUniquePath(a.outputName(def)+".svg", dir, false)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	if err := doc.WriteSVG(f); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (a *App) saveParams(def *sketch.Definition, s sketch.Sketch) (string, error) {
	getter, ok := s.(sketch.ParamGetter)
	if !ok {
		return "", fmt.Errorf("sketch %q does not expose its parameters", def.Name)
	}
	dir, err := fsutil.ConfigPath(def.Path)
	if err != nil {
		return "", err
	}
	path, err := fsutil.FindUniquePath(fsutil.CanonicalName(def.Path)+config.Ext, dir, true)
	if err != nil {
		return "", err
	}
	if err := config.Save(path, getter.Params()); err != nil {
		return "", err
	}
	return path, nil
}

// resolveParamSet finds a param set given by name, in the sketch's config
// directory, or by path.
func resolveParamSet(sketchPath, name string) (string, error) {
	if filepath.Base(name) != name {
		return name, nil
	}
	dir, err := fsutil.ConfigPath(sketchPath)
	if err != nil {
		return "", err
	}
	if filepath.Ext(name) == "" {
		name += config.Ext
	}
	return filepath.Join(dir, name), nil
}
