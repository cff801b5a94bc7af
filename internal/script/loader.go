// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/hclsketch/internal/console"
	"github.com/specialistvlad/hclsketch/internal/ctxlog"
	"github.com/specialistvlad/hclsketch/internal/sketch"
	"github.com/specialistvlad/hclsketch/internal/workdir"
)

// DirScript is the script loaded when a directory is given.
const DirScript = "sketch.hcl"

// loadFailedMessage follows the diagnostics of a script that failed to load.
const loadFailedMessage = "Could not load script due to previous error."

// diagWidth is the wrap width of diagnostics written to the error channel.
const diagWidth = 78

// Loader discovers sketch definitions in scripts.
type Loader struct {
	// ErrW receives the diagnostics of scripts that fail to load.
	ErrW io.Writer
}

// NewLoader creates a loader reporting to errW.
func NewLoader(errW io.Writer) *Loader {
	return &Loader{ErrW: errW}
}

// Load runs the script at path and returns the first sketch it declares.
//
// The script runs with its directory as working directory, so files it
// references resolve relative to it. If path is a directory, the script
// DirScript inside it is loaded. Load returns nil when the script declares
// no sketch, and when it fails to load; in that case the failure has been
// reported on ErrW.
func (l *Loader) Load(ctx context.Context, path string) *sketch.Definition {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		l.report(nil, nil, err)
		return nil
	}
	dir, file := filepath.Dir(abs), abs
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		dir, file = abs, filepath.Join(abs, DirScript)
	}
	logger.Debug("Loading script.", "path", file, "dir", dir)

	parser := hclparse.NewParser()
	var typ *sketchType
	var diags hcl.Diagnostics

	err = workdir.Run(dir, func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic while running script %s: %v", file, r)
			}
		}()

		prog, d := runProgram(parser, file)
		diags = append(diags, d...)
		if d.HasErrors() {
			return nil
		}

		for _, decl := range prog.decls {
			ok, reason := decl.conforms()
			if !ok {
				logger.Debug("Skipping declaration.", "kind", decl.Kind, "name", decl.Name, "reason", reason)
				continue
			}
			t, d := compileSketch(prog, decl)
			diags = append(diags, d...)
			typ = t
			return nil
		}
		return nil
	})
	if err != nil || diags.HasErrors() {
		l.report(parser, diags, err)
		return nil
	}
	if typ == nil {
		logger.Debug("No sketch found in script.", "path", file)
		return nil
	}

	def := sketch.NewDefinition(typ.name, func() (sketch.Sketch, error) {
		return newSketch(typ), nil
	})
	def.Path = file
	def.AttachHomeDir(dir)
	logger.Debug("Sketch discovered.", "name", typ.name, "params", len(typ.params))
	return def
}

// report writes a load failure to the error channel.
func (l *Loader) report(parser *hclparse.Parser, diags hcl.Diagnostics, err error) {
	if l.ErrW == nil {
		return
	}
	if len(diags) > 0 && parser != nil {
		wr := hcl.NewDiagnosticTextWriter(l.ErrW, parser.Files(), diagWidth, false)
		if werr := wr.WriteDiagnostics(diags); werr != nil {
			fmt.Fprintln(l.ErrW, diags.Error())
		}
	}
	if err != nil {
		fmt.Fprintln(l.ErrW, err)
	}
	console.PrintError(l.ErrW, loadFailedMessage, "")
}
