// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package sketch

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/specialistvlad/hclsketch/internal/ctxlog"
	"github.com/specialistvlad/hclsketch/internal/rng"
	"github.com/specialistvlad/hclsketch/internal/workdir"
)

// Stage is a step of a single execution. Stages only ever advance in
// declaration order; Seeded, Finalized and Centered may be skipped.
type Stage int

const (
	NotStarted Stage = iota
	Instantiated
	Seeded
	Drawn
	Finalized
	Centered
	Done
)

func (s Stage) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Instantiated:
		return "instantiated"
	case Seeded:
		return "seeded"
	case Drawn:
		return "drawn"
	case Finalized:
		return "finalized"
	case Centered:
		return "centered"
	case Done:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Execute creates one instance of def and runs it: seed (when seed is not
// nil), draw, finalize (when requested), then center. Instantiation, seeding,
// drawing and finalizing happen with def.HomeDir as working directory.
//
// A nil def, or a definition that yields no instance, returns nil, nil.
// Errors raised by the sketch's Draw or Finalize are returned to the caller.
//
// The returned sketch and its document belong to the caller.
func Execute(ctx context.Context, def *Definition, seed *int64, finalize bool) (Sketch, error) {
	if def == nil {
		return nil, nil
	}

	ctx, logger := ctxlog.With(ctx, "sketch", def.Name, "run_id", uuid.NewString())

	dir := def.HomeDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		dir = cwd
	}

	stage := NotStarted
	advance := func(next Stage) {
		logger.Debug("Sketch execution stage reached.", "from", stage, "to", next)
		stage = next
	}

	var s Sketch
	err := workdir.Run(dir, func() error {
		var err error
		s, err = def.New()
		if err != nil {
			return fmt.Errorf("failed to instantiate sketch %q: %w", def.Name, err)
		}
		if s == nil {
			return nil
		}
		advance(Instantiated)

		if seed != nil {
			seedAll(s, *seed)
			advance(Seeded)
		}

		if err := s.Draw(); err != nil {
			return fmt.Errorf("sketch %q failed while drawing: %w", def.Name, err)
		}
		advance(Drawn)

		if finalize {
			if err := s.Finalize(); err != nil {
				return fmt.Errorf("sketch %q failed while finalizing: %w", def.Name, err)
			}
			advance(Finalized)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s == nil {
		logger.Warn("Sketch definition produced no instance.")
		return nil, nil
	}

	if s.Centered() && Center(s.Document()) {
		advance(Centered)
	}
	advance(Done)

	logger.Info("Sketch executed.", "seeded", seed != nil, "finalized", finalize, "centered", s.Centered())
	return s, nil
}

// seedAll seeds, in order, the instance's primary source, its noise source,
// and the process-wide general and numeric-array sources.
func seedAll(s Sketch, seed int64) {
	s.RandomSeed(seed)
	s.NoiseSeed(seed)
	rng.Seed(seed)
}

// Center translates doc so that the bounding box of its geometry is centered
// on its page. It does nothing, and returns false, when the document has no
// page size or no geometry.
func Center(doc Document) bool {
	if doc == nil {
		return false
	}
	page, ok := doc.PageSize()
	if !ok {
		return false
	}
	bounds, ok := doc.Bounds()
	if !ok {
		return false
	}
	doc.Translate(
		(page.Width-bounds.Width())/2.0-bounds.MinX,
		(page.Height-bounds.Height())/2.0-bounds.MinY,
	)
	return true
}
