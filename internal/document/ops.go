// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package document

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MergeLines joins, within each layer, paths whose end points lie within
// tolerance of each other. Paths are reversed when that allows a join.
func (d *Document) MergeLines(tolerance float64) {
	for id, paths := range d.layers {
		d.layers[id] = mergePaths(paths, tolerance)
	}
}

func mergePaths(paths []Path, tolerance float64) []Path {
	pending := append([]Path(nil), paths...)
	merged := make([]Path, 0, len(paths))

	for len(pending) > 0 {
		cur := pending[0]
		pending = pending[1:]

		for {
			idx := -1
			var joined Path
			for i, p := range pending {
				if joined = join(cur, p, tolerance); joined != nil {
					idx = i
					break
				}
			}
			if idx < 0 {
				break
			}
			cur = joined
			pending = append(pending[:idx], pending[idx+1:]...)
		}
		merged = append(merged, cur)
	}
	return merged
}

// join returns a new path made of a and b when an end point of a touches an
// end point of b, or nil.
func join(a, b Path, tolerance float64) Path {
	near := func(p, q mgl64.Vec2) bool { return p.Sub(q).Len() <= tolerance }
	aStart, aEnd := a[0], a[len(a)-1]
	bStart, bEnd := b[0], b[len(b)-1]

	switch {
	case near(aEnd, bStart):
		return concat(a, b[1:])
	case near(aEnd, bEnd):
		return concat(a, reversed(b)[1:])
	case near(aStart, bEnd):
		return concat(b, a[1:])
	case near(aStart, bStart):
		return concat(reversed(b), a[1:])
	}
	return nil
}

func concat(a, b Path) Path {
	out := make(Path, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func reversed(p Path) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// SortLines reorders the paths of each layer to shorten pen-up travel,
// greedily picking the nearest remaining end point from the origin on.
// Paths may be reversed.
func (d *Document) SortLines() {
	for id, paths := range d.layers {
		d.layers[id] = sortPaths(paths)
	}
}

func sortPaths(paths []Path) []Path {
	pending := append([]Path(nil), paths...)
	sorted := make([]Path, 0, len(paths))
	pos := mgl64.Vec2{}

	for len(pending) > 0 {
		best, flip := 0, false
		bestDist := -1.0
		for i, p := range pending {
			if dist := p[0].Sub(pos).Len(); bestDist < 0 || dist < bestDist {
				best, flip, bestDist = i, false, dist
			}
			if dist := p[len(p)-1].Sub(pos).Len(); dist < bestDist {
				best, flip, bestDist = i, true, dist
			}
		}

		next := pending[best]
		if flip {
			next = reversed(next)
		}
		sorted = append(sorted, next)
		pos = next[len(next)-1]
		pending = append(pending[:best], pending[best+1:]...)
	}
	return sorted
}

// PenUpDistance returns the total travel between consecutive paths of every
// layer, starting from the origin.
func (d *Document) PenUpDistance() float64 {
	total := 0.0
	for _, paths := range d.layers {
		pos := mgl64.Vec2{}
		for _, p := range paths {
			total += p[0].Sub(pos).Len()
			pos = p[len(p)-1]
		}
	}
	return total
}
