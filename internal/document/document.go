// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package document

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultLayer is the layer used when a drawing statement does not name one.
const DefaultLayer = 1

// Size is a page size in CSS pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Path is an open or closed polyline. A closed path repeats its first point.
type Path []mgl64.Vec2

// Document accumulates paths per layer.
type Document struct {
	pageSize *Size
	layers   map[int][]Path
}

// New creates an empty document with no page size.
func New() *Document {
	return &Document{layers: make(map[int][]Path)}
}

// SetPageSize sets the page size.
func (d *Document) SetPageSize(s Size) {
	d.pageSize = &s
}

// PageSize returns the page size and whether one is defined.
func (d *Document) PageSize() (Size, bool) {
	if d.pageSize == nil {
		return Size{}, false
	}
	return *d.pageSize, true
}

// Add appends a path to a layer. Empty paths are ignored.
func (d *Document) Add(layer int, p Path) {
	if len(p) == 0 {
		return
	}
	d.layers[layer] = append(d.layers[layer], p)
}

// LayerIDs returns the ids of all non-empty layers in ascending order.
func (d *Document) LayerIDs() []int {
	ids := make([]int, 0, len(d.layers))
	for id, paths := range d.layers {
		if len(paths) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Paths returns the paths of one layer.
func (d *Document) Paths(layer int) []Path {
	return d.layers[layer]
}

// Len returns the total number of paths.
func (d *Document) Len() int {
	n := 0
	for _, paths := range d.layers {
		n += len(paths)
	}
	return n
}

// Bounds returns the bounding box of all geometry, or false when the
// document is empty.
func (d *Document) Bounds() (Rect, bool) {
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	found := false
	for _, paths := range d.layers {
		for _, p := range paths {
			for _, pt := range p {
				r.MinX = math.Min(r.MinX, pt[0])
				r.MinY = math.Min(r.MinY, pt[1])
				r.MaxX = math.Max(r.MaxX, pt[0])
				r.MaxY = math.Max(r.MaxY, pt[1])
				found = true
			}
		}
	}
	if !found {
		return Rect{}, false
	}
	return r, true
}

// Translate moves every point by (dx, dy). Coordinates are added directly
// rather than through a matrix so that translation is exact.
func (d *Document) Translate(dx, dy float64) {
	d.each(func(pt mgl64.Vec2) mgl64.Vec2 {
		return mgl64.Vec2{pt[0] + dx, pt[1] + dy}
	})
}

// Scale scales every point about the origin.
func (d *Document) Scale(sx, sy float64) {
	d.Transform(mgl64.Scale2D(sx, sy))
}

// Rotate rotates every point about the origin by degrees (clockwise in
// screen coordinates, where y grows downwards).
func (d *Document) Rotate(degrees float64) {
	d.Transform(mgl64.HomogRotate2D(mgl64.DegToRad(degrees)))
}

// Transform applies a homogeneous 2D transform to every point.
func (d *Document) Transform(m mgl64.Mat3) {
	d.each(func(pt mgl64.Vec2) mgl64.Vec2 {
		return Apply(m, pt)
	})
}

func (d *Document) each(fn func(mgl64.Vec2) mgl64.Vec2) {
	for _, paths := range d.layers {
		for _, p := range paths {
			for i := range p {
				p[i] = fn(p[i])
			}
		}
	}
}

// Apply transforms a single point with a homogeneous 2D matrix.
func Apply(m mgl64.Mat3, pt mgl64.Vec2) mgl64.Vec2 {
	return m.Mul3x1(pt.Vec3(1)).Vec2()
}
