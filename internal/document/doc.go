// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package document is the vector geometry produced by a sketch: layers of
// polylines in CSS pixels, an optional page size, and the handful of
// whole-document operations (transforms, merging, sorting, SVG output) that
// sketches and the executor need.
//
// A Document has a single owner. The executor hands the finished, centered
// document to its caller and never touches it again.
package document
