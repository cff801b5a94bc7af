// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package sketch defines what a sketch is to the rest of the program and how
// one is run.
//
// # Core Concepts
//
//   - Sketch: the capability contract every sketch instance satisfies. It can
//     be seeded, it draws into a Document, it can finalize, and it says
//     whether its output should be centered on the page.
//
//   - Definition: a discovered sketch type. It carries a no-argument
//     constructor and the directory the sketch was loaded from, so that every
//     later execution runs from the same place without resolving the origin
//     again.
//
//   - Execute: the deterministic executor. One call creates one instance,
//     seeds it, draws, optionally finalizes and centers. The instance is
//     single-use and its ownership passes to the caller.
package sketch
