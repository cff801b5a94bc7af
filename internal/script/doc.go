// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package script loads sketches written as HCL scripts.
//
// A script is run once at load time: its locals blocks are evaluated top to
// bottom and every labelled top-level block is recorded as a declaration.
// The first declaration shaped like a sketch (a `sketch "name"` block with
// one draw block and at most one finalize block) becomes the discovered
// sketch.Definition. Anything else in the file is skipped.
//
// # Example
//
//	locals {
//	  margin = 20
//	}
//
//	sketch "grid" {
//	  page_size = "a5"
//
//	  param "cells" { default = 8 }
//
//	  draw {
//	    rect {
//	      count  = param.cells
//	      x      = local.margin + count.index * 30
//	      y      = local.margin + random(10)
//	      width  = 20
//	      height = 20
//	    }
//	  }
//
//	  finalize {
//	    linesort {}
//	  }
//	}
//
// Drawing statements are evaluated attribute by attribute in source order,
// so a seeded sketch always consumes randomness the same way.
package script
