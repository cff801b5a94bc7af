// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package rng holds the process-wide randomness sources that sketch scripts
// may draw from besides their own per-instance sources.
//
// There are two sources: a general-purpose one (single values and choices)
// and a numeric-array one (bulk arrays, shuffles). Both are package-level
// mutable state. Seed replaces both and is a process-wide side effect; none
// of the functions in this package are safe for concurrent use.
package rng

import (
	"math/rand/v2"
)

// stream is the PCG stream selector. The general and array sources use
// different streams so that seeding both with the same value does not make
// them produce identical sequences.
const (
	generalStream uint64 = 0x9e3779b97f4a7c15
	arrayStream   uint64 = 0xbf58476d1ce4e5b9
)

var (
	general = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	array   = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
)

// Seed deterministically reseeds both process-wide sources from seed.
// The general source is seeded before the array source.
func Seed(seed int64) {
	general = rand.New(rand.NewPCG(uint64(seed), generalStream))
	array = rand.New(rand.NewPCG(uint64(seed), arrayStream))
}

// IntRange returns an integer in [low, high] from the general source.
func IntRange(low, high int) int {
	if high < low {
		low, high = high, low
	}
	return low + general.IntN(high-low+1)
}

// Choice returns a random index in [0, n) from the general source.
func Choice(n int) int {
	return general.IntN(n)
}

// Uniform returns n values uniformly distributed in [low, high) from the
// array source.
func Uniform(low, high float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = low + (high-low)*array.Float64()
	}
	return out
}

// Normal returns n normally distributed values from the array source.
func Normal(mean, std float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + std*array.NormFloat64()
	}
	return out
}

// Permutation returns a random permutation of [0, n) from the array source.
func Permutation(n int) []int {
	return array.Perm(n)
}
