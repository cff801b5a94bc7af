// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package workdir scopes the process working directory to a single call.
//
// The working directory is process-wide state. Run must not be entered from
// two goroutines at the same time; callers serialize script loads and
// executions themselves.
package workdir

import (
	"errors"
	"fmt"
	"os"
)

// Run makes dir the current working directory, calls fn, and restores the
// previous working directory when fn returns, fails or panics.
func Run(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to enter directory %s: %w", dir, err)
	}
	defer func() {
		if restoreErr := os.Chdir(prev); restoreErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to restore working directory %s: %w", prev, restoreErr))
		}
	}()

	return fn()
}
