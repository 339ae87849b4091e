// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: errors.go
// Summary: Error kinds surfaced by the view-line layer.
// Usage: Returned by SplitLinesCollection queries; see §7 of the design.

package viewline

import (
	"errors"
	"fmt"
)

// ErrStaleModel is returned when a query runs against a collection that has
// not yet been reconciled to the text model's current version. The caller
// forgot to deliver a change event before querying.
var ErrStaleModel = errors.New("viewline: stale model version")

// ErrOutOfRange is returned when a query names an output or input line
// number outside the collection's current bounds and §4.4 does not specify
// clamping for that call.
var ErrOutOfRange = errors.New("viewline: line number out of range")

func staleModelError(have, want int64) error {
	return fmt.Errorf("%w: model at v%d, collection reconciled to v%d", ErrStaleModel, have, want)
}

func outOfRangeError(what string, n int) error {
	return fmt.Errorf("%w: %s %d", ErrOutOfRange, what, n)
}
