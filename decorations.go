// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: decorations.go
// Summary: In-memory DecorationStore, anchoring hidden ranges by handle rather than by line number.
// Notes: §9 — a real host anchors ranges in its marker engine so edits shift them automatically;
//        this reference store instead recomputes each handle's range on every mutation, which is
//        the "maintain its own interval tree keyed off change events" alternative §9 allows.

package viewline

import "github.com/google/uuid"

// MemoryDecorationStore is a reference DecorationStore backed by a map of
// uuid-keyed ranges. Handles minted here stay valid until explicitly
// replaced; their ranges move only when the store is told about a document
// edit via AdjustForLinesInserted/AdjustForLinesDeleted, and a deletion that
// covers a whole range drops that range's handle.
type MemoryDecorationStore struct {
	ranges map[DecorationHandle]Range
}

// NewMemoryDecorationStore constructs an empty store.
func NewMemoryDecorationStore() *MemoryDecorationStore {
	return &MemoryDecorationStore{ranges: make(map[DecorationHandle]Range)}
}

func (s *MemoryDecorationStore) DecorationRange(handle DecorationHandle) (Range, bool) {
	r, ok := s.ranges[handle]
	return r, ok
}

// Len reports the number of decorations currently tracked, mainly useful
// for tests asserting that Dispose released everything it held.
func (s *MemoryDecorationStore) Len() int { return len(s.ranges) }

func (s *MemoryDecorationStore) DeltaDecorations(oldHandles []DecorationHandle, newRanges []Range) []DecorationHandle {
	for _, h := range oldHandles {
		delete(s.ranges, h)
	}
	handles := make([]DecorationHandle, len(newRanges))
	for i, r := range newRanges {
		h := DecorationHandle(uuid.NewString())
		s.ranges[h] = r
		handles[i] = h
	}
	return handles
}

// AdjustForLinesInserted shifts every tracked range that starts at or after
// `at` down by count lines, the way a real marker engine re-anchors ranges
// across an insertion so hidden areas keep covering the same logical lines.
func (s *MemoryDecorationStore) AdjustForLinesInserted(at, count int) {
	for h, r := range s.ranges {
		if r.StartLineNumber >= at {
			r.StartLineNumber += count
			r.EndLineNumber += count
		} else if r.EndLineNumber >= at {
			r.EndLineNumber += count
		}
		s.ranges[h] = r
	}
}

// AdjustForLinesDeleted shrinks or shifts every tracked range to account for
// the deletion of input lines [from, to] (1-based, inclusive).
func (s *MemoryDecorationStore) AdjustForLinesDeleted(from, to int) {
	count := to - from + 1
	for h, r := range s.ranges {
		switch {
		case r.StartLineNumber > to:
			r.StartLineNumber -= count
			r.EndLineNumber -= count
		case r.EndLineNumber < from:
			// untouched
		default:
			if r.StartLineNumber < from {
				if r.EndLineNumber > to {
					r.EndLineNumber -= count
				} else {
					r.EndLineNumber = from - 1
				}
			} else {
				r.StartLineNumber = from
				if r.EndLineNumber > to {
					r.EndLineNumber -= count
				} else {
					r.EndLineNumber = from - 1
				}
			}
		}
		if r.EndLineNumber < r.StartLineNumber {
			delete(s.ranges, h)
			continue
		}
		s.ranges[h] = r
	}
}
