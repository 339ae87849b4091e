// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package wrap

import (
	"testing"

	"github.com/framegrace/viewline"
)

func TestDefaultFactory_FitsWithoutWrapping(t *testing.T) {
	m := DefaultFactory{}.CreateLineMapping("short", 4, 40, 2, viewline.WrappingIndentNone)
	if m != nil {
		t.Fatalf("CreateLineMapping() = %+v, want nil (line fits)", m)
	}
}

// The spec.md S2 worked example: "abcdefghij" at wrappingColumn=4 must break
// at rune offsets {0,4,8}.
func TestDefaultFactory_S2Breaks(t *testing.T) {
	m := DefaultFactory{}.CreateLineMapping("abcdefghij", 4, 4, 2, viewline.WrappingIndentNone)
	if m == nil {
		t.Fatal("CreateLineMapping() = nil, want a mapping (line exceeds wrappingColumn)")
	}
	if got := m.OutputLineCount(); got != 3 {
		t.Fatalf("OutputLineCount() = %d, want 3", got)
	}

	wantOffsets := []int{0, 4, 8}
	for i, want := range wantOffsets {
		if got := m.InputOffsetOfOutputPosition(i, 0); got != want {
			t.Errorf("InputOffsetOfOutputPosition(%d, 0) = %d, want %d", i, got, want)
		}
	}
}

func TestDefaultFactory_TabExpansion(t *testing.T) {
	// Each tab at tabSize=4 fills an entire wrappingColumn=4 row by itself,
	// so "\t\tx" breaks after every tab: three rows total.
	m := DefaultFactory{}.CreateLineMapping("\t\tx", 4, 4, 2, viewline.WrappingIndentNone)
	if m == nil {
		t.Fatal("CreateLineMapping() = nil, want a mapping (two tabs exceed wrappingColumn=4)")
	}
	if got := m.OutputLineCount(); got != 3 {
		t.Fatalf("OutputLineCount() = %d, want 3", got)
	}
}

func TestDefaultFactory_FullWidthRuneCost(t *testing.T) {
	// Two full-width runes at columnsForFullWidthChar=2 cost 4 columns total,
	// exceeding wrappingColumn=3 after the first.
	m := DefaultFactory{}.CreateLineMapping("中文", 4, 3, 2, viewline.WrappingIndentNone)
	if m == nil {
		t.Fatal("CreateLineMapping() = nil, want a mapping (full-width runes exceed wrappingColumn=3)")
	}
	if got := m.OutputLineCount(); got != 2 {
		t.Fatalf("OutputLineCount() = %d, want 2", got)
	}
}

func TestDefaultFactory_WrappingIndentPolicies(t *testing.T) {
	text := "    " + "abcdefghijklmno" // 4-space leading indent, long enough to wrap

	none := DefaultFactory{}.CreateLineMapping(text, 4, 8, 2, viewline.WrappingIndentNone)
	if got := none.WrappedLinesIndent(); got != "" {
		t.Errorf("WrappingIndentNone indent = %q, want empty", got)
	}

	same := DefaultFactory{}.CreateLineMapping(text, 4, 8, 2, viewline.WrappingIndentSame)
	if got := same.WrappedLinesIndent(); got != "    " {
		t.Errorf("WrappingIndentSame indent = %q, want %q", got, "    ")
	}

	deeper := DefaultFactory{}.CreateLineMapping(text, 4, 8, 2, viewline.WrappingIndentIndent)
	if got := deeper.WrappedLinesIndent(); len(got) <= len("    ") {
		t.Errorf("WrappingIndentIndent indent = %q, want longer than base indent %q", got, "    ")
	}
}

func TestMapping_OutputPositionOfInputOffset_RoundTrips(t *testing.T) {
	m := DefaultFactory{}.CreateLineMapping("abcdefghij", 4, 4, 2, viewline.WrappingIndentNone)
	for offset := 0; offset < 10; offset++ {
		pos := m.OutputPositionOfInputOffset(offset)
		back := m.InputOffsetOfOutputPosition(pos.OutputLineIndex, pos.OutputOffset)
		if back != offset {
			t.Errorf("round trip for offset %d: OutputPositionOfInputOffset -> %+v -> InputOffsetOfOutputPosition -> %d", offset, pos, back)
		}
	}
}
