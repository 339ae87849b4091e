// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewline

import "testing"

// stubModel is a single-line TextModel used to exercise SplitLine in
// isolation from SimpleModel.
type stubModel struct {
	line string
}

func (m *stubModel) VersionID() int64          { return 1 }
func (m *stubModel) LinesContent() []string    { return []string{m.line} }
func (m *stubModel) LineContent(int) string    { return m.line }
func (m *stubModel) LineMinColumn(int) int     { return 1 }
func (m *stubModel) LineMaxColumn(int) int     { return len([]rune(m.line)) + 1 }
func (m *stubModel) LineTokens(int, bool) TokenStream { return nil }
func (m *stubModel) LineCount() int            { return 1 }

// s2Mapping hand-codes the breaks {0,4,8} spec.md's worked example (S2)
// produces for "abcdefghij" at wrappingColumn=4, independent of any
// LineMapperFactory implementation's own arithmetic.
type s2Mapping struct {
	breaks []int
	total  int
	indent string
}

func (s *s2Mapping) OutputLineCount() int       { return len(s.breaks) }
func (s *s2Mapping) WrappedLinesIndent() string { return s.indent }

func (s *s2Mapping) InputOffsetOfOutputPosition(outputLineIndex, outputOffset int) int {
	limit := s.total
	if outputLineIndex+1 < len(s.breaks) {
		limit = s.breaks[outputLineIndex+1]
	}
	off := s.breaks[outputLineIndex] + outputOffset
	if off > limit {
		off = limit
	}
	return off
}

func (s *s2Mapping) OutputPositionOfInputOffset(inputOffset int) OutputPosition {
	i := 0
	for j := 1; j < len(s.breaks); j++ {
		if s.breaks[j] <= inputOffset {
			i = j
		} else {
			break
		}
	}
	return OutputPosition{OutputLineIndex: i, OutputOffset: inputOffset - s.breaks[i]}
}

func newS2() (*WrappedSplitLine, *stubModel) {
	mapper := &s2Mapping{breaks: []int{0, 4, 8}, total: 10, indent: "  "}
	return NewWrappedSplitLine(mapper), &stubModel{line: "abcdefghij"}
}

func TestWrappedSplitLine_S2_OutputLineCount(t *testing.T) {
	s, _ := newS2()
	if got := s.OutputLineCount(); got != 3 {
		t.Fatalf("OutputLineCount() = %d, want 3", got)
	}
}

func TestWrappedSplitLine_S2_OutputLineContent(t *testing.T) {
	s, model := newS2()
	tests := []struct {
		row  int
		want string
	}{
		{0, "abcd"},
		{1, "  efgh"},
		{2, "  ij"},
	}
	for _, tc := range tests {
		if got := s.OutputLineContent(model, 1, tc.row); got != tc.want {
			t.Errorf("OutputLineContent(row=%d) = %q, want %q", tc.row, got, tc.want)
		}
	}
}

func TestWrappedSplitLine_S2_MinMaxColumn(t *testing.T) {
	s, model := newS2()
	if got := s.OutputLineMinColumn(0); got != 1 {
		t.Errorf("OutputLineMinColumn(0) = %d, want 1", got)
	}
	if got := s.OutputLineMinColumn(1); got != 3 {
		t.Errorf("OutputLineMinColumn(1) = %d, want 3 (len(indent)+1)", got)
	}
	if got := s.OutputLineMaxColumn(model, 1, 0); got != 5 {
		t.Errorf("OutputLineMaxColumn(row=0) = %d, want 5", got)
	}
	if got := s.OutputLineMaxColumn(model, 1, 1); got != 7 {
		t.Errorf("OutputLineMaxColumn(row=1) = %d, want 7", got)
	}
}

func TestWrappedSplitLine_S2_InputColumnOfOutputPosition(t *testing.T) {
	s, _ := newS2()
	// Row 0, output column 1 is input column 1 ('a').
	if got := s.InputColumnOfOutputPosition(0, 1); got != 1 {
		t.Errorf("InputColumnOfOutputPosition(0,1) = %d, want 1", got)
	}
	// Row 1 starts with a 2-rune indent; output column 3 is the first real
	// character on that row, input offset 4 -> column 5 ('e').
	if got := s.InputColumnOfOutputPosition(1, 3); got != 5 {
		t.Errorf("InputColumnOfOutputPosition(1,3) = %d, want 5", got)
	}
	// Row 2, output column 3 -> input offset 8 -> column 9 ('i').
	if got := s.InputColumnOfOutputPosition(2, 3); got != 9 {
		t.Errorf("InputColumnOfOutputPosition(2,3) = %d, want 9", got)
	}
}

func TestWrappedSplitLine_S2_OutputPositionOfInputPosition_RoundTrips(t *testing.T) {
	s, _ := newS2()
	// Input column 5 ('e') should land on row 1 (deltaLineNumber+1), output
	// column 3 - the exact inverse of the InputColumnOfOutputPosition case
	// above.
	pos := s.OutputPositionOfInputPosition(10, 5)
	if pos.LineNumber != 11 || pos.Column != 3 {
		t.Errorf("OutputPositionOfInputPosition(10,5) = %+v, want {11 3}", pos)
	}
}

func TestIdentitySplitLine_Basic(t *testing.T) {
	s := NewIdentitySplitLine()
	model := &stubModel{line: "hello"}
	if got := s.OutputLineCount(); got != 1 {
		t.Fatalf("OutputLineCount() = %d, want 1", got)
	}
	if got := s.OutputLineContent(model, 1, 0); got != "hello" {
		t.Errorf("OutputLineContent() = %q, want %q", got, "hello")
	}
	if got := s.OutputLineMaxColumn(model, 1, 0); got != 6 {
		t.Errorf("OutputLineMaxColumn() = %d, want 6", got)
	}
	s.SetVisible(false)
	if got := s.OutputLineCount(); got != 0 {
		t.Errorf("OutputLineCount() after hide = %d, want 0", got)
	}
}

// A hidden line's content queries panic rather than returning stale or
// zero-value data — the collection's own public API never reaches this
// path (§4.4), so tripping it is a caller bug worth crashing loudly on.
func TestIdentitySplitLine_HiddenAccessPanics(t *testing.T) {
	s := NewIdentitySplitLine()
	s.SetVisible(false)
	model := &stubModel{line: "hello"}

	defer func() {
		if recover() == nil {
			t.Error("OutputLineContent() on a hidden line did not panic")
		}
	}()
	s.OutputLineContent(model, 1, 0)
}

func TestWrappedSplitLine_HiddenAccessPanics(t *testing.T) {
	s, model := newS2()
	s.SetVisible(false)

	defer func() {
		if recover() == nil {
			t.Error("OutputLineContent() on a hidden line did not panic")
		}
	}()
	s.OutputLineContent(model, 1, 0)
}
