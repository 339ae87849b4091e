// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: collection.go
// Summary: Aggregate over all input lines: wrapping, hiding, position translation (§4.4).
//
// Architecture:
//
//	SplitLinesCollection keeps one SplitLine per input line and a
//	PrefixSumComputer over their effective output counts, the same shape the
//	teacher's PhysicalLineIndex keeps over its perLine/prefixSum pair. Where
//	PhysicalLineIndex recomputes counts with pure arithmetic on every Build(),
//	this collection rebuilds SplitLines through the LineMapperFactory because
//	wrap points (unlike a fixed terminal width) can fall anywhere and must be
//	cached per line rather than derived on the fly.

package viewline

import "sort"

// SplitLinesCollection is the aggregate line-layer described in §3/§4.4.
type SplitLinesCollection struct {
	model       TextModel
	factory     LineMapperFactory
	decorations DecorationStore
	emit        Emitter

	tabSize                 int
	wrappingColumn          int
	columnsForFullWidthChar int
	wrappingIndent          WrappingIndent

	lines     []SplitLine
	prefixSum *PrefixSumComputer

	hiddenHandles []DecorationHandle

	validModelVersionID int64
}

// New constructs a collection reconciled to model's current version. All
// input lines start visible.
func New(model TextModel, factory LineMapperFactory, decorations DecorationStore, emit Emitter,
	tabSize, wrappingColumn, columnsForFullWidthChar int, wrappingIndent WrappingIndent) *SplitLinesCollection {
	c := &SplitLinesCollection{
		model:                   model,
		factory:                 factory,
		decorations:             decorations,
		emit:                    emit,
		tabSize:                 tabSize,
		wrappingColumn:          wrappingColumn,
		columnsForFullWidthChar: columnsForFullWidthChar,
		wrappingIndent:          wrappingIndent,
	}
	c.reconstruct()
	c.validModelVersionID = model.VersionID()
	return c
}

// Dispose releases the collection's decoration handles in one batch.
func (c *SplitLinesCollection) Dispose() {
	if len(c.hiddenHandles) > 0 {
		c.decorations.DeltaDecorations(c.hiddenHandles, nil)
		c.hiddenHandles = nil
	}
}

func (c *SplitLinesCollection) buildSplitLine(text string) SplitLine {
	mapping := c.factory.CreateLineMapping(text, c.tabSize, c.wrappingColumn, c.columnsForFullWidthChar, c.wrappingIndent)
	if mapping == nil {
		return NewIdentitySplitLine()
	}
	return NewWrappedSplitLine(mapping)
}

// reconstruct rebuilds every SplitLine and the prefix sum from scratch,
// resetting visibility to true (§9: config changes are all-or-nothing per
// line, never an incremental reflow).
func (c *SplitLinesCollection) reconstruct() {
	if len(c.hiddenHandles) > 0 {
		c.decorations.DeltaDecorations(c.hiddenHandles, nil)
		c.hiddenHandles = nil
	}
	texts := c.model.LinesContent()
	lines := make([]SplitLine, len(texts))
	counts := make([]int, len(texts))
	for i, t := range texts {
		sl := c.buildSplitLine(t)
		lines[i] = sl
		counts[i] = sl.OutputLineCount()
	}
	c.lines = lines
	c.prefixSum = NewPrefixSumComputer(counts)
}

func (c *SplitLinesCollection) checkVersion() error {
	if have := c.model.VersionID(); have != c.validModelVersionID {
		return staleModelError(have, c.validModelVersionID)
	}
	return nil
}

func (c *SplitLinesCollection) fireEvent(name EventName, payload any) {
	if c.emit != nil {
		c.emit(name, payload)
	}
}

// deltaLineNumberFor returns the 1-based output line number assigned to the
// first output row of the input line at 0-based index idx.
func (c *SplitLinesCollection) deltaLineNumberFor(idx int) int {
	if idx == 0 {
		return 1
	}
	return 1 + c.prefixSum.GetAccumulatedValue(idx-1)
}

// --- Visibility ---------------------------------------------------------

func mergeRanges(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartLineNumber < sorted[j].StartLineNumber })

	merged := make([]Range, 0, len(sorted))
	cur := sorted[0]
	for _, r := range sorted[1:] {
		if r.StartLineNumber <= cur.EndLineNumber+1 {
			if r.EndLineNumber > cur.EndLineNumber {
				cur.EndLineNumber = r.EndLineNumber
			}
			continue
		}
		merged = append(merged, cur)
		cur = r
	}
	merged = append(merged, cur)
	return merged
}

func containsLine(ranges []Range, lineNumber int) bool {
	for _, r := range ranges {
		if lineNumber >= r.StartLineNumber && lineNumber <= r.EndLineNumber {
			return true
		}
	}
	return false
}

// currentHiddenRanges resolves the collection's decoration handles to their
// present-day input-line ranges (§9: anchors track edits between calls).
func (c *SplitLinesCollection) currentHiddenRanges() []Range {
	if len(c.hiddenHandles) == 0 {
		return nil
	}
	out := make([]Range, 0, len(c.hiddenHandles))
	for _, h := range c.hiddenHandles {
		if r, ok := c.decorations.DecorationRange(h); ok {
			out = append(out, r)
		}
	}
	return out
}

// SetHiddenAreas validates and reduces ranges, re-anchors them in the
// decoration store, applies visibility to every input line, and emits one
// flush event when emit is true (§4.4).
func (c *SplitLinesCollection) SetHiddenAreas(ranges []Range, emit bool) error {
	if err := c.checkVersion(); err != nil {
		return err
	}
	n := len(c.lines)
	valid := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.StartLineNumber < 1 {
			r.StartLineNumber = 1
		}
		if r.EndLineNumber > n {
			r.EndLineNumber = n
		}
		if r.StartLineNumber > r.EndLineNumber {
			continue
		}
		valid = append(valid, r)
	}
	merged := mergeRanges(valid)
	c.hiddenHandles = c.decorations.DeltaDecorations(c.hiddenHandles, merged)

	cursor := 0
	for i, sl := range c.lines {
		lineNumber := i + 1
		for cursor < len(merged) && lineNumber > merged[cursor].EndLineNumber {
			cursor++
		}
		hidden := cursor < len(merged) && lineNumber >= merged[cursor].StartLineNumber
		visible := !hidden
		if sl.Visible() != visible {
			sl.SetVisible(visible)
			c.prefixSum.ChangeValue(i, sl.OutputLineCount())
		}
	}
	if emit {
		c.fireEvent(EventModelFlushed, nil)
	}
	return nil
}

// --- Configuration -------------------------------------------------------

// SetTabSize updates the tab size, triggering full reconstruction unless
// the value is unchanged.
func (c *SplitLinesCollection) SetTabSize(n int, emit bool) bool {
	if n == c.tabSize {
		return false
	}
	c.tabSize = n
	c.reconstruct()
	if emit {
		c.fireEvent(EventModelFlushed, nil)
	}
	return true
}

// SetWrappingColumn updates the wrapping column and full-width char cost.
func (c *SplitLinesCollection) SetWrappingColumn(wrappingColumn, columnsForFullWidthChar int, emit bool) bool {
	if wrappingColumn == c.wrappingColumn && columnsForFullWidthChar == c.columnsForFullWidthChar {
		return false
	}
	c.wrappingColumn = wrappingColumn
	c.columnsForFullWidthChar = columnsForFullWidthChar
	c.reconstruct()
	if emit {
		c.fireEvent(EventModelFlushed, nil)
	}
	return true
}

// SetWrappingIndent updates the hanging-indent policy.
func (c *SplitLinesCollection) SetWrappingIndent(w WrappingIndent, emit bool) bool {
	if w == c.wrappingIndent {
		return false
	}
	c.wrappingIndent = w
	c.reconstruct()
	if emit {
		c.fireEvent(EventModelFlushed, nil)
	}
	return true
}

// --- Document-change sinks ------------------------------------------------

// OnModelFlushed unconditionally reconstructs the collection. Events with a
// version at or below the last reconciled one are idempotently discarded.
func (c *SplitLinesCollection) OnModelFlushed(versionID int64) {
	if versionID <= c.validModelVersionID {
		return
	}
	c.reconstruct()
	c.validModelVersionID = versionID
	c.fireEvent(EventModelFlushed, nil)
}

// OnModelLinesDeleted removes input lines [from, to] (1-based, inclusive)
// and emits the affected output range.
func (c *SplitLinesCollection) OnModelLinesDeleted(versionID int64, from, to int) {
	if versionID <= c.validModelVersionID {
		return
	}
	outFrom := 1
	if from > 1 {
		outFrom = c.prefixSum.GetAccumulatedValue(from-2) + 1
	}
	outTo := c.prefixSum.GetAccumulatedValue(to - 1)

	c.lines = append(c.lines[:from-1], c.lines[to:]...)
	c.prefixSum.RemoveValues(from-1, to-from+1)
	c.validModelVersionID = versionID

	c.fireEvent(EventLinesDeleted, LinesRangePayload{FromLineNumber: outFrom, ToLineNumber: outTo})
}

// OnModelLinesInserted adds new input lines starting at from (1-based),
// inheriting hidden visibility from whatever currently covers
// Position(from, 1).
func (c *SplitLinesCollection) OnModelLinesInserted(versionID int64, from, to int, texts []string) {
	if versionID <= c.validModelVersionID {
		return
	}
	startsHidden := containsLine(c.currentHiddenRanges(), from)

	newLines := make([]SplitLine, len(texts))
	counts := make([]int, len(texts))
	for i, t := range texts {
		sl := c.buildSplitLine(t)
		sl.SetVisible(!startsHidden)
		newLines[i] = sl
		counts[i] = sl.OutputLineCount()
	}

	idx := from - 1
	grownLines := make([]SplitLine, 0, len(c.lines)+len(newLines))
	grownLines = append(grownLines, c.lines[:idx]...)
	grownLines = append(grownLines, newLines...)
	grownLines = append(grownLines, c.lines[idx:]...)
	c.lines = grownLines
	c.prefixSum.InsertValues(idx, counts)
	c.validModelVersionID = versionID

	outFrom := 1
	if from > 1 {
		outFrom = c.prefixSum.GetAccumulatedValue(from-2) + 1
	}
	total := 0
	for _, cnt := range counts {
		total += cnt
	}
	c.fireEvent(EventLinesInserted, LinesRangePayload{FromLineNumber: outFrom, ToLineNumber: outFrom + total - 1})
}

// OnModelLineChanged rebuilds a single SplitLine, preserving its prior
// visibility, and reports whether the number of output rows it produces
// changed.
func (c *SplitLinesCollection) OnModelLineChanged(versionID int64, lineNumber int, newText string) bool {
	if versionID <= c.validModelVersionID {
		return false
	}
	idx := lineNumber - 1
	prevVisible := c.lines[idx].Visible()
	outStart := c.deltaLineNumberFor(idx)
	effOld := c.lines[idx].OutputLineCount()

	newLine := c.buildSplitLine(newText)
	newLine.SetVisible(prevVisible)
	c.lines[idx] = newLine
	effNew := newLine.OutputLineCount()

	c.prefixSum.ChangeValue(idx, effNew)
	c.validModelVersionID = versionID

	changed := effOld != effNew
	switch {
	case effOld == effNew:
		for row := 0; row < effNew; row++ {
			c.fireEvent(EventLineChanged, LineChangedPayload{LineNumber: outStart + row})
		}
	case effOld > effNew:
		for row := 0; row < effNew; row++ {
			c.fireEvent(EventLineChanged, LineChangedPayload{LineNumber: outStart + row})
		}
		c.fireEvent(EventLinesDeleted, LinesRangePayload{FromLineNumber: outStart + effNew, ToLineNumber: outStart + effOld - 1})
	default:
		for row := 0; row < effOld; row++ {
			c.fireEvent(EventLineChanged, LineChangedPayload{LineNumber: outStart + row})
		}
		c.fireEvent(EventLinesInserted, LinesRangePayload{FromLineNumber: outStart + effOld, ToLineNumber: outStart + effNew - 1})
	}
	return changed
}

// --- Queries ---------------------------------------------------------------

// GetOutputLineCount returns the total number of output lines.
func (c *SplitLinesCollection) GetOutputLineCount() (int, error) {
	if err := c.checkVersion(); err != nil {
		return 0, err
	}
	return c.prefixSum.GetTotalValue(), nil
}

func (c *SplitLinesCollection) resolveOutputLine(outLine int) (idx, remainder int, err error) {
	if err = c.checkVersion(); err != nil {
		return 0, 0, err
	}
	total := c.prefixSum.GetTotalValue()
	if outLine < 1 || outLine > total {
		return 0, 0, outOfRangeError("output line", outLine)
	}
	res := c.prefixSum.GetIndexOf(outLine - 1)
	return res.Index, res.Remainder, nil
}

// GetOutputLineContent returns the rendered content of output line outLine.
func (c *SplitLinesCollection) GetOutputLineContent(outLine int) (string, error) {
	idx, rem, err := c.resolveOutputLine(outLine)
	if err != nil {
		return "", err
	}
	return c.lines[idx].OutputLineContent(c.model, idx+1, rem), nil
}

// GetOutputLineMinColumn returns the minimum column of output line outLine.
func (c *SplitLinesCollection) GetOutputLineMinColumn(outLine int) (int, error) {
	idx, rem, err := c.resolveOutputLine(outLine)
	if err != nil {
		return 0, err
	}
	return c.lines[idx].OutputLineMinColumn(rem), nil
}

// GetOutputLineMaxColumn returns the maximum column of output line outLine.
func (c *SplitLinesCollection) GetOutputLineMaxColumn(outLine int) (int, error) {
	idx, rem, err := c.resolveOutputLine(outLine)
	if err != nil {
		return 0, err
	}
	return c.lines[idx].OutputLineMaxColumn(c.model, idx+1, rem), nil
}

// GetOutputLineTokens returns the token stream for output line outLine.
func (c *SplitLinesCollection) GetOutputLineTokens(outLine int, inaccurate bool) (TokenStream, error) {
	idx, rem, err := c.resolveOutputLine(outLine)
	if err != nil {
		return nil, err
	}
	return c.lines[idx].OutputLineTokens(c.model, idx+1, rem, inaccurate), nil
}

// ConvertOutputPositionToInputPosition maps an output position back to the
// input line and column that produced it.
func (c *SplitLinesCollection) ConvertOutputPositionToInputPosition(outLine, outCol int) (Position, error) {
	idx, rem, err := c.resolveOutputLine(outLine)
	if err != nil {
		return Position{}, err
	}
	col := c.lines[idx].InputColumnOfOutputPosition(rem, outCol)
	return Position{LineNumber: idx + 1, Column: col}, nil
}

// ConvertInputPositionToOutputPosition maps an input position to its output
// position. inLine is clamped to [1, N]; hidden input lines collapse to the
// end of the nearest preceding visible line, or (1, 1) if none exists.
func (c *SplitLinesCollection) ConvertInputPositionToOutputPosition(inLine, inCol int) (Position, error) {
	if err := c.checkVersion(); err != nil {
		return Position{}, err
	}
	n := len(c.lines)
	if n == 0 {
		return Position{LineNumber: 1, Column: 1}, nil
	}
	if inLine < 1 {
		inLine = 1
	}
	if inLine > n {
		inLine = n
	}
	idx := inLine - 1

	if c.lines[idx].Visible() {
		return c.lines[idx].OutputPositionOfInputPosition(c.deltaLineNumberFor(idx), inCol), nil
	}

	for idx >= 0 && !c.lines[idx].Visible() {
		idx--
	}
	if idx < 0 {
		return Position{LineNumber: 1, Column: 1}, nil
	}
	endCol := c.model.LineMaxColumn(idx + 1)
	return c.lines[idx].OutputPositionOfInputPosition(c.deltaLineNumberFor(idx), endCol), nil
}
