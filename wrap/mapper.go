// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wrap/mapper.go
// Summary: Reference LineMapperFactory: greedy column-budget wrapping with go-runewidth costs.
//
// Architecture:
//
//	This mirrors LogicalLine.WrapToWidth in the teacher's terminal parser —
//	walk the line's runes, accumulate a column budget, cut a new output row
//	whenever the next rune would overflow it — except widths are no longer
//	fixed-cost-1 per rune: mattn/go-runewidth tells us whether a rune is
//	full-width so it can be charged columnsForFullWidthChar instead of 1,
//	and tabs expand to the next tabSize stop the way a real line-mapper
//	factory (and the teacher's vterm column handling) must.
//
//	The core (package viewline) never imports this package directly — it
//	only depends on the LineMapperFactory/LineMapping interfaces (§6). This
//	package is the reference implementation wired in for tests and the demo
//	binary.

package wrap

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/framegrace/viewline"
)

// DefaultFactory is a LineMapperFactory that wraps greedily at the first
// rune boundary whose cumulative column cost would exceed wrappingColumn.
type DefaultFactory struct{}

// CreateLineMapping implements viewline.LineMapperFactory. It returns nil
// (no mapping — use the identity projection) when the line already fits.
func (DefaultFactory) CreateLineMapping(text string, tabSize, wrappingColumn, columnsForFullWidthChar int, wrappingIndent viewline.WrappingIndent) viewline.LineMapping {
	runes := []rune(text)
	widths := make([]int, len(runes))
	col := 0
	for i, r := range runes {
		w := runeWidth(r, tabSize, col, columnsForFullWidthChar)
		widths[i] = w
		col += w
	}
	if col <= wrappingColumn {
		return nil
	}

	breaks := []int{0}
	lineCol := 0
	for i, w := range widths {
		if lineCol > 0 && lineCol+w > wrappingColumn {
			breaks = append(breaks, i)
			lineCol = 0
		}
		lineCol += w
	}

	return &mapping{
		breaks: breaks,
		total:  len(runes),
		indent: indentFor(text, wrappingIndent, tabSize),
	}
}

// runeWidth returns the column cost of r at the given running column,
// expanding tabs to the next tabSize stop and charging full-width runes
// columnsForFullWidthChar instead of 1.
func runeWidth(r rune, tabSize, col, columnsForFullWidthChar int) int {
	if r == '\t' {
		if tabSize <= 0 {
			return 1
		}
		return tabSize - (col % tabSize)
	}
	if runewidth.RuneWidth(r) >= 2 {
		if columnsForFullWidthChar > 0 {
			return columnsForFullWidthChar
		}
		return 2
	}
	return 1
}

// indentFor computes the hanging indent string for continuation output
// lines per the requested policy, mirroring the leading-whitespace-aware
// indent Monaco-style editors use: WrappingIndentSame repeats the first
// line's own leading whitespace, WrappingIndentIndent adds one extra
// tabSize-wide level, WrappingIndentDeepIndent adds two.
func indentFor(text string, policy viewline.WrappingIndent, tabSize int) string {
	if policy == viewline.WrappingIndentNone {
		return ""
	}
	leading := 0
	for _, r := range text {
		if r != ' ' && r != '\t' {
			break
		}
		leading++
	}
	base := text[:leading]
	extra := 0
	switch policy {
	case viewline.WrappingIndentIndent:
		extra = 1
	case viewline.WrappingIndentDeepIndent:
		extra = 2
	}
	if extra == 0 {
		return base
	}
	pad := tabSize
	if pad <= 0 {
		pad = 1
	}
	return base + strings.Repeat(" ", pad*extra)
}

// mapping is the immutable per-line LineMapping produced by DefaultFactory.
type mapping struct {
	// breaks[i] is the rune offset where output line i begins; breaks[0] is
	// always 0.
	breaks []int
	total  int
	indent string
}

func (m *mapping) OutputLineCount() int       { return len(m.breaks) }
func (m *mapping) WrappedLinesIndent() string { return m.indent }

func (m *mapping) InputOffsetOfOutputPosition(outputLineIndex, outputOffset int) int {
	if outputLineIndex < 0 {
		outputLineIndex = 0
	}
	if outputLineIndex >= len(m.breaks) {
		outputLineIndex = len(m.breaks) - 1
	}
	off := m.breaks[outputLineIndex] + outputOffset
	limit := m.total
	if outputLineIndex+1 < len(m.breaks) {
		limit = m.breaks[outputLineIndex+1]
	}
	if off > limit {
		off = limit
	}
	if off < m.breaks[outputLineIndex] {
		off = m.breaks[outputLineIndex]
	}
	return off
}

func (m *mapping) OutputPositionOfInputOffset(inputOffset int) viewline.OutputPosition {
	// Largest i such that breaks[i] <= inputOffset.
	i := 0
	for j := 1; j < len(m.breaks); j++ {
		if m.breaks[j] <= inputOffset {
			i = j
		} else {
			break
		}
	}
	return viewline.OutputPosition{OutputLineIndex: i, OutputOffset: inputOffset - m.breaks[i]}
}
