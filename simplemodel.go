// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: simplemodel.go
// Summary: In-memory reference TextModel, grounded on texel/buffer_store.go's InMemoryBufferStore.
// Notes: A minimal stand-in for a real editing host, kept intentionally dumb — it exists
//        so SplitLinesCollection is runnable and testable without a real text buffer.

package viewline

// LineTokenSource supplies the token stream for a line's raw content. It is
// the seam a real tokenizer (e.g. package tokenize) plugs into; SimpleModel
// has no opinion about how tokens are produced.
type LineTokenSource interface {
	LineTokens(text string) TokenStream
}

// SimpleModel is an in-memory TextModel: a version counter plus a slice of
// line strings, mutated only through its own methods so the version always
// tracks content changes (mirroring how InMemoryBufferStore centralizes
// mutation behind Save/Clear rather than exposing the backing slice).
type SimpleModel struct {
	lines   []string
	version int64
	tokens  LineTokenSource
}

// NewSimpleModel constructs a model at version 1 with the given initial
// lines (at least one line, matching a real document that always has a
// last, possibly empty, line).
func NewSimpleModel(lines []string) *SimpleModel {
	if len(lines) == 0 {
		lines = []string{""}
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &SimpleModel{lines: cp, version: 1}
}

// SetTokenSource plugs in the tokenizer used by LineTokens.
func (m *SimpleModel) SetTokenSource(src LineTokenSource) {
	m.tokens = src
}

func (m *SimpleModel) VersionID() int64 { return m.version }

func (m *SimpleModel) LinesContent() []string {
	cp := make([]string, len(m.lines))
	copy(cp, m.lines)
	return cp
}

func (m *SimpleModel) LineContent(lineNumber int) string { return m.lines[lineNumber-1] }

func (m *SimpleModel) LineMinColumn(lineNumber int) int { return 1 }

func (m *SimpleModel) LineMaxColumn(lineNumber int) int {
	return len([]rune(m.lines[lineNumber-1])) + 1
}

func (m *SimpleModel) LineTokens(lineNumber int, inaccurate bool) TokenStream {
	if m.tokens == nil {
		return nil
	}
	return m.tokens.LineTokens(m.lines[lineNumber-1])
}

func (m *SimpleModel) LineCount() int { return len(m.lines) }

// --- Mutation helpers; each bumps the version and returns it so the caller
// can deliver the matching change event to a SplitLinesCollection. ---

// Flush replaces the entire document and returns the new version.
func (m *SimpleModel) Flush(lines []string) int64 {
	if len(lines) == 0 {
		lines = []string{""}
	}
	cp := make([]string, len(lines))
	copy(cp, lines)
	m.lines = cp
	m.version++
	return m.version
}

// DeleteLines removes input lines [from, to] (1-based, inclusive).
func (m *SimpleModel) DeleteLines(from, to int) int64 {
	m.lines = append(m.lines[:from-1], m.lines[to:]...)
	m.version++
	return m.version
}

// InsertLines inserts texts starting at input line from (1-based).
func (m *SimpleModel) InsertLines(from int, texts []string) int64 {
	idx := from - 1
	grown := make([]string, 0, len(m.lines)+len(texts))
	grown = append(grown, m.lines[:idx]...)
	grown = append(grown, texts...)
	grown = append(grown, m.lines[idx:]...)
	m.lines = grown
	m.version++
	return m.version
}

// ChangeLine replaces the text of input line lineNumber (1-based).
func (m *SimpleModel) ChangeLine(lineNumber int, text string) int64 {
	m.lines[lineNumber-1] = text
	m.version++
	return m.version
}
