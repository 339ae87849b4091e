// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: model.go
// Summary: External collaborator interfaces consumed by the view-line layer (§6).
// Notes: The text buffer, tokenizer, decoration engine and line-break algorithm
//        are all out of scope (§1) — only what the core requires of them lives here.

package viewline

// WrappingIndent selects the hanging-indent policy applied to continuation
// output lines of a wrapped input line.
type WrappingIndent int

const (
	// WrappingIndentNone emits no hanging indent on continuation lines.
	WrappingIndentNone WrappingIndent = iota
	// WrappingIndentSame indents continuations to the first line's own indent.
	WrappingIndentSame
	// WrappingIndentIndent indents continuations one level deeper than the
	// first line's indent.
	WrappingIndentIndent
	// WrappingIndentDeepIndent indents continuations two levels deeper.
	WrappingIndentDeepIndent
)

// Range is an inclusive range of 1-based input line numbers, used for
// hidden areas (§4.4) and the DecorationStore ranges that anchor them.
// Events report affected line spans with LinesRangePayload instead.
type Range struct {
	StartLineNumber int
	EndLineNumber   int
}

// Token is one lexical span of a line's token stream, carrying opaque style
// information the core never interprets — only offsets are ever touched by
// TokenFilter (§4.2).
type Token struct {
	// StartOffset is the 0-based column offset (inclusive) where this token
	// begins within the line it was produced for.
	StartOffset int
	// Style is treated as fully opaque by the core. The reference tokenizer
	// (package tokenize) fills it with a tcell.Style, but nothing under
	// viewline inspects its contents.
	Style any
}

// TokenStream is an ordered, non-overlapping sequence of tokens covering a
// line from column 0 to the line's max column, sorted by StartOffset.
type TokenStream []Token

// TextModel is the external text buffer collaborator (§6). The core only
// ever reads from it; mutation happens out of band and is announced via the
// document-change sinks on SplitLinesCollection.
type TextModel interface {
	// VersionID returns the document's current monotonic version identifier.
	VersionID() int64
	// LinesContent returns the content of every input line, 1:1 with line
	// numbers 1..N.
	LinesContent() []string
	// LineContent returns the content of a single 1-based input line.
	LineContent(lineNumber int) string
	// LineMinColumn returns the minimum column (always 1) of a line.
	LineMinColumn(lineNumber int) int
	// LineMaxColumn returns one past the last valid column of a line, i.e.
	// len(content)+1.
	LineMaxColumn(lineNumber int) int
	// LineTokens returns the token stream for a line. inaccurate signals
	// that the tokenizer has not yet caught up with the latest edits and the
	// stream may be stale; callers may still use it optimistically.
	LineTokens(lineNumber int, inaccurate bool) TokenStream
	// LineCount returns the number of input lines currently in the document.
	LineCount() int
}

// DecorationHandle is an opaque handle into the external decoration engine
// that anchors a hidden range across edits (§9). The core never interprets
// its value; it only round-trips handles through DeltaDecorations.
type DecorationHandle string

// DecorationStore is the external decoration/marker engine collaborator
// (§6) that anchors hidden ranges so they track future edits without the
// core needing to listen to every edit itself.
type DecorationStore interface {
	// DecorationRange resolves a handle to its current input-line range, or
	// ok=false if the handle is unknown (e.g. after a flush).
	DecorationRange(handle DecorationHandle) (r Range, ok bool)
	// DeltaDecorations atomically releases oldHandles and creates one new
	// decoration per range in newRanges, returning their handles in order.
	DeltaDecorations(oldHandles []DecorationHandle, newRanges []Range) []DecorationHandle
}

// LineMapping is the immutable, per-line map between input offsets and
// (output line, output offset) produced by a LineMapperFactory (§3). It is
// permitted to assume tab size, wrapping column, full-width-char cost and
// wrapping indent are fixed for its lifetime — any config change invalidates
// every LineMapping in the collection (§9).
type LineMapping interface {
	// OutputLineCount returns n >= 1, the number of output rows this input
	// line produces when wrapped.
	OutputLineCount() int
	// WrappedLinesIndent returns the hanging-indent string prefixed to every
	// continuation output line (possibly empty).
	WrappedLinesIndent() string
	// InputOffsetOfOutputPosition maps an output (line, offset) pair back to
	// a 0-based input offset.
	InputOffsetOfOutputPosition(outputLineIndex, outputOffset int) int
	// OutputPositionOfInputOffset maps a 0-based input offset forward to an
	// output (line, offset) pair.
	OutputPositionOfInputOffset(inputOffset int) OutputPosition
}

// LineMapperFactory decides where a line's soft wrap breaks fall (§1, out of
// scope for this spec beyond the interface it must satisfy). Returning a nil
// LineMapping tells the caller the line fits within wrappingColumn as-is and
// should use the Identity projection.
type LineMapperFactory interface {
	CreateLineMapping(text string, tabSize, wrappingColumn, columnsForFullWidthChar int, wrappingIndent WrappingIndent) LineMapping
}

// EventName identifies the coarse-grained view events emitted by
// SplitLinesCollection (§6, §5 ordering guarantees).
type EventName int

const (
	// EventModelFlushed signals a total invalidation of downstream view
	// caches; payload is nil.
	EventModelFlushed EventName = iota
	// EventLineChanged signals one output row's content changed in place;
	// payload is LineChangedPayload.
	EventLineChanged
	// EventLinesInserted signals a contiguous inclusive range of new output
	// lines; payload is LinesRangePayload.
	EventLinesInserted
	// EventLinesDeleted signals a contiguous inclusive range of removed
	// output lines; payload is LinesRangePayload.
	EventLinesDeleted
)

// LineChangedPayload is the payload of an EventLineChanged event.
type LineChangedPayload struct {
	LineNumber int
}

// LinesRangePayload is the payload of EventLinesInserted/EventLinesDeleted.
type LinesRangePayload struct {
	FromLineNumber int
	ToLineNumber   int
}

// Emitter publishes view events to a single downstream renderer (§6). It
// mirrors the (eventName, payload) callback shape rather than a typed
// per-event interface so the collection can batch heterogenous events in
// one synchronous call, the way texel/dispatcher.go's EventDispatcher
// broadcasts a single Event.Type/Payload pair to its listeners.
type Emitter func(name EventName, payload any)
