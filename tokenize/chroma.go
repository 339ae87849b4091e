// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tokenize/chroma.go
// Summary: Reference LineTokens source backed by chroma lexing + go-enry language detection.
//
// Architecture:
//
//	This mirrors apps/texelterm/txfmt/chroma.go's chromaColorizeLines: pick a
//	lexer, tokenize a chunk of text, and turn chroma's token stream into
//	positioned spans with resolved colors. The teacher resolves those spans
//	against terminal Cells; here the target is a viewline.TokenStream, and
//	the color/attribute resolution collapses to a single tcell.Style instead
//	of a bespoke Color/Attribute pair since nothing downstream renders it -
//	§1 excludes rendering from this module's scope.
//
//	Language selection differs from the teacher in one respect: go-enry's
//	content-based classifier chooses the lexer once for the whole document
//	instead of chroma's own lexers.Analyse, giving every line source built
//	from the same document a stable, shared lexer even if an individual
//	line's content wouldn't be enough to fingerprint the language on its own.

package tokenize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	enry "github.com/go-enry/go-enry/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/viewline"
)

const defaultStyleName = "catppuccin-mocha"

// ChromaLineSource produces a viewline.TokenStream for a line of text using
// a chroma lexer chosen once for the whole document.
type ChromaLineSource struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewChromaLineSource selects a lexer for filename/sample (via go-enry's
// language classifier, falling back to chroma's own content analysis) and
// resolves styleName to a chroma style (falling back to a sane default).
func NewChromaLineSource(filename, sample, styleName string) *ChromaLineSource {
	lexer := lexerFor(filename, sample)
	style, ok := styles.Registry[styleName]
	if !ok {
		style = styles.Get(defaultStyleName)
	}
	return &ChromaLineSource{lexer: chroma.Coalesce(lexer), style: style}
}

// The three lookups below are package vars rather than direct calls so tests
// can substitute deterministic stand-ins for enry/chroma's own classifiers,
// which otherwise make the three branches of the fallback chain hard to hit
// on demand.
var (
	enryGetLanguage = enry.GetLanguage
	lexersGet       = lexers.Get
	lexersAnalyse   = lexers.Analyse
)

func lexerFor(filename, sample string) chroma.Lexer {
	if lang := enryGetLanguage(filename, []byte(sample)); lang != "" {
		if l := lexersGet(lang); l != nil {
			return l
		}
	}
	if l := lexersAnalyse(sample); l != nil {
		return l
	}
	return lexers.Fallback
}

// LineTokens tokenizes text and returns one Token per chroma token, each
// carrying a tcell.Style resolved from the chosen chroma style.
func (s *ChromaLineSource) LineTokens(text string) viewline.TokenStream {
	if text == "" {
		return nil
	}
	tokens, err := chroma.Tokenise(s.lexer, nil, text)
	if err != nil {
		return nil
	}

	baseColour := s.style.Get(chroma.Text).Colour
	out := make(viewline.TokenStream, 0, len(tokens))
	runePos := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			continue
		}
		tokRunes := []rune(tok.Value)
		if len(tokRunes) == 0 {
			continue
		}
		out = append(out, viewline.Token{
			StartOffset: runePos,
			Style:       resolveStyle(s.style.Get(tok.Type), baseColour),
		})
		runePos += len(tokRunes)
	}
	return out
}

// resolveStyle converts a chroma style entry into a tcell.Style, leaving
// the foreground at its default when the entry matches the base text color.
func resolveStyle(entry chroma.StyleEntry, baseColour chroma.Colour) tcell.Style {
	style := tcell.StyleDefault
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		style = style.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
