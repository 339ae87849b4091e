// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/viewline-demo/main.go
// Summary: Wires a SimpleModel, ChromaLineSource and SplitLinesCollection together for manual inspection.
// Usage: go run ./cmd/viewline-demo -width 40 -file some/source.go

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/framegrace/viewline"
	"github.com/framegrace/viewline/tokenize"
	"github.com/framegrace/viewline/wrap"
)

func main() {
	wrappingColumn := flag.Int("width", 40, "wrapping column")
	tabSize := flag.Int("tabsize", 4, "tab size")
	fullWidth := flag.Int("fullwidth", 2, "columns charged for a full-width rune")
	path := flag.String("file", "", "file to load; reads stdin if empty")
	hideFrom := flag.Int("hide-from", 0, "1-based input line to start hiding at; 0 disables the hide/edit demonstration")
	hideTo := flag.Int("hide-to", 0, "1-based input line to stop hiding at (inclusive)")
	flag.Parse()

	content, err := readInput(*path)
	if err != nil {
		log.Fatalf("viewline-demo: %v", err)
	}

	model := viewline.NewSimpleModel(content)
	model.SetTokenSource(tokenize.NewChromaLineSource(*path, joinSample(content), ""))

	decorations := viewline.NewMemoryDecorationStore()
	emit := func(name viewline.EventName, payload any) {
		fmt.Printf("event: %v %+v\n", name, payload)
	}

	coll := viewline.New(model, wrap.DefaultFactory{}, decorations, emit,
		*tabSize, *wrappingColumn, *fullWidth, viewline.WrappingIndentSame)
	defer coll.Dispose()

	printOutput(coll)

	if *hideFrom < 1 || *hideTo < *hideFrom {
		return
	}

	// Hide the requested range, then insert a line in the middle of it to
	// demonstrate that a hidden range's decoration handle tracks the edit:
	// AdjustForLinesInserted keeps the store's range in step with the model
	// before the collection asks the store to resolve it again.
	if err := coll.SetHiddenAreas([]viewline.Range{{StartLineNumber: *hideFrom, EndLineNumber: *hideTo}}, true); err != nil {
		log.Fatalf("viewline-demo: %v", err)
	}
	fmt.Printf("--- hid lines %d-%d ---\n", *hideFrom, *hideTo)
	printOutput(coll)

	if *hideTo <= *hideFrom {
		return
	}
	editAt := *hideFrom + 1
	version := model.InsertLines(editAt, []string{"// inserted"})
	decorations.AdjustForLinesInserted(editAt, 1)
	coll.OnModelLinesInserted(version, editAt, editAt, []string{"// inserted"})
	fmt.Printf("--- inserted a line at %d inside the hidden range ---\n", editAt)
	printOutput(coll)
}

func printOutput(coll *viewline.SplitLinesCollection) {
	count, err := coll.GetOutputLineCount()
	if err != nil {
		log.Fatalf("viewline-demo: %v", err)
	}
	for i := 1; i <= count; i++ {
		line, err := coll.GetOutputLineContent(i)
		if err != nil {
			log.Fatalf("viewline-demo: %v", err)
		}
		fmt.Printf("%4d| %s\n", i, line)
	}
}

func readInput(path string) ([]string, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return splitLines(string(data)), nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func joinSample(lines []string) string {
	limit := len(lines)
	if limit > 20 {
		limit = 20
	}
	sample := ""
	for _, l := range lines[:limit] {
		sample += l + "\n"
	}
	return sample
}
