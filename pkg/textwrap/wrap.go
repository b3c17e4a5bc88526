// Package textwrap implements the greedy word wrap shared by the
// editor's live overflow checks and the exporter's line splitting.
// Measurement is delegated to a backend so both consumers wrap with
// the font metrics they actually render with.
package textwrap

import (
	"math"
	"strings"
)

// Measurer reports the rendered advance width of a string in the same
// unit as the wrap budget. Implementations wrap a real font face;
// results are not portable across font-rendering stacks.
type Measurer interface {
	TextWidth(s string) float64
}

// Wrap splits text into lines that fit the width budget. Paragraphs
// (split on '\n') wrap independently; words accumulate greedily until
// the measured width exceeds the budget, then the overflowing word
// starts the next line. An empty paragraph still yields one empty
// line so blank-line intent survives.
func Wrap(text string, m Measurer, budget float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(paragraph, m, budget)...)
	}
	return lines
}

func wrapParagraph(paragraph string, m Measurer, budget float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if m.TextWidth(candidate) <= budget {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// Overflows reports whether the wrapped text is taller than the box.
func Overflows(lines []string, fontSize, lineHeight, boxHeight float64) bool {
	return float64(len(lines))*fontSize*lineHeight > boxHeight
}

// MaxLines is the number of whole lines that fit a box; the exporter
// clips wrapped text to this count instead of failing.
func MaxLines(boxHeight, lineHeightPx float64) int {
	if lineHeightPx <= 0 {
		return 0
	}
	n := int(math.Floor(boxHeight / lineHeightPx))
	if n < 0 {
		return 0
	}
	return n
}

// Clip truncates lines to at most max entries. A zero or negative max
// keeps a single line so a card never renders fully empty text when
// the box is shorter than one line.
func Clip(lines []string, max int) []string {
	if max < 1 {
		max = 1
	}
	if len(lines) <= max {
		return lines
	}
	return lines[:max]
}
