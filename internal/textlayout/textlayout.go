// Package textlayout lays out rendered match results: it indents nested
// blocks and draws captions next to them. It works on plain strings and only
// knows about ANSI color sequences insofar as they must not count towards
// the visible width of a line.
package textlayout

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Connector glyphs drawn between a block and its caption.
const (
	GlyphInline = "╶"
	GlyphTop    = "╮"
	GlyphBottom = "╯"
	GlyphBar    = "│"
	GlyphBranch = "├"
)

// IndentWidth is the number of spaces added per nesting level.
const IndentWidth = 4

var (
	ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[^0-9;]`)

	indentPrefix = strings.Repeat(" ", IndentWidth)

	// Ambiguous-width runes such as the box-drawing glyphs count as one
	// column regardless of the locale of the host.
	widthCondition = &runewidth.Condition{EastAsianWidth: false}
)

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal columns s occupies once its
// escape sequences are removed.
func VisibleWidth(s string) int {
	return widthCondition.StringWidth(StripANSI(s))
}

// Indent prefixes every line of text with four spaces.
func Indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indentPrefix + line
	}
	return strings.Join(lines, "\n")
}

// Annotate places caption to the right of text.
//
// A single line gets the caption inline after a "╶". A block of several lines
// is bracketed by a border drawn one column past its widest line, and the
// caption is attached at line n/2-1. extraIndent is the width of whatever
// precedes the first line on screen (a field label, for instance); it is
// counted towards the first line so the border stays straight.
func Annotate(text, caption string, extraIndent int) string {
	lines := strings.Split(text, "\n")
	n := len(lines)
	if n == 1 {
		return lines[0] + " " + GlyphInline + " " + caption
	}

	widths := make([]int, n)
	maxWidth := 0
	for i, line := range lines {
		widths[i] = VisibleWidth(line)
		if i == 0 {
			widths[i] += extraIndent
		}
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	captionLine := n/2 - 1
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		b.WriteString(strings.Repeat(" ", maxWidth-widths[i]))
		b.WriteByte(' ')

		connector := GlyphBar
		switch i {
		case 0:
			connector = GlyphTop
		case n - 1:
			connector = GlyphBottom
		}
		if i == captionLine {
			if connector == GlyphBar {
				connector = GlyphBranch
			}
			b.WriteString(connector)
			b.WriteByte(' ')
			b.WriteString(caption)
			continue
		}
		b.WriteString(connector)
	}
	return b.String()
}
