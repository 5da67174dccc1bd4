// Package textpos converts between byte offsets and line/column positions in
// a text buffer.
package textpos

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Position is a 1-based line and 1-based column. Columns count grapheme
// clusters, i.e. user-perceived characters.
type Position struct {
	Line   int
	Column int
}

// clamp bounds offset to [0, len(text)].
func clamp(text string, offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(text) {
		return len(text)
	}
	return offset
}

// LineAt returns the 1-based line containing offset by counting newlines in
// text[:offset].
func LineAt(text string, offset int) int {
	return strings.Count(text[:clamp(text, offset)], "\n") + 1
}

// LineStart returns the byte offset of the start of the line containing offset.
func LineStart(text string, offset int) int {
	offset = clamp(text, offset)
	return strings.LastIndexByte(text[:offset], '\n') + 1
}

// LineEnd returns the byte offset of the newline ending the line containing
// offset, or len(text) on the last line.
func LineEnd(text string, offset int) int {
	offset = clamp(text, offset)
	if i := strings.IndexByte(text[offset:], '\n'); i >= 0 {
		return offset + i
	}
	return len(text)
}

// FromOffset converts a byte offset to a Position. Offsets inside a
// multi-byte rune are moved back to the rune start.
func FromOffset(text string, offset int) Position {
	offset = clamp(text, offset)
	for offset > 0 && offset < len(text) && !utf8.RuneStart(text[offset]) {
		offset--
	}
	start := LineStart(text, offset)
	return Position{
		Line:   LineAt(text, offset),
		Column: uniseg.GraphemeClusterCount(text[start:offset]) + 1,
	}
}

// ToOffset converts a Position back to a byte offset. Lines past the end map
// to len(text); columns past the end of a line map to the line end.
func ToOffset(text string, pos Position) int {
	if pos.Line < 1 {
		return 0
	}
	start := 0
	for line := 1; line < pos.Line; line++ {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			return len(text)
		}
		start += i + 1
	}
	end := LineEnd(text, start)

	offset := start
	state := -1
	rest := text[start:end]
	for col := 1; col < pos.Column && rest != ""; col++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
	return offset
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// LineCount returns the number of lines in text; an empty text has one line.
func LineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// VisualWidth returns the cells s occupies when tabs advance to the next
// multiple of tabWidth. s must not contain newlines.
func VisualWidth(s string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	state := -1
	for s != "" {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\t" {
			width += tabWidth - width%tabWidth
			continue
		}
		width += w
	}
	return width
}

// PrevBoundary returns the start of the grapheme cluster before offset. A
// "\r\n" pair counts as one step.
func PrevBoundary(text string, offset int) int {
	offset = clamp(text, offset)
	if offset == 0 {
		return 0
	}
	start := LineStart(text, offset)
	if offset == start {
		if offset >= 2 && text[offset-2:offset] == "\r\n" {
			return offset - 2
		}
		return offset - 1
	}
	prev := start
	state := -1
	rest := text[start:offset]
	for pos := start; rest != ""; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = pos
		pos += len(cluster)
	}
	return prev
}

// NextBoundary returns the end of the grapheme cluster at offset.
func NextBoundary(text string, offset int) int {
	offset = clamp(text, offset)
	if offset == len(text) {
		return offset
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[offset:], -1)
	return offset + len(cluster)
}
