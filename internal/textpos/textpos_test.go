package textpos

import "testing"

func TestFromOffset(t *testing.T) {
	text := "{\n  \"a\": 1,\n  \"ü\": 2\n}"
	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{1, Position{1, 2}},
		{2, Position{2, 1}},
		{4, Position{2, 3}},
		{-5, Position{1, 1}},
		{len(text), Position{4, 2}},
		{len(text) + 10, Position{4, 2}},
	}
	for _, tt := range tests {
		if got := FromOffset(text, tt.offset); got != tt.want {
			t.Errorf("FromOffset(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}

func TestColumnsCountGraphemes(t *testing.T) {
	// "ü" is two bytes; "é" is one cluster of two runes.
	text := "\"\u00fc\"e\u0301x"
	xAt := len(text) - 1
	got := FromOffset(text, xAt)
	if got.Column != 5 {
		t.Errorf("column of x = %d, want 5", got.Column)
	}
}

func TestToOffsetRoundTrip(t *testing.T) {
	text := "ab\n日本語\n\nz"
	for offset := 0; offset <= len(text); offset++ {
		pos := FromOffset(text, offset)
		back := ToOffset(text, pos)
		// Offsets inside a multi-byte rune snap back to the rune start.
		if FromOffset(text, back) != pos {
			t.Errorf("offset %d -> %+v -> %d -> %+v", offset, pos, back, FromOffset(text, back))
		}
	}
}

func TestToOffsetClamps(t *testing.T) {
	text := "ab\ncd"
	tests := []struct {
		pos  Position
		want int
	}{
		{Position{0, 1}, 0},
		{Position{1, 99}, 2},
		{Position{2, 2}, 4},
		{Position{9, 1}, len(text)},
	}
	for _, tt := range tests {
		if got := ToOffset(text, tt.pos); got != tt.want {
			t.Errorf("ToOffset(%+v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestLineHelpers(t *testing.T) {
	text := "one\ntwo\nthree"
	if got := LineCount(text); got != 3 {
		t.Errorf("LineCount = %d, want 3", got)
	}
	if got := LineCount(""); got != 1 {
		t.Errorf("LineCount(empty) = %d, want 1", got)
	}
	if got := LineStart(text, 6); got != 4 {
		t.Errorf("LineStart = %d, want 4", got)
	}
	if got := LineEnd(text, 6); got != 7 {
		t.Errorf("LineEnd = %d, want 7", got)
	}
	if got := LineEnd(text, 9); got != len(text) {
		t.Errorf("LineEnd on last line = %d, want %d", got, len(text))
	}
	if got := DisplayWidth("日本"); got != 4 {
		t.Errorf("DisplayWidth = %d, want 4", got)
	}
}

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		s    string
		tab  int
		want int
	}{
		{"abc", 4, 3},
		{"\tx", 4, 5},
		{"ab\tx", 4, 5},
		{"日本\t", 4, 8},
		{"é", 4, 1},
		{"\t", 0, 1},
	}
	for _, tt := range tests {
		if got := VisualWidth(tt.s, tt.tab); got != tt.want {
			t.Errorf("VisualWidth(%q, %d) = %d, want %d", tt.s, tt.tab, got, tt.want)
		}
	}
}

func TestBoundaries(t *testing.T) {
	text := "a\u00fce\u0301\r\nz"
	// a=0, ü=1..2, e+combining=3..5, \r\n=6..7, z=8
	nexts := []int{1, 3, 6, 8, 9}
	pos := 0
	for _, want := range nexts {
		pos = NextBoundary(text, pos)
		if pos != want {
			t.Fatalf("NextBoundary stepped to %d, want %d", pos, want)
		}
	}
	if NextBoundary(text, len(text)) != len(text) {
		t.Error("NextBoundary moved past the end")
	}
	prevs := []int{8, 6, 3, 1, 0, 0}
	pos = len(text)
	for _, want := range prevs {
		pos = PrevBoundary(text, pos)
		if pos != want {
			t.Fatalf("PrevBoundary stepped to %d, want %d", pos, want)
		}
	}
}

func TestFromOffsetSnapsToRuneStart(t *testing.T) {
	text := "ab\n日本語"
	start := FromOffset(text, 3)
	for offset := 4; offset < 6; offset++ {
		if got := FromOffset(text, offset); got != start {
			t.Errorf("FromOffset(%d) = %+v, want %+v", offset, got, start)
		}
	}
	if got := FromOffset(text, 7); got != (Position{Line: 2, Column: 2}) {
		t.Errorf("FromOffset(7) = %+v", got)
	}
}
