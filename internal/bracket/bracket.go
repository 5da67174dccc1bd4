// Package bracket finds the structurally matching bracket for a position in
// raw text by depth counting. Only the bracket type found at the starting
// position is tracked; other bracket types are ignored during the scan.
package bracket

// Pair holds the byte offsets of a matched open/close bracket, Open < Close.
type Pair struct {
	Open  int
	Close int
}

// Contains reports whether offset is one of the pair's endpoints.
func (p Pair) Contains(offset int) bool {
	return offset == p.Open || offset == p.Close
}

// IsBracket reports whether ch is one of { } [ ].
func IsBracket(ch byte) bool {
	return ch == '{' || ch == '}' || ch == '[' || ch == ']'
}

// Match returns the offset of the bracket matching the one at pos. It reports
// false when pos is out of range, text[pos] is not a bracket, or the depth
// never returns to zero.
func Match(text string, pos int) (int, bool) {
	if pos < 0 || pos >= len(text) {
		return 0, false
	}

	switch ch := text[pos]; ch {
	case '{':
		return scanForward(text, pos, '{', '}')
	case '[':
		return scanForward(text, pos, '[', ']')
	case '}':
		return scanBackward(text, pos, '{', '}')
	case ']':
		return scanBackward(text, pos, '[', ']')
	}
	return 0, false
}

// Find applies the caret policy: the byte at cursor is probed first, then the
// byte just before it, so a match is found whether the caret sits before or
// after a bracket. The first probed position holding a bracket decides the
// result.
func Find(text string, cursor int) (Pair, bool) {
	for _, pos := range [2]int{cursor, cursor - 1} {
		if pos < 0 || pos >= len(text) || !IsBracket(text[pos]) {
			continue
		}
		other, ok := Match(text, pos)
		if !ok {
			return Pair{}, false
		}
		if other < pos {
			return Pair{Open: other, Close: pos}, true
		}
		return Pair{Open: pos, Close: other}, true
	}
	return Pair{}, false
}

func scanForward(text string, pos int, open, close byte) (int, bool) {
	depth := 0
	for i := pos; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func scanBackward(text string, pos int, open, close byte) (int, bool) {
	depth := 0
	for i := pos; i >= 0; i-- {
		switch text[i] {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
