// Package locate recovers a best-effort line/column position from a JSON
// parser's error.
//
// Parsers that expose an exact offset (see OffsetError) bypass message
// heuristics entirely. For opaque, engine-specific messages the Cascade applies
// an ordered list of message-pattern heuristics, some of which re-parse
// truncated prefixes of the text. The result is approximate by nature: callers
// must treat "no position" as a normal outcome and never fabricate one.
package locate

import (
	"errors"

	"github.com/bethropolis/jsonpad/internal/textpos"
)

// Position is a 1-based line and column.
type Position = textpos.Position

// Locator maps a parser error message and the text it was produced for to a
// position.
type Locator interface {
	Locate(message, text string) (Position, bool)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(message, text string) (Position, bool)

// Locate calls f.
func (f LocatorFunc) Locate(message, text string) (Position, bool) {
	return f(message, text)
}

// Parser is the external parse capability: it only reports success or an
// error whose message is engine specific.
type Parser interface {
	Parse(text string) error
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(text string) error

// Parse calls f.
func (f ParserFunc) Parse(text string) error {
	return f(text)
}

// OffsetError is implemented by parse errors that know the byte offset of the
// offending input.
type OffsetError interface {
	error
	ErrorOffset() int
}

// FromError returns the exact position carried by err, if any.
func FromError(err error, text string) (Position, bool) {
	if err == nil {
		return Position{}, false
	}
	var oe OffsetError
	if errors.As(err, &oe) {
		return textpos.FromOffset(text, oe.ErrorOffset()), true
	}
	return Position{}, false
}

// Resolve locates err within text: an exact offset wins, then each locator is
// tried in order with the error message.
func Resolve(err error, text string, locators ...Locator) (Position, bool) {
	if err == nil {
		return Position{}, false
	}
	if pos, ok := FromError(err, text); ok {
		return pos, true
	}
	msg := err.Error()
	for _, l := range locators {
		if l == nil {
			continue
		}
		if pos, ok := l.Locate(msg, text); ok {
			return pos, true
		}
	}
	return Position{}, false
}
