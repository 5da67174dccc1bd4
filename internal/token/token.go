// Package token scans JSON-ish text into a flat, lossless stream of classified
// lexical tokens. The scanner never fails: characters it does not recognise
// become Unknown tokens.
package token

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Unknown Kind = iota
	Key
	String
	Number
	Boolean
	Null
	Bracket
	Punctuation
	Whitespace
)

var kindNames = [...]string{
	Unknown:     "unknown",
	Key:         "key",
	String:      "string",
	Number:      "number",
	Boolean:     "boolean",
	Null:        "null",
	Bracket:     "bracket",
	Punctuation: "punctuation",
	Whitespace:  "whitespace",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Class is the markup style class of the kind. Boolean and Null share a class;
// Whitespace has none.
func (k Kind) Class() string {
	switch k {
	case Key:
		return "tok-key"
	case String:
		return "tok-string"
	case Number:
		return "tok-number"
	case Boolean, Null:
		return "tok-literal"
	case Bracket:
		return "tok-bracket"
	case Punctuation:
		return "tok-punct"
	case Whitespace:
		return ""
	}
	return "tok-unknown"
}

// StyleName is the theme style used to paint the kind in the terminal.
func (k Kind) StyleName() string {
	switch k {
	case Key:
		return "json.key"
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean, Null:
		return "constant"
	case Bracket:
		return "punctuation.bracket"
	case Punctuation:
		return "punctuation.delimiter"
	case Whitespace:
		return "Default"
	}
	return "error"
}

// Token is a classified slice of the input. Offset is the byte offset of
// Text within the scanned input.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Tokenize scans text left to right. Concatenating the Text of the result
// always yields text.
func Tokenize(text string) []Token {
	tokens := make([]Token, 0, len(text)/2+1)
	pos := 0
	for pos < len(text) {
		kind, end := scan(text, pos)
		tokens = append(tokens, Token{Kind: kind, Text: text[pos:end], Offset: pos})
		pos = end
	}
	return tokens
}

// IsBlank reports whether text holds nothing but JSON whitespace (space, tab,
// newline and carriage return), i.e. tokenizes to Whitespace tokens only.
func IsBlank(text string) bool {
	for i := 0; i < len(text); i++ {
		if !isSpace(text[i]) {
			return false
		}
	}
	return true
}

// Join reconstructs the scanned text from tokens.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// scan classifies the token starting at pos and returns its end offset.
// Every branch returns end > pos.
func scan(text string, pos int) (Kind, int) {
	ch := text[pos]
	switch {
	case isSpace(ch):
		end := pos + 1
		for end < len(text) && isSpace(text[end]) {
			end++
		}
		return Whitespace, end

	case ch == '"':
		end := scanString(text, pos)
		if followedByColon(text, end) {
			return Key, end
		}
		return String, end

	case ch == '-' || isDigit(ch):
		end := pos + 1
		for end < len(text) && isNumberChar(text[end]) {
			end++
		}
		return Number, end

	case strings.HasPrefix(text[pos:], "true"):
		return Boolean, pos + 4
	case strings.HasPrefix(text[pos:], "false"):
		return Boolean, pos + 5
	case strings.HasPrefix(text[pos:], "null"):
		return Null, pos + 4

	case ch == '{' || ch == '}' || ch == '[' || ch == ']':
		return Bracket, pos + 1
	case ch == ':' || ch == ',':
		return Punctuation, pos + 1
	}

	_, size := utf8.DecodeRuneInString(text[pos:])
	return Unknown, pos + size
}

// scanString returns the offset just past the closing quote of the string
// starting at pos, or len(text) when the string is unterminated. A backslash
// always consumes the following byte.
func scanString(text string, pos int) int {
	i := pos + 1
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return len(text)
}

// followedByColon looks past whitespace from pos without consuming anything.
func followedByColon(text string, pos int) bool {
	for pos < len(text) && isSpace(text[pos]) {
		pos++
	}
	return pos < len(text) && text[pos] == ':'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNumberChar(ch byte) bool {
	return isDigit(ch) || ch == '-' || ch == '.' || ch == 'e' || ch == 'E' || ch == '+'
}
