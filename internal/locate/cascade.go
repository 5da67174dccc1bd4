package locate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/textpos"
)

var (
	lineColumnRe      = regexp.MustCompile(`line (\d+) column (\d+)`)
	atPositionRe      = regexp.MustCompile(`at position (\d+)`)
	atLineColumnRe    = regexp.MustCompile(`(?i)at line (\d+),? column (\d+)`)
	tokenSnippetRe    = regexp.MustCompile(`(?s)Unexpected token '(.)', .* is not valid JSON`)
	unexpectedTokenRe = regexp.MustCompile(`Unexpected token '(.)'`)
)

// Cascade applies message heuristics in a fixed order; the first that yields
// a position wins. Heuristics that re-parse prefixes use Parser.
type Cascade struct {
	Parser Parser
}

// NewCascade returns a Cascade that re-parses with p, or with a JSONParser
// when p is nil.
func NewCascade(p Parser) *Cascade {
	if p == nil {
		p = JSONParser{}
	}
	return &Cascade{Parser: p}
}

type heuristic struct {
	name string
	fn   func(c *Cascade, message, text string) (Position, bool)
}

var heuristics = []heuristic{
	{"line-column", (*Cascade).lineColumn},
	{"at-position", (*Cascade).atPosition},
	{"at-line-column", (*Cascade).atLineColumn},
	{"token-snippet", (*Cascade).tokenSnippet},
	{"unexpected-token", (*Cascade).unexpectedToken},
}

// Locate implements Locator.
func (c *Cascade) Locate(message, text string) (Position, bool) {
	for _, h := range heuristics {
		if pos, ok := h.fn(c, message, text); ok {
			logger.DebugTagf("locate", "heuristic %s matched at %d:%d", h.name, pos.Line, pos.Column)
			return pos, true
		}
	}
	logger.DebugTagf("locate", "no heuristic matched %q", message)
	return Position{}, false
}

func (c *Cascade) parser() Parser {
	if c.Parser == nil {
		return JSONParser{}
	}
	return c.Parser
}

func (c *Cascade) lineColumn(message, _ string) (Position, bool) {
	return matchLineColumn(lineColumnRe, message)
}

func (c *Cascade) atLineColumn(message, _ string) (Position, bool) {
	return matchLineColumn(atLineColumnRe, message)
}

func matchLineColumn(re *regexp.Regexp, message string) (Position, bool) {
	m := re.FindStringSubmatch(message)
	if m == nil {
		return Position{}, false
	}
	line, err1 := strconv.Atoi(m[1])
	col, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return Position{}, false
	}
	return Position{Line: line, Column: col}, true
}

// atPosition derives the line from the number of newlines before the reported
// offset. The column is the raw offset, not the offset within the line.
func (c *Cascade) atPosition(message, text string) (Position, bool) {
	m := atPositionRe.FindStringSubmatch(message)
	if m == nil {
		return Position{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Position{}, false
	}
	return Position{Line: textpos.LineAt(text, n), Column: n}, true
}

// tokenSnippet walks the occurrences of the reported character from the end
// of the text and re-parses the prefix ending there. The first prefix that
// fails is taken as the error site.
func (c *Cascade) tokenSnippet(message, text string) (Position, bool) {
	m := tokenSnippetRe.FindStringSubmatch(message)
	if m == nil {
		return Position{}, false
	}
	ch := m[1]
	offsets := occurrences(text, ch)
	p := c.parser()
	for i := len(offsets) - 1; i >= 0; i-- {
		off := offsets[i]
		prefix := text[:off]
		if ch == "]" || ch == "}" {
			prefix += ch
		}
		if p.Parse(prefix) != nil {
			return textpos.FromOffset(text, off), true
		}
	}
	return Position{}, false
}

// unexpectedToken scans occurrences of the reported character from the start
// and returns the first whose inclusive prefix fails to parse with a message
// naming that character.
func (c *Cascade) unexpectedToken(message, text string) (Position, bool) {
	m := unexpectedTokenRe.FindStringSubmatch(message)
	if m == nil {
		return Position{}, false
	}
	ch := m[1]
	p := c.parser()
	for _, off := range occurrences(text, ch) {
		err := p.Parse(text[:off+len(ch)])
		if err != nil && strings.Contains(err.Error(), ch) {
			return textpos.FromOffset(text, off), true
		}
	}
	return Position{}, false
}

// occurrences returns the byte offsets of every occurrence of s in text.
func occurrences(text, s string) []int {
	var offsets []int
	for start := 0; start <= len(text); {
		i := strings.Index(text[start:], s)
		if i < 0 {
			break
		}
		offsets = append(offsets, start+i)
		start += i + len(s)
	}
	return offsets
}
