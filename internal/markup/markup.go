// Package markup renders a token stream as line-oriented HTML highlight
// markup.
//
// Every source character appears exactly once in the output, escaped where
// needed, and output lines are separated by "\n" exactly where the source had
// newlines. The markup is meant to sit beneath an editable surface, so it must
// stay aligned character for character with the buffer.
package markup

import (
	"strings"

	"github.com/bethropolis/jsonpad/internal/bracket"
	"github.com/bethropolis/jsonpad/internal/token"
)

const (
	// MatchClass decorates both brackets of the pair at the cursor.
	MatchClass = "tok-match"
	// ErrorLineClass wraps the line holding the located error.
	ErrorLineClass = "line-error"
)

// Only the three markup-significant characters are escaped; quotes stay
// literal so the markup text matches the buffer.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape escapes &, < and >.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Render produces highlight markup for tokens. pair, when non-nil, marks the
// matched brackets; errorLine (1-based) selects the line to wrap in the error
// decoration, and values that match no line decorate nothing.
func Render(tokens []token.Token, pair *bracket.Pair, errorLine int) string {
	r := renderer{pair: pair, errorLine: errorLine, lineNo: 1}
	offset := 0
	for _, tok := range tokens {
		r.token(tok, offset)
		offset += len(tok.Text)
	}
	r.flush()
	return r.out.String()
}

type renderer struct {
	pair      *bracket.Pair
	errorLine int

	lineNo int
	line   strings.Builder
	out    strings.Builder
}

func (r *renderer) token(tok token.Token, offset int) {
	class := tok.Kind.Class()
	if tok.Kind == token.Bracket && r.pair != nil && (offset == r.pair.Open || offset == r.pair.Close) {
		class += " " + MatchClass
	}

	// Whitespace is the usual carrier of newlines, but an unterminated string
	// can span lines too, so every token is split.
	text := tok.Text
	for {
		i := strings.IndexByte(text, '\n')
		segment := text
		if i >= 0 {
			segment = text[:i]
		}
		r.write(class, segment)
		if i < 0 {
			return
		}
		r.flush()
		r.out.WriteByte('\n')
		text = text[i+1:]
	}
}

func (r *renderer) write(class, text string) {
	if text == "" {
		return
	}
	if class == "" {
		r.line.WriteString(Escape(text))
		return
	}
	r.line.WriteString(`<span class="`)
	r.line.WriteString(class)
	r.line.WriteString(`">`)
	r.line.WriteString(Escape(text))
	r.line.WriteString(`</span>`)
}

// flush moves the current line to the output and advances the line counter.
func (r *renderer) flush() {
	if r.lineNo == r.errorLine {
		r.out.WriteString(`<span class="` + ErrorLineClass + `">`)
		r.out.WriteString(r.line.String())
		r.out.WriteString(`</span>`)
	} else {
		r.out.WriteString(r.line.String())
	}
	r.line.Reset()
	r.lineNo++
}
