package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Report describes markup parsed back into a document.
type Report struct {
	// Text is the plain text carried by the markup. HTML parsing normalizes
	// carriage returns and NUL bytes, so those do not survive.
	Text string
	// Lines is the number of markup lines.
	Lines int
	// Matches counts matched-bracket decorations.
	Matches int
	// ErrorLines lists the 1-based lines wrapped in the error decoration.
	ErrorLines []int
}

// Inspect parses markup produced by Render. Each line is parsed on its own,
// which keeps line numbers exact.
func Inspect(markup string) (Report, error) {
	var rep Report
	var text strings.Builder
	for i, line := range strings.Split(markup, "\n") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader("<div>" + line + "</div>"))
		if err != nil {
			return Report{}, fmt.Errorf("parse markup line %d: %w", i+1, err)
		}
		root := doc.Find("div").First()
		if i > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(root.Text())
		rep.Matches += root.Find("span." + MatchClass).Length()
		if root.Find("span."+ErrorLineClass).Length() > 0 {
			rep.ErrorLines = append(rep.ErrorLines, i+1)
		}
		rep.Lines++
	}
	rep.Text = text.String()
	return rep, nil
}
