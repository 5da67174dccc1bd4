package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/theme"
)

func rowText(sim tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := sim.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestSegments(t *testing.T) {
	sb := New(DefaultConfig())
	sb.SetFileInfo("doc.json", true)
	sb.SetCursorInfo(textpos.Position{Line: 3, Column: 7})
	sb.SetValidity(session.StatusInvalid, "invalid character '}'", &textpos.Position{Line: 3, Column: 1})
	sb.SetThemeName("Paper Light")

	segments, right := sb.Segments()
	if right != "Ln 3, Col 7 | Paper Light" {
		t.Errorf("right = %q", right)
	}
	if len(segments) != 3 {
		t.Fatalf("segments = %+v", segments)
	}
	if segments[1].Style != theme.StyleStatusBarModified {
		t.Errorf("modified segment = %+v", segments[1])
	}
	if segments[2].Style != theme.StyleStatusBarError || !strings.Contains(segments[2].Text, "(line 3, col 1)") {
		t.Errorf("error segment = %+v", segments[2])
	}

	sb.SetValidity(session.StatusValid, "", nil)
	segments, _ = sb.Segments()
	if segments[len(segments)-1].Style != theme.StyleStatusBarValid {
		t.Errorf("valid segment = %+v", segments[len(segments)-1])
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	sb := New(Config{MessageTimeout: time.Second})
	clock := time.Unix(1000, 0)
	sb.now = func() time.Time { return clock }

	sb.SetTemporaryMessage("saved %s", "a.json")
	segments, _ := sb.Segments()
	if len(segments) != 1 || segments[0].Text != "saved a.json" {
		t.Fatalf("segments = %+v", segments)
	}

	clock = clock.Add(2 * time.Second)
	segments, _ = sb.Segments()
	if segments[0].Text != "[No Name]" {
		t.Errorf("message did not expire: %+v", segments)
	}
}

func TestDrawTruncates(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	defer sim.Fini()
	sim.SetSize(30, 2)

	sb := New(DefaultConfig())
	sb.SetFileInfo("/a/very/long/path/to/some/document.json", false)
	sb.Draw(sim, 30, 2, &theme.DevComfortDark)

	row := rowText(sim, 1, 30)
	if !strings.HasSuffix(row, "Ln 1, Col 1") {
		t.Errorf("row = %q", row)
	}
	if !strings.Contains(row, "…") || !strings.HasPrefix(row, "/a/very") {
		t.Errorf("left side not truncated: %q", row)
	}
}
