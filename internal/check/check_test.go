package check

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/jsonpad/internal/locate"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ok.json":    `{"a":[1,2]}`,
		"bad.json":   "{\n  \"a\": 1,\n}",
		"empty.json": "\n",
	})
	paths := []string{
		filepath.Join(dir, "bad.json"),
		filepath.Join(dir, "missing.json"),
		filepath.Join(dir, "ok.json"),
		filepath.Join(dir, "empty.json"),
	}

	results, err := Files(context.Background(), paths, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d is for %s, want %s", i, r.Path, paths[i])
		}
	}

	bad := results[0]
	if bad.Valid || bad.Position == nil || bad.Position.Line != 3 || bad.Position.Column != 1 {
		t.Errorf("bad.json = %+v", bad)
	}
	if bad.Message == "" {
		t.Error("bad.json has no message")
	}
	if !errors.Is(results[1].Err, os.ErrNotExist) {
		t.Errorf("missing.json err = %v", results[1].Err)
	}
	if !results[2].Valid || results[2].Position != nil {
		t.Errorf("ok.json = %+v", results[2])
	}
	if !results[3].Valid || !results[3].Empty {
		t.Errorf("empty.json = %+v", results[3])
	}
	if n := Failed(results); n != 2 {
		t.Errorf("Failed = %d, want 2", n)
	}
}

func TestFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.json": "[]"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Files(ctx, []string{filepath.Join(dir, "a.json")}, Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.json":       "1",
		"a.JSON":       "2",
		"notes.txt":    "x",
		"sub/c.json":   "3",
		"sub/skip.yml": "y",
	})
	single := filepath.Join(dir, "notes.txt")

	got, err := Expand([]string{single, dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		single,
		filepath.Join(dir, "a.JSON"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "sub", "c.json"),
	}
	if len(got) != len(want) {
		t.Fatalf("Expand = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTextUsesLocators(t *testing.T) {
	opts := Options{
		Parser: locate.ParserFunc(func(string) error { return errors.New("Unexpected token at position 3") }),
	}
	r := Text("-", `[1 2]`, opts)
	if r.Valid || r.Position == nil || r.Position.Column != 3 {
		t.Errorf("Text = %+v", r)
	}
}

func TestTextBlankIsJSONWhitespaceOnly(t *testing.T) {
	tests := []struct {
		text  string
		empty bool
	}{
		{"", true},
		{" \t\r\n", true},
		{"\u00a0", false},
		{"\v", false},
		{"\f\n", false},
	}
	for _, tt := range tests {
		r := Text("x.json", tt.text, Options{})
		if r.Empty != tt.empty || r.Valid != tt.empty {
			t.Errorf("Text(%q): empty=%v valid=%v, want both %v", tt.text, r.Empty, r.Valid, tt.empty)
		}
	}
}
