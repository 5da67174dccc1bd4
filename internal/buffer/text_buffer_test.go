package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInsertDelete(t *testing.T) {
	tb := NewTextBuffer()
	if _, err := tb.Insert(0, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	edit, err := tb.Insert(6, []byte(`,"b":2`))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if got := tb.String(); got != `{"a":1,"b":2}` {
		t.Fatalf("content = %q", got)
	}
	if edit.Start != 6 || edit.NewEnd != 12 || edit.Delta() != 6 {
		t.Errorf("edit = %+v", edit)
	}

	edit, removed, err := tb.Delete(12, 6)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if string(removed) != `,"b":2` {
		t.Errorf("removed = %q", removed)
	}
	if edit.Start != 6 || edit.OldEnd != 12 || edit.Delta() != -6 {
		t.Errorf("edit = %+v", edit)
	}
	if got := tb.String(); got != `{"a":1}` {
		t.Errorf("content = %q", got)
	}
	if !tb.IsModified() {
		t.Error("buffer not marked modified")
	}
}

func TestDeleteDoesNotAliasPreviousBytes(t *testing.T) {
	tb := NewTextBuffer()
	tb.SetContent([]byte("abcdef"))
	before := tb.Bytes()
	if _, _, err := tb.Delete(1, 3); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if string(before) != "abcdef" {
		t.Errorf("earlier Bytes() result changed to %q", before)
	}
}

func TestOutOfBounds(t *testing.T) {
	tb := NewTextBuffer()
	tb.SetContent([]byte("[]"))
	if _, err := tb.Insert(3, []byte("x")); err == nil {
		t.Error("Insert past end succeeded")
	}
	if _, _, err := tb.Delete(-1, 1); err == nil {
		t.Error("Delete before start succeeded")
	}
	if _, _, err := tb.Delete(1, 1); err != nil {
		t.Errorf("empty Delete: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := os.WriteFile(path, []byte("{\n}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tb := NewTextBuffer()
	if err := tb.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tb.String() != "{\n}\n" || tb.IsModified() || tb.FilePath() != path {
		t.Fatalf("after Load: %q modified=%v path=%q", tb.String(), tb.IsModified(), tb.FilePath())
	}

	if _, err := tb.Insert(1, []byte(`"k":0`)); err != nil {
		t.Fatal(err)
	}
	if err := tb.Save(""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\"k\":0\n}\n" {
		t.Errorf("saved %q", data)
	}
	if tb.IsModified() {
		t.Error("still modified after Save")
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.json")
	tb := NewTextBuffer()
	tb.SetContent([]byte("old"))
	if err := tb.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tb.Len() != 0 || tb.FilePath() != path {
		t.Errorf("Load of missing file: len=%d path=%q", tb.Len(), tb.FilePath())
	}
}

func TestSaveWithoutPath(t *testing.T) {
	tb := NewTextBuffer()
	if err := tb.Save(""); !errors.Is(err, ErrNoPath) {
		t.Errorf("Save err = %v, want ErrNoPath", err)
	}
}

func TestReset(t *testing.T) {
	tb := NewTextBuffer()
	if err := tb.Load(filepath.Join(t.TempDir(), "a.json")); err != nil {
		t.Fatal(err)
	}
	tb.SetContent([]byte("x"))
	tb.Reset([]byte(`{"restored":true}`))
	if tb.IsModified() || tb.FilePath() != "" || tb.String() != `{"restored":true}` {
		t.Errorf("after Reset: %q modified=%v path=%q", tb.String(), tb.IsModified(), tb.FilePath())
	}
}
