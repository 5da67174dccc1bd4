package history

import (
	"errors"
	"testing"
)

type fakeTarget struct {
	text   []byte
	cursor int
	fail   bool
}

func (f *fakeTarget) ApplyInsert(offset int, text []byte) error {
	if f.fail {
		return errors.New("refused")
	}
	out := append([]byte(nil), f.text[:offset]...)
	out = append(out, text...)
	f.text = append(out, f.text[offset:]...)
	return nil
}

func (f *fakeTarget) ApplyDelete(start, end int) error {
	if f.fail {
		return errors.New("refused")
	}
	f.text = append(append([]byte(nil), f.text[:start]...), f.text[end:]...)
	return nil
}

func (f *fakeTarget) SetCursor(offset int) { f.cursor = offset }

// typeInto applies and records an insert the way the session does.
func typeInto(m *Manager, f *fakeTarget, offset int, s string) {
	before := f.cursor
	_ = f.ApplyInsert(offset, []byte(s))
	f.cursor = offset + len(s)
	m.RecordChange(Change{Type: InsertAction, Text: []byte(s), Offset: offset, CursorBefore: before})
}

func TestUndoRedo(t *testing.T) {
	f := &fakeTarget{}
	m := NewManager(f, 0)

	typeInto(m, f, 0, "{")
	typeInto(m, f, 1, "}")
	if string(f.text) != "{}" {
		t.Fatalf("text = %q", f.text)
	}

	removed := f.text[0:1]
	_ = f.ApplyDelete(0, 1)
	m.RecordChange(Change{Type: DeleteAction, Text: []byte(string(removed)), Offset: 0, CursorBefore: 1})
	if string(f.text) != "}" {
		t.Fatalf("text = %q", f.text)
	}

	if ok, err := m.Undo(); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if string(f.text) != "{}" || f.cursor != 1 {
		t.Errorf("after undo delete: %q cursor %d", f.text, f.cursor)
	}
	if ok, _ := m.Undo(); !ok || string(f.text) != "{" {
		t.Errorf("after undo insert: %q", f.text)
	}
	if ok, _ := m.Redo(); !ok || string(f.text) != "{}" || f.cursor != 2 {
		t.Errorf("after redo: %q cursor %d", f.text, f.cursor)
	}
	if !m.CanUndo() || !m.CanRedo() {
		t.Error("expected both undo and redo to be available")
	}
}

func TestTypingRunsMerge(t *testing.T) {
	f := &fakeTarget{text: []byte(`{"":1}`)}
	m := NewManager(f, 0)
	for i, r := range "key" {
		typeInto(m, f, 2+i, string(r))
	}
	typeInto(m, f, 6, ",")

	if ok, _ := m.Undo(); !ok || string(f.text) != `{"key":1}` {
		t.Fatalf("undo comma: %q", f.text)
	}
	if ok, _ := m.Undo(); !ok || string(f.text) != `{"":1}` {
		t.Errorf("undo merged run: %q", f.text)
	}
	if m.CanUndo() {
		t.Error("expected empty undo stack")
	}
}

func TestNewChangeClearsRedo(t *testing.T) {
	f := &fakeTarget{}
	m := NewManager(f, 0)
	typeInto(m, f, 0, "[")
	typeInto(m, f, 1, "]")
	m.Undo()
	typeInto(m, f, 1, "1")
	if m.CanRedo() {
		t.Error("redo history survived a new change")
	}
	if ok, _ := m.Redo(); ok {
		t.Error("Redo succeeded on an empty redo stack")
	}
}

func TestMaxHistory(t *testing.T) {
	f := &fakeTarget{}
	m := NewManager(f, 2)
	typeInto(m, f, 0, "[")
	typeInto(m, f, 1, "[")
	typeInto(m, f, 2, "]")
	undone := 0
	for m.CanUndo() {
		m.Undo()
		undone++
	}
	if undone != 2 || string(f.text) != "[" {
		t.Errorf("undid %d changes leaving %q", undone, f.text)
	}
}

func TestUndoFailureKeepsIndex(t *testing.T) {
	f := &fakeTarget{}
	m := NewManager(f, 0)
	typeInto(m, f, 0, "{")
	f.fail = true
	if ok, err := m.Undo(); ok || err == nil {
		t.Fatalf("Undo = %v, %v; want failure", ok, err)
	}
	if !m.CanUndo() {
		t.Error("failed undo consumed the change")
	}
}

func TestReplaceIsOneStep(t *testing.T) {
	f := &fakeTarget{text: []byte(`{"a":1}`)}
	m := NewManager(f, 0)

	old := append([]byte(nil), f.text...)
	pretty := []byte("{\n  \"a\": 1\n}")
	_ = f.ApplyDelete(0, len(old))
	_ = f.ApplyInsert(0, pretty)
	m.RecordChange(Change{Type: ReplaceAction, Text: pretty, Old: old, Offset: 0, CursorBefore: 3})

	if ok, err := m.Undo(); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if string(f.text) != `{"a":1}` || f.cursor != 3 {
		t.Errorf("after undo: %q cursor %d", f.text, f.cursor)
	}
	if ok, _ := m.Redo(); !ok || string(f.text) != string(pretty) || f.cursor != len(pretty) {
		t.Errorf("after redo: %q cursor %d", f.text, f.cursor)
	}
}
