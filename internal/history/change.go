// Package history provides undo/redo functionality via a change history stack.
package history

// ActionType indicates whether text was inserted, deleted or replaced.
type ActionType int

const (
	InsertAction ActionType = iota
	DeleteAction
	ReplaceAction // Old replaced by Text at Offset
)

func (a ActionType) String() string {
	switch a {
	case InsertAction:
		return "insert"
	case DeleteAction:
		return "delete"
	}
	return "replace"
}

// Change represents a single, reversible text operation in byte offsets.
type Change struct {
	Type         ActionType
	Text         []byte // Text inserted or text deleted
	Old          []byte // Replaced text, for ReplaceAction
	Offset       int    // Where the change began
	CursorBefore int    // Cursor offset before this change was applied
}

// End returns the offset just past the changed text.
func (c Change) End() int {
	return c.Offset + len(c.Text)
}
