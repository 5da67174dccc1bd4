// internal/event/event.go
package event

import (
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeBufferModified  // Buffer content changed (insert/delete/replace)
	TypeBufferLoaded    // A buffer was loaded from a file or the session store
	TypeBufferSaved     // A buffer was written to disk
	TypeCursorMoved     // The cursor offset changed
	TypeValidityChanged // The document switched between valid and invalid

	TypeThemeChanged
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:         "Unknown",
	TypeBufferModified:  "BufferModified",
	TypeBufferLoaded:    "BufferLoaded",
	TypeBufferSaved:     "BufferSaved",
	TypeCursorMoved:     "CursorMoved",
	TypeValidityChanged: "ValidityChanged",
	TypeThemeChanged:    "ThemeChanged",
	TypeAppQuit:         "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the edit that changed the buffer.
type BufferModifiedData struct {
	Edit types.EditInfo
}

// BufferLoadedData names the source of the loaded content: a file path, or
// empty when restored from the session store.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains the path written.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor offset.
type CursorMovedData struct {
	Offset int
}

// ValidityChangedData reports the new validity and, when invalid, the parser
// message and located position.
type ValidityChangedData struct {
	Valid    bool
	Message  string
	Position *textpos.Position
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}
