package locate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SyntaxError is a JSON syntax error with the byte offset of the offending
// input.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Msg, e.Offset)
}

// ErrorOffset implements OffsetError.
func (e *SyntaxError) ErrorOffset() int {
	return e.Offset
}

// JSONParser validates strict JSON with encoding/json. With Exact set, syntax
// errors are returned as *SyntaxError carrying the offending offset; otherwise
// the bare encoding/json error is returned, which only carries a message.
type JSONParser struct {
	Exact bool
}

// Parse implements Parser.
func (p JSONParser) Parse(text string) error {
	var raw json.RawMessage
	err := json.Unmarshal([]byte(text), &raw)
	if err == nil || !p.Exact {
		return err
	}

	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	// encoding/json reports how many bytes were read, so the offending byte
	// is the last one read. Running out of input points past the end.
	offset := int(se.Offset) - 1
	if se.Error() == "unexpected end of JSON input" {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	return &SyntaxError{Msg: se.Error(), Offset: offset}
}
