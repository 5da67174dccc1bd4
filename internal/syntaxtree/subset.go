package syntaxtree

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

var jsonNumberRe = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// subset walks a javascript tree over src and reports the byte offset, in
// src, of the first construct outside JSON. The grammar accepts identifiers,
// single quotes and trailing commas among others.
type subset struct {
	src []byte
}

func (w subset) program(root *sitter.Node) (uint32, bool) {
	seen := false
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child.Type() != "expression_statement" || seen {
			return child.StartByte(), true
		}
		seen = true
		if at, bad := w.statement(child); bad {
			return at, true
		}
	}
	return 0, false
}

func (w subset) statement(n *sitter.Node) (uint32, bool) {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.IsMissing():
			return child.StartByte(), true
		case child.Type() == ";":
		case child.Type() == "parenthesized_expression":
			if at, bad := w.parenthesized(child); bad {
				return at, true
			}
		default:
			return child.StartByte(), true
		}
	}
	return 0, false
}

func (w subset) parenthesized(n *sitter.Node) (uint32, bool) {
	values := 0
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.IsError() || child.IsMissing():
			return child.StartByte(), true
		case child.Type() == "(" || child.Type() == ")":
		default:
			values++
			if values > 1 {
				return child.StartByte(), true
			}
			if at, bad := w.value(child); bad {
				return at, true
			}
		}
	}
	if values == 0 {
		return n.StartByte(), true
	}
	return 0, false
}

func (w subset) value(n *sitter.Node) (uint32, bool) {
	if n.IsError() || n.IsMissing() {
		return n.StartByte(), true
	}
	switch n.Type() {
	case "object":
		return w.members(n, "{", "}", w.pair)
	case "array":
		return w.members(n, "[", "]", w.value)
	case "string":
		return w.string(n)
	case "number":
		if !jsonNumberRe.MatchString(n.Content(w.src)) {
			return n.StartByte(), true
		}
		return 0, false
	case "true", "false", "null":
		return 0, false
	case "unary_expression":
		return w.negative(n)
	}
	return n.StartByte(), true
}

// members checks the comma-separated children of an object or array. A comma
// must follow a member; a closing bracket must not follow a comma.
func (w subset) members(n *sitter.Node, open, close string, member func(*sitter.Node) (uint32, bool)) (uint32, bool) {
	expectMember := true
	afterComma := false
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.IsError() || child.IsMissing() || child.Type() == "comment":
			return child.StartByte(), true
		case child.Type() == open:
		case child.Type() == ",":
			if expectMember {
				return child.StartByte(), true
			}
			expectMember, afterComma = true, true
		case child.Type() == close:
			if afterComma && expectMember {
				return child.StartByte(), true
			}
		default:
			if !expectMember {
				return child.StartByte(), true
			}
			if at, bad := member(child); bad {
				return at, true
			}
			expectMember, afterComma = false, false
		}
	}
	return 0, false
}

func (w subset) pair(n *sitter.Node) (uint32, bool) {
	if n.Type() != "pair" {
		return n.StartByte(), true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsError() || child.IsMissing() || child.Type() == "comment" {
			return child.StartByte(), true
		}
	}
	key := n.ChildByFieldName("key")
	if key == nil {
		return n.StartByte(), true
	}
	if key.Type() != "string" {
		return key.StartByte(), true
	}
	if at, bad := w.string(key); bad {
		return at, true
	}
	value := n.ChildByFieldName("value")
	if value == nil {
		return n.EndByte(), true
	}
	return w.value(value)
}

func (w subset) string(n *sitter.Node) (uint32, bool) {
	start := n.StartByte()
	if int(start) >= len(w.src) || w.src[start] != '"' {
		return start, true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.IsError() || child.IsMissing():
			return child.StartByte(), true
		case child.Type() == `"`:
		case child.Type() == "string_fragment":
			text := child.Content(w.src)
			for j := 0; j < len(text); j++ {
				if text[j] < 0x20 {
					return child.StartByte() + uint32(j), true
				}
			}
		case child.Type() == "escape_sequence":
			if !jsonEscape(child.Content(w.src)) {
				return child.StartByte(), true
			}
		default:
			return child.StartByte(), true
		}
	}
	return 0, false
}

// negative allows a minus sign directly in front of a number.
func (w subset) negative(n *sitter.Node) (uint32, bool) {
	op := n.ChildByFieldName("operator")
	arg := n.ChildByFieldName("argument")
	if op == nil || arg == nil || op.Type() != "-" {
		return n.StartByte(), true
	}
	if arg.Type() != "number" || arg.StartByte() != op.EndByte() {
		return arg.StartByte(), true
	}
	return w.value(arg)
}

func jsonEscape(s string) bool {
	if len(s) == 2 && s[0] == '\\' {
		switch s[1] {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			return true
		}
		return false
	}
	if len(s) != 6 || s[:2] != `\u` {
		return false
	}
	for i := 2; i < 6; i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
