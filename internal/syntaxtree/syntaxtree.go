// Package syntaxtree finds the first structural error in a JSON document with
// tree-sitter. It complements message heuristics when a parser error carries
// no usable position.
package syntaxtree

import (
	"context"
	"fmt"
	"sync"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	jssrc "github.com/smacker/go-tree-sitter/javascript"

	"github.com/bethropolis/jsonpad/internal/locate"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/textpos"
)

// The javascript grammar is used for JSON, narrowed by subset. Wrapping the
// document in parentheses makes a top-level object parse as an expression.
const (
	prefix = "("
	suffix = ")"
)

// Checker owns a tree-sitter parser. It is safe for concurrent use.
type Checker struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// New creates a Checker for JSON documents.
func New() *Checker {
	parser := sitter.NewParser()
	parser.SetLanguage(jssrc.GetLanguage())
	return &Checker{parser: parser}
}

// FirstError returns the byte offset in text of the first error in document
// order: an ERROR or MISSING node, or a construct the javascript grammar
// accepts but JSON does not.
func (c *Checker) FirstError(ctx context.Context, text string) (int, bool, error) {
	src := []byte(prefix + text + suffix)

	c.mu.Lock()
	tree, err := c.parser.ParseCtx(ctx, nil, src)
	c.mu.Unlock()
	if err != nil {
		return 0, false, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	at, found := subset{src: src}.program(root)
	kind := "non-JSON"
	if root.HasError() {
		if node := firstErrorNode(root); node != nil && (!found || node.StartByte() <= at) {
			at, found, kind = node.StartByte(), true, node.Type()
		}
	}
	if !found {
		return 0, false, nil
	}

	start, err := safecast.Conv[int](at)
	if err != nil {
		return 0, false, err
	}
	offset := start - len(prefix)
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	logger.DebugTagf("syntaxtree", "first %s node at offset %d", kind, offset)
	return offset, true, nil
}

// Locate implements locate.Locator. The message is ignored; the position
// comes from the syntax tree alone.
func (c *Checker) Locate(_ string, text string) (locate.Position, bool) {
	offset, ok, err := c.FirstError(context.Background(), text)
	if err != nil {
		logger.Warnf("syntaxtree: %v", err)
		return locate.Position{}, false
	}
	if !ok {
		return locate.Position{}, false
	}
	return textpos.FromOffset(text, offset), true
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

// Locators returns the standard locator chain: the message cascade, then the
// syntax tree when structural is set.
func Locators(structural bool) []locate.Locator {
	locators := []locate.Locator{locate.NewCascade(nil)}
	if structural {
		locators = append(locators, New())
	}
	return locators
}
