package syntaxtree

import (
	"context"
	"testing"
)

func TestFirstErrorValid(t *testing.T) {
	c := New()
	for _, text := range []string{
		`{"a": 1}`,
		"{\n  \"a\": [1, 2, {\"b\": null}],\n  \"c\": true\n}",
		`[1, "two", false]`,
		`42`,
		`[-1.5e3, "a\u00e9\n\/", {}, []]`,
		`{"k": [true, false, null], "": -0}`,
	} {
		if off, ok, err := c.FirstError(context.Background(), text); err != nil || ok {
			t.Errorf("FirstError(%q) = %d, %v, %v; want no error node", text, off, ok, err)
		}
	}
}

func TestFirstErrorInvalid(t *testing.T) {
	c := New()
	for _, text := range []string{
		`{"a": 1,,}`,
		"{\n  \"a\": 1\n  \"b\": }",
		`{"a" 1}`,
	} {
		off, ok, err := c.FirstError(context.Background(), text)
		if err != nil {
			t.Fatalf("FirstError(%q): %v", text, err)
		}
		if !ok {
			t.Errorf("FirstError(%q) found no error node", text)
			continue
		}
		if off < 0 || off > len(text) {
			t.Errorf("FirstError(%q) offset %d out of range", text, off)
		}
	}
}

func TestFirstErrorRejectsJavaScriptOnlySyntax(t *testing.T) {
	c := New()
	tests := []struct {
		name string
		text string
		want int
	}{
		{"doubled comma in object", `{"a": 1,,}`, 8},
		{"array hole", `[1,,2]`, 3},
		{"trailing comma in array", `[1,]`, 3},
		{"trailing comma in object", `{"a": 1,}`, 8},
		{"leading comma", `[,1]`, 1},
		{"identifier value", `{"a": tru}`, 6},
		{"single-quoted key", `{'a': 1}`, 1},
		{"bare key", `{a: 1}`, 1},
		{"single-quoted value", `['x']`, 1},
		{"hex number", `[0x1F]`, 1},
		{"leading dot", `[.5]`, 1},
		{"plus sign", `[+1]`, 1},
		{"space after minus", `[- 1]`, 3},
		{"undefined", `[undefined]`, 1},
		{"js escape", `["\x41"]`, 2},
		{"raw tab in string", "[\"a\tb\"]", 3},
		{"comment", "[1 /* c */]", 3},
		{"template string", "[`x`]", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			off, ok, err := c.FirstError(context.Background(), tt.text)
			if err != nil {
				t.Fatal(err)
			}
			if !ok || off != tt.want {
				t.Errorf("FirstError(%q) = %d, %v; want %d", tt.text, off, ok, tt.want)
			}
		})
	}
}

func TestLocateIgnoresMessage(t *testing.T) {
	c := New()
	pos, ok := c.Locate("line 99 column 99", "{\n\"a\": 1,,\n}")
	if !ok {
		t.Fatal("Locate found nothing")
	}
	if pos.Line < 1 || pos.Line > 3 {
		t.Errorf("Locate line = %d, want within the document", pos.Line)
	}
	if _, ok := c.Locate("anything", `{"ok": true}`); ok {
		t.Error("Locate reported a position for a valid document")
	}
}

func TestLocatorsChain(t *testing.T) {
	if n := len(Locators(false)); n != 1 {
		t.Errorf("Locators(false) has %d entries", n)
	}
	chain := Locators(true)
	if len(chain) != 2 {
		t.Fatalf("Locators(true) has %d entries", len(chain))
	}
	if _, ok := chain[1].(*Checker); !ok {
		t.Errorf("second locator is %T, want *Checker", chain[1])
	}
}
