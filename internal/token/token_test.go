package token

import (
	"reflect"
	"testing"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func nonSpaceKinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != Whitespace {
			out = append(out, t.Kind)
		}
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Kind
	}{
		{"empty", "", []Kind{}},
		{"object", `{"a":1}`, []Kind{Bracket, Key, Punctuation, Number, Bracket}},
		{"array string", `["a"]`, []Kind{Bracket, String, Bracket}},
		{"key with space before colon", `{"a" : 1}`, []Kind{Bracket, Key, Whitespace, Punctuation, Whitespace, Number, Bracket}},
		{"literals", `[true,false,null]`, []Kind{Bracket, Boolean, Punctuation, Boolean, Punctuation, Null, Bracket}},
		{"negative exponent", `-1.5e+10`, []Kind{Number}},
		{"malformed number", `1.2.3-e`, []Kind{Number}},
		{"unknown chars", `@x`, []Kind{Unknown, Unknown}},
		{"literal without boundary", `trueish`, []Kind{Boolean, Unknown, Unknown, Unknown}},
		{"capitalized literal", `True`, []Kind{Unknown, Unknown, Unknown, Unknown}},
		{"escaped quote", `"a\"b"`, []Kind{String}},
		{"unterminated string", `"abc`, []Kind{String}},
		{"trailing backslash", `"abc\`, []Kind{String}},
		{"multibyte unknown", `é`, []Kind{Unknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Tokenize(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) kinds = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeLossless(t *testing.T) {
	inputs := []string{
		"",
		`{"a":1}`,
		"{\n  \"a\": [1, 2.5e3, true, null],\r\n  \"b\": \"x\\\"y\"\n}",
		`{"unterminated`,
		`{,,}][::`,
		"\t\t\n\n",
		"ünïcødé 日本 \"ключ\": 1",
		"\xff\xfe garbage",
		`"\`,
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		if got := Join(tokens); got != in {
			t.Errorf("Join(Tokenize(%q)) = %q", in, got)
		}
		offset := 0
		for _, tok := range tokens {
			if tok.Offset != offset {
				t.Errorf("token %q offset = %d, want %d", tok.Text, tok.Offset, offset)
			}
			if tok.Text == "" {
				t.Errorf("empty token in %q", in)
			}
			offset = tok.End()
		}
	}
}

func TestKeyReclassification(t *testing.T) {
	obj := Tokenize(`{"a":1}`)
	if obj[1].Text != `"a"` || obj[1].Kind != Key {
		t.Errorf(`{"a":1}: token %q kind = %v, want key`, obj[1].Text, obj[1].Kind)
	}
	arr := Tokenize(`["a"]`)
	if arr[1].Text != `"a"` || arr[1].Kind != String {
		t.Errorf(`["a"]: token %q kind = %v, want string`, arr[1].Text, arr[1].Kind)
	}
	multi := Tokenize("{\"a\"\n\t :1}")
	if multi[1].Kind != Key {
		t.Errorf("key followed by newline and colon classified as %v", multi[1].Kind)
	}
}

func TestWhitespaceIndependence(t *testing.T) {
	spaced := nonSpaceKinds(Tokenize(`{ "a" : 1 , "b" : [ true , null ] }`))
	compact := nonSpaceKinds(Tokenize(`{"a":1,"b":[true,null]}`))
	if !reflect.DeepEqual(spaced, compact) {
		t.Errorf("kinds differ:\n spaced  %v\n compact %v", spaced, compact)
	}
}

func TestWhitespaceKeepsNewlines(t *testing.T) {
	tokens := Tokenize("[\r\n  1]")
	if tokens[1].Kind != Whitespace || tokens[1].Text != "\r\n  " {
		t.Errorf("whitespace token = %+v", tokens[1])
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	in := "{\"k\": [1, \"two\", {\"three\": null}]}\n"
	first := Tokenize(in)
	second := Tokenize(Join(first))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-tokenizing changed the stream:\n%v\n%v", first, second)
	}
}

func TestKindClassAndStyle(t *testing.T) {
	if Boolean.Class() != Null.Class() {
		t.Errorf("boolean and null classes differ: %q %q", Boolean.Class(), Null.Class())
	}
	if Whitespace.Class() != "" {
		t.Errorf("whitespace class = %q, want empty", Whitespace.Class())
	}
	if Kind(99).String() != "unknown" || Kind(99).Class() != "tok-unknown" {
		t.Errorf("out of range kind: %q %q", Kind(99).String(), Kind(99).Class())
	}
	if Key.StyleName() == String.StyleName() {
		t.Errorf("key and string share a style")
	}
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{" \t\r\n", true},
		{"\u00a0", false},
		{"\v", false},
		{" \f", false},
		{" 1 ", false},
	}
	for _, tt := range tests {
		if got := IsBlank(tt.text); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
