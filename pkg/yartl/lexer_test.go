package yartl

import (
	"errors"
	"strings"
	"testing"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func sameKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizeTextAndOutput(t *testing.T) {
	toks, err := Tokenize([]byte("Hello {{ name }}!"))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []TokenKind{TokText, TokLeftBraces, TokIdent, TokRightBraces, TokText}
	if got := kinds(toks); !sameKinds(got, want) {
		t.Fatalf("kinds: got %v, want %v", got, want)
	}
	if toks[0].Val != "Hello " || toks[2].Val != "name" || toks[4].Val != "!" {
		t.Fatalf("unexpected values: %#v", toks)
	}
}

func TestTokenizeElidesEmptyText(t *testing.T) {
	toks, err := Tokenize([]byte("{{ a }}{{ b }}"))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	for _, tok := range toks {
		if tok.Kind == TokText {
			t.Fatalf("unexpected text token between adjacent directives: %#v", toks)
		}
	}
	if len(toks) != 6 {
		t.Fatalf("want 6 tokens, got %d", len(toks))
	}
}

func TestTokenizeKeywordsAndOperators(t *testing.T) {
	src := `{{ for x in items if else end when format != ! == && || . "s" 'q' }}`
	toks, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []TokenKind{
		TokLeftBraces, TokFor, TokIdent, TokIn, TokIdent, TokIf, TokElse, TokEnd, TokWhen,
		TokIdent, TokNotEq, TokNot, TokEq, TokAnd, TokOr, TokDot, TokString, TokString,
		TokRightBraces,
	}
	if got := kinds(toks); !sameKinds(got, want) {
		t.Fatalf("kinds:\n got %v\nwant %v", got, want)
	}
	if toks[9].Val != "format" {
		t.Fatalf("keyword prefix split an identifier: %q", toks[9].Val)
	}
	if toks[16].Val != "s" || toks[17].Val != "q" {
		t.Fatalf("string values: %q %q", toks[16].Val, toks[17].Val)
	}
}

func TestTokenizeNoWhitespaceNeeded(t *testing.T) {
	toks, err := Tokenize([]byte(`{{!a.b=="x"}}`))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []TokenKind{TokLeftBraces, TokNot, TokIdent, TokDot, TokIdent, TokEq, TokString, TokRightBraces}
	if got := kinds(toks); !sameKinds(got, want) {
		t.Fatalf("kinds: got %v, want %v", got, want)
	}
}

func TestTokenizeStringIsVerbatim(t *testing.T) {
	toks, err := Tokenize([]byte(`{{ "a\n}} {{ 'b" }}`))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if toks[1].Kind != TokString || toks[1].Val != `a\n}} {{ 'b` {
		t.Fatalf("string literal not taken verbatim: %#v", toks[1])
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, err := Tokenize([]byte("ab\ncd {{ x }}"))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if p := toks[1].Pos; p.Line != 2 || p.Col != 4 || p.Offset != 6 {
		t.Fatalf("'{{' position: got %+v", p)
	}
	if p := toks[2].Pos; p.Line != 2 || p.Col != 7 {
		t.Fatalf("identifier position: got %+v", p)
	}
}

func TestTokenizeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unterminated directive", "a {{ x "},
		{"unterminated directive at eof", "a {{"},
		{"unterminated string", `{{ "abc }}`},
		{"unrecognized character", "{{ a + b }}"},
		{"single ampersand", "{{ a & b }}"},
		{"single equals", "{{ a = b }}"},
		{"digit start", "{{ 1a }}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tc.src))
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("want *LexError, got %v", err)
			}
		})
	}
}

func TestTokenizeTripleBraceSplitsOnFirstPair(t *testing.T) {
	// "{{{" opens a directive at the first "{{"; the third brace is then an
	// unrecognized character inside it.
	_, err := Tokenize([]byte("a{{{ x }}"))
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("want *LexError, got %v", err)
	}
	if lexErr.Pos.Line != 1 || lexErr.Pos.Col != 4 {
		t.Fatalf("position: got %s, want 1:4", lexErr.Pos)
	}
	if !strings.Contains(lexErr.Msg, "'{'") {
		t.Fatalf("message should name the brace: %q", lexErr.Msg)
	}
}

func TestTokenizeClosingBracesOutsideIsText(t *testing.T) {
	toks, err := Tokenize([]byte("a }} b"))
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != TokText || toks[0].Val != "a }} b" {
		t.Fatalf("got %#v", toks)
	}
}
