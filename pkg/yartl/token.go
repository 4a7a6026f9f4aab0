package yartl

import "fmt"

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokLeftBraces  // {{
	TokRightBraces // }}
	TokFor
	TokIn
	TokIf
	TokElse
	TokEnd
	TokWhen // reserved
	TokIdent
	TokString
	TokText // raw text outside directives
	TokDot
	TokEq    // ==
	TokNotEq // !=
	TokNot   // !
	TokAnd   // &&
	TokOr    // ||
)

var tokenNames = [...]string{
	TokEOF:         "end of input",
	TokLeftBraces:  "'{{'",
	TokRightBraces: "'}}'",
	TokFor:         "'for'",
	TokIn:          "'in'",
	TokIf:          "'if'",
	TokElse:        "'else'",
	TokEnd:         "'end'",
	TokWhen:        "'when'",
	TokIdent:       "identifier",
	TokString:      "string literal",
	TokText:        "text",
	TokDot:         "'.'",
	TokEq:          "'=='",
	TokNotEq:       "'!='",
	TokNot:         "'!'",
	TokAnd:         "'&&'",
	TokOr:          "'||'",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"for":  TokFor,
	"in":   TokIn,
	"if":   TokIf,
	"else": TokElse,
	"end":  TokEnd,
	"when": TokWhen,
}

// operators are matched longest first.
var operators = []struct {
	text string
	kind TokenKind
}{
	{"==", TokEq},
	{"!=", TokNotEq},
	{"&&", TokAnd},
	{"||", TokOr},
	{"!", TokNot},
	{".", TokDot},
}

// Pos is a location in template source. Line and Col are 1-based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is a single lexical unit. Val holds the raw text for identifiers and
// text runs, and the unquoted contents for string literals.
type Token struct {
	Kind TokenKind
	Val  string
	Pos  Pos
}

func (t Token) String() string {
	switch t.Kind {
	case TokIdent:
		return fmt.Sprintf("identifier %q", t.Val)
	case TokString:
		return fmt.Sprintf("string %q", t.Val)
	case TokText:
		return fmt.Sprintf("text %q", t.Val)
	}
	return t.Kind.String()
}
