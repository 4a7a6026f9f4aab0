package yartl

// The lexer makes a single forward pass over the source. Outside a directive
// it collects raw text; between {{ and }} it splits whitespace-separated
// keywords, identifiers, string literals and operators.

type lexer struct {
	src    []byte
	i      int
	n      int
	line   int
	col    int
	inside bool
	open   Pos // position of the {{ that opened the current directive
	toks   []Token
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, n: len(src), line: 1, col: 1}
}

// Tokenize splits src into tokens. The result never contains TokEOF.
func Tokenize(src []byte) ([]Token, error) {
	l := newLexer(src)
	for l.i < l.n {
		var err error
		if l.inside {
			err = l.scanInside()
		} else {
			l.scanOutside()
		}
		if err != nil {
			return nil, err
		}
	}
	if l.inside {
		return nil, &LexError{Pos: l.open, Msg: "unterminated directive, missing '}}'"}
	}
	return l.toks, nil
}

func (l *lexer) pos() Pos { return Pos{Offset: l.i, Line: l.line, Col: l.col} }

func (l *lexer) advance(k int) {
	for ; k > 0 && l.i < l.n; k-- {
		if l.src[l.i] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.i++
	}
}

func (l *lexer) peek() byte {
	if l.i >= l.n {
		return 0
	}
	return l.src[l.i]
}

func (l *lexer) hasPrefix(s string) bool {
	if l.i+len(s) > l.n {
		return false
	}
	for j := 0; j < len(s); j++ {
		if l.src[l.i+j] != s[j] {
			return false
		}
	}
	return true
}

func (l *lexer) emit(kind TokenKind, val string, at Pos) {
	l.toks = append(l.toks, Token{Kind: kind, Val: val, Pos: at})
}

// scanOutside emits the text up to the next {{ (if any) and then the {{.
func (l *lexer) scanOutside() {
	start := l.pos()
	for l.i < l.n && !l.hasPrefix("{{") {
		l.advance(1)
	}
	if l.i > start.Offset {
		l.emit(TokText, string(l.src[start.Offset:l.i]), start)
	}
	if l.i < l.n {
		l.open = l.pos()
		l.emit(TokLeftBraces, "{{", l.open)
		l.advance(2)
		l.inside = true
	}
}

// scanInside emits exactly one token from inside a directive, or nothing if
// only whitespace remains before end of input.
func (l *lexer) scanInside() error {
	for l.i < l.n && isSpace(l.peek()) {
		l.advance(1)
	}
	if l.i >= l.n {
		return nil
	}
	at := l.pos()
	if l.hasPrefix("}}") {
		l.emit(TokRightBraces, "}}", at)
		l.advance(2)
		l.inside = false
		return nil
	}
	c := l.peek()
	switch {
	case isIdentStart(c):
		start := l.i
		for l.i < l.n && isIdentPart(l.peek()) {
			l.advance(1)
		}
		word := string(l.src[start:l.i])
		if kind, ok := keywords[word]; ok {
			l.emit(kind, word, at)
		} else {
			l.emit(TokIdent, word, at)
		}
		return nil
	case c == '"' || c == '\'':
		l.advance(1)
		start := l.i
		for l.i < l.n && l.peek() != c {
			l.advance(1)
		}
		if l.i >= l.n {
			return &LexError{Pos: at, Msg: "unterminated string literal"}
		}
		l.emit(TokString, string(l.src[start:l.i]), at)
		l.advance(1)
		return nil
	}
	for _, op := range operators {
		if l.hasPrefix(op.text) {
			l.emit(op.kind, op.text, at)
			l.advance(len(op.text))
			return nil
		}
	}
	return &LexError{Pos: at, Msg: "unrecognized character " + quoteByte(c)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return "'" + string(rune(b)) + "'"
	}
	const hex = "0123456789abcdef"
	return "0x" + string([]byte{hex[b>>4], hex[b&0xf]})
}
