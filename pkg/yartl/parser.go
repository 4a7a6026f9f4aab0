package yartl

import (
	"slices"
	"strings"
)

// Parse builds a Program from a token sequence produced by Tokenize. It
// consumes every token; a stray {{ end }} or {{ else }} is an error.
func Parse(toks []Token) (*Program, error) {
	p := &parser{toks: toks}
	stmts, _, err := p.parseStmts()
	if err != nil {
		return nil, err
	}
	return &Program{Stmts: stmts}, nil
}

// ParseString tokenizes and parses src.
func ParseString(src string) (*Program, error) {
	toks, err := Tokenize([]byte(src))
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

type parser struct {
	toks []Token
	i    int
}

func (p *parser) peekAt(k int) Token {
	if p.i+k < len(p.toks) {
		return p.toks[p.i+k]
	}
	eof := Token{Kind: TokEOF, Pos: Pos{Line: 1, Col: 1}}
	if n := len(p.toks); n > 0 {
		eof.Pos = p.toks[n-1].Pos
	}
	return eof
}

func (p *parser) peek() Token { return p.peekAt(0) }

func (p *parser) next() Token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	t := p.peek()
	if t.Kind != kind {
		return t, unexpected(t, kind.String())
	}
	return p.next(), nil
}

func unexpected(found Token, expected string) *ParseError {
	return &ParseError{Pos: found.Pos, Expected: expected, Found: found.String()}
}

// parseStmts parses statements until a {{ end }} or {{ else }} whose keyword
// is in until. The terminator directive is consumed and its keyword returned.
// With no until kinds, it parses to end of input.
func (p *parser) parseStmts(until ...TokenKind) ([]Stmt, TokenKind, error) {
	var stmts []Stmt
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokEOF:
			if len(until) > 0 {
				return nil, TokEOF, unexpected(tok, terminators(until))
			}
			return stmts, TokEOF, nil
		case TokText:
			p.next()
			stmts = append(stmts, &TextStmt{Pos: tok.Pos, Text: tok.Val})
		case TokLeftBraces:
			kw := p.peekAt(1)
			switch kw.Kind {
			case TokEnd, TokElse:
				if !slices.Contains(until, kw.Kind) {
					expected := "statement"
					if len(until) > 0 {
						expected = terminators(until)
					}
					return nil, TokEOF, unexpected(kw, expected)
				}
				p.next()
				p.next()
				if _, err := p.expect(TokRightBraces); err != nil {
					return nil, TokEOF, err
				}
				return stmts, kw.Kind, nil
			case TokFor:
				s, err := p.parseFor()
				if err != nil {
					return nil, TokEOF, err
				}
				stmts = append(stmts, s)
			case TokIf:
				s, err := p.parseIf()
				if err != nil {
					return nil, TokEOF, err
				}
				stmts = append(stmts, s)
			case TokWhen:
				return nil, TokEOF, &ParseError{Pos: kw.Pos, Expected: "expression", Found: "reserved keyword 'when'"}
			default:
				s, err := p.parseOutput()
				if err != nil {
					return nil, TokEOF, err
				}
				stmts = append(stmts, s)
			}
		default:
			return nil, TokEOF, unexpected(tok, "text or '{{'")
		}
	}
}

func terminators(kinds []TokenKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = "'{{ " + strings.Trim(k.String(), "'") + " }}'"
	}
	return strings.Join(names, " or ")
}

func (p *parser) parseFor() (*ForStmt, error) {
	open := p.next()
	p.next() // for
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokIn); err != nil {
		return nil, err
	}
	iter, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRightBraces); err != nil {
		return nil, err
	}
	body, _, err := p.parseStmts(TokEnd)
	if err != nil {
		return nil, err
	}
	return &ForStmt{Pos: open.Pos, Binding: name.Val, Iterable: iter, Body: body}, nil
}

func (p *parser) parseIf() (*IfStmt, error) {
	open := p.next()
	p.next() // if
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRightBraces); err != nil {
		return nil, err
	}
	s := &IfStmt{Pos: open.Pos, Cond: cond}
	var term TokenKind
	s.Then, term, err = p.parseStmts(TokElse, TokEnd)
	if err != nil {
		return nil, err
	}
	if term == TokElse {
		els, _, err := p.parseStmts(TokEnd)
		if err != nil {
			return nil, err
		}
		if els == nil {
			els = []Stmt{}
		}
		s.Else = els
	}
	return s, nil
}

func (p *parser) parseOutput() (*OutputStmt, error) {
	open := p.next()
	if t := p.peek(); t.Kind == TokRightBraces {
		return nil, unexpected(t, "expression")
	}
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRightBraces); err != nil {
		return nil, err
	}
	return &OutputStmt{Pos: open.Pos, Expr: x}, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: left.Position(), Op: TokOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokAnd {
		p.next()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Pos: left.Position(), Op: TokAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseEquality allows at most one comparison; a == b == c is rejected by
// the caller expecting '}}' or a logical operator.
func (p *parser) parseEquality() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if op := p.peek().Kind; op == TokEq || op == TokNotEq {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Pos: left.Position(), Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if t := p.peek(); t.Kind == TokNot {
		p.next()
		x, err := p.parsePath()
		if err != nil {
			return nil, err
		}
		return &NotExpr{Pos: t.Pos, X: x}, nil
	}
	return p.parsePath()
}

func (p *parser) parsePath() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case TokString:
		p.next()
		return &StringLit{Pos: t.Pos, Value: t.Val}, nil
	case TokIdent:
		p.next()
		var x Expr = &Variable{Pos: t.Pos, Name: t.Val}
		for p.peek().Kind == TokDot {
			p.next()
			field, err := p.expect(TokIdent)
			if err != nil {
				return nil, err
			}
			x = &PathAccess{Pos: field.Pos, Base: x, Field: field.Val}
		}
		return x, nil
	}
	return nil, unexpected(t, "identifier or string literal")
}
