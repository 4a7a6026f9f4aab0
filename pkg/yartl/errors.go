package yartl

import (
	"errors"
	"fmt"
)

// LexError reports malformed input found by the tokenizer.
type LexError struct {
	Pos Pos
	Msg string
}

func (e *LexError) Error() string { return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg) }

// ParseError reports a grammar violation: the parser wanted Expected and
// found Found.
type ParseError struct {
	Pos      Pos
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Runtime error sentinels. A *RuntimeError unwraps to exactly one of these.
var (
	ErrUndefinedName = errors.New("undefined name")
	ErrNotAnObject   = errors.New("not an object")
	ErrNotAnArray    = errors.New("not an array")
	ErrNotABoolean   = errors.New("not a boolean")
	ErrNotRenderable = errors.New("not renderable")
)

// RuntimeError reports a failure while evaluating a program.
type RuntimeError struct {
	Kind   error // one of the Err* sentinels above
	Pos    Pos
	Detail string
}

func (e *RuntimeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("runtime error at %s: %v", e.Pos, e.Kind)
	}
	return fmt.Sprintf("runtime error at %s: %v: %s", e.Pos, e.Kind, e.Detail)
}

func (e *RuntimeError) Unwrap() error { return e.Kind }

// ContextError reports a context document that could not be decoded. It is
// raised before any template is processed.
type ContextError struct {
	Err error
}

func (e *ContextError) Error() string { return "invalid context: " + e.Err.Error() }

func (e *ContextError) Unwrap() error { return e.Err }

func runtimeErrorf(kind error, pos Pos, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
