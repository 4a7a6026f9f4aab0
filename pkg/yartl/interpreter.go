package yartl

import (
	"fmt"
	"strings"
)

// Execute renders prog against ctx. ctx is never modified. On error the
// partial output is discarded.
func Execute(prog *Program, ctx Value) (string, error) {
	in := &interpreter{scope: newScope(ctx)}
	if err := in.execStmts(prog.Stmts); err != nil {
		return "", err
	}
	return in.out.String(), nil
}

type interpreter struct {
	scope *scope
	out   strings.Builder
}

func (in *interpreter) execStmts(stmts []Stmt) error {
	for _, s := range stmts {
		if err := in.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *interpreter) exec(s Stmt) error {
	switch t := s.(type) {
	case *TextStmt:
		in.out.WriteString(t.Text)
	case *OutputStmt:
		v, err := in.eval(t.Expr)
		if err != nil {
			return err
		}
		text, ok := Text(v)
		if !ok {
			return runtimeErrorf(ErrNotRenderable, t.Expr.Position(), "cannot output %s %s", v.Kind(), describe(t.Expr))
		}
		in.out.WriteString(text)
	case *ForStmt:
		v, err := in.eval(t.Iterable)
		if err != nil {
			return err
		}
		items, ok := AsArray(v)
		if !ok {
			return runtimeErrorf(ErrNotAnArray, t.Iterable.Position(), "%s is %s", describe(t.Iterable), v.Kind())
		}
		for _, it := range items {
			in.scope.push(t.Binding, it)
			err := in.execStmts(t.Body)
			in.scope.pop()
			if err != nil {
				return err
			}
		}
	case *IfStmt:
		b, err := in.evalBool(t.Cond)
		if err != nil {
			return err
		}
		if b {
			return in.execStmts(t.Then)
		}
		return in.execStmts(t.Else)
	default:
		return fmt.Errorf("unhandled statement type: %T", s)
	}
	return nil
}

func (in *interpreter) eval(x Expr) (Value, error) {
	switch t := x.(type) {
	case *StringLit:
		return StringValue(t.Value), nil
	case *Variable:
		v, ok := in.scope.lookup(t.Name)
		if !ok {
			return nil, runtimeErrorf(ErrUndefinedName, t.Pos, "%q", t.Name)
		}
		if v == nil {
			return NullValue{}, nil
		}
		return v, nil
	case *PathAccess:
		base, err := in.eval(t.Base)
		if err != nil {
			return nil, err
		}
		obj, ok := AsObject(base)
		if !ok {
			return nil, runtimeErrorf(ErrNotAnObject, t.Base.Position(), "%s is %s, cannot access field %q", describe(t.Base), base.Kind(), t.Field)
		}
		v, ok := obj[t.Field]
		if !ok || v == nil {
			return NullValue{}, nil
		}
		return v, nil
	case *NotExpr:
		b, err := in.evalBool(t.X)
		if err != nil {
			return nil, err
		}
		return BoolValue(!b), nil
	case *BinaryExpr:
		return in.evalBinary(t)
	}
	return nil, fmt.Errorf("unhandled expression type: %T", x)
}

func (in *interpreter) evalBinary(x *BinaryExpr) (Value, error) {
	switch x.Op {
	case TokEq, TokNotEq:
		l, err := in.eval(x.Left)
		if err != nil {
			return nil, err
		}
		r, err := in.eval(x.Right)
		if err != nil {
			return nil, err
		}
		eq := Equal(l, r)
		return BoolValue(eq == (x.Op == TokEq)), nil
	case TokAnd, TokOr:
		l, err := in.evalBool(x.Left)
		if err != nil {
			return nil, err
		}
		// The right operand is skipped once the left decides the result.
		if l == (x.Op == TokOr) {
			return BoolValue(l), nil
		}
		r, err := in.evalBool(x.Right)
		if err != nil {
			return nil, err
		}
		return BoolValue(r), nil
	}
	return nil, fmt.Errorf("unhandled operator: %v", x.Op)
}

func (in *interpreter) evalBool(x Expr) (bool, error) {
	v, err := in.eval(x)
	if err != nil {
		return false, err
	}
	b, ok := AsBool(v)
	if !ok {
		return false, runtimeErrorf(ErrNotABoolean, x.Position(), "%s is %s", describe(x), v.Kind())
	}
	return b, nil
}

// describe renders an expression back to template syntax for error messages.
func describe(x Expr) string {
	switch t := x.(type) {
	case *StringLit:
		return fmt.Sprintf("%q", t.Value)
	case *Variable:
		return t.Name
	case *PathAccess:
		return describe(t.Base) + "." + t.Field
	case *NotExpr:
		return "!" + describe(t.X)
	case *BinaryExpr:
		return describe(t.Left) + " " + strings.Trim(t.Op.String(), "'") + " " + describe(t.Right)
	}
	return fmt.Sprintf("%T", x)
}
