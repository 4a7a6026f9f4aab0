package yartl

import (
	"bytes"
	"fmt"
	"strings"
)

type Visitor interface {
	Visit(n Node) error
}

// Walk calls v.Visit for n and then each of its children, depth first.
func Walk(v Visitor, n Node) error {
	if err := v.Visit(n); err != nil {
		return err
	}
	switch t := n.(type) {
	case *Program:
		return walkStmts(v, t.Stmts)
	case *OutputStmt:
		return Walk(v, t.Expr)
	case *ForStmt:
		if err := Walk(v, t.Iterable); err != nil {
			return err
		}
		return walkStmts(v, t.Body)
	case *IfStmt:
		if err := Walk(v, t.Cond); err != nil {
			return err
		}
		if err := walkStmts(v, t.Then); err != nil {
			return err
		}
		return walkStmts(v, t.Else)
	case *PathAccess:
		return Walk(v, t.Base)
	case *NotExpr:
		return Walk(v, t.X)
	case *BinaryExpr:
		if err := Walk(v, t.Left); err != nil {
			return err
		}
		return Walk(v, t.Right)
	}
	return nil
}

func walkStmts(v Visitor, stmts []Stmt) error {
	for _, s := range stmts {
		if err := Walk(v, s); err != nil {
			return err
		}
	}
	return nil
}

// VisitorFunc adapts a function to a Visitor.
type VisitorFunc func(n Node) error

func (f VisitorFunc) Visit(n Node) error { return f(n) }

// Names returns the distinct root variable names a program reads, in order of
// first use, excluding names bound by an enclosing for.
func Names(prog *Program) []string {
	var names []string
	seen := map[string]bool{}
	var bound []string
	var stmts func([]Stmt)
	var expr func(Expr)
	expr = func(x Expr) {
		switch t := x.(type) {
		case *Variable:
			for _, b := range bound {
				if b == t.Name {
					return
				}
			}
			if !seen[t.Name] {
				seen[t.Name] = true
				names = append(names, t.Name)
			}
		case *PathAccess:
			expr(t.Base)
		case *NotExpr:
			expr(t.X)
		case *BinaryExpr:
			expr(t.Left)
			expr(t.Right)
		}
	}
	stmts = func(list []Stmt) {
		for _, s := range list {
			switch t := s.(type) {
			case *OutputStmt:
				expr(t.Expr)
			case *ForStmt:
				expr(t.Iterable)
				bound = append(bound, t.Binding)
				stmts(t.Body)
				bound = bound[:len(bound)-1]
			case *IfStmt:
				expr(t.Cond)
				stmts(t.Then)
				stmts(t.Else)
			}
		}
	}
	stmts(prog.Stmts)
	return names
}

// Pretty returns a line-oriented string representation of the AST.
func Pretty(prog *Program) string {
	var buf bytes.Buffer
	buf.WriteString("Program\n")
	ppStmts(&buf, 2, prog.Stmts)
	return buf.String()
}

func ppStmts(buf *bytes.Buffer, indent int, stmts []Stmt) {
	for _, s := range stmts {
		ppStmt(buf, indent, s)
	}
}

func ppStmt(buf *bytes.Buffer, indent int, s Stmt) {
	ind := strings.Repeat(" ", indent)
	switch t := s.(type) {
	case *TextStmt:
		fmt.Fprintf(buf, "%sText(%q)\n", ind, t.Text)
	case *OutputStmt:
		fmt.Fprintf(buf, "%sOutput(%s)\n", ind, ppExpr(t.Expr))
	case *ForStmt:
		fmt.Fprintf(buf, "%sFor(%s in %s)\n", ind, t.Binding, ppExpr(t.Iterable))
		ppStmts(buf, indent+2, t.Body)
	case *IfStmt:
		fmt.Fprintf(buf, "%sIf(%s)\n", ind, ppExpr(t.Cond))
		ppStmts(buf, indent+2, t.Then)
		if t.Else != nil {
			fmt.Fprintf(buf, "%sElse\n", ind)
			ppStmts(buf, indent+2, t.Else)
		}
	}
}

func ppExpr(x Expr) string {
	switch t := x.(type) {
	case *StringLit:
		return fmt.Sprintf("String(%q)", t.Value)
	case *Variable:
		return fmt.Sprintf("Variable(%s)", t.Name)
	case *PathAccess:
		return fmt.Sprintf("Path(%s, %s)", ppExpr(t.Base), t.Field)
	case *NotExpr:
		return fmt.Sprintf("Not(%s)", ppExpr(t.X))
	case *BinaryExpr:
		var name string
		switch t.Op {
		case TokEq:
			name = "Equals"
		case TokNotEq:
			name = "NotEquals"
		case TokAnd:
			name = "And"
		case TokOr:
			name = "Or"
		}
		return fmt.Sprintf("%s(%s, %s)", name, ppExpr(t.Left), ppExpr(t.Right))
	}
	return fmt.Sprintf("%T", x)
}
