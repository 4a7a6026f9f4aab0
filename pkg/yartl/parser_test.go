package yartl

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog
}

func TestParseTextAndOutput(t *testing.T) {
	prog := mustParse(t, "Hello {{ name }}!")
	if len(prog.Stmts) != 3 {
		t.Fatalf("want 3 statements, got %d", len(prog.Stmts))
	}
	if tn, ok := prog.Stmts[0].(*TextStmt); !ok || tn.Text != "Hello " {
		t.Fatalf("stmt0 not Text('Hello '): %#v", prog.Stmts[0])
	}
	on, ok := prog.Stmts[1].(*OutputStmt)
	if !ok {
		t.Fatalf("stmt1 not Output: %#v", prog.Stmts[1])
	}
	if v, ok := on.Expr.(*Variable); !ok || v.Name != "name" {
		t.Fatalf("stmt1 expr not Variable(name): %#v", on.Expr)
	}
	if tn, ok := prog.Stmts[2].(*TextStmt); !ok || tn.Text != "!" {
		t.Fatalf("stmt2 not Text('!'): %#v", prog.Stmts[2])
	}
}

func TestParsePathIsLeftAssociative(t *testing.T) {
	prog := mustParse(t, "{{ a.b.c }}")
	x := prog.Stmts[0].(*OutputStmt).Expr
	outer, ok := x.(*PathAccess)
	if !ok || outer.Field != "c" {
		t.Fatalf("outer not Path(_, c): %#v", x)
	}
	inner, ok := outer.Base.(*PathAccess)
	if !ok || inner.Field != "b" {
		t.Fatalf("inner not Path(_, b): %#v", outer.Base)
	}
	if v, ok := inner.Base.(*Variable); !ok || v.Name != "a" {
		t.Fatalf("root not Variable(a): %#v", inner.Base)
	}
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`{{ a || b && c }}`, "Or(Variable(a), And(Variable(b), Variable(c)))"},
		{`{{ a && b || c }}`, "Or(And(Variable(a), Variable(b)), Variable(c))"},
		{`{{ a || b || c }}`, "Or(Or(Variable(a), Variable(b)), Variable(c))"},
		{`{{ a == "x" && !b }}`, `And(Equals(Variable(a), String("x")), Not(Variable(b)))`},
		{`{{ !a.b != c }}`, "NotEquals(Not(Path(Variable(a), b)), Variable(c))"},
		{`{{ "lit" }}`, `String("lit")`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			prog := mustParse(t, tc.src)
			got := ppExpr(prog.Stmts[0].(*OutputStmt).Expr)
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseForAndIf(t *testing.T) {
	prog := mustParse(t, "{{ for r in rows }}{{ if r.ok }}Y{{ else }}N{{ end }}{{ end }}")
	if len(prog.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Stmts))
	}
	fs, ok := prog.Stmts[0].(*ForStmt)
	if !ok || fs.Binding != "r" {
		t.Fatalf("not For(r ...): %#v", prog.Stmts[0])
	}
	if v, ok := fs.Iterable.(*Variable); !ok || v.Name != "rows" {
		t.Fatalf("iterable not Variable(rows): %#v", fs.Iterable)
	}
	if len(fs.Body) != 1 {
		t.Fatalf("for body: want 1 statement, got %d", len(fs.Body))
	}
	is, ok := fs.Body[0].(*IfStmt)
	if !ok {
		t.Fatalf("body not If: %#v", fs.Body[0])
	}
	if len(is.Then) != 1 || len(is.Else) != 1 {
		t.Fatalf("if branches: then=%d else=%d", len(is.Then), len(is.Else))
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	prog := mustParse(t, "{{ if a }}x{{ end }}")
	is := prog.Stmts[0].(*IfStmt)
	if is.Else != nil {
		t.Fatalf("else branch should be absent: %#v", is.Else)
	}
	prog = mustParse(t, "{{ if a }}x{{ else }}{{ end }}")
	is = prog.Stmts[0].(*IfStmt)
	if is.Else == nil || len(is.Else) != 0 {
		t.Fatalf("empty else branch should be present and empty: %#v", is.Else)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		expected string
	}{
		{"unmatched end", "a{{ end }}", "statement"},
		{"unmatched else", "{{ else }}", "statement"},
		{"missing end for", "{{ for x in xs }}body", "'{{ end }}'"},
		{"missing end if", "{{ if x }}body{{ else }}", "'{{ end }}'"},
		{"else in for", "{{ for x in xs }}a{{ else }}b{{ end }}", "'{{ end }}'"},
		{"missing in", "{{ for x xs }}{{ end }}", "'in'"},
		{"for without binding", "{{ for in xs }}{{ end }}", "identifier"},
		{"iterable is not a path", "{{ for x in !xs }}{{ end }}", "identifier or string literal"},
		{"empty directive", "{{ }}", "expression"},
		{"chained comparison", `{{ a == b == c }}`, "'}}'"},
		{"double not", "{{ !!a }}", "identifier or string literal"},
		{"dangling dot", "{{ a. }}", "identifier"},
		{"keyword as field", "{{ a.end }}", "identifier"},
		{"reserved when", "{{ when }}", "expression"},
		{"trailing tokens in directive", "{{ a b }}", "'}}'"},
		{"end with arguments", "{{ if a }}{{ end a }}", "'}}'"},
		{"dangling operator", "{{ a && }}", "identifier or string literal"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.src)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("want *ParseError, got %v", err)
			}
			if perr.Expected != tc.expected {
				t.Fatalf("expected field: got %q, want %q (%v)", perr.Expected, tc.expected, err)
			}
			if !strings.Contains(err.Error(), "found") {
				t.Fatalf("message should name the found token: %v", err)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseString("line one\n  {{ end }}")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if perr.Pos.Line != 2 || perr.Pos.Col != 6 {
		t.Fatalf("position: got %s, want 2:6", perr.Pos)
	}
}

func TestPretty(t *testing.T) {
	prog := mustParse(t, "A{{ for x in xs }}{{ x }}{{ end }}{{ if a }}B{{ else }}C{{ end }}")
	s := Pretty(prog)
	for _, want := range []string{"Program", `Text("A")`, "For(x in Variable(xs))", "Output(Variable(x))", "If(Variable(a))", "Else"} {
		if !strings.Contains(s, want) {
			t.Fatalf("pretty output missing %q:\n%s", want, s)
		}
	}
}

func TestNamesSkipsLoopBindings(t *testing.T) {
	prog := mustParse(t, `{{ title }}{{ for r in rows }}{{ r.name }}{{ sep }}{{ end }}{{ if !title }}{{ rows.x }}{{ end }}`)
	got := strings.Join(Names(prog), ",")
	if got != "title,rows,sep" {
		t.Fatalf("got %q", got)
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	prog := mustParse(t, `{{ if a == "x" }}{{ for i in b.c }}{{ i }}{{ end }}{{ end }}`)
	count := 0
	err := Walk(VisitorFunc(func(n Node) error {
		count++
		return nil
	}), prog)
	if err != nil {
		t.Fatalf("walk error: %v", err)
	}
	// Program, If, Equals, Variable(a), String, For, Path, Variable(b), Output, Variable(i)
	if count != 10 {
		t.Fatalf("visited %d nodes, want 10", count)
	}
}
