package yartl

// Node is any node of a parsed template.
type Node interface {
	Position() Pos
}

// Stmt is a node that produces output.
type Stmt interface {
	Node
	stmt()
}

// Expr is a node that evaluates to a Value.
type Expr interface {
	Node
	expr()
}

// Program is the root node produced by Parse.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Position() Pos {
	if len(p.Stmts) == 0 {
		return Pos{Line: 1, Col: 1}
	}
	return p.Stmts[0].Position()
}

// TextStmt is literal text between directives.
type TextStmt struct {
	Pos  Pos
	Text string
}

// OutputStmt is {{ expr }}.
type OutputStmt struct {
	Pos  Pos
	Expr Expr
}

// ForStmt is {{ for Binding in Iterable }} Body {{ end }}.
type ForStmt struct {
	Pos      Pos
	Binding  string
	Iterable Expr
	Body     []Stmt
}

// IfStmt is {{ if Cond }} Then [{{ else }} Else] {{ end }}. Else is nil when
// the else branch is absent.
type IfStmt struct {
	Pos  Pos
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (s *TextStmt) Position() Pos   { return s.Pos }
func (s *OutputStmt) Position() Pos { return s.Pos }
func (s *ForStmt) Position() Pos    { return s.Pos }
func (s *IfStmt) Position() Pos     { return s.Pos }

func (*TextStmt) stmt()   {}
func (*OutputStmt) stmt() {}
func (*ForStmt) stmt()    {}
func (*IfStmt) stmt()     {}

// StringLit is a quoted string.
type StringLit struct {
	Pos   Pos
	Value string
}

// Variable names a binding in the scope chain.
type Variable struct {
	Pos  Pos
	Name string
}

// PathAccess is Base.Field. Chains nest to the left, so a.b.c is
// PathAccess{PathAccess{Variable{a}, b}, c}.
type PathAccess struct {
	Pos   Pos
	Base  Expr
	Field string
}

// NotExpr is !X.
type NotExpr struct {
	Pos Pos
	X   Expr
}

// BinaryExpr combines Left and Right with Op, which is one of TokEq,
// TokNotEq, TokAnd or TokOr.
type BinaryExpr struct {
	Pos   Pos
	Op    TokenKind
	Left  Expr
	Right Expr
}

func (e *StringLit) Position() Pos  { return e.Pos }
func (e *Variable) Position() Pos   { return e.Pos }
func (e *PathAccess) Position() Pos { return e.Pos }
func (e *NotExpr) Position() Pos    { return e.Pos }
func (e *BinaryExpr) Position() Pos { return e.Pos }

func (*StringLit) expr()  {}
func (*Variable) expr()   {}
func (*PathAccess) expr() {}
func (*NotExpr) expr()    {}
func (*BinaryExpr) expr() {}
