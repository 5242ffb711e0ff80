package ast

// Stmt is a statement. Every Expr is also a Stmt (an expression statement).
type Stmt interface {
	Node
	stmtNode()
}

type stmt struct {
	node
}

func (*stmt) stmtNode() {}

type StmtBlock struct {
	stmt
	Decls []*VarDecl
	Stmts []Stmt
}

func NewStmtBlock(decls []*VarDecl, stmts []Stmt) *StmtBlock {
	b := &StmtBlock{Decls: decls, Stmts: stmts}
	for _, d := range decls {
		attach(b, d)
	}
	for _, s := range stmts {
		attach(b, s)
	}
	return b
}

func (b *StmtBlock) Children() []Node {
	result := make([]Node, 0, len(b.Decls)+len(b.Stmts))
	for _, d := range b.Decls {
		result = append(result, d)
	}
	for _, s := range b.Stmts {
		result = append(result, s)
	}
	return result
}

type IfStmt struct {
	stmt
	Test Expr
	Then Stmt
	// Else may be nil.
	Else Stmt
}

func NewIfStmt(test Expr, then, els Stmt) *IfStmt {
	s := &IfStmt{Test: test, Then: then, Else: els}
	attach(s, test, then, els)
	return s
}

func (s *IfStmt) Children() []Node { return appendNodes(nil, s.Test, s.Then, s.Else) }

type WhileStmt struct {
	stmt
	Test Expr
	Body Stmt
}

func NewWhileStmt(test Expr, body Stmt) *WhileStmt {
	s := &WhileStmt{Test: test, Body: body}
	attach(s, test, body)
	return s
}

func (s *WhileStmt) Children() []Node { return []Node{s.Test, s.Body} }

// ForStmt uses EmptyExpr for a missing init or step.
type ForStmt struct {
	stmt
	Init, Test, Step Expr
	Body             Stmt
}

func NewForStmt(init, test, step Expr, body Stmt) *ForStmt {
	s := &ForStmt{Init: init, Test: test, Step: step, Body: body}
	attach(s, init, test, step, body)
	return s
}

func (s *ForStmt) Children() []Node { return []Node{s.Test, s.Body, s.Init, s.Step} }

type BreakStmt struct {
	stmt
}

func NewBreakStmt(pos *Pos) *BreakStmt {
	return &BreakStmt{stmt{node{pos: pos}}}
}

type ReturnStmt struct {
	stmt
	// Expr is an *EmptyExpr for a bare "return;".
	Expr Expr
}

func NewReturnStmt(pos *Pos, expr Expr) *ReturnStmt {
	if expr == nil {
		expr = NewEmptyExpr()
	}
	s := &ReturnStmt{stmt: stmt{node{pos: pos}}, Expr: expr}
	attach(s, expr)
	return s
}

func (s *ReturnStmt) Children() []Node { return []Node{s.Expr} }

type PrintStmt struct {
	stmt
	Args []Expr
}

func NewPrintStmt(pos *Pos, args []Expr) *PrintStmt {
	s := &PrintStmt{stmt: stmt{node{pos: pos}}, Args: args}
	for _, arg := range args {
		attach(s, arg)
	}
	return s
}

func (s *PrintStmt) Children() []Node {
	result := make([]Node, 0, len(s.Args))
	for _, arg := range s.Args {
		result = append(result, arg)
	}
	return result
}
