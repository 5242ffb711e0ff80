package codegen

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

func (g *Generator) genStmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.StmtBlock:
		for _, v := range s.Decls {
			g.locations[v] = g.newFrameSlot(v.Name())
		}
		for _, stmt := range s.Stmts {
			g.genStmt(stmt)
		}
	case *ast.IfStmt:
		g.genIf(s)
	case *ast.WhileStmt:
		top, exit := g.newLabel(), g.newLabel()
		g.emit.Label(top)
		g.emit.IfZ(g.genExpr(s.Test), exit)
		g.genLoopBody(s.Body, exit)
		g.emit.Goto(top)
		g.emit.Label(exit)
	case *ast.ForStmt:
		g.genExpr(s.Init)
		top, exit := g.newLabel(), g.newLabel()
		g.emit.Label(top)
		if test := g.genExpr(s.Test); test != nil {
			g.emit.IfZ(test, exit)
		}
		g.genLoopBody(s.Body, exit)
		g.genExpr(s.Step)
		g.emit.Goto(top)
		g.emit.Label(exit)
	case *ast.BreakStmt:
		if n := len(g.loopExits); n > 0 {
			g.emit.Goto(g.loopExits[n-1])
		}
	case *ast.ReturnStmt:
		if ast.IsEmpty(s.Expr) {
			g.emit.Return(nil)
			return
		}
		g.emit.Return(g.genExpr(s.Expr))
	case *ast.PrintStmt:
		g.genPrint(s)
	case ast.Expr:
		g.genExpr(s)
	}
}

func (g *Generator) genIf(s *ast.IfStmt) {
	elseLabel := g.newLabel()
	g.emit.IfZ(g.genExpr(s.Test), elseLabel)
	g.genStmt(s.Then)
	if s.Else == nil {
		g.emit.Label(elseLabel)
		return
	}
	end := g.newLabel()
	g.emit.Goto(end)
	g.emit.Label(elseLabel)
	g.genStmt(s.Else)
	g.emit.Label(end)
}

func (g *Generator) genLoopBody(body ast.Stmt, exit string) {
	g.loopExits = append(g.loopExits, exit)
	g.genStmt(body)
	g.loopExits = g.loopExits[:len(g.loopExits)-1]
}

// genPrint picks the print routine from the static type of each argument.
func (g *Generator) genPrint(s *ast.PrintStmt) {
	for _, arg := range s.Args {
		value := g.genExpr(arg)
		t := g.info.TypeOf(arg)
		switch {
		case ast.IsPrimitive(t, ast.IntType):
			g.emit.BuiltInCall(nil, PrintInt, value)
		case ast.IsPrimitive(t, ast.BoolType):
			g.emit.BuiltInCall(nil, PrintBool, value)
		case ast.IsPrimitive(t, ast.StringType):
			g.emit.BuiltInCall(nil, PrintString, value)
		}
	}
}
