package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

// CheckProgram types every expression and checks the statement rules. By default a node just
// checks its children with the context it got.
func (c *Checker) CheckProgram(prog *ast.Program) {
	ctx := Context{}
	for _, decl := range prog.Decls {
		c.check(decl, ctx)
	}
}

func (c *Checker) checkChildren(n ast.Node, ctx Context) {
	for _, child := range n.Children() {
		c.check(child, ctx)
	}
}

func (c *Checker) check(n ast.Node, ctx Context) {
	switch n := n.(type) {
	case *ast.ClassDecl:
		c.checkClass(n, ctx)
	case *ast.FnDecl:
		ctx.RetType = c.info.ReturnType(n)
		c.checkChildren(n, ctx)
	case *ast.WhileStmt:
		ctx.InLoop = true
		c.checkChildren(n, ctx)
		c.checkTest(n.Test)
	case *ast.ForStmt:
		ctx.InLoop = true
		c.checkChildren(n, ctx)
		c.checkTest(n.Test)
	case *ast.IfStmt:
		c.checkChildren(n, ctx)
		c.checkTest(n.Test)
	case *ast.BreakStmt:
		if !ctx.InLoop {
			c.report(&Diagnostic{Kind: BreakOutsideLoop, Node: n})
		}
	case *ast.ReturnStmt:
		c.checkChildren(n, ctx)
		c.checkReturn(n, ctx)
	case *ast.PrintStmt:
		c.checkChildren(n, ctx)
		c.checkPrint(n)
	case ast.Expr:
		c.checkExpr(n, ctx)
	default:
		c.checkChildren(n, ctx)
	}
}

// checkClass checks the members with "this" available, then that every implemented interface
// is fully implemented. Each interface is reported at most once.
func (c *Checker) checkClass(decl *ast.ClassDecl, ctx Context) {
	ctx.InClass = true
	ctx.OuterClass = decl
	for _, member := range decl.Members {
		c.check(member, ctx)
	}
	class := c.info.Classes[decl]
	for i, iface := range class.Implements {
		if iface == nil {
			continue
		}
		for _, prototype := range iface.Decl.Members {
			impl, _ := class.GetFields(prototype.Name()).(*ast.FnDecl)
			proto, _ := prototype.(*ast.FnDecl)
			if impl == nil || !c.info.FnMatch(impl, proto) {
				c.report(&Diagnostic{Kind: InterfaceNotImplemented, Node: decl, Other: decl.Implements[i]})
				break
			}
		}
	}
}

func (c *Checker) checkTest(test ast.Expr) {
	if ast.IsEmpty(test) {
		return
	}
	t := c.info.TypeOf(test)
	if ast.IsError(t) || ast.IsPrimitive(t, ast.BoolType) {
		return
	}
	c.report(&Diagnostic{Kind: TestNotBoolean, Node: test})
}

func (c *Checker) checkReturn(stmt *ast.ReturnStmt, ctx Context) {
	if t := c.info.TypeOf(stmt.Expr); t != nil {
		if !c.info.SubtypeOf(t, ctx.RetType) {
			c.report(&Diagnostic{Kind: ReturnMismatch, Node: stmt, Types: []ast.Type{t, ctx.RetType}})
		}
		return
	}
	if !ast.IsVoid(ctx.RetType) {
		c.report(&Diagnostic{Kind: ReturnMismatch, Node: stmt, Types: []ast.Type{ast.VoidType, ctx.RetType}})
	}
}

func (c *Checker) checkPrint(stmt *ast.PrintStmt) {
	for i, arg := range stmt.Args {
		t := c.info.TypeOf(arg)
		if ast.IsError(t) || printable(t) {
			continue
		}
		c.report(&Diagnostic{Kind: PrintArgMismatch, Node: arg, Index: i + 1, Types: []ast.Type{t}})
	}
}

func printable(t ast.Type) bool {
	return ast.IsPrimitive(t, ast.IntType) || ast.IsPrimitive(t, ast.BoolType) || ast.IsPrimitive(t, ast.StringType)
}
