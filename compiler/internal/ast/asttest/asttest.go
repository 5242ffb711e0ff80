// Package asttest builds syntax trees in tests. Every helper returns freshly built nodes, so a
// node is never attached twice.
package asttest

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

func Id(name string) *ast.Identifier { return ast.NewIdentifier(nil, name) }

func Named(name string) *ast.NamedType { return ast.NewNamedType(Id(name)) }

func Array(elem ast.Type) *ast.ArrayType { return ast.NewArrayType(nil, elem) }

func Var(name string, t ast.Type) *ast.VarDecl { return ast.NewVarDecl(Id(name), t) }

func Formals(vars ...*ast.VarDecl) []*ast.VarDecl { return vars }

// Fn declares a function or method whose body holds stmts.
func Fn(name string, ret ast.Type, formals []*ast.VarDecl, stmts ...ast.Stmt) *ast.FnDecl {
	return FnBlock(name, ret, formals, Block(nil, stmts...))
}

func FnBlock(name string, ret ast.Type, formals []*ast.VarDecl, body *ast.StmtBlock) *ast.FnDecl {
	fn := ast.NewFnDecl(Id(name), ret, formals)
	fn.SetFunctionBody(body)
	return fn
}

// Proto declares an interface prototype.
func Proto(name string, ret ast.Type, formals ...*ast.VarDecl) *ast.FnDecl {
	return ast.NewFnDecl(Id(name), ret, formals)
}

func Block(decls []*ast.VarDecl, stmts ...ast.Stmt) *ast.StmtBlock {
	return ast.NewStmtBlock(decls, stmts)
}

func Decls(vars ...*ast.VarDecl) []*ast.VarDecl { return vars }

// Class declares a class. An empty extends means no superclass.
func Class(name, extends string, implements []string, members ...ast.Decl) *ast.ClassDecl {
	var ext *ast.NamedType
	if extends != "" {
		ext = Named(extends)
	}
	impl := make([]*ast.NamedType, len(implements))
	for i, n := range implements {
		impl[i] = Named(n)
	}
	return ast.NewClassDecl(Id(name), ext, impl, members)
}

func Interface(name string, members ...ast.Decl) *ast.InterfaceDecl {
	return ast.NewInterfaceDecl(Id(name), members)
}

func Program(decls ...ast.Decl) *ast.Program { return ast.NewProgram(decls) }

func Int(v int) *ast.IntConstant { return ast.NewIntConstant(nil, v) }

func Double(v float64) *ast.DoubleConstant { return ast.NewDoubleConstant(nil, v) }

func Bool(v bool) *ast.BoolConstant { return ast.NewBoolConstant(nil, v) }

func Str(v string) *ast.StringConstant { return ast.NewStringConstant(nil, v) }

func Null() *ast.NullConstant { return ast.NewNullConstant(nil) }

func This() *ast.This { return ast.NewThis(nil) }

func Op(token string) *ast.Operator { return ast.NewOperator(nil, token) }

// Ref is a bare name: a variable or a field through the implicit this.
func Ref(name string) *ast.FieldAccess { return ast.NewFieldAccess(nil, Id(name)) }

func Field(base ast.Expr, name string) *ast.FieldAccess { return ast.NewFieldAccess(base, Id(name)) }

// Call calls name on base, a nil base calls a function or a method of the current class.
func Call(base ast.Expr, name string, args ...ast.Expr) *ast.Call {
	return ast.NewCall(nil, base, Id(name), args)
}

func Index(base, subscript ast.Expr) *ast.ArrayAccess { return ast.NewArrayAccess(nil, base, subscript) }

func Arith(left ast.Expr, op string, right ast.Expr) *ast.ArithmeticExpr {
	return ast.NewArithmeticExpr(left, Op(op), right)
}

func Rel(left ast.Expr, op string, right ast.Expr) *ast.RelationalExpr {
	return ast.NewRelationalExpr(left, Op(op), right)
}

func Equal(left ast.Expr, op string, right ast.Expr) *ast.EqualityExpr {
	return ast.NewEqualityExpr(left, Op(op), right)
}

func Logical(left ast.Expr, op string, right ast.Expr) *ast.LogicalExpr {
	return ast.NewLogicalExpr(left, Op(op), right)
}

func Assign(left, right ast.Expr) *ast.AssignExpr { return ast.NewAssignExpr(left, Op("="), right) }

func New(class string) *ast.NewExpr { return ast.NewNewExpr(nil, Named(class)) }

func NewArray(size ast.Expr, elem ast.Type) *ast.NewArrayExpr {
	return ast.NewNewArrayExpr(nil, size, elem)
}

func Return(e ast.Expr) *ast.ReturnStmt { return ast.NewReturnStmt(nil, e) }

func Print(args ...ast.Expr) *ast.PrintStmt { return ast.NewPrintStmt(nil, args) }

func Break() *ast.BreakStmt { return ast.NewBreakStmt(nil) }

func While(test ast.Expr, body ast.Stmt) *ast.WhileStmt { return ast.NewWhileStmt(test, body) }

// For replaces a nil init or step with an empty expression.
func For(init, test, step ast.Expr, body ast.Stmt) *ast.ForStmt {
	if init == nil {
		init = ast.NewEmptyExpr()
	}
	if step == nil {
		step = ast.NewEmptyExpr()
	}
	return ast.NewForStmt(init, test, step, body)
}

func If(test ast.Expr, then, els ast.Stmt) *ast.IfStmt { return ast.NewIfStmt(test, then, els) }
