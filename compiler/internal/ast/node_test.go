package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
	. "github.com/40404notfound/decaf-compiler/compiler/internal/ast/asttest"
)

func TestParentLinks(t *testing.T) {
	ref := Ref("x")
	ret := Return(ref)
	method := Fn("getX", ast.IntType, nil, ret)
	class := Class("A", "", nil, Var("x", ast.IntType), method)
	prog := Program(class)

	assert.Equal(t, ast.Node(prog), class.Parent())
	assert.Equal(t, ast.Node(class), method.Parent())
	assert.Equal(t, ast.Node(method.Body), ret.Parent())
	assert.Equal(t, ast.Node(ret), ref.Parent())
	assert.Equal(t, ast.Node(ref), ref.Field.Parent())
	assert.Same(t, class, ast.EnclosingClass(ref))
	assert.True(t, method.IsMethod())
	assert.Nil(t, ast.EnclosingClass(class))
}

func TestSetParentTwice(t *testing.T) {
	id := Id("x")
	ast.NewVarDecl(id, ast.IntType)
	assert.Panics(t, func() { ast.NewVarDecl(id, ast.IntType) })
	// Primitive types are shared and never take a parent.
	assert.NotPanics(t, func() { ast.NewVarDecl(Id("y"), ast.IntType) })
	assert.Nil(t, ast.IntType.Parent())
}

func TestTypedNilChildren(t *testing.T) {
	var els *ast.IfStmt
	var call *ast.Call
	var block *ast.StmtBlock
	var stmt *ast.IfStmt
	assert.NotPanics(t, func() { stmt = ast.NewIfStmt(Bool(true), Print(Int(1)), els) })
	assert.Len(t, stmt.Children(), 2)
	assert.NotPanics(t, func() { ast.NewPrintStmt(nil, []ast.Expr{call}) })
	assert.NotPanics(t, func() { ast.NewWhileStmt(Bool(true), block) })

	visited := 0
	ast.Walk(stmt, func(ast.Node) bool {
		visited++
		return true
	})
	// The if, its test, the print and its constant.
	assert.Equal(t, 4, visited)
}

func TestWalk(t *testing.T) {
	prog := Program(
		Var("g", ast.IntType),
		Fn("f", ast.VoidType, Formals(Var("a", ast.IntType)),
			Print(Arith(Ref("a"), "+", Int(1))),
			Return(nil)),
	)
	counts := map[string]int{}
	ast.Walk(prog, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.VarDecl:
			counts["var"]++
		case *ast.FieldAccess:
			counts["ref"]++
		case *ast.IntConstant:
			counts["int"]++
		case *ast.EmptyExpr:
			counts["empty"]++
		case *ast.FnDecl:
			counts["fn"]++
		}
		return true
	})
	assert.Equal(t, map[string]int{"var": 2, "ref": 1, "int": 1, "empty": 1, "fn": 1}, counts)

	visited := 0
	ast.Walk(prog, func(n ast.Node) bool {
		visited++
		_, isFn := n.(*ast.FnDecl)
		return !isFn
	})
	// Program, the global with its identifier and type, the function.
	assert.Equal(t, 5, visited)
}

func TestTypes(t *testing.T) {
	testData := []struct {
		tp      ast.Type
		name    string
		isError bool
		isVoid  bool
	}{
		{ast.IntType, "int", false, false},
		{ast.VoidType, "void", false, true},
		{ast.ErrorType, "#error", true, false},
		{Array(Array(ast.IntType)), "int[][]", false, false},
		{ast.ArrayOf(ast.ErrorType), "#error[]", true, false},
		{Named("A"), "A", false, false},
	}
	for _, test := range testData {
		assert.Equal(t, test.name, test.tp.Name())
		assert.Equal(t, test.isError, ast.IsError(test.tp), test.name)
		assert.Equal(t, test.isVoid, ast.IsVoid(test.tp), test.name)
	}
	assert.True(t, ast.IsPrimitive(ast.IntType, ast.IntType))
	assert.False(t, ast.IsPrimitive(nil, ast.IntType))
	assert.True(t, ast.IsEmpty(ast.NewEmptyExpr()))
	assert.True(t, ast.IsEmpty(nil))
	assert.False(t, ast.IsEmpty(Int(0)))
}

func TestPos(t *testing.T) {
	var p *ast.Pos
	assert.NotPanics(t, func() { _ = p.String() })
	pos := &ast.Pos{Line: 3, Column: 7}
	c := ast.NewIntConstant(pos, 1)
	assert.Same(t, pos, c.Pos())
	sum := ast.NewArithmeticExpr(c, Op("+"), Int(2))
	assert.Same(t, pos, sum.Pos())
}
