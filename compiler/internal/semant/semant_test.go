package semant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
	. "github.com/40404notfound/decaf-compiler/compiler/internal/ast/asttest"
	"github.com/40404notfound/decaf-compiler/compiler/internal/semant"
)

func analyze(prog *ast.Program) (*semant.Info, semant.ErrorList) {
	var errs semant.ErrorList
	info := semant.Analyze(prog, &errs)
	return info, errs
}

func classAB() *ast.Program {
	return Program(
		Class("A", "", nil,
			Var("x", ast.IntType),
			Fn("getX", ast.IntType, nil, Return(Ref("x")))),
		Class("B", "A", nil,
			Fn("getX", ast.IntType, nil, Return(Ref("x")))),
	)
}

func TestAnalyzeDiagnostics(t *testing.T) {
	testData := []struct {
		name     string
		prog     func() *ast.Program
		expected []semant.ErrorKind
	}{
		{"override without diagnostics", classAB, nil},
		{"inheritance cycle", cyclic, nil},
		{"break outside loop", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, Break()))
		}, []semant.ErrorKind{semant.BreakOutsideLoop}},
		{"break inside loop", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, While(Bool(true), Break())))
		}, nil},
		{"negative array size is a runtime matter", func() *ast.Program {
			return Program(FnBlock("f", ast.VoidType, nil, Block(
				Decls(Var("a", Array(ast.IntType))),
				Assign(Ref("a"), NewArray(Arith(nil, "-", Int(1)), ast.IntType)))))
		}, nil},
		{"class extending itself", func() *ast.Program {
			return Program(Class("A", "A", nil))
		}, nil},
		{"duplicate member", func() *ast.Program {
			return Program(Class("A", "", nil, Var("x", ast.IntType), Var("x", ast.BoolType)))
		}, []semant.ErrorKind{semant.DeclConflict}},
		{"duplicate global", func() *ast.Program {
			return Program(Var("a", ast.IntType), Fn("a", ast.VoidType, nil))
		}, []semant.ErrorKind{semant.DeclConflict}},
		{"field redeclared in subclass", func() *ast.Program {
			return Program(
				Class("A", "", nil, Var("x", ast.IntType)),
				Class("B", "A", nil, Var("x", ast.IntType)))
		}, []semant.ErrorKind{semant.DeclConflict}},
		{"override with another return type", func() *ast.Program {
			return Program(
				Class("A", "", nil, Fn("m", ast.IntType, nil, Return(Int(1)))),
				Class("B", "A", nil, Fn("m", ast.BoolType, nil, Return(Bool(true)))))
		}, []semant.ErrorKind{semant.OverrideMismatch}},
		{"interface implemented", func() *ast.Program {
			return Program(
				Interface("I", Proto("m", ast.IntType)),
				Class("C", "", []string{"I"}, Fn("m", ast.IntType, nil, Return(Int(1)))),
				FnBlock("f", ast.VoidType, nil, Block(
					Decls(Var("i", Named("I"))),
					Assign(Ref("i"), New("C")),
					Call(Ref("i"), "m"))))
		}, nil},
		{"interface method missing", func() *ast.Program {
			return Program(
				Interface("I", Proto("m", ast.IntType), Proto("n", ast.IntType)),
				Class("C", "", []string{"I"}))
		}, []semant.ErrorKind{semant.InterfaceNotImplemented}},
		{"unknown superclass", func() *ast.Program {
			return Program(Class("B", "Z", nil))
		}, []semant.ErrorKind{semant.IdentifierNotDeclared}},
		{"unknown interface", func() *ast.Program {
			return Program(Class("B", "", []string{"J"}))
		}, []semant.ErrorKind{semant.IdentifierNotDeclared}},
		{"unknown type", func() *ast.Program {
			return Program(Var("g", Named("Foo")))
		}, []semant.ErrorKind{semant.IdentifierNotDeclared}},
		{"new of an interface", func() *ast.Program {
			return Program(Interface("I"), Fn("f", ast.VoidType, nil, New("I")))
		}, []semant.ErrorKind{semant.IdentifierNotDeclared}},
		{"undeclared variable does not cascade", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, Assign(Ref("x"), Arith(Ref("x"), "+", Int(1)))))
		}, []semant.ErrorKind{semant.IdentifierNotDeclared, semant.IdentifierNotDeclared}},
		{"undeclared function", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, Call(nil, "g")))
		}, []semant.ErrorKind{semant.IdentifierNotDeclared}},
		{"this outside class", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, This()))
		}, []semant.ErrorKind{semant.ThisOutsideClassScope}},
		{"this inside class", func() *ast.Program {
			return Program(Class("A", "", nil, Fn("self", Named("A"), nil, Return(This()))))
		}, nil},
		{"test not boolean", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil,
				While(Int(1), Block(nil)),
				If(Str("s"), Block(nil), nil)))
		}, []semant.ErrorKind{semant.TestNotBoolean, semant.TestNotBoolean}},
		{"return mismatch", func() *ast.Program {
			return Program(
				Fn("f", ast.IntType, nil, Return(Bool(true))),
				Fn("g", ast.IntType, nil, Return(nil)),
				Fn("h", ast.VoidType, nil, Return(nil)))
		}, []semant.ErrorKind{semant.ReturnMismatch, semant.ReturnMismatch}},
		{"operand mismatch reported once", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, Arith(Arith(Int(1), "+", Bool(true)), "*", Int(2))))
		}, []semant.ErrorKind{semant.IncompatibleOperands}},
		{"unary operand mismatch", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, Logical(nil, "!", Int(1))))
		}, []semant.ErrorKind{semant.IncompatibleOperand}},
		{"double arithmetic", func() *ast.Program {
			return Program(Fn("f", ast.BoolType, nil, Return(Rel(Arith(Double(1), "*", Double(2)), "<", Double(3)))))
		}, nil},
		{"equality", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil,
				Equal(Str("a"), "==", Str("b")),
				Equal(Int(1), "!=", Bool(true))))
		}, []semant.ErrorKind{semant.IncompatibleOperands}},
		{"print arguments", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, Print(Int(1), Str("s"), Bool(true), Double(1.5))))
		}, []semant.ErrorKind{semant.PrintArgMismatch}},
		{"array subscripts", func() *ast.Program {
			return Program(FnBlock("f", ast.VoidType, nil, Block(
				Decls(Var("a", Array(ast.IntType)), Var("b", ast.IntType)),
				Index(Ref("a"), Bool(true)),
				Index(Ref("b"), Int(0)),
				Index(Ref("a"), Int(0)))))
		}, []semant.ErrorKind{semant.SubscriptNotInteger, semant.BracketsOnNonArray}},
		{"new array size", func() *ast.Program {
			return Program(Fn("f", ast.VoidType, nil, NewArray(Bool(true), ast.IntType)))
		}, []semant.ErrorKind{semant.NewArraySizeNotInteger}},
		{"array length", func() *ast.Program {
			return Program(FnBlock("f", ast.IntType, nil, Block(
				Decls(Var("a", Array(ast.IntType))),
				Call(Ref("a"), "size"),
				Return(Call(Ref("a"), "length")))))
		}, []semant.ErrorKind{semant.FieldNotFoundInBase}},
		{"arguments", func() *ast.Program {
			return Program(
				Fn("g", ast.VoidType, Formals(Var("x", ast.IntType))),
				Fn("f", ast.VoidType, nil,
					Call(nil, "g"),
					Call(nil, "g", Bool(true)),
					Call(nil, "g", Int(1))))
		}, []semant.ErrorKind{semant.NumArgsMismatch, semant.ArgMismatch}},
		{"field outside class", func() *ast.Program {
			return Program(
				Class("A", "", nil, Var("x", ast.IntType)),
				FnBlock("f", ast.VoidType, nil, Block(
					Decls(Var("a", Named("A"))),
					Field(Ref("a"), "x"),
					Field(Ref("a"), "y"))))
		}, []semant.ErrorKind{semant.InaccessibleField, semant.FieldNotFoundInBase}},
		{"field of another instance of the same class", func() *ast.Program {
			return Program(Class("A", "", nil,
				Var("x", ast.IntType),
				Fn("same", ast.BoolType, Formals(Var("o", Named("A"))),
					Return(Equal(Field(Ref("o"), "x"), "==", Ref("x"))))))
		}, nil},
		{"assignment follows subtyping", func() *ast.Program {
			return Program(
				Class("A", "", nil),
				Class("B", "A", nil),
				FnBlock("f", ast.VoidType, nil, Block(
					Decls(Var("a", Named("A")), Var("b", Named("B"))),
					Assign(Ref("a"), New("B")),
					Assign(Ref("a"), Null()),
					Assign(Ref("b"), Ref("a")))))
		}, []semant.ErrorKind{semant.IncompatibleOperands}},
		{"read builtins", func() *ast.Program {
			return Program(FnBlock("f", ast.VoidType, nil, Block(
				Decls(Var("n", ast.IntType), Var("s", ast.StringType)),
				Assign(Ref("n"), ast.NewReadIntegerExpr(nil)),
				Assign(Ref("s"), ast.NewReadLineExpr(nil)))))
		}, nil},
	}
	for _, test := range testData {
		_, errs := analyze(test.prog())
		if len(test.expected) == 0 {
			assert.Empty(t, errs, "%s: %s", test.name, errs.String())
			continue
		}
		assert.Equal(t, test.expected, errs.Kinds(), "%s: %s", test.name, errs.String())
	}
}

func TestInterfaceNotImplementedOnce(t *testing.T) {
	prog := Program(
		Interface("I", Proto("m", ast.IntType)),
		Class("C", "", []string{"I"}, Fn("m", ast.BoolType, nil, Return(Bool(true)))),
	)
	_, errs := analyze(prog)
	count := 0
	for _, d := range errs {
		if d.Kind == semant.InterfaceNotImplemented {
			count++
			assert.Equal(t, "I", d.Other.(*ast.NamedType).Name())
		}
	}
	assert.Equal(t, 1, count, errs.String())
}

func TestDuplicateMemberKeepsFirst(t *testing.T) {
	first := Var("x", ast.IntType)
	prog := Program(Class("A", "", nil, first, Var("x", ast.BoolType)))
	info, errs := analyze(prog)
	require.Len(t, errs, 1)
	class := info.LookupClass("A")
	require.NotNil(t, class)
	assert.Equal(t, ast.Decl(first), class.GetFields("x"))
}

func TestSelfExtends(t *testing.T) {
	info, errs := analyze(Program(Class("A", "A", nil, Var("x", ast.IntType))))
	assert.Empty(t, errs)
	class := info.LookupClass("A")
	require.NotNil(t, class)
	assert.Nil(t, class.Extends)
	assert.NotNil(t, class.GetFields("x"))
}

// cyclic declares two classes extending each other, each reading the other's field.
func cyclic() *ast.Program {
	return Program(
		Class("A", "B", nil,
			Var("x", ast.IntType),
			Fn("m", ast.IntType, nil, Return(Ref("y")))),
		Class("B", "A", nil,
			Var("y", ast.IntType),
			Fn("m", ast.IntType, nil, Return(Ref("x")))),
		Class("D", "", nil),
	)
}

func TestCyclicExtends(t *testing.T) {
	info, errs := analyze(cyclic())
	assert.Empty(t, errs, errs.String())
	a, b := info.LookupClass("A"), info.LookupClass("B")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Same(t, b, a.Extends)
	assert.Same(t, a, b.Extends)

	assert.Nil(t, a.GetFields("z"))
	assert.Nil(t, b.GetFields("z"))
	assert.NotNil(t, a.GetFields("y"))
	assert.NotNil(t, b.GetFields("x"))
	assert.Nil(t, a.Scope.GetSymbol("z"))

	assert.True(t, info.SubtypeOf(Named("A"), Named("B")))
	assert.True(t, info.SubtypeOf(Named("B"), Named("A")))
	assert.False(t, info.SubtypeOf(Named("A"), Named("D")))
	assert.False(t, info.SubtypeOf(Named("B"), Named("D")))
}

func TestExpressionTypes(t *testing.T) {
	minus := Arith(nil, "-", Int(1))
	newArray := NewArray(minus, ast.IntType)
	cmp := Rel(Int(1), "<=", Int(2))
	call := Call(Ref("b"), "getX")
	prog := Program(
		Class("A", "", nil, Var("x", ast.IntType), Fn("getX", ast.IntType, nil, Return(Ref("x")))),
		Class("B", "A", nil),
		FnBlock("f", ast.VoidType, nil, Block(
			Decls(Var("b", Named("B"))),
			newArray, cmp, call)),
	)
	info, errs := analyze(prog)
	require.Empty(t, errs, errs.String())
	testData := []struct {
		expr     ast.Expr
		expected string
	}{
		{minus, "int"},
		{newArray, "int[]"},
		{cmp, "bool"},
		{call, "int"},
	}
	for _, test := range testData {
		tp := info.TypeOf(test.expr)
		require.NotNil(t, tp)
		assert.Equal(t, test.expected, tp.Name())
	}
}

func TestDiagnosticMessages(t *testing.T) {
	_, errs := analyze(Program(Fn("f", ast.VoidType, nil, Break(), Call(nil, "g"))))
	require.Len(t, errs, 2)
	assert.Contains(t, errs[1].Error(), "g")
	assert.Error(t, errs.Err())
	assert.NoError(t, semant.ErrorList(nil).Err())
}
