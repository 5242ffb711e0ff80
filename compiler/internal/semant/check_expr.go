package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

// checkExpr checks the operands first, then records the type of e.
func (c *Checker) checkExpr(e ast.Expr, ctx Context) {
	c.checkChildren(e, ctx)
	if t := c.exprType(e, ctx); t != nil {
		c.info.Types[e] = t
	}
}

func (c *Checker) exprType(e ast.Expr, ctx Context) ast.Type {
	switch e := e.(type) {
	case *ast.EmptyExpr:
		return nil
	case *ast.IntConstant:
		return ast.IntType
	case *ast.DoubleConstant:
		return ast.DoubleType
	case *ast.BoolConstant:
		return ast.BoolType
	case *ast.StringConstant:
		return ast.StringType
	case *ast.NullConstant:
		return ast.NullType
	case *ast.ArithmeticExpr:
		return c.arithmeticType(e.Operands())
	case *ast.RelationalExpr:
		c.arithmeticType(e.Operands())
		return ast.BoolType
	case *ast.EqualityExpr:
		return c.equalityType(e)
	case *ast.LogicalExpr:
		return c.logicalType(e)
	case *ast.AssignExpr:
		return c.assignType(e)
	case *ast.This:
		if !ctx.InClass {
			c.report(&Diagnostic{Kind: ThisOutsideClassScope, Node: e})
			return ast.ErrorType
		}
		return c.info.Classes[ctx.OuterClass].Type
	case *ast.ArrayAccess:
		return c.arrayAccessType(e)
	case *ast.FieldAccess:
		return c.fieldAccessType(e, ctx)
	case *ast.Call:
		return c.callType(e)
	case *ast.NewExpr:
		if t, ok := c.info.DeclTypes[e].(*ast.NamedType); ok {
			return t
		}
		return ast.ErrorType
	case *ast.NewArrayExpr:
		size := c.info.TypeOf(e.Size)
		if !ast.IsError(size) && !ast.IsPrimitive(size, ast.IntType) {
			c.report(&Diagnostic{Kind: NewArraySizeNotInteger, Node: e.Size})
		}
		elem := c.info.DeclTypes[e]
		if elem == nil {
			elem = e.ElemType
		}
		return ast.ArrayOf(elem)
	case *ast.ReadIntegerExpr:
		return ast.IntType
	case *ast.ReadLineExpr:
		return ast.StringType
	}
	return ast.ErrorType
}

func (c *Checker) incompatible(op *ast.Operator, left, right ast.Type, unary bool) {
	if unary {
		c.report(&Diagnostic{Kind: IncompatibleOperand, Node: op, Op: op, Types: []ast.Type{right}})
		return
	}
	c.report(&Diagnostic{Kind: IncompatibleOperands, Node: op, Op: op, Types: []ast.Type{left, right}})
}

// arithmeticType: both operands int gives int, both double gives double. A nil left is a unary minus.
func (c *Checker) arithmeticType(left ast.Expr, op *ast.Operator, right ast.Expr) ast.Type {
	var lt ast.Type
	if left != nil {
		lt = c.info.TypeOf(left)
	}
	rt := c.info.TypeOf(right)
	if (left != nil && ast.IsError(lt)) || ast.IsError(rt) {
		return ast.ErrorType
	}
	for _, builtin := range []*ast.PrimitiveType{ast.IntType, ast.DoubleType} {
		if (left == nil || ast.IsPrimitive(lt, builtin)) && ast.IsPrimitive(rt, builtin) {
			return builtin
		}
	}
	c.incompatible(op, lt, rt, left == nil)
	return ast.ErrorType
}

func (c *Checker) equalityType(e *ast.EqualityExpr) ast.Type {
	lt, rt := c.info.TypeOf(e.Left), c.info.TypeOf(e.Right)
	if !ast.IsError(lt) && !ast.IsError(rt) && !c.info.Compatible(lt, rt) {
		c.incompatible(e.Op, lt, rt, false)
	}
	return ast.BoolType
}

func (c *Checker) logicalType(e *ast.LogicalExpr) ast.Type {
	var lt ast.Type
	if e.Left != nil {
		lt = c.info.TypeOf(e.Left)
	}
	rt := c.info.TypeOf(e.Right)
	if (e.Left != nil && ast.IsError(lt)) || ast.IsError(rt) {
		return ast.BoolType
	}
	if (e.Left != nil && !ast.IsPrimitive(lt, ast.BoolType)) || !ast.IsPrimitive(rt, ast.BoolType) {
		c.incompatible(e.Op, lt, rt, e.Left == nil)
	}
	return ast.BoolType
}

func (c *Checker) assignType(e *ast.AssignExpr) ast.Type {
	lt, rt := c.info.TypeOf(e.Left), c.info.TypeOf(e.Right)
	if lt == nil {
		lt = ast.ErrorType
	}
	if !ast.IsError(lt) && !ast.IsError(rt) && !c.info.SubtypeOf(rt, lt) {
		c.incompatible(e.Op, lt, rt, false)
	}
	return lt
}

func (c *Checker) arrayAccessType(e *ast.ArrayAccess) ast.Type {
	result := ast.Type(ast.ErrorType)
	base := c.info.TypeOf(e.Base)
	if !ast.IsError(base) {
		if array, ok := base.(*ast.ArrayType); ok {
			result = array.Elem
		} else {
			c.report(&Diagnostic{Kind: BracketsOnNonArray, Node: e.Base})
		}
	}
	subscript := c.info.TypeOf(e.Subscript)
	if !ast.IsError(subscript) && !ast.IsPrimitive(subscript, ast.IntType) {
		c.report(&Diagnostic{Kind: SubscriptNotInteger, Node: e.Subscript})
	}
	return result
}

func (c *Checker) fieldNotFound(field *ast.Identifier, base ast.Type) ast.Type {
	c.report(&Diagnostic{Kind: FieldNotFoundInBase, Node: field, Types: []ast.Type{base}})
	return ast.ErrorType
}

func (c *Checker) fieldAccessType(e *ast.FieldAccess, ctx Context) ast.Type {
	if e.Base == nil {
		var v *ast.VarDecl
		if scope := c.info.ScopeOf(e); scope != nil {
			v, _ = scope.GetSymbol(e.Field.Name).(*ast.VarDecl)
		}
		if v == nil {
			c.notDeclared(e.Field, LookingForVariable)
			return ast.ErrorType
		}
		return c.info.VarType(v)
	}
	base := c.info.TypeOf(e.Base)
	if ast.IsError(base) {
		return ast.ErrorType
	}
	if _, ok := base.(*ast.NamedType); !ok {
		// Arrays and primitives have no fields.
		return c.fieldNotFound(e.Field, base)
	}
	class := c.info.LookupClass(base.Name())
	if class == nil {
		// Interfaces only have methods.
		return c.fieldNotFound(e.Field, base)
	}
	v, ok := class.GetFields(e.Field.Name).(*ast.VarDecl)
	if !ok {
		return c.fieldNotFound(e.Field, base)
	}
	if !ctx.InClass || !c.info.SubtypeOf(c.info.Classes[ctx.OuterClass].Type, base) {
		c.report(&Diagnostic{Kind: InaccessibleField, Node: e.Field, Types: []ast.Type{base}})
	}
	return c.info.VarType(v)
}

func (c *Checker) callType(e *ast.Call) ast.Type {
	var target *ast.FnDecl
	if e.Base == nil {
		if scope := c.info.ScopeOf(e); scope != nil {
			target, _ = scope.GetSymbol(e.Field.Name).(*ast.FnDecl)
		}
		if target == nil {
			c.notDeclared(e.Field, LookingForFunction)
			return ast.ErrorType
		}
		c.checkArgs(e, target.Formals)
		return c.info.ReturnType(target)
	}
	base := c.info.TypeOf(e.Base)
	switch {
	case ast.IsError(base):
		return ast.ErrorType
	case isArray(base):
		if e.Field.Name != "length" {
			return c.fieldNotFound(e.Field, base)
		}
		c.checkArgs(e, nil)
		return ast.IntType
	}
	if _, ok := base.(*ast.NamedType); !ok {
		return c.fieldNotFound(e.Field, base)
	}
	if iface := c.info.LookupInterface(base.Name()); iface != nil {
		target, _ = iface.Scope.Lookup(e.Field.Name).(*ast.FnDecl)
	} else if class := c.info.LookupClass(base.Name()); class != nil {
		target, _ = class.GetFields(e.Field.Name).(*ast.FnDecl)
	}
	if target == nil {
		return c.fieldNotFound(e.Field, base)
	}
	c.checkArgs(e, target.Formals)
	return c.info.ReturnType(target)
}

func (c *Checker) checkArgs(e *ast.Call, formals []*ast.VarDecl) {
	if len(formals) != len(e.Actuals) {
		c.report(&Diagnostic{Kind: NumArgsMismatch, Node: e.Field, Expected: len(formals), Given: len(e.Actuals)})
		return
	}
	for i, actual := range e.Actuals {
		given, expected := c.info.TypeOf(actual), c.info.VarType(formals[i])
		if !c.info.SubtypeOf(given, expected) {
			c.report(&Diagnostic{Kind: ArgMismatch, Node: actual, Index: i + 1, Types: []ast.Type{given, expected}})
		}
	}
}

func isArray(t ast.Type) bool {
	_, ok := t.(*ast.ArrayType)
	return ok
}
