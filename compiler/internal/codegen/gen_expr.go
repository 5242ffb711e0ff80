package codegen

import (
	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
	"github.com/40404notfound/decaf-compiler/compiler/internal/semant"
)

// genExpr emits e and returns where its value is. An empty expression has no value.
func (g *Generator) genExpr(e ast.Expr) *Location {
	switch e := e.(type) {
	case nil, *ast.EmptyExpr:
		return nil
	case *ast.IntConstant:
		return g.constant(e.Value)
	case *ast.DoubleConstant:
		// The target has no floating point unit.
		return g.constant(int(e.Value))
	case *ast.BoolConstant:
		if e.Value {
			return g.constant(1)
		}
		return g.constant(0)
	case *ast.StringConstant:
		dst := g.newTemp()
		g.emit.LoadStringConstant(dst, e.Value)
		return dst
	case *ast.NullConstant:
		return g.constant(0)
	case *ast.ArithmeticExpr:
		if e.IsUnary() {
			return g.binary(Sub, g.constant(0), g.genExpr(e.Right))
		}
		return g.binary(opCodes[e.Op.Token], g.genExpr(e.Left), g.genExpr(e.Right))
	case *ast.RelationalExpr:
		return g.genRelational(e)
	case *ast.EqualityExpr:
		return g.genEquality(e)
	case *ast.LogicalExpr:
		if e.IsUnary() {
			return g.binary(Eq, g.genExpr(e.Right), g.constant(0))
		}
		// Both operands are always evaluated.
		return g.binary(opCodes[e.Op.Token], g.genExpr(e.Left), g.genExpr(e.Right))
	case *ast.AssignExpr:
		return g.genAssign(e)
	case *ast.This:
		return ThisLocation
	case *ast.ArrayAccess:
		dst := g.newTemp()
		g.emit.Load(dst, g.elementAddress(e), 0)
		return dst
	case *ast.FieldAccess:
		loc, ref, offset := g.fieldRef(e)
		if loc != nil {
			return loc
		}
		dst := g.newTemp()
		g.emit.Load(dst, ref, offset)
		return dst
	case *ast.Call:
		return g.genCall(e)
	case *ast.NewExpr:
		return g.genNew(e)
	case *ast.NewArrayExpr:
		return g.genNewArray(e)
	case *ast.ReadIntegerExpr:
		dst := g.newTemp()
		g.emit.BuiltInCall(dst, ReadInteger)
		return dst
	case *ast.ReadLineExpr:
		dst := g.newTemp()
		g.emit.BuiltInCall(dst, ReadLine)
		return dst
	}
	return g.placeholder()
}

func (g *Generator) binary(op OpCode, a, b *Location) *Location {
	dst := g.newTemp()
	g.emit.BinaryOp(dst, op, a, b)
	return dst
}

// genRelational builds ">" by swapping the operands of "<", and "<=" and ">=" from "<", "=="
// and "||".
func (g *Generator) genRelational(e *ast.RelationalExpr) *Location {
	left, right := g.genExpr(e.Left), g.genExpr(e.Right)
	switch e.Op.Token {
	case "<":
		return g.binary(Less, left, right)
	case ">":
		return g.binary(Less, right, left)
	case "<=":
		return g.binary(Or, g.binary(Less, left, right), g.binary(Eq, left, right))
	case ">=":
		return g.binary(Or, g.binary(Less, right, left), g.binary(Eq, left, right))
	}
	return g.placeholder()
}

// genEquality compares strings by value and everything else by word.
func (g *Generator) genEquality(e *ast.EqualityExpr) *Location {
	left, right := g.genExpr(e.Left), g.genExpr(e.Right)
	var eq *Location
	if ast.IsPrimitive(g.info.TypeOf(e.Left), ast.StringType) || ast.IsPrimitive(g.info.TypeOf(e.Right), ast.StringType) {
		eq = g.newTemp()
		g.emit.BuiltInCall(eq, StringEqual, left, right)
	} else {
		eq = g.binary(Eq, left, right)
	}
	if e.Op.Token == "!=" {
		return g.binary(Eq, eq, g.constant(0))
	}
	return eq
}

func (g *Generator) genAssign(e *ast.AssignExpr) *Location {
	value := g.genExpr(e.Right)
	if value == nil {
		value = g.placeholder()
	}
	switch left := e.Left.(type) {
	case *ast.FieldAccess:
		loc, ref, offset := g.fieldRef(left)
		if loc != nil {
			g.emit.Assign(loc, value)
		} else {
			g.emit.Store(ref, offset, value)
		}
	case *ast.ArrayAccess:
		g.emit.Store(g.elementAddress(left), 0, value)
	}
	return value
}

// elementAddress computes the address of an array element after checking the subscript
// against the length stored in front of the elements.
func (g *Generator) elementAddress(e *ast.ArrayAccess) *Location {
	base := g.genExpr(e.Base)
	index := g.genExpr(e.Subscript)
	zero := g.constant(0)
	negative := g.binary(Less, index, zero)
	length := g.newTemp()
	g.emit.Load(length, base, -VarSize)
	inRange := g.binary(Less, index, length)
	tooLarge := g.binary(Eq, inRange, zero)
	g.check(g.binary(Or, negative, tooLarge), ErrArrayOutOfBounds)
	offset := g.binary(Mul, index, g.constant(VarSize))
	return g.binary(Add, base, offset)
}

// fieldRef finds the storage of a variable reference. Globals, parameters and locals come back
// as loc, fields as the object pointer and the field offset.
func (g *Generator) fieldRef(e *ast.FieldAccess) (loc, ref *Location, offset int) {
	if e.Base == nil {
		var v *ast.VarDecl
		if scope := g.info.ScopeOf(e); scope != nil {
			v, _ = scope.GetSymbol(e.Field.Name).(*ast.VarDecl)
		}
		if v != nil {
			if loc := g.locations[v]; loc != nil {
				return loc, nil, 0
			}
			if g.class != nil {
				if offset, ok := g.layouts.Of(g.class).FieldOffset(v.Name()); ok {
					return nil, ThisLocation, offset
				}
			}
		}
		return g.placeholder(), nil, 0
	}
	base := g.genExpr(e.Base)
	if class := g.info.ClassOfType(g.info.TypeOf(e.Base)); class != nil {
		if offset, ok := g.layouts.Of(class).FieldOffset(e.Field.Name); ok {
			return nil, base, offset
		}
	}
	return g.placeholder(), nil, 0
}

func (g *Generator) genCall(e *ast.Call) *Location {
	if e.Base == nil {
		var fn *ast.FnDecl
		if scope := g.info.ScopeOf(e); scope != nil {
			fn, _ = scope.GetSymbol(e.Field.Name).(*ast.FnDecl)
		}
		switch {
		case fn == nil:
			return g.placeholder()
		case fn.IsMethod() && g.class != nil:
			return g.virtualCall(ThisLocation, g.class, fn, e.Actuals)
		}
		return g.directCall(fn, e.Actuals)
	}
	baseType := g.info.TypeOf(e.Base)
	if baseType == nil || ast.IsError(baseType) {
		return g.placeholder()
	}
	if _, ok := baseType.(*ast.ArrayType); ok && e.Field.Name == "length" {
		dst := g.newTemp()
		g.emit.Load(dst, g.genExpr(e.Base), -VarSize)
		return dst
	}
	if g.info.LookupInterface(baseType.Name()) != nil {
		// Interfaces have no vtable slots of their own.
		g.genExpr(e.Base)
		g.emit.RuntimeError(ErrInterfaceDispatch)
		return g.placeholder()
	}
	class := g.info.ClassOfType(baseType)
	if class == nil {
		return g.placeholder()
	}
	fn, _ := class.GetFields(e.Field.Name).(*ast.FnDecl)
	if fn == nil {
		return g.placeholder()
	}
	return g.virtualCall(g.genExpr(e.Base), class, fn, e.Actuals)
}

// pushArgs evaluates the arguments left to right and pushes them right to left.
func (g *Generator) pushArgs(actuals []ast.Expr) {
	args := make([]*Location, len(actuals))
	for i, actual := range actuals {
		args[i] = g.genExpr(actual)
		if args[i] == nil {
			args[i] = g.placeholder()
		}
	}
	for i := len(args) - 1; i >= 0; i-- {
		g.emit.PushParam(args[i])
	}
}

func (g *Generator) result(fn *ast.FnDecl) *Location {
	if ast.IsVoid(g.info.ReturnType(fn)) {
		return nil
	}
	return g.newTemp()
}

func (g *Generator) directCall(fn *ast.FnDecl, actuals []ast.Expr) *Location {
	g.pushArgs(actuals)
	dst := g.result(fn)
	g.emit.LCall(dst, FunctionLabel(fn.Name()))
	g.emit.PopParams(VarSize * len(actuals))
	return dst
}

// virtualCall calls through the receiver's vtable. The receiver is pushed last so the callee
// finds it first.
func (g *Generator) virtualCall(receiver *Location, class *semant.Class, fn *ast.FnDecl, actuals []ast.Expr) *Location {
	offset, ok := g.layouts.Of(class).MethodOffset(fn.Name())
	if !ok {
		return g.placeholder()
	}
	vtable := g.newTemp()
	g.emit.Load(vtable, receiver, 0)
	method := g.newTemp()
	g.emit.Load(method, vtable, offset)
	g.pushArgs(actuals)
	g.emit.PushParam(receiver)
	dst := g.result(fn)
	g.emit.ACall(dst, method)
	g.emit.PopParams(VarSize * (len(actuals) + 1))
	return dst
}

// genNew allocates an object and stores its vtable at offset 0.
func (g *Generator) genNew(e *ast.NewExpr) *Location {
	class := g.info.ClassOfType(g.info.DeclTypes[e])
	if class == nil {
		return g.placeholder()
	}
	layout := g.layouts.Of(class)
	obj := g.newTemp()
	g.emit.BuiltInCall(obj, Alloc, g.constant(layout.Size()))
	vtable := g.newTemp()
	g.emit.LoadLabel(vtable, layout.Name)
	g.emit.Store(obj, 0, vtable)
	return obj
}

// genNewArray allocates the length word followed by the elements and returns a pointer to the
// first element.
func (g *Generator) genNewArray(e *ast.NewArrayExpr) *Location {
	size := g.genExpr(e.Size)
	if size == nil {
		size = g.placeholder()
	}
	g.check(g.binary(Less, size, g.constant(1)), ErrNewArrayBadSize)
	word := g.constant(VarSize)
	bytes := g.binary(Add, g.binary(Mul, size, word), word)
	array := g.newTemp()
	g.emit.BuiltInCall(array, Alloc, bytes)
	g.emit.Store(array, 0, size)
	return g.binary(Add, array, word)
}
