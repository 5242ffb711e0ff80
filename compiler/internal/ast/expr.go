package ast

// Expr is an expression. The type of every expression is recorded by the checker in semant.Info.
type Expr interface {
	Stmt
	exprNode()
}

type expr struct {
	stmt
}

func (*expr) exprNode() {}

// EmptyExpr stands in where an expression is optional, like a bare "return;" or "for (;;)".
type EmptyExpr struct {
	expr
}

func NewEmptyExpr() *EmptyExpr { return &EmptyExpr{} }

func IsEmpty(e Expr) bool {
	_, ok := e.(*EmptyExpr)
	return e == nil || ok
}

type IntConstant struct {
	expr
	Value int
}

func NewIntConstant(pos *Pos, value int) *IntConstant {
	return &IntConstant{expr: expr{stmt{node{pos: pos}}}, Value: value}
}

type DoubleConstant struct {
	expr
	Value float64
}

func NewDoubleConstant(pos *Pos, value float64) *DoubleConstant {
	return &DoubleConstant{expr: expr{stmt{node{pos: pos}}}, Value: value}
}

type BoolConstant struct {
	expr
	Value bool
}

func NewBoolConstant(pos *Pos, value bool) *BoolConstant {
	return &BoolConstant{expr: expr{stmt{node{pos: pos}}}, Value: value}
}

type StringConstant struct {
	expr
	Value string
}

func NewStringConstant(pos *Pos, value string) *StringConstant {
	return &StringConstant{expr: expr{stmt{node{pos: pos}}}, Value: value}
}

type NullConstant struct {
	expr
}

func NewNullConstant(pos *Pos) *NullConstant {
	return &NullConstant{expr{stmt{node{pos: pos}}}}
}

// Operator is the token of a compound expression: "+", "<=", "&&", "=", ...
type Operator struct {
	node
	Token string
}

func NewOperator(pos *Pos, token string) *Operator {
	return &Operator{node: node{pos: pos}, Token: token}
}

func (op *Operator) String() string { return op.Token }

// compound is shared by all operator expressions. Left is nil for unary operators.
type compound struct {
	expr
	Left  Expr
	Op    *Operator
	Right Expr
}

func newCompound(left Expr, op *Operator, right Expr) compound {
	pos := op.Pos()
	if left != nil && left.Pos() != nil {
		pos = left.Pos()
	}
	return compound{expr: expr{stmt{node{pos: pos}}}, Left: left, Op: op, Right: right}
}

func (c *compound) Children() []Node { return appendNodes(nil, c.Op, c.Left, c.Right) }

func (c *compound) IsUnary() bool { return c.Left == nil }

func (c *compound) Operands() (Expr, *Operator, Expr) { return c.Left, c.Op, c.Right }

type ArithmeticExpr struct {
	compound
}

// NewArithmeticExpr builds a binary or, with a nil left, a unary "-" expression.
func NewArithmeticExpr(left Expr, op *Operator, right Expr) *ArithmeticExpr {
	e := &ArithmeticExpr{newCompound(left, op, right)}
	attach(e, op, left, right)
	return e
}

type RelationalExpr struct {
	compound
}

func NewRelationalExpr(left Expr, op *Operator, right Expr) *RelationalExpr {
	e := &RelationalExpr{newCompound(left, op, right)}
	attach(e, op, left, right)
	return e
}

type EqualityExpr struct {
	compound
}

func NewEqualityExpr(left Expr, op *Operator, right Expr) *EqualityExpr {
	e := &EqualityExpr{newCompound(left, op, right)}
	attach(e, op, left, right)
	return e
}

// LogicalExpr is "&&", "||", or with a nil left, "!".
type LogicalExpr struct {
	compound
}

func NewLogicalExpr(left Expr, op *Operator, right Expr) *LogicalExpr {
	e := &LogicalExpr{newCompound(left, op, right)}
	attach(e, op, left, right)
	return e
}

type AssignExpr struct {
	compound
}

func NewAssignExpr(left Expr, op *Operator, right Expr) *AssignExpr {
	e := &AssignExpr{newCompound(left, op, right)}
	attach(e, op, left, right)
	return e
}

type This struct {
	expr
}

func NewThis(pos *Pos) *This { return &This{expr{stmt{node{pos: pos}}}} }

type ArrayAccess struct {
	expr
	Base, Subscript Expr
}

func NewArrayAccess(pos *Pos, base, subscript Expr) *ArrayAccess {
	e := &ArrayAccess{expr: expr{stmt{node{pos: pos}}}, Base: base, Subscript: subscript}
	attach(e, base, subscript)
	return e
}

func (e *ArrayAccess) Children() []Node { return []Node{e.Base, e.Subscript} }

// FieldAccess is both "base.field" and a bare "field". Whether a bare name is a local, a global
// or a field through the implicit this is only known after scopes are built.
type FieldAccess struct {
	expr
	// Base is nil if there is no explicit base.
	Base  Expr
	Field *Identifier
}

func NewFieldAccess(base Expr, field *Identifier) *FieldAccess {
	pos := field.Pos()
	if base != nil && base.Pos() != nil {
		pos = base.Pos()
	}
	e := &FieldAccess{expr: expr{stmt{node{pos: pos}}}, Base: base, Field: field}
	attach(e, base, field)
	return e
}

func (e *FieldAccess) Children() []Node { return appendNodes(nil, e.Base, e.Field) }

// Call is both "base.method(args)" and a bare "fn(args)".
type Call struct {
	expr
	// Base is nil if there is no explicit base.
	Base    Expr
	Field   *Identifier
	Actuals []Expr
}

func NewCall(pos *Pos, base Expr, field *Identifier, actuals []Expr) *Call {
	e := &Call{expr: expr{stmt{node{pos: pos}}}, Base: base, Field: field, Actuals: actuals}
	attach(e, base, field)
	for _, actual := range actuals {
		attach(e, actual)
	}
	return e
}

func (e *Call) Children() []Node {
	result := appendNodes(nil, e.Base, e.Field)
	for _, actual := range e.Actuals {
		result = append(result, actual)
	}
	return result
}

type NewExpr struct {
	expr
	Class *NamedType
}

func NewNewExpr(pos *Pos, class *NamedType) *NewExpr {
	e := &NewExpr{expr: expr{stmt{node{pos: pos}}}, Class: class}
	attach(e, class)
	return e
}

func (e *NewExpr) Children() []Node { return []Node{e.Class} }

type NewArrayExpr struct {
	expr
	Size     Expr
	ElemType Type
}

func NewNewArrayExpr(pos *Pos, size Expr, elemType Type) *NewArrayExpr {
	e := &NewArrayExpr{expr: expr{stmt{node{pos: pos}}}, Size: size, ElemType: elemType}
	attach(e, size, elemType)
	return e
}

func (e *NewArrayExpr) Children() []Node { return []Node{e.Size, e.ElemType} }

type ReadIntegerExpr struct {
	expr
}

func NewReadIntegerExpr(pos *Pos) *ReadIntegerExpr {
	return &ReadIntegerExpr{expr{stmt{node{pos: pos}}}}
}

type ReadLineExpr struct {
	expr
}

func NewReadLineExpr(pos *Pos) *ReadLineExpr {
	return &ReadLineExpr{expr{stmt{node{pos: pos}}}}
}
