package ast

import "strings"

// Type is one of *PrimitiveType, *NamedType or *ArrayType.
type Type interface {
	Node
	// Name is the spelling used for type equivalence: "int", "Shape", "int[][]".
	Name() string
	String() string
	typeNode()
}

// PrimitiveType is a built-in type. There is exactly one value per built-in, see below.
type PrimitiveType struct {
	node
	name string
}

func (t *PrimitiveType) Name() string { return t.name }

func (t *PrimitiveType) String() string {
	return strings.TrimPrefix(t.name, "#")
}

func (*PrimitiveType) typeNode() {}

// Built-in types are shared by every tree, they are never attached to a parent.
var (
	IntType    = &PrimitiveType{name: "int"}
	DoubleType = &PrimitiveType{name: "double"}
	BoolType   = &PrimitiveType{name: "bool"}
	VoidType   = &PrimitiveType{name: "void"}
	NullType   = &PrimitiveType{name: "null"}
	StringType = &PrimitiveType{name: "string"}
	// ErrorType marks a position that was already reported. "#" keeps it apart from any class
	// a program could declare.
	ErrorType = &PrimitiveType{name: "#error"}
)

func (t *PrimitiveType) SetParent(Node) {}

// NamedType refers to a class or an interface by name.
type NamedType struct {
	node
	Id *Identifier
}

func NewNamedType(id *Identifier) *NamedType {
	t := &NamedType{node: node{pos: id.Pos()}, Id: id}
	attach(t, id)
	return t
}

func (t *NamedType) Name() string { return t.Id.Name }

func (t *NamedType) String() string { return t.Id.Name }

func (t *NamedType) Children() []Node { return []Node{t.Id} }

func (*NamedType) typeNode() {}

type ArrayType struct {
	node
	Elem Type
}

func NewArrayType(pos *Pos, elem Type) *ArrayType {
	t := &ArrayType{node: node{pos: pos}, Elem: elem}
	attach(t, elem)
	return t
}

// ArrayOf builds an array type for an already resolved element type. The element is not
// re-parented, resolved types are shared.
func ArrayOf(elem Type) *ArrayType {
	return &ArrayType{Elem: elem}
}

func (t *ArrayType) Name() string { return t.Elem.Name() + "[]" }

func (t *ArrayType) String() string { return t.Elem.String() + "[]" }

func (t *ArrayType) Children() []Node { return []Node{t.Elem} }

func (*ArrayType) typeNode() {}

// IsError reports whether t marks an already reported problem. An array of error is an error too.
func IsError(t Type) bool {
	switch v := t.(type) {
	case *PrimitiveType:
		return v == ErrorType
	case *ArrayType:
		return IsError(v.Elem)
	}
	return false
}

func IsVoid(t Type) bool { return t != nil && t.Name() == VoidType.name }

func IsPrimitive(t Type, builtin *PrimitiveType) bool {
	return t != nil && t.Name() == builtin.name
}
