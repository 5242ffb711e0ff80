package ast

import (
	"fmt"
	"reflect"
)

// In this package, we defined the syntax tree of decaf programs. The tree is built by a parser
// (not part of this repository) through the New* constructors, which also wire up the parent
// links of every child. After that the shape of the tree never changes, later passes only keep
// their results on the side (see semant.Info and codegen.Layouts).

// Pos is a source location. Nodes synthesized by the compiler don't have one.
type Pos struct {
	Line   int
	Column int
}

func (p *Pos) String() string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Node interface {
	Pos() *Pos
	Parent() Node
	SetParent(parent Node)
	// Children returns the direct children in the order passes visit them. Absent optional
	// children are not included.
	Children() []Node
}

type node struct {
	pos    *Pos
	parent Node
}

func (n *node) Pos() *Pos { return n.pos }

func (n *node) Parent() Node { return n.parent }

// SetParent is called once, when the node is attached to its parent.
func (n *node) SetParent(parent Node) {
	if n.parent != nil {
		panic("ast: node already attached to a parent")
	}
	n.parent = parent
}

func (n *node) Children() []Node { return nil }

func attach(parent Node, children ...Node) {
	for _, child := range children {
		if isNil(child) {
			continue
		}
		child.SetParent(parent)
	}
}

// isNil catches typed nil pointers stored in a Node interface, like a nil *StmtBlock.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func appendNodes(result []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		if !isNil(n) {
			result = append(result, n)
		}
	}
	return result
}

// Identifier is a name at a source location.
type Identifier struct {
	node
	Name string
}

func NewIdentifier(pos *Pos, name string) *Identifier {
	return &Identifier{node: node{pos: pos}, Name: name}
}

func (id *Identifier) String() string { return id.Name }

// Visitor is called for each node during Walk. If it returns false, the children of the node
// are not visited.
type Visitor func(n Node) bool

// Walk traverses the tree rooted at n in depth-first order.
func Walk(n Node, v Visitor) {
	if isNil(n) || !v(n) {
		return
	}
	for _, child := range n.Children() {
		Walk(child, v)
	}
}

// EnclosingClass returns the class whose body contains n, or nil.
func EnclosingClass(n Node) *ClassDecl {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if class, ok := p.(*ClassDecl); ok {
			return class
		}
	}
	return nil
}
