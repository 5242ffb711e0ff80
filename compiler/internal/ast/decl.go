package ast

// Decl is one of *VarDecl, *FnDecl, *ClassDecl or *InterfaceDecl.
type Decl interface {
	Node
	Ident() *Identifier
	Name() string
	declNode()
}

type decl struct {
	node
	Id *Identifier
}

func (d *decl) Ident() *Identifier { return d.Id }

func (d *decl) Name() string { return d.Id.Name }

func (*decl) declNode() {}

type VarDecl struct {
	decl
	// Type is the declared type as written. The resolved one lives in semant.Info.
	Type Type
}

func NewVarDecl(id *Identifier, tp Type) *VarDecl {
	v := &VarDecl{decl: decl{node: node{pos: id.Pos()}, Id: id}, Type: tp}
	attach(v, id, tp)
	return v
}

func (v *VarDecl) Children() []Node { return []Node{v.Id, v.Type} }

type FnDecl struct {
	decl
	Formals    []*VarDecl
	ReturnType Type
	// Body is nil for interface prototypes.
	Body *StmtBlock
}

func NewFnDecl(id *Identifier, returnType Type, formals []*VarDecl) *FnDecl {
	fn := &FnDecl{decl: decl{node: node{pos: id.Pos()}, Id: id}, Formals: formals, ReturnType: returnType}
	attach(fn, id, returnType)
	for _, formal := range formals {
		attach(fn, formal)
	}
	return fn
}

// SetFunctionBody is separate from NewFnDecl since the parser sees the body after the signature.
func (fn *FnDecl) SetFunctionBody(body *StmtBlock) {
	fn.Body = body
	attach(fn, body)
}

func (fn *FnDecl) Children() []Node {
	result := []Node{fn.Id}
	for _, formal := range fn.Formals {
		result = append(result, formal)
	}
	return appendNodes(result, fn.ReturnType, fn.Body)
}

// IsMethod reports whether fn is declared in a class body.
func (fn *FnDecl) IsMethod() bool {
	_, ok := fn.Parent().(*ClassDecl)
	return ok
}

type ClassDecl struct {
	decl
	// Extends is nil when the class has no superclass.
	Extends    *NamedType
	Implements []*NamedType
	Members    []Decl
}

func NewClassDecl(id *Identifier, extends *NamedType, implements []*NamedType, members []Decl) *ClassDecl {
	class := &ClassDecl{
		decl:       decl{node: node{pos: id.Pos()}, Id: id},
		Extends:    extends,
		Implements: implements,
		Members:    members,
	}
	attach(class, id, extends)
	for _, imp := range implements {
		attach(class, imp)
	}
	for _, member := range members {
		attach(class, member)
	}
	return class
}

func (c *ClassDecl) Children() []Node {
	result := []Node{c.Id}
	for _, member := range c.Members {
		result = append(result, member)
	}
	result = appendNodes(result, c.Extends)
	for _, imp := range c.Implements {
		result = append(result, imp)
	}
	return result
}

type InterfaceDecl struct {
	decl
	// Members are method prototypes.
	Members []Decl
}

func NewInterfaceDecl(id *Identifier, members []Decl) *InterfaceDecl {
	iface := &InterfaceDecl{decl: decl{node: node{pos: id.Pos()}, Id: id}, Members: members}
	attach(iface, id)
	for _, member := range members {
		attach(iface, member)
	}
	return iface
}

func (i *InterfaceDecl) Children() []Node {
	result := []Node{i.Id}
	for _, member := range i.Members {
		result = append(result, member)
	}
	return result
}

// Program is the root of the tree.
type Program struct {
	node
	Decls []Decl
}

func NewProgram(decls []Decl) *Program {
	p := &Program{Decls: decls}
	for _, d := range decls {
		attach(p, d)
	}
	return p
}

func (p *Program) Children() []Node {
	result := make([]Node, 0, len(p.Decls))
	for _, d := range p.Decls {
		result = append(result, d)
	}
	return result
}
