package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

// ResolveTypes resolves every type written in the program against the named-type table. A name
// that doesn't resolve is reported and its position gets ast.ErrorType. It also links each
// class to its superclass and interfaces.
func (c *Checker) ResolveTypes(prog *ast.Program) {
	for _, decl := range prog.Decls {
		c.resolveNode(decl)
	}
}

func (c *Checker) resolveChildren(n ast.Node) {
	for _, child := range n.Children() {
		c.resolveNode(child)
	}
}

func (c *Checker) resolveNode(n ast.Node) {
	switch n := n.(type) {
	case *ast.VarDecl:
		c.info.DeclTypes[n] = c.resolveType(n.Type, LookingForType)
	case *ast.FnDecl:
		c.resolveChildren(n)
		c.info.DeclTypes[n] = c.resolveType(n.ReturnType, LookingForType)
	case *ast.ClassDecl:
		c.resolveChildren(n)
		c.resolveClassLinks(n)
	case *ast.NewExpr:
		c.info.DeclTypes[n] = c.resolveType(n.Class, LookingForClass)
	case *ast.NewArrayExpr:
		c.resolveNode(n.Size)
		c.info.DeclTypes[n] = c.resolveType(n.ElemType, LookingForType)
	case ast.Type:
		// Only resolved from the declaration that owns it.
	default:
		c.resolveChildren(n)
	}
}

func (c *Checker) resolveType(t ast.Type, reason Reason) ast.Type {
	switch t := t.(type) {
	case *ast.NamedType:
		decl := c.info.NamedTypes.Lookup(t.Name())
		if reason == LookingForClass {
			if _, ok := decl.(*ast.ClassDecl); !ok {
				c.notDeclared(t.Id, reason)
				return ast.ErrorType
			}
		} else if decl == nil {
			c.notDeclared(t.Id, reason)
			return ast.ErrorType
		}
		return t
	case *ast.ArrayType:
		elem := c.resolveType(t.Elem, reason)
		if elem == t.Elem {
			return t
		}
		return ast.ArrayOf(elem)
	case nil:
		return ast.VoidType
	}
	return t
}

func (c *Checker) resolveClassLinks(decl *ast.ClassDecl) {
	class := c.info.Classes[decl]
	if decl.Extends != nil {
		extends, _ := c.info.NamedTypes.Lookup(decl.Extends.Name()).(*ast.ClassDecl)
		if extends == nil {
			c.notDeclared(decl.Extends.Id, LookingForClass)
		}
		// "class A extends A" is read as a class without superclass.
		if extends == decl {
			extends = nil
		}
		if extends != nil {
			class.Extends = c.info.Classes[extends]
		}
	}
	class.Implements = make([]*Interface, len(decl.Implements))
	for i, imp := range decl.Implements {
		iface, _ := c.info.NamedTypes.Lookup(imp.Name()).(*ast.InterfaceDecl)
		if iface == nil {
			c.notDeclared(imp.Id, LookingForInterface)
			continue
		}
		class.Implements[i] = c.info.Interfaces[iface]
	}
}
