package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

// Info holds the results of the analysis passes. The tree itself is never changed, each pass
// records what it found here.
type Info struct {
	// Global holds every top-level declaration. Function and block scopes descend from it.
	Global *Scope
	// NamedTypes only holds classes and interfaces, it resolves names in type positions.
	NamedTypes *Scope

	Classes    map[*ast.ClassDecl]*Class
	Interfaces map[*ast.InterfaceDecl]*Interface

	// Scopes maps nodes to the scope they are in. Functions and blocks map to the scope they
	// open, classes to their class scope.
	Scopes map[ast.Node]*Scope

	// DeclTypes holds resolved types: the type of a VarDecl, the return type of a FnDecl, the
	// class of a NewExpr and the element type of a NewArrayExpr.
	DeclTypes map[ast.Node]ast.Type

	// Types maps every checked expression to its type. EmptyExpr has none.
	Types map[ast.Expr]ast.Type
}

func NewInfo() *Info {
	info := &Info{
		NamedTypes: NewScope(nil, nil),
		Classes:    map[*ast.ClassDecl]*Class{},
		Interfaces: map[*ast.InterfaceDecl]*Interface{},
		Scopes:     map[ast.Node]*Scope{},
		DeclTypes:  map[ast.Node]ast.Type{},
		Types:      map[ast.Expr]ast.Type{},
	}
	return info
}

func (info *Info) TypeOf(e ast.Expr) ast.Type {
	return info.Types[e]
}

func (info *Info) ScopeOf(n ast.Node) *Scope {
	return info.Scopes[n]
}

// VarType returns the resolved type of v, or its declared type before resolution.
func (info *Info) VarType(v *ast.VarDecl) ast.Type {
	if t, ok := info.DeclTypes[v]; ok {
		return t
	}
	return v.Type
}

func (info *Info) ReturnType(fn *ast.FnDecl) ast.Type {
	if t, ok := info.DeclTypes[fn]; ok {
		return t
	}
	return fn.ReturnType
}

func (info *Info) LookupClass(name string) *Class {
	decl, _ := info.NamedTypes.Lookup(name).(*ast.ClassDecl)
	if decl == nil {
		return nil
	}
	return info.Classes[decl]
}

func (info *Info) LookupInterface(name string) *Interface {
	decl, _ := info.NamedTypes.Lookup(name).(*ast.InterfaceDecl)
	if decl == nil {
		return nil
	}
	return info.Interfaces[decl]
}

// ClassOfType returns the class a value of type t is an instance of, nil if t is not a class type.
func (info *Info) ClassOfType(t ast.Type) *Class {
	if _, ok := t.(*ast.NamedType); !ok {
		return nil
	}
	return info.LookupClass(t.Name())
}

// typeMatch is equality by name. Error matches everything.
func typeMatch(l, r ast.Type) bool {
	if ast.IsError(l) || ast.IsError(r) {
		return true
	}
	return l.Name() == r.Name()
}

// SubtypeOf reports whether a value of type child can be used where parent is expected.
// Arrays are invariant: int[] and int[] match, A[] and B[] never do.
func (info *Info) SubtypeOf(child, parent ast.Type) bool {
	if child == nil {
		child = ast.VoidType
	}
	if parent == nil {
		parent = ast.VoidType
	}
	if typeMatch(child, parent) {
		return true
	}
	if parent.Name() == ast.NullType.Name() {
		return false
	}
	if child.Name() == ast.NullType.Name() {
		_, named := parent.(*ast.NamedType)
		return named
	}
	if _, named := parent.(*ast.NamedType); !named {
		return false
	}
	parentDecl := info.NamedTypes.Lookup(parent.Name())
	class := info.ClassOfType(child)
	if parentDecl == nil || class == nil {
		return false
	}
	return class.ImplementsOrExtends(parentDecl)
}

// Compatible is the check for "==" and "!=": either side may be the subtype.
func (info *Info) Compatible(l, r ast.Type) bool {
	return info.SubtypeOf(l, r) || info.SubtypeOf(r, l)
}

// FnMatch reports whether fn can stand in for base: the return type may narrow and the
// parameter types may widen.
func (info *Info) FnMatch(fn, base *ast.FnDecl) bool {
	if fn == nil || base == nil {
		return false
	}
	if !info.SubtypeOf(info.ReturnType(fn), info.ReturnType(base)) {
		return false
	}
	if len(fn.Formals) != len(base.Formals) {
		return false
	}
	for i := range fn.Formals {
		if !info.SubtypeOf(info.VarType(base.Formals[i]), info.VarType(fn.Formals[i])) {
			return false
		}
	}
	return true
}
