package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

// RegisterGlobals enters every top-level declaration into the global scope, and classes and
// interfaces into the named-type table as well. A name declared twice keeps its first
// declaration. Every class and interface gets its own scope here, an interface's scope is
// filled with its prototypes right away so duplicate methods in one interface are caught.
func (c *Checker) RegisterGlobals(prog *ast.Program) {
	for _, decl := range prog.Decls {
		c.addGlobal(decl)
	}
}

func (c *Checker) addGlobal(decl ast.Decl) {
	global := c.info.Global
	registered := false
	if prev := global.GetSymbol(decl.Name()); prev != nil {
		c.declConflict(decl, prev)
	} else {
		global.AddSymbol(decl.Name(), decl)
		registered = true
	}
	switch d := decl.(type) {
	case *ast.ClassDecl:
		if registered {
			c.info.NamedTypes.AddSymbol(d.Name(), d)
		}
		class := &Class{Decl: d, Type: ast.NewNamedType(ast.NewIdentifier(nil, d.Name()))}
		class.Scope = NewClassScope(global, class, c.errs)
		c.info.Classes[d] = class
		c.info.Scopes[d] = class.Scope
	case *ast.InterfaceDecl:
		if registered {
			c.info.NamedTypes.AddSymbol(d.Name(), d)
		}
		iface := &Interface{Decl: d, Scope: NewScope(global, c.errs)}
		for _, member := range d.Members {
			iface.Scope.AddSymbol(member.Name(), member)
		}
		c.info.Interfaces[d] = iface
		c.info.Scopes[d] = iface.Scope
	case *ast.FnDecl:
		c.info.Scopes[d] = NewScope(global, c.errs)
	case *ast.VarDecl:
		c.info.Scopes[d] = global
	}
}
