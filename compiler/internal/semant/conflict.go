package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

// ResolveScopes fills the class, function and block scopes and records the scope of every node.
// Classes are processed superclass first so inherited members are known when a class's own
// members are entered. A member that clashes with an inherited member or with a prototype of
// an implemented interface is reported and left out of the class scope, lookups then find the
// inherited declaration instead.
func (c *Checker) ResolveScopes(prog *ast.Program) {
	visited := map[*ast.ClassDecl]bool{}
	for _, decl := range prog.Decls {
		c.resolveConflict(decl, c.info.Global, visited)
	}
}

func (c *Checker) resolveConflict(n ast.Node, scope *Scope, visited map[*ast.ClassDecl]bool) {
	switch n := n.(type) {
	case *ast.ClassDecl:
		c.resolveClass(n, visited)
	case *ast.InterfaceDecl, *ast.VarDecl:
		// Interfaces were filled by RegisterGlobals, variables are entered by their owner.
	case *ast.FnDecl:
		fnScope := c.info.Scopes[n]
		if fnScope == nil {
			fnScope = NewScope(scope, c.errs)
			c.info.Scopes[n] = fnScope
		}
		for _, formal := range n.Formals {
			fnScope.AddSymbol(formal.Name(), formal)
			c.info.Scopes[formal] = fnScope
		}
		if n.Body != nil {
			c.resolveConflict(n.Body, fnScope, visited)
		}
	case *ast.StmtBlock:
		blockScope := c.info.Scopes[n]
		if blockScope == nil {
			blockScope = NewScope(scope, c.errs)
			c.info.Scopes[n] = blockScope
			for _, decl := range n.Decls {
				blockScope.AddSymbol(decl.Name(), decl)
				c.info.Scopes[decl] = blockScope
			}
		}
		for _, stmt := range n.Stmts {
			c.resolveConflict(stmt, blockScope, visited)
		}
	default:
		c.info.Scopes[n] = scope
		for _, child := range n.Children() {
			c.resolveConflict(child, scope, visited)
		}
	}
}

func (c *Checker) resolveClass(decl *ast.ClassDecl, visited map[*ast.ClassDecl]bool) {
	if visited[decl] {
		return
	}
	visited[decl] = true
	class := c.info.Classes[decl]
	if class.Extends != nil {
		c.resolveClass(class.Extends.Decl, visited)
	}
	for _, member := range decl.Members {
		c.resolveConflict(member, class.Scope, visited)
		name := member.Name()
		if class.Extends != nil {
			prev := class.Extends.GetFields(name)
			// Only reachable through a cycle in the inheritance chain.
			if prev != nil && class.Scope.Lookup(name) != nil {
				c.declConflict(member, prev)
				continue
			}
			if prev != nil && !c.checkDeclMatch(member, prev) {
				continue
			}
		}
		if fn, ok := member.(*ast.FnDecl); ok && !c.matchesInterfaces(class, fn) {
			continue
		}
		class.Scope.AddSymbol(name, member)
		if _, ok := member.(*ast.VarDecl); ok {
			c.info.Scopes[member] = class.Scope
		}
	}
}

// matchesInterfaces checks fn against the same-named prototype of every resolved interface of
// class and stops at the first mismatch.
func (c *Checker) matchesInterfaces(class *Class, fn *ast.FnDecl) bool {
	for _, iface := range class.Implements {
		if iface == nil {
			continue
		}
		prev := iface.Scope.Lookup(fn.Name())
		if prev != nil && !c.checkDeclMatch(fn, prev) {
			return false
		}
	}
	return true
}

// checkDeclMatch decides whether member may hide the inherited declaration prev, reporting why
// not. Fields can never be redeclared. Methods must match the signature they override.
func (c *Checker) checkDeclMatch(member, prev ast.Decl) bool {
	switch m := member.(type) {
	case *ast.VarDecl:
		c.declConflict(member, prev)
		return false
	case *ast.FnDecl:
		base, ok := prev.(*ast.FnDecl)
		if !ok {
			c.declConflict(member, prev)
			return false
		}
		if !c.info.FnMatch(m, base) {
			c.report(&Diagnostic{Kind: OverrideMismatch, Node: m})
			return false
		}
	}
	return true
}
