// Package semant builds the scopes of a decaf program and checks it. The work is split into
// four passes over the whole tree, each one needs the complete result of the one before:
//
//	RegisterGlobals  top-level names, classes and interfaces
//	ResolveTypes     type positions, extends and implements
//	ResolveScopes    member, function and block scopes, declaration conflicts and overrides
//	CheckProgram     expression types and the remaining semantic rules
//
// Problems are reported to a Reporter and never stop a pass, an expression that can't be typed
// gets ast.ErrorType so the same mistake is not reported again further up.
package semant

import "github.com/40404notfound/decaf-compiler/compiler/internal/ast"

type Checker struct {
	info *Info
	errs Reporter
}

func NewChecker(errs Reporter) *Checker {
	if errs == nil {
		errs = ReporterFunc(func(*Diagnostic) {})
	}
	info := NewInfo()
	info.Global = NewScope(nil, errs)
	return &Checker{info: info, errs: errs}
}

func (c *Checker) Info() *Info { return c.info }

// Analyze runs the four passes in order and returns what they found.
func Analyze(prog *ast.Program, errs Reporter) *Info {
	c := NewChecker(errs)
	c.RegisterGlobals(prog)
	c.ResolveTypes(prog)
	c.ResolveScopes(prog)
	c.CheckProgram(prog)
	return c.info
}
