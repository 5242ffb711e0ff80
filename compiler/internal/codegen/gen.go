// Package codegen lays out classes and frames and emits three-address code for a checked
// program through an Emitter.
package codegen

import (
	"fmt"

	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
	"github.com/40404notfound/decaf-compiler/compiler/internal/semant"
)

// Generator emits one program. The program may contain diagnosed errors, positions typed as
// ast.ErrorType then produce placeholder values instead of real code.
type Generator struct {
	info    *semant.Info
	emit    Emitter
	layouts Layouts

	// locations holds globals, parameters and locals. Fields are reached through their
	// object instead.
	locations map[*ast.VarDecl]*Location
	labels    int

	// State of the function being emitted.
	class     *semant.Class
	nextLocal int
	frameSize int
	temps     int
	loopExits []string
}

func NewGenerator(info *semant.Info, emit Emitter) *Generator {
	return &Generator{
		info:      info,
		emit:      emit,
		layouts:   Layouts{},
		locations: map[*ast.VarDecl]*Location{},
	}
}

func (g *Generator) Layouts() Layouts { return g.layouts }

// LocationOf returns the storage of a global, parameter or local once it has been assigned.
func (g *Generator) LocationOf(v *ast.VarDecl) *Location { return g.locations[v] }

// Generate assigns the global slots and computes every class layout, then emits every function
// and method. A class's vtable follows its methods.
func (g *Generator) Generate(prog *ast.Program) {
	var globals []*Location
	for _, decl := range prog.Decls {
		if v, ok := decl.(*ast.VarDecl); ok {
			loc := &Location{Segment: GlobalRelative, Offset: OffsetToFirstGlobal + VarSize*len(globals), Name: v.Name()}
			g.locations[v] = loc
			globals = append(globals, loc)
		}
	}
	g.emit.GlobalTable(globals)
	for _, decl := range prog.Decls {
		if c, ok := decl.(*ast.ClassDecl); ok && g.declared(c) {
			g.layouts.Of(g.info.Classes[c])
		}
	}
	for _, decl := range prog.Decls {
		switch decl := decl.(type) {
		case *ast.FnDecl:
			g.genFunction(decl, nil)
		case *ast.ClassDecl:
			g.genClass(decl)
		}
	}
}

// declared reports whether decl is the class its name resolves to. A redeclared class was
// diagnosed and gets no code.
func (g *Generator) declared(decl *ast.ClassDecl) bool {
	return g.info.NamedTypes.Lookup(decl.Name()) == ast.Decl(decl)
}

func (g *Generator) genClass(decl *ast.ClassDecl) {
	if !g.declared(decl) {
		return
	}
	class := g.info.Classes[decl]
	for _, member := range decl.Members {
		if fn, ok := member.(*ast.FnDecl); ok {
			g.genFunction(fn, class)
		}
	}
	g.emit.VTable(decl.Name(), g.layouts.Of(class).Methods)
}

func (g *Generator) genFunction(fn *ast.FnDecl, class *semant.Class) {
	label := FunctionLabel(fn.Name())
	if class != nil {
		label = MethodLabel(class.Decl.Name(), fn.Name())
	}
	g.class = class
	g.nextLocal = OffsetToFirstLocal
	g.frameSize = 0
	g.temps = 0
	g.loopExits = nil

	g.emit.Label(label)
	frame := g.emit.BeginFunc()
	offset := OffsetToFirstParam
	if class != nil {
		offset += VarSize
	}
	for _, formal := range fn.Formals {
		g.locations[formal] = &Location{Segment: FrameRelative, Offset: offset, Name: formal.Name()}
		offset += VarSize
	}
	if fn.Body != nil {
		g.genStmt(fn.Body)
	}
	frame.SetFrameSize(g.frameSize)
	g.emit.EndFunc()
}

func (g *Generator) newFrameSlot(name string) *Location {
	loc := &Location{Segment: FrameRelative, Offset: g.nextLocal, Name: name}
	g.nextLocal -= VarSize
	g.frameSize += VarSize
	return loc
}

func (g *Generator) newTemp() *Location {
	g.temps++
	return g.newFrameSlot(fmt.Sprintf("_tmp%d", g.temps-1))
}

func (g *Generator) newLabel() string {
	g.labels++
	return fmt.Sprintf("_L%d", g.labels-1)
}

func (g *Generator) constant(value int) *Location {
	dst := g.newTemp()
	g.emit.LoadConstant(dst, value)
	return dst
}

// placeholder stands in for the value of an expression that was diagnosed.
func (g *Generator) placeholder() *Location { return g.constant(0) }

// check branches around a runtime error when failed is zero.
func (g *Generator) check(failed *Location, kind RuntimeErrorKind) {
	ok := g.newLabel()
	g.emit.IfZ(failed, ok)
	g.emit.RuntimeError(kind)
	g.emit.Label(ok)
}
