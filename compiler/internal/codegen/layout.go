package codegen

import (
	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
	"github.com/40404notfound/decaf-compiler/compiler/internal/semant"
)

// ClassLayout is the memory layout of a class: the ordered vtable and the field offsets.
// A subclass starts from a copy of its superclass layout, so inherited members keep their
// offsets.
type ClassLayout struct {
	Name string
	// Methods holds the label of every vtable slot, MethodNames the method name of the slot.
	Methods     []string
	MethodNames []string
	Fields      []string

	fieldOffsets map[string]int
	methodSlots  map[string]int
}

// FieldOffset returns the offset of the named field from the object pointer.
func (l *ClassLayout) FieldOffset(name string) (int, bool) {
	offset, ok := l.fieldOffsets[name]
	return offset, ok
}

// MethodOffset returns the offset of the named method's slot from the vtable pointer.
func (l *ClassLayout) MethodOffset(name string) (int, bool) {
	slot, ok := l.methodSlots[name]
	return slot * VarSize, ok
}

func (l *ClassLayout) NumFields() int { return len(l.Fields) }

// Size is the number of bytes of an instance, vtable pointer included.
func (l *ClassLayout) Size() int { return OffsetToFirstMember + VarSize*len(l.Fields) }

func (l *ClassLayout) addField(name string) {
	l.fieldOffsets[name] = OffsetToFirstMember + VarSize*len(l.Fields)
	l.Fields = append(l.Fields, name)
}

func (l *ClassLayout) addMethod(name, label string) {
	if slot, ok := l.methodSlots[name]; ok {
		l.Methods[slot] = label
		return
	}
	l.methodSlots[name] = len(l.Methods)
	l.Methods = append(l.Methods, label)
	l.MethodNames = append(l.MethodNames, name)
}

// Layouts memoizes the layout of every class by name.
type Layouts map[string]*ClassLayout

// Of returns the layout of class, computing it and its superclass layouts on first use.
func (layouts Layouts) Of(class *semant.Class) *ClassLayout {
	name := class.Decl.Name()
	if l, ok := layouts[name]; ok {
		return l
	}
	l := &ClassLayout{Name: name, fieldOffsets: map[string]int{}, methodSlots: map[string]int{}}
	// Entered before the superclass so a broken inheritance chain can't recurse forever.
	layouts[name] = l
	if class.Extends != nil {
		base := layouts.Of(class.Extends)
		l.Methods = append(l.Methods, base.Methods...)
		l.MethodNames = append(l.MethodNames, base.MethodNames...)
		l.Fields = append(l.Fields, base.Fields...)
		for k, v := range base.fieldOffsets {
			l.fieldOffsets[k] = v
		}
		for k, v := range base.methodSlots {
			l.methodSlots[k] = v
		}
	}
	for _, member := range class.Decl.Members {
		// Duplicates and rejected overrides never made it into the class scope.
		if class.Scope.Lookup(member.Name()) != member {
			continue
		}
		switch member := member.(type) {
		case *ast.VarDecl:
			l.addField(member.Name())
		case *ast.FnDecl:
			l.addMethod(member.Name(), MethodLabel(name, member.Name()))
		}
	}
	return l
}

// FunctionLabel is the label of a global function. The entry point keeps its name.
func FunctionLabel(name string) string {
	if name == "main" {
		return name
	}
	return "_" + name
}

func MethodLabel(class, method string) string {
	return "_" + class + "." + method
}
