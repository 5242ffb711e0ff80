package semant

import (
	"fmt"
	"strings"

	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
)

type ErrorKind int

const (
	DeclConflict ErrorKind = iota
	IdentifierNotDeclared
	OverrideMismatch
	InterfaceNotImplemented
	IncompatibleOperand
	IncompatibleOperands
	TestNotBoolean
	ReturnMismatch
	BreakOutsideLoop
	ThisOutsideClassScope
	SubscriptNotInteger
	BracketsOnNonArray
	NumArgsMismatch
	ArgMismatch
	PrintArgMismatch
	FieldNotFoundInBase
	InaccessibleField
	NewArraySizeNotInteger
)

var errorKindNames = [...]string{
	DeclConflict:            "DeclConflict",
	IdentifierNotDeclared:   "IdentifierNotDeclared",
	OverrideMismatch:        "OverrideMismatch",
	InterfaceNotImplemented: "InterfaceNotImplemented",
	IncompatibleOperand:     "IncompatibleOperand",
	IncompatibleOperands:    "IncompatibleOperands",
	TestNotBoolean:          "TestNotBoolean",
	ReturnMismatch:          "ReturnMismatch",
	BreakOutsideLoop:        "BreakOutsideLoop",
	ThisOutsideClassScope:   "ThisOutsideClassScope",
	SubscriptNotInteger:     "SubscriptNotInteger",
	BracketsOnNonArray:      "BracketsOnNonArray",
	NumArgsMismatch:         "NumArgsMismatch",
	ArgMismatch:             "ArgMismatch",
	PrintArgMismatch:        "PrintArgMismatch",
	FieldNotFoundInBase:     "FieldNotFoundInBase",
	InaccessibleField:       "InaccessibleField",
	NewArraySizeNotInteger:  "NewArraySizeNotInteger",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Reason says what kind of declaration an unresolved identifier was looked up as.
type Reason int

const (
	LookingForType Reason = iota
	LookingForClass
	LookingForInterface
	LookingForVariable
	LookingForFunction
)

func (r Reason) String() string {
	switch r {
	case LookingForClass:
		return "class"
	case LookingForInterface:
		return "interface"
	case LookingForVariable:
		return "variable"
	case LookingForFunction:
		return "function"
	}
	return "type"
}

// Diagnostic is one semantic error. Which fields are set depends on Kind.
type Diagnostic struct {
	Kind ErrorKind
	// Node is where the error is reported: the new declaration for DeclConflict, the
	// identifier for IdentifierNotDeclared, the offending expression or statement otherwise.
	Node ast.Node
	// Other is the earlier declaration for DeclConflict and the implements entry for
	// InterfaceNotImplemented.
	Other  ast.Node
	Reason Reason
	Op     *ast.Operator
	// Types holds the operand types, or the given and the expected type.
	Types []ast.Type
	// Index is the 1-based argument position for ArgMismatch and PrintArgMismatch.
	Index    int
	Expected int
	Given    int
}

func (d *Diagnostic) Pos() *ast.Pos {
	if d.Node == nil {
		return nil
	}
	return d.Node.Pos()
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos(), d.message())
}

func (d *Diagnostic) typeAt(i int) string {
	if i < len(d.Types) && d.Types[i] != nil {
		return d.Types[i].String()
	}
	return "void"
}

func (d *Diagnostic) message() string {
	switch d.Kind {
	case DeclConflict:
		line := "-"
		if d.Other != nil && d.Other.Pos() != nil {
			line = fmt.Sprint(d.Other.Pos().Line)
		}
		return fmt.Sprintf("Declaration of '%s' here conflicts with declaration on line %s", nameOf(d.Node), line)
	case IdentifierNotDeclared:
		return fmt.Sprintf("No declaration found for %s '%s'", d.Reason, nameOf(d.Node))
	case OverrideMismatch:
		return fmt.Sprintf("Method '%s' must match inherited type signature", nameOf(d.Node))
	case InterfaceNotImplemented:
		return fmt.Sprintf("Class '%s' does not implement entire interface '%s'", nameOf(d.Node), nameOf(d.Other))
	case IncompatibleOperand:
		return fmt.Sprintf("Incompatible operand: %s %s", d.Op, d.typeAt(0))
	case IncompatibleOperands:
		return fmt.Sprintf("Incompatible operands: %s %s %s", d.typeAt(0), d.Op, d.typeAt(1))
	case TestNotBoolean:
		return "Test expression must have boolean type"
	case ReturnMismatch:
		return fmt.Sprintf("Incompatible return: %s given, %s expected", d.typeAt(0), d.typeAt(1))
	case BreakOutsideLoop:
		return "break is only allowed inside a loop"
	case ThisOutsideClassScope:
		return "'this' is only valid within class scope"
	case SubscriptNotInteger:
		return "Array subscript must be an integer"
	case BracketsOnNonArray:
		return "[] can only be applied to arrays"
	case NumArgsMismatch:
		plural := "s"
		if d.Expected == 1 {
			plural = ""
		}
		return fmt.Sprintf("Function '%s' expects %d argument%s but %d given", nameOf(d.Node), d.Expected, plural, d.Given)
	case ArgMismatch:
		return fmt.Sprintf("Incompatible argument %d: %s given, %s expected", d.Index, d.typeAt(0), d.typeAt(1))
	case PrintArgMismatch:
		return fmt.Sprintf("Incompatible argument %d: %s given, int/bool/string expected", d.Index, d.typeAt(0))
	case FieldNotFoundInBase:
		return fmt.Sprintf("%s has no such field '%s'", d.typeAt(0), nameOf(d.Node))
	case InaccessibleField:
		return fmt.Sprintf("%s field '%s' only accessible within class scope", d.typeAt(0), nameOf(d.Node))
	case NewArraySizeNotInteger:
		return "Size for NewArray must be an integer"
	}
	return d.Kind.String()
}

func nameOf(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Identifier:
		return v.Name
	case ast.Decl:
		return v.Name()
	case ast.Type:
		return v.String()
	}
	return "?"
}

// Reporter receives the diagnostics of every pass. No diagnostic stops a pass.
type Reporter interface {
	Report(d *Diagnostic)
}

type ReporterFunc func(d *Diagnostic)

func (f ReporterFunc) Report(d *Diagnostic) { f(d) }

// ErrorList collects diagnostics in the order they were reported.
type ErrorList []*Diagnostic

func (l *ErrorList) Report(d *Diagnostic) { *l = append(*l, d) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}

// Err returns nil for an empty list, so callers can write "if err := list.Err(); err != nil".
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Kinds lists the kind of every diagnostic, handy when comparing in tests.
func (l ErrorList) Kinds() []ErrorKind {
	kinds := make([]ErrorKind, 0, len(l))
	for _, d := range l {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

func (l ErrorList) String() string {
	lines := make([]string, 0, len(l))
	for _, d := range l {
		lines = append(lines, d.Error())
	}
	return strings.Join(lines, "\n")
}

func (c *Checker) report(d *Diagnostic) {
	c.errs.Report(d)
}

func (c *Checker) declConflict(newDecl, existing ast.Decl) {
	c.report(&Diagnostic{Kind: DeclConflict, Node: newDecl, Other: existing})
}

func (c *Checker) notDeclared(id *ast.Identifier, reason Reason) {
	c.report(&Diagnostic{Kind: IdentifierNotDeclared, Node: id, Reason: reason})
}
