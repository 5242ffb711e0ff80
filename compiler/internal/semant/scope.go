package semant

import (
	"sort"

	"github.com/40404notfound/decaf-compiler/compiler/internal/ast"
)

// Scope maps names to declarations. A lexical scope falls back to its parent on a miss. A class
// scope first walks the inheritance chain of its class and only then falls back to its parent,
// which is always the global scope.
type Scope struct {
	parent  *Scope
	symbols map[string]ast.Decl
	// class is set for class scopes.
	class *Class
	errs  Reporter
}

func NewScope(parent *Scope, errs Reporter) *Scope {
	return &Scope{parent: parent, symbols: map[string]ast.Decl{}, errs: errs}
}

func NewClassScope(parent *Scope, class *Class, errs Reporter) *Scope {
	s := NewScope(parent, errs)
	s.class = class
	return s
}

func (s *Scope) Parent() *Scope { return s.parent }

// Class returns the class of a class scope, nil for a lexical one.
func (s *Scope) Class() *Class { return s.class }

// Lookup only looks at the names bound in s itself.
func (s *Scope) Lookup(name string) ast.Decl {
	return s.symbols[name]
}

func (s *Scope) GetSymbol(name string) ast.Decl {
	if s.class != nil {
		if d := s.class.GetFields(name); d != nil {
			return d
		}
		if s.parent == nil {
			return nil
		}
		return s.parent.GetSymbol(name)
	}
	for scope := s; scope != nil; scope = scope.parent {
		if scope.class != nil {
			return scope.GetSymbol(name)
		}
		if d := scope.symbols[name]; d != nil {
			return d
		}
	}
	return nil
}

// AddSymbol binds name to decl. If name is already bound in s a DeclConflict is reported and
// the existing declaration is returned, it stays bound.
func (s *Scope) AddSymbol(name string, decl ast.Decl) ast.Decl {
	if prev := s.symbols[name]; prev != nil {
		if s.errs != nil {
			s.errs.Report(&Diagnostic{Kind: DeclConflict, Node: decl, Other: prev})
		}
		return prev
	}
	s.symbols[name] = decl
	return nil
}

func (s *Scope) Len() int { return len(s.symbols) }

// Names returns the locally bound names, sorted.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Class is the semantic view of a class declaration: its resolved superclass and interfaces
// plus the scope holding its own members.
type Class struct {
	Decl *ast.ClassDecl
	// Extends is nil when there is no superclass, when it didn't resolve, or when the class
	// names itself.
	Extends *Class
	// Implements is index-aligned with Decl.Implements, unresolved entries are nil.
	Implements []*Interface
	Scope      *Scope
	// Type is the named type of values of this class, used for "this".
	Type *ast.NamedType
}

// GetFields looks name up in the class and then along the extends chain. A class seen twice
// stops the walk, so an inheritance cycle can't loop forever.
func (c *Class) GetFields(name string) ast.Decl {
	visited := map[*Class]bool{}
	for class := c; class != nil; class = class.Extends {
		if visited[class] {
			return nil
		}
		if d := class.Scope.Lookup(name); d != nil {
			return d
		}
		visited[class] = true
	}
	return nil
}

// ImplementsOrExtends reports whether decl is an interface implemented by c or a class that c
// extends, directly or through its ancestors.
func (c *Class) ImplementsOrExtends(decl ast.Decl) bool {
	visited := map[*Class]bool{}
	for class := c; class != nil; class = class.Extends {
		if visited[class] {
			return false
		}
		visited[class] = true
		for _, iface := range class.Implements {
			if iface != nil && decl == ast.Decl(iface.Decl) {
				return true
			}
		}
		if class.Extends != nil && decl == ast.Decl(class.Extends.Decl) {
			return true
		}
	}
	return false
}

type Interface struct {
	Decl *ast.InterfaceDecl
	// Scope holds the method prototypes.
	Scope *Scope
}

// Context travels down the tree during the full check. It is passed by value: a node changes
// its own copy for its subtree and siblings never see it.
type Context struct {
	InClass    bool
	OuterClass *ast.ClassDecl
	InLoop     bool
	// RetType is the declared return type of the enclosing function.
	RetType ast.Type
}
