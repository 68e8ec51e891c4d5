package lua

import "fmt"

// Scope holds the bindings introduced by one execution of a block. Scopes are
// chained through enclosing up to the global scope, which has none.
type Scope struct {
	block     *Block
	enclosing *Scope
	values    map[string]Value
	consts    map[string]bool
	// labels maps label names to the index of their statement in block. It is
	// built on the first goto resolved against the scope.
	labels map[string]int
	// function is set for the scope of a function body or of the main chunk,
	// the scopes that own varargs.
	function bool
	varargs  []Value
}

// NewScope creates a scope for an execution of block.
func NewScope(enclosing *Scope, block *Block) *Scope {
	return &Scope{block: block, enclosing: enclosing}
}

func newFunctionScope(enclosing *Scope, block *Block, varargs []Value) *Scope {
	return &Scope{block: block, enclosing: enclosing, function: true, varargs: varargs}
}

// Define binds name in this scope, shadowing any outer binding.
func (scope *Scope) Define(name string, value Value) {
	if scope.values == nil {
		scope.values = make(map[string]Value)
	}
	scope.values[name] = value
	if scope.consts != nil {
		delete(scope.consts, name)
	}
}

// DefineConst binds name in this scope and forbids later assignments.
func (scope *Scope) DefineConst(name string, value Value) {
	scope.Define(name, value)
	if scope.consts == nil {
		scope.consts = make(map[string]bool)
	}
	scope.consts[name] = true
}

// resolve returns the nearest scope binding name.
func (scope *Scope) resolve(name string) *Scope {
	for s := scope; s != nil; s = s.enclosing {
		if _, ok := s.values[name]; ok {
			return s
		}
	}
	return nil
}

// Get returns the value bound to name, nil when it is unbound.
func (scope *Scope) Get(name string) Value {
	if s := scope.resolve(name); s != nil {
		return s.values[name]
	}
	return nil
}

// Assign rewrites the nearest binding of name. Unbound names are bound in the
// global scope.
func (scope *Scope) Assign(name string, value Value) error {
	s := scope.resolve(name)
	if s == nil {
		s = scope.global()
	}
	if s.consts[name] {
		return runtimeErrorf(ConstAssignment, "attempt to assign to const variable '%s'", name)
	}
	s.Define(name, value)
	return nil
}

// IsGlobal reports whether name resolves to the global scope or is unbound.
func (scope *Scope) IsGlobal(name string) bool {
	s := scope.resolve(name)
	return s == nil || s.enclosing == nil
}

// Names returns the names visible from this scope.
func (scope *Scope) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for s := scope; s != nil; s = s.enclosing {
		for name := range s.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

func (scope *Scope) global() *Scope {
	s := scope
	for s.enclosing != nil {
		s = s.enclosing
	}
	return s
}

// label returns the index of the statement declaring the label in the block
// of this scope.
func (scope *Scope) label(name string) (int, bool) {
	if scope.block == nil {
		return 0, false
	}
	if scope.labels == nil {
		scope.labels = make(map[string]int)
		for i, stmt := range scope.block.Stmts {
			if label, ok := stmt.(*LabelStmt); ok {
				scope.labels[label.Name] = i
			}
		}
	}
	i, ok := scope.labels[name]
	return i, ok
}

// varArgs returns the extra arguments of the innermost enclosing function.
func (scope *Scope) varArgs() []Value {
	for s := scope; s != nil; s = s.enclosing {
		if s.function {
			return s.varargs
		}
	}
	return nil
}

func (scope *Scope) String() string {
	return fmt.Sprintf("scope(%d bindings)", len(scope.values))
}
