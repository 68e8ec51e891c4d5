package lua

import (
	"container/list"
	"fmt"
	"sort"
)

// resolverScope tracks the locals declared so far in a block and the labels
// declared anywhere in it. A label is visible from the whole block, before
// and after its declaration.
type resolverScope struct {
	locals   map[string]bool // name -> const
	labels   map[string]bool
	function bool
}

// Resolver performs semantics analysis on the syntax tree before it is run.
// It reports gotos without a visible label, breaks outside of a loop and
// assignments to const locals. It also records every global that is read,
// so that names never assigned anywhere can be flagged.
type Resolver struct {
	scopes   *list.List
	reporter Reporter
	loops    int
	line     int
	assigned map[string]bool
	reads    map[string]int
}

func NewResolver(reporter Reporter) *Resolver {
	r := new(Resolver)
	r.scopes = list.New()
	r.reporter = reporter
	r.assigned = make(map[string]bool)
	r.reads = make(map[string]int)
	return r
}

// Resolve analyzes a chunk.
func (r *Resolver) Resolve(block *Block) {
	r.resolveBlock(block, true, nil, nil)
}

// Unresolved returns the globals that are read but never assigned in the
// analyzed chunks and are not in known, sorted by name.
func (r *Resolver) Unresolved(known ...string) []string {
	skip := make(map[string]bool, len(known))
	for _, name := range known {
		skip[name] = true
	}
	var names []string
	for name := range r.reads {
		if !r.assigned[name] && !skip[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ReadLine returns the line of the first read of a global.
func (r *Resolver) ReadLine(name string) int {
	return r.reads[name]
}

// resolveBlock resolves block in a new scope declaring names. after runs
// before the scope ends.
func (r *Resolver) resolveBlock(block *Block, function bool, names []string, after func()) {
	scope := &resolverScope{
		locals:   make(map[string]bool),
		labels:   make(map[string]bool),
		function: function,
	}
	for _, stmt := range block.Stmts {
		if label, ok := stmt.(*LabelStmt); ok {
			scope.labels[label.Name] = true
		}
	}
	for _, name := range names {
		scope.locals[name] = false
	}

	line := r.line
	r.scopes.PushFront(scope)
	for i, stmt := range block.Stmts {
		r.line = lineOf(block, i)
		r.resolveStmt(stmt)
	}
	if block.Return != nil {
		r.line = lineOf(block, len(block.Stmts))
		r.resolveExprs(block.Return.Exprs)
	}
	if after != nil {
		after()
	}
	r.scopes.Remove(r.scopes.Front())
	r.line = line
}

func (r *Resolver) resolveLoop(body *Block, names []string, after func()) {
	r.loops++
	r.resolveBlock(body, false, names, after)
	r.loops--
}

func (r *Resolver) resolveFunction(params Parameters, body *Block, self bool) {
	names := params.Names
	if self {
		names = append([]string{"self"}, names...)
	}
	loops := r.loops
	r.loops = 0
	r.resolveBlock(body, true, names, nil)
	r.loops = loops
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch stmt := stmt.(type) {
	case *BreakStmt:
		if r.loops == 0 {
			r.reporter.Report(newResolveError(r.line, "break outside a loop"))
		}
	case *GotoStmt:
		if !r.labelVisible(stmt.Label) {
			r.reporter.Report(newResolveError(
				r.line,
				fmt.Sprintf("no visible label '%s' for goto", stmt.Label),
			))
		}
	case *DoStmt:
		r.resolveBlock(stmt.Body, false, nil, nil)
	case *WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveLoop(stmt.Body, nil, nil)
	case *RepeatStmt:
		r.resolveLoop(stmt.Body, nil, func() { r.resolveExpr(stmt.Cond) })
	case *IfStmt:
		for _, clause := range stmt.Clauses {
			r.resolveExpr(clause.Cond)
			r.resolveBlock(clause.Body, false, nil, nil)
		}
		if stmt.Else != nil {
			r.resolveBlock(stmt.Else, false, nil, nil)
		}
	case *NumericForStmt:
		r.resolveExpr(stmt.Start)
		r.resolveExpr(stmt.Limit)
		if stmt.Step != nil {
			r.resolveExpr(stmt.Step)
		}
		r.resolveLoop(stmt.Body, []string{stmt.Control}, nil)
	case *GenericForStmt:
		r.resolveExprs(stmt.Exprs)
		r.resolveLoop(stmt.Body, stmt.Names, nil)
	case *FunctionStmt:
		if len(stmt.Name.Names) == 1 && stmt.Name.Method == "" {
			r.assign(stmt.Name.Names[0])
		} else {
			r.read(stmt.Name.Names[0])
		}
		r.resolveFunction(stmt.Params, stmt.Body, stmt.Name.Method != "")
	case *LocalFunctionStmt:
		r.declare(stmt.Name, false)
		r.resolveFunction(stmt.Params, stmt.Body, false)
	case *LocalStmt:
		r.resolveExprs(stmt.Exprs)
		for _, v := range stmt.Vars {
			r.declare(v.Name, v.Attribute != "")
		}
	case *AssignStmt:
		for _, target := range stmt.Targets {
			if len(target.Actions) == 0 {
				r.assign(target.Primary.(*NameExpr).Name)
				continue
			}
			r.resolvePrefix(target)
		}
		r.resolveExprs(stmt.Exprs)
	case *CallStmt:
		r.resolvePrefix(stmt.Call)
	}
}

func (r *Resolver) resolveExprs(exprs []Expr) {
	for _, expr := range exprs {
		r.resolveExpr(expr)
	}
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch expr := expr.(type) {
	case *NameExpr:
		r.read(expr.Name)
	case *ParenExpr:
		r.resolveExpr(expr.Expr)
	case *UnaryExpr:
		r.resolveExpr(expr.Operand)
	case *BinaryExpr:
		r.resolveExpr(expr.Lhs)
		r.resolveExpr(expr.Rhs)
	case *LogicalExpr:
		r.resolveExpr(expr.Lhs)
		r.resolveExpr(expr.Rhs)
	case *TableExpr:
		for _, field := range expr.Fields {
			if field.Key != nil {
				r.resolveExpr(field.Key)
			}
			r.resolveExpr(field.Value)
		}
	case *FunctionExpr:
		r.resolveFunction(expr.Params, expr.Body, false)
	case *PrefixExpr:
		r.resolvePrefix(expr)
	}
}

func (r *Resolver) resolvePrefix(expr *PrefixExpr) {
	r.resolveExpr(expr.Primary)
	for _, action := range expr.Actions {
		switch action := action.(type) {
		case *Selector:
			if action.Key != nil {
				r.resolveExpr(action.Key)
			}
		case *Call:
			r.resolveExprs(action.Args)
		}
	}
}

// lookup finds the innermost scope declaring name as a local.
func (r *Resolver) lookup(name string) (*resolverScope, bool) {
	for e := r.scopes.Front(); e != nil; e = e.Next() {
		scope := e.Value.(*resolverScope)
		if _, ok := scope.locals[name]; ok {
			return scope, true
		}
	}
	return nil, false
}

func (r *Resolver) declare(name string, isConst bool) {
	if front := r.scopes.Front(); front != nil {
		front.Value.(*resolverScope).locals[name] = isConst
	}
}

func (r *Resolver) assign(name string) {
	scope, ok := r.lookup(name)
	if !ok {
		r.assigned[name] = true
		return
	}
	if scope.locals[name] {
		r.reporter.Report(newResolveError(
			r.line,
			fmt.Sprintf("attempt to assign to const variable '%s'", name),
		))
	}
}

func (r *Resolver) read(name string) {
	if _, ok := r.lookup(name); ok {
		return
	}
	if _, ok := r.reads[name]; !ok {
		r.reads[name] = r.line
	}
}

// labelVisible looks for the label in the enclosing blocks of the current
// function.
func (r *Resolver) labelVisible(label string) bool {
	for e := r.scopes.Front(); e != nil; e = e.Next() {
		scope := e.Value.(*resolverScope)
		if scope.labels[label] {
			return true
		}
		if scope.function {
			break
		}
	}
	return false
}

// Assigned returns the globals assigned in the analyzed chunks, sorted by
// name.
func (r *Resolver) Assigned() []string {
	names := make([]string, 0, len(r.assigned))
	for name := range r.assigned {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
