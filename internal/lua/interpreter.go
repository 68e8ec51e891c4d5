package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Builtins is the registry of host functions. Every name returned by Names is
// bound in the global scope to a *Builtin, and calling that value calls Call
// with the evaluated arguments.
type Builtins interface {
	Names() []string
	Call(name string, args []Value) ([]Value, error)
}

// builtinCache is implemented by registries that keep one value per builtin,
// so that builtins returned by a call are equal to the bound globals.
type builtinCache interface {
	Builtin(name string) *Builtin
}

// DefaultMaxCallDepth bounds the number of nested function calls.
const DefaultMaxCallDepth = 2000

// Interpreter evaluates syntax trees. Globals persist across calls to
// Interpret, so that a REPL can run chunks one after the other.
type Interpreter struct {
	globals  *Scope
	scope    *Scope
	stack    []*Scope
	builtins Builtins
	logger   *slog.Logger
	debug    bool
	depth    int
	maxDepth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger receiving debug traces of scopes, jumps and
// calls.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithMaxCallDepth sets the maximum number of nested function calls.
func WithMaxCallDepth(depth int) Option {
	return func(in *Interpreter) {
		if depth > 0 {
			in.maxDepth = depth
		}
	}
}

// NewInterpreter creates an interpreter whose global scope binds every
// builtin of the registry.
func NewInterpreter(builtins Builtins, opts ...Option) *Interpreter {
	in := &Interpreter{
		globals:  NewScope(nil, nil),
		builtins: builtins,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(in)
	}
	in.scope = in.globals
	in.debug = in.logger.Enabled(context.Background(), slog.LevelDebug)
	if builtins != nil {
		cache, cached := builtins.(builtinCache)
		for _, name := range builtins.Names() {
			if cached {
				in.globals.Define(name, cache.Builtin(name))
			} else {
				in.globals.Define(name, NewBuiltin(name))
			}
		}
	}
	return in
}

// Globals returns the global scope.
func (in *Interpreter) Globals() *Scope {
	return in.globals
}

// Interpret runs block as a chunk and returns the values of its return
// statement.
func (in *Interpreter) Interpret(block *Block) ([]Value, error) {
	in.scope = in.globals
	in.stack = in.stack[:0]
	in.depth = 0
	cmd := in.execBlock(block, newFunctionScope(in.globals, block, nil))
	return in.finish(cmd, block)
}

// Call calls a function value with the given arguments.
func (in *Interpreter) Call(fn Value, args ...Value) ([]Value, error) {
	return in.call(fn, args, origin{})
}

// finish converts the command leaving a function body into its results.
func (in *Interpreter) finish(cmd Command, body *Block) ([]Value, error) {
	switch cmd.Kind {
	case CommandReturn:
		return cmd.Values, nil
	case CommandBreak:
		return nil, NewRuntimeError(UnresolvedGoto, "break outside a loop")
	case CommandGoto:
		err := runtimeErrorf(
			UnresolvedGoto,
			"no visible label '%s' for goto%s",
			cmd.Label,
			didYouMean(cmd.Label, collectLabels(body, nil)),
		)
		err.Line = cmd.Line
		return nil, err
	case CommandError:
		return nil, cmd.Err
	}
	return nil, nil
}

func (in *Interpreter) push(scope *Scope) {
	in.stack = append(in.stack, in.scope)
	in.scope = scope
	if in.debug {
		in.logger.Debug("push scope", "depth", len(in.stack), "scope", scope)
	}
}

func (in *Interpreter) pop() {
	if in.debug {
		in.logger.Debug("pop scope", "depth", len(in.stack), "scope", in.scope)
	}
	n := len(in.stack) - 1
	in.scope = in.stack[n]
	in.stack = in.stack[:n]
}

// execBlock runs block in scope. The scope is popped on every exit.
func (in *Interpreter) execBlock(block *Block, scope *Scope) Command {
	in.push(scope)
	defer in.pop()
	return in.runBlock(block)
}

// runBlock runs the statements of block in the current scope. A goto is
// resolved against the labels of the block, any other command than continue
// leaves the block.
func (in *Interpreter) runBlock(block *Block) Command {
	for ip := 0; ip < len(block.Stmts); ip++ {
		cmd := in.exec(block.Stmts[ip])
		switch cmd.Kind {
		case CommandContinue:
		case CommandGoto:
			if cmd.Line == 0 {
				cmd.Line = lineOf(block, ip)
			}
			target, ok := in.scope.label(cmd.Label)
			if !ok {
				return cmd
			}
			if in.debug {
				in.logger.Debug("goto", "label", cmd.Label, "from", ip, "to", target)
			}
			ip = target
		case CommandError:
			return errorCommand(withLine(cmd.Err, lineOf(block, ip)))
		default:
			return cmd
		}
	}

	if block.Return != nil {
		values, err := in.evalList(block.Return.Exprs)
		if err != nil {
			return errorCommand(withLine(err, lineOf(block, len(block.Stmts))))
		}
		return returnCommand(values)
	}
	return continueCommand
}

// lineOf returns the line of the i-th statement of block, the return
// statement coming after the others. Blocks built by hand may have no lines.
func lineOf(block *Block, i int) int {
	if i < len(block.Lines) {
		return block.Lines[i]
	}
	return 0
}

// withLine sets the line of a runtime error that does not have one yet.
func withLine(err error, line int) error {
	var rerr *RuntimeError
	if errors.As(err, &rerr) && rerr.Line == 0 {
		rerr.Line = line
	}
	return err
}

func (in *Interpreter) exec(stmt Stmt) Command {
	switch stmt := stmt.(type) {
	case *EmptyStmt, *LabelStmt:
		return continueCommand
	case *BreakStmt:
		return breakCommand
	case *GotoStmt:
		return gotoCommand(stmt.Label)
	case *DoStmt:
		return in.execBlock(stmt.Body, NewScope(in.scope, stmt.Body))
	case *WhileStmt:
		return in.execWhile(stmt)
	case *RepeatStmt:
		return in.execRepeat(stmt)
	case *IfStmt:
		return in.execIf(stmt)
	case *NumericForStmt:
		return in.execNumericFor(stmt)
	case *GenericForStmt:
		return in.execGenericFor(stmt)
	case *FunctionStmt:
		return in.execFunction(stmt)
	case *LocalFunctionStmt:
		closure := &Closure{Name: stmt.Name, Params: stmt.Params, Body: stmt.Body, Env: in.scope}
		in.scope.Define(stmt.Name, closure)
		return continueCommand
	case *LocalStmt:
		return in.execLocal(stmt)
	case *AssignStmt:
		return in.execAssign(stmt)
	case *CallStmt:
		if _, err := in.evalPrefix(stmt.Call); err != nil {
			return errorCommand(err)
		}
		return continueCommand
	}
	return errorCommand(fmt.Errorf("unknown statement %T", stmt))
}

// iterate runs one iteration of a loop body and reports whether the loop
// stops, along with the command the loop statement yields.
func (in *Interpreter) iterate(body *Block, scope *Scope) (Command, bool) {
	cmd := in.execBlock(body, scope)
	switch cmd.Kind {
	case CommandContinue:
		return cmd, false
	case CommandBreak:
		return continueCommand, true
	}
	return cmd, true
}

func (in *Interpreter) execWhile(stmt *WhileStmt) Command {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return errorCommand(err)
		}
		if !Truthy(cond) {
			return continueCommand
		}
		if cmd, stop := in.iterate(stmt.Body, NewScope(in.scope, stmt.Body)); stop {
			return cmd
		}
	}
}

func (in *Interpreter) execRepeat(stmt *RepeatStmt) Command {
	for {
		// The condition sees the locals of the body, so the scope is popped
		// only after it is evaluated.
		in.push(NewScope(in.scope, stmt.Body))
		cmd := in.runBlock(stmt.Body)
		var cond Value
		var err error
		if cmd.Kind == CommandContinue {
			cond, err = in.eval(stmt.Cond)
		}
		in.pop()

		switch cmd.Kind {
		case CommandContinue:
		case CommandBreak:
			return continueCommand
		default:
			return cmd
		}
		if err != nil {
			return errorCommand(err)
		}
		if Truthy(cond) {
			return continueCommand
		}
	}
}

func (in *Interpreter) execIf(stmt *IfStmt) Command {
	for _, clause := range stmt.Clauses {
		cond, err := in.eval(clause.Cond)
		if err != nil {
			return errorCommand(err)
		}
		if Truthy(cond) {
			return in.execBlock(clause.Body, NewScope(in.scope, clause.Body))
		}
	}
	if stmt.Else != nil {
		return in.execBlock(stmt.Else, NewScope(in.scope, stmt.Else))
	}
	return continueCommand
}

func (in *Interpreter) forValue(expr Expr, what string) (Value, error) {
	value, err := in.eval(expr)
	if err != nil {
		return nil, err
	}
	n, ok := ToNumber(value)
	if !ok {
		return nil, runtimeErrorf(TypeMismatch, "'for' %s value must be a number", what)
	}
	return n, nil
}

func (in *Interpreter) execNumericFor(stmt *NumericForStmt) Command {
	start, err := in.forValue(stmt.Start, "initial")
	if err != nil {
		return errorCommand(err)
	}
	limit, err := in.forValue(stmt.Limit, "limit")
	if err != nil {
		return errorCommand(err)
	}
	var step Value = int64(1)
	if stmt.Step != nil {
		if step, err = in.forValue(stmt.Step, "step"); err != nil {
			return errorCommand(err)
		}
	}

	first, ok1 := start.(int64)
	last, ok2 := limit.(int64)
	inc, ok3 := step.(int64)
	if ok1 && ok2 && ok3 {
		if inc == 0 {
			return errorCommand(NewRuntimeError(ArithmeticError, "'for' step is zero"))
		}
		for i := first; (inc > 0 && i <= last) || (inc < 0 && i >= last); i += inc {
			scope := NewScope(in.scope, stmt.Body)
			scope.Define(stmt.Control, i)
			if cmd, stop := in.iterate(stmt.Body, scope); stop {
				return cmd
			}
			// The next value would overflow, so this was the last iteration.
			if (inc > 0 && i > math.MaxInt64-inc) || (inc < 0 && i < math.MinInt64-inc) {
				break
			}
		}
		return continueCommand
	}

	from, to, by := toFloat(start), toFloat(limit), toFloat(step)
	if by == 0 {
		return errorCommand(NewRuntimeError(ArithmeticError, "'for' step is zero"))
	}
	for f := from; (by > 0 && f <= to) || (by < 0 && f >= to); f += by {
		scope := NewScope(in.scope, stmt.Body)
		scope.Define(stmt.Control, f)
		if cmd, stop := in.iterate(stmt.Body, scope); stop {
			return cmd
		}
	}
	return continueCommand
}

func (in *Interpreter) execGenericFor(stmt *GenericForStmt) Command {
	values, err := in.evalList(stmt.Exprs)
	if err != nil {
		return errorCommand(err)
	}
	fn, state, control := at(values, 0), at(values, 1), at(values, 2)
	for {
		results, err := in.call(fn, []Value{state, control}, origin{})
		if err != nil {
			return errorCommand(err)
		}
		if at(results, 0) == nil {
			return continueCommand
		}
		control = results[0]
		scope := NewScope(in.scope, stmt.Body)
		for i, name := range stmt.Names {
			scope.Define(name, at(results, i))
		}
		if cmd, stop := in.iterate(stmt.Body, scope); stop {
			return cmd
		}
	}
}

func (in *Interpreter) execFunction(stmt *FunctionStmt) Command {
	names := stmt.Name.Names
	params := stmt.Params
	fullName := strings.Join(names, ".")
	if stmt.Name.Method != "" {
		params.Names = append([]string{"self"}, params.Names...)
		fullName += ":" + stmt.Name.Method
	}
	closure := &Closure{Name: fullName, Params: params, Body: stmt.Body, Env: in.scope}

	if len(names) == 1 && stmt.Name.Method == "" {
		if err := in.scope.Assign(names[0], closure); err != nil {
			return errorCommand(err)
		}
		return continueCommand
	}

	path, key := names[1:], stmt.Name.Method
	if key == "" {
		path, key = names[1:len(names)-1], names[len(names)-1]
	}
	target, from := in.scope.Get(names[0]), in.nameOrigin(names[0])
	for _, field := range path {
		table, ok := target.(*Table)
		if !ok {
			return errorCommand(indexError(target, from))
		}
		target, from = table.Get(field), origin{"field", field}
	}
	table, ok := target.(*Table)
	if !ok {
		return errorCommand(indexError(target, from))
	}
	if err := table.Set(key, closure); err != nil {
		return errorCommand(err)
	}
	return continueCommand
}

func (in *Interpreter) execLocal(stmt *LocalStmt) Command {
	values, err := in.evalList(stmt.Exprs)
	if err != nil {
		return errorCommand(err)
	}
	for i, variable := range stmt.Vars {
		value := at(values, i)
		switch variable.Attribute {
		case "const":
			in.scope.DefineConst(variable.Name, value)
		case "close":
			if Truthy(value) {
				return errorCommand(runtimeErrorf(
					TypeMismatch,
					"variable '%s' got a non-closable value",
					variable.Name,
				))
			}
			in.scope.DefineConst(variable.Name, value)
		default:
			in.scope.Define(variable.Name, value)
		}
	}
	return continueCommand
}

// assignTarget is an evaluated assignment target, either a variable name or a
// table entry.
type assignTarget struct {
	name  string
	table *Table
	key   Value
}

func (in *Interpreter) execAssign(stmt *AssignStmt) Command {
	targets := make([]assignTarget, len(stmt.Targets))
	for i, target := range stmt.Targets {
		n := len(target.Actions)
		if n == 0 {
			targets[i].name = target.Primary.(*NameExpr).Name
			continue
		}
		values, from, err := in.evalChain(target.Primary, target.Actions[:n-1])
		if err != nil {
			return errorCommand(err)
		}
		key, err := in.selectorKey(target.Actions[n-1].(*Selector))
		if err != nil {
			return errorCommand(err)
		}
		table, ok := at(values, 0).(*Table)
		if !ok {
			return errorCommand(indexError(at(values, 0), from))
		}
		targets[i].table, targets[i].key = table, key
	}

	values, err := in.evalList(stmt.Exprs)
	if err != nil {
		return errorCommand(err)
	}
	for i, target := range targets {
		if target.table != nil {
			err = target.table.Set(target.key, at(values, i))
		} else {
			err = in.scope.Assign(target.name, at(values, i))
		}
		if err != nil {
			return errorCommand(err)
		}
	}
	return continueCommand
}

// eval evaluates an expression to a single value.
func (in *Interpreter) eval(expr Expr) (Value, error) {
	switch expr := expr.(type) {
	case *LiteralExpr:
		return expr.Value, nil
	case *VarArgExpr:
		return at(in.scope.varArgs(), 0), nil
	case *NameExpr:
		return in.scope.Get(expr.Name), nil
	case *ParenExpr:
		return in.eval(expr.Expr)
	case *UnaryExpr:
		return in.evalUnary(expr)
	case *BinaryExpr:
		return in.evalBinary(expr)
	case *LogicalExpr:
		lhs, err := in.eval(expr.Lhs)
		if err != nil {
			return nil, err
		}
		if (expr.Op == OpAnd) != Truthy(lhs) {
			return lhs, nil
		}
		return in.eval(expr.Rhs)
	case *TableExpr:
		return in.evalTable(expr)
	case *FunctionExpr:
		return &Closure{Params: expr.Params, Body: expr.Body, Env: in.scope}, nil
	case *PrefixExpr:
		values, err := in.evalPrefix(expr)
		if err != nil {
			return nil, err
		}
		return at(values, 0), nil
	}
	return nil, fmt.Errorf("unknown expression %T", expr)
}

// evalMulti evaluates an expression that may produce several values: a call
// or `...`.
func (in *Interpreter) evalMulti(expr Expr) ([]Value, error) {
	switch e := expr.(type) {
	case *VarArgExpr:
		return append([]Value(nil), in.scope.varArgs()...), nil
	case *PrefixExpr:
		if e.IsCall() {
			return in.evalPrefix(e)
		}
	}
	value, err := in.eval(expr)
	if err != nil {
		return nil, err
	}
	return []Value{value}, nil
}

// evalList evaluates an expression list from left to right. Only the last
// expression can contribute more or less than one value.
func (in *Interpreter) evalList(exprs []Expr) ([]Value, error) {
	values := make([]Value, 0, len(exprs))
	for i, expr := range exprs {
		if i == len(exprs)-1 {
			rest, err := in.evalMulti(expr)
			if err != nil {
				return nil, err
			}
			return append(values, rest...), nil
		}
		value, err := in.eval(expr)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (in *Interpreter) evalUnary(expr *UnaryExpr) (Value, error) {
	operand, err := in.eval(expr.Operand)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case OpNegate:
		return Negate(operand)
	case OpNot:
		return !Truthy(operand), nil
	case OpBitwiseNot:
		return BitwiseNot(operand)
	}
	return Length(operand)
}

func (in *Interpreter) evalBinary(expr *BinaryExpr) (Value, error) {
	lhs, err := in.eval(expr.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Rhs)
	if err != nil {
		return nil, err
	}
	switch expr.Op {
	case OpEqual:
		return RawEqual(lhs, rhs), nil
	case OpNotEqual:
		return !RawEqual(lhs, rhs), nil
	case OpLess:
		return Less(lhs, rhs)
	case OpLessEqual:
		return LessEqual(lhs, rhs)
	case OpGreater:
		return Less(rhs, lhs)
	case OpGreaterEqual:
		return LessEqual(rhs, lhs)
	case OpConcat:
		return Concat(lhs, rhs)
	}
	return Arith(expr.Op, lhs, rhs)
}

func (in *Interpreter) evalTable(expr *TableExpr) (Value, error) {
	table := NewTable()
	for i, field := range expr.Fields {
		switch {
		case field.Key != nil:
			key, err := in.eval(field.Key)
			if err != nil {
				return nil, err
			}
			value, err := in.eval(field.Value)
			if err != nil {
				return nil, err
			}
			if err := table.Set(key, value); err != nil {
				return nil, err
			}
		case field.Name != "":
			value, err := in.eval(field.Value)
			if err != nil {
				return nil, err
			}
			if err := table.Set(field.Name, value); err != nil {
				return nil, err
			}
		case i == len(expr.Fields)-1:
			values, err := in.evalMulti(field.Value)
			if err != nil {
				return nil, err
			}
			for _, value := range values {
				table.Append(value)
			}
		default:
			value, err := in.eval(field.Value)
			if err != nil {
				return nil, err
			}
			table.Append(value)
		}
	}
	return table, nil
}

// origin describes where a value came from, for error messages.
type origin struct {
	kind string
	name string
}

func (o origin) String() string {
	if o.kind == "" || o.name == "" {
		return ""
	}
	return fmt.Sprintf(" (%s '%s')", o.kind, o.name)
}

func (in *Interpreter) nameOrigin(name string) origin {
	if in.scope.IsGlobal(name) {
		return origin{"global", name}
	}
	return origin{"local", name}
}

func indexError(v Value, from origin) error {
	return runtimeErrorf(TypeMismatch, "attempt to index a %s value%s", TypeName(v), from)
}

func index(v Value, key Value, from origin) (Value, error) {
	table, ok := v.(*Table)
	if !ok {
		return nil, indexError(v, from)
	}
	return table.Get(key), nil
}

func (in *Interpreter) selectorKey(sel *Selector) (Value, error) {
	if sel.Key == nil {
		return sel.Name, nil
	}
	return in.eval(sel.Key)
}

// evalPrefix evaluates a prefix expression. A chain ending with a call yields
// all of its results.
func (in *Interpreter) evalPrefix(expr *PrefixExpr) ([]Value, error) {
	values, _, err := in.evalChain(expr.Primary, expr.Actions)
	return values, err
}

func (in *Interpreter) evalChain(primary Expr, actions []Action) ([]Value, origin, error) {
	var from origin
	var value Value
	if name, ok := primary.(*NameExpr); ok {
		value, from = in.scope.Get(name.Name), in.nameOrigin(name.Name)
	} else {
		v, err := in.eval(primary)
		if err != nil {
			return nil, from, err
		}
		value = v
	}

	values := []Value{value}
	for _, action := range actions {
		switch action := action.(type) {
		case *Selector:
			key, err := in.selectorKey(action)
			if err != nil {
				return nil, from, err
			}
			v, err := index(at(values, 0), key, from)
			if err != nil {
				return nil, from, err
			}
			values = []Value{v}
			if s, ok := key.(string); ok {
				from = origin{"field", s}
			} else {
				from = origin{}
			}
		case *Call:
			fn := at(values, 0)
			var args []Value
			if action.Method != "" {
				self := fn
				method, err := index(self, action.Method, from)
				if err != nil {
					return nil, from, err
				}
				fn, from = method, origin{"method", action.Method}
				args = append(args, self)
			}
			rest, err := in.evalList(action.Args)
			if err != nil {
				return nil, from, err
			}
			if values, err = in.call(fn, append(args, rest...), from); err != nil {
				return nil, from, err
			}
			from = origin{}
		}
	}
	return values, from, nil
}

// call calls a closure or a builtin.
func (in *Interpreter) call(fn Value, args []Value, from origin) ([]Value, error) {
	switch fn := fn.(type) {
	case *Closure:
		return in.callClosure(fn, args)
	case *Builtin:
		if in.debug {
			in.logger.Debug("call builtin", "name", fn.Name, "args", len(args))
		}
		if in.builtins == nil {
			return nil, runtimeErrorf(TypeMismatch, "no builtin named '%s'", fn.Name)
		}
		results, err := in.builtins.Call(fn.Name, args)
		if err != nil {
			var rerr *RuntimeError
			if !errors.As(err, &rerr) {
				err = NewRuntimeError(UserError, err.Error())
			}
			return nil, err
		}
		return results, nil
	}

	msg := fmt.Sprintf("attempt to call a %s value%s", TypeName(fn), from)
	if from.kind == "global" {
		msg += didYouMean(from.name, in.callableNames())
	}
	return nil, NewRuntimeError(TypeMismatch, msg)
}

func (in *Interpreter) callClosure(fn *Closure, args []Value) ([]Value, error) {
	if in.depth >= in.maxDepth {
		return nil, NewRuntimeError(StackOverflow, "stack overflow")
	}
	in.depth++
	defer func() { in.depth-- }()

	var varargs []Value
	if n := len(fn.Params.Names); fn.Params.VarArg && len(args) > n {
		varargs = append(varargs, args[n:]...)
	}
	scope := newFunctionScope(fn.Env, fn.Body, varargs)
	for i, name := range fn.Params.Names {
		scope.Define(name, at(args, i))
	}
	if in.debug {
		in.logger.Debug("call", "function", fn.Name, "args", len(args), "depth", in.depth)
	}
	return in.finish(in.execBlock(fn.Body, scope), fn.Body)
}

// callableNames returns the visible names bound to functions.
func (in *Interpreter) callableNames() []string {
	var names []string
	for _, name := range in.scope.Names() {
		switch in.scope.Get(name).(type) {
		case *Closure, *Builtin:
			names = append(names, name)
		}
	}
	return names
}

// collectLabels appends the labels declared in block and its nested blocks,
// function bodies excluded.
func collectLabels(block *Block, labels []string) []string {
	if block == nil {
		return labels
	}
	for _, stmt := range block.Stmts {
		switch stmt := stmt.(type) {
		case *LabelStmt:
			labels = append(labels, stmt.Name)
		case *DoStmt:
			labels = collectLabels(stmt.Body, labels)
		case *WhileStmt:
			labels = collectLabels(stmt.Body, labels)
		case *RepeatStmt:
			labels = collectLabels(stmt.Body, labels)
		case *IfStmt:
			for _, clause := range stmt.Clauses {
				labels = collectLabels(clause.Body, labels)
			}
			labels = collectLabels(stmt.Else, labels)
		case *NumericForStmt:
			labels = collectLabels(stmt.Body, labels)
		case *GenericForStmt:
			labels = collectLabels(stmt.Body, labels)
		}
	}
	return labels
}

// at returns the i-th value, nil when there are fewer values.
func at(values []Value, i int) Value {
	if i < len(values) {
		return values[i]
	}
	return nil
}
