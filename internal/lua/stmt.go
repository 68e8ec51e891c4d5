package lua

// Block is a sequence of statements optionally ended by a return statement.
// Lines holds the line on which each statement starts.
type Block struct {
	Stmts  []Stmt
	Lines  []int
	Return *ReturnStmt
}

// Stmt is implemented by every statement node. The set of nodes is closed,
// consumers match on the concrete types.
type Stmt interface {
	stmt()
}

type ReturnStmt struct {
	Exprs []Expr
}

type EmptyStmt struct{}

type BreakStmt struct{}

type LabelStmt struct {
	Name string
}

type GotoStmt struct {
	Label string
}

type DoStmt struct {
	Body *Block
}

type WhileStmt struct {
	Cond Expr
	Body *Block
}

// RepeatStmt loops until Cond holds. Cond is evaluated in the scope of Body.
type RepeatStmt struct {
	Body *Block
	Cond Expr
}

type IfClause struct {
	Cond Expr
	Body *Block
}

// IfStmt runs the body of the first clause whose condition holds, or Else.
type IfStmt struct {
	Clauses []*IfClause
	Else    *Block
}

type NumericForStmt struct {
	Control string
	Start   Expr
	Limit   Expr
	Step    Expr
	Body    *Block
}

type GenericForStmt struct {
	Names []string
	Exprs []Expr
	Body  *Block
}

// FunctionName is the target of a function statement, `a.b.c` or `a.b:m`.
type FunctionName struct {
	Names  []string
	Method string
}

type FunctionStmt struct {
	Name   FunctionName
	Params Parameters
	Body   *Block
}

type LocalFunctionStmt struct {
	Name   string
	Params Parameters
	Body   *Block
}

// LocalVariable is a declared name with its optional attribute, `const` or
// `close`.
type LocalVariable struct {
	Name      string
	Attribute string
}

type LocalStmt struct {
	Vars  []LocalVariable
	Exprs []Expr
}

// AssignStmt assigns Exprs to Targets. Every target is a variable prefix
// expression.
type AssignStmt struct {
	Targets []*PrefixExpr
	Exprs   []Expr
}

// CallStmt is a prefix expression ending with a call, evaluated for its side
// effects.
type CallStmt struct {
	Call *PrefixExpr
}

func (*EmptyStmt) stmt()         {}
func (*BreakStmt) stmt()         {}
func (*LabelStmt) stmt()         {}
func (*GotoStmt) stmt()          {}
func (*DoStmt) stmt()            {}
func (*WhileStmt) stmt()         {}
func (*RepeatStmt) stmt()        {}
func (*IfStmt) stmt()            {}
func (*NumericForStmt) stmt()    {}
func (*GenericForStmt) stmt()    {}
func (*FunctionStmt) stmt()      {}
func (*LocalFunctionStmt) stmt() {}
func (*LocalStmt) stmt()         {}
func (*AssignStmt) stmt()        {}
func (*CallStmt) stmt()          {}
