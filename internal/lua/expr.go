package lua

// Expr is implemented by every expression node. The set of nodes is closed,
// consumers match on the concrete types.
type Expr interface {
	expr()
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	OpNegate UnaryOp = iota
	OpNot
	OpBitwiseNot
	OpLength
)

var unaryOpNames = [...]string{
	OpNegate:     "-",
	OpNot:        "not",
	OpBitwiseNot: "~",
	OpLength:     "#",
}

func (op UnaryOp) String() string {
	return unaryOpNames[op]
}

// BinaryOp is an infix operator that evaluates both of its operands.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpConcat
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
)

var binaryOpNames = [...]string{
	OpAdd:          "+",
	OpSub:          "-",
	OpMul:          "*",
	OpDiv:          "/",
	OpFloorDiv:     "//",
	OpMod:          "%",
	OpPow:          "^",
	OpConcat:       "..",
	OpBitwiseAnd:   "&",
	OpBitwiseOr:    "|",
	OpBitwiseXor:   "~",
	OpShiftLeft:    "<<",
	OpShiftRight:   ">>",
	OpEqual:        "==",
	OpNotEqual:     "~=",
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
}

func (op BinaryOp) String() string {
	return binaryOpNames[op]
}

// LogicalOp is a short-circuiting infix operator.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "and"
	}
	return "or"
}

// LiteralExpr holds nil, a boolean, an integer, a float or a string.
type LiteralExpr struct {
	Value Value
}

func NewLiteralExpr(value Value) *LiteralExpr {
	return &LiteralExpr{value}
}

type VarArgExpr struct{}

type NameExpr struct {
	Name string
}

func NewNameExpr(name string) *NameExpr {
	return &NameExpr{name}
}

type ParenExpr struct {
	Expr Expr
}

func NewParenExpr(expr Expr) *ParenExpr {
	return &ParenExpr{expr}
}

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func NewUnaryExpr(op UnaryOp, operand Expr) *UnaryExpr {
	return &UnaryExpr{op, operand}
}

type BinaryExpr struct {
	Op  BinaryOp
	Lhs Expr
	Rhs Expr
}

func NewBinaryExpr(op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{op, lhs, rhs}
}

type LogicalExpr struct {
	Op  LogicalOp
	Lhs Expr
	Rhs Expr
}

func NewLogicalExpr(op LogicalOp, lhs, rhs Expr) *LogicalExpr {
	return &LogicalExpr{op, lhs, rhs}
}

// Field is one entry of a table constructor. Exactly one of Key and Name is
// set for keyed fields; positional fields have neither.
type Field struct {
	Key   Expr
	Name  string
	Value Expr
}

type TableExpr struct {
	Fields []*Field
}

func NewTableExpr(fields ...*Field) *TableExpr {
	return &TableExpr{fields}
}

// Parameters is the parameter list of a function.
type Parameters struct {
	Names  []string
	VarArg bool
}

type FunctionExpr struct {
	Params Parameters
	Body   *Block
}

func NewFunctionExpr(params Parameters, body *Block) *FunctionExpr {
	return &FunctionExpr{params, body}
}

// Action is one link of a prefix expression chain, either a *Selector or a
// *Call.
type Action interface {
	action()
}

// Selector indexes the value on its left, with `.Name` or `[Key]`.
type Selector struct {
	Name string
	Key  Expr
}

// Call calls the value on its left. A method call `:Method(args)` indexes the
// value with Method and passes it as the first argument.
type Call struct {
	Method string
	Args   []Expr
}

// PrefixExpr is a primary, a name or a parenthesized expression, followed by
// a chain of selectors and calls.
type PrefixExpr struct {
	Primary Expr
	Actions []Action
}

func NewPrefixExpr(primary Expr, actions ...Action) *PrefixExpr {
	return &PrefixExpr{primary, actions}
}

// IsCall reports whether the expression ends with a call.
func (expr *PrefixExpr) IsCall() bool {
	if len(expr.Actions) == 0 {
		return false
	}
	_, ok := expr.Actions[len(expr.Actions)-1].(*Call)
	return ok
}

// IsVariable reports whether the expression can be assigned to: a bare name
// or a chain ending with a selector.
func (expr *PrefixExpr) IsVariable() bool {
	if len(expr.Actions) == 0 {
		_, ok := expr.Primary.(*NameExpr)
		return ok
	}
	_, ok := expr.Actions[len(expr.Actions)-1].(*Selector)
	return ok
}

func (*LiteralExpr) expr()  {}
func (*VarArgExpr) expr()   {}
func (*NameExpr) expr()     {}
func (*ParenExpr) expr()    {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) expr()   {}
func (*LogicalExpr) expr()  {}
func (*TableExpr) expr()    {}
func (*FunctionExpr) expr() {}
func (*PrefixExpr) expr()   {}

func (*Selector) action() {}
func (*Call) action()     {}
