package lua

import "fmt"

// LexErrorKind classifies errors found while scanning.
type LexErrorKind int

const (
	UnexpectedChar LexErrorKind = iota
	UnfinishedString
	MissingCharacter
	MalformedNumber
)

func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case UnfinishedString:
		return "unfinished string"
	case MissingCharacter:
		return "missing character"
	case MalformedNumber:
		return "malformed number"
	}
	return "lex error"
}

// LexError is returned by the scanner when it can not produce a token.
type LexError struct {
	Kind   LexErrorKind
	Char   rune
	Line   int
	Offset int
	Lexeme string
}

func newLexError(kind LexErrorKind, char rune, line, offset int, lexeme string) *LexError {
	return &LexError{kind, char, line, offset, lexeme}
}

func (err *LexError) Error() string {
	switch err.Kind {
	case UnexpectedChar:
		return fmt.Sprintf("[line %d] Error: Unexpected character '%c'.", err.Line, err.Char)
	case MalformedNumber:
		return fmt.Sprintf("[line %d] Error: Malformed number near '%s'.", err.Line, err.Lexeme)
	case MissingCharacter:
		return fmt.Sprintf("[line %d] Error: Invalid long string delimiter near '%s'.", err.Line, err.Lexeme)
	}
	return fmt.Sprintf("[line %d] Error: Unfinished string.", err.Line)
}

// ParseErrorKind classifies errors found while parsing.
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	NothingToParse
	NotAStatement
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case NothingToParse:
		return "nothing to parse"
	case NotAStatement:
		return "not a statement"
	}
	return "parse error"
}

// ParseError wraps the message returned by the parser with the token at which
// the error occured.
type ParseError struct {
	Kind    ParseErrorKind
	Token   *Token
	Message string
}

func newParseError(kind ParseErrorKind, token *Token, message string) *ParseError {
	return &ParseError{kind, token, message}
}

func (err *ParseError) Error() string {
	if err.Token.Typ == TokenEOF {
		return fmt.Sprintf(
			"[line %d] Error at end: %s",
			err.Token.Line,
			err.Message,
		)
	}
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.Token.Line,
		err.Token.Lexeme,
		err.Message,
	)
}

// RuntimeErrorKind classifies errors raised while evaluating a program.
type RuntimeErrorKind int

const (
	TypeMismatch RuntimeErrorKind = iota
	UnresolvedGoto
	CoercionFailure
	ArithmeticError
	InvalidKey
	ConstAssignment
	StackOverflow
	UserError
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case UnresolvedGoto:
		return "unresolved goto"
	case CoercionFailure:
		return "coercion failure"
	case ArithmeticError:
		return "arithmetic error"
	case InvalidKey:
		return "invalid key"
	case ConstAssignment:
		return "const assignment"
	case StackOverflow:
		return "stack overflow"
	case UserError:
		return "error"
	}
	return "runtime error"
}

// RuntimeError is returned when the evaluation of a statement fails. Line is
// zero until the error crosses the statement that raised it.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Line    int
	Message string
}

// NewRuntimeError creates a runtime error without position information.
func NewRuntimeError(kind RuntimeErrorKind, message string) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: message}
}

func runtimeErrorf(kind RuntimeErrorKind, format string, args ...interface{}) *RuntimeError {
	return NewRuntimeError(kind, fmt.Sprintf(format, args...))
}

func (err *RuntimeError) Error() string {
	if err.Line == 0 {
		return fmt.Sprintf("Runtime error: %s", err.Message)
	}
	return fmt.Sprintf("[line %d] Runtime error: %s", err.Line, err.Message)
}

// ResolveError is reported by the resolver for code that is valid syntax but
// can not run correctly.
type ResolveError struct {
	Line    int
	Message string
}

func newResolveError(line int, message string) *ResolveError {
	return &ResolveError{line, message}
}

func (err *ResolveError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", err.Line, err.Message)
}
