package lua

import "fmt"

// Token represents group a characters with additional information that was
// obtained during the scanning phase. Lexeme is a slice of the scanned source
// and Start/End are the byte offsets bounding it; for strings the offsets
// exclude the quotes or long brackets.
type Token struct {
	Typ    TokenType
	Lexeme string
	Start  int
	End    int
	Line   int
}

// NewToken creates a new token
func NewToken(typ TokenType, lexeme string, start, end, line int) *Token {
	return &Token{typ, lexeme, start, end, line}
}

func (t *Token) String() string {
	switch t.Typ {
	case TokenIdentifier, TokenNumber, TokenString, TokenLongString:
		return fmt.Sprintf("%s %q", t.Typ.String(), t.Lexeme)
	}
	return t.Typ.String()
}

var keywords = map[string]TokenType{
	"and":      TokenAnd,
	"break":    TokenBreak,
	"do":       TokenDo,
	"else":     TokenElse,
	"elseif":   TokenElseif,
	"end":      TokenEnd,
	"false":    TokenFalse,
	"for":      TokenFor,
	"function": TokenFunction,
	"goto":     TokenGoto,
	"if":       TokenIf,
	"in":       TokenIn,
	"local":    TokenLocal,
	"nil":      TokenNil,
	"not":      TokenNot,
	"or":       TokenOr,
	"repeat":   TokenRepeat,
	"return":   TokenReturn,
	"then":     TokenThen,
	"true":     TokenTrue,
	"until":    TokenUntil,
	"while":    TokenWhile,
}

const (
	// Literals
	TokenIdentifier TokenType = iota
	TokenNumber
	TokenString
	TokenLongString

	// Keywords
	TokenAnd
	TokenBreak
	TokenDo
	TokenElse
	TokenElseif
	TokenEnd
	TokenFalse
	TokenFor
	TokenFunction
	TokenGoto
	TokenIf
	TokenIn
	TokenLocal
	TokenNil
	TokenNot
	TokenOr
	TokenRepeat
	TokenReturn
	TokenThen
	TokenTrue
	TokenUntil
	TokenWhile

	// Single-character tokens
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenCaret
	TokenHash
	TokenAmpersand
	TokenTilde
	TokenBar
	TokenLess
	TokenGreater
	TokenAssign
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenSemicolon
	TokenColon
	TokenComma
	TokenDot

	// Two or three character tokens
	TokenDoubleSlash
	TokenShiftLeft
	TokenShiftRight
	TokenEqual
	TokenNotEqual
	TokenLessEqual
	TokenGreaterEqual
	TokenDoubleColon
	TokenConcat
	TokenEllipsis

	TokenEOF
)

// TokenType identifies the kind of a token.
type TokenType uint

var tokenNames = [...]string{
	TokenIdentifier:   "IDENTIFIER",
	TokenNumber:       "NUMBER",
	TokenString:       "STRING",
	TokenLongString:   "LONG_STRING",
	TokenAnd:          "and",
	TokenBreak:        "break",
	TokenDo:           "do",
	TokenElse:         "else",
	TokenElseif:       "elseif",
	TokenEnd:          "end",
	TokenFalse:        "false",
	TokenFor:          "for",
	TokenFunction:     "function",
	TokenGoto:         "goto",
	TokenIf:           "if",
	TokenIn:           "in",
	TokenLocal:        "local",
	TokenNil:          "nil",
	TokenNot:          "not",
	TokenOr:           "or",
	TokenRepeat:       "repeat",
	TokenReturn:       "return",
	TokenThen:         "then",
	TokenTrue:         "true",
	TokenUntil:        "until",
	TokenWhile:        "while",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenPercent:      "%",
	TokenCaret:        "^",
	TokenHash:         "#",
	TokenAmpersand:    "&",
	TokenTilde:        "~",
	TokenBar:          "|",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenAssign:       "=",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenSemicolon:    ";",
	TokenColon:        ":",
	TokenComma:        ",",
	TokenDot:          ".",
	TokenDoubleSlash:  "//",
	TokenShiftLeft:    "<<",
	TokenShiftRight:   ">>",
	TokenEqual:        "==",
	TokenNotEqual:     "~=",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenDoubleColon:  "::",
	TokenConcat:       "..",
	TokenEllipsis:     "...",
	TokenEOF:          "EOF",
}

func (tt TokenType) String() string {
	if int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", uint(tt))
}
