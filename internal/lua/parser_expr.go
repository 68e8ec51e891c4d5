package lua

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Binding powers of the operators, from the loosest to the tightest.
//
//	or                       1
//	and                      2
//	< > <= >= ~= ==          3
//	|                        4
//	~                        5
//	&                        6
//	<< >>                    7
//	..                       8 (right)
//	+ -                      9
//	* / // %                 10
//	unary not # - ~          11
//	^                        12 (right)
const unaryPower = 11

// infix describes an infix operator. The right operand of a left associative
// operator is parsed with the power of the operator, the one of a right
// associative operator with a power one lower, so that an operator of the
// same power continues the right operand instead of the left one.
type infix struct {
	left    int
	right   int
	logical bool
	binary  BinaryOp
	logic   LogicalOp
}

func leftAssoc(power int, op BinaryOp) infix {
	return infix{left: power, right: power, binary: op}
}

func rightAssoc(power int, op BinaryOp) infix {
	return infix{left: power, right: power - 1, binary: op}
}

var infixOperators = map[TokenType]infix{
	TokenOr:           {left: 1, right: 1, logical: true, logic: OpOr},
	TokenAnd:          {left: 2, right: 2, logical: true, logic: OpAnd},
	TokenLess:         leftAssoc(3, OpLess),
	TokenGreater:      leftAssoc(3, OpGreater),
	TokenLessEqual:    leftAssoc(3, OpLessEqual),
	TokenGreaterEqual: leftAssoc(3, OpGreaterEqual),
	TokenNotEqual:     leftAssoc(3, OpNotEqual),
	TokenEqual:        leftAssoc(3, OpEqual),
	TokenBar:          leftAssoc(4, OpBitwiseOr),
	TokenTilde:        leftAssoc(5, OpBitwiseXor),
	TokenAmpersand:    leftAssoc(6, OpBitwiseAnd),
	TokenShiftLeft:    leftAssoc(7, OpShiftLeft),
	TokenShiftRight:   leftAssoc(7, OpShiftRight),
	TokenConcat:       rightAssoc(8, OpConcat),
	TokenPlus:         leftAssoc(9, OpAdd),
	TokenMinus:        leftAssoc(9, OpSub),
	TokenStar:         leftAssoc(10, OpMul),
	TokenSlash:        leftAssoc(10, OpDiv),
	TokenDoubleSlash:  leftAssoc(10, OpFloorDiv),
	TokenPercent:      leftAssoc(10, OpMod),
	TokenCaret:        rightAssoc(12, OpPow),
}

var prefixOperators = map[TokenType]UnaryOp{
	TokenNot:   OpNot,
	TokenHash:  OpLength,
	TokenMinus: OpNegate,
	TokenTilde: OpBitwiseNot,
}

// expression --> subexpr(0) ;
func (parser *Parser) expression() (Expr, error) {
	return parser.subexpression(0)
}

// subexpr(limit) --> ( unop subexpr(11) | simpleexp ) ( binop subexpr )* ;
//
// The loop only consumes operators binding tighter than limit.
func (parser *Parser) subexpression(limit int) (Expr, error) {
	var lhs Expr
	if op, ok := prefixOperators[parser.peek().Typ]; ok {
		parser.advance()
		operand, err := parser.subexpression(unaryPower)
		if err != nil {
			return nil, err
		}
		lhs = NewUnaryExpr(op, operand)
	} else {
		expr, err := parser.simpleExpression()
		if err != nil {
			return nil, err
		}
		lhs = expr
	}

	for {
		op, ok := infixOperators[parser.peek().Typ]
		if !ok || op.left <= limit {
			return lhs, nil
		}
		parser.advance()
		rhs, err := parser.subexpression(op.right)
		if err != nil {
			return nil, err
		}
		if op.logical {
			lhs = NewLogicalExpr(op.logic, lhs, rhs)
		} else {
			lhs = NewBinaryExpr(op.binary, lhs, rhs)
		}
	}
}

// simpleexp --> NUMBER | STRING | "nil" | "true" | "false" | "..."
//             | tableconstructor | "function" funcbody | prefixexp ;
func (parser *Parser) simpleExpression() (Expr, error) {
	switch {
	case parser.match(TokenNil):
		return NewLiteralExpr(nil), nil
	case parser.match(TokenTrue):
		return NewLiteralExpr(true), nil
	case parser.match(TokenFalse):
		return NewLiteralExpr(false), nil
	case parser.match(TokenNumber):
		value, ok := parseNumeral(parser.prev().Lexeme)
		if !ok {
			return nil, newParseError(UnexpectedToken, parser.prev(), "Malformed number.")
		}
		return NewLiteralExpr(value), nil
	case parser.match(TokenString, TokenLongString):
		return parser.stringLiteral(parser.prev())
	case parser.match(TokenEllipsis):
		if !parser.varargs[len(parser.varargs)-1] {
			return nil, newParseError(
				UnexpectedToken,
				parser.prev(),
				"Cannot use '...' outside a vararg function.",
			)
		}
		return new(VarArgExpr), nil
	case parser.match(TokenLeftBrace):
		return parser.tableConstructor()
	case parser.match(TokenFunction):
		params, body, err := parser.functionBody()
		if err != nil {
			return nil, err
		}
		return NewFunctionExpr(params, body), nil
	case parser.check(TokenIdentifier), parser.check(TokenLeftParen):
		return parser.prefixExpression()
	}
	return nil, parser.errorAtPeek("Expect expression.")
}

// explist --> exp ( "," exp )* ;
func (parser *Parser) expressionList() ([]Expr, error) {
	var exprs []Expr
	for {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !parser.match(TokenComma) {
			return exprs, nil
		}
	}
}

// stringLiteral decodes the content of a string token. Escape sequences are
// only interpreted in quoted strings; long strings drop a newline directly
// following their opening bracket.
func (parser *Parser) stringLiteral(tok *Token) (*LiteralExpr, error) {
	if tok.Typ == TokenLongString {
		text := tok.Lexeme
		if strings.HasPrefix(text, "\r\n") {
			text = text[2:]
		} else if strings.HasPrefix(text, "\n") {
			text = text[1:]
		}
		return NewLiteralExpr(text), nil
	}
	text, err := unescape(tok.Lexeme)
	if err != nil {
		return nil, newParseError(UnexpectedToken, tok, err.Error())
	}
	return NewLiteralExpr(text), nil
}

var simpleEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
	'"':  '"',
	'\'': '\'',
	'\n': '\n',
}

func unescape(text string) (string, error) {
	if !strings.ContainsRune(text, '\\') {
		return text, nil
	}
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i+1 == len(text) {
			sb.WriteByte(c)
			continue
		}
		i++
		c = text[i]
		if esc, ok := simpleEscapes[c]; ok {
			sb.WriteByte(esc)
			continue
		}
		switch {
		case c == 'z':
			for i+1 < len(text) && strings.IndexByte(" \f\n\r\t\v", text[i+1]) >= 0 {
				i++
			}
		case c == 'x':
			if i+2 >= len(text) || !isHexDigit(rune(text[i+1])) || !isHexDigit(rune(text[i+2])) {
				return "", errors.New("Hexadecimal digit expected in escape sequence.")
			}
			b, _ := strconv.ParseUint(text[i+1:i+3], 16, 8)
			sb.WriteByte(byte(b))
			i += 2
		case isDigit(rune(c)):
			j := i
			for j < len(text) && j < i+3 && isDigit(rune(text[j])) {
				j++
			}
			n, _ := strconv.Atoi(text[i:j])
			if n > 255 {
				return "", errors.New("Decimal escape too large.")
			}
			sb.WriteByte(byte(n))
			i = j - 1
		case c == 'u':
			end := strings.IndexByte(text[i:], '}')
			if i+1 >= len(text) || text[i+1] != '{' || end < 0 {
				return "", errors.New("Missing '{' or '}' in \\u{xxxx}.")
			}
			code, err := strconv.ParseUint(text[i+2:i+end], 16, 32)
			if err != nil || code > utf8.MaxRune {
				return "", errors.New("UTF-8 value too large.")
			}
			sb.WriteRune(rune(code))
			i += end
		default:
			// Unknown escapes keep the escaped character.
			sb.WriteByte(c)
		}
	}
	return sb.String(), nil
}
