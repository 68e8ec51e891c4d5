package lua

// machine is a deterministic automaton that is fed one character at a time.
// next returns false, without changing state, when the character has no
// transition from the current state.
type machine interface {
	next(r rune) bool
	final() bool
	reset()
}

type outerState int

const (
	outerInitial outerState = iota
	outerWord
	outerNumber
	outerString
	outerComment
	outerPunct
	outerLeftBracket
)

// outerMachine is the dispatcher automaton of the scanner. It recognizes
// punctuation and words on its own and delegates numerals, strings and
// comments to their machines once their leading characters are seen.
type outerMachine struct {
	state   outerState
	punct   TokenType
	number  numberMachine
	str     stringMachine
	comment commentMachine
}

// punctuations maps a recognized operator and a following character to the
// longer operator they form.
var punctuations = map[TokenType]map[rune]TokenType{
	TokenSlash:   {'/': TokenDoubleSlash},
	TokenTilde:   {'=': TokenNotEqual},
	TokenLess:    {'=': TokenLessEqual, '<': TokenShiftLeft},
	TokenGreater: {'=': TokenGreaterEqual, '>': TokenShiftRight},
	TokenAssign:  {'=': TokenEqual},
	TokenColon:   {':': TokenDoubleColon},
	TokenDot:     {'.': TokenConcat},
	TokenConcat:  {'.': TokenEllipsis},
}

var singlePunctuations = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'%': TokenPercent,
	'^': TokenCaret,
	'#': TokenHash,
	'&': TokenAmpersand,
	'~': TokenTilde,
	'|': TokenBar,
	'<': TokenLess,
	'>': TokenGreater,
	'=': TokenAssign,
	'(': TokenLeftParen,
	')': TokenRightParen,
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	']': TokenRightBracket,
	';': TokenSemicolon,
	':': TokenColon,
	',': TokenComma,
	'.': TokenDot,
}

func (m *outerMachine) next(r rune) bool {
	switch m.state {
	case outerNumber:
		return m.number.next(r)
	case outerString:
		return m.str.next(r)
	case outerComment:
		return m.comment.next(r)
	case outerWord:
		return isIdentPart(r)
	case outerLeftBracket:
		if r != '[' && r != '=' {
			return false
		}
		m.str.next('[')
		m.str.next(r)
		m.state = outerString
		return true
	case outerPunct:
		switch {
		case m.punct == TokenMinus && r == '-':
			m.comment.next('-')
			m.comment.next('-')
			m.state = outerComment
			return true
		case m.punct == TokenDot && isDigit(r):
			m.number.next('.')
			m.number.next(r)
			m.state = outerNumber
			return true
		}
		longer, ok := punctuations[m.punct][r]
		if !ok {
			return false
		}
		m.punct = longer
		return true
	}

	switch {
	case isIdentStart(r):
		m.state = outerWord
	case isDigit(r):
		m.number.next(r)
		m.state = outerNumber
	case r == '\'' || r == '"':
		m.str.next(r)
		m.state = outerString
	case r == '[':
		m.state = outerLeftBracket
	default:
		typ, ok := singlePunctuations[r]
		if !ok {
			return false
		}
		m.punct = typ
		m.state = outerPunct
	}
	return true
}

func (m *outerMachine) final() bool {
	switch m.state {
	case outerInitial:
		return false
	case outerNumber:
		return m.number.final()
	case outerString:
		return m.str.final()
	case outerComment:
		return m.comment.final()
	}
	return true
}

func (m *outerMachine) reset() {
	m.state = outerInitial
	m.punct = 0
	m.number.reset()
	m.str.reset()
	m.comment.reset()
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func isIdentStart(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
