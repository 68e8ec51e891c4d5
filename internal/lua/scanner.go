package lua

import (
	"unicode/utf8"
)

// Scanner turns the source into tokens. Every token is produced by resetting
// the outer machine and feeding it characters until it rejects the next one.
type Scanner struct {
	source  string
	current int
	line    int
	outer   outerMachine
	tokens  []*Token
}

// NewScanner creates a new token scanner
func NewScanner(source string) *Scanner {
	scanner := new(Scanner)
	scanner.source = source
	scanner.current = 0
	scanner.line = 1
	return scanner
}

// Scan reads the source and collect all the tokens that were found from the
// source. The last token is always an EOF token.
func (scanner *Scanner) Scan() ([]*Token, error) {
	if len(scanner.tokens) != 0 {
		return scanner.tokens, nil
	}
	tokens := make([]*Token, 0)
	for {
		tok, err := scanner.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Typ == TokenEOF {
			break
		}
	}
	scanner.tokens = tokens
	return tokens, nil
}

// Next returns the next token. Once the source is exhausted, every call
// returns an EOF token.
func (scanner *Scanner) Next() (*Token, error) {
	for {
		scanner.skipWhitespace()
		if !scanner.hasNext() {
			return NewToken(TokenEOF, "", scanner.current, scanner.current, scanner.line), nil
		}

		start, line := scanner.current, scanner.line
		scanner.outer.reset()
		for scanner.hasNext() {
			r, size := scanner.peek()
			if !scanner.outer.next(r) {
				break
			}
			scanner.advance(r, size)
		}

		if scanner.current == start {
			r, _ := scanner.peek()
			return nil, newLexError(UnexpectedChar, r, line, start, string(r))
		}
		if scanner.outer.state == outerComment {
			if !scanner.outer.final() {
				return nil, newLexError(UnfinishedString, 0, line, start, scanner.source[start:scanner.current])
			}
			continue
		}
		return scanner.token(start, line)
	}
}

// token maps the terminal state of the outer machine to a token.
func (scanner *Scanner) token(start, line int) (*Token, error) {
	lexeme := scanner.source[start:scanner.current]
	outer := &scanner.outer
	switch outer.state {
	case outerWord:
		if typ, isKeyword := keywords[lexeme]; isKeyword {
			return NewToken(typ, lexeme, start, scanner.current, line), nil
		}
		return NewToken(TokenIdentifier, lexeme, start, scanner.current, line), nil

	case outerNumber:
		if !outer.number.final() {
			return nil, newLexError(MalformedNumber, 0, line, start, lexeme)
		}
		if r, _ := scanner.peek(); scanner.hasNext() && (isIdentPart(r) || r == '.') {
			return nil, newLexError(MalformedNumber, r, line, start, lexeme+string(r))
		}
		return NewToken(TokenNumber, lexeme, start, scanner.current, line), nil

	case outerString:
		if !outer.str.final() {
			if outer.str.state == stringLongOpen {
				return nil, newLexError(MissingCharacter, 0, line, start, lexeme)
			}
			return nil, newLexError(UnfinishedString, 0, line, start, lexeme)
		}
		width := outer.str.delimiter()
		from, to := start+width, scanner.current-width
		if outer.str.long() {
			return NewToken(TokenLongString, scanner.source[from:to], from, to, line), nil
		}
		return NewToken(TokenString, scanner.source[from:to], from, to, line), nil

	case outerLeftBracket:
		return NewToken(TokenLeftBracket, lexeme, start, scanner.current, line), nil
	}
	return NewToken(outer.punct, lexeme, start, scanner.current, line), nil
}

func (scanner *Scanner) skipWhitespace() {
	for scanner.hasNext() {
		r, size := scanner.peek()
		if !isSpace(r) {
			return
		}
		scanner.advance(r, size)
	}
}

// hasNext returns true if the scanner has not read pass the source length
func (scanner *Scanner) hasNext() bool {
	return scanner.current < len(scanner.source)
}

// peek returns the rune at the current position, but does not consume it
func (scanner *Scanner) peek() (rune, int) {
	if !scanner.hasNext() {
		return 0, 0
	}
	return utf8.DecodeRuneInString(scanner.source[scanner.current:])
}

// advance consumes the rune at the current position
func (scanner *Scanner) advance(r rune, size int) {
	if r == '\n' {
		scanner.line++
	}
	scanner.current += size
}
