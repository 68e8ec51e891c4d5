package lua

import (
	"errors"
	"strings"
)

// Parse scans and parses source as a chunk.
func Parse(source string) (*Block, error) {
	tokens, err := NewScanner(source).Scan()
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).Parse()
}

// IsIncomplete reports whether err was caused by the source ending in the
// middle of a construct, such that more input could make it valid.
func IsIncomplete(err error) bool {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind == NothingToParse
	}
	var lerr *LexError
	if errors.As(err, &lerr) && lerr.Kind == UnfinishedString {
		// Quoted strings can not span lines, only long strings and long
		// comments can be continued.
		return strings.HasPrefix(lerr.Lexeme, "[") || strings.HasPrefix(lerr.Lexeme, "--[")
	}
	return false
}
