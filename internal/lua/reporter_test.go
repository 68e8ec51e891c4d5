package lua

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleReporterInit(t *testing.T) {
	assert := assert.New(t)
	reporter := NewSimpleReporter(io.Discard)
	assert.False(reporter.HadError())
	assert.False(reporter.HadRuntimeError())
}

func TestSimpleReporterReport(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		out           string
		hadError      bool
		hadRuntimeErr bool
	}{
		{
			"lex error",
			newLexError(UnfinishedString, '\'', 1, 4, "'abc"),
			"[line 1] Error: Unfinished string.\n",
			true,
			false,
		},
		{
			"parse error",
			newParseError(UnexpectedToken, NewToken(TokenIdentifier, "x", 0, 1, 2), "expected '='"),
			"[line 2] Error at 'x': expected '='\n",
			true,
			false,
		},
		{
			"parse error at end",
			newParseError(NothingToParse, NewToken(TokenEOF, "", 5, 5, 3), "expected expression"),
			"[line 3] Error at end: expected expression\n",
			true,
			false,
		},
		{
			"runtime error",
			NewRuntimeError(TypeMismatch, "attempt to call a nil value"),
			"Runtime error: attempt to call a nil value\n",
			false,
			true,
		},
		{
			"runtime error with line",
			&RuntimeError{Kind: ArithmeticError, Line: 7, Message: "attempt to divide by zero"},
			"[line 7] Runtime error: attempt to divide by zero\n",
			false,
			true,
		},
		{
			"wrapped runtime error",
			fmt.Errorf("chunk: %w", NewRuntimeError(UserError, "boom")),
			"chunk: Runtime error: boom\n",
			false,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			var out strings.Builder
			reporter := NewSimpleReporter(&out)
			reporter.Report(tt.err)
			assert.Equal(tt.out, out.String())
			assert.Equal(tt.hadError, reporter.HadError())
			assert.Equal(tt.hadRuntimeErr, reporter.HadRuntimeError())
		})
	}
}

func TestSimpleReporterReset(t *testing.T) {
	assert := assert.New(t)
	var out strings.Builder
	reporter := NewSimpleReporter(&out)

	reporter.Report(newLexError(UnexpectedChar, '@', 1, 0, "@"))
	reporter.Report(NewRuntimeError(TypeMismatch, "attempt to index a nil value"))
	assert.True(reporter.HadError())
	assert.True(reporter.HadRuntimeError())
	assert.Equal(
		"[line 1] Error: Unexpected character '@'.\nRuntime error: attempt to index a nil value\n",
		out.String(),
	)

	reporter.Reset()
	assert.False(reporter.HadError())
	assert.False(reporter.HadRuntimeError())
}
