package lua

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

// mockBuiltins records printed values and provides a few builtins.
type mockBuiltins struct {
	printed []string
	funcs   map[string]func(args []Value) ([]Value, error)
}

func newMockBuiltins() *mockBuiltins {
	b := &mockBuiltins{}
	b.funcs = map[string]func(args []Value) ([]Value, error){
		"print": func(args []Value) ([]Value, error) {
			parts := make([]string, len(args))
			for i, arg := range args {
				parts[i] = ToString(arg)
			}
			b.printed = append(b.printed, strings.Join(parts, "\t"))
			return nil, nil
		},
		"next": func(args []Value) ([]Value, error) {
			k, v, err := args[0].(*Table).Next(at(args, 1))
			if err != nil {
				return nil, err
			}
			return []Value{k, v}, nil
		},
		"fail": func(args []Value) ([]Value, error) {
			return nil, errors.New("failed")
		},
		"pair": func(args []Value) ([]Value, error) {
			return []Value{int64(1), int64(2)}, nil
		},
	}
	return b
}

func (b *mockBuiltins) Names() []string {
	names := make([]string, 0, len(b.funcs))
	for name := range b.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *mockBuiltins) Call(name string, args []Value) ([]Value, error) {
	return b.funcs[name](args)
}

func tokEOF(offset, line int) *Token {
	return NewToken(TokenEOF, "", offset, offset, line)
}

// run parses and interprets src with the mock builtins.
func run(t *testing.T, src string) ([]Value, *mockBuiltins, error) {
	t.Helper()
	block, err := Parse(src)
	require.NoError(t, err)
	builtins := newMockBuiltins()
	values, err := NewInterpreter(builtins).Interpret(block)
	return values, builtins, err
}

func TestParseReturnsFirstError(t *testing.T) {
	assert := assert.New(t)

	_, err := Parse("local s = 'abc")
	var lerr *LexError
	assert.ErrorAs(err, &lerr)

	_, err = Parse("local = 1")
	var perr *ParseError
	assert.ErrorAs(err, &perr)
}

func TestIsIncomplete(t *testing.T) {
	testCases := []struct {
		src        string
		incomplete bool
	}{
		{"x = 1", false},
		{"if x then", true},
		{"function f(a, b)", true},
		{"local t = {1, 2,", true},
		{"x = 1 +", true},
		{"s = [[abc", true},
		{"--[[ comment", true},
		{"s = 'abc", false},
		{"x = )", false},
		{"end", false},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		_, err := Parse(tc.src)
		assert.Equal(tc.incomplete, IsIncomplete(err), tc.src)
	}
}
