package stdlib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ltungv/glua/internal/lua"
)

var _ lua.Builtins = (*Registry)(nil)

// run interprets src with the standard builtins and returns what it printed.
func run(t *testing.T, src string) ([]lua.Value, string, error) {
	t.Helper()
	block, err := lua.Parse(src)
	require.NoError(t, err, src)
	var out strings.Builder
	values, err := lua.NewInterpreter(New(&out)).Interpret(block)
	return values, out.String(), err
}

func TestBuiltinsReturnValues(t *testing.T) {
	testCases := []struct {
		src    string
		values []lua.Value
	}{
		{
			"return type(1), type('a'), type(nil), type({}), type(print), type(function() end), type(true)",
			[]lua.Value{"number", "string", "nil", "table", "function", "function", "boolean"},
		},
		{
			"return tonumber('0x10'), tonumber('z'), tonumber('ff', 16), tonumber('-101', 2), tonumber(' 12 '), tonumber('9', 8)",
			[]lua.Value{int64(16), nil, int64(255), int64(-5), int64(12), nil},
		},
		{"return tostring(1.0), tostring(nil), tostring(-3)", []lua.Value{"1.0", "nil", "-3"}},
		{"return select('#', 1, 2, 3), select(2, 'a', 'b', 'c')", []lua.Value{int64(3), "b", "c"}},
		{"return select(-1, 'a', 'b')", []lua.Value{"b"}},
		{"return select(5, 'a')", []lua.Value{}},
		{
			"local t = {} rawset(t, 'k', 1) return rawget(t, 'k'), rawlen({1, 2}), rawlen('abc'), rawequal(t, t), rawequal(1, 1.0)",
			[]lua.Value{int64(1), int64(2), int64(3), true, true},
		},
		{"return assert(1, 'm')", []lua.Value{int64(1), "m"}},
		{"return next({})", []lua.Value{nil}},
		{"local t = {a = 1, b = 2, c = 3} for k in pairs(t) do t[k] = nil end return next(t)", []lua.Value{nil}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}
}

func TestPrint(t *testing.T) {
	assert := assert.New(t)
	_, out, err := run(t, "print(1, 'a', nil, 2.5)\nprint()\nprint({} ~= nil)")
	assert.NoError(err)
	assert.Equal("1\ta\tnil\t2.5\n\ntrue\n", out)
}

func TestPairsFollowsInsertionOrder(t *testing.T) {
	assert := assert.New(t)
	_, out, err := run(t, `
local t = {10, 20, x = 1}
t.y = 2
for k, v in pairs(t) do
  print(k, v)
end`)
	assert.NoError(err)
	assert.Equal("1\t10\n2\t20\nx\t1\ny\t2\n", out)
}

func TestIpairsStopsAtNil(t *testing.T) {
	assert := assert.New(t)
	values, out, err := run(t, `
local t = {'a', 'b', nil, 'd'}
local n = 0
for i, v in ipairs(t) do
  print(i, v)
  n = i
end
return n`)
	assert.NoError(err)
	assert.Equal([]lua.Value{int64(2)}, values)
	assert.Equal("1\ta\n2\tb\n", out)
}

func TestIteratorsAreShared(t *testing.T) {
	assert := assert.New(t)
	values, _, err := run(t, `
local t = {1}
local f = ipairs(t)
local g = ipairs({})
return select(1, pairs(t)) == next, pairs({}) == pairs(t), f == g, rawequal(f, g)`)
	assert.NoError(err)
	assert.Equal([]lua.Value{true, true, true, true}, values)
}

func TestRegistryBuiltinIsCached(t *testing.T) {
	assert := assert.New(t)
	r := New(nil)
	assert.Same(r.Builtin("next"), r.Builtin("next"))
	assert.NotSame(r.Builtin("next"), r.Builtin("print"))
	assert.Equal("next", r.Builtin("next").Name)
}

func TestBuiltinErrors(t *testing.T) {
	testCases := []struct {
		src     string
		kind    lua.RuntimeErrorKind
		message string
	}{
		{"assert(false, 'boom')", lua.UserError, "boom"},
		{"assert(nil)", lua.UserError, "assertion failed!"},
		{"assert()", lua.TypeMismatch, "bad argument #1 to 'assert' (value expected)"},
		{"error('x')", lua.UserError, "x"},
		{"error(42)", lua.UserError, "42"},
		{"next(1)", lua.TypeMismatch, "bad argument #1 to 'next' (table expected, got number)"},
		{"pairs()", lua.TypeMismatch, "bad argument #1 to 'pairs' (table expected, got no value)"},
		{"next({}, 'missing')", lua.InvalidKey, "invalid key to 'next'"},
		{"type()", lua.TypeMismatch, "bad argument #1 to 'type' (value expected)"},
		{"tonumber('1', 99)", lua.TypeMismatch, "bad argument #2 to 'tonumber' (base out of range)"},
		{"tonumber(1, 10)", lua.TypeMismatch, "bad argument #1 to 'tonumber' (string expected, got number)"},
		{"select(0)", lua.TypeMismatch, "bad argument #1 to 'select' (index out of range)"},
		{"select('x')", lua.TypeMismatch, "bad argument #1 to 'select' (number expected, got string)"},
		{"rawlen(1)", lua.TypeMismatch, "bad argument #1 to 'rawlen' (table or string expected)"},
		{"rawset({}, nil, 1)", lua.InvalidKey, "table index is nil"},
		{"rawequal(1)", lua.TypeMismatch, "bad argument #2 to 'rawequal' (value expected)"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		_, _, err := run(t, tc.src)
		var rerr *lua.RuntimeError
		if assert.ErrorAs(err, &rerr, tc.src) {
			assert.Equal(tc.kind, rerr.Kind, tc.src)
			assert.Equal(tc.message, rerr.Message, tc.src)
			assert.Equal(1, rerr.Line, tc.src)
		}
	}
}

func TestClock(t *testing.T) {
	assert := assert.New(t)
	values, _, err := run(t, "return clock()")
	assert.NoError(err)
	if assert.Len(values, 1) {
		elapsed, ok := values[0].(float64)
		assert.True(ok)
		assert.GreaterOrEqual(elapsed, 0.0)
	}
}

func TestRegistryNames(t *testing.T) {
	assert := assert.New(t)
	r := New(nil)

	names := r.Names()
	assert.Contains(names, "print")
	assert.Contains(names, "pairs")
	assert.NotContains(names, ipairsIterator)
	assert.IsIncreasing(names)

	names[0] = "changed"
	assert.NotEqual("changed", r.Names()[0])
}

func TestRegistryRegister(t *testing.T) {
	assert := assert.New(t)
	r := New(nil)
	count := len(r.Names())

	r.Register("double", func(args []lua.Value) ([]lua.Value, error) {
		n, _ := args[0].(int64)
		return []lua.Value{n * 2}, nil
	})
	r.Register("print", func(args []lua.Value) ([]lua.Value, error) {
		return nil, nil
	})
	assert.Len(r.Names(), count+1)
	assert.IsIncreasing(r.Names())

	block, err := lua.Parse("print('quiet') return double(21)")
	require.NoError(t, err)
	values, err := lua.NewInterpreter(r).Interpret(block)
	assert.NoError(err)
	assert.Equal([]lua.Value{int64(42)}, values)
}

func TestRegistryCallUnknown(t *testing.T) {
	assert := assert.New(t)
	_, err := New(nil).Call("nope", nil)
	assert.EqualError(err, "Runtime error: unknown builtin 'nope'")
}
