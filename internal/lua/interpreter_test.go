package lua

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runtimeError runs src and returns the runtime error it must fail with.
func runtimeError(t *testing.T, src string) *RuntimeError {
	t.Helper()
	_, _, err := run(t, src)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr, src)
	return rerr
}

func TestInterpretReturnsValues(t *testing.T) {
	testCases := []struct {
		src    string
		values []Value
	}{
		{"local x = 1\nlocal y = 2\nreturn x + y", []Value{int64(3)}},
		{"return", []Value{}},
		{"x = 1", nil},
		{"return 1 == 1.0, 1 ~= '1', 'a' == 'a', {} == {}", []Value{true, true, true, false}},
		{"local t = {} return t == t, t ~= {}", []Value{true, true}},
		{"return 7 // 2, 7 / 2, 2 ^ 2, -2 ^ 2, 7 % -3", []Value{int64(3), 3.5, 4.0, -4.0, int64(-2)}},
		{"return '10' + 5, '3' * '4', 10 .. 20, 1.5 .. ''", []Value{int64(15), int64(12), "1020", "1.5"}},
		{"return nil or 'd', false and 1, 1 and 2, nil and nil, false or nil", []Value{"d", false, int64(2), nil, nil}},
		{"return not nil, not 0, #'abc', -(-3), ~0", []Value{true, false, int64(3), int64(3), int64(-1)}},
		{"return 1 < 2, 'a' < 'b', 2 <= 2.0, 3 > 2, 1 >= 2", []Value{true, true, true, true, false}},
		{"return 0x10 | 1, 6 & 3, 5 ~ 1, 1 << 3, 256 >> 4", []Value{int64(17), int64(2), int64(4), int64(8), int64(16)}},
		{"local a, b = 1, 2 a, b = b, a return a, b", []Value{int64(2), int64(1)}},
		{"local a, b, c = 1 return a, b, c", []Value{int64(1), nil, nil}},
		{"local a = 1, 2 return a", []Value{int64(1)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}
}

func TestInterpretBlocksShareOuterScope(t *testing.T) {
	testCases := []struct {
		src    string
		values []Value
	}{
		{"local x = 1\ndo x = 2 end\nreturn x", []Value{int64(2)}},
		{"local x = 1\ndo local x = 2 end\nreturn x", []Value{int64(1)}},
		{"do local y = 2 end\nreturn y", []Value{nil}},
		{"do z = 3 end\nreturn z", []Value{int64(3)}},
		{"local x = 1\nif true then x = x + 1 end\nreturn x", []Value{int64(2)}},
		{"local x = 1 local function get() return x end x = 2 return get()", []Value{int64(2)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}
}

func TestInterpretGoto(t *testing.T) {
	testCases := []struct {
		src    string
		values []Value
	}{
		{"local x = 1\ngoto skip\nx = 2\n::skip::\nreturn x", []Value{int64(1)}},
		{
			"local i = 0\n::top::\ni = i + 1\nif i < 5 then goto top end\nreturn i",
			[]Value{int64(5)},
		},
		{
			"local s = 0\nfor i = 1, 5 do\n  if i % 2 == 0 then goto continue end\n  s = s + i\n  ::continue::\nend\nreturn s",
			[]Value{int64(9)},
		},
		{
			"local n = 0\nwhile true do\n  n = n + 1\n  if n == 3 then goto out end\nend\n::out::\nreturn n",
			[]Value{int64(3)},
		},
		{"do goto e end\nx = 1\n::e::\nreturn x", []Value{nil}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}
}

func TestInterpretUnresolvedGoto(t *testing.T) {
	assert := assert.New(t)

	rerr := runtimeError(t, "x = 1\ngoto nowhere")
	assert.Equal(UnresolvedGoto, rerr.Kind)
	assert.Equal("no visible label 'nowhere' for goto", rerr.Message)
	assert.Equal(2, rerr.Line)
	assert.Equal("[line 2] Runtime error: no visible label 'nowhere' for goto", rerr.Error())

	// Labels in nested blocks are not visible from outside.
	rerr = runtimeError(t, "goto done\ndo ::done:: end")
	assert.Equal("no visible label 'done' for goto", rerr.Message)

	rerr = runtimeError(t, "do ::finish:: end\ngoto finsh")
	assert.Equal("no visible label 'finsh' for goto (did you mean 'finish'?)", rerr.Message)

	// Labels of the caller are not visible from a function body.
	rerr = runtimeError(t, "::l::\nlocal function f() goto l end\nf()")
	assert.Equal(UnresolvedGoto, rerr.Kind)

	rerr = runtimeError(t, "break")
	assert.Equal(UnresolvedGoto, rerr.Kind)
	assert.Equal("break outside a loop", rerr.Message)
}

func TestInterpretLoops(t *testing.T) {
	testCases := []struct {
		src    string
		values []Value
	}{
		{"local n = 0 for i = 1, 10 do n = n + 1 end return n", []Value{int64(10)}},
		{"local n = 0 for i = 1, 10, 2 do n = n + 1 end return n", []Value{int64(5)}},
		{"local n = 0 for i = 10, 1, -1 do n = n + 1 end return n", []Value{int64(10)}},
		{"local n = 0 for i = 1, 0 do n = n + 1 end return n", []Value{int64(0)}},
		{"local n = 0 for i = 0, 1, 0.25 do n = n + 1 end return n", []Value{int64(5)}},
		{"local last for i = 1, 3 do last = i end return last", []Value{int64(3)}},
		{"local last for i = 1, 2, 0.5 do last = i end return last", []Value{2.0}},
		{"local last for i = '1', 2 do last = i end return last", []Value{int64(2)}},
		{
			"local n = 0 for i = 9223372036854775806, 9223372036854775807 do n = n + 1 end return n",
			[]Value{int64(2)},
		},
		{"local i = 0 while i < 4 do i = i + 1 end return i", []Value{int64(4)}},
		{"local i = 0 while true do i = i + 1 if i == 3 then break end end return i", []Value{int64(3)}},
		{
			"local n = 0 repeat local done = n >= 2; n = n + 1 until done return n",
			[]Value{int64(3)},
		},
		{"local n = 0 repeat n = n + 1 if n == 2 then break end until false return n", []Value{int64(2)}},
		{
			"local t = {'a', 'b'} local s = '' for k, v in next, t do s = s .. k .. v end return s",
			[]Value{"1a2b"},
		},
		{
			"local n = 0 for i = 1, 3 do for j = 1, 3 do if j == 2 then break end n = n + 1 end end return n",
			[]Value{int64(3)},
		},
		{
			"local function f() for i = 1, 10 do if i == 4 then return i end end end return f()",
			[]Value{int64(4)},
		},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}
}

func TestInterpretLoopErrors(t *testing.T) {
	assert := assert.New(t)

	rerr := runtimeError(t, "for i = 1, 10, 0 do end")
	assert.Equal("'for' step is zero", rerr.Message)
	rerr = runtimeError(t, "for i = 1.0, 10, 0.0 do end")
	assert.Equal("'for' step is zero", rerr.Message)
	rerr = runtimeError(t, "for i = 'a', 2 do end")
	assert.Equal("'for' initial value must be a number", rerr.Message)
	rerr = runtimeError(t, "for i = 1, {} do end")
	assert.Equal("'for' limit value must be a number", rerr.Message)
	rerr = runtimeError(t, "for k in 1 do end")
	assert.Equal("attempt to call a number value", rerr.Message)
}

func TestInterpretFunctions(t *testing.T) {
	testCases := []struct {
		src    string
		values []Value
	}{
		{
			"local function counter() local c = 0 return function() c = c + 1 return c end end\n" +
				"local f = counter() f() f() return f()",
			[]Value{int64(3)},
		},
		{
			"local function fib(n) if n < 2 then return n end return fib(n - 1) + fib(n - 2) end return fib(10)",
			[]Value{int64(55)},
		},
		{"local function f(...) local a, b = ... return b, ... end return f(1, 2, 3)", []Value{int64(2), int64(1), int64(2), int64(3)}},
		{"local function f(a, ...) return ... end return f(1)", []Value{}},
		{"local function f(a, b) return b end return f(1)", []Value{nil}},
		{"local function f() return 1, 2 end local t = {f(), f()} return #t", []Value{int64(3)}},
		{"local function f() return 1, 2 end return (f())", []Value{int64(1)}},
		{"local function f() return 1, 2 end return f(), 10", []Value{int64(1), int64(10)}},
		{"local function f(...) return {...} end return #f(1, 2, 3)", []Value{int64(3)}},
		{"return pair()", []Value{int64(1), int64(2)}},
		{"local a, b, c = pair() return c, b, a", []Value{nil, int64(2), int64(1)}},
		{
			"local fs = {} for i = 1, 3 do fs[i] = function() return i end end return fs[1](), fs[3]()",
			[]Value{int64(1), int64(3)},
		},
		{"local f = function(...) return ... end return f(nil, 2)", []Value{nil, int64(2)}},
		{"function g(x) return x * 2 end return g(21)", []Value{int64(42)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}
}

func TestInterpretTables(t *testing.T) {
	testCases := []struct {
		src    string
		values []Value
	}{
		{"local t = {10, 20, x = 'y', [5] = 50} return t[1], t.x, t[5], #t", []Value{int64(10), "y", int64(50), int64(2)}},
		{"local t = {} t.a = 1 t['b'] = 2 t[1.0] = 3 return t.a, t.b, t[1]", []Value{int64(1), int64(2), int64(3)}},
		{"local t = {1, 2, 3} t[#t + 1] = 4 return #t", []Value{int64(4)}},
		{"local t = {nil, 2} return t[1], t[2]", []Value{nil, int64(2)}},
		{
			"local obj = {n = 1}\nfunction obj:inc(d) self.n = self.n + d return self end\nobj:inc(2):inc(3)\nreturn obj.n",
			[]Value{int64(6)},
		},
		{"a = {b = {}} function a.b.f() return 'ok' end return a.b.f()", []Value{"ok"}},
		{"local t = {} local i = 1 i, t[i] = i + 1, 20 return i, t[1], t[2]", []Value{int64(2), int64(20), nil}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		values, _, err := run(t, tc.src)
		assert.NoError(err, tc.src)
		assert.Equal(tc.values, values, tc.src)
	}

	rerr := runtimeError(t, "local s = ('x'):len()")
	assert.Equal("attempt to index a string value", rerr.Message)
}

func TestInterpretRuntimeErrors(t *testing.T) {
	testCases := []struct {
		src     string
		kind    RuntimeErrorKind
		message string
		line    int
	}{
		{"local x = 1\nlocal y = nil\nreturn x + y", TypeMismatch, "attempt to perform arithmetic on a nil value", 3},
		{"local function f()\n  return nil + 1\nend\nf()", TypeMismatch, "attempt to perform arithmetic on a nil value", 2},
		{"pritn('x')", TypeMismatch, "attempt to call a nil value (global 'pritn') (did you mean 'print'?)", 1},
		{"local t = nil\nreturn t.x", TypeMismatch, "attempt to index a nil value (local 't')", 2},
		{"local t = {}\nreturn t.a.b", TypeMismatch, "attempt to index a nil value (field 'a')", 2},
		{"u.v = 1", TypeMismatch, "attempt to index a nil value (global 'u')", 1},
		{"local t = {} t:m()", TypeMismatch, "attempt to call a nil value (method 'm')", 1},
		{"function a.b() end", TypeMismatch, "attempt to index a nil value (global 'a')", 1},
		{"fail()", UserError, "failed", 1},
		{"return 'a' < 1", CoercionFailure, "attempt to compare string with number", 1},
		{"return 1 // 0", ArithmeticError, "attempt to perform 'n//0'", 1},
		{"local t = {} t[nil] = 1", InvalidKey, "table index is nil", 1},
		{"local t = {[0/0] = 1}", InvalidKey, "table index is NaN", 1},
		{"local x <const> = 1\nx = 2", ConstAssignment, "attempt to assign to const variable 'x'", 2},
		{"local c <close> = 1", TypeMismatch, "variable 'c' got a non-closable value", 1},
		{"return #nil", TypeMismatch, "attempt to get length of a nil value", 1},
		{"return {} .. 'a'", TypeMismatch, "attempt to concatenate a table value", 1},
		{"\n\nwhile true do\n  error_here()\nend", TypeMismatch, "attempt to call a nil value (global 'error_here')", 4},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		rerr := runtimeError(t, tc.src)
		assert.Equal(tc.kind, rerr.Kind, tc.src)
		assert.Equal(tc.message, rerr.Message, tc.src)
		assert.Equal(tc.line, rerr.Line, tc.src)
	}
}

func TestInterpretCloseVariableAcceptsFalsyValues(t *testing.T) {
	assert := assert.New(t)
	values, _, err := run(t, "local a <close> = nil local b <close> = false return a, b")
	assert.NoError(err)
	assert.Equal([]Value{nil, false}, values)
}

func TestInterpretStackOverflow(t *testing.T) {
	assert := assert.New(t)
	block := mustParse(t, "local function f() return f() end return f()")
	interpreter := NewInterpreter(newMockBuiltins(), WithMaxCallDepth(50))

	_, err := interpreter.Interpret(block)
	var rerr *RuntimeError
	if assert.ErrorAs(err, &rerr) {
		assert.Equal(StackOverflow, rerr.Kind)
	}

	// The interpreter is usable after the error.
	values, err := interpreter.Interpret(mustParse(t, "return 1"))
	assert.NoError(err)
	assert.Equal([]Value{int64(1)}, values)
}

func TestInterpretPrint(t *testing.T) {
	assert := assert.New(t)
	_, builtins, err := run(t, "print(1, 'a', nil, true, 2.0)\nprint()")
	assert.NoError(err)
	assert.Equal([]string{"1\ta\tnil\ttrue\t2.0", ""}, builtins.printed)
}

func TestInterpretGlobalsPersist(t *testing.T) {
	assert := assert.New(t)
	interpreter := NewInterpreter(newMockBuiltins())

	_, err := interpreter.Interpret(mustParse(t, "x = 1 local y = 2 function add(a, b) return a + b end"))
	require.NoError(t, err)

	values, err := interpreter.Interpret(mustParse(t, "return x, y"))
	assert.NoError(err)
	assert.Equal([]Value{int64(1), nil}, values)

	values, err = interpreter.Call(interpreter.Globals().Get("add"), int64(2), int64(3))
	assert.NoError(err)
	assert.Equal([]Value{int64(5)}, values)

	_, err = interpreter.Call(interpreter.Globals().Get("missing"))
	assert.Error(err)
}

func TestInterpretWithoutBuiltins(t *testing.T) {
	assert := assert.New(t)
	interpreter := NewInterpreter(nil)

	values, err := interpreter.Interpret(mustParse(t, "return 1 + 1"))
	assert.NoError(err)
	assert.Equal([]Value{int64(2)}, values)

	_, err = interpreter.Interpret(mustParse(t, "print(1)"))
	assert.Error(err)
}

func TestInterpretLogsAtDebugLevel(t *testing.T) {
	assert := assert.New(t)
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	interpreter := NewInterpreter(newMockBuiltins(), WithLogger(logger))

	_, err := interpreter.Interpret(mustParse(t, "local function f() end\nf()\n::a::\ndo goto b end\n::b::\nprint()"))
	assert.NoError(err)
	assert.Contains(out.String(), "push scope")
	assert.Contains(out.String(), "pop scope")
	assert.Contains(out.String(), "msg=call function=f")
	assert.Contains(out.String(), "msg=goto label=b")
	assert.Contains(out.String(), "msg=\"call builtin\" name=print")
}
