// Package stdlib provides the builtin functions bound in the global scope of
// an interpreter.
package stdlib

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ltungv/glua/internal/lua"
)

// Func is the Go implementation of a builtin.
type Func func(args []lua.Value) ([]lua.Value, error)

// ipairsIterator is the name of the iterator returned by ipairs. It is
// callable but not bound to a global.
const ipairsIterator = "ipairs_iterator"

// Registry dispatches builtin calls by name. It implements lua.Builtins.
type Registry struct {
	out     io.Writer
	start   time.Time
	funcs   map[string]Func
	values  map[string]*lua.Builtin
	exposed []string
}

// New creates the registry of the standard builtins. print writes to out.
func New(out io.Writer) *Registry {
	r := &Registry{out: out, start: time.Now(), values: make(map[string]*lua.Builtin)}
	r.funcs = map[string]Func{
		"assert":       r.assert,
		"clock":        r.clock,
		"error":        r.raise,
		"ipairs":       r.ipairs,
		ipairsIterator: r.ipairsNext,
		"next":         r.next,
		"pairs":        r.pairs,
		"print":        r.print,
		"rawequal":     r.rawequal,
		"rawget":       r.rawget,
		"rawlen":       r.rawlen,
		"rawset":       r.rawset,
		"select":       r.selectArgs,
		"tonumber":     r.tonumber,
		"tostring":     r.tostring,
		"type":         r.typeName,
	}
	for name := range r.funcs {
		if name != ipairsIterator {
			r.exposed = append(r.exposed, name)
		}
	}
	sort.Strings(r.exposed)
	return r
}

// Register adds or replaces a builtin. It must be called before the registry
// is passed to an interpreter.
func (r *Registry) Register(name string, fn Func) {
	if _, ok := r.funcs[name]; !ok {
		r.exposed = append(r.exposed, name)
		sort.Strings(r.exposed)
	}
	r.funcs[name] = fn
}

// Names returns the names of the builtins bound in the global scope.
func (r *Registry) Names() []string {
	return append([]string(nil), r.exposed...)
}

// Builtin returns the value of the builtin with the given name. The same value
// is returned on every call.
func (r *Registry) Builtin(name string) *lua.Builtin {
	b, ok := r.values[name]
	if !ok {
		b = lua.NewBuiltin(name)
		r.values[name] = b
	}
	return b
}

// Call calls the builtin with the given name.
func (r *Registry) Call(name string, args []lua.Value) ([]lua.Value, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, lua.NewRuntimeError(lua.TypeMismatch, fmt.Sprintf("unknown builtin '%s'", name))
	}
	return fn(args)
}

func arg(args []lua.Value, i int) lua.Value {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func argError(name string, i int, msg string) error {
	return lua.NewRuntimeError(
		lua.TypeMismatch,
		fmt.Sprintf("bad argument #%d to '%s' (%s)", i+1, name, msg),
	)
}

func checkAny(name string, args []lua.Value, i int) error {
	if i >= len(args) {
		return argError(name, i, "value expected")
	}
	return nil
}

func checkTable(name string, args []lua.Value, i int) (*lua.Table, error) {
	t, ok := arg(args, i).(*lua.Table)
	if !ok {
		return nil, argError(name, i, "table expected, got "+typeOfArg(args, i))
	}
	return t, nil
}

func typeOfArg(args []lua.Value, i int) string {
	if i >= len(args) {
		return "no value"
	}
	return lua.TypeName(args[i])
}

func (r *Registry) print(args []lua.Value) ([]lua.Value, error) {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = lua.ToString(v)
	}
	if _, err := fmt.Fprintln(r.out, strings.Join(parts, "\t")); err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *Registry) typeName(args []lua.Value) ([]lua.Value, error) {
	if err := checkAny("type", args, 0); err != nil {
		return nil, err
	}
	return []lua.Value{lua.TypeName(args[0])}, nil
}

func (r *Registry) tostring(args []lua.Value) ([]lua.Value, error) {
	if err := checkAny("tostring", args, 0); err != nil {
		return nil, err
	}
	return []lua.Value{lua.ToString(args[0])}, nil
}

func (r *Registry) tonumber(args []lua.Value) ([]lua.Value, error) {
	if err := checkAny("tonumber", args, 0); err != nil {
		return nil, err
	}
	if len(args) < 2 || args[1] == nil {
		if n, ok := lua.ToNumber(args[0]); ok {
			return []lua.Value{n}, nil
		}
		return []lua.Value{nil}, nil
	}

	base, ok := lua.ToInteger(args[1])
	if !ok || base < 2 || base > 36 {
		return nil, argError("tonumber", 1, "base out of range")
	}
	s, ok := args[0].(string)
	if !ok {
		return nil, argError("tonumber", 0, "string expected, got "+lua.TypeName(args[0]))
	}
	text := strings.ToLower(strings.TrimSpace(s))
	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}
	n, err := strconv.ParseUint(text, int(base), 64)
	if err != nil {
		return []lua.Value{nil}, nil
	}
	if negative {
		return []lua.Value{-int64(n)}, nil
	}
	return []lua.Value{int64(n)}, nil
}

func (r *Registry) next(args []lua.Value) ([]lua.Value, error) {
	t, err := checkTable("next", args, 0)
	if err != nil {
		return nil, err
	}
	k, v, err := t.Next(arg(args, 1))
	if err != nil {
		return nil, err
	}
	if k == nil {
		return []lua.Value{nil}, nil
	}
	return []lua.Value{k, v}, nil
}

func (r *Registry) pairs(args []lua.Value) ([]lua.Value, error) {
	t, err := checkTable("pairs", args, 0)
	if err != nil {
		return nil, err
	}
	return []lua.Value{r.Builtin("next"), t, nil}, nil
}

func (r *Registry) ipairs(args []lua.Value) ([]lua.Value, error) {
	t, err := checkTable("ipairs", args, 0)
	if err != nil {
		return nil, err
	}
	return []lua.Value{r.Builtin(ipairsIterator), t, int64(0)}, nil
}

func (r *Registry) ipairsNext(args []lua.Value) ([]lua.Value, error) {
	t, err := checkTable("ipairs", args, 0)
	if err != nil {
		return nil, err
	}
	i, _ := arg(args, 1).(int64)
	v := t.Get(i + 1)
	if v == nil {
		return []lua.Value{nil}, nil
	}
	return []lua.Value{i + 1, v}, nil
}

func (r *Registry) selectArgs(args []lua.Value) ([]lua.Value, error) {
	rest := len(args) - 1
	if s, ok := arg(args, 0).(string); ok && s == "#" {
		return []lua.Value{int64(rest)}, nil
	}
	n, ok := lua.ToInteger(arg(args, 0))
	if !ok {
		return nil, argError("select", 0, "number expected, got "+typeOfArg(args, 0))
	}
	switch {
	case n < 0:
		if -n > int64(rest) {
			return nil, argError("select", 0, "index out of range")
		}
		n = int64(rest) + n + 1
	case n == 0:
		return nil, argError("select", 0, "index out of range")
	case n > int64(rest):
		return nil, nil
	}
	return append([]lua.Value(nil), args[n:]...), nil
}

func (r *Registry) rawequal(args []lua.Value) ([]lua.Value, error) {
	if err := checkAny("rawequal", args, 1); err != nil {
		return nil, err
	}
	return []lua.Value{lua.RawEqual(args[0], args[1])}, nil
}

func (r *Registry) rawlen(args []lua.Value) ([]lua.Value, error) {
	switch v := arg(args, 0).(type) {
	case *lua.Table:
		return []lua.Value{v.Len()}, nil
	case string:
		return []lua.Value{int64(len(v))}, nil
	}
	return nil, argError("rawlen", 0, "table or string expected")
}

func (r *Registry) rawget(args []lua.Value) ([]lua.Value, error) {
	t, err := checkTable("rawget", args, 0)
	if err != nil {
		return nil, err
	}
	return []lua.Value{t.Get(arg(args, 1))}, nil
}

func (r *Registry) rawset(args []lua.Value) ([]lua.Value, error) {
	t, err := checkTable("rawset", args, 0)
	if err != nil {
		return nil, err
	}
	if err := t.Set(arg(args, 1), arg(args, 2)); err != nil {
		return nil, err
	}
	return []lua.Value{t}, nil
}

func (r *Registry) assert(args []lua.Value) ([]lua.Value, error) {
	if err := checkAny("assert", args, 0); err != nil {
		return nil, err
	}
	if lua.Truthy(args[0]) {
		return args, nil
	}
	msg := "assertion failed!"
	if len(args) > 1 && args[1] != nil {
		msg = lua.ToString(args[1])
	}
	return nil, lua.NewRuntimeError(lua.UserError, msg)
}

func (r *Registry) raise(args []lua.Value) ([]lua.Value, error) {
	return nil, lua.NewRuntimeError(lua.UserError, lua.ToString(arg(args, 0)))
}

func (r *Registry) clock(args []lua.Value) ([]lua.Value, error) {
	return []lua.Value{time.Since(r.start).Seconds()}, nil
}
