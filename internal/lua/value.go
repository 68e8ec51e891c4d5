package lua

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a runtime value: nil, bool, int64, float64, string, *Table,
// *Closure or *Builtin.
type Value interface{}

// Closure is a function value together with the scope it was defined in.
type Closure struct {
	Name   string
	Params Parameters
	Body   *Block
	Env    *Scope
}

// Builtin is a function provided by the host through the Builtins registry.
type Builtin struct {
	Name string
}

// NewBuiltin creates the value used to call the builtin with the given name.
func NewBuiltin(name string) *Builtin {
	return &Builtin{name}
}

// TypeName returns the name of the type of the value as reported by `type`.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	case string:
		return "string"
	case *Table:
		return "table"
	case *Closure, *Builtin:
		return "function"
	}
	return "userdata"
}

// ToString converts the value to the text printed by `print` and
// `tostring`.
func ToString(v Value) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case string:
		return v
	case *Table:
		return fmt.Sprintf("table: %p", v)
	case *Closure:
		return fmt.Sprintf("function: %p", v)
	case *Builtin:
		return fmt.Sprintf("builtin: %p", v)
	}
	return fmt.Sprintf("%v", v)
}

// formatFloat prints floats with 14 significant digits and marks integral
// values with a trailing ".0" so that they are not confused with integers.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	text := strconv.FormatFloat(f, 'g', 14, 64)
	if !strings.ContainsAny(text, ".e") {
		text += ".0"
	}
	return text
}

// Truthy reports whether the value counts as true in a condition. Only nil
// and false are falsy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	}
	return true
}

// RawEqual compares two values without coercing strings. Integers and floats
// are equal when they denote the same number; tables and functions are equal
// only to themselves.
func RawEqual(a, b Value) bool {
	switch a := a.(type) {
	case int64:
		switch b := b.(type) {
		case int64:
			return a == b
		case float64:
			return eqIntFloat(a, b)
		}
		return false
	case float64:
		switch b := b.(type) {
		case int64:
			return eqIntFloat(b, a)
		case float64:
			return a == b
		}
		return false
	}
	return a == b
}

// parseNumeral converts a numeral accepted by the number machine. Decimal
// integers that do not fit in 64 bits become floats, hexadecimal integers wrap
// around.
func parseNumeral(text string) (Value, bool) {
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		digits := text[2:]
		if !strings.ContainsAny(digits, ".pP") {
			var n uint64
			for _, r := range digits {
				n = n<<4 | uint64(hexValue(r))
			}
			return int64(n), true
		}
		if !strings.ContainsAny(digits, "pP") {
			text += "p0"
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil && !isRangeError(err) {
			return nil, false
		}
		return f, true
	}

	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n, true
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !isRangeError(err) {
		return nil, false
	}
	return f, true
}

// StringToNumber converts a string the way arithmetic coerces it: the text,
// surrounded by optional whitespace and preceded by an optional sign, must be
// a numeral.
func StringToNumber(s string) (Value, bool) {
	text := strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		negative = text[0] == '-'
		text = text[1:]
	}
	if !matchNumeral(text) {
		return nil, false
	}
	value, ok := parseNumeral(text)
	if !ok {
		return nil, false
	}
	if negative {
		switch n := value.(type) {
		case int64:
			return -n, true
		case float64:
			return -n, true
		}
	}
	return value, true
}

func hexValue(r rune) int {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0')
	case 'a' <= r && r <= 'f':
		return int(r-'a') + 10
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10
	}
	return 0
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
