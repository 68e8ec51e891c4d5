package lua

import (
	"math"
	"strings"
)

// 2^63, the first float above the range of int64.
const twoPow63 = 9223372036854775808.0

// floatToInteger converts a float with an integral value in the range of
// int64.
func floatToInteger(f float64) (int64, bool) {
	if f != math.Floor(f) || f < -twoPow63 || f >= twoPow63 {
		return 0, false
	}
	return int64(f), true
}

// ToNumber coerces a value for arithmetic. Numbers are returned unchanged,
// strings are converted when they hold a numeral.
func ToNumber(v Value) (Value, bool) {
	switch v := v.(type) {
	case int64, float64:
		return v, true
	case string:
		return StringToNumber(v)
	}
	return nil, false
}

// ToInteger coerces a value to an integer. Floats must have an integral value.
func ToInteger(v Value) (int64, bool) {
	n, ok := ToNumber(v)
	if !ok {
		return 0, false
	}
	switch n := n.(type) {
	case int64:
		return n, true
	case float64:
		return floatToInteger(n)
	}
	return 0, false
}

func toFloat(v Value) float64 {
	switch v := v.(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return math.NaN()
}

func eqIntFloat(i int64, f float64) bool {
	n, ok := floatToInteger(f)
	return ok && n == i
}

// The comparisons below are exact for every pair of an integer and a float,
// including integers that have no exact float representation.

func ltIntFloat(i int64, f float64) bool {
	switch {
	case math.IsNaN(f):
		return false
	case f >= twoPow63:
		return true
	case f > -twoPow63:
		return i < int64(math.Ceil(f))
	}
	return false
}

func leIntFloat(i int64, f float64) bool {
	switch {
	case math.IsNaN(f):
		return false
	case f >= twoPow63:
		return true
	case f >= -twoPow63:
		return i <= int64(math.Floor(f))
	}
	return false
}

func ltFloatInt(f float64, i int64) bool {
	switch {
	case math.IsNaN(f):
		return false
	case f >= twoPow63:
		return false
	case f >= -twoPow63:
		return int64(math.Floor(f)) < i
	}
	return true
}

func leFloatInt(f float64, i int64) bool {
	switch {
	case math.IsNaN(f):
		return false
	case f >= twoPow63:
		return false
	case f > -twoPow63:
		return int64(math.Ceil(f)) <= i
	}
	return true
}

// operand coerces an operand of an arithmetic operator.
func operand(v Value, what string) (Value, error) {
	if n, ok := ToNumber(v); ok {
		return n, nil
	}
	if s, ok := v.(string); ok {
		return nil, runtimeErrorf(CoercionFailure, "attempt to perform %s on a string value (%q)", what, s)
	}
	return nil, runtimeErrorf(TypeMismatch, "attempt to perform %s on a %s value", what, TypeName(v))
}

// integerOperand coerces an operand of a bitwise operator.
func integerOperand(v Value) (int64, error) {
	n, err := operand(v, "bitwise operation")
	if err != nil {
		return 0, err
	}
	i, ok := ToInteger(n)
	if !ok {
		return 0, NewRuntimeError(CoercionFailure, "number has no integer representation")
	}
	return i, nil
}

// Arith applies an arithmetic or bitwise operator. The result is a float when
// either operand is a float, except for `/` and `^` whose result is always a
// float and bitwise operators whose result is always an integer.
func Arith(op BinaryOp, a, b Value) (Value, error) {
	switch op {
	case OpBitwiseAnd, OpBitwiseOr, OpBitwiseXor, OpShiftLeft, OpShiftRight:
		x, err := integerOperand(a)
		if err != nil {
			return nil, err
		}
		y, err := integerOperand(b)
		if err != nil {
			return nil, err
		}
		return bitwise(op, x, y), nil
	}

	x, err := operand(a, "arithmetic")
	if err != nil {
		return nil, err
	}
	y, err := operand(b, "arithmetic")
	if err != nil {
		return nil, err
	}
	if op != OpDiv && op != OpPow {
		xi, xok := x.(int64)
		yi, yok := y.(int64)
		if xok && yok {
			return arithInt(op, xi, yi)
		}
	}
	return arithFloat(op, toFloat(x), toFloat(y)), nil
}

func arithInt(op BinaryOp, x, y int64) (Value, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpFloorDiv:
		if y == 0 {
			return nil, NewRuntimeError(ArithmeticError, "attempt to perform 'n//0'")
		}
		q := x / y
		if x%y != 0 && (x < 0) != (y < 0) {
			q--
		}
		return q, nil
	case OpMod:
		if y == 0 {
			return nil, NewRuntimeError(ArithmeticError, "attempt to perform 'n%0'")
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r, nil
	}
	return arithFloat(op, float64(x), float64(y)), nil
}

func arithFloat(op BinaryOp, x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	case OpPow:
		return math.Pow(x, y)
	case OpFloorDiv:
		return math.Floor(x / y)
	case OpMod:
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r
	}
	return math.NaN()
}

func bitwise(op BinaryOp, x, y int64) int64 {
	switch op {
	case OpBitwiseAnd:
		return x & y
	case OpBitwiseOr:
		return x | y
	case OpBitwiseXor:
		return x ^ y
	case OpShiftLeft:
		return shiftLeft(x, y)
	}
	return shiftLeft(x, -y)
}

// shiftLeft shifts logically; negative amounts shift right and amounts of 64
// bits or more clear every bit.
func shiftLeft(x, n int64) int64 {
	switch {
	case n <= -64 || n >= 64:
		return 0
	case n >= 0:
		return int64(uint64(x) << uint(n))
	}
	return int64(uint64(x) >> uint(-n))
}

// Negate applies the unary minus. Integer negation wraps around.
func Negate(v Value) (Value, error) {
	n, err := operand(v, "arithmetic")
	if err != nil {
		return nil, err
	}
	if i, ok := n.(int64); ok {
		return -i, nil
	}
	return -toFloat(n), nil
}

// BitwiseNot applies the unary `~`.
func BitwiseNot(v Value) (Value, error) {
	i, err := integerOperand(v)
	if err != nil {
		return nil, err
	}
	return ^i, nil
}

// Length applies the `#` operator.
func Length(v Value) (Value, error) {
	switch v := v.(type) {
	case string:
		return int64(len(v)), nil
	case *Table:
		return v.Len(), nil
	}
	return nil, runtimeErrorf(TypeMismatch, "attempt to get length of a %s value", TypeName(v))
}

// Concat joins two strings or numbers.
func Concat(a, b Value) (Value, error) {
	for _, v := range []Value{a, b} {
		switch v.(type) {
		case string, int64, float64:
		default:
			return nil, runtimeErrorf(TypeMismatch, "attempt to concatenate a %s value", TypeName(v))
		}
	}
	return ToString(a) + ToString(b), nil
}

// Less compares two values with `<`. Two strings compare lexically, any other
// pair is compared as numbers.
func Less(a, b Value) (bool, error) {
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y) < 0, nil
		}
	}
	x, y, err := compareOperands(a, b)
	if err != nil {
		return false, err
	}
	switch x := x.(type) {
	case int64:
		switch y := y.(type) {
		case int64:
			return x < y, nil
		case float64:
			return ltIntFloat(x, y), nil
		}
	case float64:
		switch y := y.(type) {
		case int64:
			return ltFloatInt(x, y), nil
		case float64:
			return x < y, nil
		}
	}
	return false, nil
}

// LessEqual compares two values with `<=`.
func LessEqual(a, b Value) (bool, error) {
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y) <= 0, nil
		}
	}
	x, y, err := compareOperands(a, b)
	if err != nil {
		return false, err
	}
	switch x := x.(type) {
	case int64:
		switch y := y.(type) {
		case int64:
			return x <= y, nil
		case float64:
			return leIntFloat(x, y), nil
		}
	case float64:
		switch y := y.(type) {
		case int64:
			return leFloatInt(x, y), nil
		case float64:
			return x <= y, nil
		}
	}
	return false, nil
}

func compareOperands(a, b Value) (Value, Value, error) {
	x, xok := ToNumber(a)
	y, yok := ToNumber(b)
	if !xok || !yok {
		return nil, nil, runtimeErrorf(
			CoercionFailure,
			"attempt to compare %s with %s",
			TypeName(a),
			TypeName(b),
		)
	}
	return x, y, nil
}
